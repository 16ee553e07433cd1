package extract

import (
	"strings"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
)

// RawFieldMap maps a layout-specific field name to the string the matcher
// captured. Fields whose matchers all failed are absent.
type RawFieldMap map[string]string

// FieldExtractor applies a layout's rules to corrected text. Extraction is
// pure: identical (text, layout) inputs always produce an identical map.
type FieldExtractor struct {
	registry *Registry
}

func NewFieldExtractor(registry *Registry) *FieldExtractor {
	return &FieldExtractor{registry: registry}
}

// Extract runs every rule of the layout's rule set against text. Per rule,
// matchers are tried in order and the first one that matches wins; a rule
// with no matching matcher leaves its field absent.
func (e *FieldExtractor) Extract(text string, layout entity.Layout) RawFieldMap {
	set := e.registry.Set(layout)
	fields := make(RawFieldMap, len(set.Rules))
	for _, rule := range set.Rules {
		if v, ok := applyRule(rule, text); ok {
			fields[rule.Field] = v
		}
	}
	return fields
}

// applyRule picks the first match in document order, or the last when the
// matcher asks for it (trailing summary values restating an amount).
func applyRule(rule Rule, text string) (string, bool) {
	for _, matcher := range rule.Matchers {
		group := matcher.Group
		if group == 0 {
			group = 1
		}
		if matcher.Last {
			all := matcher.Pattern.FindAllStringSubmatch(text, -1)
			if len(all) == 0 {
				continue
			}
			if v := captured(all[len(all)-1], group); v != "" {
				return v, true
			}
			continue
		}
		sm := matcher.Pattern.FindStringSubmatch(text)
		if sm == nil {
			continue
		}
		if v := captured(sm, group); v != "" {
			return v, true
		}
	}
	return "", false
}

func captured(sm []string, group int) string {
	if group >= len(sm) {
		return ""
	}
	return strings.TrimSpace(sm[group])
}
