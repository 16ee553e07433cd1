package extract

import "github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"

// Scorer combines weighted rule hits into a bounded confidence score. The
// score is informational metadata on the receipt, never a gate.
type Scorer struct {
	registry *Registry
}

func NewScorer(registry *Registry) *Scorer {
	return &Scorer{registry: registry}
}

// Score sums the weights of the layout's discriminating fields present in
// the map, clamped to 1.0. Absent fields contribute zero.
func (s *Scorer) Score(layout entity.Layout, fields RawFieldMap) float64 {
	score := 0.0
	for _, rule := range s.registry.Set(layout).Rules {
		if rule.Weight <= 0 {
			continue
		}
		if _, ok := fields[rule.Field]; ok {
			score += rule.Weight
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Recognized lists which discriminating fields were hit, in rule order.
// The batch artifacts surface this under padroes_reconhecidos.
func (s *Scorer) Recognized(layout entity.Layout, fields RawFieldMap) []string {
	var out []string
	for _, rule := range s.registry.Set(layout).Rules {
		if rule.Weight <= 0 {
			continue
		}
		if _, ok := fields[rule.Field]; ok {
			out = append(out, rule.Field)
		}
	}
	return out
}
