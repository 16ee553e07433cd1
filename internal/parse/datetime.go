package parse

import (
	"fmt"
	"regexp"
	"strings"
)

// Portuguese month abbreviations as printed by the banking apps.
var monthAbbrev = map[string]string{
	"JAN": "01", "FEV": "02", "MAR": "03", "ABR": "04",
	"MAI": "05", "JUN": "06", "JUL": "07", "AGO": "08",
	"SET": "09", "OUT": "10", "NOV": "11", "DEZ": "12",
}

var (
	reDateSlash  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	reDateDash   = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	reDateAbbrev = regexp.MustCompile(`^(\d{1,2})\s+([A-Z]{3})\s+(\d{4})$`)
	reTime       = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
)

// Date normalizes DD/MM/YYYY, DD-MM-YYYY and "DD MMM YYYY" forms into an
// ISO-8601 YYYY-MM-DD string. Missing dates stay empty at the call site;
// this only fails on text that looks like none of the accepted forms.
func Date(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("parse date: empty input")
	}
	for _, re := range []*regexp.Regexp{reDateSlash, reDateDash} {
		if sm := re.FindStringSubmatch(s); sm != nil {
			return sm[3] + "-" + pad2(sm[2]) + "-" + pad2(sm[1]), nil
		}
	}
	if sm := reDateAbbrev.FindStringSubmatch(strings.ToUpper(s)); sm != nil {
		month, ok := monthAbbrev[sm[2]]
		if !ok {
			return "", fmt.Errorf("parse date %q: unknown month abbreviation", raw)
		}
		return sm[3] + "-" + month + "-" + pad2(sm[1]), nil
	}
	return "", fmt.Errorf("parse date %q: unrecognized format", raw)
}

// Time normalizes HH:MM and HH:MM:SS clock strings to HH:MM:SS.
func Time(raw string) (string, error) {
	sm := reTime.FindStringSubmatch(strings.TrimSpace(raw))
	if sm == nil {
		return "", fmt.Errorf("parse time %q: unrecognized format", raw)
	}
	sec := sm[3]
	if sec == "" {
		sec = "00"
	}
	return pad2(sm[1]) + ":" + sm[2] + ":" + sec, nil
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// DateTime splits a combined "DD/MM/YYYY - HH:MM:SS" stamp the way the
// Caixa layout prints it.
func DateTime(raw string) (date, clock string, err error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) == 2 {
		d, derr := Date(strings.TrimSpace(parts[0]))
		t, terr := Time(strings.TrimSpace(parts[1]))
		if derr == nil && terr == nil {
			return d, t, nil
		}
	}
	return "", "", fmt.Errorf("parse datetime %q: unrecognized format", raw)
}
