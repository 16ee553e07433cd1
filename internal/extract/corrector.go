package extract

import (
	"regexp"
	"strings"
)

// Substitution is one literal OCR-confusion fix, applied verbatim.
type Substitution struct {
	From string
	To   string
}

// Corrector fixes known OCR misreads with an ordered list of literal
// substitutions. Corrections are applied once each, in order; the operation
// is pure and idempotent on text that contains no matches.
type Corrector struct {
	subs []Substitution
}

func NewCorrector(subs []Substitution) *Corrector {
	out := make([]Substitution, len(subs))
	copy(out, subs)
	return &Corrector{subs: out}
}

// DefaultCorrector carries the confusions observed on the supported
// layouts: 'O'/'0' swaps inside years and names, 'R5'/'RS' read instead of
// the R$ currency marker, and letter shapes Tesseract trips on in
// Portuguese names.
func DefaultCorrector() *Corrector {
	return NewCorrector([]Substitution{
		// currency marker
		{"R5 ", "R$ "},
		{"RS ", "R$ "},
		// digit/letter swaps in dates
		{"2O25", "2025"},
		{"O5/", "05/"},
		// institutions
		{"NU PAGAMENT0S", "NU PAGAMENTOS"},
		{"Wili Bank", "Will Bank"},
		// letter shapes in names
		{"Cieuma", "Cleuma"},
		{"Cieima", "Cleuma"},
		{"Sheiia", "Sheila"},
		{"Antonlo", "Antonio"},
	})
}

// Correct applies the substitution table to text. Total: never fails,
// returns the input unchanged when nothing matches.
func (c *Corrector) Correct(text string) string {
	for _, s := range c.subs {
		text = strings.ReplaceAll(text, s.From, s.To)
	}
	return text
}

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// NormalizeWhitespace collapses noisy whitespace from the OCR engine.
// Conservative: keeps line breaks; collapses >2 newlines into a single
// blank line.
func NormalizeWhitespace(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
