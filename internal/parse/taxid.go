package parse

import (
	"regexp"
	"strings"
)

// Receipts print tax IDs masked or in full, and OCR reads ',' for '.'
// often enough that both separators are accepted. Validity is format-only:
// the Brazilian check-digit algorithm is deliberately not verified, since
// masked IDs cannot satisfy it anyway.
var cpfPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\*{3}[.,]?\d{3}[.,]?\d{3}-?\*{2}$`), // masked
	regexp.MustCompile(`^\d{3}[.,]?\d{3}[.,]?\d{3}-?\d{2}$`), // full with separators
	regexp.MustCompile(`^\*{3}\d{3}\d{3}\*{2}$`),             // masked, bare
	regexp.MustCompile(`^\d{11}$`),                           // digits only
}

var reNonDigit = regexp.MustCompile(`[^\d]`)

// ValidCPF reports whether s looks like a CPF, masked or full.
func ValidCPF(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, re := range cpfPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// ValidCNPJ reports whether s carries the 14 digits of a CNPJ.
func ValidCNPJ(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return len(reNonDigit.ReplaceAllString(s, "")) == 14
}

// ValidTaxID accepts either form.
func ValidTaxID(s string) bool {
	return ValidCPF(s) || ValidCNPJ(s)
}

// NormalizeTaxID fixes the ',' for '.' OCR confusion inside an ID.
func NormalizeTaxID(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}

// FormatCNPJ renders a bare 14-digit CNPJ as ##.###.###/####-##.
// Anything else passes through untouched.
func FormatCNPJ(s string) string {
	digits := reNonDigit.ReplaceAllString(s, "")
	if len(digits) != 14 {
		return s
	}
	return digits[:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:]
}
