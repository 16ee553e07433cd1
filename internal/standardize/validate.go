package standardize

import (
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/parse"
)

// Validate checks a canonical receipt for completeness and format validity.
// Findings are warnings, never failures: the pipeline always completes and
// returns the receipt together with its warning list.
func Validate(r entity.Receipt) []string {
	var warnings []string

	if !r.Amount.IsPositive() {
		warnings = append(warnings, "Campo crítico ausente: valor")
	}
	if r.Payer.FullName == "" {
		warnings = append(warnings, "Campo crítico ausente: nome do pagador")
	}
	if r.Payee.FullName == "" {
		warnings = append(warnings, "Campo crítico ausente: nome do recebedor")
	}
	if r.Payer.TaxID != "" && !parse.ValidTaxID(r.Payer.TaxID) {
		warnings = append(warnings, "CPF do pagador inválido: "+r.Payer.TaxID)
	}
	if r.Payee.TaxID != "" && !parse.ValidTaxID(r.Payee.TaxID) {
		warnings = append(warnings, "CPF do recebedor inválido: "+r.Payee.TaxID)
	}
	if r.Date == "" && r.Time != "" {
		warnings = append(warnings, "Hora extraída sem data")
	}
	return warnings
}
