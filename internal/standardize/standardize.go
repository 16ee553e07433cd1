// Package standardize maps layout-specific raw fields into the canonical
// receipt schema. The mapping is a fixed precedence list per canonical
// slot: several layouts name the same datum differently, and the first
// non-empty source key wins.
package standardize

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/extract"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/parse"
)

// Standardizer builds canonical receipts from raw field maps.
type Standardizer struct {
	logger *slog.Logger
}

func NewStandardizer(logger *slog.Logger) *Standardizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Standardizer{logger: logger}
}

// Precedence lists per canonical slot. Order matters: specific layout keys
// first, generic fallbacks last.
var (
	payerNameKeys = []string{"origem_nome", "pagador_nome", "nome_origem", "nome_pagador"}
	payerDocKeys  = []string{"origem_cpf", "pagador_cpf", "cpf"}
	payerInstKeys = []string{"origem_instituicao", "pagador_instituicao", "instituicao"}
	payeeNameKeys = []string{"destino_nome", "recebedor_nome", "nome_destino", "beneficiario"}
	payeeDocKeys  = []string{"destino_cpf", "recebedor_cpf", "cnpj"}
	payeeInstKeys = []string{"destino_instituicao", "recebedor_instituicao"}
	txIDKeys      = []string{"id_transacao", "codigo_operacao", "nosso_numero"}
	authKeys      = []string{"autenticacao", "chave_seguranca"}
	descKeys      = []string{"descricao", "tipo_transferencia"}
)

// Standardize converts a raw field map into the canonical receipt. Value
// parsing never aborts: unparseable matches fall back to their zero value
// and append a warning, so the pipeline always gets a complete receipt.
func (s *Standardizer) Standardize(
	fields extract.RawFieldMap,
	layout entity.Layout,
	docType entity.TransactionType,
	source entity.SourceMeta,
) (entity.Receipt, []string) {
	var warnings []string

	amount := decimal.Zero.Round(2)
	if raw, ok := fields["valor"]; ok {
		parsed, err := parse.Currency(raw)
		if err != nil {
			warnings = append(warnings, "Valor inválido: "+raw)
			s.logger.Warn("standardize.currency_parse_failed", "raw", raw, "file", source.SourceFile)
		} else {
			amount = parsed
		}
	}

	date, clock := s.dateAndTime(fields, source, &warnings)

	payer := entity.PersonRef{
		FullName:    first(fields, payerNameKeys),
		TaxID:       parse.NormalizeTaxID(first(fields, payerDocKeys)),
		Institution: first(fields, payerInstKeys),
	}
	payee := entity.PersonRef{
		FullName:    first(fields, payeeNameKeys),
		TaxID:       parse.NormalizeTaxID(first(fields, payeeDocKeys)),
		Institution: first(fields, payeeInstKeys),
		PixKey:      fields["chave_pix"],
	}
	if payer.Institution == "" {
		payer.Institution = layout.Institution()
	}
	if payee.TaxID != "" && len(payee.TaxID) >= 14 {
		payee.TaxID = parse.FormatCNPJ(payee.TaxID)
	}

	r := entity.Receipt{
		Layout:        layout,
		Type:          docType,
		Amount:        amount,
		Payer:         payer,
		Payee:         payee,
		TransactionID: first(fields, txIDKeys),
		AuthCode:      first(fields, authKeys),
		Date:          date,
		Time:          clock,
		Status:        fields["situacao"],
		Description:   first(fields, descKeys),
		Warnings:      warnings,
		Source:        source,
	}
	r.ID = r.TransactionID
	if r.ID == "" {
		r.ID = SyntheticID(source)
	}
	return r, warnings
}

func (s *Standardizer) dateAndTime(fields extract.RawFieldMap, source entity.SourceMeta, warnings *[]string) (string, string) {
	if raw, ok := fields["data_hora_completa"]; ok {
		if d, t, err := parse.DateTime(raw); err == nil {
			return d, t
		}
		*warnings = append(*warnings, "Data/hora inválida: "+raw)
	}
	date, clock := "", ""
	if raw, ok := fields["data"]; ok {
		d, err := parse.Date(raw)
		if err != nil {
			*warnings = append(*warnings, "Data inválida: "+raw)
			s.logger.Warn("standardize.date_parse_failed", "raw", raw, "file", source.SourceFile)
		} else {
			date = d
		}
	}
	if raw, ok := fields["hora"]; ok {
		t, err := parse.Time(raw)
		if err != nil {
			*warnings = append(*warnings, "Hora inválida: "+raw)
		} else {
			clock = t
		}
	}
	return date, clock
}

// SyntheticID builds the fallback identifier used when no transaction id
// was extracted: source file plus process timestamp.
func SyntheticID(source entity.SourceMeta) string {
	name := source.SourceFile
	if name == "" {
		name = "unknown"
	}
	return name + "_" + source.ProcessedAt.Format("20060102_150405")
}

func first(fields extract.RawFieldMap, keys []string) string {
	for _, k := range keys {
		if v := fields[k]; v != "" {
			return v
		}
	}
	return ""
}
