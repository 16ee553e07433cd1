package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PersonRef identifies one side of a transaction. The tax ID, when present,
// may be masked the way receipts print it (***.###.###-**).
type PersonRef struct {
	FullName    string `json:"nome_completo"`
	TaxID       string `json:"documento"`
	Institution string `json:"banco"`
	PixKey      string `json:"chave_pix,omitempty"`
}

// PersonKind reports PF (individual) or PJ (company) based on the tax ID
// shape. Masked IDs are always CPFs on the supported layouts.
func (p PersonRef) PersonKind() string {
	if len(onlyDigits(p.TaxID)) == 14 {
		return "PJ"
	}
	if p.TaxID != "" {
		return "PF"
	}
	return "PJ"
}

func onlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// SourceMeta records where a receipt came from and when it was processed.
type SourceMeta struct {
	SourceFile  string    `json:"arquivo_fonte"`
	ProcessedAt time.Time `json:"data_processamento"`
}

// Receipt is the canonical, bank-agnostic representation of one payment
// receipt. It is created once by the pipeline and never mutated afterwards:
// callers needing a different view build a derived structure.
type Receipt struct {
	ID            string          `json:"id_transacao"`
	Layout        Layout          `json:"layout"`
	Type          TransactionType `json:"tipo"`
	Amount        decimal.Decimal `json:"valor_numerico"`
	Payer         PersonRef       `json:"origem"`
	Payee         PersonRef       `json:"destino"`
	TransactionID string          `json:"codigo_transacao"`
	AuthCode      string          `json:"codigo_autenticacao"`
	Date          string          `json:"data"` // ISO-8601 date, "" when absent
	Time          string          `json:"hora"` // HH:MM:SS, "" when absent
	Status        string          `json:"situacao"`
	Description   string          `json:"descricao"`
	Confidence    float64         `json:"score_confianca"`
	Warnings      []string        `json:"alertas"`
	Recognized    []string        `json:"padroes_reconhecidos"`
	Source        SourceMeta      `json:"metadados"`
	Err           string          `json:"erro,omitempty"`
}

// IsError reports whether this is the pipeline's hard-failure terminal state
// (empty OCR input or an internal fault caught at the pipeline boundary).
func (r Receipt) IsError() bool { return r.Err != "" }

// DateTime joins date and time the way the source receipts print them.
func (r Receipt) DateTime() string {
	switch {
	case r.Date != "" && r.Time != "":
		return r.Date + " " + r.Time
	case r.Date != "":
		return r.Date
	default:
		return r.Time
	}
}

// ConfidenceLevel buckets the score for the chatbot contract: "alta" when
// an amount was extracted, "baixa" otherwise.
func (r Receipt) ConfidenceLevel() string {
	if r.Amount.IsPositive() {
		return "alta"
	}
	return "baixa"
}
