package extract

import (
	"strings"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
)

// Classifier assigns a layout to corrected text by testing keyword
// signatures in the registry's priority order. Total and deterministic:
// unclassifiable text is LayoutGeneric, not a failure.
type Classifier struct {
	registry *Registry
}

func NewClassifier(registry *Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Classify returns the first layout whose signature matches the lowercased
// text. Priority order matters: Will Bank must be tested before the plain
// bank names and "nu pagamentos" before the looser "caixa" keyword, since
// several signatures are substrings of longer receipt text.
func (c *Classifier) Classify(text string) entity.Layout {
	lower := strings.ToLower(text)
	for _, layout := range c.registry.Order() {
		set := c.registry.Set(layout)
		for _, sig := range set.Signatures {
			if strings.Contains(lower, sig) {
				return layout
			}
		}
	}
	return entity.LayoutGeneric
}

var pixIndicators = []string{
	"pix enviado", "pix recebido", "comprovante pix", "comprovante de pix",
	"dados do recebedor", "dados do pagador", "chave pix", "autenticação",
}

// DetectType classifies the transaction type from text content. PIX
// indicators win over everything; otherwise the receipts label themselves
// and the layout's default class is the last resort.
func (c *Classifier) DetectType(text string, layout entity.Layout) entity.TransactionType {
	lower := strings.ToLower(text)
	for _, ind := range pixIndicators {
		if strings.Contains(lower, ind) {
			return entity.TypePix
		}
	}
	if strings.Contains(lower, "boleto") || strings.Contains(lower, "cobrança") {
		return entity.TypeBoleto
	}
	if strings.Contains(lower, "transferência") || strings.Contains(lower, "transferencia") {
		return entity.TypeTransfer
	}
	return c.registry.Set(layout).Type
}
