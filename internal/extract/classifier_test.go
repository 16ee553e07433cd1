package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/extract"
)

func TestClassifier_Classify(t *testing.T) {
	c := extract.NewClassifier(extract.DefaultRegistry())

	tests := []struct {
		name string
		text string
		want entity.Layout
	}{
		{"will bank", "Comprovante de transferência\nWill Bank", entity.LayoutWillBank},
		{"will bank lowercase", "enviado via willbank app", entity.LayoutWillBank},
		{"nubank", "NU PAGAMENTOS S.A.\nTransferência enviada", entity.LayoutNubank},
		{"caixa", "CAIXA ECONÔMICA FEDERAL\nPix enviado", entity.LayoutCaixa},
		{"banco do brasil", "Banco do Brasil S.A.", entity.LayoutBancoDoBrasil},
		{"bradesco", "Comprovante Bradesco", entity.LayoutBradesco},
		{"itau", "Itaú Unibanco", entity.LayoutItau},
		{"santander", "Santander comprovante", entity.LayoutSantander},
		{"unknown bank", "Comprovante de pagamento qualquer", entity.LayoutGeneric},
		{"empty", "", entity.LayoutGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestClassifier_PriorityOrder(t *testing.T) {
	c := extract.NewClassifier(extract.DefaultRegistry())

	// Will Bank receipts routinely mention the destination institution;
	// the more specific signature must win over the later ones.
	text := "Will Bank\nInstituição CAIXA ECONÔMICA FEDERAL"
	assert.Equal(t, entity.LayoutWillBank, c.Classify(text))
}

func TestClassifier_DetectType(t *testing.T) {
	c := extract.NewClassifier(extract.DefaultRegistry())

	tests := []struct {
		name   string
		text   string
		layout entity.Layout
		want   entity.TransactionType
	}{
		{"pix indicator", "Pix enviado com sucesso", entity.LayoutWillBank, entity.TypePix},
		{"pix block", "Dados do recebedor\nNome\nFULANO", entity.LayoutCaixa, entity.TypePix},
		{"boleto", "Pagamento de boleto", entity.LayoutGeneric, entity.TypeBoleto},
		{"transfer accented", "Comprovante de transferência", entity.LayoutNubank, entity.TypeTransfer},
		{"transfer plain", "transferencia realizada", entity.LayoutBancoDoBrasil, entity.TypeTransfer},
		{"layout default nubank", "sem marcador algum", entity.LayoutNubank, entity.TypeTransfer},
		{"layout default will bank", "sem marcador algum", entity.LayoutWillBank, entity.TypePix},
		{"layout default generic", "sem marcador algum", entity.LayoutGeneric, entity.TypeGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.DetectType(tt.text, tt.layout))
		})
	}
}
