package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/extract"
)

const willBankText = `Will Bank
Comprovante de transferência
Pix enviado
R$ 33,00
20/05/2025 - 17:51:22
Para Ana Cleuma Sousa Dos Santos
CPF/CNPJ ***.120.983-**
Instituição NU PAGAMENTOS S.A.
De David Damasceno
CPF/CNPJ ***.456.789-**
Chave Pix (88) 99999-0000
Autenticação E305246203
`

const nubankText = `NU PAGAMENTOS S.A.
Comprovante de transferência
12 MAI 2025 - 14:32:10
Valor R$ 150,00
Origem
Nome Maria Aparecida Silva
Instituição NU PAGAMENTOS S.A.
Agência 0001
Conta 12345678-9
Destino
Nome José Carlos Pereira
CNPJ 00.000.000/0001-91
Identificador abc123def456
`

const boletoText = `BOLETO DE COBRANÇA
Beneficiário: EMPRESA XYZ LTDA
Vencimento: 15/06/2025
Valor: R$ 289,90
Nosso Número: 123456789
23793.38128 60007.827136 95000.063305 9 12345678901234
`

func TestFieldExtractor_WillBank(t *testing.T) {
	e := extract.NewFieldExtractor(extract.DefaultRegistry())
	fields := e.Extract(willBankText, entity.LayoutWillBank)

	assert.Equal(t, "33,00", fields["valor"])
	assert.Equal(t, "Ana Cleuma Sousa Dos Santos", fields["destino_nome"])
	assert.Equal(t, "David Damasceno", fields["origem_nome"])
	assert.Equal(t, "***.120.983-**", fields["destino_cpf"])
	assert.Equal(t, "***.456.789-**", fields["origem_cpf"])
	assert.Equal(t, "NU PAGAMENTOS S.A.", fields["destino_instituicao"])
	assert.Equal(t, "(88) 99999-0000", fields["chave_pix"])
	assert.Equal(t, "E305246203", fields["autenticacao"])
	assert.Equal(t, "20/05/2025", fields["data"])
	assert.Equal(t, "17:51:22", fields["hora"])
}

func TestFieldExtractor_Nubank(t *testing.T) {
	e := extract.NewFieldExtractor(extract.DefaultRegistry())
	fields := e.Extract(nubankText, entity.LayoutNubank)

	assert.Equal(t, "150,00", fields["valor"])
	assert.Equal(t, "12 MAI 2025", fields["data"])
	assert.Equal(t, "14:32:10", fields["hora"])
	assert.Equal(t, "Maria Aparecida Silva", fields["origem_nome"])
	assert.Equal(t, "José Carlos Pereira", fields["destino_nome"])
	assert.Equal(t, "NU PAGAMENTOS S.A.", fields["origem_instituicao"])
	assert.Equal(t, "00.000.000/0001-91", fields["cnpj"])
	assert.Equal(t, "0001", fields["agencia"])
	assert.Equal(t, "12345678-9", fields["conta"])
	assert.Equal(t, "abc123def456", fields["id_transacao"])
}

func TestFieldExtractor_Boleto(t *testing.T) {
	e := extract.NewFieldExtractor(extract.DefaultRegistry())
	fields := e.Extract(boletoText, entity.LayoutGeneric)

	assert.Equal(t, "289,90", fields["valor"])
	assert.Equal(t, "EMPRESA XYZ LTDA", fields["beneficiario"])
	assert.Equal(t, "15/06/2025", fields["vencimento"])
	assert.Equal(t, "123456789", fields["nosso_numero"])
	assert.Equal(t, "23793.38128 60007.827136 95000.063305 9 12345678901234", fields["codigo_barras"])
}

// The Nubank app restates the amount on a trailing summary line; when the
// labeled form is unreadable, the last standalone amount wins.
func TestFieldExtractor_LastMatchFallback(t *testing.T) {
	e := extract.NewFieldExtractor(extract.DefaultRegistry())
	text := "NU PAGAMENTOS S.A.\nTransferência\nTaxa\n0,00\nTotal\n150,00\n"
	fields := e.Extract(text, entity.LayoutNubank)
	assert.Equal(t, "150,00", fields["valor"])
}

func TestFieldExtractor_AbsentFields(t *testing.T) {
	e := extract.NewFieldExtractor(extract.DefaultRegistry())
	fields := e.Extract("texto sem nenhum campo", entity.LayoutWillBank)
	assert.Empty(t, fields)
}

func TestFieldExtractor_Deterministic(t *testing.T) {
	e := extract.NewFieldExtractor(extract.DefaultRegistry())
	first := e.Extract(willBankText, entity.LayoutWillBank)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, e.Extract(willBankText, entity.LayoutWillBank))
	}
}
