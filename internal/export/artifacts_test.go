package export_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/export"
)

var processedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleReceipt(id, file, amount string) entity.Receipt {
	return entity.Receipt{
		ID:     id,
		Layout: entity.LayoutWillBank,
		Type:   entity.TypePix,
		Amount: decimal.RequireFromString(amount),
		Payer: entity.PersonRef{
			FullName:    "David Damasceno",
			TaxID:       "***.456.789-**",
			Institution: "Will Bank",
		},
		Payee: entity.PersonRef{
			FullName:    "Ana Cleuma Sousa Dos Santos",
			TaxID:       "***.120.983-**",
			Institution: "NU PAGAMENTOS S.A.",
			PixKey:      "(88) 99999-0000",
		},
		TransactionID: id,
		AuthCode:      "E305246203",
		Date:          "2025-05-20",
		Time:          "17:51:22",
		Confidence:    0.9,
		Recognized:    []string{"valor", "destino_nome"},
		Warnings:      []string{},
		Source:        entity.SourceMeta{SourceFile: file, ProcessedAt: processedAt},
	}
}

func errorReceipt(file string) entity.Receipt {
	return entity.Receipt{
		ID:     file + "_20250601_120000",
		Layout: entity.LayoutGeneric,
		Type:   entity.TypeGeneric,
		Source: entity.SourceMeta{SourceFile: file, ProcessedAt: processedAt},
		Err:    "Nenhum texto extraído da imagem",
	}
}

func TestBuildChatbotRecord(t *testing.T) {
	rec := export.BuildChatbotRecord(sampleReceipt("TX1", "c1.txt", "33"))

	assert.Equal(t, "TX1", rec.IDTransacao)
	assert.Equal(t, "pix", rec.Resumo.Tipo)
	assert.Equal(t, "R$ 33,00", rec.Resumo.Valor)
	assert.InDelta(t, 33.0, rec.Resumo.ValorNumerico, 1e-9)
	assert.Equal(t, "2025-05-20 17:51:22", rec.Resumo.DataCompleta)
	assert.Equal(t, "Processado", rec.Resumo.Status)
	assert.Equal(t, "PIX", rec.DetalhesOperacao.TipoOperacao)
	assert.Equal(t, "Will Bank", rec.DetalhesOperacao.CanalUtilizado)
	assert.Equal(t, "Ana Cleuma Sousa Dos Santos", rec.Participantes.Destino.NomeCompleto)
	assert.Equal(t, "PF", rec.Participantes.Destino.TipoPessoa)
	assert.Equal(t, "(88) 99999-0000", rec.Participantes.Destino.ChavePix)
	assert.Equal(t, "alta", rec.MetadadosSistema.NivelConfianca)
	assert.Equal(t, "c1.txt", rec.MetadadosSistema.ArquivoFonte)
	assert.Equal(t, "2025-06-01T12:00:00Z", rec.MetadadosSistema.DataProcessamento)
	assert.Contains(t, rec.ConsultasChatbot.TagsBusca, "valor_33")
	assert.Contains(t, rec.ConsultasChatbot.QueryValor, "R$ 33,00")
}

func TestBuildChatbotRecord_MatchesSchema(t *testing.T) {
	schema := export.BuildChatbotRecordSchema()

	for _, r := range []entity.Receipt{
		sampleReceipt("TX1", "c1.txt", "33"),
		sampleReceipt("TX2", "c2.txt", "1247.90"),
	} {
		raw, err := json.Marshal(export.BuildChatbotRecord(r))
		require.NoError(t, err)
		assert.NoError(t, export.ValidateJSONAgainstSchema(schema, raw))
	}
}

func TestBuildStructuredResults(t *testing.T) {
	receipts := []entity.Receipt{
		sampleReceipt("TX1", "c1.txt", "33"),
		errorReceipt("vazio.txt"),
	}

	out := export.BuildStructuredResults(receipts, processedAt)
	assert.Equal(t, 2, out.Metadata.TotalProcessados)
	assert.Equal(t, 1, out.Metadata.ComSucesso)
	assert.Equal(t, 1, out.Metadata.ComErro)
	assert.Equal(t, "2025-06-01T12:00:00Z", out.Metadata.DataProcessamento)
	// error entries stay in the flat artifact
	assert.Len(t, out.Comprovantes, 2)
}

func TestBuildChatbotData(t *testing.T) {
	receipts := []entity.Receipt{
		sampleReceipt("TX1", "c1.txt", "33"),
		sampleReceipt("TX2", "c2.txt", "150"),
		errorReceipt("vazio.txt"),
	}

	data := export.BuildChatbotData(receipts, processedAt)

	// error receipts never reach the chatbot artifact
	require.Len(t, data.Transacoes, 2)
	assert.Equal(t, 2, data.Metadata.TotalTransacoes)
	assert.Equal(t, []string{"pix"}, data.Metadata.TiposEncontrados)
	assert.Equal(t, []string{"Will Bank"}, data.Metadata.BancosDetectados)
	assert.InDelta(t, 183.0, data.Metadata.ValorTotalProcessado, 1e-9)
	assert.Equal(t, "2025-05-20 17:51:22", data.Metadata.PeriodoCobertura.MaisAntigo)

	assert.Equal(t, []string{"TX1"}, data.IndicesBusca.PorValor["30-39"])
	assert.Equal(t, []string{"TX2"}, data.IndicesBusca.PorValor["150-159"])
	assert.Equal(t, []string{"TX1", "TX2"}, data.IndicesBusca.PorTipo["pix"])
	assert.Equal(t, []string{"TX1", "TX2"}, data.IndicesBusca.PorBanco["Will Bank"])
	assert.Equal(t, []string{"TX1", "TX2"},
		data.IndicesBusca.PorDestinatario["Ana Cleuma Sousa Dos Santos"])
}

func TestBuildChatbotData_AllErrors(t *testing.T) {
	data := export.BuildChatbotData([]entity.Receipt{errorReceipt("vazio.txt")}, processedAt)

	assert.Equal(t, 0, data.Metadata.TotalTransacoes)
	require.NotNil(t, data.Transacoes)
	assert.Empty(t, data.Transacoes)

	// the wire contract is a list, never null
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"transacoes":[]`)
	assert.Contains(t, string(raw), `"tipos_encontrados":[]`)
	assert.NotContains(t, string(raw), "null")
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saida", export.ChatbotDataFile)

	data := export.BuildChatbotData([]entity.Receipt{sampleReceipt("TX1", "c1.txt", "33")}, processedAt)
	require.NoError(t, export.WriteJSON(path, data))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "metadata")
	assert.Contains(t, decoded, "transacoes")
	assert.Contains(t, decoded, "indices_busca")
	// unicode written as-is, not escaped
	assert.Contains(t, string(raw), "transação")
}

func TestExportReceiptsXLSX(t *testing.T) {
	receipts := []entity.Receipt{
		sampleReceipt("TX1", "c1.txt", "33"),
		errorReceipt("vazio.txt"),
	}
	data, err := export.ExportReceiptsXLSX(nil, receipts)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// xlsx is a zip container
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestExportReceiptsXLSX_TruncatesAccentedWarningsOnRunes(t *testing.T) {
	r := sampleReceipt("TX1", "c1.txt", "33")
	for i := 0; i < 10; i++ {
		r.Warnings = append(r.Warnings, "Validação de padrões não concluída")
	}

	data, err := export.ExportReceiptsXLSX(nil, []entity.Receipt{r})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Comprovantes"}, f.GetSheetList())

	cell, err := f.GetCellValue("Comprovantes", "J2")
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(cell))
	assert.LessOrEqual(t, len([]rune(cell)), 140)
}

func TestCompileSchema_ReusedAcrossRecords(t *testing.T) {
	schema, err := export.CompileSchema(export.BuildChatbotRecordSchema())
	require.NoError(t, err)

	for _, r := range []entity.Receipt{
		sampleReceipt("TX1", "c1.txt", "33"),
		sampleReceipt("TX2", "c2.txt", "1247.90"),
	} {
		assert.NoError(t, export.ValidateRecord(schema, export.BuildChatbotRecord(r)))
	}

	// id_transacao must be non-empty
	bad := export.BuildChatbotRecord(sampleReceipt("", "c3.txt", "33"))
	assert.Error(t, export.ValidateRecord(schema, bad))
}
