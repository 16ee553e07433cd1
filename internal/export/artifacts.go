package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
)

// Default artifact file names, kept verbatim for downstream consumers.
const (
	StructuredResultsFile = "comprovantes_estruturados.json"
	ChatbotDataFile       = "dados_chatbot.json"
)

type StructuredMetadata struct {
	TotalProcessados  int    `json:"total_processados"`
	ComSucesso        int    `json:"com_sucesso"`
	ComErro           int    `json:"com_erro"`
	DataProcessamento string `json:"data_processamento"`
}

// StructuredResults is the flat artifact: one entry per input document,
// error entries included inline.
type StructuredResults struct {
	Metadata     StructuredMetadata `json:"metadata"`
	Comprovantes []entity.Receipt   `json:"comprovantes"`
}

type PeriodoCobertura struct {
	MaisAntigo  string `json:"mais_antigo"`
	MaisRecente string `json:"mais_recente"`
}

type ChatbotMetadata struct {
	TotalTransacoes      int              `json:"total_transacoes"`
	TiposEncontrados     []string         `json:"tipos_encontrados"`
	BancosDetectados     []string         `json:"bancos_detectados"`
	ValorTotalProcessado float64          `json:"valor_total_processado"`
	PeriodoCobertura     PeriodoCobertura `json:"periodo_cobertura"`
	ProcessadoEm         string           `json:"processado_em"`
}

// SearchIndices are the derived lookup tables: each value is an ordered
// list of record ids. They are built in one single-threaded reduction over
// the final record list, never incrementally during extraction.
type SearchIndices struct {
	PorDestinatario map[string][]string `json:"por_destinatario"`
	PorValor        map[string][]string `json:"por_valor"`
	PorTipo         map[string][]string `json:"por_tipo"`
	PorBanco        map[string][]string `json:"por_banco"`
}

// ChatbotData wraps the chatbot records plus their search indices.
type ChatbotData struct {
	Metadata     ChatbotMetadata `json:"metadata"`
	Transacoes   []ChatbotRecord `json:"transacoes"`
	IndicesBusca SearchIndices   `json:"indices_busca"`
}

// BuildStructuredResults assembles the flat artifact from every pipeline
// result, errors included.
func BuildStructuredResults(receipts []entity.Receipt, processedAt time.Time) StructuredResults {
	md := StructuredMetadata{
		TotalProcessados:  len(receipts),
		DataProcessamento: processedAt.Format(time.RFC3339),
	}
	for _, r := range receipts {
		if r.IsError() {
			md.ComErro++
		} else {
			md.ComSucesso++
		}
	}
	return StructuredResults{Metadata: md, Comprovantes: receipts}
}

// BuildChatbotData assembles the chatbot artifact from the successful
// receipts only and derives the search indices.
func BuildChatbotData(receipts []entity.Receipt, processedAt time.Time) ChatbotData {
	// transacoes is a list in the wire contract even when every receipt
	// failed; a nil slice would serialize as null.
	records := []ChatbotRecord{}
	total := decimal.Zero
	tipos := make(map[string]struct{})
	bancos := make(map[string]struct{})
	var datas []string

	for _, r := range receipts {
		if r.IsError() {
			continue
		}
		rec := BuildChatbotRecord(r)
		records = append(records, rec)
		total = total.Add(r.Amount)
		tipos[rec.Resumo.Tipo] = struct{}{}
		bancos[rec.DetalhesOperacao.CanalUtilizado] = struct{}{}
		if rec.Resumo.DataCompleta != "" {
			datas = append(datas, rec.Resumo.DataCompleta)
		}
	}

	sort.Strings(datas)
	periodo := PeriodoCobertura{}
	if len(datas) > 0 {
		periodo.MaisAntigo = datas[0]
		periodo.MaisRecente = datas[len(datas)-1]
	}

	return ChatbotData{
		Metadata: ChatbotMetadata{
			TotalTransacoes:      len(records),
			TiposEncontrados:     sortedKeys(tipos),
			BancosDetectados:     sortedKeys(bancos),
			ValorTotalProcessado: total.InexactFloat64(),
			PeriodoCobertura:     periodo,
			ProcessadoEm:         processedAt.Format(time.RFC3339),
		},
		Transacoes:   records,
		IndicesBusca: buildIndices(records),
	}
}

func buildIndices(records []ChatbotRecord) SearchIndices {
	idx := SearchIndices{
		PorDestinatario: make(map[string][]string),
		PorValor:        make(map[string][]string),
		PorTipo:         make(map[string][]string),
		PorBanco:        make(map[string][]string),
	}
	for _, rec := range records {
		id := rec.IDTransacao
		if nome := rec.Participantes.Destino.NomeCompleto; nome != "" {
			idx.PorDestinatario[nome] = append(idx.PorDestinatario[nome], id)
		}
		if v := rec.Resumo.ValorNumerico; v > 0 {
			idx.PorValor[decileBucket(v)] = append(idx.PorValor[decileBucket(v)], id)
		}
		idx.PorTipo[rec.Resumo.Tipo] = append(idx.PorTipo[rec.Resumo.Tipo], id)
		idx.PorBanco[rec.DetalhesOperacao.CanalUtilizado] = append(idx.PorBanco[rec.DetalhesOperacao.CanalUtilizado], id)
	}
	return idx
}

// decileBucket groups amounts into ten-unit ranges, e.g. 33.00 -> "30-39".
func decileBucket(v float64) string {
	low := int(v/10) * 10
	return fmt.Sprintf("%d-%d", low, low+9)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// WriteJSON persists v at path with the original artifacts' formatting:
// four-space indentation, unicode kept as-is.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
