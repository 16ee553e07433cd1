// Package export persists the artifacts a batch run shares with the rest
// of the system: the flat extraction results file and the chatbot-oriented
// structure with its lookup indices. Field names and nesting are a frozen
// contract with downstream consumers.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/parse"
)

type Resumo struct {
	Tipo          string  `json:"tipo"`
	Valor         string  `json:"valor"`
	ValorNumerico float64 `json:"valor_numerico"`
	DataCompleta  string  `json:"data_completa"`
	Status        string  `json:"status"`
}

type Participante struct {
	NomeCompleto string `json:"nome_completo"`
	Documento    string `json:"documento"`
	Banco        string `json:"banco"`
	ChavePix     string `json:"chave_pix,omitempty"`
	TipoPessoa   string `json:"tipo_pessoa"`
}

type Participantes struct {
	Origem  Participante `json:"origem"`
	Destino Participante `json:"destino"`
}

type DetalhesOperacao struct {
	CodigoTransacao    string `json:"codigo_transacao"`
	CodigoAutenticacao string `json:"codigo_autenticacao"`
	DescricaoOperacao  string `json:"descricao_operacao"`
	TipoOperacao       string `json:"tipo_operacao"`
	CanalUtilizado     string `json:"canal_utilizado"`
}

type Validacoes struct {
	PadroesReconhecidos []string `json:"padroes_reconhecidos"`
	Alertas             []string `json:"alertas"`
	ScoreConfianca      float64  `json:"score_confianca"`
}

type MetadadosSistema struct {
	ArquivoFonte      string     `json:"arquivo_fonte"`
	DataProcessamento string     `json:"data_processamento"`
	NivelConfianca    string     `json:"nivel_confianca"`
	Validacoes        Validacoes `json:"validacoes"`
}

type ConsultasChatbot struct {
	QueryValor        string   `json:"query_valor"`
	QueryDestinatario string   `json:"query_destinatario"`
	QueryData         string   `json:"query_data"`
	QueryTipo         string   `json:"query_tipo"`
	TagsBusca         []string `json:"tags_busca"`
}

// ChatbotRecord is the canonical chatbot JSON shape for one receipt.
type ChatbotRecord struct {
	IDTransacao      string           `json:"id_transacao"`
	Resumo           Resumo           `json:"resumo"`
	Participantes    Participantes    `json:"participantes"`
	DetalhesOperacao DetalhesOperacao `json:"detalhes_operacao"`
	MetadadosSistema MetadadosSistema `json:"metadados_sistema"`
	ConsultasChatbot ConsultasChatbot `json:"consultas_chatbot"`
}

// BuildChatbotRecord projects a canonical receipt into the chatbot wire
// shape. The receipt stays untouched; this is a derived view.
func BuildChatbotRecord(r entity.Receipt) ChatbotRecord {
	valorFmt := parse.FormatCurrency(r.Amount)
	status := r.Status
	if status == "" {
		status = "Processado"
	}

	tipoOperacao := "Transferência"
	if strings.Contains(strings.ToLower(string(r.Type)), "pix") {
		tipoOperacao = "PIX"
	}

	return ChatbotRecord{
		IDTransacao: r.ID,
		Resumo: Resumo{
			Tipo:          string(r.Type),
			Valor:         valorFmt,
			ValorNumerico: r.Amount.InexactFloat64(),
			DataCompleta:  r.DateTime(),
			Status:        status,
		},
		Participantes: Participantes{
			Origem: Participante{
				NomeCompleto: r.Payer.FullName,
				Documento:    r.Payer.TaxID,
				Banco:        r.Payer.Institution,
				TipoPessoa:   r.Payer.PersonKind(),
			},
			Destino: Participante{
				NomeCompleto: r.Payee.FullName,
				Documento:    r.Payee.TaxID,
				Banco:        r.Payee.Institution,
				ChavePix:     r.Payee.PixKey,
				TipoPessoa:   r.Payee.PersonKind(),
			},
		},
		DetalhesOperacao: DetalhesOperacao{
			CodigoTransacao:    r.TransactionID,
			CodigoAutenticacao: r.AuthCode,
			DescricaoOperacao:  r.Description,
			TipoOperacao:       tipoOperacao,
			CanalUtilizado:     r.Layout.DisplayName(),
		},
		MetadadosSistema: MetadadosSistema{
			ArquivoFonte:      r.Source.SourceFile,
			DataProcessamento: r.Source.ProcessedAt.Format(time.RFC3339),
			NivelConfianca:    r.ConfidenceLevel(),
			Validacoes: Validacoes{
				PadroesReconhecidos: emptyIfNil(r.Recognized),
				Alertas:             emptyIfNil(r.Warnings),
				ScoreConfianca:      r.Confidence,
			},
		},
		ConsultasChatbot: buildConsultas(r, valorFmt),
	}
}

func buildConsultas(r entity.Receipt, valorFmt string) ConsultasChatbot {
	tags := []string{strings.ToLower(string(r.Type)), string(r.Layout)}
	if r.Payee.FullName != "" {
		tags = append(tags, strings.ToLower(r.Payee.FullName))
	}
	if r.Amount.IsPositive() {
		tags = append(tags, fmt.Sprintf("valor_%d", r.Amount.IntPart()))
	}
	return ConsultasChatbot{
		QueryValor:        "transação de " + valorFmt,
		QueryDestinatario: "pagamento para " + r.Payee.FullName,
		QueryData:         "operação em " + r.Date,
		QueryTipo:         string(r.Type) + " via " + string(r.Layout),
		TagsBusca:         tags,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
