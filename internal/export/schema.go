package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildChatbotRecordSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. The batch run validates every emitted record against it
// before writing the chatbot artifact.
func BuildChatbotRecordSchema() map[string]any {
	participante := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"nome_completo": map[string]any{"type": "string"},
			"documento":     map[string]any{"type": "string"},
			"banco":         map[string]any{"type": "string"},
			"chave_pix":     map[string]any{"type": "string"},
			"tipo_pessoa":   map[string]any{"type": "string", "enum": []string{"PF", "PJ"}},
		},
		"required": []string{"nome_completo", "documento", "banco", "tipo_pessoa"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"id_transacao": map[string]any{"type": "string", "minLength": 1},
			"resumo": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tipo":           map[string]any{"type": "string", "minLength": 1},
					"valor":          map[string]any{"type": "string", "pattern": `^R\$ `},
					"valor_numerico": map[string]any{"type": "number", "minimum": 0.0},
					"data_completa":  map[string]any{"type": "string"},
					"status":         map[string]any{"type": "string"},
				},
				"required": []string{"tipo", "valor", "valor_numerico", "status"},
			},
			"participantes": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"origem":  participante,
					"destino": participante,
				},
				"required": []string{"origem", "destino"},
			},
			"detalhes_operacao": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"codigo_transacao":    map[string]any{"type": "string"},
					"codigo_autenticacao": map[string]any{"type": "string"},
					"descricao_operacao":  map[string]any{"type": "string"},
					"tipo_operacao":       map[string]any{"type": "string"},
					"canal_utilizado":     map[string]any{"type": "string"},
				},
				"required": []string{"tipo_operacao", "canal_utilizado"},
			},
			"metadados_sistema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"arquivo_fonte":      map[string]any{"type": "string"},
					"data_processamento": map[string]any{"type": "string", "minLength": 1},
					"nivel_confianca":    map[string]any{"type": "string", "enum": []string{"alta", "baixa"}},
					"validacoes": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"padroes_reconhecidos": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"alertas":              map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"score_confianca":      map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
						},
					},
				},
				"required": []string{"data_processamento", "nivel_confianca"},
			},
			"consultas_chatbot": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query_valor":        map[string]any{"type": "string"},
					"query_destinatario": map[string]any{"type": "string"},
					"query_data":         map[string]any{"type": "string"},
					"query_tipo":         map[string]any{"type": "string"},
					"tags_busca":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
		"required": []string{"id_transacao", "resumo", "participantes", "detalhes_operacao", "metadados_sistema"},
	}
}

// CompileSchema compiles "schemaMap" once; batch runs reuse the result for
// every record instead of recompiling per record.
func CompileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// ValidateRecord checks one chatbot record against a compiled schema.
func ValidateRecord(schema *jsonschema.Schema, rec ChatbotRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", rec.IDTransacao, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal record %s: %w", rec.IDTransacao, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record %s does not match schema: %w", rec.IDTransacao, err)
	}
	return nil
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	schema, err := CompileSchema(schemaMap)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
