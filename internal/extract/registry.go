package extract

import (
	"regexp"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
)

// Matcher is one pattern attempt for a field. Exactly one capture group
// carries the value; Group selects it when the pattern needs more than one.
type Matcher struct {
	Pattern *regexp.Regexp
	Group   int  // capture group index, 0 means 1
	Last    bool // pick the last match in document order instead of the first
}

// Rule extracts one named field. Matchers are tried in order; the first one
// that matches wins. Weight > 0 flags the field as a class-discriminating
// signal for the confidence scorer.
type Rule struct {
	Field    string
	Matchers []Matcher
	Weight   float64
}

// RuleSet is the read-only extraction configuration for one layout.
type RuleSet struct {
	Layout     entity.Layout
	Type       entity.TransactionType
	Signatures []string // lowercase keywords; any match classifies the layout
	Rules      []Rule
}

// Registry holds one RuleSet per layout in classification priority order
// (most specific first: some signatures are substrings of others). It is
// process-wide, read-only configuration; per-document state never touches
// it.
type Registry struct {
	order []entity.Layout
	sets  map[entity.Layout]*RuleSet
}

func NewRegistry(sets ...*RuleSet) *Registry {
	r := &Registry{sets: make(map[entity.Layout]*RuleSet, len(sets))}
	for _, s := range sets {
		r.order = append(r.order, s.Layout)
		r.sets[s.Layout] = s
	}
	return r
}

// Order returns the classification priority order.
func (r *Registry) Order() []entity.Layout { return r.order }

// Set returns the rule set for a layout, falling back to the generic set.
func (r *Registry) Set(layout entity.Layout) *RuleSet {
	if s, ok := r.sets[layout]; ok {
		return s
	}
	return r.sets[entity.LayoutGeneric]
}

func m(pattern string) Matcher { return Matcher{Pattern: regexp.MustCompile(pattern)} }

func mLast(pattern string) Matcher {
	return Matcher{Pattern: regexp.MustCompile(pattern), Last: true}
}

// Shared value patterns.
const (
	ptName      = `[A-Za-zÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇáàâãéèêíìîóòôõúùûç\s]`
	ptUpperName = `[A-ZÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇ\s]`
	ptMaskedCPF = `\*{3}[.,]?\d{3}[.,]?\d{3}-?\*{2}`
)

// DefaultRegistry builds the rule sets for the supported bank layouts.
// Patterns mirror what each app actually prints; fields whose matchers all
// fail are simply absent from the result, never an error.
func DefaultRegistry() *Registry {
	return NewRegistry(
		willBankRules(),
		nubankRules(),
		caixaRules(),
		bancoDoBrasilRules(),
		bradescoRules(),
		itauRules(),
		santanderRules(),
		genericRules(),
	)
}

func willBankRules() *RuleSet {
	return &RuleSet{
		Layout:     entity.LayoutWillBank,
		Type:       entity.TypePix,
		Signatures: []string{"will bank", "willbank"},
		Rules: []Rule{
			{Field: "valor", Weight: 0.20, Matchers: []Matcher{
				m(`R\$\s*([\d.]*\d+,\d{2})`),
				m(`R\$\s*([\d.,]+)`),
			}},
			// "Para"/"De" must anchor at line starts: the lowercase
			// prepositions appear all over the receipt body.
			{Field: "destino_nome", Weight: 0.20, Matchers: []Matcher{
				m(`(?m)^Para\s+(` + ptName + `+?)\s*(?:\n|CPF)`),
			}},
			{Field: "origem_nome", Weight: 0.15, Matchers: []Matcher{
				m(`(?m)^De\s+(` + ptName + `+?)\s*(?:\n|CPF)`),
			}},
			{Field: "destino_cpf", Weight: 0.10, Matchers: []Matcher{
				m(`(?i)Para[\s\S]*?CPF/CNPJ\s+(` + ptMaskedCPF + `)`),
				m(`CPF/CNPJ\s+(` + ptMaskedCPF + `)`),
			}},
			{Field: "origem_cpf", Matchers: []Matcher{
				m(`(?m)^De\b[\s\S]*?CPF/CNPJ\s+(` + ptMaskedCPF + `)`),
			}},
			{Field: "destino_instituicao", Matchers: []Matcher{
				m(`(?i)Institui[çc][\wã]*o\s+([A-ZÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇ][^\n]*)`),
			}},
			{Field: "chave_pix", Weight: 0.10, Matchers: []Matcher{
				m(`(\(\d{2}\)\s*\d{5}-\d{4})`),
				m(`(\+55\d{10,11})`),
			}},
			{Field: "descricao", Matchers: []Matcher{
				m(`(?i)Descrição\s+([^\n\r]+)`),
			}},
			{Field: "autenticacao", Weight: 0.10, Matchers: []Matcher{
				m(`(?i)Autenticação\s+([A-Z0-9]+)`),
			}},
			{Field: "data", Weight: 0.10, Matchers: []Matcher{
				m(`(\d{2}/\d{2}/\d{4})`),
			}},
			{Field: "hora", Weight: 0.05, Matchers: []Matcher{
				m(`(\d{2}:\d{2}:\d{2})`),
			}},
		},
	}
}

func nubankRules() *RuleSet {
	return &RuleSet{
		Layout:     entity.LayoutNubank,
		Type:       entity.TypeTransfer,
		Signatures: []string{"nu pagamentos", "nubank"},
		Rules: []Rule{
			{Field: "valor", Weight: 0.25, Matchers: []Matcher{
				m(`(?i)Valor\s+R\$\s*([\d.,]+)`),
				m(`R\$\s*([\d.,]+)`),
				// trailing summary line restating the amount
				mLast(`(?m)([\d.]*\d+,\d{2})\s*$`),
			}},
			{Field: "data", Weight: 0.10, Matchers: []Matcher{
				m(`(\d{1,2}\s+[A-Z]{3}\s+\d{4})`),
				m(`(\d{1,2}/\d{1,2}/\d{4})`),
			}},
			{Field: "hora", Weight: 0.05, Matchers: []Matcher{
				m(`(\d{1,2}:\d{2}:\d{2})`),
			}},
			{Field: "destino_nome", Weight: 0.20, Matchers: []Matcher{
				m(`(?i)Destino\s*\n\s*Nome\s+([^\n]+)`),
				m(`(?m)^Para\s+(` + ptName + `+?)\s*(?:\n|CPF)`),
			}},
			{Field: "origem_nome", Weight: 0.15, Matchers: []Matcher{
				m(`(?i)Origem\s*\n\s*Nome\s+([^\n]+)`),
				m(`(?i)Nome\s+(` + ptName + `+?)\s*(?:\n|Instituição|CPF)`),
			}},
			{Field: "cnpj", Matchers: []Matcher{
				m(`(?i)CNPJ\s+([\d./-]+)`),
			}},
			{Field: "origem_cpf", Matchers: []Matcher{
				m(`(?i)Origem[\s\S]*?CPF\s+([^\s][^\n]*)`),
			}},
			{Field: "destino_instituicao", Matchers: []Matcher{
				m(`(?i)Destino[\s\S]*?Instituição\s+([^\n]+)`),
			}},
			{Field: "origem_instituicao", Matchers: []Matcher{
				m(`(?i)Origem[\s\S]*?Instituição\s+([^\n]+)`),
			}},
			{Field: "agencia", Matchers: []Matcher{
				m(`(?i)Agência\s+(\d+)`),
			}},
			{Field: "conta", Matchers: []Matcher{
				m(`(?i)Conta\s+([\d-]+)`),
			}},
			{Field: "id_transacao", Weight: 0.15, Matchers: []Matcher{
				m(`(?i)Identificador\s+([A-Za-z0-9]+)`),
				m(`\bID\s+([A-Za-z0-9]{6,})`),
			}},
			{Field: "data_expiracao", Matchers: []Matcher{
				m(`(?i)Expiração\s+(\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}:\d{2})`),
			}},
			{Field: "tipo_transferencia", Weight: 0.10, Matchers: []Matcher{
				m(`(?i)Tipo de transferência\s+([^\n]+)`),
			}},
		},
	}
}

func caixaRules() *RuleSet {
	return &RuleSet{
		Layout:     entity.LayoutCaixa,
		Type:       entity.TypePix,
		Signatures: []string{"caixa econômica", "caixa economica", "caixa"},
		Rules: []Rule{
			{Field: "valor", Weight: 0.20, Matchers: []Matcher{
				m(`(?i)Valor\s*:?\s*R?\$?\s*([\d.]*\d+,\d{2})`),
				m(`R\$\s*([\d.,]+)`),
			}},
			{Field: "recebedor_nome", Weight: 0.15, Matchers: []Matcher{
				m(`(?i)Dados do recebedor\s*\n\s*Nome\s*\n?\s*(` + ptUpperName + `+?)\s*(?:\n|CPF)`),
			}},
			{Field: "pagador_nome", Weight: 0.15, Matchers: []Matcher{
				m(`(?i)Dados do pagador\s*\n\s*Nome\s*\n?\s*(` + ptUpperName + `+?)\s*(?:\n|CPF)`),
			}},
			{Field: "recebedor_cpf", Matchers: []Matcher{
				m(`(?i)Dados do recebedor[\s\S]*?CPF\s*\n?\s*(` + ptMaskedCPF + `)`),
			}},
			{Field: "pagador_cpf", Matchers: []Matcher{
				m(`(?i)Dados do pagador[\s\S]*?CPF\s*\n?\s*(` + ptMaskedCPF + `)`),
			}},
			{Field: "recebedor_instituicao", Matchers: []Matcher{
				m(`(?i)Dados do recebedor[\s\S]*?Instituição\s*\n?\s*([A-ZÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇ0-9][A-ZÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇ0-9\s&.\-]+?)\s*(?:\n|Dados)`),
			}},
			{Field: "pagador_instituicao", Matchers: []Matcher{
				m(`(?i)Dados do pagador[\s\S]*?Instituição\s*\n?\s*([A-ZÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇ][A-ZÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇ\s&.\-]+?)\s*(?:\n|Dados)`),
			}},
			{Field: "situacao", Weight: 0.10, Matchers: []Matcher{
				m(`(?i)Situação\s*\n?\s*([A-Za-zÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇáàâãéèêíìîóòôõúùûç]+)`),
			}},
			{Field: "id_transacao", Weight: 0.15, Matchers: []Matcher{
				m(`(?i)ID transação\s*\n?\s*([A-Za-z0-9]+)`),
			}},
			{Field: "codigo_operacao", Weight: 0.10, Matchers: []Matcher{
				m(`(?i)Código da operação\s*\n?\s*(\d+)`),
			}},
			{Field: "chave_seguranca", Matchers: []Matcher{
				m(`(?i)Chave de segurança\s*\n?\s*([A-Z0-9]+)`),
			}},
			{Field: "chave_pix", Matchers: []Matcher{
				m(`(?i)Chave\s*\n\s*(\d+)`),
			}},
			{Field: "data_hora_completa", Weight: 0.15, Matchers: []Matcher{
				m(`(?i)Data/\s*Hora\s*\n?\s*(\d{1,2}/\d{1,2}/\d{4}\s*-\s*\d{1,2}:\d{2}:\d{2})`),
			}},
			{Field: "data", Matchers: []Matcher{
				m(`(\d{1,2}/\d{1,2}/\d{4})`),
			}},
			{Field: "hora", Matchers: []Matcher{
				m(`(\d{1,2}:\d{2}:\d{2})`),
			}},
		},
	}
}

func bancoDoBrasilRules() *RuleSet {
	return &RuleSet{
		Layout:     entity.LayoutBancoDoBrasil,
		Type:       entity.TypeTransfer,
		Signatures: []string{"banco do brasil"},
		Rules:      transferRules(),
	}
}

func bradescoRules() *RuleSet {
	return &RuleSet{
		Layout:     entity.LayoutBradesco,
		Type:       entity.TypeTransfer,
		Signatures: []string{"bradesco"},
		Rules:      transferRules(),
	}
}

func itauRules() *RuleSet {
	return &RuleSet{
		Layout:     entity.LayoutItau,
		Type:       entity.TypeTransfer,
		Signatures: []string{"itaú", "itau"},
		Rules:      transferRules(),
	}
}

func santanderRules() *RuleSet {
	return &RuleSet{
		Layout:     entity.LayoutSantander,
		Type:       entity.TypeTransfer,
		Signatures: []string{"santander"},
		Rules:      transferRules(),
	}
}

// transferRules covers the bank-statement style transfer receipts shared by
// the traditional banks; their apps print the same labeled blocks.
func transferRules() []Rule {
	return []Rule{
		{Field: "valor", Weight: 0.25, Matchers: []Matcher{
			m(`(?i)Valor\s*:?\s*R\$\s*([\d.,]+)`),
			m(`R\$\s*([\d.,]+)`),
		}},
		{Field: "nome_origem", Weight: 0.15, Matchers: []Matcher{
			m(`(?i)Origem[\s\S]*?Nome\s*:?\s*(` + ptName + `+?)\s*(?:\n|CPF|CNPJ)`),
			m(`(?i)Nome\s*:?\s*(` + ptUpperName + `+?)\s*(?:\n|CPF|CNPJ)`),
		}},
		{Field: "nome_destino", Weight: 0.15, Matchers: []Matcher{
			m(`(?i)Destino\s*\n?\s*Nome\s*:?\s*(` + ptName + `+?)\s*(?:\n|CPF|CNPJ)`),
			m(`(?i)Favorecido\s*:?\s*(` + ptName + `+?)\s*(?:\n|CPF|CNPJ)`),
		}},
		{Field: "cpf", Matchers: []Matcher{
			m(`(?i)CPF\s*:?\s*(` + ptMaskedCPF + `|\d{3}\.?\d{3}\.?\d{3}-?\d{2})`),
		}},
		{Field: "cnpj", Matchers: []Matcher{
			m(`(?i)CNPJ\s*:?\s*(\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2})`),
		}},
		{Field: "instituicao", Matchers: []Matcher{
			m(`(?i)Instituição\s*:?\s*([A-ZÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇ][^\n]*)`),
		}},
		{Field: "conta", Matchers: []Matcher{
			m(`(?i)Conta\s*:?\s*(\d+-?\d)`),
		}},
		{Field: "agencia", Matchers: []Matcher{
			m(`(?i)Agência\s*:?\s*(\d{4})`),
		}},
		{Field: "id_transacao", Weight: 0.15, Matchers: []Matcher{
			m(`(?i)(?:ID|Identificador)\s*:?\s*([A-Za-z0-9]{6,})`),
		}},
		{Field: "data", Weight: 0.10, Matchers: []Matcher{
			m(`(\d{1,2}/\d{1,2}/\d{4})`),
			m(`(\d{1,2}-\d{1,2}-\d{4})`),
		}},
		{Field: "hora", Weight: 0.05, Matchers: []Matcher{
			m(`(\d{1,2}:\d{2}:\d{2})`),
		}},
		{Field: "data_expiracao", Matchers: []Matcher{
			m(`(?i)Expiração\s*:?\s*(\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}:\d{2})`),
		}},
	}
}

func genericRules() *RuleSet {
	return &RuleSet{
		Layout: entity.LayoutGeneric,
		Type:   entity.TypeGeneric,
		// no signatures: generic is the terminal fallback, never matched
		// by keyword
		Rules: []Rule{
			{Field: "valor", Weight: 0.30, Matchers: []Matcher{
				m(`R\$\s*([\d.]*\d+,\d{2})`),
				m(`R\$\s*([\d.,]+)`),
				m(`(?i)Valor\s*:?\s*R?\$?\s*([\d.,]+)`),
			}},
			{Field: "data", Weight: 0.15, Matchers: []Matcher{
				m(`(\d{1,2}/\d{1,2}/\d{4})`),
				m(`(\d{1,2}-\d{1,2}-\d{4})`),
			}},
			{Field: "hora", Weight: 0.05, Matchers: []Matcher{
				m(`(\d{1,2}:\d{2}:\d{2})`),
				m(`(\d{1,2}:\d{2})`),
			}},
			{Field: "nome_pagador", Weight: 0.20, Matchers: []Matcher{
				m(`(?i)Nome[\s:]+(` + ptUpperName + `+?)\s*(?:\n|CPF)`),
			}},
			{Field: "cpf", Weight: 0.10, Matchers: []Matcher{
				m(`(?i)CPF[\s:]+(` + ptMaskedCPF + `|\d{3}\.?\d{3}\.?\d{3}-?\d{2})`),
			}},
			{Field: "instituicao", Matchers: []Matcher{
				m(`(?i)Instituição[\s:]+([A-ZÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇ][^\n]*)`),
			}},
			{Field: "id_transacao", Weight: 0.10, Matchers: []Matcher{
				m(`(?i)\bID[\s:]+([A-Za-z0-9]{6,})`),
			}},
			{Field: "chave_pix", Weight: 0.10, Matchers: []Matcher{
				m(`(?i)Chave\s*Pix[\s:]+([A-Za-z0-9@.+\-()\s]+?)\s*\n`),
			}},
			// boleto-only labels; they simply never match other documents
			{Field: "vencimento", Matchers: []Matcher{
				m(`(?i)Vencimento[\s:]+(\d{2}/\d{2}/\d{4})`),
			}},
			{Field: "codigo_barras", Matchers: []Matcher{
				m(`(\d{5}\.\d{5}\s+\d{5}\.\d{6}\s+\d{5}\.\d{6}\s+\d\s+\d{14})`),
			}},
			{Field: "beneficiario", Matchers: []Matcher{
				m(`(?i)Beneficiário[\s:]+([^\n]+)`),
			}},
			{Field: "nosso_numero", Matchers: []Matcher{
				m(`(?i)Nosso Número[\s:]+(\d+)`),
			}},
		},
	}
}
