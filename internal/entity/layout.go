package entity

// Layout identifies the receipt template of a known bank/app. It drives
// which extraction rules apply.
type Layout string

// Stable values (persisted in batch artifacts).
const (
	LayoutWillBank      Layout = "will_bank"
	LayoutNubank        Layout = "nubank"
	LayoutCaixa         Layout = "caixa"
	LayoutBancoDoBrasil Layout = "bb"
	LayoutBradesco      Layout = "bradesco"
	LayoutItau          Layout = "itau"
	LayoutSantander     Layout = "santander"
	LayoutGeneric       Layout = "generico"
)

// Institution returns the canonical institution name for a layout, or ""
// when the layout does not pin one down.
func (l Layout) Institution() string {
	switch l {
	case LayoutWillBank:
		return "Will Bank"
	case LayoutNubank:
		return "NU PAGAMENTOS S.A."
	case LayoutCaixa:
		return "CAIXA ECONÔMICA FEDERAL"
	case LayoutBancoDoBrasil:
		return "BANCO DO BRASIL S.A."
	case LayoutBradesco:
		return "BANCO BRADESCO S.A."
	case LayoutItau:
		return "ITAÚ UNIBANCO S.A."
	case LayoutSantander:
		return "BANCO SANTANDER S.A."
	default:
		return ""
	}
}

// DisplayName renders a layout for the canal_utilizado field, e.g.
// "will_bank" -> "Will Bank".
func (l Layout) DisplayName() string {
	switch l {
	case LayoutWillBank:
		return "Will Bank"
	case LayoutNubank:
		return "Nubank"
	case LayoutCaixa:
		return "Caixa"
	case LayoutBancoDoBrasil:
		return "Bb"
	case LayoutBradesco:
		return "Bradesco"
	case LayoutItau:
		return "Itau"
	case LayoutSantander:
		return "Santander"
	default:
		return "Generico"
	}
}

// TransactionType is the document class recognized on a receipt.
type TransactionType string

const (
	TypePix      TransactionType = "pix"
	TypeTransfer TransactionType = "transferencia"
	TypeBoleto   TransactionType = "boleto"
	TypeGeneric  TransactionType = "generico"
)
