package models

// Master-sheet column names. The first five are required; the reader rejects
// files whose header is missing any of them.
const (
	ColumnJunoCat        = "juno_cat"
	ColumnPriceINR       = "price_inr"
	ColumnTier           = "tier"
	ColumnCondition      = "condition"
	ColumnInventoryQty   = "inventory_qty"
	ColumnEAN            = "ean"
	ColumnFormatOverride = "format_override"
	ColumnEditionNotes   = "edition_notes"
)

// RequiredMasterColumns lists the columns every master sheet must carry.
var RequiredMasterColumns = []string{
	ColumnJunoCat,
	ColumnPriceINR,
	ColumnTier,
	ColumnCondition,
	ColumnInventoryQty,
}

// MasterSheetRow is one line of the distributor master sheet. PriceINR keeps
// the raw cell value so the export copies it through unchanged.
type MasterSheetRow struct {
	JunoCat        string `json:"juno_cat" validate:"required"`
	PriceINR       string `json:"price_inr" validate:"omitempty,numeric"`
	Tier           string `json:"tier"`
	Condition      string `json:"condition"`
	InventoryQty   int    `json:"inventory_qty" validate:"gte=0"`
	EAN            string `json:"ean,omitempty"`
	FormatOverride string `json:"format_override,omitempty"`
	EditionNotes   string `json:"edition_notes,omitempty"`
}

// ParsedRow is a master-sheet row plus its parse outcome. Skipped rows keep
// their slot so the research log stays aligned with input order.
type ParsedRow struct {
	Line    int            `json:"line"`
	Row     MasterSheetRow `json:"row"`
	Skipped bool           `json:"skipped"`
	Flags   []string       `json:"flags,omitempty"`
}
