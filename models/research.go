package models

// Research-log flags. Joined with ";" in the research CSV.
const (
	FlagFallback         = "fallback"
	FlagCached           = "cached"
	FlagMissingEAN       = "missing-ean"
	FlagMissingImage     = "missing-image"
	FlagMissingTracklist = "missing-tracklist"
	FlagInvalidPrice     = "invalid-price"
	FlagInvalidQty       = "invalid-qty"
	FlagDuplicateCat     = "duplicate-cat"
)

// ResearchEntry records the provenance of one row's enrichment. Skipped rows
// get an entry with an empty source and zero confidence.
type ResearchEntry struct {
	SKU        string   `json:"sku"`
	Source     Source   `json:"source"`
	Confidence float64  `json:"confidence"`
	Flags      []string `json:"flags"`
}
