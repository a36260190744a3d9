package services

import "github.com/trcsocial/shopify-csv-uploader/models"

// ResearchLog accumulates provenance entries, one per keyed input row, in
// input order.
type ResearchLog struct {
	entries []models.ResearchEntry
}

func NewResearchLog() *ResearchLog {
	return &ResearchLog{}
}

// Record appends the entry for one row.
func (l *ResearchLog) Record(sku string, source models.Source, confidence float64, flags []string) {
	l.entries = append(l.entries, models.ResearchEntry{
		SKU:        sku,
		Source:     source,
		Confidence: confidence,
		Flags:      flags,
	})
}

// Entries returns the recorded entries in insertion order.
func (l *ResearchLog) Entries() []models.ResearchEntry {
	return l.entries
}
