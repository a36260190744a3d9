package models

// Bundle member filenames.
const (
	BundleFilename      = "shopify_export_bundle.zip"
	ProductsCSVFilename = "shopify_products.csv"
	ResearchLogFilename = "research_log.csv"
)

// ProductRow is one Shopify import row keyed by template column name. Column
// order is carried separately as the template header slice and applied when
// the CSV is written.
type ProductRow map[string]string

// ExportBundle holds the serialized outputs of one run. The three payloads
// are produced together or not at all.
type ExportBundle struct {
	ProductsCSV    []byte `json:"-"`
	ResearchLogCSV []byte `json:"-"`
	Zip            []byte `json:"-"`
}
