package services

import (
	"fmt"
	"strconv"

	"github.com/trcsocial/shopify-csv-uploader/models"
)

// selector produces one output cell from a master row and its release.
type selector func(row models.MasterSheetRow, rel models.Release) string

func rowField(pick func(models.MasterSheetRow) string) selector {
	return func(row models.MasterSheetRow, _ models.Release) string { return pick(row) }
}

func lookupField(pick func(models.Release) string) selector {
	return func(_ models.MasterSheetRow, rel models.Release) string { return pick(rel) }
}

func constant(value string) selector {
	return func(models.MasterSheetRow, models.Release) string { return value }
}

// columnSelectors is the static mapping from Shopify template column to value
// source. Template columns without an entry here are emitted empty.
var columnSelectors = map[string]selector{
	"Handle": func(row models.MasterSheetRow, rel models.Release) string {
		return Slugify(fmt.Sprintf("%s-%s-%s", rel.Artist, rel.Title, row.JunoCat))
	},
	"Title": func(_ models.MasterSheetRow, rel models.Release) string {
		return rel.Artist + " - " + rel.Title
	},
	"Body (HTML)": func(row models.MasterSheetRow, rel models.Release) string {
		return BuildDescription(rel, row.EditionNotes)
	},
	"Vendor": lookupField(func(rel models.Release) string { return rel.Label }),
	"Type": func(row models.MasterSheetRow, rel models.Release) string {
		if row.FormatOverride != "" {
			return row.FormatOverride
		}
		return rel.Format
	},
	"Tags":          buildTags,
	"Published":     constant("TRUE"),
	"Option1 Name":  constant("Title"),
	"Option1 Value": constant("Default Title"),
	"Variant SKU":   rowField(func(row models.MasterSheetRow) string { return row.JunoCat }),
	"Variant Price": rowField(func(row models.MasterSheetRow) string { return row.PriceINR }),
	"Variant Inventory Qty": func(row models.MasterSheetRow, _ models.Release) string {
		return strconv.Itoa(row.InventoryQty)
	},
	"Variant Inventory Tracker":   constant("shopify"),
	"Variant Inventory Policy":    constant("deny"),
	"Variant Fulfillment Service": constant("manual"),
	"Variant Requires Shipping":   constant("TRUE"),
	"Variant Taxable":             constant("TRUE"),
	"Variant Barcode":             rowField(func(row models.MasterSheetRow) string { return row.EAN }),
	"Image Src":                   lookupField(func(rel models.Release) string { return rel.ImageURL }),
}

func buildTags(row models.MasterSheetRow, rel models.Release) string {
	tags := []string{
		rel.Genre,
		rel.Style,
		row.Condition,
		"tier:" + row.Tier,
	}
	if row.EditionNotes != "" {
		tags = append(tags, row.EditionNotes)
	}
	return joinNonEmpty(tags, ", ")
}

// MapRow builds one Shopify product row. Every template column receives a
// value, so the output shape always mirrors the template header exactly.
func MapRow(row models.MasterSheetRow, rel models.Release, templateColumns []string) models.ProductRow {
	out := make(models.ProductRow, len(templateColumns))
	for _, col := range templateColumns {
		if sel, ok := columnSelectors[col]; ok {
			out[col] = sel(row, rel)
		} else {
			out[col] = ""
		}
	}
	return out
}
