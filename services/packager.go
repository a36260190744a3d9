package services

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/trcsocial/shopify-csv-uploader/models"
)

// researchHeader is the fixed research-log schema.
var researchHeader = []string{"sku", "source", "confidence", "flags"}

// BuildBundle serializes the product table and the research log and zips them
// together. Any serialization failure aborts the whole bundle so the two
// files are only ever delivered as a pair.
func BuildBundle(templateColumns []string, products []models.ProductRow, entries []models.ResearchEntry) (*models.ExportBundle, *ServiceError) {
	productsCSV, err := writeProductsCSV(templateColumns, products)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to serialize products CSV: " + err.Error()}
	}

	researchCSV, err := writeResearchCSV(entries)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to serialize research log: " + err.Error()}
	}

	zipBytes, err := zipBundle(productsCSV, researchCSV)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to package export bundle: " + err.Error()}
	}

	return &models.ExportBundle{
		ProductsCSV:    productsCSV,
		ResearchLogCSV: researchCSV,
		Zip:            zipBytes,
	}, nil
}

func writeProductsCSV(columns []string, rows []models.ProductRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeResearchCSV(entries []models.ResearchEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(researchHeader); err != nil {
		return nil, err
	}
	for _, e := range entries {
		record := []string{
			e.SKU,
			string(e.Source),
			strconv.FormatFloat(e.Confidence, 'f', 2, 64),
			strings.Join(e.Flags, ";"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func zipBundle(productsCSV, researchCSV []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	members := []struct {
		name string
		data []byte
	}{
		{models.ProductsCSVFilename, productsCSV},
		{models.ResearchLogFilename, researchCSV},
	}
	for _, m := range members {
		f, err := zw.Create(m.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", m.name, err)
		}
		if _, err := f.Write(m.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", m.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
