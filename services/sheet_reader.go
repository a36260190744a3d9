package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trcsocial/shopify-csv-uploader/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// MasterSheetReader parses distributor master sheets into typed rows.
type MasterSheetReader struct {
	validate *validator.Validate
}

func NewMasterSheetReader() *MasterSheetReader {
	return &MasterSheetReader{validate: validator.New()}
}

// Parse reads the master CSV into rows, preserving input order. Rows with a
// blank juno_cat are dropped entirely. Rows that fail validation are kept as
// skipped entries carrying their flags, so the research log can still report
// them. A missing required column aborts the whole run.
func (r *MasterSheetReader) Parse(src io.Reader) ([]models.ParsedRow, *ServiceError) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Failed to read master CSV: " + err.Error()}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Master CSV is empty"}
	}
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Failed to parse master CSV: " + err.Error()}
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range models.RequiredMasterColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Master CSV missing columns: " + strings.Join(missing, ", ")}
	}

	var rows []models.ParsedRow
	seen := make(map[string]bool)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Failed to parse master CSV at line " + strconv.Itoa(line) + ": " + err.Error()}
		}

		get := func(key string) string {
			idx, ok := colIndex[key]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		cat := get(models.ColumnJunoCat)
		if cat == "" {
			// Without a catalog id the row cannot be keyed in either output.
			continue
		}

		parsed := models.ParsedRow{Line: line}
		row := models.MasterSheetRow{
			JunoCat:        cat,
			PriceINR:       get(models.ColumnPriceINR),
			Tier:           get(models.ColumnTier),
			Condition:      get(models.ColumnCondition),
			EAN:            get(models.ColumnEAN),
			FormatOverride: get(models.ColumnFormatOverride),
			EditionNotes:   get(models.ColumnEditionNotes),
		}

		row.InventoryQty = 1
		if raw := get(models.ColumnInventoryQty); raw != "" {
			qty, convErr := strconv.Atoi(raw)
			if convErr != nil {
				parsed.Flags = append(parsed.Flags, models.FlagInvalidQty)
			} else {
				row.InventoryQty = qty
			}
		}

		if vErr := r.validate.Struct(&row); vErr != nil {
			var vErrs validator.ValidationErrors
			if errors.As(vErr, &vErrs) {
				for _, fieldErr := range vErrs {
					switch fieldErr.Field() {
					case "PriceINR":
						parsed.Flags = append(parsed.Flags, models.FlagInvalidPrice)
					case "InventoryQty":
						parsed.Flags = append(parsed.Flags, models.FlagInvalidQty)
					}
				}
			}
		}

		if seen[cat] {
			parsed.Flags = append(parsed.Flags, models.FlagDuplicateCat)
		}
		seen[cat] = true

		parsed.Row = row
		parsed.Skipped = len(parsed.Flags) > 0
		rows = append(rows, parsed)
	}

	return rows, nil
}

// ParseTemplateHeader reads the Shopify template CSV and returns its header
// columns verbatim. Data rows in the template are ignored; only the header
// contributes to the output schema.
func ParseTemplateHeader(src io.Reader) ([]string, *ServiceError) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Failed to read template CSV: " + err.Error()}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Template CSV is empty"}
	}
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Failed to parse template CSV: " + err.Error()}
	}
	return header, nil
}
