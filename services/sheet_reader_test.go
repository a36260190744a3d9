package services_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trcsocial/shopify-csv-uploader/models"
	"github.com/trcsocial/shopify-csv-uploader/services"
)

const masterHeader = "juno_cat,price_inr,tier,condition,inventory_qty,ean,format_override,edition_notes\n"

func TestParse_MissingColumnsAbortsRun(t *testing.T) {
	reader := services.NewMasterSheetReader()

	rows, svcErr := reader.Parse(strings.NewReader("juno_cat,price_inr,inventory_qty\nCAT1,100,1\n"))
	assert.Nil(t, rows)
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
		assert.Equal(t, "Master CSV missing columns: condition, tier", svcErr.Message)
	}
}

func TestParse_EmptyFile(t *testing.T) {
	reader := services.NewMasterSheetReader()

	_, svcErr := reader.Parse(strings.NewReader(""))
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, "Master CSV is empty", svcErr.Message)
	}
}

func TestParse_BlankQuantityDefaultsToOne(t *testing.T) {
	reader := services.NewMasterSheetReader()

	rows, svcErr := reader.Parse(strings.NewReader(masterHeader + "CAT1,1500,A,Mint,,,,\n"))
	assert.Nil(t, svcErr)
	if assert.Len(t, rows, 1) {
		assert.False(t, rows[0].Skipped)
		assert.Equal(t, 1, rows[0].Row.InventoryQty)
	}
}

func TestParse_DropsRowsWithoutCatalogID(t *testing.T) {
	reader := services.NewMasterSheetReader()

	input := masterHeader +
		",1500,A,Mint,2,,,\n" +
		"CAT2,900,B,VG+,1,,,\n"
	rows, svcErr := reader.Parse(strings.NewReader(input))
	assert.Nil(t, svcErr)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "CAT2", rows[0].Row.JunoCat)
	}
}

func TestParse_FlagsInvalidPrice(t *testing.T) {
	reader := services.NewMasterSheetReader()

	rows, svcErr := reader.Parse(strings.NewReader(masterHeader + "CAT1,abc,A,Mint,2,,,\n"))
	assert.Nil(t, svcErr)
	if assert.Len(t, rows, 1) {
		assert.True(t, rows[0].Skipped)
		assert.Contains(t, rows[0].Flags, models.FlagInvalidPrice)
	}
}

func TestParse_FlagsInvalidQuantity(t *testing.T) {
	reader := services.NewMasterSheetReader()

	input := masterHeader +
		"CAT1,1500,A,Mint,two,,,\n" +
		"CAT2,1500,A,Mint,-3,,,\n"
	rows, svcErr := reader.Parse(strings.NewReader(input))
	assert.Nil(t, svcErr)
	if assert.Len(t, rows, 2) {
		assert.True(t, rows[0].Skipped)
		assert.Contains(t, rows[0].Flags, models.FlagInvalidQty)
		assert.True(t, rows[1].Skipped)
		assert.Contains(t, rows[1].Flags, models.FlagInvalidQty)
	}
}

func TestParse_FlagsDuplicateCatalogID(t *testing.T) {
	reader := services.NewMasterSheetReader()

	input := masterHeader +
		"CAT1,1500,A,Mint,1,,,\n" +
		"CAT1,900,B,VG+,1,,,\n"
	rows, svcErr := reader.Parse(strings.NewReader(input))
	assert.Nil(t, svcErr)
	if assert.Len(t, rows, 2) {
		assert.False(t, rows[0].Skipped)
		assert.True(t, rows[1].Skipped)
		assert.Equal(t, []string{models.FlagDuplicateCat}, rows[1].Flags)
	}
}

func TestParse_StripsBOMAndWhitespace(t *testing.T) {
	reader := services.NewMasterSheetReader()

	input := "\xEF\xBB\xBF" + masterHeader + " CAT1 , 1500 ,A,Mint,2,,,\n"
	rows, svcErr := reader.Parse(strings.NewReader(input))
	assert.Nil(t, svcErr)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "CAT1", rows[0].Row.JunoCat)
		assert.Equal(t, "1500", rows[0].Row.PriceINR)
		assert.Equal(t, 2, rows[0].Row.InventoryQty)
	}
}

func TestParse_KeepsOptionalFields(t *testing.T) {
	reader := services.NewMasterSheetReader()

	input := masterHeader + "CAT1,1500.50,A,Mint,2,5051234567890,2xLP,Limited edition red vinyl\n"
	rows, svcErr := reader.Parse(strings.NewReader(input))
	assert.Nil(t, svcErr)
	if assert.Len(t, rows, 1) {
		row := rows[0].Row
		assert.Equal(t, "1500.50", row.PriceINR)
		assert.Equal(t, "5051234567890", row.EAN)
		assert.Equal(t, "2xLP", row.FormatOverride)
		assert.Equal(t, "Limited edition red vinyl", row.EditionNotes)
	}
}

func TestParseTemplateHeader_Empty(t *testing.T) {
	_, svcErr := services.ParseTemplateHeader(strings.NewReader(""))
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
		assert.Equal(t, "Template CSV is empty", svcErr.Message)
	}
}

func TestParseTemplateHeader_ReturnsColumnsVerbatim(t *testing.T) {
	columns, svcErr := services.ParseTemplateHeader(strings.NewReader("Handle,Title,Body (HTML),Custom Column\nignored,data,rows,here\n"))
	assert.Nil(t, svcErr)
	assert.Equal(t, []string{"Handle", "Title", "Body (HTML)", "Custom Column"}, columns)
}
