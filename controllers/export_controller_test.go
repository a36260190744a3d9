package controllers_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/trcsocial/shopify-csv-uploader/controllers"
	"github.com/trcsocial/shopify-csv-uploader/models"
	"github.com/trcsocial/shopify-csv-uploader/providers"
	"github.com/trcsocial/shopify-csv-uploader/services"
)

const (
	testMasterHeader = "juno_cat,price_inr,tier,condition,inventory_qty,ean,format_override,edition_notes\n"
	testTemplate     = "Handle,Title,Vendor,Variant SKU,Variant Price\n"
)

// ---- concrete mock implementing services.ExportService ----

type concreteMockSvc struct {
	result  *services.ExportResult
	runErr  *services.ServiceError
	run     *models.ExportRun
	getErr  *services.ServiceError
	runs    []models.ExportRun
	total   int64
	listErr *services.ServiceError
}

func (m *concreteMockSvc) Run(ctx context.Context, input services.ExportInput) (*services.ExportResult, *services.ServiceError) {
	if m.runErr != nil {
		return nil, m.runErr
	}
	return m.result, nil
}

func (m *concreteMockSvc) GetRun(ctx context.Context, id uuid.UUID) (*models.ExportRun, *services.ServiceError) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.run, nil
}

func (m *concreteMockSvc) ListRuns(ctx context.Context, page, limit int) ([]models.ExportRun, int64, *services.ServiceError) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.runs, m.total, nil
}

// ---- helpers ----

func setupRouter(svc services.ExportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ec := controllers.NewExportController(svc, controllers.NewRequestValidator())

	r.GET("/", ec.Index)
	r.POST("/enrich", ec.Enrich)
	r.GET("/runs", ec.ListRuns)
	r.GET("/runs/:id", ec.GetRun)
	return r
}

func newFallbackService() services.ExportService {
	lookup := services.NewReleaseLookup(models.StrategyFallback, nil, providers.NewFallbackProvider(), nil)
	return services.NewExportService(lookup, nil, nil, 2, zap.NewNop())
}

type filePart struct {
	field    string
	filename string
	content  string
}

func multipartBody(t *testing.T, parts []filePart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.filename)
		assert.NoError(t, err)
		_, err = fw.Write([]byte(p.content))
		assert.NoError(t, err)
	}
	assert.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postEnrich(t *testing.T, r *gin.Engine, parts []filePart) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, parts)
	req := httptest.NewRequest(http.MethodPost, "/enrich", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestIndex_ServesUploadPage(t *testing.T) {
	r := setupRouter(newFallbackService())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `<form id="upload-form">`)
	assert.Contains(t, w.Body.String(), "Juno Master Sheet")
}

func TestEnrich_Success(t *testing.T) {
	r := setupRouter(newFallbackService())

	master := testMasterHeader + "CAT1,1200,A,Mint,1,5051111111111,,\n"
	w := postEnrich(t, r, []filePart{
		{"master_csv", "master.csv", master},
		{"template_csv", "template.csv", testTemplate},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=shopify_export_bundle.zip", w.Header().Get("Content-Disposition"))

	_, err := uuid.Parse(w.Header().Get("X-Export-Run-Id"))
	assert.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	assert.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"shopify_products.csv", "research_log.csv"}, names)
}

func TestEnrich_MissingTemplateFile(t *testing.T) {
	r := setupRouter(newFallbackService())

	w := postEnrich(t, r, []filePart{
		{"master_csv", "master.csv", testMasterHeader},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "template_csv is required", resp["error"])
}

func TestEnrich_InvalidFileType(t *testing.T) {
	r := setupRouter(newFallbackService())

	w := postEnrich(t, r, []filePart{
		{"master_csv", "master.pdf", "%PDF-1.4"},
		{"template_csv", "template.csv", testTemplate},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "invalid file type for master_csv. Only CSV files are allowed", resp["error"])
}

func TestEnrich_MissingColumns(t *testing.T) {
	r := setupRouter(newFallbackService())

	w := postEnrich(t, r, []filePart{
		{"master_csv", "master.csv", "juno_cat,price_inr\nCAT1,100\n"},
		{"template_csv", "template.csv", testTemplate},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Master CSV missing columns: condition, inventory_qty, tier", resp["error"])
}

func TestEnrich_EmptyTemplate(t *testing.T) {
	r := setupRouter(newFallbackService())

	w := postEnrich(t, r, []filePart{
		{"master_csv", "master.csv", testMasterHeader},
		{"template_csv", "template.csv", ""},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Template CSV is empty", resp["error"])
}

func TestListRuns_Success(t *testing.T) {
	svc := &concreteMockSvc{
		runs:  []models.ExportRun{{ID: uuid.New(), Status: models.RunStatusCompleted}},
		total: 1,
	}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	runs, ok := resp["runs"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, runs, 1)
	assert.Equal(t, float64(1), resp["total"])
}

func TestListRuns_HistoryDisabled(t *testing.T) {
	r := setupRouter(newFallbackService())

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListRuns_BadPagination(t *testing.T) {
	r := setupRouter(&concreteMockSvc{})

	req := httptest.NewRequest(http.MethodGet, "/runs?page=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRun_Success(t *testing.T) {
	id := uuid.New()
	svc := &concreteMockSvc{run: &models.ExportRun{ID: id, Status: models.RunStatusCompleted}}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/runs/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, id.String(), resp["id"])
}

func TestGetRun_InvalidID(t *testing.T) {
	r := setupRouter(&concreteMockSvc{})

	req := httptest.NewRequest(http.MethodGet, "/runs/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRun_NotFound(t *testing.T) {
	svc := &concreteMockSvc{getErr: &services.ServiceError{StatusCode: http.StatusNotFound, Message: "Run not found"}}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/runs/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
