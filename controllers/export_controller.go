package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trcsocial/shopify-csv-uploader/models"
	"github.com/trcsocial/shopify-csv-uploader/services"
)

// ExportController handles HTTP requests for the CSV export flow.
type ExportController struct {
	exportService services.ExportService
	validator     *RequestValidator
}

// NewExportController creates a new export controller.
func NewExportController(exportService services.ExportService, validator *RequestValidator) *ExportController {
	return &ExportController{
		exportService: exportService,
		validator:     validator,
	}
}

// Index serves the upload page.
func (ec *ExportController) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}

// Enrich handles POST /enrich. It takes the master and template CSVs as
// multipart files and responds with the ZIP bundle.
func (ec *ExportController) Enrich(c *gin.Context) {
	masterFile, err := ec.getAndValidateFile(c, "master_csv")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	templateFile, err := ec.getAndValidateFile(c, "template_csv")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	master, err := masterFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open master CSV"})
		return
	}
	defer master.Close()

	template, err := templateFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open template CSV"})
		return
	}
	defer template.Close()

	result, svcErr := ec.exportService.Run(c.Request.Context(), services.ExportInput{
		MasterName:   masterFile.Filename,
		Master:       master,
		TemplateName: templateFile.Filename,
		Template:     template,
	})
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+models.BundleFilename)
	c.Header("X-Export-Run-Id", result.Run.ID.String())
	c.Data(http.StatusOK, "application/zip", result.Bundle.Zip)
}

// ListRuns handles GET /runs
func (ec *ExportController) ListRuns(c *gin.Context) {
	page, limit, err := ec.validator.ParsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runs, total, svcErr := ec.exportService.ListRuns(c.Request.Context(), page, limit)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetRun handles GET /runs/:id
func (ec *ExportController) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid run ID"})
		return
	}

	run, svcErr := ec.exportService.GetRun(c.Request.Context(), id)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, run)
}

func (ec *ExportController) getAndValidateFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%s is required", field)
	}
	if !ec.validator.IsValidCSVFile(file) {
		return nil, fmt.Errorf("invalid file type for %s. Only CSV files are allowed", field)
	}
	if err := ec.validator.ValidateFileSize(file); err != nil {
		return nil, err
	}
	return file, nil
}
