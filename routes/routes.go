package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/trcsocial/shopify-csv-uploader/controllers"
)

// RegisterExportRoutes sets up the upload page and export endpoints.
func RegisterExportRoutes(r *gin.Engine, ec *controllers.ExportController) {
	r.GET("/", ec.Index)
	r.POST("/enrich", ec.Enrich)

	// Run history for completed and failed exports
	runs := r.Group("/runs")
	runs.GET("", ec.ListRuns)
	runs.GET("/:id", ec.GetRun)
}
