package models

import (
	"time"

	"github.com/google/uuid"
)

// ExportRun status constants.
const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// ExportRun is the GORM model recording one conversion run.
type ExportRun struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MasterFilename   string    `gorm:"type:varchar(255)" json:"master_filename"`
	TemplateFilename string    `gorm:"type:varchar(255)" json:"template_filename"`
	Strategy         string    `gorm:"type:varchar(16)" json:"strategy"`
	RowCount         int       `gorm:"not null" json:"row_count"`
	ProductCount     int       `gorm:"not null" json:"product_count"`
	SkippedCount     int       `gorm:"not null" json:"skipped_count"`
	FallbackCount    int       `gorm:"not null" json:"fallback_count"`
	Status           string    `gorm:"type:varchar(16);not null;index" json:"status"`
	Error            string    `gorm:"type:text" json:"error,omitempty"`
	DurationMS       int64     `json:"duration_ms"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}
