package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trcsocial/shopify-csv-uploader/models"
)

// RunRepository defines data access operations for export runs.
type RunRepository interface {
	Create(ctx context.Context, run *models.ExportRun) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ExportRun, error)
	FindAll(ctx context.Context, page, limit int) ([]models.ExportRun, int64, error)
}

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GORM-backed run repository.
func NewGormRunRepository(db *gorm.DB) RunRepository {
	return &GormRunRepository{db: db}
}

func (r *GormRunRepository) Create(ctx context.Context, run *models.ExportRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *GormRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ExportRun, error) {
	var run models.ExportRun
	if err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *GormRunRepository) FindAll(ctx context.Context, page, limit int) ([]models.ExportRun, int64, error) {
	var runs []models.ExportRun
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ExportRun{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&runs).Error; err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}
