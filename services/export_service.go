package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/trcsocial/shopify-csv-uploader/models"
	"github.com/trcsocial/shopify-csv-uploader/repository"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

const defaultLookupConcurrency = 4

// ExportInput carries the two uploaded files for one run.
type ExportInput struct {
	MasterName   string
	Master       io.Reader
	TemplateName string
	Template     io.Reader
}

// ExportResult is the outcome of a completed run.
type ExportResult struct {
	Run    models.ExportRun
	Bundle *models.ExportBundle
}

// ExportService defines the business logic interface.
type ExportService interface {
	Run(ctx context.Context, input ExportInput) (*ExportResult, *ServiceError)
	GetRun(ctx context.Context, id uuid.UUID) (*models.ExportRun, *ServiceError)
	ListRuns(ctx context.Context, page, limit int) ([]models.ExportRun, int64, *ServiceError)
}

type exportServiceImpl struct {
	reader      *MasterSheetReader
	lookup      *ReleaseLookup
	runs        repository.RunRepository // nil disables run history
	archiver    BundleArchiver           // nil disables bundle archival
	concurrency int
	logger      *zap.Logger
}

// NewExportService creates a new ExportService. runs and archiver may be nil.
func NewExportService(
	lookup *ReleaseLookup,
	runs repository.RunRepository,
	archiver BundleArchiver,
	concurrency int,
	logger *zap.Logger,
) ExportService {
	if concurrency <= 0 {
		concurrency = defaultLookupConcurrency
	}
	return &exportServiceImpl{
		reader:      NewMasterSheetReader(),
		lookup:      lookup,
		runs:        runs,
		archiver:    archiver,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run converts one master sheet and template pair into an export bundle.
func (s *exportServiceImpl) Run(ctx context.Context, input ExportInput) (*ExportResult, *ServiceError) {
	started := time.Now()
	run := models.ExportRun{
		ID:               uuid.New(),
		MasterFilename:   input.MasterName,
		TemplateFilename: input.TemplateName,
		Strategy:         string(s.lookup.Strategy()),
	}

	templateColumns, svcErr := ParseTemplateHeader(input.Template)
	if svcErr != nil {
		s.recordFailure(&run, started, svcErr)
		return nil, svcErr
	}

	rows, svcErr := s.reader.Parse(input.Master)
	if svcErr != nil {
		s.recordFailure(&run, started, svcErr)
		return nil, svcErr
	}
	run.RowCount = len(rows)

	outcomes := s.resolveReleases(ctx, rows)

	products := make([]models.ProductRow, 0, len(rows))
	log := NewResearchLog()
	for i, parsed := range rows {
		if parsed.Skipped {
			run.SkippedCount++
			log.Record(parsed.Row.JunoCat, "", 0, parsed.Flags)
			continue
		}

		rel := outcomes[i].release
		flags := outcomes[i].flags
		if rel.Source == models.SourceFallback {
			run.FallbackCount++
		}
		if parsed.Row.EAN == "" {
			flags = append(flags, models.FlagMissingEAN)
		}
		if rel.ImageURL == "" {
			flags = append(flags, models.FlagMissingImage)
		}
		if len(rel.Tracks) == 0 {
			flags = append(flags, models.FlagMissingTracklist)
		}

		products = append(products, MapRow(parsed.Row, rel, templateColumns))
		log.Record(parsed.Row.JunoCat, rel.Source, rel.Confidence, flags)
	}
	run.ProductCount = len(products)

	bundle, svcErr := BuildBundle(templateColumns, products, log.Entries())
	if svcErr != nil {
		s.recordFailure(&run, started, svcErr)
		return nil, svcErr
	}

	run.Status = models.RunStatusCompleted
	run.DurationMS = time.Since(started).Milliseconds()

	s.recordRun(&run)
	s.archiveBundle(run.ID.String(), bundle.Zip)

	s.logger.Info("Export run completed",
		zap.String("run_id", run.ID.String()),
		zap.String("strategy", run.Strategy),
		zap.Int("rows", run.RowCount),
		zap.Int("products", run.ProductCount),
		zap.Int("skipped", run.SkippedCount),
		zap.Int("fallback", run.FallbackCount),
		zap.Int64("duration_ms", run.DurationMS),
	)

	return &ExportResult{Run: run, Bundle: bundle}, nil
}

type lookupOutcome struct {
	release models.Release
	flags   []string
}

// resolveReleases fans lookups out with bounded parallelism. Results land in
// index-aligned slots so output order stays input order.
func (s *exportServiceImpl) resolveReleases(ctx context.Context, rows []models.ParsedRow) []lookupOutcome {
	outcomes := make([]lookupOutcome, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, parsed := range rows {
		if parsed.Skipped {
			continue
		}
		i := i
		cat := parsed.Row.JunoCat
		g.Go(func() error {
			rel, flags := s.lookup.Lookup(gctx, cat)
			outcomes[i] = lookupOutcome{release: rel, flags: flags}
			return nil
		})
	}
	// Lookups degrade to fallback instead of failing, so Wait cannot error.
	_ = g.Wait()

	return outcomes
}

// GetRun returns one recorded run.
func (s *exportServiceImpl) GetRun(ctx context.Context, id uuid.UUID) (*models.ExportRun, *ServiceError) {
	if s.runs == nil {
		return nil, &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "Run history is not configured"}
	}

	run, err := s.runs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Run not found"}
		}
		s.logger.Error("Failed to fetch export run", zap.String("run_id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch run"}
	}
	return run, nil
}

// ListRuns returns recorded run history, newest first.
func (s *exportServiceImpl) ListRuns(ctx context.Context, page, limit int) ([]models.ExportRun, int64, *ServiceError) {
	if s.runs == nil {
		return nil, 0, &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "Run history is not configured"}
	}

	runs, total, err := s.runs.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list export runs", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch run history"}
	}
	return runs, total, nil
}

func (s *exportServiceImpl) recordFailure(run *models.ExportRun, started time.Time, svcErr *ServiceError) {
	run.Status = models.RunStatusFailed
	run.Error = svcErr.Message
	run.DurationMS = time.Since(started).Milliseconds()
	s.recordRun(run)
}

// recordRun persists run history when a repository is configured. Failures
// are logged and ignored.
func (s *exportServiceImpl) recordRun(run *models.ExportRun) {
	if s.runs == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.runs.Create(ctx, run); err != nil {
		s.logger.Warn("Failed to record export run",
			zap.String("run_id", run.ID.String()),
			zap.Error(err),
		)
	}
}

// archiveBundle uploads the finished ZIP when an archiver is configured.
// Failures are logged and ignored.
func (s *exportServiceImpl) archiveBundle(runID string, zipBytes []byte) {
	if s.archiver == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.archiver.Archive(ctx, runID, zipBytes); err != nil {
		s.logger.Warn("Failed to archive export bundle",
			zap.String("run_id", runID),
			zap.Error(err),
		)
	}
}
