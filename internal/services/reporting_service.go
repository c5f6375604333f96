package services

import (
	"gorm.io/gorm"

	apperrors "clinfin/internal/errors"
	"clinfin/internal/models"
	"clinfin/internal/report"
)

// reportingService fetches immutable snapshots from the store and delegates
// all computation to the pure report package. No aggregation happens here
// or further down in the renderer.
type reportingService struct {
	db       *gorm.DB
	renderer report.Renderer
}

// NewReportingService creates a new ReportingServicer.
func NewReportingService(db *gorm.DB, renderer report.Renderer) ReportingServicer {
	return &reportingService{db: db, renderer: renderer}
}

func (s *reportingService) snapshot() ([]models.Transaction, []models.Activity, error) {
	var transactions []models.Transaction
	if err := s.db.Find(&transactions).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var activities []models.Activity
	if err := s.db.Find(&activities).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, activities, nil
}

// Summary totals transactions, optionally restricted to a (year, month).
func (s *reportingService) Summary(year, month int) (report.Summary, error) {
	transactions, _, err := s.snapshot()
	if err != nil {
		return report.Summary{}, err
	}
	return report.Summarize(report.TransactionsInMonth(transactions, year, month)), nil
}

// DailyBuckets returns the per-day aggregation with running balance.
func (s *reportingService) DailyBuckets() ([]report.DailyBucket, error) {
	transactions, activities, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return report.BucketByDay(transactions, activities), nil
}

// TimeframeBuckets returns the timeframe grouping (7/30/12 trailing buckets).
func (s *reportingService) TimeframeBuckets(tf report.Timeframe) ([]report.TimeframeBucket, error) {
	transactions, activities, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return report.GroupByTimeframe(transactions, activities, tf), nil
}

// ExportDaily renders the daily aggregation as a downloadable document.
func (s *reportingService) ExportDaily(period string) ([]byte, string, error) {
	buckets, err := s.DailyBuckets()
	if err != nil {
		return nil, "", err
	}
	data, err := s.renderer.RenderDaily(period, buckets)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return data, s.renderer.ContentType(), nil
}

// ExportSummary renders the totals summary as a downloadable document,
// optionally restricted to a (year, month).
func (s *reportingService) ExportSummary(period string, year, month int) ([]byte, string, error) {
	summary, err := s.Summary(year, month)
	if err != nil {
		return nil, "", err
	}
	data, err := s.renderer.RenderSummary(period, summary)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return data, s.renderer.ContentType(), nil
}
