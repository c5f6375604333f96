package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "clinfin/internal/errors"
	"clinfin/internal/models"
	"clinfin/internal/report"
)

// activityService handles activity-related business logic.
type activityService struct {
	db *gorm.DB
}

// NewActivityService creates a new ActivityServicer.
func NewActivityService(db *gorm.DB) ActivityServicer {
	return &activityService{db: db}
}

// ListActivities retrieves all activities ordered by start time, optionally
// filtered by derived status and by (year, month) of the start timestamp.
// Filters are conjunctive; now is explicit so callers stay deterministic.
func (s *activityService) ListActivities(status string, year, month int, now time.Time) ([]models.Activity, error) {
	var activities []models.Activity
	if err := s.db.Order("start ASC").Find(&activities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	activities = report.ActivitiesInMonth(activities, year, month)
	activities = report.ActivitiesByStatus(activities, status, now)
	return activities, nil
}

// GetActivityByID retrieves an activity by ID.
func (s *activityService) GetActivityByID(id uint) (*models.Activity, error) {
	var activity models.Activity
	if err := s.db.First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrActivityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &activity, nil
}

func validateActivity(title string, start, end time.Time) error {
	if title == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if start.IsZero() || end.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "start and end are required")
	}
	if !start.Before(end) {
		return apperrors.ErrInvalidPeriod
	}
	return nil
}

// CreateActivity creates a new activity.
func (s *activityService) CreateActivity(title string, start, end time.Time, description string) (*models.Activity, error) {
	if err := validateActivity(title, start, end); err != nil {
		return nil, err
	}

	activity := &models.Activity{
		Title:       title,
		Start:       start,
		End:         end,
		Description: description,
	}
	if err := s.db.Create(activity).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return activity, nil
}

// UpdateActivity replaces the title, period and description of an existing activity.
func (s *activityService) UpdateActivity(id uint, title string, start, end time.Time, description string) (*models.Activity, error) {
	if err := validateActivity(title, start, end); err != nil {
		return nil, err
	}

	activity, err := s.GetActivityByID(id)
	if err != nil {
		return nil, err
	}

	activity.Title = title
	activity.Start = start
	activity.End = end
	activity.Description = description
	if err := s.db.Save(activity).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return activity, nil
}

// DeleteActivity deletes an activity by ID.
func (s *activityService) DeleteActivity(id uint) error {
	result := s.db.Delete(&models.Activity{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrActivityNotFound
	}
	return nil
}
