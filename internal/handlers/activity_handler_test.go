package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "clinfin/internal/errors"
	"clinfin/internal/models"
	"clinfin/internal/services"
)

// --- mock activity service ---

type mockActivityService struct {
	listActivitiesFn  func(status string, year, month int, now time.Time) ([]models.Activity, error)
	getActivityByIDFn func(id uint) (*models.Activity, error)
	createActivityFn  func(title string, start, end time.Time, description string) (*models.Activity, error)
	updateActivityFn  func(id uint, title string, start, end time.Time, description string) (*models.Activity, error)
	deleteActivityFn  func(id uint) error
}

func (m *mockActivityService) ListActivities(status string, year, month int, now time.Time) ([]models.Activity, error) {
	if m.listActivitiesFn != nil {
		return m.listActivitiesFn(status, year, month, now)
	}
	return []models.Activity{}, nil
}

func (m *mockActivityService) GetActivityByID(id uint) (*models.Activity, error) {
	if m.getActivityByIDFn != nil {
		return m.getActivityByIDFn(id)
	}
	return &models.Activity{}, nil
}

func (m *mockActivityService) CreateActivity(title string, start, end time.Time, description string) (*models.Activity, error) {
	if m.createActivityFn != nil {
		return m.createActivityFn(title, start, end, description)
	}
	return &models.Activity{}, nil
}

func (m *mockActivityService) UpdateActivity(id uint, title string, start, end time.Time, description string) (*models.Activity, error) {
	if m.updateActivityFn != nil {
		return m.updateActivityFn(id, title, start, end, description)
	}
	return &models.Activity{}, nil
}

func (m *mockActivityService) DeleteActivity(id uint) error {
	if m.deleteActivityFn != nil {
		return m.deleteActivityFn(id)
	}
	return nil
}

var _ services.ActivityServicer = (*mockActivityService)(nil)

func setupActivityRouter(handler *ActivityHandler) *gin.Engine {
	r := gin.New()
	r.GET("/activites", handler.ListActivities)
	r.GET("/activites/:id", handler.GetActivityByID)
	r.POST("/activites", handler.CreateActivity)
	r.PUT("/activites/:id", handler.UpdateActivity)
	r.DELETE("/activites/:id", handler.DeleteActivity)
	return r
}

func TestActivityHandler_ListActivities(t *testing.T) {
	t.Run("defaults the status filter to all", func(t *testing.T) {
		var gotStatus string
		actSvc := &mockActivityService{
			listActivitiesFn: func(status string, _, _ int, _ time.Time) ([]models.Activity, error) {
				gotStatus = status
				return []models.Activity{}, nil
			},
		}
		handler := NewActivityHandler(actSvc, &mockAuditService{})
		r := setupActivityRouter(handler)

		rec := doRequest(r, "GET", "/activites", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotStatus != "all" {
			t.Errorf("expected status %q, got %q", "all", gotStatus)
		}
	})

	t.Run("returns activities with a derived status field", func(t *testing.T) {
		now := time.Now()
		actSvc := &mockActivityService{
			listActivitiesFn: func(_ string, _, _ int, _ time.Time) ([]models.Activity, error) {
				return []models.Activity{
					{ID: 1, Title: "Past checkup day", Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour)},
					{ID: 2, Title: "Open house", Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
					{ID: 3, Title: "Vaccination drive", Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour)},
				}, nil
			},
		}
		handler := NewActivityHandler(actSvc, &mockAuditService{})
		r := setupActivityRouter(handler)

		rec := doRequest(r, "GET", "/activites", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		items := parseJSONArray(t, rec)
		if len(items) != 3 {
			t.Fatalf("expected 3 activities, got %d", len(items))
		}
		want := []string{"finished", "ongoing", "upcoming"}
		for i, expected := range want {
			item := items[i].(map[string]interface{})
			if item["status"] != expected {
				t.Errorf("activity %d: expected status %q, got %q", i, expected, item["status"])
			}
		}
	})

	t.Run("returns 400 on an unknown status", func(t *testing.T) {
		handler := NewActivityHandler(&mockActivityService{}, &mockAuditService{})
		r := setupActivityRouter(handler)

		rec := doRequest(r, "GET", "/activites?status=cancelled", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestActivityHandler_CreateActivity(t *testing.T) {
	t.Run("returns 201 with derived status", func(t *testing.T) {
		actSvc := &mockActivityService{
			createActivityFn: func(title string, start, end time.Time, description string) (*models.Activity, error) {
				return &models.Activity{ID: 1, Title: title, Start: start, End: end, Description: description}, nil
			},
		}
		handler := NewActivityHandler(actSvc, &mockAuditService{})
		r := setupActivityRouter(handler)

		rec := doRequest(r, "POST", "/activites",
			`{"title":"Blood drive","start":"2030-06-01T09:00:00Z","end":"2030-06-01T17:00:00Z"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["title"] != "Blood drive" {
			t.Errorf("unexpected title: %v", result["title"])
		}
		if result["status"] != "upcoming" {
			t.Errorf("expected status upcoming, got %v", result["status"])
		}
	})

	t.Run("returns 400 when start is not before end", func(t *testing.T) {
		actSvc := &mockActivityService{
			createActivityFn: func(_ string, _, _ time.Time, _ string) (*models.Activity, error) {
				return nil, apperrors.ErrInvalidPeriod
			},
		}
		handler := NewActivityHandler(actSvc, &mockAuditService{})
		r := setupActivityRouter(handler)

		rec := doRequest(r, "POST", "/activites",
			`{"title":"Backwards","start":"2030-06-02T09:00:00Z","end":"2030-06-01T09:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_PERIOD")
	})

	t.Run("returns 400 when title is missing", func(t *testing.T) {
		handler := NewActivityHandler(&mockActivityService{}, &mockAuditService{})
		r := setupActivityRouter(handler)

		rec := doRequest(r, "POST", "/activites",
			`{"start":"2030-06-01T09:00:00Z","end":"2030-06-01T17:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on an unparseable start time", func(t *testing.T) {
		handler := NewActivityHandler(&mockActivityService{}, &mockAuditService{})
		r := setupActivityRouter(handler)

		rec := doRequest(r, "POST", "/activites",
			`{"title":"Bad time","start":"June 1st","end":"2030-06-01T17:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestActivityHandler_UpdateActivity(t *testing.T) {
	t.Run("returns the updated activity", func(t *testing.T) {
		actSvc := &mockActivityService{
			updateActivityFn: func(id uint, title string, start, end time.Time, description string) (*models.Activity, error) {
				return &models.Activity{ID: id, Title: title, Start: start, End: end, Description: description}, nil
			},
		}
		handler := NewActivityHandler(actSvc, &mockAuditService{})
		r := setupActivityRouter(handler)

		rec := doRequest(r, "PUT", "/activites/5",
			`{"title":"Renamed","start":"2030-06-01T09:00:00Z","end":"2030-06-01T17:00:00Z"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["title"] != "Renamed" {
			t.Errorf("unexpected title: %v", result["title"])
		}
	})

	t.Run("returns 404 for a missing activity", func(t *testing.T) {
		actSvc := &mockActivityService{
			updateActivityFn: func(_ uint, _ string, _, _ time.Time, _ string) (*models.Activity, error) {
				return nil, apperrors.ErrActivityNotFound
			},
		}
		handler := NewActivityHandler(actSvc, &mockAuditService{})
		r := setupActivityRouter(handler)

		rec := doRequest(r, "PUT", "/activites/99",
			`{"title":"Ghost","start":"2030-06-01T09:00:00Z","end":"2030-06-01T17:00:00Z"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestActivityHandler_DeleteActivity(t *testing.T) {
	t.Run("returns confirmation message", func(t *testing.T) {
		handler := NewActivityHandler(&mockActivityService{}, &mockAuditService{})
		r := setupActivityRouter(handler)

		rec := doRequest(r, "DELETE", "/activites/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["message"] != "Activity deleted" {
			t.Errorf("unexpected message: %v", result["message"])
		}
	})

	t.Run("returns 404 for a missing activity", func(t *testing.T) {
		actSvc := &mockActivityService{
			deleteActivityFn: func(_ uint) error {
				return apperrors.ErrActivityNotFound
			},
		}
		handler := NewActivityHandler(actSvc, &mockAuditService{})
		r := setupActivityRouter(handler)

		rec := doRequest(r, "DELETE", "/activites/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
