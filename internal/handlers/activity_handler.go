package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "clinfin/internal/errors"
	"clinfin/internal/models"
	"clinfin/internal/report"
	"clinfin/internal/services"
)

// ActivityHandler handles activity-related requests.
type ActivityHandler struct {
	activityService services.ActivityServicer
	auditService    services.AuditServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService services.ActivityServicer, auditService services.AuditServicer) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, auditService: auditService}
}

// ActivityRequest represents the payload for creating or updating an activity.
type ActivityRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Start       string `json:"start" binding:"required"`
	End         string `json:"end" binding:"required"`
	Description string `json:"description" binding:"max=500"`
}

// ActivityResponse is an activity enriched with its status derived from the
// current time. Status is never stored; it is recomputed on every read.
type ActivityResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

type listActivitiesQuery struct {
	Status string `form:"status" binding:"omitempty,activity_status"`
	Year   int    `form:"year" binding:"omitempty,min=1970,max=2999"`
	Month  int    `form:"month" binding:"omitempty,min=1,max=12"`
}

func toActivityResponse(a models.Activity, now time.Time) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		Title:       a.Title,
		Start:       a.Start,
		End:         a.End,
		Description: a.Description,
		Status:      string(a.StatusAt(now)),
	}
}

// ListActivities handles the retrieval of all activities
// @Summary     List activities
// @Description Get all activities ordered by start time, optionally filtered by status, year and month
// @Tags        activities
// @Produce     json
// @Param       status query string false "Filter by status (all, upcoming, ongoing, finished)"
// @Param       year   query int    false "Filter by year"
// @Param       month  query int    false "Filter by month (1-12, requires year)"
// @Success     200 {array}  ActivityResponse "Activities"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activites [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	var q listActivitiesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	status := q.Status
	if status == "" {
		status = report.StatusAll
	}

	now := time.Now()
	activities, err := h.activityService.ListActivities(status, q.Year, q.Month, now)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		responses = append(responses, toActivityResponse(a, now))
	}

	c.JSON(http.StatusOK, responses)
}

// GetActivityByID handles the retrieval of a single activity
// @Summary     Get an activity
// @Description Get an activity by its ID
// @Tags        activities
// @Produce     json
// @Param       id path int true "Activity ID"
// @Success     200 {object} ActivityResponse "Activity"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activites/{id} [get]
func (h *ActivityHandler) GetActivityByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	activity, err := h.activityService.GetActivityByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toActivityResponse(*activity, time.Now()))
}

// CreateActivity handles the creation of a new activity
// @Summary     Create an activity
// @Description Create a new activity with a start and end time
// @Tags        activities
// @Accept      json
// @Produce     json
// @Param       request body ActivityRequest true "Activity details"
// @Success     201 {object} ActivityResponse "Activity created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activites [post]
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	start, end, err := parseActivityPeriod(req.Start, req.End)
	if err != nil {
		respondWithError(c, err)
		return
	}

	activity, err := h.activityService.CreateActivity(req.Title, start, end, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	role, actorID := actor(c)
	h.auditService.Log(role, actorID, "CREATE_ACTIVITY", "activity", activity.ID, c.ClientIP(),
		map[string]interface{}{"title": activity.Title})

	c.JSON(http.StatusCreated, toActivityResponse(*activity, time.Now()))
}

// UpdateActivity handles the full replacement of an activity's fields
// @Summary     Update an activity
// @Description Replace the title, period and description of an activity
// @Tags        activities
// @Accept      json
// @Produce     json
// @Param       id      path int             true "Activity ID"
// @Param       request body ActivityRequest true "Activity details"
// @Success     200 {object} ActivityResponse "Updated activity"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activites/{id} [put]
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	start, end, err := parseActivityPeriod(req.Start, req.End)
	if err != nil {
		respondWithError(c, err)
		return
	}

	activity, err := h.activityService.UpdateActivity(id, req.Title, start, end, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	role, actorID := actor(c)
	h.auditService.Log(role, actorID, "UPDATE_ACTIVITY", "activity", activity.ID, c.ClientIP(),
		map[string]interface{}{"title": activity.Title})

	c.JSON(http.StatusOK, toActivityResponse(*activity, time.Now()))
}

// DeleteActivity handles the deletion of an activity
// @Summary     Delete an activity
// @Description Delete an activity by its ID
// @Tags        activities
// @Produce     json
// @Param       id path int true "Activity ID"
// @Success     200 {object} MessageResponse "Activity deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activites/{id} [delete]
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.activityService.DeleteActivity(id); err != nil {
		respondWithError(c, err)
		return
	}

	role, actorID := actor(c)
	h.auditService.Log(role, actorID, "DELETE_ACTIVITY", "activity", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted"})
}

func parseActivityPeriod(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := parseFlexibleTime(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start time: "+err.Error())
	}
	end, err := parseFlexibleTime(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end time: "+err.Error())
	}
	return start, end, nil
}
