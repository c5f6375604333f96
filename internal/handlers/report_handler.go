package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "clinfin/internal/errors"
	"clinfin/internal/report"
	"clinfin/internal/services"
)

// ReportHandler serves aggregated financial reports.
type ReportHandler struct {
	reportingService services.ReportingServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportingService services.ReportingServicer) *ReportHandler {
	return &ReportHandler{reportingService: reportingService}
}

type timeframeQuery struct {
	Timeframe string `form:"timeframe" binding:"omitempty,timeframe"`
}

// Summary handles the overall totals report
// @Summary     Financial summary
// @Description Revenue total, expense total and net balance, optionally restricted to a year and month
// @Tags        reports
// @Produce     json
// @Param       year  query int false "Filter by year"
// @Param       month query int false "Filter by month (1-12, requires year)"
// @Success     200 {object} report.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	var q monthFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	summary, err := h.reportingService.Summary(q.Year, q.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DailyBuckets handles the per-day report with running balance
// @Summary     Daily report
// @Description Per-day revenue, expense and cumulative balance
// @Tags        reports
// @Produce     json
// @Success     200 {array}  report.DailyBucket "Daily buckets"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/daily [get]
func (h *ReportHandler) DailyBuckets(c *gin.Context) {
	buckets, err := h.reportingService.DailyBuckets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, buckets)
}

// ExportDaily handles the CSV export of the daily report
// @Summary     Export daily report
// @Description Download the per-day report as a CSV file
// @Tags        reports
// @Produce     text/csv
// @Success     200 {string} string "CSV document"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/daily/export [get]
func (h *ReportHandler) ExportDaily(c *gin.Context) {
	data, contentType, err := h.reportingService.ExportDaily("daily")
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="daily-report.csv"`)
	c.Data(http.StatusOK, contentType, data)
}

// ExportSummary handles the CSV export of the totals summary
// @Summary     Export financial summary
// @Description Download the totals summary as a CSV file, optionally restricted to a year and month
// @Tags        reports
// @Produce     text/csv
// @Param       year  query int false "Filter by year"
// @Param       month query int false "Filter by month (1-12, requires year)"
// @Success     200 {string} string "CSV document"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/summary/export [get]
func (h *ReportHandler) ExportSummary(c *gin.Context) {
	var q monthFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	data, contentType, err := h.reportingService.ExportSummary("summary", q.Year, q.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="summary-report.csv"`)
	c.Data(http.StatusOK, contentType, data)
}

// TimeframeBuckets handles the windowed buckets report
// @Summary     Timeframe report
// @Description Per-day or per-month buckets over the most recent window (7 days, 30 days or 12 months)
// @Tags        reports
// @Produce     json
// @Param       timeframe query string false "Window: weekly, monthly or yearly (default weekly)"
// @Success     200 {array}  report.TimeframeBucket "Buckets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/timeframe [get]
func (h *ReportHandler) TimeframeBuckets(c *gin.Context) {
	var q timeframeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tf := report.Timeframe(q.Timeframe)
	if q.Timeframe == "" {
		tf = report.TimeframeWeekly
	}

	buckets, err := h.reportingService.TimeframeBuckets(tf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, buckets)
}
