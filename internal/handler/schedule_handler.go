package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashmilgit15/scheduler-backend/internal/dto"
	"github.com/ashmilgit15/scheduler-backend/internal/models"
	"github.com/ashmilgit15/scheduler-backend/internal/service"
	appErrors "github.com/ashmilgit15/scheduler-backend/pkg/errors"
	"github.com/ashmilgit15/scheduler-backend/pkg/response"
)

// ScheduleHandler exposes schedule generation and planning endpoints.
type ScheduleHandler struct {
	schedule *service.ScheduleService
	dates    *service.DatePlanService
	export   *service.ExportService
	metrics  *service.MetricsService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(schedule *service.ScheduleService, dates *service.DatePlanService, export *service.ExportService, metrics *service.MetricsService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, dates: dates, export: export, metrics: metrics}
}

// Generate godoc
// @Summary Generate a practical exam schedule
// @Description Deduplicates candidates, sorts dates, validates the request and allocates candidates to labs and sessions.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body models.ScheduleRequest true "Schedule request"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /schedule/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}

	result := h.schedule.Generate(&req)
	if len(result.FieldErrors) > 0 {
		response.ValidationFailed(c, result.FieldErrors, result.Warnings)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordGeneration(len(req.RegisterNumbers))
	}
	response.JSON(c, http.StatusOK, result.Response, result.Warnings, map[string]interface{}{
		"run_id": result.RunID,
	})
}

// Validate godoc
// @Summary Validate schedule inputs without generating
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body models.ScheduleRequest true "Schedule request"
// @Success 200 {object} response.Envelope
// @Router /schedule/validate [post]
func (h *ScheduleHandler) Validate(c *gin.Context) {
	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}

	result := h.schedule.Validate(&req)
	response.JSON(c, http.StatusOK, result, nil)
}

// AutoSelectDates godoc
// @Summary Select optimal exam dates from an availability pool
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.AutoSelectDatesRequest true "Date selection request"
// @Success 200 {object} response.Envelope
// @Router /schedule/auto-select-dates [post]
func (h *ScheduleHandler) AutoSelectDates(c *gin.Context) {
	var req dto.AutoSelectDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid date selection payload"))
		return
	}

	examDates, message := h.dates.AutoScheduleDates(req.AvailableDates, req.StudentCount, req.MinGapDays, req.Subjects)
	selected := make([]string, 0, len(examDates))
	for _, examDate := range examDates {
		selected = append(selected, examDate.Date)
	}

	requiredDays := h.dates.RequiredDays(req.StudentCount)
	response.JSON(c, http.StatusOK, dto.AutoSelectDatesResponse{
		SelectedDates:  selected,
		ExamDates:      examDates,
		RequiredDays:   requiredDays,
		AvailableDays:  len(req.AvailableDates),
		StudentsPerDay: h.dates.DailyCapacity(),
		Message:        message,
		ScheduleInfo: dto.ScheduleInfo{
			TotalStudents:   req.StudentCount,
			DaysNeeded:      requiredDays,
			DaysSelected:    len(selected),
			MinGapRequested: req.MinGapDays,
		},
	}, nil)
}

// CalculateRequirements godoc
// @Summary Calculate scheduling requirements for a candidate count
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.CalculateRequirementsRequest true "Requirements request"
// @Success 200 {object} response.Envelope
// @Router /schedule/calculate-requirements [post]
func (h *ScheduleHandler) CalculateRequirements(c *gin.Context) {
	var req dto.CalculateRequirementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid requirements payload"))
		return
	}

	requiredDays := h.dates.RequiredDays(req.StudentCount)
	resp := dto.CalculateRequirementsResponse{
		StudentCount:   req.StudentCount,
		DailyCapacity:  h.dates.DailyCapacity(),
		RequiredDays:   requiredDays,
		AvailableDates: req.AvailableDates,
	}
	if req.AvailableDates > 0 {
		sufficient := req.AvailableDates >= requiredDays
		additional := requiredDays - req.AvailableDates
		if additional < 0 {
			additional = 0
		}
		resp.DatesSufficient = &sufficient
		resp.AdditionalDatesNeeded = &additional
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Export godoc
// @Summary Render a generated schedule as CSV or PDF
// @Tags Schedule
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param payload body dto.ExportScheduleRequest true "Export request"
// @Success 200 {file} file
// @Router /schedule/export [post]
func (h *ScheduleHandler) Export(c *gin.Context) {
	var req dto.ExportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}

	payload, contentType, err := h.export.Render(req.Schedule, req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}

	extension := "csv"
	if contentType == "application/pdf" {
		extension = "pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=exam-schedule.%s", extension))
	c.Data(http.StatusOK, contentType, payload)
}
