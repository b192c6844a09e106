package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ashmilgit15/scheduler-backend/internal/ingest"
	"github.com/ashmilgit15/scheduler-backend/internal/models"
)

// GenerationResult is the outcome of one schedule generation run.
// FieldErrors non-empty means the run was blocked; warnings accompany
// both outcomes.
type GenerationResult struct {
	RunID       string                   `json:"run_id"`
	Response    *models.ScheduleResponse `json:"response,omitempty"`
	FieldErrors []models.FieldError      `json:"errors,omitempty"`
	Warnings    []string                 `json:"warnings,omitempty"`
}

// ValidationSummary gives the caller headline counts without a full run.
type ValidationSummary struct {
	TotalStudents     int `json:"total_students"`
	DuplicatesFound   int `json:"duplicates_found"`
	DatesProvided     int `json:"dates_provided"`
	LabsProvided      int `json:"labs_provided"`
	InternalExaminers int `json:"internal_examiners"`
	ExternalExaminers int `json:"external_examiners"`
	Semesters         int `json:"semesters"`
}

// ValidationResult is the outcome of a validation-only call.
type ValidationResult struct {
	FieldErrors []models.FieldError `json:"errors"`
	Warnings    []string            `json:"warnings"`
	Summary     ValidationSummary   `json:"summary"`
}

// ScheduleService runs the full generation pipeline: dedupe, date sort,
// validation, allocation, response assembly.
type ScheduleService struct {
	allocation *AllocationService
	validation *ValidationService
	logger     *zap.Logger
}

// NewScheduleService wires the generation pipeline.
func NewScheduleService(allocation *AllocationService, validation *ValidationService, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{allocation: allocation, validation: validation, logger: logger}
}

// Generate produces a complete schedule for the request. The request is
// normalised in place: duplicates removed, dates sorted, default labs
// substituted. Validation failures block allocation and come back as
// field errors rather than an error value.
func (s *ScheduleService) Generate(req *models.ScheduleRequest) GenerationResult {
	result := GenerationResult{RunID: uuid.NewString()}

	unique, duplicates := ingest.Dedupe(req.AllRegisterNumbers())
	if len(duplicates) > 0 {
		result.Warnings = append(result.Warnings, duplicateWarning("Duplicate register numbers removed", duplicates))
	}
	req.RegisterNumbers = unique
	req.Dates = ingest.SortDates(req.AllDates())

	dateSubjects := make(map[string]string)
	dateRegisterNumbers := make(map[string][]string)
	for _, examDate := range req.ExamDates {
		if examDate.Subject != "" {
			dateSubjects[examDate.Date] = examDate.Subject
		}
		if len(examDate.RegisterNumbers) > 0 {
			dateRegisterNumbers[examDate.Date] = examDate.RegisterNumbers
		}
	}

	fieldErrors, warnings := s.validation.ValidateRequest(req)
	result.Warnings = append(result.Warnings, warnings...)
	if len(fieldErrors) > 0 {
		result.FieldErrors = fieldErrors
		s.logger.Info("schedule generation blocked",
			zap.String("run_id", result.RunID),
			zap.Int("field_errors", len(fieldErrors)))
		return result
	}

	schedules := s.allocation.Allocate(AllocationInput{
		RegisterNumbers:     req.RegisterNumbers,
		Dates:               req.Dates,
		Labs:                req.Labs,
		InternalExaminers:   req.InternalExaminers,
		ExternalExaminers:   req.ExternalExaminers,
		Semesters:           req.Semesters,
		DateSubjects:        dateSubjects,
		DateRegisterNumbers: dateRegisterNumbers,
	})

	result.Response = buildScheduleResponse(req, schedules)
	s.logger.Info("schedule generated",
		zap.String("run_id", result.RunID),
		zap.Int("students", len(req.RegisterNumbers)),
		zap.Int("lab_days", len(schedules)))
	return result
}

// Validate checks the request without allocating.
func (s *ScheduleService) Validate(req *models.ScheduleRequest) ValidationResult {
	var result ValidationResult

	unique, duplicates := ingest.Dedupe(req.AllRegisterNumbers())
	if len(duplicates) > 0 {
		result.Warnings = append(result.Warnings, duplicateWarning("Duplicate register numbers found", duplicates))
	}
	req.RegisterNumbers = unique

	fieldErrors, warnings := s.validation.ValidateRequest(req)
	result.FieldErrors = fieldErrors
	result.Warnings = append(result.Warnings, warnings...)
	result.Summary = ValidationSummary{
		TotalStudents:     len(unique),
		DuplicatesFound:   len(duplicates),
		DatesProvided:     len(req.AllDates()),
		LabsProvided:      len(req.Labs),
		InternalExaminers: len(req.InternalExaminers),
		ExternalExaminers: len(req.ExternalExaminers),
		Semesters:         len(req.Semesters),
	}
	return result
}

// buildScheduleResponse assembles the response envelope. The examiners
// map always carries both keys, empty when no pool was provided.
func buildScheduleResponse(req *models.ScheduleRequest, schedules []models.LabSchedule) *models.ScheduleResponse {
	internal := req.InternalExaminers
	if internal == nil {
		internal = []models.Examiner{}
	}
	external := req.ExternalExaminers
	if external == nil {
		external = []models.Examiner{}
	}
	if schedules == nil {
		schedules = []models.LabSchedule{}
	}
	return &models.ScheduleResponse{
		ExamMetadata: req.ExamMetadata,
		Examiners: map[string][]models.Examiner{
			"internal": internal,
			"external": external,
		},
		Schedule: schedules,
	}
}

// duplicateWarning lists the first ten removed entries and summarises
// the rest by count.
func duplicateWarning(prefix string, duplicates []string) string {
	shown := duplicates
	if len(shown) > 10 {
		shown = shown[:10]
	}
	message := fmt.Sprintf("%s: %s", prefix, strings.Join(shown, ", "))
	if extra := len(duplicates) - 10; extra > 0 {
		message += fmt.Sprintf(" and %d more", extra)
	}
	return message
}
