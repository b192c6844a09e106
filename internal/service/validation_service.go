package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ashmilgit15/scheduler-backend/internal/ingest"
	"github.com/ashmilgit15/scheduler-backend/internal/models"
	"github.com/ashmilgit15/scheduler-backend/pkg/config"
)

// ValidationService checks a schedule request before allocation. Almost
// everything is optional; missing labs are filled with defaults and the
// only hard failures are an empty candidate list and a malformed date.
type ValidationService struct {
	capacity config.CapacityConfig
	validate *validator.Validate
	logger   *zap.Logger
}

// NewValidationService wires request validation.
func NewValidationService(capacity config.CapacityConfig, validate *validator.Validate, logger *zap.Logger) *ValidationService {
	if capacity.StudentsPerLab <= 0 {
		capacity.StudentsPerLab = 25
	}
	if capacity.LabsPerDay <= 0 {
		capacity.LabsPerDay = 5
	}
	if len(capacity.DefaultLabs) == 0 {
		capacity.DefaultLabs = []string{"Lab 1", "Lab 2", "Lab 3", "Lab 4", "Lab 5"}
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidationService{capacity: capacity, validate: validate, logger: logger}
}

// RequiredDates returns the minimum number of exam days for a count.
func (s *ValidationService) RequiredDates(studentCount int) int {
	if studentCount <= 0 {
		return 0
	}
	daily := s.capacity.DailyCapacity()
	return (studentCount + daily - 1) / daily
}

// AdditionalDatesNeeded returns how many more dates the request needs,
// zero when the provided pool is sufficient.
func (s *ValidationService) AdditionalDatesNeeded(studentCount, providedDates int) int {
	needed := s.RequiredDates(studentCount) - providedDates
	if needed < 0 {
		return 0
	}
	return needed
}

// ValidateRequest validates a request and applies defaults. Mutations
// (default labs) are made on the request itself and surfaced through
// the warnings list. Errors block generation; warnings do not.
func (s *ValidationService) ValidateRequest(req *models.ScheduleRequest) ([]models.FieldError, []string) {
	var fieldErrors []models.FieldError
	var warnings []string

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, verr := range verrs {
				fieldErrors = append(fieldErrors, models.FieldError{
					Field:   strings.ToLower(verr.Field()),
					Message: fmt.Sprintf("failed %s validation", verr.Tag()),
				})
			}
		}
	}

	registerNumbers := req.AllRegisterNumbers()
	if len(registerNumbers) == 0 {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   "register_numbers",
			Message: "At least one register number is required to generate a schedule",
		})
	}

	if len(req.Labs) == 0 {
		req.Labs = append([]string(nil), s.capacity.DefaultLabs...)
		warnings = append(warnings, "Using default labs: "+strings.Join(s.capacity.DefaultLabs, ", "))
	}

	if len(req.InternalExaminers) == 0 {
		warnings = append(warnings, "No internal examiners provided. Schedule will be generated without examiner assignments.")
	}
	if len(req.ExternalExaminers) == 0 {
		warnings = append(warnings, "No external examiners provided. Schedule will be generated without examiner assignments.")
	}

	if len(registerNumbers) > 0 {
		if fieldError, warning := s.validateDates(req.AllDates(), len(registerNumbers)); fieldError != nil {
			fieldErrors = append(fieldErrors, *fieldError)
		} else if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if len(fieldErrors) > 0 {
		s.logger.Debug("schedule request rejected", zap.Int("field_errors", len(fieldErrors)))
	}
	return fieldErrors, warnings
}

// validateDates checks date format and advisory capacity. A malformed
// token is a hard error; a thin date pool is only a warning.
func (s *ValidationService) validateDates(dates []string, studentCount int) (*models.FieldError, string) {
	if len(dates) == 0 {
		return nil, "No dates provided. Please add exam dates for scheduling."
	}

	for _, token := range dates {
		if _, err := ingest.ParseExamDate(token); err != nil {
			return &models.FieldError{
				Field:   "dates",
				Message: fmt.Sprintf("Invalid date format: %s. Expected DD-MM-YY", token),
			}, ""
		}
	}

	if additional := s.AdditionalDatesNeeded(studentCount, len(dates)); additional > 0 {
		return nil, fmt.Sprintf("Note: %d students may need %d dates. You provided %d.",
			studentCount, s.RequiredDates(studentCount), len(dates))
	}
	return nil, ""
}
