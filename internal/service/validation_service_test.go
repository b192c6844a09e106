package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashmilgit15/scheduler-backend/internal/models"
	"github.com/ashmilgit15/scheduler-backend/pkg/config"
)

func validationCapacity() config.CapacityConfig {
	cfg := testCapacity()
	cfg.DefaultLabs = []string{"Lab 1", "Lab 2", "Lab 3", "Lab 4", "Lab 5"}
	return cfg
}

func TestValidateRequestZeroCandidates(t *testing.T) {
	svc := NewValidationService(validationCapacity(), nil, nil)
	req := &models.ScheduleRequest{Dates: []string{"10-01-25"}}

	fieldErrors, _ := svc.ValidateRequest(req)

	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "register_numbers", fieldErrors[0].Field)
}

func TestValidateRequestMalformedDate(t *testing.T) {
	svc := NewValidationService(validationCapacity(), nil, nil)
	req := &models.ScheduleRequest{
		RegisterNumbers: regNumbers(5),
		Dates:           []string{"10-01-25", "2025-01-12"},
		Labs:            []string{"Lab 1"},
	}

	fieldErrors, _ := svc.ValidateRequest(req)

	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "dates", fieldErrors[0].Field)
	assert.Contains(t, fieldErrors[0].Message, "2025-01-12")
	assert.Contains(t, fieldErrors[0].Message, "Expected DD-MM-YY")
}

func TestValidateRequestDefaultLabs(t *testing.T) {
	svc := NewValidationService(validationCapacity(), nil, nil)
	req := &models.ScheduleRequest{
		RegisterNumbers: regNumbers(5),
		Dates:           []string{"10-01-25"},
	}

	fieldErrors, warnings := svc.ValidateRequest(req)

	assert.Empty(t, fieldErrors)
	assert.Equal(t, []string{"Lab 1", "Lab 2", "Lab 3", "Lab 4", "Lab 5"}, req.Labs)
	assert.Contains(t, warnings, "Using default labs: Lab 1, Lab 2, Lab 3, Lab 4, Lab 5")
}

func TestValidateRequestExaminerWarnings(t *testing.T) {
	svc := NewValidationService(validationCapacity(), nil, nil)
	req := &models.ScheduleRequest{
		RegisterNumbers: regNumbers(5),
		Dates:           []string{"10-01-25"},
		Labs:            []string{"Lab 1"},
		InternalExaminers: []models.Examiner{
			{ID: "INT1", Name: "Anil"},
		},
	}

	fieldErrors, warnings := svc.ValidateRequest(req)

	assert.Empty(t, fieldErrors)
	assert.NotContains(t, warnings, "No internal examiners provided. Schedule will be generated without examiner assignments.")
	assert.Contains(t, warnings, "No external examiners provided. Schedule will be generated without examiner assignments.")
}

func TestValidateRequestInsufficientDates(t *testing.T) {
	svc := NewValidationService(validationCapacity(), nil, nil)
	req := &models.ScheduleRequest{
		RegisterNumbers: regNumbers(300),
		Dates:           []string{"10-01-25"},
		Labs:            []string{"Lab 1"},
	}

	fieldErrors, warnings := svc.ValidateRequest(req)

	assert.Empty(t, fieldErrors)
	assert.Contains(t, warnings, "Note: 300 students may need 3 dates. You provided 1.")
}

func TestValidateRequestNoDates(t *testing.T) {
	svc := NewValidationService(validationCapacity(), nil, nil)
	req := &models.ScheduleRequest{
		RegisterNumbers: regNumbers(5),
		Labs:            []string{"Lab 1"},
	}

	fieldErrors, warnings := svc.ValidateRequest(req)

	assert.Empty(t, fieldErrors)
	assert.Contains(t, warnings, "No dates provided. Please add exam dates for scheduling.")
}

func TestAdditionalDatesNeeded(t *testing.T) {
	svc := NewValidationService(validationCapacity(), nil, nil)

	assert.Equal(t, 0, svc.AdditionalDatesNeeded(100, 1))
	assert.Equal(t, 1, svc.AdditionalDatesNeeded(126, 1))
	assert.Equal(t, 0, svc.AdditionalDatesNeeded(126, 5))
	assert.Equal(t, 0, svc.AdditionalDatesNeeded(0, 0))
}
