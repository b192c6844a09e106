package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashmilgit15/scheduler-backend/internal/models"
	appErrors "github.com/ashmilgit15/scheduler-backend/pkg/errors"
)

func sampleResponse() *models.ScheduleResponse {
	internal := models.Examiner{ID: "INT1", Name: "Anil"}
	return &models.ScheduleResponse{
		ExamMetadata: &models.ExamMetadata{ExamName: "Data Structures Lab"},
		Schedule: []models.LabSchedule{{
			Date:     "10-01-25",
			Subject:  "CS331",
			Lab:      "Lab 1",
			Semester: "S3",
			Batch:    "S3A",
			Slots: []models.TimeSlot{
				{
					Time:            models.ForenoonTime,
					Session:         models.SessionForenoon,
					Capacity:        2,
					RegisterNumbers: []string{"TVE20CS001", "TVE20CS002"},
				},
				{
					Time:            models.AfternoonTime,
					Session:         models.SessionAfternoon,
					Capacity:        1,
					RegisterNumbers: []string{"TVE20CS003"},
				},
			},
			InternalExaminer: &internal,
		}},
	}
}

func TestRenderCSV(t *testing.T) {
	svc := NewExportService(nil)

	payload, contentType, err := svc.Render(sampleResponse(), "csv")

	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	text := string(payload)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Date")
	assert.Contains(t, lines[0], "Forenoon")
	assert.Contains(t, lines[1], "10-01-25")
	assert.Contains(t, lines[1], "TVE20CS001, TVE20CS002")
	assert.Contains(t, lines[1], "INT1: Anil")
}

func TestRenderCSVDefaultFormat(t *testing.T) {
	svc := NewExportService(nil)

	_, contentType, err := svc.Render(sampleResponse(), "")

	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
}

func TestRenderPDF(t *testing.T) {
	svc := NewExportService(nil)

	payload, contentType, err := svc.Render(sampleResponse(), "pdf")

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestRenderUnsupportedFormat(t *testing.T) {
	svc := NewExportService(nil)

	_, _, err := svc.Render(sampleResponse(), "xlsx")

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestRenderEmptySchedule(t *testing.T) {
	svc := NewExportService(nil)

	_, _, err := svc.Render(&models.ScheduleResponse{}, "csv")
	require.Error(t, err)

	_, _, err = svc.Render(nil, "csv")
	require.Error(t, err)
}
