package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ashmilgit15/scheduler-backend/internal/models"
	"github.com/ashmilgit15/scheduler-backend/pkg/export"
	appErrors "github.com/ashmilgit15/scheduler-backend/pkg/errors"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

var scheduleExportHeaders = []string{
	"Date", "Subject", "Lab", "Semester", "Batch",
	"Forenoon", "Afternoon", "Internal Examiner", "External Examiner",
}

// ExportService renders a generated schedule as CSV or PDF.
type ExportService struct {
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService wires the exporters.
func NewExportService(logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// Render produces export bytes plus the response content type.
func (s *ExportService) Render(response *models.ScheduleResponse, format string) ([]byte, string, error) {
	if response == nil || len(response.Schedule) == 0 {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "nothing to export: schedule is empty")
	}

	dataset := buildScheduleDataset(response.Schedule)
	switch strings.ToLower(format) {
	case FormatCSV, "":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv export failed")
		}
		return payload, "text/csv", nil
	case FormatPDF:
		title := "Practical Exam Schedule"
		if response.ExamMetadata != nil && response.ExamMetadata.ExamName != "" {
			title = response.ExamMetadata.ExamName
		}
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf export failed")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format: %s", format))
	}
}

// buildScheduleDataset flattens lab-days into one row each, with the
// two sessions comma-joined.
func buildScheduleDataset(schedules []models.LabSchedule) export.Dataset {
	rows := make([]map[string]string, 0, len(schedules))
	for _, schedule := range schedules {
		row := map[string]string{
			"Date":     schedule.Date,
			"Subject":  schedule.Subject,
			"Lab":      schedule.Lab,
			"Semester": schedule.Semester,
			"Batch":    schedule.Batch,
		}
		for _, slot := range schedule.Slots {
			joined := strings.Join(slot.RegisterNumbers, ", ")
			switch slot.Session {
			case models.SessionForenoon:
				row["Forenoon"] = joined
			case models.SessionAfternoon:
				row["Afternoon"] = joined
			}
		}
		if schedule.InternalExaminer != nil {
			row["Internal Examiner"] = schedule.InternalExaminer.String()
		}
		if schedule.ExternalExaminer != nil {
			row["External Examiner"] = schedule.ExternalExaminer.String()
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: scheduleExportHeaders, Rows: rows}
}
