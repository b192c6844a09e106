package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ashmilgit15/scheduler-backend/internal/ingest"
	"github.com/ashmilgit15/scheduler-backend/internal/models"
	"github.com/ashmilgit15/scheduler-backend/pkg/config"
)

// DatePlanService picks exam days out of an availability pool. It never
// fails outright; when the pool is too small it degrades and says so in
// the returned message.
type DatePlanService struct {
	capacity config.CapacityConfig
	logger   *zap.Logger
}

// NewDatePlanService wires the date selector.
func NewDatePlanService(capacity config.CapacityConfig, logger *zap.Logger) *DatePlanService {
	if capacity.StudentsPerLab <= 0 {
		capacity.StudentsPerLab = 25
	}
	if capacity.LabsPerDay <= 0 {
		capacity.LabsPerDay = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatePlanService{capacity: capacity, logger: logger}
}

// DailyCapacity returns the number of students one exam day absorbs.
func (s *DatePlanService) DailyCapacity() int {
	return s.capacity.DailyCapacity()
}

// RequiredDays returns how many exam days a candidate count needs.
func (s *DatePlanService) RequiredDays(candidateCount int) int {
	if candidateCount <= 0 {
		return 0
	}
	daily := s.capacity.DailyCapacity()
	return (candidateCount + daily - 1) / daily
}

// SelectOptimalDates picks the dates to run exams on. Dates are sorted
// chronologically first; when minGapDays is above one the walk skips
// dates closer than the gap to the previous pick, falling back to the
// earliest dates when the gap cannot be honoured.
func (s *DatePlanService) SelectOptimalDates(availableDates []string, studentCount, minGapDays int) ([]string, string) {
	if len(availableDates) == 0 {
		return nil, "No dates provided"
	}

	requiredDays := s.RequiredDays(studentCount)
	if requiredDays == 0 {
		return nil, "No students to schedule"
	}

	sortedDates := ingest.SortDates(availableDates)
	if len(sortedDates) < requiredDays {
		return sortedDates, fmt.Sprintf("Warning: Only %d dates available, need %d for %d students",
			len(sortedDates), requiredDays, studentCount)
	}

	if requiredDays == 1 {
		return sortedDates[:1], fmt.Sprintf("Selected 1 date for %d students", studentCount)
	}

	var selected []string
	if minGapDays <= 1 {
		selected = sortedDates[:requiredDays]
	} else {
		selected = sortedDates[:1]
		for _, date := range sortedDates[1:] {
			if len(selected) >= requiredDays {
				break
			}
			gap, err := ingest.DateDiffDays(selected[len(selected)-1], date)
			if err != nil {
				continue
			}
			if gap >= minGapDays {
				selected = append(selected, date)
			}
		}
		if len(selected) < requiredDays {
			selected = sortedDates[:requiredDays]
			return selected, fmt.Sprintf("Selected %d dates (gap constraint relaxed due to limited dates)", len(selected))
		}
	}

	var gaps []int
	for i := 1; i < len(selected); i++ {
		if gap, err := ingest.DateDiffDays(selected[i-1], selected[i]); err == nil {
			gaps = append(gaps, gap)
		}
	}

	message := fmt.Sprintf("Selected %d dates for %d students", len(selected), studentCount)
	if len(gaps) > 0 {
		sum := 0
		for _, gap := range gaps {
			sum += gap
		}
		message += fmt.Sprintf(" (avg gap: %.1f days)", float64(sum)/float64(len(gaps)))
	}
	return selected, message
}

// AutoScheduleDates selects dates and pairs each with the i-th subject
// when subjects are provided.
func (s *DatePlanService) AutoScheduleDates(availableDates []string, studentCount, minGapDays int, subjects []string) ([]models.ExamDate, string) {
	selected, message := s.SelectOptimalDates(availableDates, studentCount, minGapDays)

	examDates := make([]models.ExamDate, 0, len(selected))
	for i, date := range selected {
		examDate := models.ExamDate{Date: date}
		if i < len(subjects) {
			examDate.Subject = subjects[i]
		}
		examDates = append(examDates, examDate)
	}
	return examDates, message
}
