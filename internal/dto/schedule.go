// Package dto holds the request and response shapes of the HTTP API
// that do not map one-to-one onto domain models.
package dto

import "github.com/ashmilgit15/scheduler-backend/internal/models"

// AutoSelectDatesRequest asks the date selector to pick exam days from
// an availability pool.
type AutoSelectDatesRequest struct {
	AvailableDates []string `json:"available_dates" validate:"required,min=1"`
	StudentCount   int      `json:"student_count" validate:"required,gt=0"`
	MinGapDays     int      `json:"min_gap_days"`
	Subjects       []string `json:"subjects"`
}

// ScheduleInfo summarises one date selection run.
type ScheduleInfo struct {
	TotalStudents   int `json:"total_students"`
	DaysNeeded      int `json:"days_needed"`
	DaysSelected    int `json:"days_selected"`
	MinGapRequested int `json:"min_gap_requested"`
}

// AutoSelectDatesResponse is the outcome of a date selection run.
type AutoSelectDatesResponse struct {
	SelectedDates  []string          `json:"selected_dates"`
	ExamDates      []models.ExamDate `json:"exam_dates"`
	RequiredDays   int               `json:"required_days"`
	AvailableDays  int               `json:"available_days"`
	StudentsPerDay int               `json:"students_per_day"`
	Message        string            `json:"message"`
	ScheduleInfo   ScheduleInfo      `json:"schedule_info"`
}

// CalculateRequirementsRequest asks for capacity planning numbers.
type CalculateRequirementsRequest struct {
	StudentCount   int `json:"student_count" validate:"gte=0"`
	AvailableDates int `json:"available_dates" validate:"gte=0"`
}

// CalculateRequirementsResponse carries capacity planning numbers.
// DatesSufficient and AdditionalDatesNeeded are nil when no available
// date count was supplied.
type CalculateRequirementsResponse struct {
	StudentCount          int   `json:"student_count"`
	DailyCapacity         int   `json:"daily_capacity"`
	RequiredDays          int   `json:"required_days"`
	AvailableDates        int   `json:"available_dates"`
	DatesSufficient       *bool `json:"dates_sufficient"`
	AdditionalDatesNeeded *int  `json:"additional_dates_needed"`
}

// ExportScheduleRequest asks for a rendered export of a generated
// schedule.
type ExportScheduleRequest struct {
	Format   string                   `json:"format" validate:"omitempty,oneof=csv pdf"`
	Schedule *models.ScheduleResponse `json:"schedule" validate:"required"`
}

// ParseFileResponse is the outcome of a roster file upload.
type ParseFileResponse struct {
	Semesters     []models.Semester `json:"semesters"`
	TotalStudents int               `json:"total_students"`
	Message       string            `json:"message"`
}
