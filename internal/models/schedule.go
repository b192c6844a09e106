package models

// Session names for the two daily exam slots.
const (
	SessionForenoon  = "forenoon"
	SessionAfternoon = "afternoon"
)

// Display time ranges for the two sessions.
const (
	ForenoonTime  = "09:30 am - 12:30 pm"
	AfternoonTime = "01:30 pm - 04:30 pm"
)

// ExamMetadata carries optional descriptive information about the exam.
type ExamMetadata struct {
	ExamName     string `json:"exam_name,omitempty"`
	Semester     string `json:"semester,omitempty"`
	Department   string `json:"department,omitempty"`
	AcademicYear string `json:"academic_year,omitempty"`
}

// ExamDate is a calendar day in DD-MM-YY form with an optional subject
// and an optional pre-assigned candidate subset for that day.
type ExamDate struct {
	Date            string   `json:"date" validate:"required"`
	Subject         string   `json:"subject,omitempty"`
	RegisterNumbers []string `json:"register_numbers,omitempty"`
}

// TimeSlot is one session of a lab-day with its assigned candidates.
type TimeSlot struct {
	Time            string   `json:"time"`
	Session         string   `json:"session"`
	Capacity        int      `json:"capacity"`
	RegisterNumbers []string `json:"register_numbers"`
}

// LabSchedule is the allocation of a single lab on a single date. Slots
// always holds exactly two entries, forenoon then afternoon, even when
// one of them is empty.
type LabSchedule struct {
	Date             string     `json:"date"`
	Subject          string     `json:"subject,omitempty"`
	Lab              string     `json:"lab"`
	Slots            []TimeSlot `json:"slots"`
	InternalExaminer *Examiner  `json:"internal_examiner,omitempty"`
	ExternalExaminer *Examiner  `json:"external_examiner,omitempty"`
	Semester         string     `json:"semester,omitempty"`
	Batch            string     `json:"batch,omitempty"`
}

// TotalStudents counts candidates across both sessions.
func (l LabSchedule) TotalStudents() int {
	total := 0
	for _, slot := range l.Slots {
		total += len(slot.RegisterNumbers)
	}
	return total
}
