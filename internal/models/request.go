package models

// FieldError tags a structural validation failure with the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ScheduleRequest is the full allocation input. Every field except the
// candidate list is optional; defaults are substituted during validation.
// RegisterNumbers and Dates are the flat legacy fields, Semesters and
// ExamDates the structured forms.
type ScheduleRequest struct {
	ExamMetadata      *ExamMetadata `json:"exam_metadata,omitempty"`
	RegisterNumbers   []string      `json:"register_numbers"`
	Semesters         []Semester    `json:"semesters"`
	Dates             []string      `json:"dates"`
	ExamDates         []ExamDate    `json:"exam_dates"`
	Labs              []string      `json:"labs"`
	InternalExaminers []Examiner    `json:"internal_examiners"`
	ExternalExaminers []Examiner    `json:"external_examiners"`
}

// AllRegisterNumbers collects candidates from exam dates first, then
// semesters, then the flat legacy field, preserving input order.
func (r ScheduleRequest) AllRegisterNumbers() []string {
	if len(r.ExamDates) > 0 {
		var all []string
		for _, ed := range r.ExamDates {
			all = append(all, ed.RegisterNumbers...)
		}
		if len(all) > 0 {
			return all
		}
	}
	if len(r.Semesters) > 0 {
		var all []string
		for _, sem := range r.Semesters {
			all = append(all, sem.AllRegisterNumbers()...)
		}
		return all
	}
	return r.RegisterNumbers
}

// AllDates returns the date tokens from exam dates or the legacy field.
func (r ScheduleRequest) AllDates() []string {
	if len(r.ExamDates) > 0 {
		dates := make([]string, 0, len(r.ExamDates))
		for _, ed := range r.ExamDates {
			dates = append(dates, ed.Date)
		}
		return dates
	}
	return r.Dates
}

// SubjectForDate looks up the subject attached to an exam date, if any.
func (r ScheduleRequest) SubjectForDate(date string) string {
	for _, ed := range r.ExamDates {
		if ed.Date == date {
			return ed.Subject
		}
	}
	return ""
}

// ScheduleResponse is the generated schedule with its surrounding
// metadata. It round-trips through JSON without loss.
type ScheduleResponse struct {
	ExamMetadata *ExamMetadata         `json:"exam_metadata,omitempty"`
	Examiners    map[string][]Examiner `json:"examiners"`
	Schedule     []LabSchedule         `json:"schedule"`
}
