package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExaminerString(t *testing.T) {
	e := Examiner{ID: "INT1", Name: "Dr. Anil Kumar"}
	assert.Equal(t, "INT1: Dr. Anil Kumar", e.String())
}

func TestParseExaminer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Examiner
		wantErr bool
	}{
		{name: "basic", input: "INT1: Dr. Anil Kumar", want: Examiner{ID: "INT1", Name: "Dr. Anil Kumar"}},
		{name: "name with colon", input: "E101: Prof. Rao: Senior", want: Examiner{ID: "E101", Name: "Prof. Rao: Senior"}},
		{name: "missing separator", input: "Dr. Anil Kumar", wantErr: true},
		{name: "empty id", input: ": Dr. Anil Kumar", wantErr: true},
		{name: "empty name", input: "INT1: ", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExaminer(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExaminerRoundTrip(t *testing.T) {
	orig := Examiner{ID: "EXT2", Name: "Dr. Priya Menon"}
	parsed, err := ParseExaminer(orig.String())
	require.NoError(t, err)
	assert.Equal(t, orig, parsed)
}

func TestSemesterAllRegisterNumbers(t *testing.T) {
	sem := Semester{
		Name: "S3",
		Batches: []Batch{
			{Name: "A", RegisterNumbers: []string{"TVE20CS001", "TVE20CS002"}},
			{Name: "B", RegisterNumbers: []string{"TVE20CS003"}},
		},
	}
	assert.Equal(t, []string{"TVE20CS001", "TVE20CS002", "TVE20CS003"}, sem.AllRegisterNumbers())
}

func TestSemesterBatchLabel(t *testing.T) {
	sem := Semester{Name: "S3"}
	assert.Equal(t, "S3A", sem.BatchLabel("A"))
}

func TestLabScheduleTotalStudents(t *testing.T) {
	ls := LabSchedule{
		Slots: []TimeSlot{
			{Session: SessionForenoon, RegisterNumbers: []string{"a", "b", "c"}},
			{Session: SessionAfternoon, RegisterNumbers: []string{"d"}},
		},
	}
	assert.Equal(t, 4, ls.TotalStudents())

	assert.Equal(t, 0, LabSchedule{}.TotalStudents())
}

func TestAllRegisterNumbersPrecedence(t *testing.T) {
	req := ScheduleRequest{
		RegisterNumbers: []string{"FLAT1"},
		Semesters: []Semester{
			{Name: "S3", Batches: []Batch{{Name: "A", RegisterNumbers: []string{"SEM1"}}}},
		},
		ExamDates: []ExamDate{
			{Date: "10-01-25", RegisterNumbers: []string{"DATE1", "DATE2"}},
		},
	}

	assert.Equal(t, []string{"DATE1", "DATE2"}, req.AllRegisterNumbers(), "exam dates win when populated")

	req.ExamDates = nil
	assert.Equal(t, []string{"SEM1"}, req.AllRegisterNumbers(), "semesters win over the flat field")

	req.Semesters = nil
	assert.Equal(t, []string{"FLAT1"}, req.AllRegisterNumbers())
}

func TestAllRegisterNumbersEmptyExamDatesFallThrough(t *testing.T) {
	// Exam dates without pre-assigned candidates should not mask the
	// flat field.
	req := ScheduleRequest{
		RegisterNumbers: []string{"FLAT1", "FLAT2"},
		ExamDates:       []ExamDate{{Date: "10-01-25"}, {Date: "12-01-25"}},
	}
	assert.Equal(t, []string{"FLAT1", "FLAT2"}, req.AllRegisterNumbers())
}

func TestAllDates(t *testing.T) {
	req := ScheduleRequest{
		Dates: []string{"05-01-25"},
		ExamDates: []ExamDate{
			{Date: "10-01-25"},
			{Date: "12-01-25"},
		},
	}
	assert.Equal(t, []string{"10-01-25", "12-01-25"}, req.AllDates())

	req.ExamDates = nil
	assert.Equal(t, []string{"05-01-25"}, req.AllDates())
}

func TestSubjectForDate(t *testing.T) {
	req := ScheduleRequest{
		ExamDates: []ExamDate{
			{Date: "10-01-25", Subject: "Data Structures Lab"},
			{Date: "12-01-25"},
		},
	}
	assert.Equal(t, "Data Structures Lab", req.SubjectForDate("10-01-25"))
	assert.Equal(t, "", req.SubjectForDate("12-01-25"))
	assert.Equal(t, "", req.SubjectForDate("31-01-25"))
}

func TestScheduleResponseJSONRoundTrip(t *testing.T) {
	internal := Examiner{ID: "INT1", Name: "Dr. Anil Kumar"}
	external := Examiner{ID: "EXT1", Name: "Dr. Priya Menon"}

	orig := ScheduleResponse{
		ExamMetadata: &ExamMetadata{
			ExamName:     "S3 Practical Examination",
			Semester:     "S3",
			Department:   "CSE",
			AcademicYear: "2024-25",
		},
		Examiners: map[string][]Examiner{
			"internal": {internal},
			"external": {external},
		},
		Schedule: []LabSchedule{
			{
				Date:    "10-01-25",
				Subject: "Data Structures Lab",
				Lab:     "Lab 1",
				Slots: []TimeSlot{
					{Time: ForenoonTime, Session: SessionForenoon, Capacity: 13, RegisterNumbers: []string{"TVE20CS001"}},
					{Time: AfternoonTime, Session: SessionAfternoon, Capacity: 12, RegisterNumbers: []string{}},
				},
				InternalExaminer: &internal,
				ExternalExaminer: &external,
				Semester:         "S3",
				Batch:            "S3A",
			},
		},
	}

	raw, err := json.Marshal(orig)
	require.NoError(t, err)

	var decoded ScheduleResponse
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, orig, decoded)
}
