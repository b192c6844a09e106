package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashmilgit15/scheduler-backend/internal/models"
)

const sampleVisionResponse = `EXAM_NAME: Data Structures Lab
DEPARTMENT: Computer Science
SEMESTER: 3
BATCH: b
ACADEMIC_YEAR: 2024-25
DATES:
1. 15/01/25
2. 20-01-25
LABS:
- Lab 1
- Lab 2
INTERNAL_EXAMINERS:
1. E101: Dr. Anil Kumar
2. Priya Menon
EXTERNAL_EXAMINERS:
1. X201: Prof. Thomas
SUBJECTS:
- CS331 Data Structures Lab
REGISTER_NUMBERS:
1. TVE20CS001
2. TVE20CS002
RAW_TEXT:
Lab exam notice for S3 batch B
`

func TestParseVisionText(t *testing.T) {
	semesters, numbers, extraction := ParseVisionText(sampleVisionResponse)

	assert.Equal(t, "Data Structures Lab", extraction.ExamName)
	assert.Equal(t, "Computer Science", extraction.Department)
	assert.Equal(t, "S3", extraction.Semester)
	assert.Equal(t, "B", extraction.Batch)
	assert.Equal(t, "2024-25", extraction.AcademicYear)

	// slashes normalized to hyphens
	assert.Equal(t, []string{"15-01-25", "20-01-25"}, extraction.Dates)
	assert.Equal(t, []string{"Lab 1", "Lab 2"}, extraction.Labs)
	assert.Equal(t, []string{"CS331 Data Structures Lab"}, extraction.Subjects)

	require.Len(t, extraction.InternalExaminers, 2)
	assert.Equal(t, models.Examiner{ID: "E101", Name: "Dr. Anil Kumar"}, extraction.InternalExaminers[0])
	// no id on the line, ordinal fallback
	assert.Equal(t, models.Examiner{ID: "INT2", Name: "Priya Menon"}, extraction.InternalExaminers[1])

	require.Len(t, extraction.ExternalExaminers, 1)
	assert.Equal(t, models.Examiner{ID: "X201", Name: "Prof. Thomas"}, extraction.ExternalExaminers[0])

	assert.Equal(t, []string{"TVE20CS001", "TVE20CS002"}, numbers)
	assert.Contains(t, extraction.RawText, "Lab exam notice")

	require.Len(t, semesters, 1)
	assert.Equal(t, "S3", semesters[0].Name)
	require.Len(t, semesters[0].Batches, 1)
	assert.Equal(t, "B", semesters[0].Batches[0].Name)
	assert.Equal(t, []string{"TVE20CS001", "TVE20CS002"}, semesters[0].Batches[0].RegisterNumbers)
}

func TestParseVisionTextGlobalSweep(t *testing.T) {
	// register numbers outside the REGISTER_NUMBERS section are still
	// collected, without duplicating what section parsing found
	text := `REGISTER_NUMBERS:
1. TVE20CS001
RAW_TEXT:
Also seated: TVE20CS001 and TVE20CS099
`
	semesters, numbers, _ := ParseVisionText(text)
	assert.Equal(t, []string{"TVE20CS001", "TVE20CS099"}, numbers)
	require.Len(t, semesters, 1)
	assert.Equal(t, "S1", semesters[0].Name)
	assert.Equal(t, "A", semesters[0].Batches[0].Name)
}

func TestParseVisionTextEmpty(t *testing.T) {
	semesters, numbers, extraction := ParseVisionText("no structure at all")
	assert.Nil(t, semesters)
	assert.Nil(t, numbers)
	assert.Equal(t, "S1", extraction.Semester)
	assert.Equal(t, "A", extraction.Batch)
}
