package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashmilgit15/scheduler-backend/internal/models"
)

func TestParseRegisterNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "newline separated",
			input: "TVE20CS001\nTVE20CS002\nTVE20CS003",
			want:  []string{"TVE20CS001", "TVE20CS002", "TVE20CS003"},
		},
		{
			name:  "comma separated",
			input: "TVE20CS001, TVE20CS002,TVE20CS003",
			want:  []string{"TVE20CS001", "TVE20CS002", "TVE20CS003"},
		},
		{
			name:  "runs of spaces separate",
			input: "TVE20CS001   TVE20CS002",
			want:  []string{"TVE20CS001", "TVE20CS002"},
		},
		{
			name:  "mixed separators preserve order",
			input: "TVE20CS003\nTVE20CS001, TVE20CS002",
			want:  []string{"TVE20CS003", "TVE20CS001", "TVE20CS002"},
		},
		{
			name:  "blank input",
			input: "  \n ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRegisterNumbers(tt.input))
		})
	}
}

func TestDedupe(t *testing.T) {
	unique, duplicates := Dedupe([]string{"A1", "B2", "A1", "C3", "B2", "A1"})
	assert.Equal(t, []string{"A1", "B2", "C3"}, unique)
	assert.Equal(t, []string{"A1", "B2", "A1"}, duplicates)

	unique, duplicates = Dedupe(nil)
	assert.Nil(t, unique)
	assert.Nil(t, duplicates)
}

func TestParseRosterCSVStructured(t *testing.T) {
	content := "semester,batch,register_number\nS3,A,TVE20CS001\nS3,A,TVE20CS002\nS3,B,TVE20CS051\nS5,A,TVE19EC001"

	semesters := ParseRosterCSV(content)
	require.Len(t, semesters, 2)

	assert.Equal(t, "S3", semesters[0].Name)
	require.Len(t, semesters[0].Batches, 2)
	assert.Equal(t, []string{"TVE20CS001", "TVE20CS002"}, semesters[0].Batches[0].RegisterNumbers)
	assert.Equal(t, "B", semesters[0].Batches[1].Name)

	assert.Equal(t, "S5", semesters[1].Name)
	assert.Equal(t, []string{"TVE19EC001"}, semesters[1].Batches[0].RegisterNumbers)
}

func TestParseRosterCSVHeuristics(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []models.Semester
	}{
		{
			name:    "three columns with header",
			content: "Sem,Division,Roll No\n3,a,TVE20CS001\n3,a,TVE20CS002",
			want: []models.Semester{{
				Name:    "S3",
				Batches: []models.Batch{{Name: "A", RegisterNumbers: []string{"TVE20CS001", "TVE20CS002"}}},
			}},
		},
		{
			name:    "two columns default batch A",
			content: "S4,TVE20CS010\nS4,TVE20CS011",
			want: []models.Semester{{
				Name:    "S4",
				Batches: []models.Batch{{Name: "A", RegisterNumbers: []string{"TVE20CS010", "TVE20CS011"}}},
			}},
		},
		{
			name:    "bare register list",
			content: "TVE20CS001\nTVE20CS002",
			want: []models.Semester{{
				Name:    "S1",
				Batches: []models.Batch{{Name: "A", RegisterNumbers: []string{"TVE20CS001", "TVE20CS002"}}},
			}},
		},
		{
			name:    "tab separated",
			content: "3\tA\tTVE20CS001\n3\tA\tTVE20CS002",
			want: []models.Semester{{
				Name:    "S3",
				Batches: []models.Batch{{Name: "A", RegisterNumbers: []string{"TVE20CS001", "TVE20CS002"}}},
			}},
		},
		{
			name:    "duplicate rows collapse within a batch",
			content: "S3,A,TVE20CS001\nS3,A,TVE20CS001",
			want: []models.Semester{{
				Name:    "S3",
				Batches: []models.Batch{{Name: "A", RegisterNumbers: []string{"TVE20CS001"}}},
			}},
		},
		{
			name:    "empty content",
			content: "   ",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRosterCSV(tt.content))
		})
	}
}

func TestExtractRegisterNumbers(t *testing.T) {
	text := "Semester: 5 Batch: B\nCandidates tve20cs001, TVE20CS002 and TVE20CS001 again"

	semesters, numbers := ExtractRegisterNumbers(text)
	assert.Equal(t, []string{"TVE20CS001", "TVE20CS002"}, numbers)
	require.Len(t, semesters, 1)
	assert.Equal(t, "S5", semesters[0].Name)
	require.Len(t, semesters[0].Batches, 1)
	assert.Equal(t, "B", semesters[0].Batches[0].Name)

	semesters, numbers = ExtractRegisterNumbers("nothing that looks like a candidate")
	assert.Nil(t, semesters)
	assert.Nil(t, numbers)
}
