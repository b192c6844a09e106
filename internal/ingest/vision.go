package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ashmilgit15/scheduler-backend/internal/models"
)

// Extraction is everything the vision backend managed to read off an
// exam schedule image.
type Extraction struct {
	ExamName          string            `json:"exam_name"`
	Department        string            `json:"department"`
	Semester          string            `json:"semester"`
	Batch             string            `json:"batch"`
	AcademicYear      string            `json:"academic_year"`
	Dates             []string          `json:"dates"`
	Labs              []string          `json:"labs"`
	InternalExaminers []models.Examiner `json:"internal_examiners"`
	ExternalExaminers []models.Examiner `json:"external_examiners"`
	Subjects          []string          `json:"subjects"`
	RegisterNumbers   []string          `json:"register_numbers"`
	RawText           string            `json:"raw_text"`
}

var (
	listMarkerPattern = regexp.MustCompile(`^[\d.\-*\s]+`)
	looseDatePattern  = regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`)
)

// ParseVisionText parses the sectioned text a vision model returns for
// an exam schedule image. Section headers are fixed keywords; anything
// register-number shaped that section parsing missed is swept up by a
// final scan over the whole text.
func ParseVisionText(text string) ([]models.Semester, []string, Extraction) {
	extraction := Extraction{Semester: "S1", Batch: "A"}
	seen := make(map[string]struct{})

	section := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "EXAM_NAME:"):
			extraction.ExamName = headerValue(line)
			section = ""
		case strings.HasPrefix(upper, "DEPARTMENT:"):
			extraction.Department = headerValue(line)
			section = ""
		case strings.HasPrefix(upper, "SEMESTER:"):
			if v := headerValue(line); v != "" {
				extraction.Semester = normalizeSemester(strings.ToUpper(v))
			}
			section = ""
		case strings.HasPrefix(upper, "BATCH:"):
			if v := headerValue(line); v != "" {
				extraction.Batch = strings.ToUpper(v[:1])
			}
			section = ""
		case strings.HasPrefix(upper, "ACADEMIC_YEAR:"):
			extraction.AcademicYear = headerValue(line)
			section = ""
		case strings.HasPrefix(upper, "DATES:"):
			section = "dates"
		case strings.HasPrefix(upper, "LABS:"):
			section = "labs"
		case strings.HasPrefix(upper, "INTERNAL_EXAMINERS:"):
			section = "internal_examiners"
		case strings.HasPrefix(upper, "EXTERNAL_EXAMINERS:"):
			section = "external_examiners"
		case strings.HasPrefix(upper, "SUBJECTS:"):
			section = "subjects"
		case strings.HasPrefix(upper, "REGISTER_NUMBERS:"):
			section = "register_numbers"
		case strings.HasPrefix(upper, "RAW_TEXT:"):
			section = "raw_text"
		default:
			consumeSectionLine(&extraction, section, line, seen)
		}
	}

	// Sweep the whole response for anything section parsing missed.
	for _, match := range registerNumberPattern.FindAllString(strings.ToUpper(text), -1) {
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		extraction.RegisterNumbers = append(extraction.RegisterNumbers, match)
	}

	var semesters []models.Semester
	if len(extraction.RegisterNumbers) > 0 {
		semesters = []models.Semester{{
			Name: extraction.Semester,
			Batches: []models.Batch{{
				Name:            extraction.Batch,
				RegisterNumbers: extraction.RegisterNumbers,
			}},
		}}
	}

	return semesters, extraction.RegisterNumbers, extraction
}

func consumeSectionLine(extraction *Extraction, section, line string, seen map[string]struct{}) {
	if section == "" {
		return
	}

	// Dates match against the raw line: the list-marker strip below
	// would eat into a digits-and-dashes date token.
	if section == "dates" {
		if m := looseDatePattern.FindString(line); m != "" {
			extraction.Dates = append(extraction.Dates, strings.ReplaceAll(m, "/", "-"))
		}
		return
	}

	cleaned := strings.TrimSpace(listMarkerPattern.ReplaceAllString(line, ""))
	if cleaned == "" {
		return
	}

	switch section {
	case "labs":
		extraction.Labs = append(extraction.Labs, cleaned)
	case "internal_examiners":
		extraction.InternalExaminers = append(extraction.InternalExaminers,
			parseExaminerLine(cleaned, "INT", len(extraction.InternalExaminers)+1))
	case "external_examiners":
		extraction.ExternalExaminers = append(extraction.ExternalExaminers,
			parseExaminerLine(cleaned, "EXT", len(extraction.ExternalExaminers)+1))
	case "subjects":
		extraction.Subjects = append(extraction.Subjects, cleaned)
	case "register_numbers":
		if m := registerNumberPattern.FindString(strings.ToUpper(cleaned)); m != "" {
			if _, ok := seen[m]; !ok {
				seen[m] = struct{}{}
				extraction.RegisterNumbers = append(extraction.RegisterNumbers, m)
			}
		}
	case "raw_text":
		extraction.RawText += cleaned + "\n"
	}
}

func headerValue(line string) string {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func parseExaminerLine(cleaned, idPrefix string, ordinal int) models.Examiner {
	if examiner, err := models.ParseExaminer(cleaned); err == nil {
		return examiner
	}
	if idx := strings.Index(cleaned, ":"); idx > 0 {
		return models.Examiner{
			ID:   strings.TrimSpace(cleaned[:idx]),
			Name: strings.TrimSpace(cleaned[idx+1:]),
		}
	}
	return models.Examiner{ID: fmt.Sprintf("%s%d", idPrefix, ordinal), Name: cleaned}
}
