package ingest

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/ashmilgit15/scheduler-backend/internal/models"
)

// registerNumberPattern matches KTU-style register numbers such as
// TVE20CS001 or ABC21EC123.
var registerNumberPattern = regexp.MustCompile(`\b[A-Z]{2,4}\d{2}[A-Z]{2,3}\d{3}\b`)

var (
	splitPattern    = regexp.MustCompile(`[\n,]+|[^\S\n]{2,}`)
	semesterPattern = regexp.MustCompile(`(?i)(?:semester|sem)[:\s]*([S]?\d+)`)
	batchPattern    = regexp.MustCompile(`(?i)(?:batch|division|div)[:\s]*([A-Za-z])`)
)

// ParseRegisterNumbers splits textarea input into register numbers.
// Newlines, commas and runs of spaces all act as separators; input
// order is preserved.
func ParseRegisterNumbers(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var numbers []string
	for _, part := range splitPattern.Split(text, -1) {
		cleaned := strings.TrimSpace(part)
		if cleaned != "" {
			numbers = append(numbers, cleaned)
		}
	}
	return numbers
}

// Dedupe removes repeated register numbers keeping the first occurrence
// in place. The second return value lists the removed repeats in the
// order they were encountered.
func Dedupe(registerNumbers []string) (unique, duplicates []string) {
	seen := make(map[string]struct{}, len(registerNumbers))
	for _, regNo := range registerNumbers {
		if _, ok := seen[regNo]; ok {
			duplicates = append(duplicates, regNo)
			continue
		}
		seen[regNo] = struct{}{}
		unique = append(unique, regNo)
	}
	return unique, duplicates
}

// FormatRegisterNumbers renders a register number list one per line.
func FormatRegisterNumbers(registerNumbers []string) string {
	return strings.Join(registerNumbers, "\n")
}

// rosterRow is the canonical structured CSV shape.
type rosterRow struct {
	Semester   string `csv:"semester"`
	Batch      string `csv:"batch"`
	RegisterNo string `csv:"register_number"`
}

// ParseRosterCSV extracts the semester/batch/register-number structure
// from uploaded CSV or TSV content. Accepted shapes, detected in order:
// a canonical header row (parsed structurally), semester,batch,regno
// rows, semester,regno rows (batch defaults to A), and bare register
// number lists (semester S1, batch A).
func ParseRosterCSV(content string) []models.Semester {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}

	if semesters := parseStructuredRoster(trimmed); semesters != nil {
		return semesters
	}

	lines := strings.Split(trimmed, "\n")
	first := strings.TrimSpace(lines[0])
	if hasRosterHeader(first) {
		lines = lines[1:]
	}

	var delimiter string
	switch {
	case strings.Contains(first, ","):
		delimiter = ","
	case strings.Contains(first, "\t"):
		delimiter = "\t"
	}

	collected := make(map[string]map[string][]string)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sem, batch, regNo := "S1", "A", line
		if delimiter != "" {
			parts := strings.Split(line, delimiter)
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			switch {
			case len(parts) >= 3:
				sem, batch, regNo = strings.ToUpper(parts[0]), strings.ToUpper(parts[1]), parts[2]
			case len(parts) == 2:
				sem, regNo = strings.ToUpper(parts[0]), parts[1]
			default:
				regNo = parts[0]
			}
		}
		sem = normalizeSemester(sem)
		appendRosterEntry(collected, sem, batch, regNo)
	}

	return assembleSemesters(collected)
}

func parseStructuredRoster(content string) []models.Semester {
	lines := strings.SplitN(content, "\n", 2)
	header := strings.ToLower(strings.TrimSpace(lines[0]))
	header = strings.ReplaceAll(header, " ", "_")
	if !strings.HasPrefix(header, "semester,batch,register") {
		return nil
	}
	if len(lines) < 2 {
		return nil
	}

	var rows []rosterRow
	normalized := "semester,batch,register_number\n" + lines[1]
	if err := gocsv.UnmarshalString(normalized, &rows); err != nil {
		return nil
	}

	collected := make(map[string]map[string][]string)
	for _, row := range rows {
		sem := normalizeSemester(strings.ToUpper(strings.TrimSpace(row.Semester)))
		batch := strings.ToUpper(strings.TrimSpace(row.Batch))
		if batch == "" {
			batch = "A"
		}
		appendRosterEntry(collected, sem, batch, strings.TrimSpace(row.RegisterNo))
	}
	return assembleSemesters(collected)
}

// ExtractRegisterNumbers scans freeform text for register-number shaped
// tokens and semester/batch hints. Returns the assembled cohort
// structure plus the flat token list in first-seen order.
func ExtractRegisterNumbers(text string) ([]models.Semester, []string) {
	found := registerNumberPattern.FindAllString(strings.ToUpper(text), -1)
	registerNumbers, _ := Dedupe(found)
	if len(registerNumbers) == 0 {
		return nil, nil
	}

	semester := "S1"
	if m := semesterPattern.FindStringSubmatch(text); m != nil {
		semester = normalizeSemester(strings.ToUpper(m[1]))
	}
	batch := "A"
	if m := batchPattern.FindStringSubmatch(text); m != nil {
		batch = strings.ToUpper(m[1])
	}

	semesters := []models.Semester{{
		Name:    semester,
		Batches: []models.Batch{{Name: batch, RegisterNumbers: registerNumbers}},
	}}
	return semesters, registerNumbers
}

func hasRosterHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, keyword := range []string{"semester", "batch", "register", "roll"} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func normalizeSemester(sem string) string {
	if sem == "" {
		return "S1"
	}
	if !strings.HasPrefix(sem, "S") {
		return "S" + sem
	}
	return sem
}

func appendRosterEntry(collected map[string]map[string][]string, sem, batch, regNo string) {
	if regNo == "" {
		return
	}
	if collected[sem] == nil {
		collected[sem] = make(map[string][]string)
	}
	for _, existing := range collected[sem][batch] {
		if existing == regNo {
			return
		}
	}
	collected[sem][batch] = append(collected[sem][batch], regNo)
}

func assembleSemesters(collected map[string]map[string][]string) []models.Semester {
	if len(collected) == 0 {
		return nil
	}

	semNames := make([]string, 0, len(collected))
	for name := range collected {
		semNames = append(semNames, name)
	}
	sort.Strings(semNames)

	semesters := make([]models.Semester, 0, len(semNames))
	for _, semName := range semNames {
		batches := collected[semName]
		batchNames := make([]string, 0, len(batches))
		for name := range batches {
			batchNames = append(batchNames, name)
		}
		sort.Strings(batchNames)

		semester := models.Semester{Name: semName}
		for _, batchName := range batchNames {
			semester.Batches = append(semester.Batches, models.Batch{
				Name:            batchName,
				RegisterNumbers: batches[batchName],
			})
		}
		semesters = append(semesters, semester)
	}
	return semesters
}
