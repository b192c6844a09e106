package service

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ashmilgit15/scheduler-backend/internal/models"
	"github.com/ashmilgit15/scheduler-backend/pkg/config"
)

// AllocationInput is everything one allocation run consumes. Candidates
// arrive either as a flat ordered list or pre-assigned per date; when
// DateRegisterNumbers is non-empty it takes precedence.
type AllocationInput struct {
	RegisterNumbers     []string
	Dates               []string
	Labs                []string
	InternalExaminers   []models.Examiner
	ExternalExaminers   []models.Examiner
	Semesters           []models.Semester
	DateSubjects        map[string]string
	DateRegisterNumbers map[string][]string
}

// AllocationService packs ordered candidates into lab-days and splits
// each lab-day into a forenoon and an afternoon session.
type AllocationService struct {
	capacity config.CapacityConfig
	logger   *zap.Logger
}

// NewAllocationService wires the allocation engine.
func NewAllocationService(capacity config.CapacityConfig, logger *zap.Logger) *AllocationService {
	if capacity.StudentsPerLab <= 0 {
		capacity.StudentsPerLab = 25
	}
	if capacity.ForenoonCapacity <= 0 {
		capacity.ForenoonCapacity = 13
	}
	if capacity.AfternoonCapacity <= 0 {
		capacity.AfternoonCapacity = 12
	}
	if capacity.LabsPerDay <= 0 {
		capacity.LabsPerDay = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationService{capacity: capacity, logger: logger}
}

// Allocate distributes candidates across dates and labs. Input order is
// preserved exactly: candidate i always lands no later than candidate
// i+1. The run is pure; no input slice is mutated.
func (s *AllocationService) Allocate(in AllocationInput) []models.LabSchedule {
	cohorts := buildCohortIndex(in.Semesters)

	var schedules []models.LabSchedule
	if len(in.DateRegisterNumbers) > 0 {
		for _, date := range in.Dates {
			schedules = s.allocateDate(schedules, date, in.DateRegisterNumbers[date], in, cohorts)
		}
	} else {
		remaining := in.RegisterNumbers
		for _, date := range in.Dates {
			if len(remaining) == 0 {
				break
			}
			before := len(schedules)
			schedules = s.allocateDate(schedules, date, remaining, in, cohorts)
			placed := 0
			for _, schedule := range schedules[before:] {
				placed += schedule.TotalStudents()
			}
			remaining = remaining[placed:]
		}
	}

	s.logger.Debug("allocation complete",
		zap.Int("lab_days", len(schedules)),
		zap.Int("dates", len(in.Dates)))
	return schedules
}

// allocateDate fills up to LabsPerDay labs from candidates, chunking
// StudentsPerLab at a time, and appends the resulting lab-days.
func (s *AllocationService) allocateDate(schedules []models.LabSchedule, date string, candidates []string, in AllocationInput, cohorts map[string]cohortRef) []models.LabSchedule {
	subject := in.DateSubjects[date]
	index := 0
	for labIndex := 0; labIndex < len(in.Labs) && labIndex < s.capacity.LabsPerDay; labIndex++ {
		if index >= len(candidates) {
			break
		}
		end := index + s.capacity.StudentsPerLab
		if end > len(candidates) {
			end = len(candidates)
		}
		chunk := candidates[index:end]

		schedule := models.LabSchedule{
			Date:    date,
			Subject: subject,
			Lab:     in.Labs[labIndex],
			Slots:   s.splitIntoSlots(chunk),
		}
		if len(in.InternalExaminers) > 0 {
			examiner := in.InternalExaminers[labIndex%len(in.InternalExaminers)]
			schedule.InternalExaminer = &examiner
		}
		if len(in.ExternalExaminers) > 0 {
			examiner := in.ExternalExaminers[labIndex%len(in.ExternalExaminers)]
			schedule.ExternalExaminer = &examiner
		}
		schedule.Semester, schedule.Batch = dominantCohort(chunk, cohorts)

		schedules = append(schedules, schedule)
		index = end
	}
	return schedules
}

// splitIntoSlots always yields two slots, forenoon then afternoon, even
// when one of them ends up empty.
func (s *AllocationService) splitIntoSlots(chunk []string) []models.TimeSlot {
	split := s.capacity.ForenoonCapacity
	if split > len(chunk) {
		split = len(chunk)
	}
	forenoon := chunk[:split]

	end := split + s.capacity.AfternoonCapacity
	if end > len(chunk) {
		end = len(chunk)
	}
	afternoon := chunk[split:end]

	return []models.TimeSlot{
		{
			Time:            models.ForenoonTime,
			Session:         models.SessionForenoon,
			Capacity:        len(forenoon),
			RegisterNumbers: forenoon,
		},
		{
			Time:            models.AfternoonTime,
			Session:         models.SessionAfternoon,
			Capacity:        len(afternoon),
			RegisterNumbers: afternoon,
		},
	}
}

// RegisterNumbers flattens every slot of every lab-day in order.
func (s *AllocationService) RegisterNumbers(schedules []models.LabSchedule) []string {
	var all []string
	for _, schedule := range schedules {
		for _, slot := range schedule.Slots {
			all = append(all, slot.RegisterNumbers...)
		}
	}
	return all
}

// CountPerDate sums seated candidates for each date.
func (s *AllocationService) CountPerDate(schedules []models.LabSchedule) map[string]int {
	counts := make(map[string]int, len(schedules))
	for _, schedule := range schedules {
		counts[schedule.Date] += schedule.TotalStudents()
	}
	return counts
}

// CountPerLab lists the seated count of each lab-day in order.
func (s *AllocationService) CountPerLab(schedules []models.LabSchedule) []int {
	counts := make([]int, len(schedules))
	for i, schedule := range schedules {
		counts[i] = schedule.TotalStudents()
	}
	return counts
}

type cohortRef struct {
	semester string
	batch    string
}

func buildCohortIndex(semesters []models.Semester) map[string]cohortRef {
	if len(semesters) == 0 {
		return nil
	}
	index := make(map[string]cohortRef)
	for _, semester := range semesters {
		for _, batch := range semester.Batches {
			ref := cohortRef{semester: semester.Name, batch: semester.BatchLabel(batch.Name)}
			for _, regNo := range batch.RegisterNumbers {
				index[regNo] = ref
			}
		}
	}
	return index
}

// dominantCohort labels a chunk with its most common semester/batch.
// When a chunk mixes batches the batch label becomes the sorted
// comma-joined list of every batch present; the semester stays that of
// the single most common pairing.
func dominantCohort(chunk []string, cohorts map[string]cohortRef) (string, string) {
	if len(cohorts) == 0 {
		return "", ""
	}

	counts := make(map[cohortRef]int)
	order := make([]cohortRef, 0, 4)
	for _, regNo := range chunk {
		ref, ok := cohorts[regNo]
		if !ok {
			continue
		}
		if counts[ref] == 0 {
			order = append(order, ref)
		}
		counts[ref]++
	}
	if len(counts) == 0 {
		return "", ""
	}

	best := order[0]
	for _, ref := range order[1:] {
		if counts[ref] > counts[best] {
			best = ref
		}
	}

	if len(counts) == 1 {
		return best.semester, best.batch
	}

	labels := make([]string, 0, len(order))
	for _, ref := range order {
		labels = append(labels, ref.batch)
	}
	sort.Strings(labels)
	return best.semester, strings.Join(labels, ", ")
}
