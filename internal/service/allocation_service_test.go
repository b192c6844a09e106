package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashmilgit15/scheduler-backend/internal/models"
	"github.com/ashmilgit15/scheduler-backend/pkg/config"
)

func testCapacity() config.CapacityConfig {
	return config.CapacityConfig{
		StudentsPerLab:    25,
		ForenoonCapacity:  13,
		AfternoonCapacity: 12,
		LabsPerDay:        5,
	}
}

func regNumbers(n int) []string {
	numbers := make([]string, n)
	for i := range numbers {
		numbers[i] = fmt.Sprintf("TVE20CS%03d", i+1)
	}
	return numbers
}

func fiveLabs() []string {
	return []string{"Lab 1", "Lab 2", "Lab 3", "Lab 4", "Lab 5"}
}

func TestAllocateSingleFullLab(t *testing.T) {
	svc := NewAllocationService(testCapacity(), nil)

	schedules := svc.Allocate(AllocationInput{
		RegisterNumbers: regNumbers(25),
		Dates:           []string{"10-01-25"},
		Labs:            fiveLabs(),
	})

	require.Len(t, schedules, 1)
	schedule := schedules[0]
	assert.Equal(t, "Lab 1", schedule.Lab)
	require.Len(t, schedule.Slots, 2)
	assert.Equal(t, models.SessionForenoon, schedule.Slots[0].Session)
	assert.Equal(t, models.ForenoonTime, schedule.Slots[0].Time)
	assert.Len(t, schedule.Slots[0].RegisterNumbers, 13)
	assert.Equal(t, models.SessionAfternoon, schedule.Slots[1].Session)
	assert.Equal(t, models.AfternoonTime, schedule.Slots[1].Time)
	assert.Len(t, schedule.Slots[1].RegisterNumbers, 12)
}

func TestAllocateOverflowsToSecondDate(t *testing.T) {
	svc := NewAllocationService(testCapacity(), nil)
	input := AllocationInput{
		RegisterNumbers: regNumbers(130),
		Dates:           []string{"10-01-25", "12-01-25"},
		Labs:            fiveLabs(),
	}

	schedules := svc.Allocate(input)

	require.Len(t, schedules, 6)
	perDate := svc.CountPerDate(schedules)
	assert.Equal(t, 125, perDate["10-01-25"])
	assert.Equal(t, 5, perDate["12-01-25"])

	// final lab-day is a partial fill, all forenoon
	last := schedules[5]
	assert.Equal(t, "12-01-25", last.Date)
	assert.Equal(t, "Lab 1", last.Lab)
	assert.Len(t, last.Slots[0].RegisterNumbers, 5)
	assert.Empty(t, last.Slots[1].RegisterNumbers)
}

func TestAllocatePreservesOrder(t *testing.T) {
	svc := NewAllocationService(testCapacity(), nil)
	input := AllocationInput{
		RegisterNumbers: regNumbers(63),
		Dates:           []string{"10-01-25"},
		Labs:            fiveLabs(),
	}

	schedules := svc.Allocate(input)

	assert.Equal(t, input.RegisterNumbers, svc.RegisterNumbers(schedules))
	assert.Equal(t, []int{25, 25, 13}, svc.CountPerLab(schedules))
}

func TestAllocateCapacityInvariants(t *testing.T) {
	svc := NewAllocationService(testCapacity(), nil)

	for _, count := range []int{1, 12, 13, 14, 24, 25, 26, 125, 126, 300} {
		t.Run(fmt.Sprintf("%d students", count), func(t *testing.T) {
			dates := []string{"10-01-25", "12-01-25", "14-01-25"}
			schedules := svc.Allocate(AllocationInput{
				RegisterNumbers: regNumbers(count),
				Dates:           dates,
				Labs:            fiveLabs(),
			})

			seated := 0
			for _, schedule := range schedules {
				require.Len(t, schedule.Slots, 2)
				assert.LessOrEqual(t, len(schedule.Slots[0].RegisterNumbers), 13)
				assert.LessOrEqual(t, len(schedule.Slots[1].RegisterNumbers), 12)
				if len(schedule.Slots[1].RegisterNumbers) > 0 {
					assert.Len(t, schedule.Slots[0].RegisterNumbers, 13)
				}
				seated += schedule.TotalStudents()
			}
			want := count
			if max := len(dates) * 125; want > max {
				want = max
			}
			assert.Equal(t, want, seated)

			for date, n := range svc.CountPerDate(schedules) {
				assert.LessOrEqual(t, n, 125, "date %s over capacity", date)
			}
		})
	}
}

func TestAllocateExaminerCycling(t *testing.T) {
	svc := NewAllocationService(testCapacity(), nil)
	internals := []models.Examiner{
		{ID: "INT1", Name: "Anil"},
		{ID: "INT2", Name: "Beena"},
	}
	externals := []models.Examiner{{ID: "EXT1", Name: "Cyril"}}

	schedules := svc.Allocate(AllocationInput{
		RegisterNumbers:   regNumbers(100),
		Dates:             []string{"10-01-25"},
		Labs:              fiveLabs(),
		InternalExaminers: internals,
		ExternalExaminers: externals,
	})

	require.Len(t, schedules, 4)
	for i, schedule := range schedules {
		require.NotNil(t, schedule.InternalExaminer)
		assert.Equal(t, internals[i%2], *schedule.InternalExaminer)
		require.NotNil(t, schedule.ExternalExaminer)
		assert.Equal(t, externals[0], *schedule.ExternalExaminer)
	}
}

func TestAllocateWithoutExaminers(t *testing.T) {
	svc := NewAllocationService(testCapacity(), nil)

	schedules := svc.Allocate(AllocationInput{
		RegisterNumbers: regNumbers(10),
		Dates:           []string{"10-01-25"},
		Labs:            fiveLabs(),
	})

	require.Len(t, schedules, 1)
	assert.Nil(t, schedules[0].InternalExaminer)
	assert.Nil(t, schedules[0].ExternalExaminer)
}

func TestAllocateDateKeyedMode(t *testing.T) {
	svc := NewAllocationService(testCapacity(), nil)

	schedules := svc.Allocate(AllocationInput{
		Dates: []string{"10-01-25", "12-01-25"},
		Labs:  fiveLabs(),
		DateSubjects: map[string]string{
			"10-01-25": "CS331 Data Structures Lab",
			"12-01-25": "CS333 Networks Lab",
		},
		DateRegisterNumbers: map[string][]string{
			"10-01-25": regNumbers(30),
			"12-01-25": regNumbers(10),
		},
	})

	require.Len(t, schedules, 3)
	assert.Equal(t, "CS331 Data Structures Lab", schedules[0].Subject)
	assert.Equal(t, "Lab 1", schedules[0].Lab)
	assert.Equal(t, "Lab 2", schedules[1].Lab)
	assert.Equal(t, 5, schedules[1].TotalStudents())
	assert.Equal(t, "CS333 Networks Lab", schedules[2].Subject)
	assert.Equal(t, "Lab 1", schedules[2].Lab)
}

func TestAllocateCohortLabels(t *testing.T) {
	svc := NewAllocationService(testCapacity(), nil)
	numbers := regNumbers(25)
	semesters := []models.Semester{
		{
			Name: "S3",
			Batches: []models.Batch{
				{Name: "A", RegisterNumbers: numbers[:20]},
				{Name: "B", RegisterNumbers: numbers[20:]},
			},
		},
	}

	schedules := svc.Allocate(AllocationInput{
		RegisterNumbers: numbers,
		Dates:           []string{"10-01-25"},
		Labs:            fiveLabs(),
		Semesters:       semesters,
	})

	require.Len(t, schedules, 1)
	assert.Equal(t, "S3", schedules[0].Semester)
	// mixed chunk lists every batch present
	assert.Equal(t, "S3A, S3B", schedules[0].Batch)
}

func TestAllocateSingleCohortChunk(t *testing.T) {
	svc := NewAllocationService(testCapacity(), nil)
	numbers := regNumbers(10)
	semesters := []models.Semester{{
		Name:    "S5",
		Batches: []models.Batch{{Name: "A", RegisterNumbers: numbers}},
	}}

	schedules := svc.Allocate(AllocationInput{
		RegisterNumbers: numbers,
		Dates:           []string{"10-01-25"},
		Labs:            fiveLabs(),
		Semesters:       semesters,
	})

	require.Len(t, schedules, 1)
	assert.Equal(t, "S5", schedules[0].Semester)
	assert.Equal(t, "S5A", schedules[0].Batch)
}

func TestAllocateEmptyInputs(t *testing.T) {
	svc := NewAllocationService(testCapacity(), nil)

	assert.Empty(t, svc.Allocate(AllocationInput{
		Dates: []string{"10-01-25"},
		Labs:  fiveLabs(),
	}))
	assert.Empty(t, svc.Allocate(AllocationInput{
		RegisterNumbers: regNumbers(5),
		Labs:            fiveLabs(),
	}))
}

func TestNewAllocationServiceDefaults(t *testing.T) {
	svc := NewAllocationService(config.CapacityConfig{}, nil)

	schedules := svc.Allocate(AllocationInput{
		RegisterNumbers: regNumbers(25),
		Dates:           []string{"10-01-25"},
		Labs:            fiveLabs(),
	})
	require.Len(t, schedules, 1)
	assert.Len(t, schedules[0].Slots[0].RegisterNumbers, 13)
}
