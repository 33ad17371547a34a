package devotional

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func weekStarting(start time.Time) *Devotional {
	d := &Devotional{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, Days),
	}
	for day := 1; day <= Days; day++ {
		d.DailyInstructions = append(d.DailyInstructions, DailyInstruction{
			Day:         day,
			Date:        start.AddDate(0, 0, day-1),
			Instruction: FreeTopicInstruction,
		})
	}
	return d
}

func TestCurrentDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	d := weekStarting(start)

	cases := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"first day", start.Add(9 * time.Hour), 1},
		{"mid week", start.AddDate(0, 0, 3).Add(23 * time.Hour), 4},
		{"last day", start.AddDate(0, 0, 6), 7},
		{"before start", start.AddDate(0, 0, -1), 1},
		{"after end", start.AddDate(0, 0, 9), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CurrentDay(d, tc.today))
		})
	}
}

func TestCurrentDay_ClampsAtSeven(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	d := weekStarting(start)
	// EndDate pushed out: day arithmetic would yield 8+, the clamp holds it at 7.
	d.EndDate = start.AddDate(0, 0, 10)

	assert.Equal(t, 7, CurrentDay(d, start.AddDate(0, 0, 9)))
}

func TestIsActive(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	d := weekStarting(start)

	assert.True(t, d.IsActive(start))
	assert.True(t, d.IsActive(start.AddDate(0, 0, 3)))
	assert.True(t, d.IsActive(d.EndDate))
	assert.False(t, d.IsActive(start.Add(-time.Second)))
	assert.False(t, d.IsActive(d.EndDate.Add(time.Second)))
}

func TestInstructionForDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	d := weekStarting(start)

	in := d.InstructionForDay(3)
	assert.NotNil(t, in)
	assert.Equal(t, 3, in.Day)

	assert.Nil(t, d.InstructionForDay(8))
	assert.Nil(t, d.InstructionForDay(0))
}
