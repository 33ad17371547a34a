package devotional

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devoapp/backend/internal/store/memstore"
	"github.com/devoapp/backend/pkg/apperrors"
)

// registryAt builds a registry whose clock is pinned to now.
func registryAt(st *memstore.Store, now time.Time) *registry {
	return &registry{
		st:  st,
		log: logrus.WithField("component", "devotional_registry"),
		now: func() time.Time { return now },
	}
}

func sevenInstructions(start time.Time) []DailyInstruction {
	out := make([]DailyInstruction, 0, Days)
	for day := 1; day <= Days; day++ {
		out = append(out, DailyInstruction{
			Day:         day,
			Date:        start.AddDate(0, 0, day-1),
			Instruction: "Read and reflect",
			Passage:     "Ps 23",
		})
	}
	return out
}

func TestRegistryCreate_RequiresSevenInstructions(t *testing.T) {
	r := registryAt(memstore.New(), time.Now())
	start := time.Now()

	_, err := r.Create(context.Background(), "team-a", "Week", start, start.AddDate(0, 0, 7), sevenInstructions(start)[:5])
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestRegistryCreate_RequiresEndAfterStart(t *testing.T) {
	r := registryAt(memstore.New(), time.Now())
	start := time.Now()

	_, err := r.Create(context.Background(), "team-a", "Week", start, start, sevenInstructions(start))
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestRegistryCreate_RoundTrip(t *testing.T) {
	r := registryAt(memstore.New(), time.Now())
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	created, err := r.Create(ctx, "team-a", "Week of Psalms", start, start.AddDate(0, 0, 7), sevenInstructions(start))
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Week of Psalms", got.Title)
	assert.Equal(t, "team-a", got.TeamID)
	require.Len(t, got.DailyInstructions, Days)
	assert.Equal(t, 1, got.DailyInstructions[0].Day)
	assert.Equal(t, "Ps 23", got.DailyInstructions[0].Passage)
}

func TestCreateDefault_SevenFreeTopicDays(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)
	r := registryAt(memstore.New(), now)

	d, err := r.CreateDefault(context.Background(), "team-a", "Morning Watch")
	require.NoError(t, err)
	assert.Equal(t, "Morning Watch", d.Title)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), d.StartDate, "starts at the beginning of today")
	assert.Equal(t, d.StartDate.AddDate(0, 0, Days), d.EndDate)
	require.Len(t, d.DailyInstructions, Days)
	for i, in := range d.DailyInstructions {
		assert.Equal(t, i+1, in.Day)
		assert.Equal(t, FreeTopicInstruction, in.Instruction)
	}
}

func TestGetActive_MostRecentWins(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	older := registryAt(st, start)
	_, err := older.Create(ctx, "team-a", "First", start, start.AddDate(0, 0, 7), sevenInstructions(start))
	require.NoError(t, err)

	newer := registryAt(st, start.AddDate(0, 0, 1))
	want, err := newer.Create(ctx, "team-a", "Second", start, start.AddDate(0, 0, 7), sevenInstructions(start))
	require.NoError(t, err)

	got, err := newer.GetActive(ctx, "team-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, "Second", got.Title)
}

func TestGetActive_OutOfRangeStillReturned(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	r := registryAt(st, start)
	created, err := r.Create(ctx, "team-a", "Old Week", start, start.AddDate(0, 0, 7), sevenInstructions(start))
	require.NoError(t, err)

	// A month later the devotional is long over, but it is still the team's
	// most recent one and so still resolves.
	later := registryAt(st, start.AddDate(0, 1, 0))
	got, err := later.GetActive(ctx, "team-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.False(t, got.IsActive(start.AddDate(0, 1, 0)))
}

func TestGetActive_NoDevotionals(t *testing.T) {
	r := registryAt(memstore.New(), time.Now())

	got, err := r.GetActive(context.Background(), "team-a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteForTeam_CascadesOverMessages(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	r := registryAt(st, start)

	d, err := r.Create(ctx, "team-a", "Week", start, start.AddDate(0, 0, 7), sevenInstructions(start))
	require.NoError(t, err)

	engine := NewMessageEngine(st)
	_, err = engine.Send(ctx, d.ID, 1, "u1", "Pat", "day one thoughts")
	require.NoError(t, err)

	require.NoError(t, r.DeleteForTeam(ctx, "team-a"))

	got, err := r.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	msgs, err := engine.GetForDay(ctx, d.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestDeleteForTeam_LeavesOtherTeams(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	r := registryAt(st, start)

	keep, err := r.Create(ctx, "team-b", "Keep", start, start.AddDate(0, 0, 7), sevenInstructions(start))
	require.NoError(t, err)
	_, err = r.Create(ctx, "team-a", "Drop", start, start.AddDate(0, 0, 7), sevenInstructions(start))
	require.NoError(t, err)

	require.NoError(t, r.DeleteForTeam(ctx, "team-a"))

	got, err := r.GetByID(ctx, keep.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestPurgeExpired(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	r := registryAt(st, start)

	expired, err := r.Create(ctx, "team-a", "Gone", start, start.AddDate(0, 0, 7), sevenInstructions(start))
	require.NoError(t, err)
	current, err := r.Create(ctx, "team-b", "Running", start.AddDate(0, 0, 10), start.AddDate(0, 0, 17), sevenInstructions(start.AddDate(0, 0, 10)))
	require.NoError(t, err)

	engine := NewMessageEngine(st)
	_, err = engine.Send(ctx, expired.ID, 1, "u1", "Pat", "thoughts")
	require.NoError(t, err)

	sweeper := registryAt(st, start.AddDate(0, 0, 12))
	purged, err := sweeper.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	gone, err := r.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := r.GetByID(ctx, current.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)

	msgs, err := engine.GetForDay(ctx, expired.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, msgs, "messages go with their devotional")
}

func TestPurgeExpired_SecondRunIsNoop(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	r := registryAt(st, start)

	_, err := r.Create(ctx, "team-a", "Gone", start, start.AddDate(0, 0, 7), sevenInstructions(start))
	require.NoError(t, err)

	sweeper := registryAt(st, start.AddDate(0, 0, 12))
	purged, err := sweeper.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, purged)

	purged, err = sweeper.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestPurgeExpired_EndingTodaySurvives(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	r := registryAt(st, start)

	d, err := r.Create(ctx, "team-a", "Last Day", start, start.AddDate(0, 0, 7), sevenInstructions(start))
	require.NoError(t, err)

	// End date's calendar day is today: not yet purgeable.
	sweeper := registryAt(st, start.AddDate(0, 0, 7).Add(8*time.Hour))
	purged, err := sweeper.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, purged)

	kept, err := r.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
