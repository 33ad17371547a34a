package lifecycle

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devoapp/backend/internal/devotional"
	"github.com/devoapp/backend/internal/store/memstore"
	"github.com/devoapp/backend/internal/team"
	"github.com/devoapp/backend/internal/user"
	"github.com/devoapp/backend/pkg/apperrors"
)

type fixture struct {
	st           *memstore.Store
	orchestrator *Orchestrator
	teams        team.Registry
	memberships  user.MembershipStore
	devotionals  devotional.Registry
}

func newFixture() *fixture {
	st := memstore.New()
	teams := team.NewRegistry(st)
	memberships := user.NewMembershipStore(st)
	devotionals := devotional.NewRegistry(st)
	return &fixture{
		st:           st,
		orchestrator: NewOrchestrator(teams, memberships, devotionals),
		teams:        teams,
		memberships:  memberships,
		devotionals:  devotionals,
	}
}

func TestCreateTeam_FullSetup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.orchestrator.CreateTeam(ctx, "leader-1", "Morning Watch", "leader-1", "Pat")
	require.NoError(t, err)
	assert.Len(t, created.Code, 6)

	// The leader holds a leader membership with the new team selected.
	memberships, err := f.memberships.GetMemberships(ctx, "leader-1")
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, created.ID, memberships[0].TeamID)
	assert.Equal(t, user.RoleLeader, memberships[0].Role)

	selected, err := f.memberships.GetSelected(ctx, "leader-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, selected)

	// A default free-topic devotional exists for the team.
	d, err := f.devotionals.GetActive(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, created.Name, d.Title)
	require.Len(t, d.DailyInstructions, devotional.Days)
	assert.Equal(t, devotional.FreeTopicInstruction, d.DailyInstructions[0].Instruction)
	assert.True(t, d.IsActive(time.Now()))
}

func TestCreateTeam_RequiresAuthenticatedCaller(t *testing.T) {
	f := newFixture()

	_, err := f.orchestrator.CreateTeam(context.Background(), "", "Alpha", "", "Pat")
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))
}

func TestCreateTeam_CallerMustBeLeader(t *testing.T) {
	f := newFixture()

	_, err := f.orchestrator.CreateTeam(context.Background(), "someone", "Alpha", "other", "Pat")
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonNotLeader, apperrors.ReasonOf(err))
}

func TestJoinTeam_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.orchestrator.CreateTeam(ctx, "leader-1", "Alpha", "leader-1", "Pat")
	require.NoError(t, err)

	joined, err := f.orchestrator.JoinTeam(ctx, "  "+created.Code+"  ", "u1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, joined.ID)
	assert.Contains(t, joined.MemberIDs, "u1")

	stored, err := f.teams.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.MemberIDs, "u1")

	memberships, err := f.memberships.GetMemberships(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, user.RoleMember, memberships[0].Role)
}

func TestJoinTeam_LowercaseCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.orchestrator.CreateTeam(ctx, "leader-1", "Alpha", "leader-1", "Pat")
	require.NoError(t, err)

	joined, err := f.orchestrator.JoinTeam(ctx, strings.ToLower(created.Code), "u1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, joined.ID)
}

func TestJoinTeam_UnknownCode(t *testing.T) {
	f := newFixture()

	_, err := f.orchestrator.JoinTeam(context.Background(), "ZZZZZZ", "u1")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestJoinTeam_EmptyCode(t *testing.T) {
	f := newFixture()

	_, err := f.orchestrator.JoinTeam(context.Background(), "   ", "u1")
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestJoinTeam_LeaderCannotJoinOwnTeam(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.orchestrator.CreateTeam(ctx, "leader-1", "Alpha", "leader-1", "Pat")
	require.NoError(t, err)

	_, err = f.orchestrator.JoinTeam(ctx, created.Code, "leader-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonAlreadyLeader, apperrors.ReasonOf(err))
}

func TestJoinTeam_TwiceRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.orchestrator.CreateTeam(ctx, "leader-1", "Alpha", "leader-1", "Pat")
	require.NoError(t, err)

	_, err = f.orchestrator.JoinTeam(ctx, created.Code, "u1")
	require.NoError(t, err)

	_, err = f.orchestrator.JoinTeam(ctx, created.Code, "u1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonAlreadyMember, apperrors.ReasonOf(err))

	// The member list did not grow a duplicate.
	stored, err := f.teams.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, stored.MemberIDs)
}

func TestRemoveMember_LeaderOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.orchestrator.CreateTeam(ctx, "leader-1", "Alpha", "leader-1", "Pat")
	require.NoError(t, err)
	_, err = f.orchestrator.JoinTeam(ctx, created.Code, "u1")
	require.NoError(t, err)

	err = f.orchestrator.RemoveMember(ctx, "u1", created.ID, "u1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonNotLeader, apperrors.ReasonOf(err))

	require.NoError(t, f.orchestrator.RemoveMember(ctx, "leader-1", created.ID, "u1"))

	stored, err := f.teams.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.MemberIDs)

	memberships, err := f.memberships.GetMemberships(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, memberships)
}

func TestRemoveMember_UnknownMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.orchestrator.CreateTeam(ctx, "leader-1", "Alpha", "leader-1", "Pat")
	require.NoError(t, err)

	err = f.orchestrator.RemoveMember(ctx, "leader-1", created.ID, "stranger")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestDeleteTeam_LeaderOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.orchestrator.CreateTeam(ctx, "leader-1", "Alpha", "leader-1", "Pat")
	require.NoError(t, err)

	err = f.orchestrator.DeleteTeam(ctx, created.ID, "someone-else")
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonNotLeader, apperrors.ReasonOf(err))
}

func TestDeleteTeam_Cascades(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.orchestrator.CreateTeam(ctx, "leader-1", "Alpha", "leader-1", "Pat")
	require.NoError(t, err)
	_, err = f.orchestrator.JoinTeam(ctx, created.Code, "u1")
	require.NoError(t, err)

	active, err := f.devotionals.GetActive(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, active)

	engine := devotional.NewMessageEngine(f.st)
	_, err = engine.Send(ctx, active.ID, 1, "u1", "Sam", "day one")
	require.NoError(t, err)

	require.NoError(t, f.orchestrator.DeleteTeam(ctx, created.ID, "leader-1"))

	// Team, devotional, messages and memberships are all gone.
	stored, err := f.teams.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	d, err := f.devotionals.GetActive(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, d)

	msgs, err := engine.GetForDay(ctx, active.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	for _, userID := range []string{"leader-1", "u1"} {
		memberships, err := f.memberships.GetMemberships(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, memberships, "memberships of %s should be stripped", userID)
	}
}

func TestDeleteTeam_MultiTeamUserKeepsOtherMembership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.orchestrator.CreateTeam(ctx, "leader-1", "Alpha", "leader-1", "Pat")
	require.NoError(t, err)
	second, err := f.orchestrator.CreateTeam(ctx, "leader-2", "Beta", "leader-2", "Kim")
	require.NoError(t, err)

	_, err = f.orchestrator.JoinTeam(ctx, first.Code, "u1")
	require.NoError(t, err)
	_, err = f.orchestrator.JoinTeam(ctx, second.Code, "u1")
	require.NoError(t, err)

	require.NoError(t, f.orchestrator.DeleteTeam(ctx, first.ID, "leader-1"))

	memberships, err := f.memberships.GetMemberships(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, second.ID, memberships[0].TeamID)

	selected, err := f.memberships.GetSelected(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, selected)
}

// End-to-end: leader creates a team, a member joins by code, the leader sets up
// a week, and the member's first message completes day one.
func TestTeamWeekLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	now := time.Now()

	created, err := f.orchestrator.CreateTeam(ctx, "leader-L", "Youth", "leader-L", "Lee")
	require.NoError(t, err)
	require.Len(t, created.Code, 6)

	joined, err := f.orchestrator.JoinTeam(ctx, created.Code, "member-M")
	require.NoError(t, err)
	assert.Equal(t, []string{"member-M"}, joined.MemberIDs)

	selected, err := f.memberships.GetSelected(ctx, "member-M")
	require.NoError(t, err)
	assert.Equal(t, created.ID, selected)

	instructions := make([]devotional.DailyInstruction, 0, devotional.Days)
	for day := 1; day <= devotional.Days; day++ {
		instructions = append(instructions, devotional.DailyInstruction{
			Day:         day,
			Date:        now.AddDate(0, 0, day-1),
			Instruction: "Read together",
		})
	}
	week, err := f.devotionals.Create(ctx, created.ID, "Youth Week", now, now.AddDate(0, 0, 7), instructions)
	require.NoError(t, err)

	active, err := f.devotionals.GetActive(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, week.ID, active.ID, "the newly created week supersedes the default devotional")

	engine := devotional.NewMessageEngine(f.st)
	_, err = engine.Send(ctx, week.ID, 1, "member-M", "Mel", "first reflection")
	require.NoError(t, err)

	msgs, err := engine.GetForDay(ctx, week.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, devotional.DayCompleted,
		devotional.StatusForDay(1, active, msgs, "member-M", now))
}
