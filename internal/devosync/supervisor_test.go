package devosync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devoapp/backend/internal/devotional"
	"github.com/devoapp/backend/internal/store/memstore"
	"github.com/devoapp/backend/internal/team"
	"github.com/devoapp/backend/internal/user"
)

func seedTeam(t *testing.T, st *memstore.Store, id, name, leaderID string) {
	t.Helper()
	err := st.Set(context.Background(), team.Collection(), id, map[string]interface{}{
		"name":      name,
		"code":      "ABCDEF",
		"leaderId":  leaderID,
		"memberIds": []string{},
		"createdAt": time.Now(),
		"updatedAt": time.Now(),
	}, false)
	require.NoError(t, err)
}

func seedMember(t *testing.T, st *memstore.Store, userID, teamID string) {
	t.Helper()
	err := st.Set(context.Background(), user.Collection(), userID, map[string]interface{}{
		"email": userID + "@example.com",
		"teams": []map[string]interface{}{
			{"teamId": teamID, "role": "member", "joinedAt": time.Now()},
		},
		"selectedTeamId": teamID,
	}, false)
	require.NoError(t, err)
}

// waitEvent drains the stream until an event of the wanted type arrives.
func waitEvent(t *testing.T, sup *Supervisor, typ EventType) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-sup.Events():
			require.True(t, ok, "event stream closed while waiting for %s", typ)
			if ev.Type == typ {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", typ)
		}
	}
}

func TestSelectTeam_DeliversInitialSnapshots(t *testing.T) {
	st := memstore.New()
	seedTeam(t, st, "team-a", "Alpha", "leader-1")
	seedMember(t, st, "u1", "team-a")

	sup := New(st)
	defer sup.Close()

	sup.SelectTeam("u1", "team-a")
	assert.Equal(t, StateBound, sup.State())

	ev := waitEvent(t, sup, EventMembershipChanged)
	require.NotNil(t, ev.User)
	assert.Equal(t, "u1", ev.User.ID)
	assert.Equal(t, "team-a", ev.User.SelectedTeamID)

	ev = waitEvent(t, sup, EventTeamUpdated)
	require.NotNil(t, ev.Team)
	assert.Equal(t, "Alpha", ev.Team.Name)

	require.Eventually(t, func() bool {
		cur := sup.CurrentTeam()
		return cur != nil && cur.Name == "Alpha"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTeamUpdate_PropagatesToObservers(t *testing.T) {
	st := memstore.New()
	seedTeam(t, st, "team-a", "Alpha", "leader-1")
	seedMember(t, st, "u1", "team-a")

	sup := New(st)
	defer sup.Close()

	sup.SelectTeam("u1", "team-a")
	waitEvent(t, sup, EventTeamUpdated)

	require.NoError(t, st.Update(context.Background(), team.Collection(), "team-a",
		map[string]interface{}{"name": "Alpha Renamed"}))

	ev := waitEvent(t, sup, EventTeamUpdated)
	assert.Equal(t, "Alpha Renamed", ev.Team.Name)

	require.Eventually(t, func() bool {
		cur := sup.CurrentTeam()
		return cur != nil && cur.Name == "Alpha Renamed"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTeamDeleted_TearsDownAndGoesIdle(t *testing.T) {
	st := memstore.New()
	seedTeam(t, st, "team-a", "Alpha", "leader-1")
	seedMember(t, st, "u1", "team-a")

	sup := New(st)
	defer sup.Close()

	sup.SelectTeam("u1", "team-a")
	waitEvent(t, sup, EventTeamUpdated)

	require.NoError(t, st.Delete(context.Background(), team.Collection(), "team-a"))

	ev := waitEvent(t, sup, EventTeamDeleted)
	assert.Equal(t, "team-a", ev.TeamID)

	require.Eventually(t, func() bool {
		return sup.State() == StateIdle && sup.CurrentTeam() == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSelectDay_StreamsMessageSnapshots(t *testing.T) {
	st := memstore.New()
	seedTeam(t, st, "team-a", "Alpha", "leader-1")
	seedMember(t, st, "u1", "team-a")

	sup := New(st)
	defer sup.Close()

	sup.SelectTeam("u1", "team-a")
	sup.SelectDay("dev-1", 2)
	assert.Equal(t, StateBoundWithDay, sup.State())

	ev := waitEvent(t, sup, EventMessagesUpdated)
	assert.Equal(t, "dev-1", ev.DevotionalID)
	assert.Equal(t, 2, ev.Day)
	assert.Empty(t, ev.Messages)

	engine := devotional.NewMessageEngine(st)
	_, err := engine.Send(context.Background(), "dev-1", 2, "u1", "Pat", "day two")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		msgs := sup.Messages()
		return len(msgs) == 1 && msgs[0].Content == "day two"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSelectDay_SwitchReplacesListener(t *testing.T) {
	st := memstore.New()
	seedTeam(t, st, "team-a", "Alpha", "leader-1")
	seedMember(t, st, "u1", "team-a")

	engine := devotional.NewMessageEngine(st)
	_, err := engine.Send(context.Background(), "dev-1", 1, "u1", "Pat", "day one")
	require.NoError(t, err)
	_, err = engine.Send(context.Background(), "dev-1", 2, "u1", "Pat", "day two")
	require.NoError(t, err)

	sup := New(st)
	defer sup.Close()

	sup.SelectTeam("u1", "team-a")
	sup.SelectDay("dev-1", 1)

	require.Eventually(t, func() bool {
		msgs := sup.Messages()
		return len(msgs) == 1 && msgs[0].DayNumber == 1
	}, 2*time.Second, 10*time.Millisecond)

	sup.SelectDay("dev-1", 2)

	require.Eventually(t, func() bool {
		msgs := sup.Messages()
		return len(msgs) == 1 && msgs[0].DayNumber == 2
	}, 2*time.Second, 10*time.Millisecond)

	// A write to the old day must no longer reach the observables.
	_, err = engine.Send(context.Background(), "dev-1", 1, "u2", "Sam", "late day one")
	require.NoError(t, err)

	assert.Never(t, func() bool {
		for _, m := range sup.Messages() {
			if m.DayNumber == 1 {
				return true
			}
		}
		return false
	}, 200*time.Millisecond, 20*time.Millisecond)
}

func TestSelectDay_IgnoredWhenIdle(t *testing.T) {
	sup := New(memstore.New())
	defer sup.Close()

	sup.SelectDay("dev-1", 1)
	assert.Equal(t, StateIdle, sup.State())
}

func TestSignOut_StopsDelivery(t *testing.T) {
	st := memstore.New()
	seedTeam(t, st, "team-a", "Alpha", "leader-1")
	seedMember(t, st, "u1", "team-a")

	sup := New(st)
	defer sup.Close()

	sup.SelectTeam("u1", "team-a")
	waitEvent(t, sup, EventTeamUpdated)

	sup.SignOut()
	assert.Equal(t, StateIdle, sup.State())
	assert.Nil(t, sup.CurrentTeam())
	assert.Nil(t, sup.CurrentUser())

	require.NoError(t, st.Update(context.Background(), team.Collection(), "team-a",
		map[string]interface{}{"name": "Renamed After Signout"}))

	assert.Never(t, func() bool {
		cur := sup.CurrentTeam()
		return cur != nil
	}, 200*time.Millisecond, 20*time.Millisecond)
}

func TestReselect_SupersedesOldGeneration(t *testing.T) {
	st := memstore.New()
	seedTeam(t, st, "team-a", "Alpha", "leader-1")
	seedTeam(t, st, "team-b", "Beta", "leader-2")
	seedMember(t, st, "u1", "team-a")

	sup := New(st)
	defer sup.Close()

	sup.SelectTeam("u1", "team-a")
	sup.SelectTeam("u1", "team-b")

	require.Eventually(t, func() bool {
		cur := sup.CurrentTeam()
		return cur != nil && cur.Name == "Beta"
	}, 2*time.Second, 10*time.Millisecond)

	// Updates to the abandoned team must not surface.
	require.NoError(t, st.Update(context.Background(), team.Collection(), "team-a",
		map[string]interface{}{"name": "Alpha Renamed"}))

	assert.Never(t, func() bool {
		cur := sup.CurrentTeam()
		return cur == nil || cur.Name != "Beta"
	}, 200*time.Millisecond, 20*time.Millisecond)
}
