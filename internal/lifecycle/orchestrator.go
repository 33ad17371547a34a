// lifecycle/orchestrator.go
package lifecycle

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/devoapp/backend/internal/devotional"
	"github.com/devoapp/backend/internal/team"
	"github.com/devoapp/backend/internal/user"
	"github.com/devoapp/backend/pkg/apperrors"
)

// Orchestrator composes the team registry, membership store and devotional
// registry into the create/join/delete team flows.
type Orchestrator struct {
	teams       team.Registry
	memberships user.MembershipStore
	devotionals devotional.Registry
	log         *logrus.Entry
}

func NewOrchestrator(teams team.Registry, memberships user.MembershipStore, devotionals devotional.Registry) *Orchestrator {
	return &Orchestrator{
		teams:       teams,
		memberships: memberships,
		devotionals: devotionals,
		log:         logrus.WithField("component", "lifecycle"),
	}
}

// CreateTeam creates the team, records the leader's membership, and makes a
// best-effort default devotional. A default-devotional failure is logged and
// does not roll back team creation.
func (o *Orchestrator) CreateTeam(ctx context.Context, callerID, name, leaderID, leaderName string) (*team.Team, error) {
	if callerID == "" {
		return nil, apperrors.Unauthenticated("")
	}
	if callerID != leaderID {
		return nil, apperrors.Forbidden(apperrors.ReasonNotLeader, "caller must be the team leader")
	}

	t, err := o.teams.Create(ctx, name, leaderID, leaderName)
	if err != nil {
		return nil, err
	}

	if err := o.memberships.AddMembership(ctx, leaderID, t.ID, user.RoleLeader); err != nil {
		return nil, err
	}

	if _, err := o.devotionals.CreateDefault(ctx, t.ID, t.Name); err != nil {
		o.log.WithError(err).WithField("team_id", t.ID).
			Warn("default devotional creation failed; team creation stands")
	}
	return t, nil
}

// JoinTeam adds the caller to the team behind the code. The team-side member
// add and the user-side membership must both apply; on a membership failure
// the member add is compensated so neither is considered applied.
func (o *Orchestrator) JoinTeam(ctx context.Context, code, userID string) (*team.Team, error) {
	if userID == "" {
		return nil, apperrors.Unauthenticated("")
	}
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, apperrors.Validation("team code is required")
	}

	t, err := o.teams.FindByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.NotFound("team")
	}
	if t.LeaderID == userID {
		return nil, apperrors.Forbidden(apperrors.ReasonAlreadyLeader, "user is the leader of this team")
	}
	if t.IsMember(userID) {
		return nil, apperrors.Forbidden(apperrors.ReasonAlreadyMember, "user already belongs to this team")
	}

	if err := o.teams.AddMember(ctx, t.ID, userID); err != nil {
		return nil, err
	}
	if err := o.memberships.AddMembership(ctx, userID, t.ID, user.RoleMember); err != nil {
		// Compensate the member add so the join is all-or-nothing.
		if rerr := o.teams.RemoveMember(ctx, t.ID, userID); rerr != nil {
			o.log.WithError(rerr).WithFields(logrus.Fields{"team_id": t.ID, "user_id": userID}).
				Error("compensating member removal failed")
		}
		return nil, err
	}

	t.MemberIDs = append(t.MemberIDs, userID)
	return t, nil
}

// RemoveMember lets the leader remove a member: the team-side set removal
// plus the member's own membership record.
func (o *Orchestrator) RemoveMember(ctx context.Context, callerID, teamID, memberID string) error {
	t, err := o.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return apperrors.NotFound("team")
	}
	if t.LeaderID != callerID {
		return apperrors.Forbidden(apperrors.ReasonNotLeader, "only the leader can remove members")
	}
	if !t.IsMember(memberID) {
		return apperrors.NotFound("team member")
	}

	if err := o.teams.RemoveMember(ctx, teamID, memberID); err != nil {
		return err
	}
	if err := o.memberships.RemoveMembership(ctx, memberID, teamID); err != nil {
		o.log.WithError(err).WithFields(logrus.Fields{"team_id": teamID, "user_id": memberID}).
			Warn("membership record removal failed after member removal")
		return apperrors.PartialFailure("member removed but membership record not cleaned up", err)
	}
	return nil
}

// DeleteTeam cascades: devotionals and their messages go first (one batch in
// the registry), then each affected user's membership is stripped
// best-effort, then the team record itself is removed.
func (o *Orchestrator) DeleteTeam(ctx context.Context, teamID, leaderID string) error {
	t, err := o.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return apperrors.NotFound("team")
	}
	if t.LeaderID != leaderID {
		return apperrors.Forbidden(apperrors.ReasonNotLeader, "only the leader can delete the team")
	}

	if err := o.devotionals.DeleteForTeam(ctx, teamID); err != nil {
		return err
	}

	for _, memberID := range t.AllMemberIDs() {
		if err := o.memberships.RemoveMembership(ctx, memberID, teamID); err != nil {
			o.log.WithError(err).WithFields(logrus.Fields{"team_id": teamID, "user_id": memberID}).
				Warn("membership removal failed during team deletion")
		}
	}

	return o.teams.Delete(ctx, teamID)
}
