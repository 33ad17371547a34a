// team/team_registry.go
package team

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devoapp/backend/internal/store"
	"github.com/devoapp/backend/pkg/apperrors"
)

// MaxNameLength is the longest allowed team name after trimming.
const MaxNameLength = 50

// Registry defines team persistence operations against the document store.
type Registry interface {
	Create(ctx context.Context, name, leaderID, leaderName string) (*Team, error)
	FindByCode(ctx context.Context, code string) (*Team, error)
	GetByID(ctx context.Context, id string) (*Team, error)
	Update(ctx context.Context, callerID string, t *Team) error
	AddMember(ctx context.Context, teamID, userID string) error
	RemoveMember(ctx context.Context, teamID, userID string) error
	Delete(ctx context.Context, teamID string) error
	CodeExists(ctx context.Context, code string) (bool, error)
}

type registry struct {
	st  store.Store
	log *logrus.Entry
}

// NewRegistry creates a team registry backed by the given store.
func NewRegistry(st store.Store) Registry {
	return &registry{st: st, log: logrus.WithField("component", "team_registry")}
}

func (r *registry) Create(ctx context.Context, name, leaderID, leaderName string) (*Team, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperrors.Validation("team name is required")
	}
	if len([]rune(trimmed)) > MaxNameLength {
		return nil, apperrors.Validation("team name must be at most 50 characters")
	}

	code, err := generateUniqueCode(ctx, r)
	if err != nil {
		return nil, apperrors.TransientIO("generate team code", err)
	}

	now := time.Now()
	t := &Team{
		ID:         uuid.NewString(),
		Name:       trimmed,
		Code:       code,
		LeaderID:   leaderID,
		LeaderName: leaderName,
		MemberIDs:  []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.st.Set(ctx, teamsCollection, t.ID, t.toDoc(), false); err != nil {
		return nil, apperrors.TransientIO("create team", err)
	}

	r.log.WithFields(logrus.Fields{"team_id": t.ID, "code": t.Code}).Info("team created")
	return t, nil
}

func (r *registry) FindByCode(ctx context.Context, code string) (*Team, error) {
	docs, err := r.st.Query(teamsCollection).
		Where("code", strings.ToUpper(code)).
		Limit(1).
		Documents(ctx)
	if err != nil {
		return nil, apperrors.TransientIO("find team by code", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return FromDoc(&docs[0]), nil
}

func (r *registry) GetByID(ctx context.Context, id string) (*Team, error) {
	doc, err := r.st.Get(ctx, teamsCollection, id)
	if err != nil {
		return nil, apperrors.TransientIO("get team", err)
	}
	return FromDoc(doc), nil
}

// Update rewrites the team document. The caller must be the stored leader and
// leaderId is immutable after creation.
func (r *registry) Update(ctx context.Context, callerID string, t *Team) error {
	stored, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	if stored == nil {
		return apperrors.NotFound("team")
	}
	if callerID != stored.LeaderID {
		return apperrors.Forbidden(apperrors.ReasonNotLeader, "only the leader can update the team")
	}
	if t.LeaderID != stored.LeaderID {
		return apperrors.Forbidden(apperrors.ReasonNotLeader, "team leader cannot be changed")
	}

	t.UpdatedAt = time.Now()
	t.CreatedAt = stored.CreatedAt
	if err := r.st.Set(ctx, teamsCollection, t.ID, t.toDoc(), false); err != nil {
		return apperrors.TransientIO("update team", err)
	}
	return nil
}

func (r *registry) AddMember(ctx context.Context, teamID, userID string) error {
	err := r.st.Update(ctx, teamsCollection, teamID, map[string]interface{}{
		"memberIds": store.ArrayUnion(userID),
		"updatedAt": time.Now(),
	})
	if err != nil {
		return apperrors.TransientIO("add team member", err)
	}
	return nil
}

func (r *registry) RemoveMember(ctx context.Context, teamID, userID string) error {
	err := r.st.Update(ctx, teamsCollection, teamID, map[string]interface{}{
		"memberIds": store.ArrayRemove(userID),
		"updatedAt": time.Now(),
	})
	if err != nil {
		return apperrors.TransientIO("remove team member", err)
	}
	return nil
}

func (r *registry) Delete(ctx context.Context, teamID string) error {
	if err := r.st.Delete(ctx, teamsCollection, teamID); err != nil {
		return apperrors.TransientIO("delete team", err)
	}
	r.log.WithField("team_id", teamID).Info("team deleted")
	return nil
}

func (r *registry) CodeExists(ctx context.Context, code string) (bool, error) {
	docs, err := r.st.Query(teamsCollection).
		Where("code", strings.ToUpper(code)).
		Limit(1).
		Documents(ctx)
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}
