// user/membership_store.go
package user

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/devoapp/backend/internal/store"
	"github.com/devoapp/backend/pkg/apperrors"
)

// MembershipStore owns the per-user membership list and selected team.
type MembershipStore interface {
	GetUser(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, u *User) error
	GetMemberships(ctx context.Context, userID string) ([]Membership, error)
	AddMembership(ctx context.Context, userID, teamID string, role Role) error
	RemoveMembership(ctx context.Context, userID, teamID string) error
	SetSelected(ctx context.Context, userID, teamID string) error
	GetSelected(ctx context.Context, userID string) (string, error)
}

type membershipStore struct {
	st  store.Store
	log *logrus.Entry
}

// NewMembershipStore creates a membership store backed by the given store.
func NewMembershipStore(st store.Store) MembershipStore {
	return &membershipStore{st: st, log: logrus.WithField("component", "membership_store")}
}

func (s *membershipStore) GetUser(ctx context.Context, userID string) (*User, error) {
	doc, err := s.st.Get(ctx, usersCollection, userID)
	if err != nil {
		return nil, apperrors.TransientIO("get user", err)
	}
	return FromDoc(doc), nil
}

// UpdateProfile writes the profile fields, re-materializing the membership
// list form as a side effect so legacy records converge on first write.
func (s *membershipStore) UpdateProfile(ctx context.Context, u *User) error {
	ms, err := s.loadMemberships(ctx, u.ID)
	if err != nil {
		return err
	}

	data := map[string]interface{}{
		"email":     u.Email,
		"updatedAt": time.Now(),
	}
	if u.DisplayName != "" {
		data["displayName"] = u.DisplayName
	}
	if u.FirstName != "" {
		data["firstName"] = u.FirstName
	}
	if u.LastName != "" {
		data["lastName"] = u.LastName
	}
	if len(ms) > 0 {
		data["teams"] = membershipDocs(ms)
		data["teamId"] = ms[0].TeamID
		data["role"] = string(ms[0].Role)
	}
	if err := s.st.Set(ctx, usersCollection, u.ID, data, true); err != nil {
		return apperrors.TransientIO("update user", err)
	}
	return nil
}

func (s *membershipStore) GetMemberships(ctx context.Context, userID string) ([]Membership, error) {
	return s.loadMemberships(ctx, userID)
}

// AddMembership appends a membership. The first membership also becomes the
// selected team. Writes always persist the list form plus the legacy
// projection of the first entry.
func (s *membershipStore) AddMembership(ctx context.Context, userID, teamID string, role Role) error {
	ms, err := s.loadMemberships(ctx, userID)
	if err != nil {
		return err
	}
	for _, m := range ms {
		if m.TeamID == teamID {
			return apperrors.Forbidden(apperrors.ReasonAlreadyMember, "user already belongs to this team")
		}
	}

	ms = append(ms, Membership{TeamID: teamID, Role: role, JoinedAt: time.Now()})

	data := map[string]interface{}{
		"teams":     membershipDocs(ms),
		"teamId":    ms[0].TeamID,
		"role":      string(ms[0].Role),
		"updatedAt": time.Now(),
	}
	if len(ms) == 1 {
		data["selectedTeamId"] = teamID
	}
	if err := s.st.Set(ctx, usersCollection, userID, data, true); err != nil {
		return apperrors.TransientIO("add membership", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "team_id": teamID, "role": role}).
		Info("membership added")
	return nil
}

// RemoveMembership drops the membership for teamID. If it was selected, the
// first remaining membership takes over (order-stable); with none left, all
// team fields are cleared.
func (s *membershipStore) RemoveMembership(ctx context.Context, userID, teamID string) error {
	doc, err := s.st.Get(ctx, usersCollection, userID)
	if err != nil {
		return apperrors.TransientIO("get user", err)
	}
	if doc == nil {
		return nil
	}
	ms := FromDoc(doc).Memberships

	kept := make([]Membership, 0, len(ms))
	for _, m := range ms {
		if m.TeamID != teamID {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(ms) {
		return nil
	}

	data := map[string]interface{}{"updatedAt": time.Now()}
	if len(kept) == 0 {
		data["teams"] = store.DeleteField()
		data["selectedTeamId"] = store.DeleteField()
		data["teamId"] = store.DeleteField()
		data["role"] = store.DeleteField()
	} else {
		data["teams"] = membershipDocs(kept)
		data["teamId"] = kept[0].TeamID
		data["role"] = string(kept[0].Role)
		if store.String(doc.Data, "selectedTeamId") == teamID {
			data["selectedTeamId"] = kept[0].TeamID
		}
	}
	if err := s.st.Set(ctx, usersCollection, userID, data, true); err != nil {
		return apperrors.TransientIO("remove membership", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "team_id": teamID}).
		Info("membership removed")
	return nil
}

func (s *membershipStore) SetSelected(ctx context.Context, userID, teamID string) error {
	ms, err := s.loadMemberships(ctx, userID)
	if err != nil {
		return err
	}
	found := false
	for _, m := range ms {
		if m.TeamID == teamID {
			found = true
			break
		}
	}
	if !found {
		return apperrors.Forbidden(apperrors.ReasonNotAMember, "user does not belong to this team")
	}

	data := map[string]interface{}{
		"selectedTeamId": teamID,
		"updatedAt":      time.Now(),
	}
	if err := s.st.Set(ctx, usersCollection, userID, data, true); err != nil {
		return apperrors.TransientIO("set selected team", err)
	}
	return nil
}

// GetSelected resolves the selected team: the explicit selection when stored,
// else the first membership, else the legacy teamId field, else "".
func (s *membershipStore) GetSelected(ctx context.Context, userID string) (string, error) {
	doc, err := s.st.Get(ctx, usersCollection, userID)
	if err != nil {
		return "", apperrors.TransientIO("get user", err)
	}
	if doc == nil {
		return "", nil
	}
	if selected := store.String(doc.Data, "selectedTeamId"); selected != "" {
		return selected, nil
	}
	if ms := FromDoc(doc).Memberships; len(ms) > 0 {
		return ms[0].TeamID, nil
	}
	return store.String(doc.Data, "teamId"), nil
}

func (s *membershipStore) loadMemberships(ctx context.Context, userID string) ([]Membership, error) {
	doc, err := s.st.Get(ctx, usersCollection, userID)
	if err != nil {
		return nil, apperrors.TransientIO("get user", err)
	}
	if doc == nil {
		return nil, nil
	}
	return FromDoc(doc).Memberships, nil
}
