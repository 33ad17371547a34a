// user/user_model.go
package user

import (
	"time"

	"github.com/devoapp/backend/internal/store"
)

const usersCollection = "users"

// Role of a user within one team.
type Role string

const (
	RoleLeader Role = "leader"
	RoleMember Role = "member"
)

// Membership binds a user to a team. Memberships keep insertion order, which
// is the join order.
type Membership struct {
	TeamID   string    `json:"team_id"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// User is the profile document plus the user's team memberships. The legacy
// single-team fields (teamId/role) survive in the stored document as a
// projection of Memberships[0]; they are never a second source of truth.
type User struct {
	ID             string       `json:"id"`
	Email          string       `json:"email"`
	DisplayName    string       `json:"display_name"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Memberships    []Membership `json:"memberships"`
	SelectedTeamID string       `json:"selected_team_id"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// HasTeam reports whether the user holds a membership for teamID.
func (u *User) HasTeam(teamID string) bool {
	for _, m := range u.Memberships {
		if m.TeamID == teamID {
			return true
		}
	}
	return false
}

// FromDoc maps a user document onto a User, normalizing a legacy
// single-membership record into the list form. Normalization is pure and
// idempotent: a document already in list form passes through unchanged.
func FromDoc(doc *store.Document) *User {
	if doc == nil {
		return nil
	}
	u := &User{
		ID:             doc.ID,
		Email:          store.String(doc.Data, "email"),
		DisplayName:    store.String(doc.Data, "displayName"),
		FirstName:      store.String(doc.Data, "firstName"),
		LastName:       store.String(doc.Data, "lastName"),
		SelectedTeamID: store.String(doc.Data, "selectedTeamId"),
		CreatedAt:      store.Time(doc.Data, "createdAt"),
		UpdatedAt:      store.Time(doc.Data, "updatedAt"),
	}

	if raw := store.Maps(doc.Data, "teams"); len(raw) > 0 {
		for _, m := range raw {
			u.Memberships = append(u.Memberships, Membership{
				TeamID:   store.String(m, "teamId"),
				Role:     Role(store.String(m, "role")),
				JoinedAt: store.Time(m, "joinedAt"),
			})
		}
	} else if teamID := store.String(doc.Data, "teamId"); teamID != "" {
		// Legacy record: one team held directly on the document.
		u.Memberships = []Membership{{
			TeamID:   teamID,
			Role:     Role(store.String(doc.Data, "role")),
			JoinedAt: store.Time(doc.Data, "updatedAt"),
		}}
	}

	if u.SelectedTeamID == "" && len(u.Memberships) > 0 {
		u.SelectedTeamID = u.Memberships[0].TeamID
	}
	return u
}

// membershipDocs renders memberships in their stored list form.
func membershipDocs(ms []Membership) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(ms))
	for _, m := range ms {
		out = append(out, map[string]interface{}{
			"teamId":   m.TeamID,
			"role":     string(m.Role),
			"joinedAt": m.JoinedAt,
		})
	}
	return out
}

// Collection exposes the users collection name to the sync supervisor.
func Collection() string {
	return usersCollection
}
