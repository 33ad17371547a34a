// team/team_model.go
package team

import (
	"time"

	"github.com/devoapp/backend/internal/store"
)

const teamsCollection = "teams"

// Team is a group of users sharing one devotional at a time, joined via a
// unique 6-character code. The leader is never part of MemberIDs.
type Team struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	LeaderID   string    `json:"leader_id"`
	LeaderName string    `json:"leader_name"`
	MemberIDs  []string  `json:"member_ids"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AllMemberIDs returns the member ids plus the leader.
func (t *Team) AllMemberIDs() []string {
	out := make([]string, 0, len(t.MemberIDs)+1)
	out = append(out, t.MemberIDs...)
	return append(out, t.LeaderID)
}

// IsMember reports whether userID is a (non-leader) member.
func (t *Team) IsMember(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (t *Team) toDoc() map[string]interface{} {
	memberIDs := t.MemberIDs
	if memberIDs == nil {
		memberIDs = []string{}
	}
	return map[string]interface{}{
		"name":       t.Name,
		"code":       t.Code,
		"leaderId":   t.LeaderID,
		"leaderName": t.LeaderName,
		"memberIds":  memberIDs,
		"createdAt":  t.CreatedAt,
		"updatedAt":  t.UpdatedAt,
	}
}

// FromDoc maps a store document onto a Team.
func FromDoc(doc *store.Document) *Team {
	if doc == nil {
		return nil
	}
	return &Team{
		ID:         doc.ID,
		Name:       store.String(doc.Data, "name"),
		Code:       store.String(doc.Data, "code"),
		LeaderID:   store.String(doc.Data, "leaderId"),
		LeaderName: store.String(doc.Data, "leaderName"),
		MemberIDs:  store.Strings(doc.Data, "memberIds"),
		CreatedAt:  store.Time(doc.Data, "createdAt"),
		UpdatedAt:  store.Time(doc.Data, "updatedAt"),
	}
}

// Collection exposes the teams collection name to the sync supervisor, which
// watches team documents directly.
func Collection() string {
	return teamsCollection
}
