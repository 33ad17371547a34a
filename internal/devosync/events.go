// devosync/events.go
package devosync

import (
	"github.com/devoapp/backend/internal/devotional"
	"github.com/devoapp/backend/internal/team"
	"github.com/devoapp/backend/internal/user"
)

// EventType identifies what changed.
type EventType string

const (
	// EventMembershipChanged carries the user's fresh membership document.
	EventMembershipChanged EventType = "membership_changed"

	// EventTeamUpdated carries the selected team's fresh document.
	EventTeamUpdated EventType = "team_updated"

	// EventTeamDeleted signals the selected team disappeared remotely; the
	// supervisor has already torn down its listeners and gone idle.
	EventTeamDeleted EventType = "team_deleted"

	// EventMessagesUpdated carries the full, createdAt-ordered message list
	// for the bound (devotional, day).
	EventMessagesUpdated EventType = "messages_updated"

	// EventSyncError reports a listener error. It is informational; the
	// session keeps running.
	EventSyncError EventType = "sync_error"
)

// Event is one typed notification from the supervisor's coordination loop.
type Event struct {
	Type EventType `json:"type"`

	User *user.User `json:"user,omitempty"`
	Team *team.Team `json:"team,omitempty"`

	TeamID       string               `json:"team_id,omitempty"`
	DevotionalID string               `json:"devotional_id,omitempty"`
	Day          int                  `json:"day,omitempty"`
	Messages     []devotional.Message `json:"messages,omitempty"`

	Err error `json:"-"`
}
