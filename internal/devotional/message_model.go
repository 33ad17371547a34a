// devotional/message_model.go
package devotional

import (
	"fmt"
	"time"

	"github.com/devoapp/backend/internal/store"
)

// Message is one user's reflection for one day of a devotional. At most one
// message exists per (devotional, day, user); edits mutate it in place.
type Message struct {
	ID           string    `json:"id"`
	DevotionalID string    `json:"devotional_id"`
	DayNumber    int       `json:"day_number"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	IsEdited     bool      `json:"is_edited"`
}

// messageID derives the document id from the natural key, so a retried
// create collapses onto the same document instead of duplicating it.
func messageID(devotionalID string, day int, userID string) string {
	return fmt.Sprintf("%s-d%d-%s", devotionalID, day, userID)
}

func (m *Message) toDoc() map[string]interface{} {
	return map[string]interface{}{
		"devotionalId": m.DevotionalID,
		"dayNumber":    m.DayNumber,
		"userId":       m.UserID,
		"userName":     m.UserName,
		"content":      m.Content,
		"createdAt":    m.CreatedAt,
		"updatedAt":    m.UpdatedAt,
		"isEdited":     m.IsEdited,
	}
}

// MessageFromDoc maps a store document onto a Message.
func MessageFromDoc(doc *store.Document) *Message {
	if doc == nil {
		return nil
	}
	return &Message{
		ID:           doc.ID,
		DevotionalID: store.String(doc.Data, "devotionalId"),
		DayNumber:    store.Int(doc.Data, "dayNumber"),
		UserID:       store.String(doc.Data, "userId"),
		UserName:     store.String(doc.Data, "userName"),
		Content:      store.String(doc.Data, "content"),
		CreatedAt:    store.Time(doc.Data, "createdAt"),
		UpdatedAt:    store.Time(doc.Data, "updatedAt"),
		IsEdited:     store.Bool(doc.Data, "isEdited"),
	}
}

// MessagesCollection exposes the messages collection name to the sync
// supervisor, which queries it directly for its live day subscription.
func MessagesCollection() string {
	return messagesCollection
}
