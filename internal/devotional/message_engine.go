// devotional/message_engine.go
package devotional

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/devoapp/backend/internal/store"
	"github.com/devoapp/backend/pkg/apperrors"
)

// DayStatus labels one day of the active devotional for one user.
type DayStatus string

const (
	DayCompleted DayStatus = "completed"
	DayCurrent   DayStatus = "current"
	DayMissed    DayStatus = "missed"
	DayPending   DayStatus = "pending"
)

// MessageEngine performs the per-day message upsert and derives day status.
type MessageEngine interface {
	// Send creates the user's message for the day, or updates it in place
	// when one already exists (preserving id and createdAt, marking it
	// edited).
	Send(ctx context.Context, devotionalID string, day int, userID, userName, content string) (*Message, error)
	GetForUser(ctx context.Context, devotionalID string, day int, userID string) (*Message, error)
	// GetForDay returns the day's messages ordered by createdAt ascending.
	GetForDay(ctx context.Context, devotionalID string, day int) ([]Message, error)
	Delete(ctx context.Context, messageID string) error
}

type messageEngine struct {
	st  store.Store
	log *logrus.Entry
	now func() time.Time
}

// NewMessageEngine creates a message engine backed by the given store.
func NewMessageEngine(st store.Store) MessageEngine {
	return &messageEngine{
		st:  st,
		log: logrus.WithField("component", "message_engine"),
		now: time.Now,
	}
}

// Send is check-then-act against the store: the lookup and the write are not
// one transaction. The deterministic document id for new messages makes a
// retried create collapse onto the same document, which closes the common
// duplicate path; two distinct racing writers remain a known residual race.
func (e *messageEngine) Send(ctx context.Context, devotionalID string, day int, userID, userName, content string) (*Message, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, apperrors.Validation("message content is required")
	}
	if day < 1 || day > Days {
		return nil, apperrors.Validation("day number must be between 1 and 7")
	}

	existing, err := e.GetForUser(ctx, devotionalID, day, userID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	if existing != nil {
		updates := map[string]interface{}{
			"content":   trimmed,
			"updatedAt": now,
			"isEdited":  true,
		}
		if err := e.st.Update(ctx, messagesCollection, existing.ID, updates); err != nil {
			return nil, apperrors.TransientIO("update message", err)
		}
		existing.Content = trimmed
		existing.UpdatedAt = now
		existing.IsEdited = true

		e.log.WithFields(logrus.Fields{"message_id": existing.ID, "day": day}).Info("message updated")
		return existing, nil
	}

	m := &Message{
		ID:           messageID(devotionalID, day, userID),
		DevotionalID: devotionalID,
		DayNumber:    day,
		UserID:       userID,
		UserName:     userName,
		Content:      trimmed,
		CreatedAt:    now,
		UpdatedAt:    now,
		IsEdited:     false,
	}
	if err := e.st.Set(ctx, messagesCollection, m.ID, m.toDoc(), false); err != nil {
		return nil, apperrors.TransientIO("create message", err)
	}

	e.log.WithFields(logrus.Fields{"message_id": m.ID, "day": day}).Info("message created")
	return m, nil
}

func (e *messageEngine) GetForUser(ctx context.Context, devotionalID string, day int, userID string) (*Message, error) {
	docs, err := e.st.Query(messagesCollection).
		Where("devotionalId", devotionalID).
		Where("dayNumber", day).
		Where("userId", userID).
		Limit(1).
		Documents(ctx)
	if err != nil {
		return nil, apperrors.TransientIO("get user message", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return MessageFromDoc(&docs[0]), nil
}

func (e *messageEngine) GetForDay(ctx context.Context, devotionalID string, day int) ([]Message, error) {
	docs, err := e.st.Query(messagesCollection).
		Where("devotionalId", devotionalID).
		Where("dayNumber", day).
		Documents(ctx)
	if err != nil {
		return nil, apperrors.TransientIO("list day messages", err)
	}
	return SortMessages(docs), nil
}

func (e *messageEngine) Delete(ctx context.Context, messageID string) error {
	if err := e.st.Delete(ctx, messagesCollection, messageID); err != nil {
		return apperrors.TransientIO("delete message", err)
	}
	return nil
}

// SortMessages maps documents to messages ordered by createdAt ascending.
func SortMessages(docs []store.Document) []Message {
	out := make([]Message, 0, len(docs))
	for i := range docs {
		out = append(out, *MessageFromDoc(&docs[i]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// StatusForDay derives the day label: completed when the user has a message
// for the day, else missed/current/pending relative to the current day.
func StatusForDay(day int, d *Devotional, messages []Message, userID string, today time.Time) DayStatus {
	for _, m := range messages {
		if m.UserID == userID && m.DayNumber == day {
			return DayCompleted
		}
	}
	current := CurrentDay(d, today)
	switch {
	case day < current:
		return DayMissed
	case day == current:
		return DayCurrent
	default:
		return DayPending
	}
}

// MissedDaysCount counts past days without a message from the user.
func MissedDaysCount(d *Devotional, messages []Message, userID string, today time.Time) int {
	count := 0
	for day := 1; day <= Days; day++ {
		if StatusForDay(day, d, messages, userID, today) == DayMissed {
			count++
		}
	}
	return count
}
