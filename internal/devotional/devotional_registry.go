// devotional/devotional_registry.go
package devotional

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devoapp/backend/internal/store"
	"github.com/devoapp/backend/pkg/apperrors"
)

// FreeTopicInstruction is the placeholder prompt of a default devotional.
const FreeTopicInstruction = "Free topic: reflect on a passage of your choice today."

// Registry defines devotional persistence and lifecycle operations.
type Registry interface {
	// GetActive returns the team's most recently created devotional, even
	// when today falls outside its date range, or nil when the team has
	// none. Callers decide how to label an out-of-range devotional.
	GetActive(ctx context.Context, teamID string) (*Devotional, error)
	Create(ctx context.Context, teamID, title string, startDate, endDate time.Time, instructions []DailyInstruction) (*Devotional, error)
	CreateDefault(ctx context.Context, teamID, teamName string) (*Devotional, error)
	GetByID(ctx context.Context, id string) (*Devotional, error)
	// DeleteForTeam removes every devotional of the team together with all
	// their messages, in a single atomic batch.
	DeleteForTeam(ctx context.Context, teamID string) error
	// PurgeExpired deletes every devotional whose end date's calendar day is
	// before today, with all its messages, and returns the count purged.
	PurgeExpired(ctx context.Context) (int, error)
}

type registry struct {
	st  store.Store
	log *logrus.Entry
	now func() time.Time
}

// NewRegistry creates a devotional registry backed by the given store.
func NewRegistry(st store.Store) Registry {
	return &registry{
		st:  st,
		log: logrus.WithField("component", "devotional_registry"),
		now: time.Now,
	}
}

func (r *registry) GetActive(ctx context.Context, teamID string) (*Devotional, error) {
	docs, err := r.st.Query(devotionalsCollection).
		Where("teamId", teamID).
		Documents(ctx)
	if err != nil {
		return nil, apperrors.TransientIO("list devotionals", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	sort.Slice(docs, func(i, j int) bool {
		return store.Time(docs[i].Data, "createdAt").After(store.Time(docs[j].Data, "createdAt"))
	})
	d := FromDoc(&docs[0])

	if !d.IsActive(r.now()) {
		r.log.WithFields(logrus.Fields{"team_id": teamID, "devotional_id": d.ID}).
			Debug("most recent devotional is outside its date range; returning it anyway")
	}
	return d, nil
}

func (r *registry) Create(ctx context.Context, teamID, title string, startDate, endDate time.Time, instructions []DailyInstruction) (*Devotional, error) {
	if len(instructions) != Days {
		return nil, apperrors.Validation("a devotional needs exactly 7 daily instructions")
	}
	if !endDate.After(startDate) {
		return nil, apperrors.Validation("end date must be after start date")
	}

	now := r.now()
	d := &Devotional{
		ID:                uuid.NewString(),
		TeamID:            teamID,
		Title:             title,
		StartDate:         startDate,
		EndDate:           endDate,
		DailyInstructions: instructions,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := r.st.Set(ctx, devotionalsCollection, d.ID, d.toDoc(), false); err != nil {
		return nil, apperrors.TransientIO("create devotional", err)
	}

	r.log.WithFields(logrus.Fields{"devotional_id": d.ID, "team_id": teamID}).
		Info("devotional created")
	return d, nil
}

// CreateDefault builds a 7-day free-topic devotional starting today, titled
// after the team.
func (r *registry) CreateDefault(ctx context.Context, teamID, teamName string) (*Devotional, error) {
	start := startOfDay(r.now())
	end := start.AddDate(0, 0, Days)

	instructions := make([]DailyInstruction, 0, Days)
	for day := 1; day <= Days; day++ {
		instructions = append(instructions, DailyInstruction{
			Day:         day,
			Date:        start.AddDate(0, 0, day-1),
			Instruction: FreeTopicInstruction,
		})
	}
	return r.Create(ctx, teamID, teamName, start, end, instructions)
}

func (r *registry) GetByID(ctx context.Context, id string) (*Devotional, error) {
	doc, err := r.st.Get(ctx, devotionalsCollection, id)
	if err != nil {
		return nil, apperrors.TransientIO("get devotional", err)
	}
	return FromDoc(doc), nil
}

func (r *registry) DeleteForTeam(ctx context.Context, teamID string) error {
	docs, err := r.st.Query(devotionalsCollection).
		Where("teamId", teamID).
		Documents(ctx)
	if err != nil {
		return apperrors.TransientIO("list devotionals", err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	if err := r.deleteWithMessages(ctx, ids); err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{"team_id": teamID, "devotionals": len(ids)}).
		Info("team devotionals deleted")
	return nil
}

func (r *registry) PurgeExpired(ctx context.Context) (int, error) {
	docs, err := r.st.Query(devotionalsCollection).Documents(ctx)
	if err != nil {
		return 0, apperrors.TransientIO("list devotionals", err)
	}

	today := startOfDay(r.now())
	var expired []string
	for _, doc := range docs {
		endDay := startOfDay(store.Time(doc.Data, "endDate"))
		if endDay.Before(today) {
			expired = append(expired, doc.ID)
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}

	if err := r.deleteWithMessages(ctx, expired); err != nil {
		return 0, err
	}

	r.log.WithField("purged", len(expired)).Info("expired devotionals purged")
	return len(expired), nil
}

// deleteWithMessages removes the given devotionals and every message under
// them in one batch commit.
func (r *registry) deleteWithMessages(ctx context.Context, devotionalIDs []string) error {
	if len(devotionalIDs) == 0 {
		return nil
	}
	batch := r.st.Batch()
	for _, id := range devotionalIDs {
		msgs, err := r.st.Query(messagesCollection).
			Where("devotionalId", id).
			Documents(ctx)
		if err != nil {
			return apperrors.TransientIO("list devotional messages", err)
		}
		for _, m := range msgs {
			batch.Delete(messagesCollection, m.ID)
		}
		batch.Delete(devotionalsCollection, id)
	}
	if err := batch.Commit(ctx); err != nil {
		return apperrors.TransientIO("delete devotionals", err)
	}
	return nil
}
