// store/pgstore/pgstore.go
package pgstore

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/devoapp/backend/internal/store"
)

// ErrNotFound is returned by Update when the target document does not exist.
var ErrNotFound = errors.New("pgstore: document not found")

// DefaultPollInterval is how often live subscriptions re-run their query.
const DefaultPollInterval = 500 * time.Millisecond

// documentRow is the single table every collection shares: documents are kept
// as JSONB payloads keyed by (collection, id).
type documentRow struct {
	Collection string `gorm:"primaryKey;size:64"`
	ID         string `gorm:"primaryKey;size:128;column:id"`
	Data       []byte `gorm:"type:jsonb;not null"`
	UpdatedAt  time.Time
}

func (documentRow) TableName() string {
	return "documents"
}

// Store is a Postgres-backed document store. Subscriptions are implemented by
// polling: each listener re-runs its query on an interval and delivers the
// full result set whenever it changes.
type Store struct {
	db   *gorm.DB
	poll time.Duration
}

// Open connects with the given DSN and migrates the documents table.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("pgstore: connect: %w", err)
	}
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("pgstore: migrate: %w", err)
	}
	return &Store{db: db, poll: DefaultPollInterval}, nil
}

// NewWithDB wraps an existing gorm handle (used by tests against a local DB).
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db, poll: DefaultPollInterval}
}

// SetPollInterval overrides the subscription poll interval.
func (s *Store) SetPollInterval(d time.Duration) {
	s.poll = d
}

// --- Store interface ---

func (s *Store) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToDocument(row)
}

func (s *Store) Set(ctx context.Context, collection, id string, data map[string]interface{}, merge bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return setInTx(tx, collection, id, data, merge)
	})
}

func (s *Store) Update(ctx context.Context, collection, id string, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row documentRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND id = ?", collection, id).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return setInTx(tx, collection, id, updates, true)
	})
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	return s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&documentRow{}).Error
}

func (s *Store) Query(collection string) store.Query {
	return &query{store: s, collection: collection}
}

func (s *Store) Batch() store.Batch {
	return &batch{store: s}
}

func (s *Store) ListenDocument(collection, id string, fn store.DocumentFunc) store.ListenerRegistration {
	l := newListener(s.poll)
	go l.run(func() ([]byte, func()) {
		doc, err := s.Get(context.Background(), collection, id)
		if err != nil {
			return nil, func() { fn(nil, err) }
		}
		raw, _ := json.Marshal(doc)
		return raw, func() { fn(doc, nil) }
	})
	return l
}

// setInTx performs a locked read-modify-write so merge semantics and the
// array/field-delete sentinels apply atomically.
func setInTx(tx *gorm.DB, collection, id string, data map[string]interface{}, merge bool) error {
	fields := make(map[string]interface{})
	if merge {
		var row documentRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND id = ?", collection, id).
			First(&row).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			if uerr := json.Unmarshal(row.Data, &fields); uerr != nil {
				return uerr
			}
		}
	}
	store.ApplyUpdates(fields, normalizeValues(data))

	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	row := documentRow{Collection: collection, ID: id, Data: raw, UpdatedAt: time.Now().UTC()}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

// normalizeValues rewrites values into their JSON-stable form before merge,
// so stored and queried representations agree. Times become UTC RFC3339Nano
// strings, which also keeps their lexical and chronological order aligned.
func normalizeValues(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case map[string]interface{}:
		return normalizeValues(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = normalizeValue(e)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = normalizeValues(e)
		}
		return out
	case store.ArrayUnionOp, store.ArrayRemoveOp, store.DeleteFieldOp:
		return val
	default:
		return val
	}
}

func rowToDocument(row documentRow) (*store.Document, error) {
	fields := make(map[string]interface{})
	if err := json.Unmarshal(row.Data, &fields); err != nil {
		return nil, err
	}
	return &store.Document{ID: row.ID, Data: fields}, nil
}

// --- Query ---

type filter struct {
	field string
	value interface{}
}

type query struct {
	store      *Store
	collection string
	filters    []filter
	orderBy    string
	limit      int
}

func (q *query) Where(field string, value interface{}) store.Query {
	cp := *q
	cp.filters = append(append([]filter(nil), q.filters...), filter{field: field, value: value})
	return &cp
}

func (q *query) OrderBy(field string) store.Query {
	cp := *q
	cp.orderBy = field
	return &cp
}

func (q *query) Limit(n int) store.Query {
	cp := *q
	cp.limit = n
	return &cp
}

func (q *query) Documents(ctx context.Context) ([]store.Document, error) {
	tx := q.store.db.WithContext(ctx).Model(&documentRow{}).
		Where("collection = ?", q.collection)
	for _, f := range q.filters {
		tx = tx.Where("data->>? = ?", f.field, filterText(f.value))
	}
	if q.orderBy != "" {
		tx = tx.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "data->>? ASC", Vars: []interface{}{q.orderBy}, WithoutParentheses: true},
		})
	} else {
		tx = tx.Order("id ASC")
	}
	if q.limit > 0 {
		tx = tx.Limit(q.limit)
	}

	var rows []documentRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]store.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := rowToDocument(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, nil
}

func (q *query) Listen(fn store.SnapshotFunc) store.ListenerRegistration {
	l := newListener(q.store.poll)
	go l.run(func() ([]byte, func()) {
		docs, err := q.Documents(context.Background())
		if err != nil {
			return nil, func() { fn(nil, err) }
		}
		raw, _ := json.Marshal(docs)
		return raw, func() { fn(docs, nil) }
	})
	return l
}

// filterText renders a filter value the way the ->> operator yields it.
func filterText(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// --- Batch ---

type batchOp struct {
	kind       int // 0 set, 1 update, 2 delete
	collection string
	id         string
	data       map[string]interface{}
}

type batch struct {
	store *Store
	ops   []batchOp
}

func (b *batch) Set(collection, id string, data map[string]interface{}) {
	b.ops = append(b.ops, batchOp{kind: 0, collection: collection, id: id, data: data})
}

func (b *batch) Update(collection, id string, updates map[string]interface{}) {
	b.ops = append(b.ops, batchOp{kind: 1, collection: collection, id: id, data: updates})
}

func (b *batch) Delete(collection, id string) {
	b.ops = append(b.ops, batchOp{kind: 2, collection: collection, id: id})
}

// Commit applies every queued op inside one DB transaction. Updates against
// absent documents are skipped, matching the cascade sweeps' expectations.
func (b *batch) Commit(ctx context.Context) error {
	return b.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range b.ops {
			switch op.kind {
			case 0:
				if err := setInTx(tx, op.collection, op.id, op.data, false); err != nil {
					return err
				}
			case 1:
				var row documentRow
				err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("collection = ? AND id = ?", op.collection, op.id).
					First(&row).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				if err != nil {
					return err
				}
				if err := setInTx(tx, op.collection, op.id, op.data, true); err != nil {
					return err
				}
			case 2:
				if err := tx.Where("collection = ? AND id = ?", op.collection, op.id).
					Delete(&documentRow{}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// --- Listener (polling) ---

type listener struct {
	poll time.Duration
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func newListener(poll time.Duration) *listener {
	return &listener{poll: poll, stop: make(chan struct{}), done: make(chan struct{})}
}

// run re-evaluates until stopped, delivering whenever the result fingerprint
// changes. The first evaluation always delivers (initial snapshot).
func (l *listener) run(eval func() ([]byte, func())) {
	defer close(l.done)

	var last [sha256.Size]byte
	first := true

	deliver := func() {
		raw, emit := eval()
		sum := sha256.Sum256(raw)
		if first || sum != last {
			last = sum
			first = false
			emit()
		}
	}

	deliver()
	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			deliver()
		}
	}
}

func (l *listener) Stop() {
	l.once.Do(func() { close(l.stop) })
	<-l.done
}
