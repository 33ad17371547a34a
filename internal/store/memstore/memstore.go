// store/memstore/memstore.go
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/devoapp/backend/internal/store"
)

// ErrNotFound is returned by Update when the target document does not exist.
var ErrNotFound = errors.New("memstore: document not found")

// Store is an in-memory document store. It backs the test suite and embedded
// deployments; the data and subscription semantics match the remote contract:
// atomic batches, array-union/remove, full-result-set snapshot delivery.
type Store struct {
	mu        sync.RWMutex
	data      map[string]map[string]map[string]interface{} // collection -> id -> fields
	listeners map[*listener]struct{}
}

func New() *Store {
	return &Store{
		data:      make(map[string]map[string]map[string]interface{}),
		listeners: make(map[*listener]struct{}),
	}
}

type listener struct {
	// delivery serializes callbacks and makes Stop synchronous: once Stop
	// holds it and flips stopped, no further callback can run.
	delivery sync.Mutex
	stopped  bool

	store      *Store
	collection string
	// query listeners carry the query shape; doc listeners carry docID.
	query *query
	docID string

	snapFn store.SnapshotFunc
	docFn  store.DocumentFunc
}

func (l *listener) Stop() {
	l.delivery.Lock()
	l.stopped = true
	l.delivery.Unlock()

	l.store.mu.Lock()
	delete(l.store.listeners, l)
	l.store.mu.Unlock()
}

// --- Store interface ---

func (s *Store) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.data[collection][id]
	if !ok {
		return nil, nil
	}
	return &store.Document{ID: id, Data: deepCopy(fields)}, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, data map[string]interface{}, merge bool) error {
	s.mu.Lock()
	s.applySet(collection, id, data, merge)
	affected := s.snapshotListeners(collection)
	s.mu.Unlock()

	s.notify(affected)
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, updates map[string]interface{}) error {
	s.mu.Lock()
	if _, ok := s.data[collection][id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.applySet(collection, id, updates, true)
	affected := s.snapshotListeners(collection)
	s.mu.Unlock()

	s.notify(affected)
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	delete(s.data[collection], id)
	affected := s.snapshotListeners(collection)
	s.mu.Unlock()

	s.notify(affected)
	return nil
}

func (s *Store) Query(collection string) store.Query {
	return &query{store: s, collection: collection}
}

func (s *Store) Batch() store.Batch {
	return &batch{store: s}
}

func (s *Store) ListenDocument(collection, id string, fn store.DocumentFunc) store.ListenerRegistration {
	l := &listener{store: s, collection: collection, docID: id, docFn: fn}

	s.mu.Lock()
	s.listeners[l] = struct{}{}
	s.mu.Unlock()

	// Initial snapshot.
	s.notify([]*listener{l})
	return l
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
	q.store.mu.RLock()
	defer q.store.mu.RUnlock()
	return q.store.evaluate(q), nil
}

func (q *query) Listen(fn store.SnapshotFunc) store.ListenerRegistration {
	l := &listener{store: q.store, collection: q.collection, query: q, snapFn: fn}

	q.store.mu.Lock()
	q.store.listeners[l] = struct{}{}
	q.store.mu.Unlock()

	q.store.notify([]*listener{l})
	return l
}

// evaluate runs a query against current data. Caller holds at least a read lock.
func (s *Store) evaluate(q *query) []store.Document {
	var out []store.Document
	for id, fields := range s.data[q.collection] {
		if matches(fields, q.filters) {
			out = append(out, store.Document{ID: id, Data: deepCopy(fields)})
		}
	}
	// Results are id-sorted by default so runs are deterministic; an explicit
	// OrderBy sorts by that (timestamp) field ascending.
	sort.Slice(out, func(i, j int) bool {
		if q.orderBy != "" {
			ti := store.Time(out[i].Data, q.orderBy)
			tj := store.Time(out[j].Data, q.orderBy)
			if !ti.Equal(tj) {
				return ti.Before(tj)
			}
		}
		return out[i].ID < out[j].ID
	})
	if q.limit > 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out
}

func matches(fields map[string]interface{}, filters []filter) bool {
	for _, f := range filters {
		if !valueEqual(fields[f.field], f.value) {
			return false
		}
	}
	return true
}

func valueEqual(a, b interface{}) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if na, ok := asInt64(a); ok {
		nb, ok := asInt64(b)
		return ok && na == nb
	}
	return a == b
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
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

func (b *batch) Commit(ctx context.Context) error {
	b.store.mu.Lock()
	touched := make(map[string]struct{})
	for _, op := range b.ops {
		switch op.kind {
		case 0:
			b.store.applySet(op.collection, op.id, op.data, false)
		case 1:
			// Batch updates on absent documents are dropped rather than
			// failing the whole commit; cascade sweeps rely on this.
			if _, ok := b.store.data[op.collection][op.id]; ok {
				b.store.applySet(op.collection, op.id, op.data, true)
			}
		case 2:
			delete(b.store.data[op.collection], op.id)
		}
		touched[op.collection] = struct{}{}
	}
	var affected []*listener
	for collection := range touched {
		affected = append(affected, b.store.snapshotListeners(collection)...)
	}
	b.store.mu.Unlock()

	b.store.notify(affected)
	return nil
}

// --- Mutation internals ---

// applySet writes fields (resolving array/delete sentinels). Caller holds the
// write lock.
func (s *Store) applySet(collection, id string, data map[string]interface{}, merge bool) {
	col := s.data[collection]
	if col == nil {
		col = make(map[string]map[string]interface{})
		s.data[collection] = col
	}
	fields := col[id]
	if fields == nil || !merge {
		fields = make(map[string]interface{})
		col[id] = fields
	}
	store.ApplyUpdates(fields, deepCopy(data))
}

// snapshotListeners captures the listeners watching a collection. Caller
// holds the lock; delivery happens after it is released.
func (s *Store) snapshotListeners(collection string) []*listener {
	var out []*listener
	for l := range s.listeners {
		if l.collection == collection {
			out = append(out, l)
		}
	}
	return out
}

// notify delivers current state to each listener outside the store lock, so
// callbacks may themselves hit the store.
func (s *Store) notify(ls []*listener) {
	for _, l := range ls {
		l.delivery.Lock()
		if l.stopped {
			l.delivery.Unlock()
			continue
		}
		if l.query != nil {
			s.mu.RLock()
			docs := s.evaluate(l.query)
			s.mu.RUnlock()
			l.snapFn(docs, nil)
		} else {
			s.mu.RLock()
			fields, ok := s.data[l.collection][l.docID]
			var doc *store.Document
			if ok {
				doc = &store.Document{ID: l.docID, Data: deepCopy(fields)}
			}
			s.mu.RUnlock()
			l.docFn(doc, nil)
		}
		l.delivery.Unlock()
	}
}

// --- Copy helpers ---

func deepCopy(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return deepCopy(val)
	case []string:
		return append([]string(nil), val...)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = copyValue(e)
		}
		return out
	case []map[string]interface{}:
		out := make([]map[string]interface{}, len(val))
		for i, e := range val {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}
