// store/store.go
package store

import "context"

// Document is a single remote document: an id plus a loosely typed payload.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// SnapshotFunc receives the full current result set of a query subscription.
// It is never handed a partial delta; each call replaces the previous set.
type SnapshotFunc func(docs []Document, err error)

// DocumentFunc receives the current state of a single watched document.
// A nil document means it was deleted remotely.
type DocumentFunc func(doc *Document, err error)

// ListenerRegistration cancels a live subscription. Stop is synchronous: no
// callback is invoked after it returns.
type ListenerRegistration interface {
	Stop()
}

// Query builds an equality/order/limit query against one collection.
type Query interface {
	Where(field string, value interface{}) Query
	OrderBy(field string) Query
	Limit(n int) Query
	Documents(ctx context.Context) ([]Document, error)
	Listen(fn SnapshotFunc) ListenerRegistration
}

// Batch accumulates writes that commit atomically.
type Batch interface {
	Set(collection, id string, data map[string]interface{})
	Update(collection, id string, updates map[string]interface{})
	Delete(collection, id string)
	Commit(ctx context.Context) error
}

// Store is the document store every registry talks to. Backends must provide
// get-by-id, equality queries with optional ordering/limit, atomic batches
// (including array-union/array-remove and field deletion via the sentinel
// values below), and full-result-set subscriptions.
type Store interface {
	// Get returns the document, or (nil, nil) when it does not exist.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Set writes the document. With merge, absent fields are preserved.
	Set(ctx context.Context, collection, id string, data map[string]interface{}, merge bool) error

	// Update applies field updates to an existing document.
	Update(ctx context.Context, collection, id string, updates map[string]interface{}) error

	// Delete removes the document. Deleting an absent document is a no-op.
	Delete(ctx context.Context, collection, id string) error

	Query(collection string) Query
	Batch() Batch

	// ListenDocument watches a single document, delivering its current state
	// immediately and on every change.
	ListenDocument(collection, id string, fn DocumentFunc) ListenerRegistration
}

// Field-operation sentinels, usable as values in Set/Update/Batch payloads.
// Backends type-switch on these before writing plain values.

type ArrayUnionOp struct{ Values []interface{} }
type ArrayRemoveOp struct{ Values []interface{} }
type DeleteFieldOp struct{}

// ArrayUnion atomically adds values to an array field, skipping duplicates.
func ArrayUnion(values ...interface{}) interface{} {
	return ArrayUnionOp{Values: values}
}

// ArrayRemove atomically removes values from an array field.
func ArrayRemove(values ...interface{}) interface{} {
	return ArrayRemoveOp{Values: values}
}

// DeleteField removes the field from the document.
func DeleteField() interface{} {
	return DeleteFieldOp{}
}
