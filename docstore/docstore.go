// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

// Package docstore abstracts the remote document database behind the
// capability surface the catalog engine needs: per-document CRUD, compound
// equality/range queries with server-side ordering and cursor pagination,
// and atomic multi-document batches.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrExists is returned when creating a document that already exists.
var ErrExists = errors.New("document already exists")

// ErrIndexRequired is returned when a query needs a precomputed composite
// index the store does not have. It is resolvable by the operator without a
// code change, so callers should surface it rather than fold it into a
// generic failure.
var ErrIndexRequired = errors.New("query requires a composite index")

// Cursor is an opaque pagination token referencing a position in an ordered
// result set. A nil cursor from a Page means the result set is exhausted.
type Cursor any

// Filter restricts a query to documents whose field satisfies Op against
// Value. Op is one of "==", "<", "<=", ">", ">=".
type Filter struct {
	Field string
	Op    string
	Value any
}

// Order sorts query results by a field.
type Order struct {
	Field string
	Desc  bool
}

// Snapshot is a read-only view of a stored document.
type Snapshot interface {
	// ID returns the document's ID within its collection.
	ID() string

	// DataTo unmarshals the document into v.
	DataTo(v any) error
}

// Page is one page of query results. Next is nil when the page was short,
// meaning there are no further results.
type Page struct {
	Docs []Snapshot
	Next Cursor
}

// Update mutates a single field of a document. Value may be a plain value
// or one of the transforms returned by ArrayUnion, ArrayRemove and
// Increment, which the store applies with associative, commutative merge
// semantics rather than last-writer-wins.
type Update struct {
	Field string
	Value any
}

type unionValue struct{ values []any }

type removeValue struct{ values []any }

type incrementValue struct{ n int }

// ArrayUnion returns a transform that appends each value not already
// present in the array field. Concurrent unions from other writers are
// merged, not clobbered.
func ArrayUnion(values ...any) any { return unionValue{values: values} }

// ArrayRemove returns a transform that removes each value from the array
// field.
func ArrayRemove(values ...any) any { return removeValue{values: values} }

// Increment returns a transform that adds n to the numeric field.
func Increment(n int) any { return incrementValue{n: n} }

// Batch accumulates writes across documents and applies them atomically on
// Commit: either every write commits or none do.
type Batch interface {
	Update(collection, id string, updates []Update)
	Set(collection, id string, data any)
	Delete(collection, id string)
	Commit(ctx context.Context) error
}

// Store is the document database capability consumed by the catalog engine
// and the profile directory. The only permitted mechanism for a mutation
// touching more than one document is Batch.
type Store interface {
	// Get fetches a single document. Returns ErrNotFound if absent.
	Get(ctx context.Context, collection, id string) (Snapshot, error)

	// Query runs a compound query with server-side ordering, starting
	// strictly after the given cursor if non-nil.
	Query(ctx context.Context, collection string, filters []Filter, orders []Order, after Cursor, limit int) (*Page, error)

	// Create stores a new document. Returns ErrExists if the ID is taken.
	Create(ctx context.Context, collection, id string, data any) error

	// Update applies a partial patch to one document. All updates in the
	// call are applied as a single atomic write.
	Update(ctx context.Context, collection, id string, updates []Update) error

	// Delete removes a document. Deleting an absent document is not an
	// error.
	Delete(ctx context.Context, collection, id string) error

	// AllocateID returns a fresh unique document ID.
	AllocateID() string

	// Batch starts an atomic multi-document batch.
	Batch() Batch
}
