// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore is the production Store backed by Cloud Firestore.
type Firestore struct {
	client *firestore.Client
}

var _ Store = (*Firestore)(nil)

// NewFirestore wraps a Firestore client as a Store.
func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (f *Firestore) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	doc, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("docstore: getting %s/%s: %w", collection, id, err)
	}
	if !doc.Exists() {
		return nil, ErrNotFound
	}
	return fsSnapshot{doc: doc}, nil
}

func (f *Firestore) Query(ctx context.Context, collection string, filters []Filter, orders []Order, after Cursor, limit int) (*Page, error) {
	q := f.client.Collection(collection).Query
	for _, flt := range filters {
		q = q.Where(flt.Field, flt.Op, flt.Value)
	}
	for _, ord := range orders {
		dir := firestore.Asc
		if ord.Desc {
			dir = firestore.Desc
		}
		q = q.OrderBy(ord.Field, dir)
	}
	// Documents with equal order values must still have a total order, or
	// a cursor between them drops the rest of the tie.
	q = q.OrderBy(firestore.DocumentID, firestore.Asc)
	if after != nil {
		vals, ok := after.([]any)
		if !ok {
			return nil, fmt.Errorf("docstore: querying %s: unrecognized cursor %T", collection, after)
		}
		q = q.StartAfter(vals...)
	}
	q = q.Limit(limit)

	iter := q.Documents(ctx)
	defer iter.Stop()
	var docs []*firestore.DocumentSnapshot
	for {
		doc, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			if indexRequired(err) {
				return nil, fmt.Errorf("docstore: querying %s: %w: %s", collection, ErrIndexRequired, err)
			}
			return nil, fmt.Errorf("docstore: querying %s: %w", collection, err)
		}
		docs = append(docs, doc)
	}

	page := &Page{Docs: make([]Snapshot, len(docs))}
	for i, doc := range docs {
		page.Docs[i] = fsSnapshot{doc: doc}
	}
	if len(docs) == limit {
		// Cursor is the ordering field values of the last document plus
		// its ID, fed back to StartAfter on the next page.
		last := docs[len(docs)-1]
		data := last.Data()
		vals := make([]any, 0, len(orders)+1)
		for _, ord := range orders {
			vals = append(vals, data[ord.Field])
		}
		vals = append(vals, last.Ref.ID)
		page.Next = vals
	}
	return page, nil
}

func (f *Firestore) Create(ctx context.Context, collection, id string, data any) error {
	if _, err := f.client.Collection(collection).Doc(id).Create(ctx, data); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrExists
		}
		return fmt.Errorf("docstore: creating %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *Firestore) Update(ctx context.Context, collection, id string, updates []Update) error {
	if _, err := f.client.Collection(collection).Doc(id).Update(ctx, fsUpdates(updates)); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("docstore: updating %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, collection, id string) error {
	if _, err := f.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("docstore: deleting %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *Firestore) AllocateID() string {
	return f.client.Collection("recipes").NewDoc().ID
}

func (f *Firestore) Batch() Batch {
	// WriteBatch commits atomically, unlike BulkWriter.
	return &fsBatch{client: f.client, batch: f.client.Batch()}
}

type fsBatch struct {
	client *firestore.Client
	batch  *firestore.WriteBatch
}

func (b *fsBatch) Update(collection, id string, updates []Update) {
	b.batch.Update(b.client.Collection(collection).Doc(id), fsUpdates(updates))
}

func (b *fsBatch) Set(collection, id string, data any) {
	b.batch.Set(b.client.Collection(collection).Doc(id), data)
}

func (b *fsBatch) Delete(collection, id string) {
	b.batch.Delete(b.client.Collection(collection).Doc(id))
}

func (b *fsBatch) Commit(ctx context.Context) error {
	if _, err := b.batch.Commit(ctx); err != nil {
		return fmt.Errorf("docstore: committing batch: %w", err)
	}
	return nil
}

func fsUpdates(updates []Update) []firestore.Update {
	res := make([]firestore.Update, len(updates))
	for i, u := range updates {
		val := u.Value
		switch v := val.(type) {
		case unionValue:
			val = firestore.ArrayUnion(v.values...)
		case removeValue:
			val = firestore.ArrayRemove(v.values...)
		case incrementValue:
			val = firestore.Increment(v.n)
		}
		res[i] = firestore.Update{Path: u.Field, Value: val}
	}
	return res
}

type fsSnapshot struct {
	doc *firestore.DocumentSnapshot
}

func (s fsSnapshot) ID() string { return s.doc.Ref.ID }

func (s fsSnapshot) DataTo(v any) error {
	if err := s.doc.DataTo(v); err != nil {
		return fmt.Errorf("docstore: unmarshalling document %s: %w", s.doc.Ref.ID, err)
	}
	return nil
}

// indexRequired reports whether err is Firestore telling us a composite
// index must be created before the query can run.
func indexRequired(err error) bool {
	s, ok := status.FromError(err)
	if !ok {
		return false
	}
	return s.Code() == codes.FailedPrecondition && strings.Contains(s.Message(), "index")
}
