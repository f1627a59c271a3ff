// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Count     int       `json:"count"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

func TestMemoryCRUD(t *testing.T) {
	ctx := t.Context()
	m := NewMemory()

	doc := testDoc{ID: "a", Title: "Pad Thai", CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, m.Create(ctx, "recipes", "a", doc))
	require.ErrorIs(t, m.Create(ctx, "recipes", "a", doc), ErrExists)

	snap, err := m.Get(ctx, "recipes", "a")
	require.NoError(t, err)
	require.Equal(t, "a", snap.ID())
	var got testDoc
	require.NoError(t, snap.DataTo(&got))
	require.Equal(t, doc, got)

	_, err = m.Get(ctx, "recipes", "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Delete(ctx, "recipes", "a"))
	_, err = m.Get(ctx, "recipes", "a")
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent document is not an error.
	require.NoError(t, m.Delete(ctx, "recipes", "a"))
}

func TestMemoryTransforms(t *testing.T) {
	ctx := t.Context()
	m := NewMemory()
	require.NoError(t, m.Create(ctx, "recipes", "a", testDoc{ID: "a", Tags: []string{"u1"}}))

	// Union is idempotent per value.
	require.NoError(t, m.Update(ctx, "recipes", "a", []Update{
		{Field: "tags", Value: ArrayUnion("u2", "u1")},
		{Field: "count", Value: Increment(1)},
	}))
	require.NoError(t, m.Update(ctx, "recipes", "a", []Update{
		{Field: "tags", Value: ArrayUnion("u2")},
		{Field: "count", Value: Increment(1)},
	}))

	var got testDoc
	snap, err := m.Get(ctx, "recipes", "a")
	require.NoError(t, err)
	require.NoError(t, snap.DataTo(&got))
	require.Equal(t, []string{"u1", "u2"}, got.Tags)
	require.Equal(t, 2, got.Count)

	require.NoError(t, m.Update(ctx, "recipes", "a", []Update{
		{Field: "tags", Value: ArrayRemove("u1")},
		{Field: "count", Value: Increment(-1)},
	}))
	snap, err = m.Get(ctx, "recipes", "a")
	require.NoError(t, err)
	require.NoError(t, snap.DataTo(&got))
	require.Equal(t, []string{"u2"}, got.Tags)
	require.Equal(t, 1, got.Count)

	require.ErrorIs(t, m.Update(ctx, "recipes", "missing", []Update{{Field: "count", Value: Increment(1)}}), ErrNotFound)
}

func TestMemoryQueryPrefixRange(t *testing.T) {
	ctx := t.Context()
	m := NewMemory()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"Pad Thai", "Pad See Ew", "Pasta"} {
		id := string(rune('a' + i))
		require.NoError(t, m.Create(ctx, "recipes", id, testDoc{ID: id, Title: title, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	page, err := m.Query(ctx, "recipes",
		[]Filter{
			{Field: "title", Op: ">=", Value: "Pad"},
			{Field: "title", Op: "<=", Value: "Pad\uf8ff"},
		},
		[]Order{{Field: "title"}, {Field: "createdAt", Desc: true}},
		nil, 20)
	require.NoError(t, err)
	require.Len(t, page.Docs, 2)
	require.Nil(t, page.Next)

	var titles []string
	for _, doc := range page.Docs {
		var d testDoc
		require.NoError(t, doc.DataTo(&d))
		titles = append(titles, d.Title)
	}
	require.Equal(t, []string{"Pad See Ew", "Pad Thai"}, titles)
}

func TestMemoryQueryCursor(t *testing.T) {
	ctx := t.Context()
	m := NewMemory()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		id := string(rune('a' + i))
		require.NoError(t, m.Create(ctx, "recipes", id, testDoc{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}
	orders := []Order{{Field: "createdAt", Desc: true}}

	var seen []string
	var cursor Cursor
	pages := 0
	for {
		page, err := m.Query(ctx, "recipes", nil, orders, cursor, 2)
		require.NoError(t, err)
		for _, doc := range page.Docs {
			seen = append(seen, doc.ID())
		}
		pages++
		if page.Next == nil {
			break
		}
		cursor = page.Next
	}
	require.Equal(t, 3, pages)
	// Newest first, no duplicates, no gaps.
	require.Equal(t, []string{"e", "d", "c", "b", "a"}, seen)
}

func TestMemoryQueryCursorTiedOrderValues(t *testing.T) {
	ctx := t.Context()
	m := NewMemory()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 4 {
		id := string(rune('a' + i))
		// All four share the ordering value; only the ID distinguishes
		// them.
		require.NoError(t, m.Create(ctx, "recipes", id, testDoc{ID: id, CreatedAt: base}))
	}
	orders := []Order{{Field: "createdAt", Desc: true}}

	var seen []string
	var cursor Cursor
	for {
		page, err := m.Query(ctx, "recipes", nil, orders, cursor, 1)
		require.NoError(t, err)
		for _, doc := range page.Docs {
			seen = append(seen, doc.ID())
		}
		if page.Next == nil {
			break
		}
		cursor = page.Next
	}
	require.Equal(t, []string{"a", "b", "c", "d"}, seen)
}

func TestMemoryBatchAtomic(t *testing.T) {
	ctx := t.Context()
	m := NewMemory()
	require.NoError(t, m.Create(ctx, "recipes", "r1", testDoc{ID: "r1"}))

	// One target missing: nothing is applied.
	b := m.Batch()
	b.Update("recipes", "r1", []Update{{Field: "count", Value: Increment(1)}})
	b.Update("users", "missing", []Update{{Field: "tags", Value: ArrayUnion("r1")}})
	require.Error(t, b.Commit(ctx))

	snap, err := m.Get(ctx, "recipes", "r1")
	require.NoError(t, err)
	var got testDoc
	require.NoError(t, snap.DataTo(&got))
	require.Equal(t, 0, got.Count)

	require.NoError(t, m.Create(ctx, "users", "u1", map[string]any{"tags": []string{}}))
	b = m.Batch()
	b.Update("recipes", "r1", []Update{{Field: "count", Value: Increment(1)}})
	b.Update("users", "u1", []Update{{Field: "tags", Value: ArrayUnion("r1")}})
	require.NoError(t, b.Commit(ctx))

	snap, err = m.Get(ctx, "recipes", "r1")
	require.NoError(t, err)
	require.NoError(t, snap.DataTo(&got))
	require.Equal(t, 1, got.Count)
}
