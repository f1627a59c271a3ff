// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
)

// Memory is an in-process Store used as the development backend and in
// tests. Documents are stored JSON-normalized, so the same struct tags
// drive both Memory and Firestore as long as json and firestore tags name
// the same fields.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]map[string]any)}
}

func (m *Memory) Get(_ context.Context, collection, id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return memSnapshot{id: id, data: doc}, nil
}

func (m *Memory) Query(_ context.Context, collection string, filters []Filter, orders []Order, after Cursor, limit int) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []memSnapshot
	for id, doc := range m.collections[collection] {
		ok := true
		for _, flt := range filters {
			if !matches(doc[flt.Field], flt.Op, normalize(flt.Value)) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, memSnapshot{id: id, data: doc})
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		for _, ord := range orders {
			c := compareValues(matched[i].data[ord.Field], matched[j].data[ord.Field])
			if ord.Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return matched[i].id < matched[j].id
	})

	if after != nil {
		vals, ok := after.([]any)
		if !ok {
			return nil, fmt.Errorf("docstore: querying %s: unrecognized cursor %T", collection, after)
		}
		i := 0
		for ; i < len(matched); i++ {
			if cursorBefore(vals, matched[i], orders) {
				break
			}
		}
		matched = matched[i:]
	}

	page := &Page{}
	for i := 0; i < len(matched) && i < limit; i++ {
		page.Docs = append(page.Docs, matched[i])
	}
	if len(page.Docs) == limit && limit > 0 {
		last := matched[limit-1]
		vals := make([]any, 0, len(orders)+1)
		for _, ord := range orders {
			vals = append(vals, last.data[ord.Field])
		}
		// The document ID rides along as a tiebreaker so equal order
		// values never swallow documents across a page boundary.
		vals = append(vals, last.id)
		page.Next = vals
	}
	return page, nil
}

func (m *Memory) Create(_ context.Context, collection, id string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	col := m.collections[collection]
	if col == nil {
		col = make(map[string]map[string]any)
		m.collections[collection] = col
	}
	if _, ok := col[id]; ok {
		return ErrExists
	}
	doc, ok := normalize(data).(map[string]any)
	if !ok {
		return fmt.Errorf("docstore: creating %s/%s: data is not a document", collection, id)
	}
	col[id] = doc
	return nil
}

func (m *Memory) Update(_ context.Context, collection, id string, updates []Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyUpdates(collection, id, updates)
}

func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections[collection], id)
	return nil
}

func (m *Memory) AllocateID() string {
	return ulid.Make().String()
}

func (m *Memory) Batch() Batch {
	return &memBatch{store: m}
}

func (m *Memory) applyUpdates(collection, id string, updates []Update) error {
	doc, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for _, u := range updates {
		switch v := u.Value.(type) {
		case unionValue:
			arr, _ := doc[u.Field].([]any)
			for _, raw := range v.values {
				val := normalize(raw)
				present := false
				for _, existing := range arr {
					if reflect.DeepEqual(existing, val) {
						present = true
						break
					}
				}
				if !present {
					arr = append(arr, val)
				}
			}
			doc[u.Field] = arr
		case removeValue:
			arr, _ := doc[u.Field].([]any)
			kept := arr[:0]
			for _, existing := range arr {
				remove := false
				for _, raw := range v.values {
					if reflect.DeepEqual(existing, normalize(raw)) {
						remove = true
						break
					}
				}
				if !remove {
					kept = append(kept, existing)
				}
			}
			doc[u.Field] = append([]any(nil), kept...)
		case incrementValue:
			cur, _ := doc[u.Field].(float64)
			doc[u.Field] = cur + float64(v.n)
		default:
			doc[u.Field] = normalize(u.Value)
		}
	}
	return nil
}

type memWrite struct {
	op         string
	collection string
	id         string
	data       any
	updates    []Update
}

type memBatch struct {
	store  *Memory
	writes []memWrite
}

func (b *memBatch) Update(collection, id string, updates []Update) {
	b.writes = append(b.writes, memWrite{op: "update", collection: collection, id: id, updates: updates})
}

func (b *memBatch) Set(collection, id string, data any) {
	b.writes = append(b.writes, memWrite{op: "set", collection: collection, id: id, data: data})
}

func (b *memBatch) Delete(collection, id string) {
	b.writes = append(b.writes, memWrite{op: "delete", collection: collection, id: id})
}

func (b *memBatch) Commit(_ context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	// Verify every target exists before touching anything so a failed
	// batch has no partial effect.
	for _, w := range b.writes {
		if w.op == "update" {
			if _, ok := b.store.collections[w.collection][w.id]; !ok {
				return fmt.Errorf("docstore: committing batch: %s/%s: %w", w.collection, w.id, ErrNotFound)
			}
		}
	}
	for _, w := range b.writes {
		switch w.op {
		case "update":
			if err := b.store.applyUpdates(w.collection, w.id, w.updates); err != nil {
				return fmt.Errorf("docstore: committing batch: %w", err)
			}
		case "set":
			col := b.store.collections[w.collection]
			if col == nil {
				col = make(map[string]map[string]any)
				b.store.collections[w.collection] = col
			}
			doc, ok := normalize(w.data).(map[string]any)
			if !ok {
				return fmt.Errorf("docstore: committing batch: %s/%s: data is not a document", w.collection, w.id)
			}
			col[w.id] = doc
		case "delete":
			delete(b.store.collections[w.collection], w.id)
		}
	}
	return nil
}

type memSnapshot struct {
	id   string
	data map[string]any
}

func (s memSnapshot) ID() string { return s.id }

func (s memSnapshot) DataTo(v any) error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("docstore: marshalling document %s: %w", s.id, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("docstore: unmarshalling document %s: %w", s.id, err)
	}
	return nil
}

// normalize round-trips a value through JSON so stored documents and query
// operands compare consistently regardless of the Go types they started as.
func normalize(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var res any
	if err := json.Unmarshal(raw, &res); err != nil {
		return v
	}
	return res
}

func matches(field any, op string, value any) bool {
	c := compareValues(field, value)
	switch op {
	case "==":
		return c == 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	default:
		return false
	}
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case nil:
		if b == nil {
			return 0
		}
		return -1
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// cursorBefore reports whether the cursor position sorts strictly before
// doc under the given ordering, with the document ID as final tiebreaker.
func cursorBefore(cursor []any, doc memSnapshot, orders []Order) bool {
	for i, ord := range orders {
		if i >= len(cursor) {
			break
		}
		c := compareValues(cursor[i], doc.data[ord.Field])
		if ord.Desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
	}
	if len(cursor) > len(orders) {
		return compareValues(cursor[len(orders)], doc.id) < 0
	}
	return false
}
