// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package catalog

import (
	"context"
	"fmt"

	"github.com/tastebook/tastebook/docstore"
	"github.com/tastebook/tastebook/tastebookdb"
)

// Query is a catalog search: an optional title prefix term and optional
// equality filters. A zero Query is "browse most recent", capped at the
// search limit.
type Query struct {
	Term       string
	Cuisine    string
	Difficulty tastebookdb.Difficulty
}

// Search replaces the entire cache with the results of a single store
// query. The title term is a prefix range scan, not substring or fuzzy
// matching. Search results are not paginated further: the cursor is left
// exhausted. A compound query the store cannot serve without a precomputed
// index fails with ErrIndexRequired.
func (e *Engine) Search(ctx context.Context, q Query) error {
	var filters []docstore.Filter
	var orders []docstore.Order
	if q.Term != "" {
		// Prefix match: title in [term, term+"\uf8ff"].
		filters = append(filters,
			docstore.Filter{Field: "title", Op: ">=", Value: q.Term},
			docstore.Filter{Field: "title", Op: "<=", Value: q.Term + "\uf8ff"},
		)
		// The range field must come first in the ordering.
		orders = append(orders, docstore.Order{Field: "title"})
	}
	if q.Cuisine != "" {
		filters = append(filters, docstore.Filter{Field: "cuisineType", Op: "==", Value: q.Cuisine})
	}
	if q.Difficulty != "" {
		filters = append(filters, docstore.Filter{Field: "difficultyLevel", Op: "==", Value: q.Difficulty})
	}
	orders = append(orders, docstore.Order{Field: "createdAt", Desc: true})

	if err := e.beginLoad(); err != nil {
		return err
	}

	page, err := e.store.Query(ctx, Collection, filters, orders, nil, e.cfg.SearchLimit)
	var found []tastebookdb.Recipe
	if err == nil {
		found, err = decodePage(page)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false
	if err != nil {
		return fmt.Errorf("catalog: searching recipes: %w", err)
	}
	e.recipes = found
	e.cursor = nil
	e.exhausted = true
	return nil
}
