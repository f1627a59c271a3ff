// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

// Package catalog is the recipe catalog synchronization engine. It owns a
// locally materialized, paginated window over the remote recipe collection
// and the mutation protocols that keep local state following remote state:
// every mutation commits atomically against the store, then re-fetches the
// affected document and replaces the cached copy.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/tastebook/tastebook/docstore"
	"github.com/tastebook/tastebook/profiles"
	"github.com/tastebook/tastebook/session"
	"github.com/tastebook/tastebook/tastebookdb"
)

// Collection is the document store collection holding recipes.
const Collection = "recipes"

// PhotoStore uploads recipe photos before recipe documents are created.
type PhotoStore interface {
	SaveDataURL(ctx context.Context, pathNoExt, dataURL string) (string, error)
}

// Config sizes the engine's pages. Zero fields take the defaults 9, 6 and
// 20 respectively.
type Config struct {
	// FirstPageSize is the page size of LoadInitial.
	FirstPageSize int
	// MorePageSize is the page size of LoadMore.
	MorePageSize int
	// SearchLimit caps Search results.
	SearchLimit int
}

// Engine coordinates the remote document store, the profile directory and
// the local catalog cache. The cache is mutated only by the engine's own
// operations.
type Engine struct {
	store    docstore.Store
	sessions session.Source
	photos   PhotoStore
	profiles *profiles.Cache
	cfg      Config

	mu        sync.Mutex
	recipes   []tastebookdb.Recipe
	cursor    docstore.Cursor
	exhausted bool
	loading   bool
}

// New returns an Engine over the given collaborators. photos may be nil if
// recipes are never created with photos.
func New(store docstore.Store, sessions session.Source, photos PhotoStore, profileCache *profiles.Cache, cfg Config) *Engine {
	if cfg.FirstPageSize == 0 {
		cfg.FirstPageSize = 9
	}
	if cfg.MorePageSize == 0 {
		cfg.MorePageSize = 6
	}
	if cfg.SearchLimit == 0 {
		cfg.SearchLimit = 20
	}
	return &Engine{
		store:    store,
		sessions: sessions,
		photos:   photos,
		profiles: profileCache,
		cfg:      cfg,
	}
}

// LoadInitial replaces the cache with the first page of the catalog,
// newest first. Calling it again re-fetches and replaces, never appends.
func (e *Engine) LoadInitial(ctx context.Context) error {
	if err := e.beginLoad(); err != nil {
		return err
	}

	page, err := e.store.Query(ctx, Collection, nil, browseOrder(), nil, e.cfg.FirstPageSize)
	var loaded []tastebookdb.Recipe
	if err == nil {
		loaded, err = decodePage(page)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false
	if err != nil {
		return fmt.Errorf("catalog: loading catalog: %w", err)
	}
	e.recipes = loaded
	e.cursor = page.Next
	e.exhausted = page.Next == nil
	return nil
}

// LoadMore appends the next page to the cache. It returns nil immediately
// when the catalog is exhausted or not yet loaded, and ErrLoadInProgress
// when another load is in flight, so overlapping calls never issue two
// page requests.
func (e *Engine) LoadMore(ctx context.Context) error {
	e.mu.Lock()
	if e.loading {
		e.mu.Unlock()
		return ErrLoadInProgress
	}
	if e.cursor == nil {
		e.mu.Unlock()
		return nil
	}
	cursor := e.cursor
	e.loading = true
	e.mu.Unlock()

	page, err := e.store.Query(ctx, Collection, nil, browseOrder(), cursor, e.cfg.MorePageSize)
	var loaded []tastebookdb.Recipe
	if err == nil {
		loaded, err = decodePage(page)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false
	if err != nil {
		return fmt.Errorf("catalog: loading more of catalog: %w", err)
	}
	e.recipes = append(e.recipes, loaded...)
	e.cursor = page.Next
	e.exhausted = page.Next == nil
	return nil
}

// Recipes returns a copy of the currently cached catalog window, ordered
// newest first.
func (e *Engine) Recipes() []tastebookdb.Recipe {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.recipes)
}

// Loading reports whether a page load or search is in flight.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Exhausted reports whether the catalog has no further pages.
func (e *Engine) Exhausted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exhausted
}

// FindCached returns the cached snapshot of a recipe without a network
// call. The copy may be stale; callers that need freshness re-fetch with
// GetByID.
func (e *Engine) FindCached(id string) (tastebookdb.Recipe, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range e.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return tastebookdb.Recipe{}, false
}

// GetByID returns the cached copy if present, otherwise fetches the recipe
// directly. A direct fetch does not insert into the paginated cache, which
// would corrupt pagination order. Returns ErrNotFound for a recipe that
// does not exist or was deleted.
func (e *Engine) GetByID(ctx context.Context, id string) (*tastebookdb.Recipe, error) {
	if cached, ok := e.FindCached(id); ok {
		return &cached, nil
	}
	return e.fetch(ctx, id)
}

// ByAuthor returns recipes created by the given user, newest first. The
// result is independent of the paginated cache.
func (e *Engine) ByAuthor(ctx context.Context, authorID string) ([]tastebookdb.Recipe, error) {
	page, err := e.store.Query(ctx, Collection,
		[]docstore.Filter{{Field: "authorId", Op: "==", Value: authorID}},
		browseOrder(), nil, e.cfg.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("catalog: listing recipes by author: %w", err)
	}
	return decodePage(page)
}

// fetch gets a recipe from the store without touching the cache.
func (e *Engine) fetch(ctx context.Context, id string) (*tastebookdb.Recipe, error) {
	doc, err := e.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("catalog: getting recipe %s: %w", id, err)
	}
	var recipe tastebookdb.Recipe
	if err := doc.DataTo(&recipe); err != nil {
		return nil, fmt.Errorf("catalog: unmarshalling recipe %s: %w", id, err)
	}
	return &recipe, nil
}

// refresh re-fetches a recipe after a committed mutation and replaces the
// cached copy if the recipe is currently paginated into view.
func (e *Engine) refresh(ctx context.Context, id string) (*tastebookdb.Recipe, error) {
	recipe, err := e.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, r := range e.recipes {
		if r.ID == id {
			e.recipes[i] = *recipe
			break
		}
	}
	return recipe, nil
}

func (e *Engine) beginLoad() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loading {
		return ErrLoadInProgress
	}
	e.loading = true
	return nil
}

func browseOrder() []docstore.Order {
	return []docstore.Order{{Field: "createdAt", Desc: true}}
}

func decodePage(page *docstore.Page) ([]tastebookdb.Recipe, error) {
	recipes := make([]tastebookdb.Recipe, len(page.Docs))
	for i, doc := range page.Docs {
		if err := doc.DataTo(&recipes[i]); err != nil {
			return nil, fmt.Errorf("unmarshalling recipe %s: %w", doc.ID(), err)
		}
	}
	return recipes, nil
}
