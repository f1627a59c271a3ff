// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tastebook/tastebook/docstore"
	"github.com/tastebook/tastebook/profiles"
	"github.com/tastebook/tastebook/tastebookdb"
)

// ToggleLike inverts the caller's like on a recipe. Membership is decided
// from the caller-supplied likedBy snapshot; the set mutation and counter
// increment are applied as one atomic update so likesCount always equals
// len(likedBy) for concurrent readers. The committed recipe is re-fetched
// and the cached copy replaced.
func (e *Engine) ToggleLike(ctx context.Context, id string, likedBy []string) (*tastebookdb.Recipe, error) {
	ident, ok := e.sessions.Identity(ctx)
	if !ok {
		return nil, ErrAuthRequired
	}

	var updates []docstore.Update
	if slices.Contains(likedBy, ident.ID) {
		updates = []docstore.Update{
			{Field: "likedBy", Value: docstore.ArrayRemove(ident.ID)},
			{Field: "likesCount", Value: docstore.Increment(-1)},
		}
	} else {
		updates = []docstore.Update{
			{Field: "likedBy", Value: docstore.ArrayUnion(ident.ID)},
			{Field: "likesCount", Value: docstore.Increment(1)},
		}
	}
	if err := e.store.Update(ctx, Collection, id, updates); err != nil {
		return nil, &MutationError{Op: "toggling like", Err: err}
	}
	return e.refresh(ctx, id)
}

// ToggleSave inverts the caller's save on a recipe. The profile's saved
// set and the recipe's save counter live in different documents, so both
// mutations are committed in a single atomic batch; partial application
// would silently break the cross-entity invariant. After the commit the
// recipe cache and the profile cache are both refreshed.
func (e *Engine) ToggleSave(ctx context.Context, id string, saved bool) (*tastebookdb.Recipe, error) {
	ident, ok := e.sessions.Identity(ctx)
	if !ok {
		return nil, ErrAuthRequired
	}

	batch := e.store.Batch()
	if saved {
		batch.Update(profiles.Collection, ident.ID, []docstore.Update{
			{Field: "savedRecipeIds", Value: docstore.ArrayRemove(id)},
		})
		batch.Update(Collection, id, []docstore.Update{
			{Field: "savesCount", Value: docstore.Increment(-1)},
		})
	} else {
		batch.Update(profiles.Collection, ident.ID, []docstore.Update{
			{Field: "savedRecipeIds", Value: docstore.ArrayUnion(id)},
		})
		batch.Update(Collection, id, []docstore.Update{
			{Field: "savesCount", Value: docstore.Increment(1)},
		})
	}
	if err := batch.Commit(ctx); err != nil {
		return nil, &MutationError{Op: "toggling save", Err: err}
	}

	var recipe *tastebookdb.Recipe
	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		r, err := e.refresh(gctx, id)
		recipe = r
		return err
	})
	grp.Go(func() error {
		_, err := e.profiles.Refresh(gctx, ident.ID)
		return err
	})
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("catalog: refreshing after save toggle: %w", err)
	}
	return recipe, nil
}

// AddComment appends a comment to a recipe's comment sequence. The append
// is an array-union merge so concurrent comments from other users are
// never clobbered. The committed recipe is re-fetched so the new comment
// is visible in the cache.
func (e *Engine) AddComment(ctx context.Context, id, text string) (*tastebookdb.Recipe, error) {
	ident, ok := e.sessions.Identity(ctx)
	if !ok {
		return nil, ErrAuthRequired
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is empty", ErrInvalidInput)
	}

	comment := tastebookdb.Comment{
		ID:         e.store.AllocateID(),
		AuthorID:   ident.ID,
		AuthorName: ident.DisplayNameOr(e.sessions.Profile(ctx)),
		Text:       text,
		CreatedAt:  time.Now(),
	}
	updates := []docstore.Update{
		{Field: "comments", Value: docstore.ArrayUnion(comment)},
	}
	if err := e.store.Update(ctx, Collection, id, updates); err != nil {
		return nil, &MutationError{Op: "adding comment", Err: err}
	}
	return e.refresh(ctx, id)
}
