// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tastebook/tastebook/docstore"
	"github.com/tastebook/tastebook/tastebookdb"
)

// Draft is the caller-supplied content of a new recipe. Authorship,
// counters and timestamps are stamped by the engine.
type Draft struct {
	Title        string
	Ingredients  []tastebookdb.Ingredient
	Instructions string
	CuisineType  string
	Difficulty   tastebookdb.Difficulty
	DietaryTags  []string

	// PhotoDataURL is an optional base64 image data URL. The photo is
	// uploaded before the recipe document is created; a failed upload
	// aborts the creation.
	PhotoDataURL string
}

// Patch is a partial recipe update. Nil fields are left unchanged.
type Patch struct {
	Title        *string
	Ingredients  *[]tastebookdb.Ingredient
	Instructions *string
	CuisineType  *string
	Difficulty   *tastebookdb.Difficulty
	DietaryTags  *[]string
	PhotoURLs    *[]string
}

// Create persists a new recipe authored by the current identity and
// prepends it to the cache as the newest item. The author display name is
// denormalized onto the recipe at creation time and never resynced.
func (e *Engine) Create(ctx context.Context, draft Draft) (*tastebookdb.Recipe, error) {
	ident, ok := e.sessions.Identity(ctx)
	if !ok {
		return nil, ErrAuthRequired
	}
	if strings.TrimSpace(draft.Title) == "" {
		return nil, fmt.Errorf("%w: recipe title is empty", ErrInvalidInput)
	}

	id := e.store.AllocateID()
	photoURLs := []string{}
	if draft.PhotoDataURL != "" {
		if e.photos == nil {
			return nil, fmt.Errorf("catalog: creating recipe: no photo store configured")
		}
		url, err := e.photos.SaveDataURL(ctx, fmt.Sprintf("recipes/%s/photo", id), draft.PhotoDataURL)
		if err != nil {
			return nil, fmt.Errorf("catalog: uploading recipe photo: %w", err)
		}
		photoURLs = append(photoURLs, url)
	}

	now := time.Now()
	recipe := tastebookdb.Recipe{
		ID:           id,
		Title:        draft.Title,
		Ingredients:  draft.Ingredients,
		Instructions: draft.Instructions,
		PhotoURLs:    photoURLs,
		CuisineType:  draft.CuisineType,
		Difficulty:   draft.Difficulty,
		DietaryTags:  draft.DietaryTags,
		AuthorID:     ident.ID,
		AuthorName:   ident.DisplayNameOr(e.sessions.Profile(ctx)),
		LikedBy:      []string{},
		Comments:     []tastebookdb.Comment{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := e.store.Create(ctx, Collection, id, recipe); err != nil {
		return nil, &MutationError{Op: "creating recipe", Err: err}
	}

	e.mu.Lock()
	e.recipes = append([]tastebookdb.Recipe{recipe}, e.recipes...)
	e.mu.Unlock()
	return &recipe, nil
}

// Update applies a partial patch to a recipe and stamps a new updated
// timestamp. The cached entry is merged field by field, not replaced.
func (e *Engine) Update(ctx context.Context, id string, patch Patch) error {
	if _, ok := e.sessions.Identity(ctx); !ok {
		return ErrAuthRequired
	}

	now := time.Now()
	updates := []docstore.Update{{Field: "updatedAt", Value: now}}
	if patch.Title != nil {
		updates = append(updates, docstore.Update{Field: "title", Value: *patch.Title})
	}
	if patch.Ingredients != nil {
		updates = append(updates, docstore.Update{Field: "ingredients", Value: *patch.Ingredients})
	}
	if patch.Instructions != nil {
		updates = append(updates, docstore.Update{Field: "instructions", Value: *patch.Instructions})
	}
	if patch.CuisineType != nil {
		updates = append(updates, docstore.Update{Field: "cuisineType", Value: *patch.CuisineType})
	}
	if patch.Difficulty != nil {
		updates = append(updates, docstore.Update{Field: "difficultyLevel", Value: *patch.Difficulty})
	}
	if patch.DietaryTags != nil {
		updates = append(updates, docstore.Update{Field: "dietaryTags", Value: *patch.DietaryTags})
	}
	if patch.PhotoURLs != nil {
		updates = append(updates, docstore.Update{Field: "photoUrls", Value: *patch.PhotoURLs})
	}
	if err := e.store.Update(ctx, Collection, id, updates); err != nil {
		return &MutationError{Op: "updating recipe", Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.recipes {
		if e.recipes[i].ID != id {
			continue
		}
		r := &e.recipes[i]
		r.UpdatedAt = now
		if patch.Title != nil {
			r.Title = *patch.Title
		}
		if patch.Ingredients != nil {
			r.Ingredients = *patch.Ingredients
		}
		if patch.Instructions != nil {
			r.Instructions = *patch.Instructions
		}
		if patch.CuisineType != nil {
			r.CuisineType = *patch.CuisineType
		}
		if patch.Difficulty != nil {
			r.Difficulty = *patch.Difficulty
		}
		if patch.DietaryTags != nil {
			r.DietaryTags = *patch.DietaryTags
		}
		if patch.PhotoURLs != nil {
			r.PhotoURLs = *patch.PhotoURLs
		}
		break
	}
	return nil
}

// Delete removes a recipe and evicts it from the cache. Saved-recipe
// references held by other users are not cascaded; readers filter the
// resulting dangling IDs (see profiles.Directory.SavedRecipes).
func (e *Engine) Delete(ctx context.Context, id string) error {
	if _, ok := e.sessions.Identity(ctx); !ok {
		return ErrAuthRequired
	}
	if err := e.store.Delete(ctx, Collection, id); err != nil {
		return &MutationError{Op: "deleting recipe", Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.recipes = slicesDeleteByID(e.recipes, id)
	return nil
}

func slicesDeleteByID(recipes []tastebookdb.Recipe, id string) []tastebookdb.Recipe {
	kept := recipes[:0]
	for _, r := range recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return kept
}
