// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

// Package profiles is the profile directory: one mutable profile document
// per authenticated user, stored in the "users" collection.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tastebook/tastebook/docstore"
	"github.com/tastebook/tastebook/tastebookdb"
)

// ErrNotFound is returned when a user has no profile document.
var ErrNotFound = docstore.ErrNotFound

// Collection is the document store collection holding profiles. The save
// toggle in the catalog engine writes to it directly inside its atomic
// batch.
const Collection = "users"

// Patch is a partial profile update. Nil fields are left unchanged.
type Patch struct {
	DisplayName      *string
	AvatarURL        *string
	DietaryTags      *[]string
	FavoriteCuisines *[]string
}

// Directory reads and writes profile documents.
type Directory struct {
	store docstore.Store
}

// NewDirectory returns a Directory over the given store.
func NewDirectory(store docstore.Store) *Directory {
	return &Directory{store: store}
}

// Get fetches the profile for userID. Returns ErrNotFound if absent.
func (d *Directory) Get(ctx context.Context, userID string) (*tastebookdb.UserProfile, error) {
	doc, err := d.store.Get(ctx, Collection, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("profiles: getting profile %s: %w", userID, err)
	}
	var profile tastebookdb.UserProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("profiles: unmarshalling profile %s: %w", userID, err)
	}
	return &profile, nil
}

// CreateIfAbsent creates the profile document for a newly authenticated
// user if it does not exist yet, seeding the display name from the auth
// display name or the local part of the email. It returns the stored
// profile either way.
func (d *Directory) CreateIfAbsent(ctx context.Context, userID, displayName, email string) (*tastebookdb.UserProfile, error) {
	if existing, err := d.Get(ctx, userID); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}
	profile := &tastebookdb.UserProfile{
		UserID:           userID,
		Email:            email,
		DisplayName:      displayName,
		DietaryTags:      []string{},
		FavoriteCuisines: []string{},
		SavedRecipeIDs:   []string{},
		CreatedAt:        time.Now(),
	}
	if err := d.store.Create(ctx, Collection, userID, profile); err != nil {
		if errors.Is(err, docstore.ErrExists) {
			// Lost a race with another session; the stored profile wins.
			return d.Get(ctx, userID)
		}
		return nil, fmt.Errorf("profiles: creating profile %s: %w", userID, err)
	}
	return profile, nil
}

// Update applies a partial patch to a profile.
func (d *Directory) Update(ctx context.Context, userID string, patch Patch) error {
	var updates []docstore.Update
	if patch.DisplayName != nil {
		updates = append(updates, docstore.Update{Field: "username", Value: *patch.DisplayName})
	}
	if patch.AvatarURL != nil {
		updates = append(updates, docstore.Update{Field: "profilePictureUrl", Value: *patch.AvatarURL})
	}
	if patch.DietaryTags != nil {
		updates = append(updates, docstore.Update{Field: "dietaryRestrictions", Value: *patch.DietaryTags})
	}
	if patch.FavoriteCuisines != nil {
		updates = append(updates, docstore.Update{Field: "favoriteCuisines", Value: *patch.FavoriteCuisines})
	}
	if len(updates) == 0 {
		return nil
	}
	if err := d.store.Update(ctx, Collection, userID, updates); err != nil {
		return fmt.Errorf("profiles: updating profile %s: %w", userID, err)
	}
	return nil
}

// SavedRecipes fetches the recipes in the profile's saved set. Saved IDs
// whose recipe has since been deleted are dangling references; they are
// filtered out rather than surfaced as errors.
func (d *Directory) SavedRecipes(ctx context.Context, profile *tastebookdb.UserProfile) ([]tastebookdb.Recipe, error) {
	recipes := make([]tastebookdb.Recipe, 0, len(profile.SavedRecipeIDs))
	for _, id := range profile.SavedRecipeIDs {
		doc, err := d.store.Get(ctx, "recipes", id)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("profiles: getting saved recipe %s: %w", id, err)
		}
		var recipe tastebookdb.Recipe
		if err := doc.DataTo(&recipe); err != nil {
			return nil, fmt.Errorf("profiles: unmarshalling saved recipe %s: %w", id, err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}
