// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package profiles_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tastebook/tastebook/docstore"
	"github.com/tastebook/tastebook/profiles"
	"github.com/tastebook/tastebook/tastebookdb"
)

func TestCreateIfAbsent(t *testing.T) {
	store := docstore.NewMemory()
	dir := profiles.NewDirectory(store)
	ctx := t.Context()

	profile, err := dir.CreateIfAbsent(ctx, "u1", "Chef Anna", "anna@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", profile.UserID)
	require.Equal(t, "Chef Anna", profile.DisplayName)
	require.Equal(t, "anna@example.com", profile.Email)
	require.Empty(t, profile.SavedRecipeIDs)
	require.False(t, profile.CreatedAt.IsZero())

	// Second call returns the stored profile, not a reseeded one.
	name := "Anna the Great"
	require.NoError(t, dir.Update(ctx, "u1", profiles.Patch{DisplayName: &name}))
	again, err := dir.CreateIfAbsent(ctx, "u1", "Chef Anna", "anna@example.com")
	require.NoError(t, err)
	require.Equal(t, "Anna the Great", again.DisplayName)
}

func TestCreateIfAbsentEmailFallback(t *testing.T) {
	dir := profiles.NewDirectory(docstore.NewMemory())
	profile, err := dir.CreateIfAbsent(t.Context(), "u2", "", "bob@example.com")
	require.NoError(t, err)
	require.Equal(t, "bob", profile.DisplayName)
}

func TestGetMissing(t *testing.T) {
	dir := profiles.NewDirectory(docstore.NewMemory())
	_, err := dir.Get(t.Context(), "nobody")
	require.ErrorIs(t, err, profiles.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	store := docstore.NewMemory()
	dir := profiles.NewDirectory(store)
	ctx := t.Context()
	_, err := dir.CreateIfAbsent(ctx, "u1", "Chef Anna", "anna@example.com")
	require.NoError(t, err)

	tags := []string{"vegetarian"}
	cuisines := []string{"Thai", "Italian"}
	require.NoError(t, dir.Update(ctx, "u1", profiles.Patch{
		DietaryTags:      &tags,
		FavoriteCuisines: &cuisines,
	}))

	profile, err := dir.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, tags, profile.DietaryTags)
	require.Equal(t, cuisines, profile.FavoriteCuisines)
	// Unpatched fields untouched.
	require.Equal(t, "Chef Anna", profile.DisplayName)

	// An empty patch is a no-op, not an error.
	require.NoError(t, dir.Update(ctx, "u1", profiles.Patch{}))
}

func TestSavedRecipesFiltersDangling(t *testing.T) {
	store := docstore.NewMemory()
	dir := profiles.NewDirectory(store)
	ctx := t.Context()

	require.NoError(t, store.Create(ctx, "recipes", "r1", tastebookdb.Recipe{
		ID:        "r1",
		Title:     "Pad Thai",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}))

	profile := &tastebookdb.UserProfile{
		UserID:         "u1",
		SavedRecipeIDs: []string{"r1", "deleted"},
	}
	saved, err := dir.SavedRecipes(ctx, profile)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Equal(t, "Pad Thai", saved[0].Title)
}

func TestCacheRefreshNotifiesSubscribers(t *testing.T) {
	store := docstore.NewMemory()
	dir := profiles.NewDirectory(store)
	cache := profiles.NewCache(dir)
	ctx := t.Context()

	seeded, err := dir.CreateIfAbsent(ctx, "u1", "Chef Anna", "anna@example.com")
	require.NoError(t, err)

	var got []*tastebookdb.UserProfile
	cache.Subscribe(func(p *tastebookdb.UserProfile) { got = append(got, p) })

	cache.Put(seeded)
	require.Len(t, got, 1)
	require.Equal(t, "Chef Anna", got[0].DisplayName)

	name := "Anna the Great"
	require.NoError(t, dir.Update(ctx, "u1", profiles.Patch{DisplayName: &name}))

	// Get serves the stale snapshot until a refresh.
	cached, err := cache.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Chef Anna", cached.DisplayName)

	refreshed, err := cache.Refresh(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Anna the Great", refreshed.DisplayName)
	require.Len(t, got, 2)

	cached, err = cache.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Anna the Great", cached.DisplayName)
}
