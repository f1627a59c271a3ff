// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tastebook/tastebook/catalog"
	"github.com/tastebook/tastebook/docstore"
	"github.com/tastebook/tastebook/profiles"
	"github.com/tastebook/tastebook/session"
	"github.com/tastebook/tastebook/tastebookdb"
)

type photoStub struct {
	url   string
	err   error
	calls int
}

func (p *photoStub) SaveDataURL(_ context.Context, _, _ string) (string, error) {
	p.calls++
	return p.url, p.err
}

func TestCreate(t *testing.T) {
	store := docstore.NewMemory()
	seedRecipes(t, store, 2)
	ident := chefIdentity()
	engine, _ := newEngine(t, store, &session.Static{User: ident}, nil, catalog.Config{})

	ctx := t.Context()
	require.NoError(t, engine.LoadInitial(ctx))

	got, err := engine.Create(ctx, catalog.Draft{
		Title:        "Green Curry",
		Ingredients:  []tastebookdb.Ingredient{{Name: "Coconut milk", Quantity: "400ml"}},
		Instructions: "Simmer everything.",
		CuisineType:  "Thai",
		Difficulty:   tastebookdb.DifficultyMedium,
	})
	require.NoError(t, err)
	require.NotEmpty(t, got.ID)
	require.Equal(t, "u1", got.AuthorID)
	require.Zero(t, got.LikesCount)
	require.Zero(t, got.SavesCount)
	require.Empty(t, got.LikedBy)
	require.Empty(t, got.Comments)
	require.False(t, got.CreatedAt.IsZero())

	// The new recipe is the newest item, prepended.
	cached := engine.Recipes()
	require.Equal(t, got.ID, cached[0].ID)
	require.Len(t, cached, 3)

	// And it is persisted remotely.
	stored, err := engine.GetByID(ctx, got.ID)
	require.NoError(t, err)
	require.Equal(t, "Green Curry", stored.Title)
}

func TestCreateAuthorNamePriority(t *testing.T) {
	ctx := t.Context()
	tests := []struct {
		name string
		sess *session.Static
		want string
	}{
		{
			name: "profile display name wins",
			sess: &session.Static{
				User:        &session.Identity{ID: "u1", DisplayName: "Auth Name", Email: "anna@example.com"},
				UserProfile: &tastebookdb.UserProfile{UserID: "u1", DisplayName: "Chef Anna"},
			},
			want: "Chef Anna",
		},
		{
			name: "auth display name next",
			sess: &session.Static{
				User: &session.Identity{ID: "u1", DisplayName: "Auth Name", Email: "anna@example.com"},
			},
			want: "Auth Name",
		},
		{
			name: "email local part last",
			sess: &session.Static{
				User: &session.Identity{ID: "u1", Email: "anna@example.com"},
			},
			want: "anna",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine, _ := newEngine(t, docstore.NewMemory(), tc.sess, nil, catalog.Config{})
			got, err := engine.Create(ctx, catalog.Draft{Title: "Toast"})
			require.NoError(t, err)
			require.Equal(t, tc.want, got.AuthorName)
		})
	}
}

func TestCreateUnauthenticated(t *testing.T) {
	engine, _ := newEngine(t, docstore.NewMemory(), &session.Static{}, nil, catalog.Config{})
	_, err := engine.Create(t.Context(), catalog.Draft{Title: "Toast"})
	require.ErrorIs(t, err, catalog.ErrAuthRequired)
}

func TestCreateWithPhoto(t *testing.T) {
	store := docstore.NewMemory()
	photos := &photoStub{url: "https://storage.example.com/recipes/x/photo.jpeg"}
	engine, _ := newEngine(t, store, &session.Static{User: chefIdentity()}, photos, catalog.Config{})

	got, err := engine.Create(t.Context(), catalog.Draft{
		Title:        "Shakshuka",
		PhotoDataURL: "data:image/jpeg;base64,/9j/4AAQ",
	})
	require.NoError(t, err)
	require.Equal(t, 1, photos.calls)
	require.Equal(t, []string{photos.url}, got.PhotoURLs)
}

func TestCreatePhotoUploadFailureAborts(t *testing.T) {
	store := docstore.NewMemory()
	photos := &photoStub{err: errors.New("bucket unavailable")}
	engine, _ := newEngine(t, store, &session.Static{User: chefIdentity()}, photos, catalog.Config{})

	ctx := t.Context()
	_, err := engine.Create(ctx, catalog.Draft{
		Title:        "Shakshuka",
		PhotoDataURL: "data:image/jpeg;base64,/9j/4AAQ",
	})
	require.Error(t, err)

	// No recipe document was created.
	require.NoError(t, engine.LoadInitial(ctx))
	require.Empty(t, engine.Recipes())
}

func TestUpdateMergesCachedEntry(t *testing.T) {
	store := docstore.NewMemory()
	ident := chefIdentity()
	engine, _ := newEngine(t, store, &session.Static{User: ident}, nil, catalog.Config{})

	ctx := t.Context()
	created, err := engine.Create(ctx, catalog.Draft{
		Title:        "Green Curry",
		Instructions: "Simmer everything.",
	})
	require.NoError(t, err)

	title := "Red Curry"
	require.NoError(t, engine.Update(ctx, created.ID, catalog.Patch{Title: &title}))

	// Shallow merge: patched field changed, others kept.
	cached, ok := engine.FindCached(created.ID)
	require.True(t, ok)
	require.Equal(t, "Red Curry", cached.Title)
	require.Equal(t, "Simmer everything.", cached.Instructions)
	require.False(t, cached.UpdatedAt.Before(created.UpdatedAt))

	stored, err := engine.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Red Curry", stored.Title)
	require.Equal(t, "Simmer everything.", stored.Instructions)
}

func TestUpdateMissingRecipe(t *testing.T) {
	engine, _ := newEngine(t, docstore.NewMemory(), &session.Static{User: chefIdentity()}, nil, catalog.Config{})
	title := "Red Curry"
	err := engine.Update(t.Context(), "gone", catalog.Patch{Title: &title})
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestDeleteLeavesDanglingSavedIDsFiltered(t *testing.T) {
	store := docstore.NewMemory()
	seeded := seedRecipes(t, store, 2)
	ident := chefIdentity()
	engine, cache := newEngine(t, store, &session.Static{User: ident}, nil, catalog.Config{})
	setupProfile(t, store, cache, ident)

	ctx := t.Context()
	require.NoError(t, engine.LoadInitial(ctx))
	_, err := engine.ToggleSave(ctx, seeded[0].ID, false)
	require.NoError(t, err)

	require.NoError(t, engine.Delete(ctx, seeded[0].ID))

	// Evicted from the cache and gone remotely.
	_, ok := engine.FindCached(seeded[0].ID)
	require.False(t, ok)
	_, err = engine.GetByID(ctx, seeded[0].ID)
	require.ErrorIs(t, err, catalog.ErrNotFound)

	// No cascade: the saved ID dangles, and readers filter it.
	dir := profiles.NewDirectory(store)
	profile, err := dir.Get(ctx, ident.ID)
	require.NoError(t, err)
	require.Contains(t, profile.SavedRecipeIDs, seeded[0].ID)
	saved, err := dir.SavedRecipes(ctx, profile)
	require.NoError(t, err)
	require.Empty(t, saved)
}
