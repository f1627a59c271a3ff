// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package getprofile

import (
	"net/http"

	"github.com/tastebook/tastebook/catalog"
	"github.com/tastebook/tastebook/internal/handler/web"
	"github.com/tastebook/tastebook/profiles"
	"github.com/tastebook/tastebook/session"
	"github.com/tastebook/tastebook/tastebookdb"
)

func NewHandler(dir *profiles.Directory, cache *profiles.Cache, sessions session.Source, engine *catalog.Engine) *Handler {
	return &Handler{dir: dir, cache: cache, sessions: sessions, engine: engine}
}

type Handler struct {
	dir      *profiles.Directory
	cache    *profiles.Cache
	sessions session.Source
	engine   *catalog.Engine
}

type response struct {
	Profile      *tastebookdb.UserProfile `json:"profile"`
	Recipes      []tastebookdb.Recipe     `json:"recipes"`
	SavedRecipes []tastebookdb.Recipe     `json:"savedRecipes"`
}

// GetProfile returns the caller's profile, creating it on first
// authentication, along with their authored recipes and saved recipes.
// Saved IDs whose recipe was deleted are filtered, not surfaced.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident, ok := h.sessions.Identity(ctx)
	if !ok {
		web.RespondError(r, w, catalog.ErrAuthRequired)
		return
	}

	profile, err := h.dir.CreateIfAbsent(ctx, ident.ID, ident.DisplayName, ident.Email)
	if err != nil {
		web.RespondError(r, w, err)
		return
	}
	h.cache.Put(profile)

	authored, err := h.engine.ByAuthor(ctx, ident.ID)
	if err != nil {
		web.RespondError(r, w, err)
		return
	}
	saved, err := h.dir.SavedRecipes(ctx, profile)
	if err != nil {
		web.RespondError(r, w, err)
		return
	}

	web.Respond(r, w, response{
		Profile:      profile,
		Recipes:      authored,
		SavedRecipes: saved,
	})
}
