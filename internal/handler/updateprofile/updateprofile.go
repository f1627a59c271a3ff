// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package updateprofile

import (
	"net/http"

	"github.com/tastebook/tastebook/catalog"
	"github.com/tastebook/tastebook/internal/handler/web"
	"github.com/tastebook/tastebook/profiles"
	"github.com/tastebook/tastebook/session"
	"github.com/tastebook/tastebook/tastebookdb"
)

func NewHandler(dir *profiles.Directory, cache *profiles.Cache, sessions session.Source) *Handler {
	return &Handler{dir: dir, cache: cache, sessions: sessions}
}

type Handler struct {
	dir      *profiles.Directory
	cache    *profiles.Cache
	sessions session.Source
}

type request struct {
	DisplayName      *string   `json:"username"`
	AvatarURL        *string   `json:"profilePictureUrl"`
	DietaryTags      *[]string `json:"dietaryRestrictions"`
	FavoriteCuisines *[]string `json:"favoriteCuisines"`
}

type response struct {
	Profile *tastebookdb.UserProfile `json:"profile"`
}

// UpdateProfile patches the caller's profile. Recipes authored before a
// rename keep the old denormalized author name.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident, ok := h.sessions.Identity(ctx)
	if !ok {
		web.RespondError(r, w, catalog.ErrAuthRequired)
		return
	}

	var req request
	if !web.Decode(w, r, &req) {
		return
	}

	err := h.dir.Update(ctx, ident.ID, profiles.Patch{
		DisplayName:      req.DisplayName,
		AvatarURL:        req.AvatarURL,
		DietaryTags:      req.DietaryTags,
		FavoriteCuisines: req.FavoriteCuisines,
	})
	if err != nil {
		web.RespondError(r, w, err)
		return
	}

	profile, err := h.cache.Refresh(ctx, ident.ID)
	if err != nil {
		web.RespondError(r, w, err)
		return
	}
	web.Respond(r, w, response{Profile: profile})
}
