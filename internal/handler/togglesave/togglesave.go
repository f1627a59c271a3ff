// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package togglesave

import (
	"net/http"

	"github.com/tastebook/tastebook/catalog"
	"github.com/tastebook/tastebook/internal/handler/web"
	"github.com/tastebook/tastebook/tastebookdb"
)

func NewHandler(engine *catalog.Engine) *Handler {
	return &Handler{engine: engine}
}

type Handler struct {
	engine *catalog.Engine
}

type request struct {
	RecipeID string `json:"recipeId"`

	// Saved is whether the caller currently has the recipe saved.
	Saved bool `json:"saved"`
}

type response struct {
	Recipe *tastebookdb.Recipe `json:"recipe"`
}

func (h *Handler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	var req request
	if !web.Decode(w, r, &req) {
		return
	}

	recipe, err := h.engine.ToggleSave(r.Context(), req.RecipeID, req.Saved)
	if err != nil {
		web.RespondError(r, w, err)
		return
	}
	web.Respond(r, w, response{Recipe: recipe})
}
