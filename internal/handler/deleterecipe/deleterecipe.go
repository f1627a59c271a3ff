// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package deleterecipe

import (
	"net/http"

	"github.com/tastebook/tastebook/catalog"
	"github.com/tastebook/tastebook/internal/handler/web"
)

func NewHandler(engine *catalog.Engine) *Handler {
	return &Handler{engine: engine}
}

type Handler struct {
	engine *catalog.Engine
}

type request struct {
	RecipeID string `json:"recipeId"`
}

func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	var req request
	if !web.Decode(w, r, &req) {
		return
	}

	if err := h.engine.Delete(r.Context(), req.RecipeID); err != nil {
		web.RespondError(r, w, err)
		return
	}
	web.Respond(r, w, struct{}{})
}
