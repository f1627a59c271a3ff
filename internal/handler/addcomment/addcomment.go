// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package addcomment

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
	Text     string `json:"text"`
}

type response struct {
	Recipe *tastebookdb.Recipe `json:"recipe"`
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req request
	if !web.Decode(w, r, &req) {
		return
	}

	recipe, err := h.engine.AddComment(r.Context(), req.RecipeID, req.Text)
	if err != nil {
		web.RespondError(r, w, err)
		return
	}
	web.Respond(r, w, response{Recipe: recipe})
}
