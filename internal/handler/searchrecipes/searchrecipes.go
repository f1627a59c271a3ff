// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package searchrecipes

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
	Term       string                 `json:"term"`
	Cuisine    string                 `json:"cuisine"`
	Difficulty tastebookdb.Difficulty `json:"difficulty"`
}

type response struct {
	Recipes []tastebookdb.Recipe `json:"recipes"`
}

func (h *Handler) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	var req request
	if !web.Decode(w, r, &req) {
		return
	}

	err := h.engine.Search(r.Context(), catalog.Query{
		Term:       req.Term,
		Cuisine:    req.Cuisine,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		web.RespondError(r, w, err)
		return
	}
	web.Respond(r, w, response{Recipes: h.engine.Recipes()})
}
