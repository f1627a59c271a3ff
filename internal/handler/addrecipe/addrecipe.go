// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package addrecipe

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
	Title        string                   `json:"title"`
	Ingredients  []tastebookdb.Ingredient `json:"ingredients"`
	Instructions string                   `json:"instructions"`
	CuisineType  string                   `json:"cuisineType"`
	Difficulty   tastebookdb.Difficulty   `json:"difficultyLevel"`
	DietaryTags  []string                 `json:"dietaryTags"`
	PhotoDataURL string                   `json:"photoDataUrl"`
}

type response struct {
	Recipe *tastebookdb.Recipe `json:"recipe"`
}

func (h *Handler) AddRecipe(w http.ResponseWriter, r *http.Request) {
	var req request
	if !web.Decode(w, r, &req) {
		return
	}

	recipe, err := h.engine.Create(r.Context(), catalog.Draft{
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CuisineType:  req.CuisineType,
		Difficulty:   req.Difficulty,
		DietaryTags:  req.DietaryTags,
		PhotoDataURL: req.PhotoDataURL,
	})
	if err != nil {
		web.RespondError(r, w, err)
		return
	}
	web.Respond(r, w, response{Recipe: recipe})
}
