// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package updaterecipe

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
	RecipeID     string                    `json:"recipeId"`
	Title        *string                   `json:"title"`
	Ingredients  *[]tastebookdb.Ingredient `json:"ingredients"`
	Instructions *string                   `json:"instructions"`
	CuisineType  *string                   `json:"cuisineType"`
	Difficulty   *tastebookdb.Difficulty   `json:"difficultyLevel"`
	DietaryTags  *[]string                 `json:"dietaryTags"`
	PhotoURLs    *[]string                 `json:"photoUrls"`
}

func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var req request
	if !web.Decode(w, r, &req) {
		return
	}

	err := h.engine.Update(r.Context(), req.RecipeID, catalog.Patch{
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CuisineType:  req.CuisineType,
		Difficulty:   req.Difficulty,
		DietaryTags:  req.DietaryTags,
		PhotoURLs:    req.PhotoURLs,
	})
	if err != nil {
		web.RespondError(r, w, err)
		return
	}
	web.Respond(r, w, struct{}{})
}
