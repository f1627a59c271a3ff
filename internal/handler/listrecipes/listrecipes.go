// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package listrecipes

import (
	"errors"
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
	// More requests the next page instead of replacing the catalog.
	More bool `json:"more"`
}

type response struct {
	Recipes   []tastebookdb.Recipe `json:"recipes"`
	Exhausted bool                 `json:"exhausted"`
}

func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	var req request
	if !web.Decode(w, r, &req) {
		return
	}

	var err error
	if req.More {
		err = h.engine.LoadMore(r.Context())
	} else {
		err = h.engine.LoadInitial(r.Context())
	}
	// An overlapping load is a no-op; the current snapshot is still valid.
	if err != nil && !errors.Is(err, catalog.ErrLoadInProgress) {
		web.RespondError(r, w, err)
		return
	}

	web.Respond(r, w, response{
		Recipes:   h.engine.Recipes(),
		Exhausted: h.engine.Exhausted(),
	})
}
