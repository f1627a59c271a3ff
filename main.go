// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tastebook/tastebook/catalog"
	"github.com/tastebook/tastebook/docstore"
	"github.com/tastebook/tastebook/images"
	"github.com/tastebook/tastebook/internal/config"
	"github.com/tastebook/tastebook/internal/handler/addcomment"
	"github.com/tastebook/tastebook/internal/handler/addrecipe"
	"github.com/tastebook/tastebook/internal/handler/deleterecipe"
	"github.com/tastebook/tastebook/internal/handler/getprofile"
	"github.com/tastebook/tastebook/internal/handler/getrecipe"
	"github.com/tastebook/tastebook/internal/handler/listrecipes"
	"github.com/tastebook/tastebook/internal/handler/searchrecipes"
	"github.com/tastebook/tastebook/internal/handler/togglelike"
	"github.com/tastebook/tastebook/internal/handler/togglesave"
	"github.com/tastebook/tastebook/internal/handler/updateprofile"
	"github.com/tastebook/tastebook/internal/handler/updaterecipe"
	"github.com/tastebook/tastebook/profiles"
	"github.com/tastebook/tastebook/session"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

// publicPaths are served without authentication; everything else under
// /api/ requires a verified Firebase ID token.
var publicPaths = map[string]bool{
	"/api/recipes/list":   true,
	"/api/recipes/get":    true,
	"/api/recipes/search": true,
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	gcs, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := gcs.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()
	publicBucket := conf.Google.Project + "-public"

	store := docstore.NewFirestore(firestore)
	dir := profiles.NewDirectory(store)
	cache := profiles.NewCache(dir)
	sessions := session.NewFirebase(cache)
	photos := images.NewStore(gcs, publicBucket)
	engine := catalog.New(store, sessions, photos, cache, catalog.Config{
		FirstPageSize: conf.Catalog.FirstPage,
		MorePageSize:  conf.Catalog.MorePage,
		SearchLimit:   conf.Catalog.SearchLimit,
	})

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Use(middleware.Maybe(fbMW, func(r *http.Request) bool {
		return !publicPaths[r.URL.Path]
	}))

	mux.Post("/api/recipes/list", listrecipes.NewHandler(engine).ListRecipes)
	mux.Post("/api/recipes/get", getrecipe.NewHandler(engine).GetRecipe)
	mux.Post("/api/recipes/search", searchrecipes.NewHandler(engine).SearchRecipes)
	mux.Post("/api/recipes/add", addrecipe.NewHandler(engine).AddRecipe)
	mux.Post("/api/recipes/update", updaterecipe.NewHandler(engine).UpdateRecipe)
	mux.Post("/api/recipes/delete", deleterecipe.NewHandler(engine).DeleteRecipe)
	mux.Post("/api/recipes/like", togglelike.NewHandler(engine).ToggleLike)
	mux.Post("/api/recipes/save", togglesave.NewHandler(engine).ToggleSave)
	mux.Post("/api/recipes/comment", addcomment.NewHandler(engine).AddComment)
	mux.Post("/api/profile/get", getprofile.NewHandler(dir, cache, sessions, engine).GetProfile)
	mux.Post("/api/profile/update", updateprofile.NewHandler(dir, cache, sessions).UpdateProfile)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
