// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package session

import (
	"context"
	"log/slog"

	"firebase.google.com/go/v4/auth"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/tastebook/tastebook/profiles"
	"github.com/tastebook/tastebook/tastebookdb"
)

// Firebase is a Source backed by the verified Firebase ID token that the
// auth middleware stores on the request context.
type Firebase struct {
	profiles *profiles.Cache
}

var _ Source = (*Firebase)(nil)

// NewFirebase returns a Source resolving profiles through cache.
func NewFirebase(cache *profiles.Cache) *Firebase {
	return &Firebase{profiles: cache}
}

func (f *Firebase) Identity(ctx context.Context) (*Identity, bool) {
	return identityFromToken(firebaseauth.TokenFromContext(ctx))
}

// identityFromToken maps a verified ID token onto an Identity. The email
// claim is nested under firebase.identities as a list of addresses.
func identityFromToken(tok *auth.Token) (*Identity, bool) {
	if tok == nil || tok.UID == "" {
		return nil, false
	}
	ident := &Identity{ID: tok.UID}
	if name, ok := tok.Claims["name"].(string); ok {
		ident.DisplayName = name
	}
	if id, ok := tok.Firebase.Identities["email"]; ok {
		if idAny, ok := id.([]any); ok && len(idAny) > 0 {
			if email, ok := idAny[0].(string); ok {
				ident.Email = email
			}
		}
	}
	return ident, true
}

func (f *Firebase) Profile(ctx context.Context) *tastebookdb.UserProfile {
	ident, ok := f.Identity(ctx)
	if !ok {
		return nil
	}
	profile, err := f.profiles.Get(ctx, ident.ID)
	if err != nil {
		slog.WarnContext(ctx, "session: fetching profile snapshot", "user", ident.ID, "error", err)
		return nil
	}
	return profile
}
