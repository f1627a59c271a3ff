// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

// Package session supplies the current authenticated identity and profile
// snapshot to the catalog engine. Authorization checks stay explicit and
// testable because the engine receives a Source at construction instead of
// reading ambient globals.
package session

import (
	"context"
	"strings"

	"github.com/tastebook/tastebook/tastebookdb"
)

// Identity is the authenticated user as reported by the auth provider.
type Identity struct {
	ID          string
	DisplayName string
	Email       string
}

// DisplayNameOr returns the best display name for stamping onto authored
// content: the profile display name, then the auth display name, then the
// local part of the account email.
func (id *Identity) DisplayNameOr(profile *tastebookdb.UserProfile) string {
	if profile != nil && profile.DisplayName != "" {
		return profile.DisplayName
	}
	if id.DisplayName != "" {
		return id.DisplayName
	}
	name, _, _ := strings.Cut(id.Email, "@")
	return name
}

// Source resolves the caller's identity and profile for an operation.
type Source interface {
	// Identity returns the current identity, or false if the caller is not
	// authenticated.
	Identity(ctx context.Context) (*Identity, bool)

	// Profile returns the current profile snapshot, or nil if the caller is
	// not authenticated or has no profile yet.
	Profile(ctx context.Context) *tastebookdb.UserProfile
}

// Static is a Source with a fixed identity and profile, for tests and
// tooling. A zero Static is an unauthenticated caller.
type Static struct {
	User        *Identity
	UserProfile *tastebookdb.UserProfile
}

func (s *Static) Identity(context.Context) (*Identity, bool) {
	if s.User == nil {
		return nil, false
	}
	return s.User, true
}

func (s *Static) Profile(context.Context) *tastebookdb.UserProfile {
	return s.UserProfile
}
