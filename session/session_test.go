// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package session

import (
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/require"
)

func TestIdentityFromToken(t *testing.T) {
	tok := &auth.Token{
		UID:    "u1",
		Claims: map[string]any{"name": "Chef Anna"},
		Firebase: auth.FirebaseInfo{
			Identities: map[string]any{
				"email": []any{"anna@example.com"},
			},
		},
	}

	ident, ok := identityFromToken(tok)
	require.True(t, ok)
	require.Equal(t, "u1", ident.ID)
	require.Equal(t, "Chef Anna", ident.DisplayName)
	require.Equal(t, "anna@example.com", ident.Email)
}

func TestIdentityFromTokenMissingClaims(t *testing.T) {
	tests := []struct {
		name string
		tok  *auth.Token
	}{
		{name: "no claims at all", tok: &auth.Token{UID: "u1"}},
		{name: "name claim not a string", tok: &auth.Token{UID: "u1", Claims: map[string]any{"name": 42}}},
		{
			name: "email identity empty",
			tok: &auth.Token{UID: "u1", Firebase: auth.FirebaseInfo{
				Identities: map[string]any{"email": []any{}},
			}},
		},
		{
			name: "email identity not a list",
			tok: &auth.Token{UID: "u1", Firebase: auth.FirebaseInfo{
				Identities: map[string]any{"email": "anna@example.com"},
			}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ident, ok := identityFromToken(tc.tok)
			require.True(t, ok)
			require.Equal(t, "u1", ident.ID)
			require.Empty(t, ident.DisplayName)
			require.Empty(t, ident.Email)
		})
	}
}

func TestIdentityFromTokenUnauthenticated(t *testing.T) {
	_, ok := identityFromToken(nil)
	require.False(t, ok)

	_, ok = identityFromToken(&auth.Token{})
	require.False(t, ok)
}

func TestDisplayNameOr(t *testing.T) {
	ident := &Identity{Email: "anna@example.com"}
	require.Equal(t, "anna", ident.DisplayNameOr(nil))

	ident.DisplayName = "Auth Name"
	require.Equal(t, "Auth Name", ident.DisplayNameOr(nil))
}
