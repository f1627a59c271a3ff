// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package catalog

import (
	"errors"

	"github.com/tastebook/tastebook/docstore"
)

// ErrAuthRequired is returned when a mutation is attempted without an
// authenticated identity. It is raised before any remote call.
var ErrAuthRequired = errors.New("authentication required")

// ErrInvalidInput is returned when an operation's input fails local
// validation, such as blank comment text. No remote call is made.
var ErrInvalidInput = errors.New("invalid input")

// ErrLoadInProgress signals that a page load was suppressed because one is
// already in flight. It is a concurrency guard, not a failure; callers may
// treat it as a no-op.
var ErrLoadInProgress = errors.New("a catalog load is already in flight")

// Re-exported store errors so callers compare against a single package.
var (
	ErrNotFound      = docstore.ErrNotFound
	ErrIndexRequired = docstore.ErrIndexRequired
)

// MutationError is a remote-write failure. The local cache is left in its
// pre-call state; remote state is unchanged too when the write was a
// single atomic update or batch.
type MutationError struct {
	Op  string
	Err error
}

func (e *MutationError) Error() string {
	return "catalog: " + e.Op + ": " + e.Err.Error()
}

func (e *MutationError) Unwrap() error { return e.Err }
