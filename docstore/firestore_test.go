// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package docstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIndexRequired(t *testing.T) {
	err := status.Error(codes.FailedPrecondition, "The query requires an index. You can create it here: https://console.firebase.google.com/...")
	require.True(t, indexRequired(err))

	require.False(t, indexRequired(status.Error(codes.NotFound, "no entity")))
	require.False(t, indexRequired(status.Error(codes.FailedPrecondition, "operation not allowed")))
	require.False(t, indexRequired(errors.New("dial tcp: connection refused")))
}
