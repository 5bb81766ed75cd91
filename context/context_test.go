// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package context

import (
	stdcontext "context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ippan/dlc/log"
	"github.com/ippan/dlc/storage"
)

func TestWithContextAndFromContext(t *testing.T) {
	store := storage.NewMemory()
	cc := &Context{NetworkID: 7, Store: store}

	ctx := WithContext(stdcontext.Background(), cc)
	retrieved := FromContext(ctx)

	require.NotNil(t, retrieved)
	require.Equal(t, uint32(7), retrieved.NetworkID)
	require.Same(t, store, retrieved.Store)
}

func TestFromContextWithoutAttachmentReturnsNil(t *testing.T) {
	require.Nil(t, FromContext(stdcontext.Background()))
}

func TestLoggerFallsBackToNoOp(t *testing.T) {
	require.NotNil(t, Logger(stdcontext.Background()))

	cc := &Context{Logger: log.NoOp()}
	ctx := WithContext(stdcontext.Background(), cc)
	require.NotNil(t, Logger(ctx))
}

func TestStoreReturnsNilWhenUnset(t *testing.T) {
	cc := &Context{}
	ctx := WithContext(stdcontext.Background(), cc)
	require.Nil(t, Store(ctx))
}
