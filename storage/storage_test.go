// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ippan/dlc/dag"
	"github.com/ippan/dlc/ids"
)

func TestMemoryPutGetBlock(t *testing.T) {
	m := NewMemory()
	b := dag.Block{ID: ids.BlockID{0x01}}
	require.NoError(t, m.PutFinalizedBlock(b))

	got, err := m.GetBlock(b.ID)
	require.NoError(t, err)
	require.Equal(t, b, got)

	_, err = m.GetBlock(ids.BlockID{0xff})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryChainStateTracksLatestByRound(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.PutChainState(1, ChainStateSnapshot{TotalIssuedMicro: "100"}))
	require.NoError(t, m.PutChainState(5, ChainStateSnapshot{TotalIssuedMicro: "500"}))
	require.NoError(t, m.PutChainState(3, ChainStateSnapshot{TotalIssuedMicro: "300"}))

	round, snap, err := m.LatestChainState()
	require.NoError(t, err)
	require.Equal(t, uint64(5), round)
	require.Equal(t, "500", snap.TotalIssuedMicro)

	snap, err = m.GetChainState(1)
	require.NoError(t, err)
	require.Equal(t, "100", snap.TotalIssuedMicro)
}

func TestMemoryLatestChainStateEmpty(t *testing.T) {
	m := NewMemory()
	_, _, err := m.LatestChainState()
	require.ErrorIs(t, err, ErrNotFound)
}
