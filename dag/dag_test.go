// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dag

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ippan/dlc/fixed"
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/utils/set"
)

func genesisBlock() Block {
	return Block{
		ID:        ids.BlockID{0x00},
		HashTimer: HashTimer{Round: 0, SubRoundKey: 0},
	}
}

func TestIngestRejectsMissingParent(t *testing.T) {
	d := NewDAG(genesisBlock())
	b := Block{ID: ids.BlockID{0x01}, Parents: []ids.BlockID{{0xff}}, HashTimer: HashTimer{Round: 1}}
	err := d.Ingest(b, 1, true, true)
	var invalid *InvalidBlockError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, ReasonMissingParent, invalid.Reason)
}

func TestIngestRejectsBadSignature(t *testing.T) {
	d := NewDAG(genesisBlock())
	b := Block{ID: ids.BlockID{0x01}, Parents: []ids.BlockID{genesisBlock().ID}, HashTimer: HashTimer{Round: 1}}
	err := d.Ingest(b, 1, false, true)
	var invalid *InvalidBlockError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, ReasonBadSignature, invalid.Reason)
}

func TestIngestRejectsBadHashTimer(t *testing.T) {
	d := NewDAG(genesisBlock())
	b := Block{ID: ids.BlockID{0x01}, Parents: []ids.BlockID{genesisBlock().ID}, HashTimer: HashTimer{Round: 5}}
	err := d.Ingest(b, 1, true, true)
	var invalid *InvalidBlockError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, ReasonBadHashTimer, invalid.Reason)
}

func TestIngestAcceptsValidBlockWithinFutureWindow(t *testing.T) {
	d := NewDAG(genesisBlock())
	b := Block{ID: ids.BlockID{0x01}, Parents: []ids.BlockID{genesisBlock().ID}, HashTimer: HashTimer{Round: 2}}
	require.NoError(t, d.Ingest(b, 1, true, true))
	require.Equal(t, 1, d.PendingCount())
}

func TestIngestRejectsDuplicate(t *testing.T) {
	d := NewDAG(genesisBlock())
	b := Block{ID: ids.BlockID{0x01}, Parents: []ids.BlockID{genesisBlock().ID}, HashTimer: HashTimer{Round: 1}}
	require.NoError(t, d.Ingest(b, 1, true, true))
	err := d.Ingest(b, 1, true, true)
	var invalid *InvalidBlockError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, ReasonDuplicateBlock, invalid.Reason)
}

func TestCanonicalTipPrefersHighestRound(t *testing.T) {
	d := NewDAG(genesisBlock())
	low := Block{ID: ids.BlockID{0x01}, Parents: []ids.BlockID{genesisBlock().ID}, HashTimer: HashTimer{Round: 1}}
	high := Block{ID: ids.BlockID{0x02}, Parents: []ids.BlockID{genesisBlock().ID}, HashTimer: HashTimer{Round: 2}}
	require.NoError(t, d.Ingest(low, 1, true, true))
	require.NoError(t, d.Ingest(high, 2, true, true))

	tip, err := d.CanonicalTip(nil, set.NewSet[ids.BlockID](0))
	require.NoError(t, err)
	require.Equal(t, high.ID, tip)
}

func TestCanonicalTipPrefersHigherWeightThenLexicographicID(t *testing.T) {
	d := NewDAG(genesisBlock())
	vHeavy := ids.ValidatorID{0xaa}
	vLight := ids.ValidatorID{0xbb}
	heavy := Block{ID: ids.BlockID{0x02}, Parents: []ids.BlockID{genesisBlock().ID}, Proposer: vHeavy, HashTimer: HashTimer{Round: 1}}
	light := Block{ID: ids.BlockID{0x01}, Parents: []ids.BlockID{genesisBlock().ID}, Proposer: vLight, HashTimer: HashTimer{Round: 1}}
	require.NoError(t, d.Ingest(heavy, 1, true, true))
	require.NoError(t, d.Ingest(light, 1, true, true))

	weights := map[ids.ValidatorID]fixed.Fixed{
		vHeavy: fixed.FromInt(10),
		vLight: fixed.FromInt(1),
	}
	tip, err := d.CanonicalTip(weights, set.NewSet[ids.BlockID](0))
	require.NoError(t, err)
	require.Equal(t, heavy.ID, tip)
}

func TestDisputedBlockContributesZeroWeight(t *testing.T) {
	d := NewDAG(genesisBlock())
	v := ids.ValidatorID{0xaa}
	a := Block{ID: ids.BlockID{0x01}, Parents: []ids.BlockID{genesisBlock().ID}, Proposer: v, HashTimer: HashTimer{Round: 1}}
	b := Block{ID: ids.BlockID{0x02}, Parents: []ids.BlockID{genesisBlock().ID}, Proposer: v, HashTimer: HashTimer{Round: 1}}
	require.NoError(t, d.Ingest(a, 1, true, true))
	require.NoError(t, d.Ingest(b, 1, true, true))

	weights := map[ids.ValidatorID]fixed.Fixed{v: fixed.FromInt(10)}
	disputed := set.Of(a.ID)
	tip, err := d.CanonicalTip(weights, disputed)
	require.NoError(t, err)
	require.Equal(t, b.ID, tip, "disputed tip a should lose to undisputed tip b despite identical proposer")
}

func TestFinalizeThroughRoundIsOrderedAndIdempotent(t *testing.T) {
	d := NewDAG(genesisBlock())
	b1 := Block{ID: ids.BlockID{0x01}, Parents: []ids.BlockID{genesisBlock().ID}, HashTimer: HashTimer{Round: 1, SubRoundKey: 1}}
	b2 := Block{ID: ids.BlockID{0x02}, Parents: []ids.BlockID{b1.ID}, HashTimer: HashTimer{Round: 1, SubRoundKey: 0}}
	require.NoError(t, d.Ingest(b1, 1, true, true))
	require.NoError(t, d.Ingest(b2, 1, true, true))

	finalized := d.FinalizeThroughRound(1)
	require.Len(t, finalized, 2)
	require.Equal(t, b2.ID, finalized[0].ID, "lower sub-round key orders first")
	require.Equal(t, b1.ID, finalized[1].ID)

	require.True(t, d.IsFinalized(b1.ID))
	require.True(t, d.IsFinalized(b2.ID))
	require.Equal(t, 0, d.PendingCount())

	again := d.FinalizeThroughRound(1)
	require.Empty(t, again, "finalizing the same round twice is a no-op")
}
