// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ippan/dlc/dag"
	"github.com/ippan/dlc/emission"
	"github.com/ippan/dlc/fixed"
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/model"
	"github.com/ippan/dlc/telemetry"
	"github.com/ippan/dlc/units"
	"github.com/ippan/dlc/validators"
	"github.com/ippan/dlc/xhash"
)

// oneNodeModel returns a trivial single-leaf-tree ensemble: every feature
// vector scores identically, which is all the orchestration test needs (the
// model's own semantics are exercised in package model's tests).
func oneNodeModel() model.Ensemble {
	return model.Ensemble{
		FeatureCount: telemetry.FeatureCount,
		LearningRate: fixed.One,
		OutputScale:  fixed.One,
		Trees: []model.Tree{
			{Nodes: []model.Node{{IsLeaf: true, LeafValue: fixed.FromInt(1)}}},
		},
	}
}

func genesisBlock() dag.Block {
	return dag.Block{ID: ids.BlockID{0x00}, HashTimer: dag.HashTimer{Round: 0}}
}

func sampleReports(validatorIDs ...ids.ValidatorID) map[ids.ValidatorID]telemetry.Report {
	reports := make(map[ids.ValidatorID]telemetry.Report, len(validatorIDs))
	for _, id := range validatorIDs {
		reports[id] = telemetry.Report{
			LatencyMicros:     1000,
			UptimeRatio:       fixed.One,
			PeerEntropy:       fixed.FromRatio(1, 2),
			ValidatedBlocks:   10,
			NormalizedStake:   fixed.FromRatio(1, 10),
			PeerReportQuality: fixed.One,
		}
	}
	return reports
}

func newTestFinalizer(t *testing.T) (*RoundFinalizer, ids.ValidatorID) {
	t.Helper()
	proposer := ids.ValidatorID{0x01}

	d := dag.NewDAG(genesisBlock())
	b1 := dag.Block{
		ID:        ids.BlockID{0x01},
		Parents:   []ids.BlockID{genesisBlock().ID},
		Proposer:  proposer,
		HashTimer: dag.HashTimer{Round: 1},
	}
	require.NoError(t, d.Ingest(b1, 1, true, true))

	chain := emission.NewChainState()
	registry := validators.NewRegistry(validators.BondingParams{
		MinBond:               units.FromUint64(1),
		MaxBond:               units.FromUint64(1_000_000),
		UnbondingRounds:       10,
		SlashingCoolOffRounds: 10,
		DoubleSignBps:         5_000,
		InvalidBlockBps:       1_000,
		DowntimeBps:           100,
	})

	cfg := Config{FinalizationLagRounds: 1, TopKCandidates: 10, ShadowCount: 1}
	f := NewRoundFinalizer(d, chain, registry, oneNodeModel(), emission.Mainnet(), cfg, nil, ids.EmptyStateRoot)
	return f, proposer
}

func TestFinalizeRoundRejectsEmptyTelemetry(t *testing.T) {
	f, _ := newTestFinalizer(t)
	_, _, err := f.FinalizeRound(1, nil, units.Zero)
	require.ErrorIs(t, err, ErrNoTelemetry)
}

func TestFinalizeRoundProducesSelectionAndDistribution(t *testing.T) {
	f, proposer := newTestFinalizer(t)
	shadow := ids.ValidatorID{0x02}
	reports := sampleReports(proposer, shadow)

	result, distribution, err := f.FinalizeRound(1, reports, units.Zero)
	require.NoError(t, err)
	require.Contains(t, []ids.ValidatorID{proposer, shadow}, result.Primary)
	require.True(t, distribution.Reward.Cmp(units.Zero) > 0)

	root := f.LastStateRoot()
	require.NotEqual(t, ids.EmptyStateRoot, root)
}

func TestLastSeedHexAndModelDigestHex(t *testing.T) {
	f, proposer := newTestFinalizer(t)
	shadow := ids.ValidatorID{0x02}
	reports := sampleReports(proposer, shadow)

	require.Len(t, f.ModelDigestHex(), 64)
	seedBeforeFinalize := f.LastSeedHex()

	f.ModelDigest = xhash.Digest{0xAB}
	require.Equal(t, "ab00000000000000000000000000000000000000000000000000000000000000"[:64], f.ModelDigestHex())

	_, _, err := f.FinalizeRound(1, reports, units.Zero)
	require.NoError(t, err)
	require.Len(t, f.LastSeedHex(), 64)
	require.NotEqual(t, seedBeforeFinalize, f.LastSeedHex())
}

func TestFinalizeRoundIsIdempotentAtTheChainStateLayer(t *testing.T) {
	f, proposer := newTestFinalizer(t)
	shadow := ids.ValidatorID{0x02}
	reports := sampleReports(proposer, shadow)

	_, _, err := f.FinalizeRound(1, reports, units.Zero)
	require.NoError(t, err)
	issuedAfterFirst := f.Chain.TotalIssued()

	// A second call for the same round must not double-credit issuance:
	// ChainState.ApplyRound rejects the re-application and FinalizeRound
	// treats that as already-applied rather than surfacing an error.
	_, _, err = f.FinalizeRound(1, reports, units.Zero)
	require.NoError(t, err)
	require.Equal(t, issuedAfterFirst, f.Chain.TotalIssued())
}
