// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	stdcontext "context"
	"crypto/ed25519"
	"fmt"

	"github.com/ippan/dlc/config"
	"github.com/ippan/dlc/consensus"
	"github.com/ippan/dlc/context"
	"github.com/ippan/dlc/dag"
	"github.com/ippan/dlc/emission"
	"github.com/ippan/dlc/fixed"
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/log"
	"github.com/ippan/dlc/model"
	"github.com/ippan/dlc/signing"
	"github.com/ippan/dlc/storage"
	"github.com/ippan/dlc/telemetry"
	"github.com/ippan/dlc/units"
	"github.com/ippan/dlc/utils/sampler"
	"github.com/ippan/dlc/validators"
	"github.com/ippan/dlc/xhash"
)

// trivialEnsemble is a single-leaf model that scores every validator
// identically, used when no real model artifact is configured (simulate,
// or serve with an empty model.path).
func trivialEnsemble() model.Ensemble {
	return model.Ensemble{
		Trees:        []model.Tree{{Nodes: []model.Node{{IsLeaf: true, LeafValue: fixed.One}}}},
		LearningRate: fixed.One,
		FeatureCount: telemetry.FeatureCount,
	}
}

// runSimulation bonds validatorCount synthetic validators, then finalizes
// rounds sequentially, proposing one block per round (authored by a
// deterministic rotation over the bonded set) and feeding every active
// validator an in-domain telemetry report: identical for all of them except
// a sampled set of laggards, whose reports are degraded.
func runSimulation(c config.Config, rounds uint64, validatorCount int) error {
	logger, err := log.NewProduction()
	if err != nil {
		return err
	}

	genesis := dag.Block{ID: ids.EmptyBlockID, HashTimer: dag.HashTimer{Round: 0}}
	d := dag.NewDAG(genesis)
	chain := emission.NewChainState()
	registry := validators.NewRegistry(c.Bonding)

	// cc bundles the storage collaborator with the logger so the round
	// loop below persists finalized blocks and chain-state snapshots
	// through the same Store interface a production node would, instead
	// of relying solely on the in-process ChainState/DAG.
	cc := &context.Context{Store: storage.NewMemory(), Logger: logger}
	ctx := context.WithContext(stdcontext.Background(), cc)

	validatorIDs := make([]ids.ValidatorID, validatorCount)
	signingKeys := make(map[ids.ValidatorID]ed25519.PrivateKey, validatorCount)
	verifyKeys := make(map[ids.ValidatorID]ed25519.PublicKey, validatorCount)
	for i := 0; i < validatorCount; i++ {
		id := syntheticValidatorID(i)
		if err := registry.Register(id, c.Bonding.MinBond, 0); err != nil {
			return fmt.Errorf("registering validator %d: %w", i, err)
		}
		validatorIDs[i] = id

		priv := ed25519.NewKeyFromSeed(syntheticKeySeed(i))
		signingKeys[id] = priv
		verifyKeys[id] = priv.Public().(ed25519.PublicKey)
	}
	registry.ActivatePending(0)

	finalizer := consensus.NewRoundFinalizer(
		d, chain, registry, trivialEnsemble(), c.Emission,
		consensus.Config{
			FinalizationLagRounds: c.Consensus.FinalizationLagRounds,
			TopKCandidates:        c.Consensus.TopKCandidates,
			ShadowCount:           c.Consensus.ShadowCount,
		},
		logger, ids.EmptyStateRoot,
	)

	// laggardSampler draws a small, seeded-but-non-consensus subset of
	// validators per round to report degraded telemetry, so the printed
	// simulation output varies realistically instead of every validator
	// reporting identical numbers every round. This sampling never
	// reaches the finalizer's deterministic inputs themselves -- it only
	// shapes the synthetic telemetry this CLI feeds in.
	laggardSampler := sampler.NewDeterministicUniform(int64(validatorCount))
	if err := laggardSampler.Initialize(validatorCount); err != nil {
		return fmt.Errorf("initializing laggard sampler: %w", err)
	}
	laggardCount := validatorCount / 5

	tip := genesis.ID
	var unpersisted []dag.Block
	for round := uint64(1); round <= rounds; round++ {
		proposer := validatorIDs[int(round)%len(validatorIDs)]
		block := dag.Block{
			ID:        syntheticBlockID(round, proposer),
			Parents:   []ids.BlockID{tip},
			Proposer:  proposer,
			HashTimer: dag.HashTimer{Round: round},
		}
		header := block.ID[:]
		sig := ed25519.Sign(signingKeys[proposer], header)
		sigValid := signing.VerifyBlockHeader(verifyKeys[proposer], header, sig)
		if err := d.Ingest(block, round, sigValid, true); err != nil {
			return fmt.Errorf("ingesting block for round %d: %w", round, err)
		}
		tip = block.ID

		laggards := map[int]bool{}
		if laggardCount > 0 {
			if idx, ok := laggardSampler.Sample(laggardCount); ok {
				for _, i := range idx {
					laggards[i] = true
				}
			}
		}

		reports := make(map[ids.ValidatorID]telemetry.Report, len(validatorIDs))
		for i, id := range validatorIDs {
			report := telemetry.Report{
				LatencyMicros:     50_000,
				UptimeRatio:       fixed.One,
				PeerEntropy:       fixed.FromRatio(1, 2),
				ValidatedBlocks:   1,
				NormalizedStake:   fixed.FromRatio(1, int64(len(validatorIDs))),
				PeerReportQuality: fixed.One,
			}
			if laggards[i] {
				report.LatencyMicros = 500_000
				report.UptimeRatio = fixed.FromRatio(9, 10)
				report.MissedBlocks = 1
			}
			reports[id] = report
		}

		result, dist, err := finalizer.FinalizeRound(round, reports, units.Zero)
		if err != nil {
			return fmt.Errorf("finalizing round %d: %w", round, err)
		}

		store := context.Store(ctx)
		unpersisted = append(unpersisted, block)
		kept := unpersisted[:0]
		for _, b := range unpersisted {
			if !d.IsFinalized(b.ID) {
				kept = append(kept, b)
				continue
			}
			if err := store.PutFinalizedBlock(b); err != nil {
				return fmt.Errorf("persisting finalized block for round %d: %w", b.HashTimer.Round, err)
			}
		}
		unpersisted = kept
		snap := storage.ChainStateSnapshot{
			TotalIssuedMicro:  chain.TotalIssued().String(),
			LastUpdatedRound:  chain.LastUpdatedRound(),
			DividendPoolMicro: chain.DividendPool().String(),
		}
		if err := store.PutChainState(round, snap); err != nil {
			return fmt.Errorf("persisting chain state for round %d: %w", round, err)
		}

		fmt.Printf("round %d: primary=%s shadows=%d reward=%s state_root=%s\n",
			round, result.Primary.String(), len(result.Shadows), dist.Reward.String(), finalizer.LastStateRoot().String())
	}

	latestRound, latestSnap, err := context.Store(ctx).LatestChainState()
	if err == nil {
		context.Logger(ctx).Info("simulation persisted chain state",
			log.F("round", latestRound), log.F("total_issued_micro", latestSnap.TotalIssuedMicro))
	}
	return nil
}

// syntheticKeySeed derives a deterministic 32-byte Ed25519 seed for
// synthetic validator i, so repeated simulation runs sign and verify
// identically without needing real key management.
func syntheticKeySeed(i int) []byte {
	digest := xhash.SumAll([]byte("IPPAN-DLC-SIM-KEY"), []byte{byte(i >> 8), byte(i)})
	return digest[:]
}

func syntheticValidatorID(i int) ids.ValidatorID {
	digest := xhash.SumAll([]byte("IPPAN-DLC-SIM-VALIDATOR"), []byte{byte(i >> 8), byte(i)})
	return ids.ValidatorID(digest)
}

func syntheticBlockID(round uint64, proposer ids.ValidatorID) ids.BlockID {
	var roundBytes [8]byte
	for i := range roundBytes {
		roundBytes[i] = byte(round >> (8 * i))
	}
	digest := xhash.SumAll([]byte("IPPAN-DLC-SIM-BLOCK"), roundBytes[:], proposer[:])
	return ids.BlockID(digest)
}
