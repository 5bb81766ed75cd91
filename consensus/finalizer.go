// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import (
	"sync"

	"github.com/ippan/dlc/dag"
	"github.com/ippan/dlc/emission"
	"github.com/ippan/dlc/fixed"
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/log"
	"github.com/ippan/dlc/metrics"
	"github.com/ippan/dlc/model"
	"github.com/ippan/dlc/selection"
	"github.com/ippan/dlc/telemetry"
	"github.com/ippan/dlc/units"
	"github.com/ippan/dlc/utils/set"
	"github.com/ippan/dlc/validators"
	"github.com/ippan/dlc/xhash"
)

// Config is the subset of the engine's configuration that the round
// finalizer itself consumes.
type Config struct {
	FinalizationLagRounds uint64
	TopKCandidates        int
	ShadowCount           int
}

// RoundFinalizer drives emission and verifier selection at each round
// boundary: block ingestion -> at round boundary: collect telemetry ->
// fairness scores -> DAG canonical-tip selection -> finalize blocks whose
// HashTimer round <= R-L -> emission for R -> distribution to participants
// of R -> state root update -> verifier selection for R+1.
type RoundFinalizer struct {
	mu sync.Mutex

	DAG            *dag.DAG
	Chain          *emission.ChainState
	Registry       *validators.Registry
	Model          model.Ensemble
	EmissionParams emission.Params
	Config         Config
	Logger         log.Logger
	// Metrics is optional; when set, FinalizeRound updates it after every
	// round it applies (a repeated call for an already-applied round leaves
	// it unchanged).
	Metrics *metrics.Engine
	// ModelDigest is the hash-pinned digest of the loaded model artifact,
	// surfaced read-only via ModelDigestHex for the model.digest_hex
	// observability view. NewRoundFinalizer leaves it zero; the caller
	// assigns it after construction, and FinalizeRound never mutates it.
	ModelDigest xhash.Digest

	lastStateRoot ids.StateRoot
	lastSeed      [32]byte
	disputed      set.Set[ids.BlockID]
}

// NewRoundFinalizer constructs a RoundFinalizer. priorStateRoot is the
// state root as of round -1 (the genesis seed).
func NewRoundFinalizer(
	d *dag.DAG,
	chain *emission.ChainState,
	registry *validators.Registry,
	m model.Ensemble,
	emissionParams emission.Params,
	cfg Config,
	logger log.Logger,
	priorStateRoot ids.StateRoot,
) *RoundFinalizer {
	if logger == nil {
		logger = log.NoOp()
	}
	return &RoundFinalizer{
		DAG:            d,
		Chain:          chain,
		Registry:       registry,
		Model:          m,
		EmissionParams: emissionParams,
		Config:         cfg,
		Logger:         logger,
		lastStateRoot:  priorStateRoot,
		disputed:       set.NewSet[ids.BlockID](0),
	}
}

// MarkDisputed records that a majority of shadow verifiers have flagged
// blockID; it contributes zero weight to canonical-tip scoring from then on.
// There is no operation that removes a block from the disputed set.
func (f *RoundFinalizer) MarkDisputed(blockID ids.BlockID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disputed.Add(blockID)
	if f.Metrics != nil {
		f.Metrics.ShadowDisputesTotal.Inc()
	}
}

// FinalizeRound runs the full per-round data flow for round R. telemetry
// carries one Report per Active validator observed this round; feesMicro
// is the total fees collected by blocks finalized in this call.
//
// Every in-domain report is scored and its validator is a selection
// candidate: FinalizeRound does not check the registry status of the
// validators in reports, so a Slashed or Withdrawing validator that has a
// report is not excluded.
//
// It returns the verifier selection computed for round R+1 (the pure
// function of finalized_state_root(R), round R+1, the active validator
// set, and the model — testable property 6) and the emission distribution
// applied for round R.
func (f *RoundFinalizer) FinalizeRound(
	round uint64,
	reports map[ids.ValidatorID]telemetry.Report,
	feesMicro units.Atomic,
) (selection.Result, emission.Distribution, error) {
	if len(reports) == 0 {
		return selection.Result{}, emission.Distribution{}, ErrNoTelemetry
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.Registry.ActivatePending(round)

	scores, err := f.computeScoresLocked(reports)
	if err != nil {
		return selection.Result{}, emission.Distribution{}, err
	}

	canonicalTip, err := f.DAG.CanonicalTip(scores, f.disputed)
	if err != nil {
		return selection.Result{}, emission.Distribution{}, err
	}
	tipBlock, _ := f.DAG.GetBlock(canonicalTip)

	if round >= f.Config.FinalizationLagRounds {
		finalizeThrough := round - f.Config.FinalizationLagRounds
		finalized := f.DAG.FinalizeThroughRound(finalizeThrough)
		f.Logger.Info("finalized blocks", log.F("round", finalizeThrough), log.F("count", len(finalized)))
	}

	reward := emission.RewardForRound(f.EmissionParams, round, f.Chain.TotalIssued())
	shadowScores := scoresForShadows(scores, tipBlock.Proposer)
	distribution := emission.Distribute(f.EmissionParams, reward, feesMicro, shadowScores)

	applyErr := f.Chain.ApplyRound(round, tipBlock.Proposer, distribution)
	if applyErr != nil && applyErr != emission.ErrRoundAlreadyApplied {
		return selection.Result{}, emission.Distribution{}, applyErr
	}

	f.lastStateRoot = ComputeStateRoot(round, canonicalTip, f.Chain.TotalIssued().String())
	seedDigest := selection.DeriveSeed(f.lastStateRoot, round+1)
	f.lastSeed = seedDigest

	result, err := selection.Select(scores, seedDigest, f.Config.TopKCandidates, f.Config.ShadowCount)
	if err != nil {
		return selection.Result{}, distribution, err
	}

	if applyErr == nil {
		f.recordMetricsLocked(round, distribution)
	}
	return result, distribution, nil
}

func (f *RoundFinalizer) recordMetricsLocked(round uint64, d emission.Distribution) {
	if f.Metrics == nil {
		return
	}
	f.Metrics.IssuedMicroTotal.Add(float64(d.Reward.Uint64()))
	f.Metrics.BurnedMicroTotal.Add(float64(d.BurnedFees.Uint64()))
	f.Metrics.DividendPoolMicro.Set(float64(f.Chain.DividendPool().Uint64()))
	f.Metrics.FinalizedRound.Set(float64(round))
	f.Metrics.PendingBlocks.Set(float64(f.DAG.PendingCount()))
}

// LastStateRoot returns the state root as of the most recently finalized
// round.
func (f *RoundFinalizer) LastStateRoot() ids.StateRoot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastStateRoot
}

// LastSeedHex returns the hex-encoded verifier-selection seed most
// recently derived by FinalizeRound, matching the selection.last_seed_hex
// observability view.
func (f *RoundFinalizer) LastSeedHex() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return xhash.Digest(f.lastSeed).Hex()
}

// ModelDigestHex returns the hex-encoded digest of the loaded model
// artifact, matching the model.digest_hex observability view.
func (f *RoundFinalizer) ModelDigestHex() string {
	return f.ModelDigest.Hex()
}

func (f *RoundFinalizer) computeScoresLocked(reports map[ids.ValidatorID]telemetry.Report) (map[ids.ValidatorID]fixed.Fixed, error) {
	latencies := make([]int64, 0, len(reports))
	for _, r := range reports {
		latencies = append(latencies, r.LatencyMicros)
	}
	median := telemetry.MedianLatency(latencies)

	features := make(map[ids.ValidatorID][]fixed.Fixed, len(reports))
	for validator, r := range reports {
		if err := r.Validate(); err != nil {
			continue
		}
		normalized := telemetry.Normalize(r, median)
		features[validator] = normalized[:]
	}
	return model.ComputeScores(f.Model, features)
}

// scoresForShadows returns the subset of scores excluding the proposer,
// since the proposer is compensated separately by ProposerShare. Every
// other scored validator is in the result, so the verifier share is split
// among all of them; the shadows selected for the round are not consulted.
func scoresForShadows(scores map[ids.ValidatorID]fixed.Fixed, proposer ids.ValidatorID) map[ids.ValidatorID]fixed.Fixed {
	out := make(map[ids.ValidatorID]fixed.Fixed, len(scores))
	for id, s := range scores {
		if id == proposer {
			continue
		}
		out[id] = s
	}
	return out
}
