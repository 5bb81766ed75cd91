// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emission

import (
	"sort"
	"sync"

	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/units"
)

// ChainState is the single logical owner of issuance, per-validator
// accumulated rewards, and the network-dividend pool. Reads may happen
// concurrently; ApplyRound requires exclusive access, taken internally.
type ChainState struct {
	mu sync.RWMutex

	totalIssued      units.Atomic
	lastUpdatedRound uint64
	hasApplied       bool
	accumulated      map[ids.ValidatorID]units.Atomic
	dividendPool     units.Atomic
	dividendHistory  map[uint64]units.Atomic
}

// NewChainState returns a zeroed ChainState.
func NewChainState() *ChainState {
	return &ChainState{
		accumulated:     make(map[ids.ValidatorID]units.Atomic),
		dividendHistory: make(map[uint64]units.Atomic),
	}
}

// TotalIssued returns total_issued_micro.
func (s *ChainState) TotalIssued() units.Atomic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalIssued
}

// LastUpdatedRound returns the last round ApplyRound was called for.
func (s *ChainState) LastUpdatedRound() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdatedRound
}

// AccumulatedReward returns validator's total accumulated reward across all
// rounds applied so far.
func (s *ChainState) AccumulatedReward(validator ids.ValidatorID) units.Atomic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accumulated[validator]
}

// DividendPool returns the current dividend pool balance.
func (s *ChainState) DividendPool() units.Atomic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dividendPool
}

// DividendHistory returns the dividend credited in round, or zero if none.
func (s *ChainState) DividendHistory(round uint64) units.Atomic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dividendHistory[round]
}

// ApplyRound credits proposer with d.ProposerShare, each shadow with its
// ShadowPayouts entry, folds d.DividendCredit into the pool and into the
// round's dividend history entry, and advances total_issued_micro by
// d.Reward (fees are not new issuance: they are already-circulating
// supply). Calling ApplyRound twice for the same round is rejected
// rather than double-crediting.
func (s *ChainState) ApplyRound(round uint64, proposer ids.ValidatorID, d Distribution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasApplied && round <= s.lastUpdatedRound {
		return ErrRoundAlreadyApplied
	}

	// The supply cap is enforced upstream by RewardForRound's clamp;
	// ChainState only accumulates what it is given.
	s.totalIssued = s.totalIssued.Add(d.Reward)

	s.accumulated[proposer] = s.accumulated[proposer].Add(d.ProposerShare)

	ordered := make([]ids.ValidatorID, 0, len(d.ShadowPayouts))
	for id := range d.ShadowPayouts {
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Less(ordered[j]) })
	for _, id := range ordered {
		s.accumulated[id] = s.accumulated[id].Add(d.ShadowPayouts[id])
	}

	s.dividendPool = s.dividendPool.Add(d.DividendCredit)
	s.dividendHistory[round] = s.dividendHistory[round].Add(d.DividendCredit)
	s.lastUpdatedRound = round
	s.hasApplied = true
	return nil
}

// CreditDividend adds amount to the dividend pool directly, used for
// slashed bonds (slashed amounts are credited to the dividend pool, never
// to other validators).
func (s *ChainState) CreditDividend(amount units.Atomic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dividendPool = s.dividendPool.Add(amount)
}

// SweepDividend empties the dividend pool, splitting it evenly (by count,
// deterministic id order, remainder to the last recipient) across
// recipients, for the periodic distribution sweep configured by
// dividend.distribution_interval_rounds. It returns the per-recipient
// payout map and credits the chain state's accumulated rewards accordingly.
func (s *ChainState) SweepDividend(recipients []ids.ValidatorID) map[ids.ValidatorID]units.Atomic {
	s.mu.Lock()
	defer s.mu.Unlock()

	payouts := make(map[ids.ValidatorID]units.Atomic, len(recipients))
	if len(recipients) == 0 || s.dividendPool.IsZero() {
		return payouts
	}
	ordered := append([]ids.ValidatorID(nil), recipients...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Less(ordered[j]) })

	share := s.dividendPool.MulDivFloor(1, uint64(len(ordered)))
	distributed := units.Zero
	for i, id := range ordered {
		amt := share
		if i == len(ordered)-1 {
			amt = s.dividendPool.Sub(distributed)
		}
		payouts[id] = amt
		distributed = distributed.Add(amt)
		s.accumulated[id] = s.accumulated[id].Add(amt)
	}
	s.dividendPool = units.Zero
	return payouts
}
