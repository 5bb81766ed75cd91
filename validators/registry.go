// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validators

import (
	"sort"
	"sync"

	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/units"
)

// Registry is the single logical owner of validator bonding state. Reads
// may happen concurrently; writes (Register, ActivatePending, Slash,
// RequestWithdraw, Withdraw) require the registry's exclusive lock, which
// this type takes internally so callers do not need their own
// synchronization.
type Registry struct {
	mu     sync.RWMutex
	params BondingParams
	byID   map[ids.ValidatorID]*Validator
}

// NewRegistry constructs an empty registry with the given bonding
// parameters.
func NewRegistry(params BondingParams) *Registry {
	return &Registry{
		params: params,
		byID:   make(map[ids.ValidatorID]*Validator),
	}
}

// Register bonds a new validator at currentRound. The validator becomes
// Active at currentRound+1 (the next round boundary).
func (r *Registry) Register(id ids.ValidatorID, bond units.Atomic, currentRound uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		return ErrAlreadyRegistered
	}
	if bond.Cmp(r.params.MinBond) < 0 || bond.Cmp(r.params.MaxBond) > 0 {
		return ErrBondOutOfRange
	}
	r.byID[id] = &Validator{
		ID:              id,
		Bond:            bond,
		ActivationRound: currentRound + 1,
		Status:          StatusBondedInactive,
	}
	return nil
}

// ActivatePending promotes every BondedInactive validator whose
// ActivationRound has arrived to Active. Called at every round boundary.
func (r *Registry) ActivatePending(currentRound uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range r.byID {
		if v.Status == StatusBondedInactive && v.ActivationRound <= currentRound {
			v.Status = StatusActive
		}
		if v.Status == StatusSlashed && v.CoolOffUntilRound <= currentRound && v.CoolOffUntilRound != 0 {
			v.Status = StatusActive
		}
	}
}

// Get returns a copy of the validator's state.
func (r *Registry) Get(id ids.ValidatorID) (Validator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return Validator{}, ErrValidatorUnknown
	}
	return *v, nil
}

// Active returns every Active validator, sorted by id so iteration order is
// deterministic across implementations and runs.
func (r *Registry) Active() []Validator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Validator, 0, len(r.byID))
	for _, v := range r.byID {
		if v.Status == StatusActive {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Less(out[j].ID) })
	return out
}

// RequestWithdraw moves an Active validator to Withdrawing as of
// currentRound; full refund is available after UnbondingRounds elapse.
func (r *Registry) RequestWithdraw(id ids.ValidatorID, currentRound uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byID[id]
	if !ok {
		return ErrValidatorUnknown
	}
	if v.Status != StatusActive && v.Status != StatusBondedInactive {
		return ErrValidatorInWrongState
	}
	v.Status = StatusWithdrawing
	v.WithdrawRequestedRound = currentRound
	return nil
}

// Withdraw releases the bond of a Withdrawing validator once
// UnbondingRounds have elapsed since RequestWithdraw, removing it from the
// registry and returning the refunded amount.
func (r *Registry) Withdraw(id ids.ValidatorID, currentRound uint64) (units.Atomic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byID[id]
	if !ok {
		return units.Zero, ErrValidatorUnknown
	}
	if v.Status != StatusWithdrawing {
		return units.Zero, ErrValidatorInWrongState
	}
	if currentRound < v.WithdrawRequestedRound+r.params.UnbondingRounds {
		return units.Zero, ErrValidatorInWrongState
	}
	refund := v.Bond
	delete(r.byID, id)
	return refund, nil
}

// Slash applies the configured penalty for kind to id's bond, moves it to
// Slashed with a cool-off until currentRound+SlashingCoolOffRounds, and
// returns the slashed amount so the caller can credit it to the network
// dividend pool (slashed amounts never go to other validators, to avoid
// perverse incentives).
func (r *Registry) Slash(id ids.ValidatorID, kind OffenseKind, currentRound uint64) (units.Atomic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byID[id]
	if !ok {
		return units.Zero, ErrValidatorUnknown
	}
	bps := kind.bps(r.params)
	penalty := v.Bond.MulDivFloor(uint64(bps), 10_000)
	v.Bond = v.Bond.Sub(penalty)
	v.Status = StatusSlashed
	v.SlashedRound = currentRound
	v.CoolOffUntilRound = currentRound + r.params.SlashingCoolOffRounds
	return penalty, nil
}
