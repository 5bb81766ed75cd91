// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package emission implements the per-round emission schedule, fee cap,
// proposer/verifier reward split, and network-dividend pool.
package emission

import (
	"errors"
	"fmt"

	"github.com/ippan/dlc/units"
	safemath "github.com/ippan/dlc/utils/math"
)

// ExcessFeeRouting selects where fees above the fee cap go, defaulting to
// Burn.
type ExcessFeeRouting int

const (
	ExcessFeeBurn ExcessFeeRouting = iota
	ExcessFeeDividend
)

// Params is the full emission configuration.
type Params struct {
	InitialRoundRewardMicro units.Atomic      `json:"initial_round_reward_micro" yaml:"initial_round_reward_micro"`
	HalvingIntervalRounds   uint64            `json:"halving_interval_rounds" yaml:"halving_interval_rounds"`
	SupplyCapMicro          units.Atomic      `json:"supply_cap_micro" yaml:"supply_cap_micro"`
	FeeCapNumer             uint64            `json:"fee_cap_numer" yaml:"fee_cap_numer"`
	FeeCapDenom             uint64            `json:"fee_cap_denom" yaml:"fee_cap_denom"`
	ProposerWeightBps       uint16            `json:"proposer_weight_bps" yaml:"proposer_weight_bps"`
	VerifierWeightBps       uint16            `json:"verifier_weight_bps" yaml:"verifier_weight_bps"`
	DividendFractionBps     uint16            `json:"dividend_fraction_bps" yaml:"dividend_fraction_bps"`
	DividendIntervalRounds  uint64            `json:"dividend_interval_rounds" yaml:"dividend_interval_rounds"`
	ExcessFeeRouting        ExcessFeeRouting  `json:"excess_fee_routing" yaml:"excess_fee_routing"`
}

// ErrInvalidParams is returned by Validate; wrapped with a descriptive
// reason.
var ErrInvalidParams = errors.New("emission: invalid parameters")

// Validate enforces the cross-field invariants: proposer+verifier weights
// sum to exactly 10000 bps, fee-cap numerator <= denominator, supply cap
// positive, halving interval positive. An engine with invalid params
// refuses to start.
func (p Params) Validate() error {
	weightSum, err := safemath.Add64(uint64(p.ProposerWeightBps), uint64(p.VerifierWeightBps))
	if err != nil || weightSum != 10_000 {
		return wrap("proposer_weight_bps + verifier_weight_bps must equal 10000")
	}
	if p.FeeCapDenom == 0 {
		return wrap("fee_cap_denom must be nonzero")
	}
	if p.FeeCapNumer > p.FeeCapDenom {
		return wrap("fee_cap_numer must be <= fee_cap_denom")
	}
	if p.HalvingIntervalRounds == 0 {
		return wrap("halving_interval_rounds must be nonzero")
	}
	if p.SupplyCapMicro.IsZero() {
		return wrap("supply_cap_micro must be nonzero")
	}
	if p.DividendFractionBps > 10_000 {
		return wrap("dividend.emission_fraction_bps must be <= 10000")
	}
	return nil
}

func wrap(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, reason)
}

// Mainnet returns the default mainnet emission parameters: 21 trillion
// micro-IPN supply cap, 5% dividend fraction, burn routing for excess fees.
func Mainnet() Params {
	cap, _ := units.FromDecimalString("21000000000000")
	return Params{
		InitialRoundRewardMicro: units.FromUint64(10_000),
		HalvingIntervalRounds:   2_102_400, // roughly one halving per year at 1 round/15s
		SupplyCapMicro:          cap,
		FeeCapNumer:             1,
		FeeCapDenom:             10,
		ProposerWeightBps:       2_000,
		VerifierWeightBps:       8_000,
		DividendFractionBps:     500,
		DividendIntervalRounds:  2_880, // roughly every 12 hours at 1 round/15s
		ExcessFeeRouting:        ExcessFeeBurn,
	}
}
