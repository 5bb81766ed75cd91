// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package validators implements the validator registry: bonding,
// activation, status lifecycle, and slashing.
package validators

import (
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/units"
)

// Status is a validator's position in the bonding lifecycle.
type Status int

const (
	// StatusBondedInactive is a newly registered validator awaiting the
	// next round boundary to become Active.
	StatusBondedInactive Status = iota
	// StatusActive validators are scored and eligible for selection.
	StatusActive
	// StatusSlashed validators are excluded from selection until their
	// cool-off period elapses.
	StatusSlashed
	// StatusWithdrawing validators have requested withdrawal and are
	// unbonding; they are not eligible for selection.
	StatusWithdrawing
)

func (s Status) String() string {
	switch s {
	case StatusBondedInactive:
		return "bonded-inactive"
	case StatusActive:
		return "active"
	case StatusSlashed:
		return "slashed"
	case StatusWithdrawing:
		return "withdrawing"
	default:
		return "unknown"
	}
}

// Validator is one registered validator's bonding state.
type Validator struct {
	ID               ids.ValidatorID
	Bond             units.Atomic
	ActivationRound  uint64
	Status           Status
	WithdrawRequestedRound uint64
	SlashedRound     uint64
	CoolOffUntilRound uint64
}

// BondingParams configures MIN_BOND/MAX_BOND, unbonding and slashing
// cool-off periods, and the slashing penalty rates for double-sign,
// invalid-block, and downtime offenses, all expressed in basis points of
// the offending validator's bond.
type BondingParams struct {
	MinBond               units.Atomic `json:"min_bond_micro" yaml:"min_bond_micro"`
	MaxBond               units.Atomic `json:"max_bond_micro" yaml:"max_bond_micro"`
	UnbondingRounds       uint64       `json:"unbonding_rounds" yaml:"unbonding_rounds"`
	SlashingCoolOffRounds uint64       `json:"slashing_cool_off_rounds" yaml:"slashing_cool_off_rounds"`
	DoubleSignBps         uint16       `json:"double_sign_bps" yaml:"double_sign_bps"`
	InvalidBlockBps       uint16       `json:"invalid_block_bps" yaml:"invalid_block_bps"`
	DowntimeBps           uint16       `json:"downtime_bps" yaml:"downtime_bps"`
}

// OffenseKind identifies the trigger for a slashing event.
type OffenseKind int

const (
	OffenseDoubleSign OffenseKind = iota
	OffenseInvalidBlock
	OffenseDowntime
)

func (k OffenseKind) bps(p BondingParams) uint16 {
	switch k {
	case OffenseDoubleSign:
		return p.DoubleSignBps
	case OffenseInvalidBlock:
		return p.InvalidBlockBps
	case OffenseDowntime:
		return p.DowntimeBps
	default:
		return 0
	}
}
