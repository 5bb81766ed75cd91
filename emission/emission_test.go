// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emission

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ippan/dlc/fixed"
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/units"
)

func s1Params() Params {
	return Params{
		InitialRoundRewardMicro: units.FromUint64(10_000),
		HalvingIntervalRounds:   8,
		SupplyCapMicro:          units.FromUint64(1_000_000),
		FeeCapNumer:             1,
		FeeCapDenom:             10,
		ProposerWeightBps:       2_000,
		VerifierWeightBps:       8_000,
		DividendFractionBps:     500,
		DividendIntervalRounds:  8,
		ExcessFeeRouting:        ExcessFeeBurn,
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	p := s1Params()
	p.VerifierWeightBps = 7_999
	require.ErrorIs(t, p.Validate(), ErrInvalidParams)
}

func TestValidateAcceptsS1Params(t *testing.T) {
	require.NoError(t, s1Params().Validate())
}

// S1 — Basic emission.
func TestS1BasicEmission(t *testing.T) {
	params := s1Params()
	proposer := ids.ValidatorID{0x01}
	shadowA := ids.ValidatorID{0x02}
	shadowB := ids.ValidatorID{0x03}
	shadowC := ids.ValidatorID{0x04}
	scores := map[ids.ValidatorID]fixed.Fixed{
		shadowA: fixed.One,
		shadowB: fixed.One,
		shadowC: fixed.One,
	}

	state := NewChainState()
	for round := uint64(0); round < 8; round++ {
		reward := RewardForRound(params, round, state.TotalIssued())
		require.Equal(t, units.FromUint64(10_000), reward)

		d := Distribute(params, reward, units.Zero, scores)
		require.Equal(t, units.FromUint64(1_900), d.ProposerShare)
		for _, id := range []ids.ValidatorID{shadowA, shadowB, shadowC} {
			require.Equal(t, units.FromUint64(2_533), d.ShadowPayouts[id])
		}
		// 500 fraction + 1 rounding remainder (7600 - 3*2533 = 1)
		require.Equal(t, units.FromUint64(501), d.DividendCredit)

		require.NoError(t, state.ApplyRound(round, proposer, d))
	}

	require.Equal(t, units.FromUint64(80_000), state.TotalIssued())
	require.Equal(t, units.FromUint64(501*8), state.DividendPool())
}

// S2 — Halving boundary.
func TestS2HalvingBoundary(t *testing.T) {
	params := s1Params()
	state := NewChainState()
	for round := uint64(0); round < 8; round++ {
		reward := RewardForRound(params, round, state.TotalIssued())
		d := Distribute(params, reward, units.Zero, nil)
		require.NoError(t, state.ApplyRound(round, ids.ValidatorID{0x01}, d))
	}
	require.Equal(t, units.FromUint64(80_000), state.TotalIssued())

	reward9 := RewardForRound(params, 8, state.TotalIssued())
	require.Equal(t, units.FromUint64(5_000), reward9)
}

// S3 — Supply cap.
func TestS3SupplyCap(t *testing.T) {
	params := Params{
		InitialRoundRewardMicro: units.FromUint64(100),
		HalvingIntervalRounds:   1_000_000,
		SupplyCapMicro:          units.FromUint64(250),
		FeeCapNumer:             1,
		FeeCapDenom:             1,
		ProposerWeightBps:       10_000,
		VerifierWeightBps:       0,
		DividendFractionBps:     0,
	}
	require.NoError(t, params.Validate())

	state := NewChainState()
	expected := []uint64{100, 100, 50, 0, 0, 0}
	for round, want := range expected {
		reward := RewardForRound(params, uint64(round), state.TotalIssued())
		require.Equal(t, units.FromUint64(want), reward, "round %d", round)

		d := Distribute(params, reward, units.Zero, nil)
		require.False(t, d.ProposerShare.Lt(units.Zero), "payout never negative")
		require.NoError(t, state.ApplyRound(uint64(round), ids.ValidatorID{0x01}, d))
	}
	require.Equal(t, units.FromUint64(250), state.TotalIssued())
}

// S4 — Fee cap.
func TestS4FeeCap(t *testing.T) {
	params := Params{
		InitialRoundRewardMicro: units.FromUint64(1_000),
		HalvingIntervalRounds:   1_000_000,
		SupplyCapMicro:          units.FromUint64(1_000_000_000),
		FeeCapNumer:             1,
		FeeCapDenom:             10,
		ProposerWeightBps:       10_000,
		VerifierWeightBps:       0,
		DividendFractionBps:     0,
		ExcessFeeRouting:        ExcessFeeBurn,
	}
	require.NoError(t, params.Validate())

	reward := RewardForRound(params, 0, units.Zero)
	require.Equal(t, units.FromUint64(1_000), reward)

	d := Distribute(params, reward, units.FromUint64(10_000), nil)
	require.Equal(t, units.FromUint64(100), d.CappedFees)
	require.Equal(t, units.FromUint64(1_100), d.Total)
	require.Equal(t, units.FromUint64(9_900), d.BurnedFees)

	sum := d.ProposerShare.Add(d.DividendCredit).Add(d.BurnedFees)
	require.Equal(t, units.FromUint64(11_000), sum)
}

func TestRewardForRoundIsPure(t *testing.T) {
	params := s1Params()
	a := RewardForRound(params, 3, units.FromUint64(5_000))
	b := RewardForRound(params, 3, units.FromUint64(5_000))
	require.Equal(t, a, b)
}

func TestApplyRoundRejectsDoubleApply(t *testing.T) {
	params := s1Params()
	state := NewChainState()
	reward := RewardForRound(params, 0, units.Zero)
	d := Distribute(params, reward, units.Zero, nil)

	require.NoError(t, state.ApplyRound(0, ids.ValidatorID{0x01}, d))
	require.ErrorIs(t, state.ApplyRound(0, ids.ValidatorID{0x01}, d), ErrRoundAlreadyApplied)
}

func TestCreditDividendAndSweep(t *testing.T) {
	state := NewChainState()
	state.CreditDividend(units.FromUint64(300))
	require.Equal(t, units.FromUint64(300), state.DividendPool())

	idA := ids.ValidatorID{0x01}
	idB := ids.ValidatorID{0x02}
	payouts := state.SweepDividend([]ids.ValidatorID{idB, idA})
	require.Equal(t, units.FromUint64(150), payouts[idA])
	require.Equal(t, units.FromUint64(150), payouts[idB])
	require.True(t, state.DividendPool().IsZero())
}
