// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emission

import "github.com/ippan/dlc/units"

// RewardForRound computes reward(R) = initial_round_reward_micro shifted
// right by (R / halving_interval_rounds), clamped so that
// issuedSoFar + reward never exceeds params.SupplyCapMicro. It is a pure
// function of (round, params, issuedSoFar): calling it twice with the same
// arguments always returns the same value.
func RewardForRound(params Params, round uint64, issuedSoFar units.Atomic) units.Atomic {
	epoch := round / params.HalvingIntervalRounds
	reward := params.InitialRoundRewardMicro.Rsh(uint(epoch))

	remainingToCap := params.SupplyCapMicro.Sub(issuedSoFar)
	if reward.Gt(remainingToCap) {
		return remainingToCap
	}
	return reward
}
