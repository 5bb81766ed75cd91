// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

// Validate enforces the cross-field invariants of the full configuration
// surface: it delegates the emission block to emission.Params.Validate and
// adds the consensus-layer checks (shadow_count >= 1, top_k_candidates >
// shadow_count, a nonzero finalization lag and round window, and min bond
// <= max bond).
func (c Config) Validate() error {
	if err := c.Emission.Validate(); err != nil {
		return err
	}
	if c.Bonding.MinBond.Cmp(c.Bonding.MaxBond) > 0 {
		return wrap("bonding.min_bond_micro must be <= bonding.max_bond_micro")
	}
	if c.Bonding.UnbondingRounds == 0 {
		return wrap("bonding.unbonding_rounds must be nonzero")
	}
	if c.Consensus.ShadowCount < 1 {
		return wrap("consensus.shadow_count must be >= 1")
	}
	if c.Consensus.TopKCandidates <= c.Consensus.ShadowCount {
		return wrap("consensus.top_k_candidates must exceed consensus.shadow_count")
	}
	if c.Consensus.FinalizationLagRounds == 0 {
		return wrap("consensus.finalization_lag_rounds must be nonzero")
	}
	if c.Consensus.RoundWindow <= 0 {
		return wrap("consensus.round_window_ms must be positive")
	}
	return nil
}
