// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines the engine's full configuration surface and the
// mainnet/testnet/local presets, scoped to emission, bonding, consensus
// timing, and the model artifact.
package config

import (
	"time"

	"github.com/ippan/dlc/emission"
	"github.com/ippan/dlc/units"
	"github.com/ippan/dlc/validators"
)

// Config is the full configuration surface for one running engine
// instance.
type Config struct {
	Emission emission.Params          `json:"emission" yaml:"emission"`
	Bonding  validators.BondingParams `json:"bonding" yaml:"bonding"`

	Consensus ConsensusConfig `json:"consensus" yaml:"consensus"`
	Model     ModelConfig     `json:"model" yaml:"model"`
	LogLevel  string          `json:"log_level" yaml:"log_level"`
}

// ConsensusConfig configures the round-finalization flow in the consensus
// package: the finalization lag, round cadence, and verifier-selection
// sizing.
type ConsensusConfig struct {
	FinalizationLagRounds uint64        `json:"finalization_lag_rounds" yaml:"finalization_lag_rounds"`
	RoundWindow           time.Duration `json:"round_window_ms" yaml:"round_window_ms"`
	ShadowCount           int           `json:"shadow_count" yaml:"shadow_count"`
	TopKCandidates        int           `json:"top_k_candidates" yaml:"top_k_candidates"`
}

// ModelConfig locates and pins the D-GBDT artifact.
type ModelConfig struct {
	Path         string `json:"path" yaml:"path"`
	ExpectedHash string `json:"expected_hash" yaml:"expected_hash"`
}

// Mainnet returns the default mainnet configuration.
func Mainnet() Config {
	return Config{
		Emission: emission.Mainnet(),
		Bonding: validators.BondingParams{
			MinBond:               mustAtomic("1000000000"),    // 1,000 IPN
			MaxBond:               mustAtomic("10000000000000"), // 10,000,000 IPN
			UnbondingRounds:       40_320,                        // ~ 1 week at 1 round/15s
			SlashingCoolOffRounds: 2_880,                         // ~ 12 hours at 1 round/15s
			DoubleSignBps:         5_000,
			InvalidBlockBps:       1_000,
			DowntimeBps:           100,
		},
		Consensus: ConsensusConfig{
			FinalizationLagRounds: 6,
			RoundWindow:           15 * time.Second,
			ShadowCount:           4,
			TopKCandidates:        21,
		},
		Model:    ModelConfig{},
		LogLevel: "info",
	}
}

// Testnet returns a lower-stakes configuration with faster rounds and
// smaller bonds, suitable for public testnets.
func Testnet() Config {
	c := Mainnet()
	c.Bonding.MinBond = mustAtomic("1000000")
	c.Bonding.MaxBond = mustAtomic("1000000000000")
	c.Consensus.FinalizationLagRounds = 3
	c.Consensus.RoundWindow = 5 * time.Second
	c.Consensus.ShadowCount = 2
	c.Consensus.TopKCandidates = 11
	c.LogLevel = "debug"
	return c
}

// Local returns a configuration tuned for single-machine development and
// the determinism harness: short finalization lag, a single shadow, and
// verbose logging.
func Local() Config {
	c := Testnet()
	c.Consensus.FinalizationLagRounds = 1
	c.Consensus.RoundWindow = 200 * time.Millisecond
	c.Consensus.ShadowCount = 1
	c.Consensus.TopKCandidates = 5
	return c
}

func mustAtomic(s string) units.Atomic {
	v, ok := units.FromDecimalString(s)
	if !ok {
		panic("config: invalid built-in atomic literal " + s)
	}
	return v
}
