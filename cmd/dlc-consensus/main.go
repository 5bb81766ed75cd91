// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command dlc-consensus runs and inspects the DLC round-finalization
// engine: validating a configuration file, or serving a health and
// metrics endpoint backed by a live RoundFinalizer.
package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ippan/dlc/api"
	"github.com/ippan/dlc/config"
	"github.com/ippan/dlc/consensus"
	"github.com/ippan/dlc/dag"
	"github.com/ippan/dlc/emission"
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/log"
	"github.com/ippan/dlc/metrics"
	"github.com/ippan/dlc/model"
	"github.com/ippan/dlc/validators"
	"github.com/ippan/dlc/xhash"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dlc-consensus",
		Short: "Validate and run the IPPAN deterministic learning consensus engine",
	}
	root.AddCommand(newValidateConfigCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newSimulateCmd())
	return root
}

func newValidateConfigCmd() *cobra.Command {
	var (
		path   string
		preset string
	)
	cmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Load a YAML configuration file as an override on a preset, and validate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(path, preset)
			if err != nil {
				return err
			}
			fmt.Printf("config valid: %d shadows, top-%d candidates, %d round finalization lag\n",
				c.Consensus.ShadowCount, c.Consensus.TopKCandidates, c.Consensus.FinalizationLagRounds)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "config", "", "path to a YAML configuration file layered on top of --preset")
	cmd.Flags().StringVar(&preset, "preset", "mainnet", "base preset: mainnet, testnet, local")
	return cmd
}

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		preset     string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a health and metrics endpoint backed by a fresh engine instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(configPath, preset)
			if err != nil {
				return err
			}

			logger, err := log.NewProduction()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			engine, err := metrics.NewEngine(reg)
			if err != nil {
				return err
			}

			ensemble, modelDigest, err := loadModel(c.Model)
			if err != nil {
				return err
			}

			genesis := dag.Block{ID: ids.EmptyBlockID}
			d := dag.NewDAG(genesis)
			chain := emission.NewChainState()
			registry := validators.NewRegistry(c.Bonding)

			finalizer := consensus.NewRoundFinalizer(
				d, chain, registry, ensemble, c.Emission,
				consensus.Config{
					FinalizationLagRounds: c.Consensus.FinalizationLagRounds,
					TopKCandidates:        c.Consensus.TopKCandidates,
					ShadowCount:           c.Consensus.ShadowCount,
				},
				logger, ids.EmptyStateRoot,
			)
			finalizer.Metrics = engine
			finalizer.ModelDigest = modelDigest

			checker := api.FinalizerHealth{
				LastRound: func() uint64 { return chain.LastUpdatedRound() },
				LastRoot:  func() string { return finalizer.LastStateRoot().String() },
				LastSeed:  finalizer.LastSeedHex,
				ModelHash: finalizer.ModelDigestHex,
			}

			server := api.NewServer(addr, checker, reg)
			logger.Info("serving health and metrics", log.F("addr", addr))
			return server.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML configuration file layered on top of --preset")
	cmd.Flags().StringVar(&preset, "preset", "local", "built-in base preset: mainnet, testnet, local")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address for the health/metrics endpoint")
	return cmd
}

func loadConfig(path, preset string) (config.Config, error) {
	base, err := presetConfig(preset)
	if err != nil {
		return config.Config{}, err
	}
	if path == "" {
		return base, nil
	}
	return config.LoadOnto(path, base)
}

func presetConfig(preset string) (config.Config, error) {
	switch preset {
	case "mainnet":
		return config.Mainnet(), nil
	case "testnet":
		return config.Testnet(), nil
	case "local":
		return config.Local(), nil
	default:
		return config.Config{}, fmt.Errorf("unknown preset %q", preset)
	}
}

func newSimulateCmd() *cobra.Command {
	var (
		preset         string
		rounds         uint64
		validatorCount int
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run N synthetic rounds against in-memory collaborators and print the emission/selection output",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := presetConfig(preset)
			if err != nil {
				return err
			}
			return runSimulation(c, rounds, validatorCount)
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "local", "base preset: mainnet, testnet, local")
	cmd.Flags().Uint64Var(&rounds, "rounds", 10, "number of synthetic rounds to finalize")
	cmd.Flags().IntVar(&validatorCount, "validators", 5, "number of synthetic validators to bond and activate")
	return cmd
}

// loadModel reads and hash-verifies the model artifact named by cfg,
// returning the ensemble plus the digest it was pinned against (the
// model.digest_hex observability view). When cfg.Path is empty (e.g. a
// bare preset with no artifact wired in yet) it falls back to a trivial
// single-leaf ensemble whose digest is the hash of its own canonical JSON
// encoding, so serve can still start.
func loadModel(cfg config.ModelConfig) (model.Ensemble, xhash.Digest, error) {
	if cfg.Path == "" {
		ensemble := trivialEnsemble()
		encoded, err := model.EncodeJSON(ensemble)
		if err != nil {
			return model.Ensemble{}, xhash.Digest{}, err
		}
		return ensemble, xhash.Sum(encoded), nil
	}
	expected, err := xhash.DigestFromHex(cfg.ExpectedHash)
	if err != nil {
		return model.Ensemble{}, xhash.Digest{}, fmt.Errorf("model: parsing expected_hash: %w", err)
	}
	raw, err := os.ReadFile(cfg.Path)
	if err != nil {
		return model.Ensemble{}, xhash.Digest{}, err
	}
	ensemble, err := model.Load(raw, model.EncodingJSON, expected)
	if err != nil {
		return model.Ensemble{}, xhash.Digest{}, err
	}
	return ensemble, expected, nil
}
