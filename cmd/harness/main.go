// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command harness replays the determinism golden vectors against a model
// artifact and a fixed verifier-selection scenario, exiting nonzero on any
// mismatch so it can gate a release pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ippan/dlc/harness"
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/model"
	"github.com/ippan/dlc/selection"
	"github.com/ippan/dlc/xhash"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		modelPath       string
		encodingName    string
		artifactDigest  string
		scoreDigest     string
		validatorCount  int
		selectionRound  uint64
		topK            int
		shadowCount     int
		expectedPrimary string
		expectedShadows []string
	)

	cmd := &cobra.Command{
		Use:   "harness",
		Short: "Run the model-digest and verifier-selection determinism checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := parseEncoding(encodingName)
			if err != nil {
				return err
			}
			artifact, err := xhash.DigestFromHex(artifactDigest)
			if err != nil {
				return fmt.Errorf("parsing --artifact-digest: %w", err)
			}
			score, err := xhash.DigestFromHex(scoreDigest)
			if err != nil {
				return fmt.Errorf("parsing --score-digest: %w", err)
			}

			scenario := harness.SelectionScenario{
				ValidatorCount: validatorCount,
				PriorRoot:      ids.EmptyStateRoot,
				Round:          selectionRound,
				TopK:           topK,
				ShadowCount:    shadowCount,
			}
			expected, err := parseSelectionResult(expectedPrimary, expectedShadows)
			if err != nil {
				return err
			}

			report, err := harness.Run(modelPath, enc, artifact, score, scenario, expected)
			if err != nil {
				return err
			}

			fmt.Printf("model score digest: got %s want %s\n", report.Model.Got.Hex(), report.Model.Expected.Hex())
			fmt.Printf("selection primary: %s\n", report.Selection.Primary.String())
			for _, s := range report.Selection.Shadows {
				fmt.Printf("selection shadow: %s\n", s.String())
			}

			if !report.Pass {
				return fmt.Errorf("harness: determinism check failed")
			}
			fmt.Println("harness: OK")
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "path to the model artifact")
	cmd.Flags().StringVar(&encodingName, "encoding", "json", "model artifact encoding: json or binary")
	cmd.Flags().StringVar(&artifactDigest, "artifact-digest", harness.KnownModelDigestHex, "expected BLAKE3 digest of the artifact's own bytes")
	cmd.Flags().StringVar(&scoreDigest, "score-digest", "", "expected BLAKE3 digest of the golden-vector scores")
	cmd.Flags().IntVar(&validatorCount, "validators", harness.DefaultSelectionScenario().ValidatorCount, "validator count for the selection scenario")
	cmd.Flags().Uint64Var(&selectionRound, "round", harness.DefaultSelectionScenario().Round, "round number for the selection scenario")
	cmd.Flags().IntVar(&topK, "top-k", harness.DefaultSelectionScenario().TopK, "top-K candidates for the selection scenario")
	cmd.Flags().IntVar(&shadowCount, "shadows", harness.DefaultSelectionScenario().ShadowCount, "shadow count for the selection scenario")
	cmd.Flags().StringVar(&expectedPrimary, "expected-primary", "", "expected primary validator id (hex)")
	cmd.Flags().StringSliceVar(&expectedShadows, "expected-shadow", nil, "expected shadow validator id (hex); repeatable")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("score-digest")
	_ = cmd.MarkFlagRequired("expected-primary")

	return cmd
}

func parseEncoding(name string) (model.Encoding, error) {
	switch name {
	case "json":
		return model.EncodingJSON, nil
	case "binary":
		return model.EncodingBinary, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q", name)
	}
}

func parseSelectionResult(primaryHex string, shadowHex []string) (selection.Result, error) {
	primary, err := parseValidatorID(primaryHex)
	if err != nil {
		return selection.Result{}, fmt.Errorf("parsing --expected-primary: %w", err)
	}
	shadows := make([]ids.ValidatorID, 0, len(shadowHex))
	for _, h := range shadowHex {
		id, err := parseValidatorID(h)
		if err != nil {
			return selection.Result{}, fmt.Errorf("parsing --expected-shadow %q: %w", h, err)
		}
		shadows = append(shadows, id)
	}
	return selection.Result{Primary: primary, Shadows: shadows}, nil
}

func parseValidatorID(h string) (ids.ValidatorID, error) {
	digest, err := xhash.DigestFromHex(h)
	if err != nil {
		return ids.ValidatorID{}, err
	}
	return ids.ValidatorID(digest), nil
}
