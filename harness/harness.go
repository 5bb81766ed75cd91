// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package harness

import (
	"fmt"

	"github.com/ippan/dlc/fixed"
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/model"
	"github.com/ippan/dlc/selection"
	"github.com/ippan/dlc/xhash"
)

// ModelDigestReport is the outcome of CheckModelDigest.
type ModelDigestReport struct {
	Got      xhash.Digest
	Expected xhash.Digest
}

// OK reports whether the computed digest matched the expected one.
func (r ModelDigestReport) OK() bool { return r.Got == r.Expected }

// CheckModelDigest evaluates e over GoldenVectors(e.FeatureCount) and
// hashes the resulting scores, in vector order, with fixed.HashSlice (BLAKE3
// over their concatenated canonical encodings). A match against expected
// proves e reproduces byte-identical output to whatever artifact expected
// was recorded from, across any conforming target and Go version.
func CheckModelDigest(e model.Ensemble, expected xhash.Digest) (ModelDigestReport, error) {
	vectors := GoldenVectors(e.FeatureCount)

	scores := make([]fixed.Fixed, 0, len(vectors))
	for _, vec := range vectors {
		score, err := model.Predict(e, vec)
		if err != nil {
			return ModelDigestReport{}, fmt.Errorf("harness: evaluating golden vector: %w", err)
		}
		scores = append(scores, score)
	}

	got := fixed.HashSlice(scores)
	return ModelDigestReport{Got: got, Expected: expected}, nil
}

// SelectionScenario is a fixed, reproducible verifier-selection input: a
// deterministic set of n validator ids with deterministic scores, a fixed
// prior state root, and a fixed round. S5 pins n=21.
type SelectionScenario struct {
	ValidatorCount int
	PriorRoot      ids.StateRoot
	Round          uint64
	TopK           int
	ShadowCount    int
}

// DefaultSelectionScenario returns the S5 scenario: 21 validators, the
// all-zero prior state root, round 100, top-16 candidates, 3 shadows.
func DefaultSelectionScenario() SelectionScenario {
	return SelectionScenario{
		ValidatorCount: 21,
		PriorRoot:      ids.EmptyStateRoot,
		Round:          100,
		TopK:           16,
		ShadowCount:    3,
	}
}

// scenarioValidators deterministically builds s.ValidatorCount distinct
// ValidatorIDs and a distinct Fixed score per id: id i is the BLAKE3 digest
// of its index, and its score is FromRatio(i+1, 3) so ranking order is fixed
// and never depends on map iteration order.
func scenarioValidators(s SelectionScenario) (map[ids.ValidatorID]fixed.Fixed, error) {
	scores := make(map[ids.ValidatorID]fixed.Fixed, s.ValidatorCount)
	for i := 0; i < s.ValidatorCount; i++ {
		idxBytes := []byte{byte(i >> 24), byte(i >> 16), byte(i >> 8), byte(i)}
		digest := xhash.SumAll([]byte("IPPAN-DLC-HARNESS-VALIDATOR"), idxBytes)
		id, ok := ids.ValidatorIDFromBytes(digest[:])
		if !ok {
			return nil, fmt.Errorf("harness: malformed validator id at index %d", i)
		}
		scores[id] = fixed.FromRatio(int64(i)+1, 3)
	}
	return scores, nil
}

// RunSelectionScenario derives the seed for s.Round from s.PriorRoot, ranks
// the scenario's deterministic validator scores, and runs selection.Select.
// Given the same SelectionScenario, it always returns the same Result.
func RunSelectionScenario(s SelectionScenario) (selection.Result, error) {
	scores, err := scenarioValidators(s)
	if err != nil {
		return selection.Result{}, err
	}
	seed := selection.DeriveSeed(s.PriorRoot, s.Round)
	return selection.Select(scores, seed, s.TopK, s.ShadowCount)
}

// CheckSelectionScenario runs s and compares the result's Primary and
// Shadows against an expected Result recorded previously for s.
func CheckSelectionScenario(s SelectionScenario, expected selection.Result) (selection.Result, bool, error) {
	got, err := RunSelectionScenario(s)
	if err != nil {
		return selection.Result{}, false, err
	}
	if got.Primary != expected.Primary || len(got.Shadows) != len(expected.Shadows) {
		return got, false, nil
	}
	for i := range got.Shadows {
		if got.Shadows[i] != expected.Shadows[i] {
			return got, false, nil
		}
	}
	return got, true, nil
}
