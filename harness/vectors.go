// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package harness implements the determinism checks every conforming
// target must expose: re-evaluating a pinned model artifact over a fixed
// set of feature vectors and a fixed verifier-selection scenario must
// reproduce byte-identical, previously-recorded digests.
package harness

import "github.com/ippan/dlc/fixed"

// VectorCount is the number of golden feature vectors the determinism
// check evaluates.
const VectorCount = 50

// GoldenVectors returns VectorCount feature vectors of length
// featureCount, generated by a fixed, non-random integer recurrence so the
// same call always produces the same vectors on every target: vector i's
// feature j is FromRatio(i*featureCount+j+1, 7), a deterministic ratio that
// exercises both the truncating division in FromRatio and a spread of
// positive values across the tree thresholds.
func GoldenVectors(featureCount uint32) [][]fixed.Fixed {
	vectors := make([][]fixed.Fixed, VectorCount)
	for i := 0; i < VectorCount; i++ {
		vec := make([]fixed.Fixed, featureCount)
		for j := uint32(0); j < featureCount; j++ {
			n := int64(i)*int64(featureCount) + int64(j) + 1
			vec[j] = fixed.FromRatio(n, 7)
		}
		vectors[i] = vec
	}
	return vectors
}
