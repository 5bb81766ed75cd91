// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"github.com/ippan/dlc/fixed"
	"github.com/ippan/dlc/ids"
)

// maxTreeDepth bounds the per-tree walk so a cyclic or pathological tree
// (which Validate should already reject) can never spin Predict forever.
const maxTreeDepth = 1024

// Predict evaluates the ensemble e over features, which must have exactly
// e.FeatureCount elements. For each tree, it walks from node 0: at an
// internal node with feature f and threshold t, it goes left if
// features[f] <= t, else right; at a leaf it takes the leaf's Fixed value.
// Tree outputs are summed and scaled by the learning rate.
func Predict(e Ensemble, features []fixed.Fixed) (fixed.Fixed, error) {
	if uint32(len(features)) != e.FeatureCount {
		return fixed.Zero, ErrFeatureVectorLength
	}

	sum := fixed.Zero
	for _, tr := range e.Trees {
		idx := uint32(0)
		for depth := 0; ; depth++ {
			if depth >= maxTreeDepth || int(idx) >= len(tr.Nodes) {
				return fixed.Zero, ErrStructureInvalid
			}
			n := tr.Nodes[idx]
			if n.IsLeaf {
				sum = sum.Add(n.LeafValue)
				break
			}
			if features[n.FeatureIndex].LessEq(n.Threshold) {
				idx = n.Left
			} else {
				idx = n.Right
			}
		}
	}
	return sum.Mul(e.LearningRate), nil
}

// ComputeScores evaluates e over every validator's feature vector in
// features, producing a Fixed fairness score per validator. Given
// identical model bytes and identical feature vectors, the result is
// byte-identical across every conforming target: the evaluator performs
// only integer comparisons, adds, and one final fixed-point multiply.
func ComputeScores(e Ensemble, features map[ids.ValidatorID][]fixed.Fixed) (map[ids.ValidatorID]fixed.Fixed, error) {
	scores := make(map[ids.ValidatorID]fixed.Fixed, len(features))
	for validator, feats := range features {
		score, err := Predict(e, feats)
		if err != nil {
			return nil, err
		}
		scores[validator] = score
	}
	return scores, nil
}
