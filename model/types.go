// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package model implements the frozen D-GBDT fairness-model artifact: its
// canonical encoding, hash-pinned loader, and the pure Predict/ComputeScores
// evaluator. The model is immutable once loaded; training happens off-chain
// and is out of scope here.
package model

import "github.com/ippan/dlc/fixed"

// Node is one node of a decision tree. Internal nodes carry a feature index
// and threshold and route to Left/Right children by index into the owning
// Tree's Nodes slice; leaves carry a Fixed output value.
type Node struct {
	IsLeaf       bool
	FeatureIndex uint32
	Threshold    fixed.Fixed
	Left         uint32
	Right        uint32
	LeafValue    fixed.Fixed
}

// Tree is an ordered list of nodes; node 0 is always the root.
type Tree struct {
	Nodes []Node
}

// Ensemble is the frozen, hash-pinned D-GBDT artifact: an ordered list of
// trees plus the learning rate applied to their summed output.
type Ensemble struct {
	Trees        []Tree
	LearningRate fixed.Fixed
	FeatureCount uint32
	OutputScale  fixed.Fixed
}
