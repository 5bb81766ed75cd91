// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package harness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ippan/dlc/fixed"
	"github.com/ippan/dlc/model"
	"github.com/ippan/dlc/xhash"
)

func singleLeafEnsemble(featureCount uint32) model.Ensemble {
	return model.Ensemble{
		Trees: []model.Tree{
			{Nodes: []model.Node{
				{IsLeaf: false, FeatureIndex: 0, Threshold: fixed.FromInt(1000), Left: 1, Right: 2},
				{IsLeaf: true, LeafValue: fixed.FromInt(1)},
				{IsLeaf: true, LeafValue: fixed.FromInt(-1)},
			}},
		},
		LearningRate: fixed.One,
		FeatureCount: featureCount,
	}
}

func TestGoldenVectorsAreDeterministic(t *testing.T) {
	a := GoldenVectors(4)
	b := GoldenVectors(4)
	require.Equal(t, a, b)
	require.Len(t, a, VectorCount)
	for _, vec := range a {
		require.Len(t, vec, 4)
	}
}

func TestCheckModelDigestIsDeterministicAndDetectsDrift(t *testing.T) {
	e := singleLeafEnsemble(4)

	first, err := CheckModelDigest(e, xhash.Digest{})
	require.NoError(t, err)

	second, err := CheckModelDigest(e, first.Got)
	require.NoError(t, err)
	require.Equal(t, first.Got, second.Got)
	require.True(t, second.OK())

	drifted := e
	drifted.Trees[0].Nodes[1].LeafValue = fixed.FromInt(2)
	third, err := CheckModelDigest(drifted, first.Got)
	require.NoError(t, err)
	require.False(t, third.OK())
	require.NotEqual(t, first.Got, third.Got)
}

func TestRunSelectionScenarioIsDeterministic(t *testing.T) {
	s := DefaultSelectionScenario()
	a, err := RunSelectionScenario(s)
	require.NoError(t, err)
	b, err := RunSelectionScenario(s)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.NotEqual(t, [32]byte{}, [32]byte(a.Primary))

	seen := map[string]bool{a.Primary.String(): true}
	for _, sh := range a.Shadows {
		require.False(t, seen[sh.String()], "shadow must not duplicate primary or another shadow")
		seen[sh.String()] = true
	}
}

func TestCheckSelectionScenarioDetectsMismatch(t *testing.T) {
	s := DefaultSelectionScenario()
	got, err := RunSelectionScenario(s)
	require.NoError(t, err)

	_, ok, err := CheckSelectionScenario(s, got)
	require.NoError(t, err)
	require.True(t, ok)

	tampered := got
	tampered.Primary[0] ^= 0xFF
	_, ok, err = CheckSelectionScenario(s, tampered)
	require.NoError(t, err)
	require.False(t, ok)
}
