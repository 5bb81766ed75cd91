// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ippan/dlc/fixed"
	"github.com/ippan/dlc/ids"
)

func TestDeriveSeedIsDeterministicAndRoundSensitive(t *testing.T) {
	root := ids.StateRoot{0x01, 0x02}
	a := DeriveSeed(root, 100)
	b := DeriveSeed(root, 100)
	require.Equal(t, a, b)

	c := DeriveSeed(root, 101)
	require.NotEqual(t, a, c)
}

func TestPermuteIsDeterministic(t *testing.T) {
	seed := DeriveSeed(ids.StateRoot{0xaa}, 7)
	a := Permute(seed, 21)
	b := Permute(seed, 21)
	require.Equal(t, a, b)

	// must be a permutation: every index 0..n-1 appears exactly once
	seen := make(map[int]bool, len(a))
	for _, v := range a {
		require.False(t, seen[v])
		seen[v] = true
	}
	require.Len(t, seen, 21)
}

func makeScores(n int) map[ids.ValidatorID]fixed.Fixed {
	scores := make(map[ids.ValidatorID]fixed.Fixed, n)
	for i := 0; i < n; i++ {
		var id ids.ValidatorID
		id[0] = byte(i + 1)
		scores[id] = fixed.FromInt(int64(n - i))
	}
	return scores
}

func TestSelectIsPureFunctionOfInputs(t *testing.T) {
	scores := makeScores(21)
	root := ids.StateRoot{0xde, 0xad}
	seed := DeriveSeed(root, 100)

	r1, err := Select(scores, seed, 21, 3)
	require.NoError(t, err)
	r2, err := Select(scores, seed, 21, 3)
	require.NoError(t, err)

	require.Equal(t, r1.Primary, r2.Primary)
	require.Equal(t, r1.Shadows, r2.Shadows)
	require.Len(t, r1.Shadows, 3)
	require.NotEqual(t, r1.Primary, r1.Shadows[0])
}

func TestSelectTruncatesToTopK(t *testing.T) {
	scores := makeScores(30)
	seed := DeriveSeed(ids.StateRoot{0x01}, 5)

	r, err := Select(scores, seed, 21, 3)
	require.NoError(t, err)

	// The lowest-scored 9 validators (ids 22..30, by construction the
	// lowest fixed.FromInt values) must never be selected.
	for b := 22; b <= 30; b++ {
		var lowest ids.ValidatorID
		lowest[0] = byte(b)
		require.NotEqual(t, lowest, r.Primary)
		for _, s := range r.Shadows {
			require.NotEqual(t, lowest, s)
		}
	}
}

func TestSelectRejectsTooFewCandidates(t *testing.T) {
	scores := makeScores(2)
	seed := DeriveSeed(ids.StateRoot{0x01}, 1)
	_, err := Select(scores, seed, 21, 3)
	require.ErrorIs(t, err, ErrNotEnoughCandidates)
}

func TestSelectIsStableAcrossTiedScores(t *testing.T) {
	idA := ids.ValidatorID{0x01}
	idB := ids.ValidatorID{0x02}
	idC := ids.ValidatorID{0x03}
	idD := ids.ValidatorID{0x04}
	scores := map[ids.ValidatorID]fixed.Fixed{
		idA: fixed.One,
		idB: fixed.One,
		idC: fixed.One,
		idD: fixed.One,
	}
	seed := DeriveSeed(ids.StateRoot{0x01}, 1)
	r1, err := Select(scores, seed, 4, 1)
	require.NoError(t, err)
	r2, err := Select(scores, seed, 4, 1)
	require.NoError(t, err)
	require.Equal(t, r1, r2, "identical tied scores and seed must select identical primary/shadows")
	require.NotEqual(t, r1.Primary, r1.Shadows[0])
	require.Contains(t, []ids.ValidatorID{idA, idB, idC, idD}, r1.Primary)
}
