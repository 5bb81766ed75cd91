// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package selection

import (
	"errors"
	"sort"

	"github.com/ippan/dlc/fixed"
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/xhash"
)

// ErrNotEnoughCandidates is returned by Select when fewer than
// 1+shadowCount validators are scored.
var ErrNotEnoughCandidates = errors.New("selection: fewer candidates than required primary+shadow slots")

// Result is the outcome of deterministic verifier selection for one round.
type Result struct {
	Seed    xhash.Digest
	Primary ids.ValidatorID
	Shadows []ids.ValidatorID
}

// Select ranks scores descending, breaking ties by lexicographically
// smaller validator id, truncates to the top topK candidates, deterministically
// permutes that truncated list with seed, and splits the permuted order
// into one primary and shadowCount shadows.
//
// Every implementation given identical scores, seed, topK, and shadowCount
// produces an identical (primary, shadows) pair: a pure function of its
// arguments with no hidden state.
func Select(scores map[ids.ValidatorID]fixed.Fixed, seed xhash.Digest, topK, shadowCount int) (Result, error) {
	if len(scores) < 1+shadowCount {
		return Result{}, ErrNotEnoughCandidates
	}

	ranked := make([]ids.ValidatorID, 0, len(scores))
	for id := range scores {
		ranked = append(ranked, id)
	}
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i]], scores[ranked[j]]
		if si != sj {
			return si > sj
		}
		return ranked[i].Less(ranked[j])
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	order := Permute(seed, len(ranked))
	permuted := make([]ids.ValidatorID, len(ranked))
	for i, idx := range order {
		permuted[i] = ranked[idx]
	}

	if len(permuted) < 1+shadowCount {
		return Result{}, ErrNotEnoughCandidates
	}

	return Result{
		Seed:    seed,
		Primary: permuted[0],
		Shadows: append([]ids.ValidatorID(nil), permuted[1:1+shadowCount]...),
	}, nil
}
