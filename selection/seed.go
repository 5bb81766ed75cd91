// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package selection implements deterministic verifier selection: seed
// derivation from finalized state, fairness-score ranking, and a
// ChaCha20-keystream-based deterministic permutation that picks one
// primary and N shadow verifiers per round.
package selection

import (
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/xhash"
)

// seedDomain tags the BLAKE3 seed derivation so it can never collide with a
// hash computed for another purpose (model pinning, block ids, etc.).
const seedDomain = "IPPAN-DLC-VERIFIER-SEED"

// DeriveSeed computes the sole randomness source for verifier selection in
// round: BLAKE3(seedDomain || finalized_state_root(round-1) || round_bytes).
// No clock or RNG state is ever consulted.
func DeriveSeed(priorStateRoot ids.StateRoot, round uint64) xhash.Digest {
	roundBytes := roundToBytes(round)
	return xhash.SumAll([]byte(seedDomain), priorStateRoot[:], roundBytes[:])
}

func roundToBytes(round uint64) [8]byte {
	var out [8]byte
	for i := 0; i < 8; i++ {
		out[i] = byte(round >> (8 * i))
	}
	return out
}
