// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dag implements the BlockDAG: block ingestion, the canonical-tip
// rule, and round finalization. There is no voting or BFT vote aggregation
// anywhere in this package; finality comes from a temporal window plus
// shadow-verifier cross-checks.
package dag

import (
	"github.com/ippan/dlc/ids"
)

// HashTimer is the deterministic logical timestamp used to order blocks:
// (round, sub-round ordering key). Two blocks in the same round are
// ordered by SubRoundKey, then by block id.
type HashTimer struct {
	Round        uint64
	SubRoundKey  uint64
}

// Less orders HashTimer values by round, then by sub-round key.
func (h HashTimer) Less(other HashTimer) bool {
	if h.Round != other.Round {
		return h.Round < other.Round
	}
	return h.SubRoundKey < other.SubRoundKey
}

// Block is one BlockDAG vertex.
type Block struct {
	ID         ids.BlockID
	Parents    []ids.BlockID
	Proposer   ids.ValidatorID
	Signature  [64]byte
	HashTimer  HashTimer
	// PayloadCommitment commits to the block's payload (e.g. a merkle
	// root of included transactions); the core treats it as opaque.
	PayloadCommitment [32]byte
	// FeesMicro is the total fees this block contributes toward its
	// round's distribution.
	FeesMicro uint64
}
