// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package consensus wires the DAG, the D-GBDT evaluator, verifier
// selection, validator bonding, and the emission engine together into the
// per-round finalization flow.
package consensus

import (
	"encoding/binary"

	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/xhash"
)

// ComputeStateRoot derives the deterministic state root committed to after
// finalizing round, from the round number, the canonical tip at that
// round, and total issued supply. Verifier selection for round+1 seeds
// from this value, so it must be a pure function of already-finalized
// state only.
func ComputeStateRoot(round uint64, canonicalTip ids.BlockID, totalIssuedMicro string) ids.StateRoot {
	var roundBytes [8]byte
	binary.LittleEndian.PutUint64(roundBytes[:], round)
	digest := xhash.SumAll([]byte("IPPAN-DLC-STATE-ROOT"), roundBytes[:], canonicalTip[:], []byte(totalIssuedMicro))
	return ids.StateRoot(digest)
}
