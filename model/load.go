// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"fmt"

	"github.com/ippan/dlc/xhash"
)

// Encoding selects the on-disk representation of a model artifact. Both
// MUST produce identical evaluation semantics; the release configuration
// picks one.
type Encoding int

const (
	EncodingJSON Encoding = iota
	EncodingBinary
)

// Load computes the BLAKE3 digest of raw over its exact bytes, compares it
// to expectedDigest, and only then parses it with the given encoding. A
// digest mismatch is returned before any parsing is attempted so that a
// corrupt or substituted artifact can never influence consensus state.
func Load(raw []byte, enc Encoding, expectedDigest xhash.Digest) (Ensemble, error) {
	got := xhash.Sum(raw)
	if got != expectedDigest {
		return Ensemble{}, fmt.Errorf("%w: got %s want %s", ErrHashMismatch, got.Hex(), expectedDigest.Hex())
	}

	var (
		e   Ensemble
		err error
	)
	switch enc {
	case EncodingJSON:
		e, err = DecodeJSON(raw)
	case EncodingBinary:
		e, err = DecodeBinary(raw)
	default:
		return Ensemble{}, fmt.Errorf("model: unknown encoding %d", enc)
	}
	if err != nil {
		return Ensemble{}, fmt.Errorf("%w: %s", ErrStructureInvalid, err)
	}

	if err := Validate(e); err != nil {
		return Ensemble{}, err
	}
	return e, nil
}

// Validate rejects ensembles whose tree node references are out of range,
// whose feature indices exceed the declared feature count, or whose
// leaf/internal flags are inconsistent with their populated fields.
func Validate(e Ensemble) error {
	if e.FeatureCount == 0 {
		return fmt.Errorf("%w: feature_count is zero", ErrStructureInvalid)
	}
	for ti, tr := range e.Trees {
		if len(tr.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d has no nodes", ErrStructureInvalid, ti)
		}
		for ni, n := range tr.Nodes {
			if n.IsLeaf {
				continue
			}
			if n.FeatureIndex >= e.FeatureCount {
				return fmt.Errorf("%w: tree %d node %d feature index %d >= feature_count %d",
					ErrStructureInvalid, ti, ni, n.FeatureIndex, e.FeatureCount)
			}
			if int(n.Left) >= len(tr.Nodes) || int(n.Right) >= len(tr.Nodes) {
				return fmt.Errorf("%w: tree %d node %d child index out of range", ErrStructureInvalid, ti, ni)
			}
		}
	}
	return nil
}
