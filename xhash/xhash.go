// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package xhash centralizes the BLAKE3 hashing used across the consensus
// path: model-artifact pinning, verifier-selection seed derivation, and
// canonical digesting of Fixed slices.
package xhash

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Size is the digest length in bytes produced by Sum.
const Size = 32

// Digest is a 32-byte BLAKE3 digest.
type Digest [Size]byte

// Hex returns the lowercase hex encoding of the digest.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// Sum returns the BLAKE3 digest of data.
func Sum(data []byte) Digest {
	h := blake3.New()
	h.Write(data) //nolint:errcheck // hash.Hash.Write never errors
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// SumAll returns the BLAKE3 digest of the concatenation of chunks, written
// in order without copying them into one buffer first.
func SumAll(chunks ...[]byte) Digest {
	h := blake3.New()
	for _, c := range chunks {
		h.Write(c) //nolint:errcheck
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DigestFromHex parses a 64-character lowercase hex digest string.
func DigestFromHex(s string) (Digest, error) {
	var out Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != Size {
		return out, ErrBadDigestLength
	}
	copy(out[:], b)
	return out, nil
}
