// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package selection

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"

	"github.com/ippan/dlc/xhash"
)

// zeroNonce is used for every ChaCha20 keystream in this package. The seed
// itself (which already binds the prior state root and round number) is
// the only source of variation, so a fixed nonce does not weaken or
// collide the stream between rounds.
var zeroNonce = [chacha20.NonceSize]byte{}

// keystreamSource produces a deterministic sequence of uint32s from a
// ChaCha20 keystream seeded by digest, used to drive the Fisher-Yates
// permutation below.
type keystreamSource struct {
	cipher *chacha20.Cipher
}

func newKeystreamSource(seed xhash.Digest) *keystreamSource {
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], zeroNonce[:])
	if err != nil {
		// seed is always exactly 32 bytes and zeroNonce is always
		// exactly chacha20.NonceSize; this cannot fail.
		panic(err)
	}
	return &keystreamSource{cipher: c}
}

func (k *keystreamSource) nextUint32() uint32 {
	var zero, out [4]byte
	k.cipher.XORKeyStream(out[:], zero[:])
	return binary.LittleEndian.Uint32(out[:])
}

// Permute returns a deterministic permutation of [0, n) derived from seed,
// using a Fisher-Yates shuffle driven by the ChaCha20 keystream. Identical
// seed and n always produce identical output on every platform.
func Permute(seed xhash.Digest, n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if n < 2 {
		return order
	}
	stream := newKeystreamSource(seed)
	for i := n - 1; i > 0; i-- {
		j := int(stream.nextUint32() % uint32(i+1))
		order[i], order[j] = order[j], order[i]
	}
	return order
}
