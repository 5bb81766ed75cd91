// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package signing verifies Ed25519 block-header signatures on behalf of the
// dag package. The core never holds a private key: signing a block header
// is the proposer's responsibility, outside this module.
package signing

import "crypto/ed25519"

// VerifyBlockHeader reports whether sig is a valid Ed25519 signature by
// pubKey over header. pubKey must be exactly ed25519.PublicKeySize bytes;
// any other length is treated as an invalid signature rather than a panic.
func VerifyBlockHeader(pubKey, header, sig []byte) bool {
	if len(pubKey) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubKey), header, sig)
}
