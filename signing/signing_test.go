// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package signing

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyBlockHeaderAcceptsValidSignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	header := []byte("block header bytes")
	sig := ed25519.Sign(priv, header)

	require.True(t, VerifyBlockHeader(pub, header, sig))
}

func TestVerifyBlockHeaderRejectsTamperedHeader(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	sig := ed25519.Sign(priv, []byte("original"))
	require.False(t, VerifyBlockHeader(pub, []byte("tampered"), sig))
}

func TestVerifyBlockHeaderRejectsBadKeyLength(t *testing.T) {
	require.False(t, VerifyBlockHeader([]byte{0x01, 0x02}, []byte("header"), []byte("sig")))
}
