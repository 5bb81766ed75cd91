// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLessLexicographic(t *testing.T) {
	a := ValidatorID{0x01}
	b := ValidatorID{0x02}
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.False(t, a.Less(a))
}

func TestFromBytesRejectsWrongLength(t *testing.T) {
	_, ok := ValidatorIDFromBytes(make([]byte, 10))
	require.False(t, ok)

	id, ok := ValidatorIDFromBytes(make([]byte, Size))
	require.True(t, ok)
	require.Equal(t, EmptyValidatorID, id)
}

func TestStringIsHex(t *testing.T) {
	id := BlockID{0xde, 0xad, 0xbe, 0xef}
	require.Equal(t, "deadbeef00000000000000000000000000000000000000000000000000000000", id.String())
}
