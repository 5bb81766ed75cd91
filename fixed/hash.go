// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixed

import "github.com/ippan/dlc/xhash"

// HashSlice returns the BLAKE3 digest over the canonical little-endian
// encoding of values, concatenated in order. Used by the determinism
// harness to compare D-GBDT scores across platforms.
func HashSlice(values []Fixed) xhash.Digest {
	buf := make([]byte, 0, len(values)*8)
	for _, v := range values {
		b := v.Bytes()
		buf = append(buf, b[:]...)
	}
	return xhash.Sum(buf)
}
