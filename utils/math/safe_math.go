// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"errors"
	"math"
)

// ErrOverflow is returned when an overflow-checked operation would wrap.
var ErrOverflow = errors.New("overflow")

// Add64 returns a + b with overflow detection. emission.Params.Validate
// uses it to sum the proposer and verifier reward-weight basis points
// without silently wrapping on a misconfigured preset.
func Add64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}
