// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fixed implements the scaled-integer arithmetic type that every
// consensus-path computation in this module flows through. No floating
// point instruction may appear anywhere downstream of this package.
package fixed

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// Scale is the fixed-point scale: one logical unit equals Scale raw units.
const Scale int64 = 1_000_000

// Fixed is a signed, scaled-integer value: raw / Scale is the logical value.
// All arithmetic saturates on overflow instead of panicking or wrapping.
type Fixed int64

// Zero and One are the canonical Fixed constants.
const (
	Zero Fixed = 0
	One  Fixed = Fixed(Scale)
)

// Min and Max bound the representable range.
const (
	Min Fixed = math.MinInt64
	Max Fixed = math.MaxInt64
)

// FromInt constructs a Fixed from a whole-number integer, saturating if the
// scaled value would overflow int64.
func FromInt(v int64) Fixed {
	hi, lo := bits.Mul64(absU64(v), uint64(Scale))
	if hi != 0 || lo > math.MaxInt64 {
		if v < 0 {
			return Min
		}
		return Max
	}
	if v < 0 {
		return Fixed(-int64(lo))
	}
	return Fixed(int64(lo))
}

// FromScaled constructs a Fixed directly from its raw scaled representation.
func FromScaled(raw int64) Fixed {
	return Fixed(raw)
}

// FromRatio constructs a Fixed from numerator/denominator, truncating
// toward zero, saturating on overflow. denom == 0 saturates to Max (numer
// positive), Min (numer negative), or Zero (numer zero).
func FromRatio(numer, denom int64) Fixed {
	if denom == 0 {
		switch {
		case numer > 0:
			return Max
		case numer < 0:
			return Min
		default:
			return Zero
		}
	}
	neg := (numer < 0) != (denom < 0)
	n := absU64(numer)
	d := absU64(denom)

	hi, lo := bits.Mul64(n, uint64(Scale))
	if hi/d != 0 {
		if neg {
			return Min
		}
		return Max
	}
	quo, _ := bits.Div64(hi%d, lo, d)
	if quo > uint64(math.MaxInt64) {
		if neg {
			return Min
		}
		return Max
	}
	if neg {
		return Fixed(-int64(quo))
	}
	return Fixed(int64(quo))
}

func absU64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// Raw returns the underlying scaled integer.
func (f Fixed) Raw() int64 { return int64(f) }

// Add returns f+g, saturating on overflow.
func (f Fixed) Add(g Fixed) Fixed {
	sum := int64(f) + int64(g)
	if (g > 0 && sum < int64(f)) || (g < 0 && sum > int64(f)) {
		if g > 0 {
			return Max
		}
		return Min
	}
	return Fixed(sum)
}

// Sub returns f-g, saturating on overflow.
func (f Fixed) Sub(g Fixed) Fixed {
	diff := int64(f) - int64(g)
	if (g < 0 && diff < int64(f)) || (g > 0 && diff > int64(f)) {
		if g < 0 {
			return Max
		}
		return Min
	}
	return Fixed(diff)
}

// Neg returns -f, saturating (Min negates to Max rather than overflowing).
func (f Fixed) Neg() Fixed {
	if f == Min {
		return Max
	}
	return -f
}

// Mul returns f*g using a 128-bit intermediate, dividing by Scale and
// truncating toward zero, saturating on overflow.
func (f Fixed) Mul(g Fixed) Fixed {
	neg := (f < 0) != (g < 0)
	a := absU64(int64(f))
	b := absU64(int64(g))

	hi, lo := bits.Mul64(a, b)
	if hi/uint64(Scale) != 0 {
		if neg {
			return Min
		}
		return Max
	}
	quo, _ := bits.Div64(hi%uint64(Scale), lo, uint64(Scale))
	if quo > uint64(math.MaxInt64) {
		if neg {
			return Min
		}
		return Max
	}
	if neg {
		return Fixed(-int64(quo))
	}
	return Fixed(int64(quo))
}

// Div returns f/g using a 128-bit intermediate, truncating toward zero.
// Division by zero saturates (sign of f determines direction; f==0 yields
// Zero).
func (f Fixed) Div(g Fixed) Fixed {
	if g == 0 {
		switch {
		case f > 0:
			return Max
		case f < 0:
			return Min
		default:
			return Zero
		}
	}
	neg := (f < 0) != (g < 0)
	a := absU64(int64(f))
	b := absU64(int64(g))

	hi, lo := bits.Mul64(a, uint64(Scale))
	if hi/b != 0 {
		if neg {
			return Min
		}
		return Max
	}
	quo, _ := bits.Div64(hi%b, lo, b)
	if quo > uint64(math.MaxInt64) {
		if neg {
			return Min
		}
		return Max
	}
	if neg {
		return Fixed(-int64(quo))
	}
	return Fixed(int64(quo))
}

// Cmp returns -1, 0, or 1 as f is less than, equal to, or greater than g.
func (f Fixed) Cmp(g Fixed) int {
	switch {
	case f < g:
		return -1
	case f > g:
		return 1
	default:
		return 0
	}
}

// LessEq reports whether f <= g, used by the D-GBDT split rule.
func (f Fixed) LessEq(g Fixed) bool { return f <= g }

// Bytes returns the canonical 8-byte little-endian encoding of f.
func (f Fixed) Bytes() [8]byte {
	var out [8]byte
	binary.LittleEndian.PutUint64(out[:], uint64(f))
	return out
}

// FromBytes decodes the canonical 8-byte little-endian encoding produced by
// Bytes.
func FromBytes(b [8]byte) Fixed {
	return Fixed(binary.LittleEndian.Uint64(b[:]))
}
