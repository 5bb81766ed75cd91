// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package units implements the atomic monetary unit (micro-IPN) as an
// unsigned 128-bit integer with saturating-checked arithmetic, used for
// balances, emission, fees, bonds, and supply throughout the engine.
package units

import (
	"errors"

	"github.com/holiman/uint256"
)

var errInvalidAtomicLiteral = errors.New("units: invalid decimal atomic literal")

// Atomic is an unsigned 128-bit count of micro-IPN (1 IPN = 10^6 micro-IPN).
// It wraps uint256.Int but is saturated to the 128-bit range so that a
// value never silently promotes to the unused upper 128 bits.
type Atomic struct {
	v uint256.Int
}

// maxU128 is 2^128 - 1, the saturation ceiling for Atomic.
var maxU128 = func() uint256.Int {
	var m uint256.Int
	m.Lsh(uint256.NewInt(1), 128)
	m.SubUint64(&m, 1)
	return m
}()

// Zero is the additive identity.
var Zero = Atomic{}

// FromUint64 constructs an Atomic from a uint64 value.
func FromUint64(v uint64) Atomic {
	var a Atomic
	a.v.SetUint64(v)
	return a
}

// FromDecimalString parses a base-10 string into an Atomic. It returns
// false if the string is not a valid non-negative decimal integer, or if it
// exceeds 128 bits.
func FromDecimalString(s string) (Atomic, bool) {
	var a Atomic
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return a, false
	}
	if v.Gt(&maxU128) {
		return a, false
	}
	a.v = *v
	return a, true
}

// Uint64 returns the low 64 bits, saturating to math.MaxUint64 if the value
// does not fit.
func (a Atomic) Uint64() uint64 {
	if !a.v.IsUint64() {
		return ^uint64(0)
	}
	return a.v.Uint64()
}

// String returns the base-10 decimal representation.
func (a Atomic) String() string { return a.v.Dec() }

// MarshalText renders a as a base-10 decimal string, so Atomic fields
// encode cleanly in YAML and JSON configuration files.
func (a Atomic) MarshalText() ([]byte, error) {
	return []byte(a.v.Dec()), nil
}

// UnmarshalText parses a base-10 decimal string produced by MarshalText.
func (a *Atomic) UnmarshalText(text []byte) error {
	v, ok := FromDecimalString(string(text))
	if !ok {
		return errInvalidAtomicLiteral
	}
	*a = v
	return nil
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Atomic) Cmp(b Atomic) int { return a.v.Cmp(&b.v) }

// IsZero reports whether a is zero.
func (a Atomic) IsZero() bool { return a.v.IsZero() }

// Add returns a+b, saturating at 2^128-1.
func (a Atomic) Add(b Atomic) Atomic {
	var out Atomic
	overflow := out.v.AddOverflow(&a.v, &b.v)
	if overflow {
		out.v = maxU128
	}
	return out
}

// Sub returns a-b, saturating at 0 (never negative).
func (a Atomic) Sub(b Atomic) Atomic {
	var out Atomic
	underflow := out.v.SubOverflow(&a.v, &b.v)
	if underflow {
		return Zero
	}
	return out
}

// Mul returns a*b, saturating at 2^128-1.
func (a Atomic) Mul(b Atomic) Atomic {
	var out Atomic
	overflow := out.v.MulOverflow(&a.v, &b.v)
	if overflow {
		out.v = maxU128
	}
	return out
}

// MulDivFloor returns floor(a * numer / denom), saturating at 2^128-1. Used
// by bps-weight splits (e.g. proposer_share = total * bps / 10000). a is at
// most 2^128-1 and numer/denom are uint64, so the product fits well within
// uint256's 256-bit range without overflow.
func (a Atomic) MulDivFloor(numer, denom uint64) Atomic {
	if denom == 0 {
		return maxAtomic()
	}
	var n, d, product, q uint256.Int
	n.SetUint64(numer)
	d.SetUint64(denom)
	product.Mul(&a.v, &n)
	q.Div(&product, &d)
	if q.Gt(&maxU128) {
		return maxAtomic()
	}
	var out Atomic
	out.v = q
	return out
}

func maxAtomic() Atomic {
	var a Atomic
	a.v = maxU128
	return a
}

// Rsh returns a right-shifted by n bits, used to compute halving schedules
// (reward >> epoch). Shifting by 128 or more always yields zero.
func (a Atomic) Rsh(n uint) Atomic {
	var out Atomic
	if n >= 128 {
		return Zero
	}
	out.v.Rsh(&a.v, n)
	return out
}

// Gt reports whether a > b.
func (a Atomic) Gt(b Atomic) bool { return a.Cmp(b) > 0 }

// Lt reports whether a < b.
func (a Atomic) Lt(b Atomic) bool { return a.Cmp(b) < 0 }

// Min returns the smaller of a and b.
func Min(a, b Atomic) Atomic {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Atomic) Atomic {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
