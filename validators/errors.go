// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validators

import "errors"

var (
	// ErrBondOutOfRange is returned by Register when bond_amount falls
	// outside [MinBond, MaxBond].
	ErrBondOutOfRange = errors.New("validators: bond amount out of range")
	// ErrValidatorUnknown is returned by operations addressing a
	// validator id not present in the registry.
	ErrValidatorUnknown = errors.New("validators: unknown validator id")
	// ErrValidatorInWrongState is returned when an operation is invalid
	// for the validator's current status.
	ErrValidatorInWrongState = errors.New("validators: validator in wrong state for operation")
	// ErrAlreadyRegistered is returned by Register for a duplicate id.
	ErrAlreadyRegistered = errors.New("validators: validator already registered")
)
