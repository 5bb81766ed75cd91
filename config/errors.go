// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps a descriptive reason explaining which invariant
// failed.
var ErrInvalidConfig = errors.New("config: invalid configuration")

func wrap(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, reason)
}
