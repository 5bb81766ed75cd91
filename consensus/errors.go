// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import "errors"

// ErrNoTelemetry is returned by FinalizeRound when no reports were supplied
// for a round; fairness scoring has nothing to evaluate, so the round
// cannot be finalized.
var ErrNoTelemetry = errors.New("consensus: no telemetry reports for round")
