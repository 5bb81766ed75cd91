// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package telemetry defines the per-round validator telemetry vector
// consumed by the fairness model evaluator, and the integer-only
// normalization step that turns raw counters into model features.
package telemetry

import (
	"errors"
	"sort"

	"github.com/ippan/dlc/fixed"
)

// Report is the raw, per-round telemetry a validator (or its observers)
// submits. Every field is an integer in a documented domain; the evaluator
// rejects reports whose fields fall outside it.
type Report struct {
	// LatencyMicros is the validator's observed round latency in
	// microseconds.
	LatencyMicros int64
	// UptimeRatio is scaled such that fixed.One == 100% uptime.
	UptimeRatio fixed.Fixed
	// PeerEntropy is a scaled integer, fixed.Zero..fixed.One.
	PeerEntropy fixed.Fixed
	// ValidatedBlocks is the count of blocks this validator had accepted
	// in the trailing observation window.
	ValidatedBlocks uint32
	// MissedBlocks is the count of blocks this validator was selected for
	// but failed to produce/validate in the trailing window.
	MissedBlocks uint32
	// SlashingEvents is the count of slashing events in the trailing
	// window.
	SlashingEvents uint32
	// NormalizedStake is scaled such that fixed.One == 100% of total
	// active bond.
	NormalizedStake fixed.Fixed
	// PeerReportQuality is a scaled integer, fixed.Zero..fixed.One.
	PeerReportQuality fixed.Fixed
}

// ErrOutOfDomain is returned by Validate when a report field
// falls outside its documented domain.
var ErrOutOfDomain = errors.New("telemetry: field out of domain")

// Validate rejects reports with out-of-domain fields: ratios must lie in
// [0, fixed.One], latency must be non-negative.
func (r Report) Validate() error {
	if r.LatencyMicros < 0 {
		return ErrOutOfDomain
	}
	for _, ratio := range []fixed.Fixed{r.UptimeRatio, r.PeerEntropy, r.NormalizedStake, r.PeerReportQuality} {
		if ratio < fixed.Zero || ratio > fixed.One {
			return ErrOutOfDomain
		}
	}
	return nil
}

// FeatureCount is the number of Fixed features produced by Normalize, in
// fixed, documented order. The D-GBDT model's declared feature count must
// equal this value.
const FeatureCount = 8

// Normalize converts a raw Report, given the integer median latency across
// all reporting validators this round, into the ordered Fixed feature
// vector the model evaluator consumes. All arithmetic is integer-only: the
// latency delta is computed on the medians directly, never cast to float.
func Normalize(r Report, medianLatencyMicros int64) [FeatureCount]fixed.Fixed {
	delta := r.LatencyMicros - medianLatencyMicros
	return [FeatureCount]fixed.Fixed{
		fixed.FromInt(delta),
		r.UptimeRatio,
		r.PeerEntropy,
		fixed.FromInt(int64(r.ValidatedBlocks)),
		fixed.FromInt(int64(r.MissedBlocks)),
		fixed.FromInt(int64(r.SlashingEvents)),
		r.NormalizedStake,
		r.PeerReportQuality,
	}
}

// MedianLatency returns the integer median of the given latencies using
// only integer arithmetic (for an even count, the lower of the two middle
// values is used, truncating toward the smaller index rather than
// averaging, to avoid introducing a division-rounding discrepancy across
// targets).
func MedianLatency(latencies []int64) int64 {
	if len(latencies) == 0 {
		return 0
	}
	sorted := append([]int64(nil), latencies...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[(len(sorted)-1)/2]
}
