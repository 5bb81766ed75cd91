// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ippan/dlc/fixed"
)

func validReport() Report {
	return Report{
		LatencyMicros:     1500,
		UptimeRatio:       fixed.One,
		PeerEntropy:       fixed.FromRatio(1, 2),
		ValidatedBlocks:   10,
		MissedBlocks:      0,
		SlashingEvents:    0,
		NormalizedStake:   fixed.FromRatio(1, 10),
		PeerReportQuality: fixed.One,
	}
}

func TestValidateAcceptsInDomain(t *testing.T) {
	require.NoError(t, validReport().Validate())
}

func TestValidateRejectsNegativeLatency(t *testing.T) {
	r := validReport()
	r.LatencyMicros = -1
	require.ErrorIs(t, r.Validate(), ErrOutOfDomain)
}

func TestValidateRejectsRatioOutOfRange(t *testing.T) {
	r := validReport()
	r.UptimeRatio = fixed.One.Add(fixed.One)
	require.ErrorIs(t, r.Validate(), ErrOutOfDomain)

	r = validReport()
	r.PeerEntropy = fixed.Fixed(-1)
	require.ErrorIs(t, r.Validate(), ErrOutOfDomain)
}

func TestMedianLatency(t *testing.T) {
	require.Equal(t, int64(0), MedianLatency(nil))
	require.Equal(t, int64(5), MedianLatency([]int64{5}))
	require.Equal(t, int64(5), MedianLatency([]int64{1, 5, 9}))
	require.Equal(t, int64(5), MedianLatency([]int64{9, 1, 5, 7}))
}

func TestNormalizeOrder(t *testing.T) {
	r := validReport()
	feats := Normalize(r, 1000)
	require.Equal(t, fixed.FromInt(500), feats[0])
	require.Equal(t, r.UptimeRatio, feats[1])
	require.Equal(t, r.PeerEntropy, feats[2])
	require.Equal(t, fixed.FromInt(10), feats[3])
	require.Equal(t, fixed.FromInt(0), feats[4])
	require.Equal(t, fixed.FromInt(0), feats[5])
	require.Equal(t, r.NormalizedStake, feats[6])
	require.Equal(t, r.PeerReportQuality, feats[7])
}
