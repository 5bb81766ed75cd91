// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPresetsValidate(t *testing.T) {
	for name, c := range map[string]Config{
		"mainnet": Mainnet(),
		"testnet": Testnet(),
		"local":   Local(),
	} {
		require.NoError(t, c.Validate(), name)
	}
}

func TestValidateRejectsInvertedBondRange(t *testing.T) {
	c := Local()
	c.Bonding.MinBond, c.Bonding.MaxBond = c.Bonding.MaxBond, c.Bonding.MinBond
	require.Error(t, c.Validate())
}

func TestValidateRejectsTopKNotExceedingShadowCount(t *testing.T) {
	c := Local()
	c.Consensus.TopKCandidates = c.Consensus.ShadowCount
	require.Error(t, c.Validate())
}

func TestParseRoundTripsYAML(t *testing.T) {
	c := Local()
	raw, err := yaml.Marshal(c)
	require.NoError(t, err)

	out, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, c.Consensus, out.Consensus)
	require.Equal(t, c.Emission.ProposerWeightBps, out.Emission.ProposerWeightBps)
	require.True(t, c.Bonding.MinBond.Cmp(out.Bonding.MinBond) == 0)
}
