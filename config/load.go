// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML configuration file at path, applies it as overrides on
// top of the Mainnet preset, and validates the result. A config that fails
// to parse or validate never reaches the caller.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseOnto(raw, Mainnet())
}

// Parse decodes raw YAML bytes into a Config and validates the result.
// Parse starts from Config's zero value; use LoadOnto/ParseOnto to layer
// YAML overrides on top of a preset instead.
func Parse(raw []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadOnto reads a YAML configuration file at path and unmarshals it onto
// base, so any key the file omits keeps base's value. This is how a
// mainnet/testnet/local preset is combined with a deployment-specific
// override file.
func LoadOnto(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseOnto(raw, base)
}

// ParseOnto decodes raw YAML bytes onto base and validates the result.
func ParseOnto(raw []byte, base Config) (Config, error) {
	c := base
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
