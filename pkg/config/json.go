package config

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// FromJSON parses a configuration from JSON bytes, rejecting unknown keys.
func FromJSON(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return cfg, nil
}

// ToJSON serializes the configuration as indented JSON.
func (c *Config) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return append(data, '\n'), nil
}
