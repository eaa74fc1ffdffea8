package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DatabasePath:     "./data/test.db",
		Port:             8001,
		MaxQubits:        6,
		EntropyThreshold: 7.0,
		EntropyWindow:    4096,
		FraudDefaultNu:   0.13,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing database path", mutate: func(c *Config) { c.DatabasePath = "" }},
		{name: "zero qubits", mutate: func(c *Config) { c.MaxQubits = 0 }},
		{name: "register too wide", mutate: func(c *Config) { c.MaxQubits = 20 }},
		{name: "nu at zero", mutate: func(c *Config) { c.FraudDefaultNu = 0 }},
		{name: "nu at one", mutate: func(c *Config) { c.FraudDefaultNu = 1 }},
		{name: "threshold above byte", mutate: func(c *Config) { c.EntropyThreshold = 8.5 }},
		{name: "negative threshold", mutate: func(c *Config) { c.EntropyThreshold = -1 }},
		{name: "window too small", mutate: func(c *Config) { c.EntropyWindow = 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadUsesEnvironment(t *testing.T) {
	t.Setenv("GO_PORT", "9090")
	t.Setenv("MAX_QUBITS", "4")
	t.Setenv("FRAUD_DEFAULT_NU", "0.2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 4, cfg.MaxQubits)
	assert.Equal(t, 0.2, cfg.FraudDefaultNu)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7.0, cfg.EntropyThreshold)
	assert.Equal(t, 4096, cfg.EntropyWindow)
	assert.Equal(t, 0.13, cfg.FraudDefaultNu)
}
