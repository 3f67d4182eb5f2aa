package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/fabriconv/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ComponentFlatten, cfg.ComponentMode)
	assert.Equal(t, CommandSkip, cfg.CommandMode)
	assert.Equal(t, ScaledDecimalJSONString, cfg.ScaledDecimalMode)
	assert.Equal(t, "usertypes", cfg.Namespace)
}

func TestReadPartialDocumentKeepsDefaults(t *testing.T) {
	cfg, err := Read(strings.NewReader(`{"componentMode": "separate"}`))
	require.NoError(t, err)

	assert.Equal(t, ComponentSeparate, cfg.ComponentMode)
	assert.Equal(t, CommandSkip, cfg.CommandMode)
	assert.Equal(t, "usertypes", cfg.Namespace)
}

func TestReadFullDocument(t *testing.T) {
	doc := `{
		"idPrefix": 2000000000000,
		"namespace": "factory",
		"componentMode": "skip",
		"commandMode": "entity",
		"scaledDecimalMode": "structured",
		"force": true
	}`
	cfg, err := Read(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, uint64(2_000_000_000_000), cfg.IDPrefix)
	assert.Equal(t, "factory", cfg.Namespace)
	assert.Equal(t, ComponentSkip, cfg.ComponentMode)
	assert.Equal(t, CommandEntity, cfg.CommandMode)
	assert.Equal(t, ScaledDecimalStructured, cfg.ScaledDecimalMode)
	assert.True(t, cfg.Force)
}

func TestReadRejectsUnknownFields(t *testing.T) {
	_, err := Read(strings.NewReader(`{"notAField": true}`))
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestValidateRejectsBadModes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty namespace", func(c *Config) { c.Namespace = "" }},
		{"bad component mode", func(c *Config) { c.ComponentMode = "merge" }},
		{"bad command mode", func(c *Config) { c.CommandMode = "drop" }},
		{"bad scaled decimal mode", func(c *Config) { c.ScaledDecimalMode = "float" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
		})
	}
}

func TestLoadMissingPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
