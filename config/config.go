// Package config defines the conversion options document. Options load from
// a JSON file or reader, validate before use, and carry defaults for every
// field so an empty document is a valid configuration.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/c360studio/fabriconv/errors"
)

// ComponentMode controls how DTDL components convert.
type ComponentMode string

const (
	// ComponentFlatten merges component properties into the owning entity,
	// prefixing property names with the component name.
	ComponentFlatten ComponentMode = "flatten"
	// ComponentSeparate emits each component as its own entity type linked by
	// a relationship.
	ComponentSeparate ComponentMode = "separate"
	// ComponentSkip records components as skipped items.
	ComponentSkip ComponentMode = "skip"
)

// String returns the string representation of the ComponentMode.
func (m ComponentMode) String() string { return string(m) }

// IsValid checks if the ComponentMode is one of the defined constants.
func (m ComponentMode) IsValid() bool {
	switch m {
	case ComponentFlatten, ComponentSeparate, ComponentSkip:
		return true
	default:
		return false
	}
}

// CommandMode controls how DTDL commands convert.
type CommandMode string

const (
	// CommandSkip records commands as skipped items.
	CommandSkip CommandMode = "skip"
	// CommandProperty converts each command into a String property holding
	// its serialized signature.
	CommandProperty CommandMode = "property"
	// CommandEntity emits each command as its own entity type linked to the
	// owning interface.
	CommandEntity CommandMode = "entity"
)

// String returns the string representation of the CommandMode.
func (m CommandMode) String() string { return string(m) }

// IsValid checks if the CommandMode is one of the defined constants.
func (m CommandMode) IsValid() bool {
	switch m {
	case CommandSkip, CommandProperty, CommandEntity:
		return true
	default:
		return false
	}
}

// ScaledDecimalMode controls how DTDL v4 scaledDecimal schemas convert.
type ScaledDecimalMode string

const (
	// ScaledDecimalJSONString keeps the full value as a JSON string, lossless.
	ScaledDecimalJSONString ScaledDecimalMode = "json_string"
	// ScaledDecimalStructured emits separate mantissa and exponent BigInt
	// properties.
	ScaledDecimalStructured ScaledDecimalMode = "structured"
	// ScaledDecimalCalculated emits a single Double property with the
	// computed value; may lose precision.
	ScaledDecimalCalculated ScaledDecimalMode = "calculated"
)

// String returns the string representation of the ScaledDecimalMode.
func (m ScaledDecimalMode) String() string { return string(m) }

// IsValid checks if the ScaledDecimalMode is one of the defined constants.
func (m ScaledDecimalMode) IsValid() bool {
	switch m {
	case ScaledDecimalJSONString, ScaledDecimalStructured, ScaledDecimalCalculated:
		return true
	default:
		return false
	}
}

// Config holds all conversion options.
type Config struct {
	// IDPrefix is the starting value for counter-generated ids. Zero selects
	// the default 13-digit prefix.
	IDPrefix uint64 `json:"idPrefix,omitempty"`

	// Namespace overrides the namespace applied to emitted types.
	Namespace string `json:"namespace,omitempty"`

	// ComponentMode selects DTDL component handling. Default: flatten.
	ComponentMode ComponentMode `json:"componentMode,omitempty"`

	// CommandMode selects DTDL command handling. Default: skip.
	CommandMode CommandMode `json:"commandMode,omitempty"`

	// ScaledDecimalMode selects DTDL v4 scaledDecimal handling.
	// Default: json_string.
	ScaledDecimalMode ScaledDecimalMode `json:"scaledDecimalMode,omitempty"`

	// Force bypasses the memory pre-flight check.
	Force bool `json:"force,omitempty"`
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	return &Config{
		Namespace:         "usertypes",
		ComponentMode:     ComponentFlatten,
		CommandMode:       CommandSkip,
		ScaledDecimalMode: ScaledDecimalJSONString,
	}
}

// Load reads and validates a configuration from a JSON file. A missing path
// returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapFatal(err, "Config", "Load", "open config file")
	}
	defer f.Close()
	return Read(f)
}

// Read reads and validates a configuration from a reader. Absent fields keep
// their defaults.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.WrapFatal(err, "Config", "Read", "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return errors.WrapFatal(
			fmt.Errorf("%w: namespace must not be empty", errors.ErrInvalidConfig),
			"Config", "Validate", "check namespace")
	}
	if !c.ComponentMode.IsValid() {
		return errors.WrapFatal(
			fmt.Errorf("%w: unknown component mode %q", errors.ErrInvalidConfig, c.ComponentMode),
			"Config", "Validate", "check component mode")
	}
	if !c.CommandMode.IsValid() {
		return errors.WrapFatal(
			fmt.Errorf("%w: unknown command mode %q", errors.ErrInvalidConfig, c.CommandMode),
			"Config", "Validate", "check command mode")
	}
	if !c.ScaledDecimalMode.IsValid() {
		return errors.WrapFatal(
			fmt.Errorf("%w: unknown scaled decimal mode %q", errors.ErrInvalidConfig, c.ScaledDecimalMode),
			"Config", "Validate", "check scaled decimal mode")
	}
	return nil
}
