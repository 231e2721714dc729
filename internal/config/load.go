package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/jacksparrot/jsp/internal/messages"
)

// ErrConfigValidation wraps validation failures, as opposed to TOML syntax
// or filesystem errors.
var ErrConfigValidation = errors.New("config validation failed")

// lookupEnv is a test seam.
var lookupEnv = os.LookupEnv

// Load reads the config file at path, applies defaults and environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	return Parse(data, path)
}

// Parse decodes config TOML from source (used in error messages).
func Parse(data []byte, source string) (*Config, error) {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, strict.String())
		}
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	cfg.applyDefaults()
	cfg.applyEnv(lookupEnv)
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return &cfg, nil
}

// Default returns the built-in template config with environment overrides applied.
// It is used when a project has no config file yet.
func Default() (*Config, error) {
	return Parse([]byte(DefaultConfigTOML), messages.ConfigTemplateSource)
}
