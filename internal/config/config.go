// Package config holds the derivation defaults used by the pbkdf2 command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mxk/go-pbkdf2/v2/internal/codec"
	"github.com/mxk/go-pbkdf2/v2/pbkdf2"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted for the config file path
// when none is given on the command line.
const EnvPath = "PBKDF2_CONFIG"

const (
	DefaultIterations = 600000
	DefaultKeyLength  = 32
)

// Config holds derivation parameters. Keys absent from a file keep the default.
type Config struct {
	PRF          string `yaml:"prf,omitempty"`
	Iterations   int    `yaml:"iterations,omitempty"`
	KeyLength    int    `yaml:"key_length,omitempty"`
	SaltEncoding string `yaml:"salt_encoding,omitempty"`
	Output       string `yaml:"output,omitempty"`
	Workers      int    `yaml:"workers,omitempty"`
}

// Default returns the built-in parameters.
func Default() *Config {
	return &Config{
		PRF:          pbkdf2.DefaultPRF,
		Iterations:   DefaultIterations,
		KeyLength:    DefaultKeyLength,
		SaltEncoding: string(codec.UTF8),
		Output:       string(codec.Hex),
		Workers:      1,
	}
}

// Load reads the YAML file at path over the defaults. An empty path falls back
// to $PBKDF2_CONFIG, and if that is unset too the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first unusable parameter.
func (c *Config) Validate() error {
	if _, err := pbkdf2.LookupPRF(c.PRF); err != nil {
		return fmt.Errorf("prf: %w", err)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations: must be positive, got %d", c.Iterations)
	}
	if c.KeyLength < 1 {
		return fmt.Errorf("key_length: must be positive, got %d", c.KeyLength)
	}
	if _, err := codec.Parse(c.SaltEncoding); err != nil {
		return fmt.Errorf("salt_encoding: %w", err)
	}
	if _, err := codec.Parse(c.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers: must not be negative, got %d", c.Workers)
	}
	return nil
}
