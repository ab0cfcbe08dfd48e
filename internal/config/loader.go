package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"

	"github.com/medvoice/inscribe/internal/command"
)

// Load reads the YAML configuration file at path, applies INSCRIBE_*
// environment overrides, and returns a validated [Config]. An empty path
// starts from [Default] and applies the environment on top.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %q: %w", path, err)
		}
		defer f.Close()
		if err := decode(f, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: environment overrides: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// No environment overrides are applied. Useful in tests where configs are
// constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := decode(r, cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	return nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.QueueSize < 0 {
		errs = append(errs, fmt.Errorf("queue_size %d must not be negative", cfg.QueueSize))
	}

	d := cfg.Dictation
	if d.FuzzyThreshold < 0 || d.FuzzyThreshold > 1 {
		errs = append(errs, fmt.Errorf("dictation.fuzzy_threshold %.3f is out of range [0, 1]", d.FuzzyThreshold))
	}
	for i, r := range d.Replacements {
		if r.Spoken == "" {
			errs = append(errs, fmt.Errorf("dictation.replacements[%d].spoken is required", i))
		}
	}
	for i, c := range d.Commands {
		prefix := fmt.Sprintf("dictation.commands[%d]", i)
		if c.Pattern == "" {
			errs = append(errs, fmt.Errorf("%s.pattern is required", prefix))
		} else if _, err := regexp.Compile("(?i)" + c.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("%s.pattern does not compile: %w", prefix, err))
		}
		if _, ok := command.ParseSignal(c.Signal); !ok {
			errs = append(errs, fmt.Errorf("%s.signal %q is invalid; valid values: delete, undo, redo, new-paragraph, new-line", prefix, c.Signal))
		}
	}

	return errors.Join(errs...)
}
