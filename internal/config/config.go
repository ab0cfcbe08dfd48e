// Package config provides the configuration schema and loader for the
// inscribe dictation service.
package config

import (
	"regexp"

	"github.com/medvoice/inscribe/internal/command"
	"github.com/medvoice/inscribe/internal/lexicon"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader];
// individual fields can be overridden through INSCRIBE_* environment
// variables.
type Config struct {
	// LogLevel controls verbosity. Default: info.
	LogLevel LogLevel `yaml:"log_level" env:"INSCRIBE_LOG_LEVEL"`

	// MetricsAddr is the TCP address the Prometheus /metrics endpoint
	// listens on (e.g., ":9090"). Empty disables the endpoint.
	MetricsAddr string `yaml:"metrics_addr" env:"INSCRIBE_METRICS_ADDR"`

	// QueueSize is the fragment queue buffer capacity. Default: 16.
	QueueSize int `yaml:"queue_size" env:"INSCRIBE_QUEUE_SIZE"`

	// Dictation configures the normalizer and command classifier.
	Dictation DictationConfig `yaml:"dictation"`
}

// DictationConfig tunes the fragment processing pipeline: the custom
// vocabulary layered onto the built-in replacement table, and the command
// classifier's extensible pattern and mis-transcription lists.
type DictationConfig struct {
	// Replacements is the custom vocabulary, applied after the built-in
	// number/punctuation/unit tables in listed order.
	Replacements []ReplacementConfig `yaml:"replacements"`

	// DeleteVariants lists additional known mis-transcriptions of the
	// delete command, on top of the built-in list. The built-ins were
	// derived empirically from one recognizer; a different upstream
	// recognizer garbles differently.
	DeleteVariants []string `yaml:"delete_variants" env:"INSCRIBE_DELETE_VARIANTS" envSeparator:","`

	// FuzzyThreshold is the minimum Jaro-Winkler similarity for fuzzy
	// delete detection, in (0, 1]. 0 means use the built-in default.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold" env:"INSCRIBE_FUZZY_THRESHOLD"`

	// Commands lists extra command patterns evaluated after the built-in
	// table.
	Commands []CommandPatternConfig `yaml:"commands"`
}

// ReplacementConfig is one custom vocabulary entry: a spoken phrase and the
// text written in its place. Matching is case-insensitive and
// word-boundary-anchored.
type ReplacementConfig struct {
	Spoken  string `yaml:"spoken"`
	Written string `yaml:"written"`
}

// CommandPatternConfig is one user-supplied command pattern.
type CommandPatternConfig struct {
	// Pattern is a regular expression matched against the whole trimmed
	// fragment. Patterns should anchor with ^...$ themselves.
	Pattern string `yaml:"pattern"`

	// Signal names the command produced on match: delete, undo, redo,
	// new-paragraph or new-line.
	Signal string `yaml:"signal"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		LogLevel:  LogInfo,
		QueueSize: 16,
	}
}

// CustomVocabulary converts the replacement entries into
// [lexicon.Replacement] values ready for [lexicon.New].
func (d DictationConfig) CustomVocabulary() []lexicon.Replacement {
	out := make([]lexicon.Replacement, 0, len(d.Replacements))
	for _, r := range d.Replacements {
		out = append(out, lexicon.Replacement{Spoken: r.Spoken, Written: r.Written})
	}
	return out
}

// ClassifierOptions converts the dictation settings into [command.Option]
// values for [command.New]. Call [Validate] first; invalid patterns or
// signal names panic here.
func (d DictationConfig) ClassifierOptions() []command.Option {
	var opts []command.Option
	if d.FuzzyThreshold > 0 {
		opts = append(opts, command.WithFuzzyThreshold(d.FuzzyThreshold))
	}
	if len(d.DeleteVariants) > 0 {
		opts = append(opts, command.WithDeleteVariants(d.DeleteVariants...))
	}
	if len(d.Commands) > 0 {
		extra := make([]command.Pattern, 0, len(d.Commands))
		for _, c := range d.Commands {
			sig, ok := command.ParseSignal(c.Signal)
			if !ok {
				panic("config: unvalidated command signal " + c.Signal)
			}
			extra = append(extra, command.Pattern{
				Name:   "custom:" + sig.String(),
				Regex:  regexp.MustCompile("(?i)" + c.Pattern),
				Signal: sig,
			})
		}
		opts = append(opts, command.WithPatterns(extra...))
	}
	return opts
}
