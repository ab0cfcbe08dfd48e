package command

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	// defaultFuzzyThreshold is the minimum Jaro-Winkler similarity for the
	// fuzzy delete stage.
	defaultFuzzyThreshold = 0.84

	// fuzzyMaxWords and fuzzyMaxLen bound which fragments are eligible for
	// fuzzy matching. Long fragments are dictation, not garbled commands,
	// and testing them would inflate the false-positive risk.
	fuzzyMaxWords = 3
	fuzzyMaxLen   = 16
)

// deleteReference holds the canonical phrases fuzzy candidates are scored
// against.
var deleteReference = []string{"delete that", "delete this", "delete"}

// Option is a functional option for configuring a [Classifier].
type Option func(*Classifier)

// WithFuzzyThreshold sets the minimum Jaro-Winkler similarity required for
// the fuzzy delete stage. Default: 0.84.
func WithFuzzyThreshold(threshold float64) Option {
	return func(c *Classifier) {
		c.threshold = threshold
	}
}

// WithPatterns appends extra command patterns evaluated after the built-in
// table.
func WithPatterns(extra ...Pattern) Option {
	return func(c *Classifier) {
		c.patterns = append(c.patterns, extra...)
	}
}

// WithDeleteVariants appends extra known mis-transcriptions of the delete
// command, checked by exact (case-insensitive) equality before the
// similarity scoring runs.
func WithDeleteVariants(variants ...string) Option {
	return func(c *Classifier) {
		for _, v := range variants {
			v = strings.ToLower(strings.TrimSpace(v))
			if v != "" {
				c.variants = append(c.variants, v)
			}
		}
	}
}

// Classifier classifies transcript fragments into command signals.
// It is read-only after construction and safe for concurrent use.
type Classifier struct {
	patterns  []Pattern
	variants  []string
	threshold float64
}

// New returns a [Classifier] with the built-in pattern table and delete
// variant list, adjusted by opts.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		patterns:  defaultPatterns(),
		variants:  defaultDeleteVariants(),
		threshold: defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Classify inspects one raw fragment and returns its [Signal]. Fragments
// that match no command pattern, exactly or fuzzily, are [None].
//
// Classification is deterministic: the pattern table is evaluated in fixed
// order and the first match wins, so an ambiguous fragment always resolves
// to the same signal.
func (c *Classifier) Classify(raw string) Signal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return None
	}

	for _, p := range c.patterns {
		if p.Regex.MatchString(trimmed) {
			return p.Signal
		}
	}

	if c.fuzzyDelete(trimmed) {
		return Delete
	}
	return None
}

// fuzzyDelete reports whether trimmed is a garbled delete command. Only
// short fragments are eligible. Known variants match by exact equality;
// everything else needs both a Double Metaphone code overlap with "delete"
// and a Jaro-Winkler score against a canonical delete phrase at or above
// the threshold.
func (c *Classifier) fuzzyDelete(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	if len(lower) > fuzzyMaxLen || len(strings.Fields(lower)) > fuzzyMaxWords {
		return false
	}

	for _, v := range c.variants {
		if lower == v {
			return true
		}
	}

	if !metaphoneOverlap(lower, "delete") {
		return false
	}
	for _, ref := range deleteReference {
		if matchr.JaroWinkler(lower, ref, false) >= c.threshold {
			return true
		}
	}
	return false
}

// metaphoneOverlap reports whether any token of phrase shares a Double
// Metaphone code with word.
func metaphoneOverlap(phrase, word string) bool {
	wp, ws := matchr.DoubleMetaphone(word)
	for _, tok := range strings.Fields(phrase) {
		tp, ts := matchr.DoubleMetaphone(tok)
		if tp != "" && (tp == wp || tp == ws) {
			return true
		}
		if ts != "" && (ts == wp || ts == ws) {
			return true
		}
	}
	return false
}
