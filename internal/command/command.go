// Package command decides whether a transcript fragment is literal dictated
// content or one of the spoken editing commands (delete, undo, redo,
// paragraph and line breaks).
//
// Classification is whole-fragment: a fragment either matches a command
// pattern in its entirety or it is content. A fragment that merely contains
// a command word inside longer dictation ("do not delete that section") is
// content and flows on to the lexical normalizer.
//
// Detection runs in two stages:
//
//  1. A fixed, ordered table of anchored regex patterns, one per
//     [Signal]. The table is explicitly extensible — callers may register
//     additional patterns (new empirical mis-transcriptions, localized
//     phrasings) without touching control flow.
//
//  2. A fuzzy stage for the delete command only: speech recognizers garble
//     short command phrases constantly ("delete that" arrives as "dolita"),
//     so short fragments are tested against known garbled variants and then
//     scored with Double Metaphone overlap plus Jaro-Winkler similarity.
//     The stage trades a small false-positive risk for much higher recall;
//     the similarity threshold is configurable.
package command

import (
	"regexp"
	"strings"
)

// Signal is the classification result for one fragment. A fragment is
// either exactly one command or literal content ([None]) — never both.
type Signal int

const (
	// None marks a fragment as literal content.
	None Signal = iota

	// Delete removes the current selection, or the word before the caret
	// when nothing is selected.
	Delete

	// Undo reverts the most recent edit.
	Undo

	// Redo re-applies the most recently undone edit.
	Redo

	// NewParagraph inserts a paragraph break (blank line).
	NewParagraph

	// NewLine inserts a single line break.
	NewLine
)

// String returns the lowercase name of s.
func (s Signal) String() string {
	switch s {
	case Delete:
		return "delete"
	case Undo:
		return "undo"
	case Redo:
		return "redo"
	case NewParagraph:
		return "new-paragraph"
	case NewLine:
		return "new-line"
	default:
		return "none"
	}
}

// ParseSignal maps a signal name (as produced by [Signal.String]) back to
// its [Signal]. Matching is case-insensitive. The second return is false
// for unknown names; "none" itself is not accepted, since a configured
// command pattern must produce an actual command.
func ParseSignal(name string) (Signal, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "delete":
		return Delete, true
	case "undo":
		return Undo, true
	case "redo":
		return Redo, true
	case "new-paragraph":
		return NewParagraph, true
	case "new-line":
		return NewLine, true
	}
	return None, false
}

// Pattern pairs an anchored regex with the [Signal] it produces.
type Pattern struct {
	// Regex is the compiled pattern. It is matched against the trimmed,
	// whole fragment; patterns should anchor with ^...$ themselves.
	Regex *regexp.Regexp

	// Name is a human-readable label for logging.
	Name string

	// Signal is produced when Regex matches.
	Signal Signal
}

// defaultPatterns returns the built-in command table, evaluated in order.
func defaultPatterns() []Pattern {
	return []Pattern{
		{
			Name:   "delete",
			Regex:  regexp.MustCompile(`(?i)^(?:delete|clear|remove)(?:\s+(?:that|this|it|those|these|all|a|at|the))?$`),
			Signal: Delete,
		},
		{
			Name:   "undo",
			Regex:  regexp.MustCompile(`(?i)^undo(?:\s+that)?$`),
			Signal: Undo,
		},
		{
			Name:   "redo",
			Regex:  regexp.MustCompile(`(?i)^redo(?:\s+that)?$`),
			Signal: Redo,
		},
		{
			Name:   "new-paragraph",
			Regex:  regexp.MustCompile(`(?i)^(?:new|next)\s+paragraph$|^paragraph$`),
			Signal: NewParagraph,
		},
		{
			Name:   "new-line",
			Regex:  regexp.MustCompile(`(?i)^(?:new|next)\s+line$|^line\s+break$`),
			Signal: NewLine,
		},
	}
}

// defaultDeleteVariants lists garbled forms of "delete that" observed from
// the upstream recognizer. The list is empirical: a different recognizer
// will garble differently, and the variants should be re-derived rather
// than assumed to transfer. Additional variants can be supplied via
// [WithDeleteVariants].
func defaultDeleteVariants() []string {
	return []string{
		"dolita",
		"delita",
		"dalita",
		"deleta",
		"dileet that",
		"the lead that",
	}
}
