// Package boundary implements the spacing and capitalization decisions made
// at the seam between freshly dictated text and the text already in the
// document.
//
// The engine only ever looks at the one or two characters immediately
// adjacent to the insertion point. It never reflows or reformats text
// further away — a dictation hiccup must not be able to disturb parts of a
// report the clinician did not just speak into.
//
// All trimming decisions are expressed as byte counts of *whitespace* to
// remove ([Insertion.LeftTrim], [Insertion.RightTrim]). The engine never
// asks the caller to delete a non-whitespace character; that is a hard
// invariant of every code path in this package.
package boundary

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// sentencePunct is the set of characters that attach directly to the word
// on their left (no preceding space).
const sentencePunct = ".,;:!?"

// Insertion is the output of [Spacing]: the (possibly space- and
// case-adjusted) text to insert, plus how many bytes of existing adjacent
// whitespace must be deleted on each side of the insertion point.
type Insertion struct {
	// Text is the adjusted text to insert.
	Text string

	// LeftTrim is the number of bytes of whitespace to delete immediately
	// left of the insertion point.
	LeftTrim int

	// RightTrim is the number of bytes of whitespace to delete immediately
	// right of the insertion point.
	RightTrim int
}

// Spacing decides how insert joins onto its neighbours. left and right are
// the document text immediately before and after the insertion point (the
// full strings may be passed; only the edge characters are inspected).
//
// Rules, applied in order:
//
//  1. A bare newline insertion ("\n" or "\n\n") trims up to two bytes of
//     whitespace on each side and is emitted verbatim — no word spacing.
//  2. Slash is a joiner: "/" never has a space on either side, and existing
//     adjacent spaces are trimmed.
//  3. Two alphanumerics meeting across the seam get a single separating
//     space.
//  4. Sentence punctuation at the start of insert swallows one stray space
//     on its left.
//  5. At document start, after a sentence-ending ".", "!" or "?", or after
//     a line break, the first letter of insert is capitalized; a separating
//     space is added first when the punctuation has no trailing space yet.
//  6. Rules 2–4 apply mirrored on the right edge.
func Spacing(left, insert, right string) Insertion {
	if insert == "" {
		return Insertion{}
	}

	// Rule 1: structural newlines bypass word spacing entirely.
	if insert == "\n" || insert == "\n\n" {
		return Insertion{
			Text:      insert,
			LeftTrim:  trailingWhitespace(left, 2),
			RightTrim: leadingWhitespace(right, 2),
		}
	}

	out := Insertion{Text: insert}

	lastLeft, hasLeft := lastRune(left)
	firstIns, _ := firstRune(insert)
	lastIns, _ := lastRune(insert)
	firstRight, hasRight := firstRune(right)

	// --- Left edge ---
	switch {
	case firstIns == '/' || (hasLeft && lastLeft == '/'):
		// Rule 2: slash joins with no space; eat stray spaces between.
		out.LeftTrim = trailingWhitespace(left, 2)
	case hasLeft && isAlnum(lastLeft) && isAlnum(firstIns):
		// Rule 3: word meets word.
		out.Text = " " + out.Text
	case strings.ContainsRune(sentencePunct, firstIns) && hasLeft && lastLeft == ' ':
		// Rule 4: punctuation swallows the space before it.
		out.LeftTrim = 1
	}

	// Rule 5: sentence-start capitalization.
	if capitalizeAfter(left) {
		if hasLeft && endsInBarePunct(left) && isAlnum(firstIns) {
			out.Text = " " + strings.TrimPrefix(out.Text, " ")
		}
		out.Text = upperFirstLetter(out.Text)
	}

	// --- Right edge (rule 6) ---
	switch {
	case lastIns == '/' || (hasRight && firstRight == '/'):
		out.RightTrim = leadingWhitespace(right, 2)
	case hasRight && isAlnum(lastIns) && isAlnum(firstRight):
		out.Text += " "
	case hasRight && strings.ContainsRune(sentencePunct, firstRight) && strings.HasSuffix(out.Text, " "):
		out.Text = strings.TrimSuffix(out.Text, " ")
	}

	return out
}

// capitalizeAfter reports whether text inserted after left should start a
// sentence: left is empty, ends with sentence-ending punctuation (optionally
// followed by whitespace), or ends on a fresh line.
func capitalizeAfter(left string) bool {
	trimmed := strings.TrimRightFunc(left, unicode.IsSpace)
	if trimmed == "" {
		return true
	}
	if strings.ContainsRune(left[len(trimmed):], '\n') {
		return true
	}
	last, _ := lastRune(trimmed)
	return last == '.' || last == '!' || last == '?'
}

// endsInBarePunct reports whether left ends directly in sentence-ending
// punctuation with no trailing whitespace yet.
func endsInBarePunct(left string) bool {
	last, ok := lastRune(left)
	return ok && (last == '.' || last == '!' || last == '?')
}

// upperFirstLetter upper-cases the first letter in s when it is lowercase.
// Leading non-letters (a prepended space, an opening parenthesis) are
// skipped, not altered.
func upperFirstLetter(s string) string {
	for i, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsLower(r) {
			return s
		}
		return s[:i] + string(unicode.ToUpper(r)) + s[i+utf8.RuneLen(r):]
	}
	return s
}

// trailingWhitespace returns the number of trailing whitespace bytes of s,
// capped at max.
func trailingWhitespace(s string, max int) int {
	n := 0
	for n < max && len(s) > n {
		r, size := utf8.DecodeLastRuneInString(s[:len(s)-n])
		if !unicode.IsSpace(r) {
			break
		}
		n += size
	}
	return n
}

// leadingWhitespace returns the number of leading whitespace bytes of s,
// capped at max.
func leadingWhitespace(s string, max int) int {
	n := 0
	for n < max && n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !unicode.IsSpace(r) {
			break
		}
		n += size
	}
	return n
}

func firstRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

func lastRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r, true
}
