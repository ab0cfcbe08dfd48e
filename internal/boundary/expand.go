package boundary

import "unicode/utf8"

// ExpandToWordBoundaries widens a non-collapsed selection so that both ends
// fall on word boundaries of text. A selection covering only part of a word
// ("i" inside "patient") would otherwise be replaced with a mid-word splice
// that breaks every downstream spacing rule.
//
// A collapsed selection (start == end) is returned unchanged — a caret is
// never inflated into a word selection. Offsets are byte offsets into text;
// out-of-range inputs are clamped to [0, len(text)] before walking. The
// returned range always contains the input range.
func ExpandToWordBoundaries(text string, start, end int) (int, int) {
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start == end {
		return start, end
	}

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !IsWordChar(r) {
			break
		}
		start -= size
	}
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if !IsWordChar(r) {
			break
		}
		end += size
	}
	return start, end
}
