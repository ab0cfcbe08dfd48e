package boundary

import "unicode"

// IsWordChar reports whether r belongs to a dictated word for the purposes
// of selection expansion and adjacency checks. Letters, digits, underscore,
// apostrophe, and hyphen all count: medical dictation is full of tokens like
// "T2-weighted" and "patient's" that must be treated as single words.
//
// This predicate is the single definition shared by [ExpandToWordBoundaries]
// and [Spacing]. Using different definitions in the two places leads to
// inconsistent handling of hyphens and apostrophes at selection edges.
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\'' || r == '-'
}

// isAlnum reports whether r is a letter or digit. Used for the
// word-adjacency spacing rule, which is stricter than [IsWordChar]:
// a hyphen next to an insertion does not call for a separating space.
func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
