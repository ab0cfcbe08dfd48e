// Package lexicon converts raw speech-to-text fragments into their written
// form: spoken numbers become digits, spoken punctuation becomes symbols,
// spoken units become report abbreviations, and dimension and time phrases
// are joined ("five by four" → "5 x 4", "four o'clock" → "4:00").
//
// Conversion is purely lexical. The package never sees the surrounding
// document — joining a converted fragment onto existing text is the job of
// the boundary package.
//
// A [Normalizer] carries an optional caller-supplied replacement table
// (custom vocabulary) layered after the built-in tables. [Normalize] is the
// built-ins-only convenience. Both are deterministic pure functions of
// their input: the same raw fragment always yields the same output.
package lexicon

import (
	"fmt"
	"regexp"
	"strings"
)

// Replacement is one entry of a caller-supplied word table: a spoken phrase
// and the text to write in its place. Matching is case-insensitive and
// word-boundary anchored, like the built-in tables.
type Replacement struct {
	Spoken  string
	Written string
}

// Normalizer applies the built-in conversions plus an optional custom
// replacement table. It is read-only after construction and safe for
// concurrent use.
type Normalizer struct {
	custom []rule
}

// New compiles the custom replacement table and returns a [Normalizer].
// Entries are applied in the given order, after all built-in conversions.
// An entry with an empty spoken phrase is an error.
func New(custom ...Replacement) (*Normalizer, error) {
	n := &Normalizer{}
	for i, c := range custom {
		if strings.TrimSpace(c.Spoken) == "" {
			return nil, fmt.Errorf("lexicon: replacement %d has an empty spoken phrase", i)
		}
		re, err := compileSpoken(c.Spoken)
		if err != nil {
			return nil, fmt.Errorf("lexicon: replacement %q: %w", c.Spoken, err)
		}
		n.custom = append(n.custom, rule{re: re, repl: c.Written})
	}
	return n, nil
}

// Normalize converts raw using the built-in tables only.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}

var defaultNormalizer = &Normalizer{}

var (
	// "5 point 4" (after number-word conversion) → "5.4". The fraction may
	// be several spelled digits: "5 point 2 5" → "5.25".
	decimalRe = regexp.MustCompile(`(?i)\b(\d+) point (\d+(?: \d+)*)\b`)

	// "5 by 4" / "5.1 by 4 by 3" → x-joined dimensions.
	dimensionRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?) by (\d+(?:\.\d+)?)(?: by (\d+(?:\.\d+)?))?\b`)

	// "4 o'clock" (numeral left over from number-word conversion) → "4:00".
	oclockRe = regexp.MustCompile(`(?i)\b(\d{1,2}) o'?clock\b`)

	wsRunRe         = regexp.MustCompile(`[^\S\n]+`)
	spaceAroundNLRe = regexp.MustCompile(`[^\S\n]*\n[^\S\n]*`)
	prePunctRe      = regexp.MustCompile(` +([.,;:!?%)\]])`)
	postOpenRe      = regexp.MustCompile(`([(\[]) +`)
	slashGapRe      = regexp.MustCompile(` */ *`)
)

// Normalize converts a raw transcript fragment to its written form.
// The empty string (or a fragment of pure whitespace) normalizes to "".
func (n *Normalizer) Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Incoming whitespace (including recognizer newlines) carries no
	// meaning; collapse it before token matching.
	s = wsRunRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\n", " ")

	// Number words first, then the phrase joins that consume the digits
	// they produce. Running the joins on digits means a dimension like
	// "five by four" and its already-spoken form "5 by 4" take the same
	// path.
	s = convertNumberWords(s)
	s = decimalRe.ReplaceAllStringFunc(s, joinDecimal)
	s = dimensionRe.ReplaceAllStringFunc(s, joinDimension)
	s = oclockRe.ReplaceAllString(s, "$1:00")

	s = applyRules(s, punctuationRules)
	s = applyRules(s, unitRules)

	for _, r := range n.custom {
		s = r.re.ReplaceAllLiteralString(s, r.repl)
	}

	// Tidy: collapse space runs (newlines from structural words survive),
	// drop spaces that token substitution left around punctuation.
	s = wsRunRe.ReplaceAllString(s, " ")
	s = spaceAroundNLRe.ReplaceAllString(s, "\n")
	s = prePunctRe.ReplaceAllString(s, "$1")
	s = postOpenRe.ReplaceAllString(s, "$1")
	s = slashGapRe.ReplaceAllString(s, "/")

	return strings.Trim(s, " ")
}

// joinDecimal rewrites one decimalRe match, concatenating the fraction
// digits: "5 point 2 5" → "5.25".
func joinDecimal(match string) string {
	sub := decimalRe.FindStringSubmatch(match)
	frac := strings.Join(strings.Fields(sub[2]), "")
	return sub[1] + "." + frac
}

// joinDimension rewrites one dimensionRe match into its x-joined form:
// "5 by 4" → "5 x 4", "5 by 4 by 3" → "5 x 4 x 3".
func joinDimension(match string) string {
	sub := dimensionRe.FindStringSubmatch(match)
	out := sub[1] + " x " + sub[2]
	if sub[3] != "" {
		out += " x " + sub[3]
	}
	return out
}
