package lexicon

import (
	"regexp"
	"strings"
)

// rule is a compiled spoken-phrase replacement. Patterns are case-insensitive
// and word-boundary anchored so that compound words containing a trigger
// substring ("slasher", "backslash") are never touched.
type rule struct {
	re   *regexp.Regexp
	repl string
}

// compileSpoken turns a spoken phrase into its anchored pattern. Words in
// the phrase may be separated by any run of whitespace in the input.
func compileSpoken(phrase string) (*regexp.Regexp, error) {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.Compile(`(?i)\b` + strings.Join(words, `\s+`) + `\b`)
}

func mustRule(phrase, repl string) rule {
	re, err := compileSpoken(phrase)
	if err != nil {
		panic("lexicon: bad builtin phrase " + phrase + ": " + err.Error())
	}
	return rule{re: re, repl: repl}
}

// punctuationRules maps spoken punctuation and structural phrases to their
// written form. Order matters: multi-word phrases are listed before any
// single word they contain ("semi colon" before "colon", "new paragraph"
// before "paragraph" is irrelevant since both yield the same break, but
// "question mark" must run before a bare "mark" ever would).
var punctuationRules = []rule{
	// Structural breaks first — they produce newlines that the final
	// whitespace collapse preserves.
	mustRule("new paragraph", "\n\n"),
	mustRule("next paragraph", "\n\n"),
	mustRule("paragraph", "\n\n"),
	mustRule("new line", "\n"),
	mustRule("next line", "\n"),

	mustRule("full stop", "."),
	mustRule("period", "."),
	mustRule("comma", ","),
	mustRule("semi colon", ";"),
	mustRule("semicolon", ";"),
	mustRule("colon", ":"),
	mustRule("question mark", "?"),
	mustRule("exclamation mark", "!"),
	mustRule("exclamation point", "!"),
	mustRule("open parenthesis", "("),
	mustRule("open paren", "("),
	mustRule("close parenthesis", ")"),
	mustRule("close paren", ")"),
	mustRule("open bracket", "["),
	mustRule("close bracket", "]"),
	mustRule("dash", "-"),
	mustRule("hyphen", "-"),
	mustRule("forward slash", "/"),
	mustRule("slash", "/"),
	mustRule("open quote", `"`),
	mustRule("close quote", `"`),
	mustRule("unquote", `"`),
	mustRule("quote", `"`),
	mustRule("ampersand", "&"),
	mustRule("percent sign", "%"),
	mustRule("percent", "%"),
	mustRule("plus sign", "+"),
	mustRule("plus", "+"),
	mustRule("equal sign", "="),
	mustRule("equals", "="),
}

// unitRules maps spoken measurement units to their report abbreviations.
// Radiology reports write "5 mm nodule", never "5 millimeter nodule".
var unitRules = []rule{
	mustRule("millimeters", "mm"),
	mustRule("millimeter", "mm"),
	mustRule("centimeters", "cm"),
	mustRule("centimeter", "cm"),
	mustRule("milliliters", "mL"),
	mustRule("milliliter", "mL"),
	mustRule("milligrams", "mg"),
	mustRule("milligram", "mg"),
	mustRule("kilograms", "kg"),
	mustRule("kilogram", "kg"),
}

// applyRules applies every rule to s in order.
func applyRules(s string, rules []rule) string {
	for _, r := range rules {
		s = r.re.ReplaceAllLiteralString(s, r.repl)
	}
	return s
}
