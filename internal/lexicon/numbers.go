package lexicon

import (
	"strconv"
	"strings"
)

var onesWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
}

var teenWords = map[string]int{
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

var tensWords = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// isNumberWord reports whether w (lowercased) starts a spoken number.
func isNumberWord(w string) bool {
	w = strings.ToLower(w)
	if _, ok := onesWords[w]; ok {
		return true
	}
	if _, ok := teenWords[w]; ok {
		return true
	}
	if _, ok := tensWords[w]; ok {
		return true
	}
	if tens, ones, found := strings.Cut(w, "-"); found {
		_, okT := tensWords[tens]
		_, okO := onesWords[ones]
		return okT && okO
	}
	return false
}

// convertNumberWords rewrites every maximal span of spoken number words in s
// to its digit form: "twenty one" → "21", "two hundred fifty" → "250",
// "three thousand five hundred" → "3500". Tokens that are not part of a
// number span pass through untouched.
//
// Consecutive standalone digits stay separate: "one two three" → "1 2 3",
// matching how recognizers deliver spelled-out digit strings.
func convertNumberWords(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return s
	}

	var out []string
	i := 0
	for i < len(tokens) {
		val, n := parseNumberSpan(tokens, i)
		if n == 0 {
			out = append(out, tokens[i])
			i++
			continue
		}
		out = append(out, strconv.Itoa(val))
		i += n
	}
	return strings.Join(out, " ")
}

// parseNumberSpan parses the longest spoken number starting at tokens[start].
// It returns the numeric value and the number of tokens consumed; n == 0
// means tokens[start] does not begin a number.
func parseNumberSpan(tokens []string, start int) (val, n int) {
	total := 0
	current := 0
	onesDone := false
	tensDone := false
	afterScale := false
	matched := false

	i := start
loop:
	for i < len(tokens) {
		w := strings.ToLower(tokens[i])

		// Hyphenated compounds: "twenty-one".
		if tens, ones, found := strings.Cut(w, "-"); found {
			tv, okT := tensWords[tens]
			ov, okO := onesWords[ones]
			if !okT || !okO || onesDone || tensDone {
				break loop
			}
			current += tv + ov
			onesDone, tensDone = true, true
			afterScale = false
			matched = true
			i++
			continue
		}

		switch {
		case w == "and" && afterScale && i+1 < len(tokens) && isNumberWord(tokens[i+1]):
			// "two hundred and five" — connective, contributes nothing.
			// Only consumed right after a scale word so that "one and two"
			// stays two separate numbers.
		case onesWords[w] != 0 || w == "zero":
			if onesDone {
				break loop
			}
			current += onesWords[w]
			onesDone = true
			afterScale = false
			matched = true
		case teenWords[w] != 0:
			if onesDone || tensDone {
				break loop
			}
			current += teenWords[w]
			onesDone, tensDone = true, true
			afterScale = false
			matched = true
		case tensWords[w] != 0:
			if onesDone || tensDone {
				break loop
			}
			current += tensWords[w]
			tensDone = true
			afterScale = false
			matched = true
		case w == "hundred":
			if !matched || current == 0 {
				break loop
			}
			current *= 100
			onesDone, tensDone = false, false
			afterScale = true
		case w == "thousand":
			if !matched || current == 0 {
				break loop
			}
			total += current * 1000
			current = 0
			onesDone, tensDone = false, false
			afterScale = true
		default:
			break loop
		}
		i++
	}

	if !matched {
		return 0, 0
	}
	return total + current, i - start
}
