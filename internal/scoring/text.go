package scoring

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining diacritical marks after NFD decomposition,
// so "café" and "cafe" compare equal.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a free-text answer: trim, strip diacritics, lowercase.
func Normalize(s string) string {
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}

// MatchText reports whether a free-text input is accepted by the rule, either
// by membership in the accepted list (both sides canonicalized the same way)
// or by matching one of the regex patterns against the raw trimmed input.
func MatchText(input string, rule TextRule) bool {
	canon := canonical(input, rule)
	for _, a := range rule.Accepted {
		if canonical(a, rule) == canon {
			return true
		}
	}

	trimmed := strings.TrimSpace(input)
	for _, pattern := range rule.Regex {
		re, err := regexp.Compile(rule.compilable(pattern))
		if err != nil {
			// rejected by TextRule.Validate at load time; never a match here
			continue
		}
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// canonical applies the rule's normalization switches to one comparand.
func canonical(s string, rule TextRule) string {
	if rule.Normalize != nil && !*rule.Normalize {
		s = strings.TrimSpace(s)
		if rule.CaseSensitive {
			return s
		}
		return strings.ToLower(s)
	}
	return Normalize(s)
}
