package clean

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	atCompanySuffix = regexp.MustCompile(`\bat\s+.*$`)
	dashSuffix      = regexp.MustCompile(`\s-\s.*$`)
)

// NormalizeTitle maps a raw job title onto the fixed role vocabulary.
// Trailing " at <company>" and " - <suffix>" fragments are stripped first,
// then the role pattern groups run in fixed precedence order. A title that
// matches no group comes back with each word capitalized instead.
func (v *Vocabulary) NormalizeTitle(title string) string {
	if title == "" || title == Unknown {
		return Unknown
	}

	t := strings.ToLower(title)
	t = atCompanySuffix.ReplaceAllString(t, "")
	t = dashSuffix.ReplaceAllString(t, "")

	for _, rp := range v.roles {
		if rp.re.MatchString(t) {
			return rp.label
		}
	}
	return capitalizeWords(t)
}

// ExtractSeniority reads a seniority level off the raw title. Executive
// patterns are tried first so "Senior Director" resolves as Executive; a
// title with no level signal defaults to Mid Level.
func (v *Vocabulary) ExtractSeniority(title string) string {
	if title == "" || title == Unknown {
		return Unknown
	}

	t := strings.ToLower(title)
	for _, sp := range v.seniorities {
		if sp.re.MatchString(t) {
			return sp.level
		}
	}
	return "Mid Level"
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
