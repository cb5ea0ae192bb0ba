package clean

import "strings"

// ExtractSkills finds vocabulary skills mentioned in a description. This is
// closed-vocabulary extraction: only canonical spellings from the skill table
// can appear in the result, regardless of how the text cases them.
//
// Two passes run: a word-boundary regex search per skill, and an equality
// check of noun-phrase-like chunks against the vocabulary. The chunk pass is
// mostly redundant with the regex pass but catches boundary cases around
// punctuation-heavy spellings.
func (v *Vocabulary) ExtractSkills(description string) []string {
	if strings.TrimSpace(description) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var found []string
	add := func(canonical string) {
		if !seen[canonical] {
			seen[canonical] = true
			found = append(found, canonical)
		}
	}

	for _, sp := range v.skills {
		if sp.re.MatchString(description) {
			add(sp.name)
		}
	}

	for _, chunk := range Chunks(description) {
		if canonical, ok := v.skillIndex[strings.ToLower(chunk)]; ok {
			add(canonical)
		}
	}

	return found
}
