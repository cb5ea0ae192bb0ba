package clean

import "strings"

// ExtractIndustry classifies a description into one of the fixed industries
// by counting pattern matches per industry (total occurrences, not just
// presence) and taking the highest count. Ties resolve to the industry that
// appears first in the vocabulary's fixed order. With no matches at all the
// classifier leans Technology rather than reporting unknown.
func (v *Vocabulary) ExtractIndustry(description string) string {
	desc := strings.ToLower(description)

	best := "Technology"
	bestCount := 0
	for _, group := range v.industries {
		count := 0
		for _, re := range group.patterns {
			count += len(re.FindAllString(desc, -1))
		}
		if count > bestCount {
			best = group.name
			bestCount = count
		}
	}
	return best
}
