package clean

import "strings"

// DetectLocationType classifies a description as Remote, Hybrid or On-site.
// Pattern groups run in fixed priority order; with no signal at all the
// posting is assumed on-site (absence of remote/hybrid wording is treated as
// an on-site policy, not as unknown).
func (v *Vocabulary) DetectLocationType(description string) string {
	desc := strings.ToLower(description)

	for _, re := range v.remotePatterns {
		if re.MatchString(desc) {
			return "Remote"
		}
	}
	for _, re := range v.hybridPatterns {
		if re.MatchString(desc) {
			return "Hybrid"
		}
	}
	for _, re := range v.onsitePatterns {
		if re.MatchString(desc) {
			return "On-site"
		}
	}
	return "On-site"
}
