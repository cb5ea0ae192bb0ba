package clean

import (
	"regexp"
	"strings"
)

const Unknown = "Unknown"

var (
	greaterPrefix = regexp.MustCompile(`^Greater\s+`)
	areaSuffix    = regexp.MustCompile(`\s+Area$`)
	metroSuffix   = regexp.MustCompile(`\s+Metropolitan Area$`)
	locationSplit = regexp.MustCompile(`[,;]`)
)

// Location is the structured result of parsing a free-text location string.
type Location struct {
	Country string
	State   string
	City    string
}

// CleanLocation normalizes a raw location string: missing or "N/A" becomes
// "Unknown", marketing prefixes/suffixes ("Greater X", "X Area") are removed.
func (v *Vocabulary) CleanLocation(raw string) string {
	raw = CleanText(raw)
	if raw == "" || raw == "N/A" {
		return Unknown
	}
	raw = greaterPrefix.ReplaceAllString(raw, "")
	raw = metroSuffix.ReplaceAllString(raw, "")
	raw = areaSuffix.ReplaceAllString(raw, "")
	return strings.TrimSpace(raw)
}

// LocationComponents splits a cleaned location string into country, state and
// city. Branches run in fixed order: US state abbreviation, full US state
// name, country alias, then a positional fallback; the first match wins, so a
// string matching both a state code and a country alias resolves as US.
func (v *Vocabulary) LocationComponents(cleaned string) Location {
	loc := Location{Country: Unknown, State: Unknown, City: Unknown}
	if cleaned == Unknown || cleaned == "" {
		return loc
	}

	parts := locationSplit.Split(cleaned, -1)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	// US state abbreviations (standalone token, any casing)
	for _, part := range parts {
		if m := v.usStateAbbrev.FindString(part); m != "" {
			loc.Country = "United States"
			loc.State = strings.ToUpper(m)
			if len(parts) > 1 && parts[0] != part {
				loc.City = parts[0]
			}
			return loc
		}
	}

	// Full US state names (exact part match)
	for _, part := range parts {
		if _, ok := v.usStateNames[part]; ok {
			loc.Country = "United States"
			loc.State = part
			if len(parts) > 1 && parts[0] != part {
				loc.City = parts[0]
			}
			return loc
		}
	}

	// Known countries and their aliases
	for i, part := range parts {
		if country, ok := v.countryAliases[part]; ok {
			loc.Country = country
			if i > 0 {
				loc.City = parts[0]
			}
			return loc
		}
	}

	// Fallback: assume "<city>, ..., <country>"
	if len(parts) >= 2 {
		loc.Country = parts[len(parts)-1]
		loc.City = parts[0]
	} else if len(parts) == 1 {
		loc.City = parts[0]
	}
	return loc
}
