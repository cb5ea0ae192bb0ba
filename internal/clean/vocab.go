package clean

import (
	"regexp"
	"strings"
)

// Vocabulary holds every reference table the normalizers and classifiers
// consult. It is built once, treated as immutable, and injected into the
// Transformer so tests (and config overrides) can swap tables per call site.
type Vocabulary struct {
	usStateAbbrev  *regexp.Regexp
	usStateNames   map[string]struct{}
	countryAliases map[string]string

	remotePatterns []*regexp.Regexp
	hybridPatterns []*regexp.Regexp
	onsitePatterns []*regexp.Regexp

	dateLayouts []string

	roles       []rolePattern
	seniorities []seniorityPattern

	skills []skillPattern
	// lowercased skill spelling -> canonical spelling, for the chunk pass
	skillIndex map[string]string

	industries []industryGroup
}

type rolePattern struct {
	re    *regexp.Regexp
	label string
}

type seniorityPattern struct {
	re    *regexp.Regexp
	level string
}

type skillPattern struct {
	name string
	re   *regexp.Regexp
}

// industryGroup order across the vocabulary slice is the documented
// tie-break order: on equal match counts the earlier group wins.
type industryGroup struct {
	name     string
	patterns []*regexp.Regexp
}

var defaultSkills = []string{
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Ruby", "PHP", "Swift", "Kotlin",
	"HTML", "CSS", "SQL", "NoSQL", "MongoDB", "PostgreSQL", "MySQL", "Oracle",
	"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Jenkins", "Git",
	"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask", "Spring",
	"Machine Learning", "Deep Learning", "NLP", "Computer Vision", "Data Science",
	"TensorFlow", "PyTorch", "scikit-learn", "Pandas", "NumPy", "R",
	"Agile", "Scrum", "Jira", "Confluence", "Product Management", "UI/UX",
	"Figma", "Sketch", "Adobe XD", "Photoshop", "Illustrator",
	"Excel", "PowerPoint", "Word", "Google Workspace", "Power BI", "Tableau",
}

var defaultCountryAliases = map[string]string{
	"UK": "United Kingdom", "United Kingdom": "United Kingdom", "England": "United Kingdom",
	"Canada": "Canada", "Australia": "Australia", "Germany": "Germany", "France": "France",
	"India": "India", "Japan": "Japan", "China": "China", "Brazil": "Brazil",
	"Netherlands": "Netherlands", "Ireland": "Ireland", "Spain": "Spain",
	"Italy": "Italy", "Singapore": "Singapore", "Sweden": "Sweden",
}

var defaultUSStateNames = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut",
	"Delaware", "Florida", "Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa",
	"Kansas", "Kentucky", "Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan",
	"Minnesota", "Mississippi", "Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire",
	"New Jersey", "New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
	"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington", "West Virginia",
	"Wisconsin", "Wyoming", "District of Columbia",
}

// DefaultVocabulary returns the built-in reference tables. The returned value
// must not be mutated; use the With* helpers to derive variants.
func DefaultVocabulary() *Vocabulary {
	v := &Vocabulary{
		usStateAbbrev: regexp.MustCompile(`(?i)\b(AL|AK|AZ|AR|CA|CO|CT|DE|FL|GA|HI|ID|IL|IN|IA|KS|KY|LA|ME|MD|MA|MI|MN|MS|MO|MT|NE|NV|NH|NJ|NM|NY|NC|ND|OH|OK|OR|PA|RI|SC|SD|TN|TX|UT|VT|VA|WA|WV|WI|WY|D\.C\.|DC)\b`),
		usStateNames:   make(map[string]struct{}, len(defaultUSStateNames)),
		countryAliases: make(map[string]string, len(defaultCountryAliases)),

		remotePatterns: compileAll(
			`\bremote\b`, `\bwork from home\b`, `\bwfh\b`, `\bwork from anywhere\b`,
			`\bfully remote\b`, `\b100% remote\b`, `\bremotely\b`,
		),
		hybridPatterns: compileAll(
			`\bhybrid\b`, `\bpartially remote\b`, `\bremote hybrid\b`, `\bhybrid remote\b`,
			`\bflexible work\b`, `\bflexible location\b`, `\bflexible working\b`,
			`\bwfh \d+ days\b`, `\bremote \d+ days\b`, `\boffice \d+ days\b`,
		),
		onsitePatterns: compileAll(
			`\bon-site\b`, `\bonsite\b`, `\bin office\b`, `\bin-office\b`,
			`\bon location\b`, `\bin-person\b`, `\bin person\b`,
		),

		// Tried in order; first layout that parses wins.
		dateLayouts: []string{
			"2006-01-02",
			"01/02/2006",
			"02/01/2006",
			"January 2, 2006",
			"Jan 2, 2006",
		},

		roles: []rolePattern{
			{regexp.MustCompile(`software\s+engineer|software\s+developer|programmer|coder|developer`), "Software Engineer"},
			{regexp.MustCompile(`data\s+scien(ce|tist)|machine\s+learning|ml\s+engineer|ai\s+engineer`), "Data Scientist"},
			{regexp.MustCompile(`data\s+analyst|business\s+analyst|bi\s+analyst|analytics`), "Data Analyst"},
			{regexp.MustCompile(`product\s+manager|product\s+owner|program\s+manager`), "Product Manager"},
			{regexp.MustCompile(`ux|ui|user\s+experience|user\s+interface|designer`), "UX/UI Designer"},
			{regexp.MustCompile(`market|seo|content|social\s+media`), "Marketing Specialist"},
			{regexp.MustCompile(`sales|account\s+executive|business\s+development`), "Sales Representative"},
			{regexp.MustCompile(`financ(e|ial)|accountant|accounting`), "Financial Analyst"},
			{regexp.MustCompile(`hr|human\s+resources|recruiter|talent`), "Human Resources"},
			{regexp.MustCompile(`project\s+manager|project\s+lead|scrum\s+master`), "Project Manager"},
		},

		seniorities: []seniorityPattern{
			{regexp.MustCompile(`ceo|cto|cio|cfo|chief|executive|president|director|vp|vice\s+president`), "Executive"},
			{regexp.MustCompile(`senior|sr\.?|lead|principal|staff|architect`), "Senior"},
			// The "ii|2" alternatives also hit unrelated digits ("Area 51",
			// phone numbers). Known over-broad rule, kept as-is pending review.
			{regexp.MustCompile(`mid|intermediate|ii|2`), "Mid Level"},
			{regexp.MustCompile(`junior|jr\.?|entry|associate|intern|trainee|graduate`), "Entry Level"},
		},

		industries: []industryGroup{
			{"Technology", compileAll(`\bsoftware\b`, `\btech\b`, `\binformation technology\b`, `\bit company\b`, `\bsaas\b`)},
			{"Healthcare", compileAll(`\bhealth\b`, `\bmedical\b`, `\bhospital\b`, `\bpharmaceutical\b`, `\bbiotech\b`)},
			{"Finance", compileAll(`\bfinance\b`, `\bbanking\b`, `\binvestment\b`, `\bfintech\b`, `\binsurance\b`)},
			{"Education", compileAll(`\beducation\b`, `\bschool\b`, `\buniversity\b`, `\bcollege\b`, `\bteaching\b`)},
			{"Manufacturing", compileAll(`\bmanufacturing\b`, `\bindustrial\b`, `\bproduction\b`, `\bfactory\b`)},
			{"Retail", compileAll(`\bretail\b`, `\be-commerce\b`, `\bconsumer goods\b`, `\bshopping\b`)},
			{"Media & Entertainment", compileAll(`\bmedia\b`, `\bentertainment\b`, `\bpublishing\b`, `\bbroadcast\b`, `\bfilm\b`, `\bmusic\b`)},
			{"Government", compileAll(`\bgovernment\b`, `\bpublic sector\b`, `\bfederal\b`, `\bstate agency\b`)},
			{"Non-profit", compileAll(`\bnon-profit\b`, `\bngo\b`, `\bcharity\b`, `\bsocial service\b`)},
		},
	}

	for _, s := range defaultUSStateNames {
		v.usStateNames[s] = struct{}{}
	}
	for k, val := range defaultCountryAliases {
		v.countryAliases[k] = val
	}

	v.skillIndex = make(map[string]string, len(defaultSkills))
	for _, s := range defaultSkills {
		v.addSkill(s)
	}

	return v
}

// WithExtraSkills returns a vocabulary that also recognizes the given skill
// spellings. The receiver is not modified.
func (v *Vocabulary) WithExtraSkills(extra []string) *Vocabulary {
	if len(extra) == 0 {
		return v
	}
	out := *v
	out.skills = append([]skillPattern(nil), v.skills...)
	out.skillIndex = make(map[string]string, len(v.skillIndex)+len(extra))
	for k, val := range v.skillIndex {
		out.skillIndex[k] = val
	}
	for _, s := range extra {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := out.skillIndex[strings.ToLower(s)]; ok {
			continue
		}
		out.addSkill(s)
	}
	return &out
}

// WithCountryAliases returns a vocabulary with extra country aliases merged
// in. Existing aliases win on conflict.
func (v *Vocabulary) WithCountryAliases(extra map[string]string) *Vocabulary {
	if len(extra) == 0 {
		return v
	}
	out := *v
	out.countryAliases = make(map[string]string, len(v.countryAliases)+len(extra))
	for k, val := range extra {
		out.countryAliases[k] = val
	}
	for k, val := range v.countryAliases {
		out.countryAliases[k] = val
	}
	return &out
}

func (v *Vocabulary) addSkill(s string) {
	v.skills = append(v.skills, skillPattern{
		name: s,
		re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(s) + `\b`),
	})
	v.skillIndex[strings.ToLower(s)] = s
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}
