package clean

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"jobmarket-engine/internal/domain"
)

// Transformer turns one RawPosting into one CleanedPosting by running every
// normalizer and classifier over the appropriate field. Field-level parse
// misses never error; each step degrades to its documented default.
type Transformer struct {
	vocab *Vocabulary
	now   func() time.Time
}

func NewTransformer(v *Vocabulary) *Transformer {
	return &Transformer{vocab: v, now: time.Now}
}

// WithClock fixes the transformer's notion of "now" (relative-date parsing).
func (t *Transformer) WithClock(now func() time.Time) *Transformer {
	t.now = now
	return t
}

// Clean produces the enriched record for one raw posting. sourceFile is
// carried through for provenance.
func (t *Transformer) Clean(raw domain.RawPosting, sourceFile string) domain.CleanedPosting {
	v := t.vocab

	// Missing-field defaults, applied before any normalizer runs.
	title := orUnknown(raw.Title)
	company := orUnknown(raw.Company)
	location := orUnknown(raw.Location)
	description := raw.Description

	cleanedLoc := v.CleanLocation(location)
	parts := v.LocationComponents(cleanedLoc)

	// Supplied seniority/industry columns win over classification.
	seniority := strings.TrimSpace(raw.SeniorityLevel)
	if seniority == "" {
		seniority = v.ExtractSeniority(title)
	}
	industry := strings.TrimSpace(raw.Industries)
	if industry == "" {
		industry = v.ExtractIndustry(description)
	}

	skillsList := splitSkills(raw.Skills)
	extracted := v.ExtractSkills(description)

	return domain.CleanedPosting{
		Company:         company,
		TitleRaw:        title,
		TitleNormalized: v.NormalizeTitle(title),
		SeniorityLevel:  seniority,
		LocationRaw:     location,
		LocationClean:   cleanedLoc,
		Country:         parts.Country,
		State:           parts.State,
		City:            parts.City,
		LocationType:    v.DetectLocationType(description),
		PostingDate:     v.NormalizeDate(raw.PostingDate, t.now()),
		SkillsList:      skillsList,
		ExtractedSkills: extracted,
		AllSkills:       union(skillsList, extracted),
		Industry:        industry,
		SourceFile:      sourceFile,
		ContentHash:     hashRaw(raw),
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}

func splitSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// union merges the two skill lists preserving order of first appearance.
// Identity is case-sensitive: extraction already emits canonical spellings.
func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// hashRaw fingerprints the raw record so reruns over the same input can be
// recognized by the store instead of appending duplicates.
func hashRaw(raw domain.RawPosting) string {
	h := sha256.New()
	for _, f := range []string{
		raw.Title, raw.Company, raw.Location, raw.Description,
		raw.Skills, raw.PostingDate, raw.Industries, raw.SeniorityLevel,
	} {
		h.Write([]byte(f))
		h.Write([]byte{0x1f})
	}
	return hex.EncodeToString(h.Sum(nil))
}
