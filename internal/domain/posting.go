package domain

import "time"

// RawPosting is one row as ingested from a scraper CSV.
// Empty string means the column was missing or blank.
type RawPosting struct {
	Title          string
	Company        string
	Location       string
	Description    string
	Skills         string // comma-separated, as supplied
	PostingDate    string
	Industries     string
	SeniorityLevel string
}

// CleanedPosting is the normalized, enriched record the pipeline emits.
type CleanedPosting struct {
	Company         string
	TitleRaw        string
	TitleNormalized string
	SeniorityLevel  string // Entry Level / Mid Level / Senior / Executive / Unknown
	LocationRaw     string
	LocationClean   string
	Country         string
	State           string
	City            string
	LocationType    string     // Remote / Hybrid / On-site / Unknown
	PostingDate     *time.Time // nil = unknown date
	SkillsList      []string   // from the supplied skills column
	ExtractedSkills []string   // from the description
	AllSkills       []string   // union of the two, deduplicated
	Industry        string

	SourceFile  string
	ContentHash string
}
