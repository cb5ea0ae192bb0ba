package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type Posting struct {
	ID              int64    `json:"id"`
	Company         string   `json:"company"`
	Title           string   `json:"title"`
	TitleNormalized string   `json:"titleNormalized"`
	SeniorityLevel  string   `json:"seniorityLevel"`
	Location        string   `json:"location"`
	Country         string   `json:"country"`
	State           string   `json:"state"`
	City            string   `json:"city"`
	LocationType    string   `json:"locationType"`
	PostingDate     string   `json:"postingDate"` // YYYY-MM-DD, "" when unknown
	Industry        string   `json:"industry"`
	Skills          []string `json:"skills"`
	SourceFile      string   `json:"sourceFile"`
}

type ListPostingsOpts struct {
	From      string // YYYY-MM-DD inclusive
	To        string // YYYY-MM-DD inclusive
	Industry  string
	Role      string // normalized title
	Country   string
	Seniority string
	Limit     int
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

func Migrate(db *sql.DB) error {

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS postings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company TEXT NOT NULL,
  title TEXT NOT NULL,
  title_normalized TEXT NOT NULL,
  seniority_level TEXT NOT NULL,
  location TEXT NOT NULL,
  country TEXT NOT NULL,
  state TEXT NOT NULL,
  city TEXT NOT NULL,
  location_type TEXT NOT NULL,
  posting_date TEXT NOT NULL DEFAULT '',
  industry TEXT NOT NULL,
  source_file TEXT NOT NULL DEFAULT '',
  content_hash TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS skills (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  skill TEXT NOT NULL UNIQUE
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS posting_skills (
  posting_id INTEGER NOT NULL REFERENCES postings(id),
  skill_id INTEGER NOT NULL REFERENCES skills(id),
  UNIQUE(posting_id, skill_id)
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_postings_content_hash
ON postings(content_hash)
WHERE content_hash != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_postings_date
ON postings(posting_date);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_postings_industry
ON postings(industry);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_posting_skills_skill
ON posting_skills(skill_id);
`); err != nil {
		return err
	}

	// Mark schema v1
	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

func ListPostings(ctx context.Context, db *sql.DB, opts ListPostingsOpts) ([]Posting, error) {
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 500
	}

	var where []string
	var args []any
	add := func(cond, val string) {
		if val != "" {
			where = append(where, cond)
			args = append(args, val)
		}
	}
	add("posting_date >= ?", opts.From)
	add("posting_date <= ? AND posting_date != ''", opts.To)
	add("industry = ?", opts.Industry)
	add("title_normalized = ?", opts.Role)
	add("country = ?", opts.Country)
	add("seniority_level = ?", opts.Seniority)

	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf(`
SELECT id, company, title, title_normalized, seniority_level,
       location, country, state, city, location_type,
       posting_date, industry, source_file
FROM postings
%s
ORDER BY posting_date DESC, id DESC
LIMIT ?;
`, clause)
	args = append(args, opts.Limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Posting
	ids := make(map[int64]int) // posting id -> index in out
	for rows.Next() {
		var p Posting
		if err := rows.Scan(
			&p.ID,
			&p.Company,
			&p.Title,
			&p.TitleNormalized,
			&p.SeniorityLevel,
			&p.Location,
			&p.Country,
			&p.State,
			&p.City,
			&p.LocationType,
			&p.PostingDate,
			&p.Industry,
			&p.SourceFile,
		); err != nil {
			return nil, err
		}
		ids[p.ID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return out, nil
	}
	if err := attachSkills(ctx, db, out, ids); err != nil {
		return nil, err
	}
	return out, nil
}

func attachSkills(ctx context.Context, db *sql.DB, postings []Posting, ids map[int64]int) error {
	ph := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for id := range ids {
		ph = append(ph, "?")
		args = append(args, id)
	}

	query := fmt.Sprintf(`
SELECT ps.posting_id, s.skill
FROM posting_skills ps
JOIN skills s ON s.id = ps.skill_id
WHERE ps.posting_id IN (%s)
ORDER BY s.skill;
`, strings.Join(ph, ","))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var pid int64
		var skill string
		if err := rows.Scan(&pid, &skill); err != nil {
			return err
		}
		if i, ok := ids[pid]; ok {
			postings[i].Skills = append(postings[i].Skills, skill)
		}
	}
	return rows.Err()
}

// TopSkills returns the most frequent skills across stored postings,
// optionally restricted to one industry.
func TopSkills(ctx context.Context, db *sql.DB, industry string, limit int) ([]SkillCount, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	where := ""
	args := []any{}
	if industry != "" {
		where = "WHERE p.industry = ?"
		args = append(args, industry)
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
SELECT s.skill, COUNT(*) AS n
FROM posting_skills ps
JOIN skills s ON s.id = ps.skill_id
JOIN postings p ON p.id = ps.posting_id
%s
GROUP BY s.skill
ORDER BY n DESC, s.skill ASC
LIMIT ?;
`, where)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SkillCount
	for rows.Next() {
		var sc SkillCount
		if err := rows.Scan(&sc.Skill, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CleanupOldPostings drops postings (and their skill links) with a known
// posting date older than the retention window.
func CleanupOldPostings(db *sql.DB, olderThan time.Time) (deleted int64, err error) {
	cutoff := olderThan.Format("2006-01-02")

	if _, err := db.Exec(`
DELETE FROM posting_skills
WHERE posting_id IN (
  SELECT id FROM postings WHERE posting_date != '' AND posting_date < ?
);`, cutoff); err != nil {
		return 0, fmt.Errorf("cleanup skill links: %w", err)
	}

	res, err := db.Exec(`
DELETE FROM postings
WHERE posting_date != '' AND posting_date < ?;
`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup old postings: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
