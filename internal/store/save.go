package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobmarket-engine/internal/domain"
)

type BatchResult struct {
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	NewSkills  int `json:"newSkills"`
	Links      int `json:"links"`
}

// SaveBatch persists one cleaned batch in a single transaction. Postings and
// the skill vocabulary are written first; skill ids are resolved only after
// every skill row of the batch exists, then the posting-skill links go in.
// Duplicate postings (same content hash) are skipped along with their links.
func SaveBatch(ctx context.Context, db *sql.DB, batch []domain.CleanedPosting) (BatchResult, error) {
	var res BatchResult

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return res, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)

	type pending struct {
		postingID int64
		skills    []string
	}
	var toLink []pending
	skillSet := make(map[string]bool)

	// Phase 1: postings + skill vocabulary.
	for _, p := range batch {
		date := ""
		if p.PostingDate != nil {
			date = p.PostingDate.Format("2006-01-02")
		}

		// relies on the unique index on content_hash
		if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO postings
  (company, title, title_normalized, seniority_level,
   location, country, state, city, location_type,
   posting_date, industry, source_file, content_hash, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
			p.Company, p.TitleRaw, p.TitleNormalized, p.SeniorityLevel,
			p.LocationClean, p.Country, p.State, p.City, p.LocationType,
			date, p.Industry, p.SourceFile, p.ContentHash, now,
		); err != nil {
			return res, fmt.Errorf("insert posting: %w", err)
		}

		var changes int
		if err := tx.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); err != nil {
			return res, err
		}
		if changes == 0 {
			res.Duplicates++
			continue
		}
		res.Inserted++

		var id int64
		if err := tx.QueryRowContext(ctx, `SELECT last_insert_rowid();`).Scan(&id); err != nil {
			return res, err
		}

		if len(p.AllSkills) > 0 {
			toLink = append(toLink, pending{postingID: id, skills: p.AllSkills})
			for _, s := range p.AllSkills {
				skillSet[s] = true
			}
		}
	}

	for s := range skillSet {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO skills (skill) VALUES (?);`, s); err != nil {
			return res, fmt.Errorf("insert skill: %w", err)
		}
		var changes int
		if err := tx.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); err != nil {
			return res, err
		}
		res.NewSkills += changes
	}

	// Phase 2: every skill of the batch now has a row, so read ids and link.
	skillIDs := make(map[string]int64, len(skillSet))
	rows, err := tx.QueryContext(ctx, `SELECT id, skill FROM skills;`)
	if err != nil {
		return res, err
	}
	for rows.Next() {
		var id int64
		var skill string
		if err := rows.Scan(&id, &skill); err != nil {
			rows.Close()
			return res, err
		}
		skillIDs[skill] = id
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return res, err
	}

	for _, pnd := range toLink {
		for _, s := range pnd.skills {
			id, ok := skillIDs[s]
			if !ok {
				return res, fmt.Errorf("skill %q missing after insert phase", s)
			}
			if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO posting_skills (posting_id, skill_id)
VALUES (?, ?);`, pnd.postingID, id); err != nil {
				return res, fmt.Errorf("link skill: %w", err)
			}
			res.Links++
		}
	}

	if err := tx.Commit(); err != nil {
		return res, err
	}
	return res, nil
}
