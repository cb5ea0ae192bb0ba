// Package ingest reads raw scraper batches (CSV, one posting per row) into
// RawPosting records. The column contract is the scraper's output shape:
// title/company/location/description required, the rest optional.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"jobmarket-engine/internal/clean"
	"jobmarket-engine/internal/domain"
)

var requiredColumns = []string{"title", "company", "location", "description"}

// ReadFile loads one CSV batch. Header names are matched case-insensitively;
// missing optional columns are tolerated, missing required columns are a
// file-level error (the batch pipeline logs and skips the file).
func ReadFile(path string) ([]domain.RawPosting, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows handled per-cell below

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []domain.RawPosting
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(out)+2, err)
		}
		out = append(out, domain.RawPosting{
			Title:    cell(row, "title"),
			Company:  cell(row, "company"),
			Location: cell(row, "location"),
			// Scraper output occasionally carries markup in descriptions.
			Description:    clean.StripHTML(cell(row, "description")),
			Skills:         cell(row, "skills"),
			PostingDate:    cell(row, "posting_date"),
			Industries:     cell(row, "industries"),
			SeniorityLevel: cell(row, "seniority_level"),
		})
	}
	return out, nil
}
