package clean

import (
	"testing"
	"time"

	"jobmarket-engine/internal/domain"
)

func testTransformer() *Transformer {
	return NewTransformer(DefaultVocabulary()).WithClock(func() time.Time { return testNow })
}

func TestCleanFullRecord(t *testing.T) {
	tf := testTransformer()

	raw := domain.RawPosting{
		Title:       "Sr. Software Engineer II at Acme Corp",
		Company:     "Acme Corp",
		Location:    "Greater Seattle, WA Area",
		Description: "5 years experience with Python and AWS, hybrid schedule 3 days in office",
		Skills:      "Python, Go",
		PostingDate: "2024-06-01",
	}
	got := tf.Clean(raw, "batch_001.csv")

	if got.TitleNormalized != "Software Engineer" {
		t.Errorf("TitleNormalized = %q", got.TitleNormalized)
	}
	if got.SeniorityLevel != "Senior" {
		t.Errorf("SeniorityLevel = %q", got.SeniorityLevel)
	}
	if got.Country != "United States" || got.State != "WA" || got.City != "Seattle" {
		t.Errorf("location = %s/%s/%s", got.Country, got.State, got.City)
	}
	if got.LocationType != "Hybrid" {
		t.Errorf("LocationType = %q", got.LocationType)
	}
	if got.PostingDate == nil || got.PostingDate.Format("2006-01-02") != "2024-06-01" {
		t.Errorf("PostingDate = %v", got.PostingDate)
	}
	for _, w := range []string{"Python", "AWS"} {
		if !contains(got.ExtractedSkills, w) {
			t.Errorf("ExtractedSkills = %v, missing %q", got.ExtractedSkills, w)
		}
	}
	// union keeps the supplied "Go" and dedupes "Python"
	if !contains(got.AllSkills, "Go") {
		t.Errorf("AllSkills = %v, missing supplied skill", got.AllSkills)
	}
	pythons := 0
	for _, s := range got.AllSkills {
		if s == "Python" {
			pythons++
		}
	}
	if pythons != 1 {
		t.Errorf("AllSkills has %d Python entries: %v", pythons, got.AllSkills)
	}
	if got.SourceFile != "batch_001.csv" {
		t.Errorf("SourceFile = %q", got.SourceFile)
	}
	if got.ContentHash == "" {
		t.Error("ContentHash empty")
	}
}

func TestCleanEmptyRecord(t *testing.T) {
	tf := testTransformer()

	got := tf.Clean(domain.RawPosting{}, "x.csv")

	if got.TitleRaw != "Unknown" || got.Company != "Unknown" {
		t.Errorf("defaults: title=%q company=%q", got.TitleRaw, got.Company)
	}
	if got.TitleNormalized != "Unknown" {
		t.Errorf("TitleNormalized = %q", got.TitleNormalized)
	}
	if got.SeniorityLevel != "Unknown" {
		t.Errorf("SeniorityLevel = %q", got.SeniorityLevel)
	}
	if got.Country != "Unknown" || got.State != "Unknown" || got.City != "Unknown" {
		t.Errorf("location = %s/%s/%s", got.Country, got.State, got.City)
	}
	if got.LocationType != "On-site" {
		t.Errorf("LocationType = %q, want the On-site default", got.LocationType)
	}
	if got.PostingDate != nil {
		t.Errorf("PostingDate = %v, want nil", got.PostingDate)
	}
	if len(got.AllSkills) != 0 {
		t.Errorf("AllSkills = %v, want empty", got.AllSkills)
	}
	if got.Industry != "Technology" {
		t.Errorf("Industry = %q", got.Industry)
	}
}

func TestCleanSuppliedColumnsWin(t *testing.T) {
	tf := testTransformer()

	raw := domain.RawPosting{
		Title:          "Senior Software Engineer",
		Company:        "Hospital Corp",
		Location:       "Boston, MA",
		Description:    "medical software for hospital systems",
		Industries:     "Healthcare",
		SeniorityLevel: "Entry Level",
	}
	got := tf.Clean(raw, "x.csv")

	if got.Industry != "Healthcare" {
		t.Errorf("supplied industry ignored: %q", got.Industry)
	}
	if got.SeniorityLevel != "Entry Level" {
		t.Errorf("supplied seniority ignored: %q", got.SeniorityLevel)
	}
}

func TestCleanNALocation(t *testing.T) {
	tf := testTransformer()

	got := tf.Clean(domain.RawPosting{Title: "Engineer", Location: "N/A"}, "x.csv")
	if got.Country != "Unknown" || got.State != "Unknown" || got.City != "Unknown" {
		t.Errorf("N/A location should be all-Unknown, got %s/%s/%s", got.Country, got.State, got.City)
	}
}

func TestContentHashStable(t *testing.T) {
	tf := testTransformer()

	raw := domain.RawPosting{Title: "Engineer", Company: "A"}
	h1 := tf.Clean(raw, "a.csv").ContentHash
	h2 := tf.Clean(raw, "b.csv").ContentHash
	if h1 != h2 {
		t.Error("hash should depend on raw fields only")
	}

	other := tf.Clean(domain.RawPosting{Title: "Engineer", Company: "B"}, "a.csv").ContentHash
	if other == h1 {
		t.Error("different raw records must hash differently")
	}
}
