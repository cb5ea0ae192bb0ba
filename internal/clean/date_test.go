package clean

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func TestNormalizeDateRelative(t *testing.T) {
	v := DefaultVocabulary()

	cases := []struct {
		in   string
		want time.Time
	}{
		{"3 days ago", time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)},
		{"1 day ago", time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)},
		{"2 months ago", time.Date(2024, time.April, 16, 0, 0, 0, 0, time.UTC)}, // flat 60 days
		{"1 year ago", time.Date(2023, time.June, 16, 0, 0, 0, 0, time.UTC)},    // flat 365 days
		{"Posted 5 Days Ago", time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := v.NormalizeDate(c.in, testNow)
		if got == nil {
			t.Errorf("NormalizeDate(%q) = nil, want %s", c.in, c.want.Format("2006-01-02"))
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("NormalizeDate(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestNormalizeDateAbsolute(t *testing.T) {
	v := DefaultVocabulary()

	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-15", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"01/15/2024", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"January 15, 2024", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"Jan 2, 2024", time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := v.NormalizeDate(c.in, testNow)
		if got == nil || !got.Equal(c.want) {
			t.Errorf("NormalizeDate(%q) = %v, want %s", c.in, got, c.want)
		}
	}
}

func TestNormalizeDateAbsent(t *testing.T) {
	v := DefaultVocabulary()

	for _, in := range []string{"", "N/A", "yesterday-ish", "soon", "13/13/2024"} {
		if got := v.NormalizeDate(in, testNow); got != nil {
			t.Errorf("NormalizeDate(%q) = %v, want nil", in, got)
		}
	}
}

func TestNormalizeDateRoundTrip(t *testing.T) {
	v := DefaultVocabulary()

	want := time.Date(2023, time.November, 5, 0, 0, 0, 0, time.UTC)
	got := v.NormalizeDate(want.Format("2006-01-02"), testNow)
	if got == nil || !got.Equal(want) {
		t.Errorf("round trip: got %v, want %s", got, want)
	}
}
