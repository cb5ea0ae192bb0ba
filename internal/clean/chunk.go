package clean

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// Small closed-class word list; chunk boundaries, not linguistics.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"of": true, "in": true, "on": true, "with": true, "for": true, "to": true,
	"from": true, "by": true, "at": true, "as": true, "is": true, "are": true,
	"be": true, "we": true, "you": true, "our": true, "your": true,
	"will": true, "this": true, "that": true, "have": true, "has": true,
}

// Chunks segments text into noun-phrase-like spans: runs of consecutive
// content words, split at punctuation and stopwords. Word boundaries come
// from the UAX #29 segmenter, so spellings like "Node.js" survive as one
// token.
func Chunks(text string) []string {
	var out []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, " "))
			cur = nil
		}
	}

	tokens := words.FromString(text)
	for tokens.Next() {
		tok := tokens.Value()
		if isSpace(tok) {
			continue
		}
		if !hasLetterOrDigit(tok) || stopwords[strings.ToLower(tok)] {
			flush()
			continue
		}
		cur = append(cur, tok)
	}
	flush()
	return out
}

func isSpace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return len(s) > 0
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
