package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/use-agent/rfqharvest/models"
)

// dedupKeyLen is how much of the title forms the dedup key.
const dedupKeyLen = 50

// minDedupKeyLen is the minimum key length for deduplication. Shorter
// titles collide with boilerplate too easily and are never used as keys.
const minDedupKeyLen = 10

// Dedup collapses near-duplicate records extracted from overlapping
// fragments on the same page. Two records are duplicates when the
// lowercase, trimmed first 50 characters of their titles are equal and
// that prefix is longer than 10 characters. Stable single pass in
// extraction order; the first occurrence of each key is kept.
//
// This is an intentional approximation (prefix match, not full
// similarity): the page driver commonly surfaces the same visual listing
// through several overlapping structural selectors.
func Dedup(records []models.ListingRecord) []models.ListingRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.ListingRecord, 0, len(records))
	for _, rec := range records {
		key := dedupKey(rec.Title)
		if utf8.RuneCountInString(key) <= minDedupKeyLen {
			out = append(out, rec)
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}

func dedupKey(title string) string {
	key := []rune(title)
	if len(key) > dedupKeyLen {
		key = key[:dedupKeyLen]
	}
	return strings.ToLower(strings.TrimSpace(string(key)))
}
