package extract

import (
	"log/slog"
	"time"

	"github.com/use-agent/rfqharvest/fragment"
	"github.com/use-agent/rfqharvest/models"
	"github.com/use-agent/rfqharvest/simhash"
)

// similarFragmentBits is the Hamming threshold for the raw-fragment
// pre-filter: fingerprints within this many bits are the same listing seen
// through another selector, possibly with a tracking token changed.
const similarFragmentBits = 3

// ExtractPage runs the full per-page pipeline: raw-fragment near-duplicate
// pre-filter, record assembly with the acceptance gate, then record-level
// deduplication. origin is the page's base URL and captured the page
// capture timestamp.
//
// Error behavior: an invalid origin is a page-level failure and returns
// (nil, err). A fault inside one fragment's extraction is caught at the
// fragment boundary, logged, and that fragment is skipped — it never aborts
// the page. A page that yields zero records returns an empty slice and nil
// error.
func ExtractPage(frags []fragment.Fragment, origin string, captured time.Time) ([]models.ListingRecord, error) {
	assembler, err := NewAssembler(origin, captured)
	if err != nil {
		return nil, err
	}

	// The container selector list is deliberately over-broad, so the same
	// listing element commonly arrives more than once. Near-identical raw
	// fragments land within a few bits of each other; drop them before
	// assembly. Fragment counts per page are small, the linear scan is fine.
	seen := make([]uint64, 0, len(frags))

	records := make([]models.ListingRecord, 0, len(frags))
	for i, f := range frags {
		fp := simhash.FingerprintMarkup(f.OuterHTML())
		if fp != 0 {
			if nearDuplicate(seen, fp) {
				continue
			}
			seen = append(seen, fp)
		}

		rec, ok := assembleSafely(assembler, f, i)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	return Dedup(records), nil
}

func nearDuplicate(seen []uint64, fp uint64) bool {
	for _, s := range seen {
		if simhash.Similar(s, fp, similarFragmentBits) {
			return true
		}
	}
	return false
}

// assembleSafely isolates one fragment's extraction: an unexpected fragment
// shape that panics inside a strategy skips that fragment only.
func assembleSafely(a *Assembler, f fragment.Fragment, idx int) (rec models.ListingRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("fragment extraction fault, skipping fragment",
				"index", idx, "panic", r,
			)
			rec, ok = models.ListingRecord{}, false
		}
	}()
	return a.Assemble(f)
}
