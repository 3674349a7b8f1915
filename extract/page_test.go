package extract

import (
	"errors"
	"testing"

	"github.com/use-agent/rfqharvest/fragment"
	"github.com/use-agent/rfqharvest/models"
)

func parseAll(t *testing.T, raws ...string) []fragment.Fragment {
	t.Helper()
	out := make([]fragment.Fragment, 0, len(raws))
	for _, raw := range raws {
		out = append(out, frag(t, raw))
	}
	return out
}

func TestExtractPage(t *testing.T) {
	const riceA = `<div class="rfq-item">
		<h3>Premium basmati rice 25kg bags export quality</h3>
		<span class="buyer-name">Horizon Foods</span>
	</div>`
	const riceB = `<div class="list-item">
		<h3>Premium basmati rice 25kg bags export quality</h3>
		<span class="publish-time">2 days ago</span>
		<em>different markup, same listing</em>
	</div>`

	frags := parseAll(t,
		listingFixture, // full listing, rfq_id=100500
		listingFixture, // identical markup, dropped by the fingerprint pre-filter
		`<div><span>--</span></div>`, // spacer row, dropped by the gate
		riceA,
		riceB, // survives the markup pre-filter, collapsed by title dedup
	)

	records, err := ExtractPage(frags, pageOrigin, capturedAt)
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if len(records) != 2 {
		for _, r := range records {
			t.Logf("record %s %q", r.ID, r.Title)
		}
		t.Fatalf("len = %d, want 2", len(records))
	}

	if records[0].ID != "100500" {
		t.Errorf("records[0].ID = %q", records[0].ID)
	}
	if records[1].Title != "Premium basmati rice 25kg bags export quality" {
		t.Errorf("records[1].Title = %q", records[1].Title)
	}
	if records[1].BuyerName != "Horizon Foods" {
		t.Errorf("records[1].BuyerName = %q, want the first occurrence kept", records[1].BuyerName)
	}
}

// The pre-filter works on markup fingerprints, so the same listing seen
// with rotated attributes collapses even though the raw bytes differ.
// The titles here are too short for record-level dedup to be the one
// collapsing them.
func TestExtractPagePreFilterIgnoresAttributes(t *testing.T) {
	frags := parseAll(t,
		`<div class="rfq-item" data-spm="a2714"><h3>Pump seals</h3><span>5 days ago</span></div>`,
		`<div class="list-item"><h3>Pump seals</h3><span>5 days ago</span></div>`,
	)
	records, err := ExtractPage(frags, pageOrigin, capturedAt)
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len = %d, want 1", len(records))
	}
}

func TestNearDuplicateThreshold(t *testing.T) {
	seen := []uint64{0xDEADBEEF00000000}
	if !nearDuplicate(seen, 0xDEADBEEF00000000) {
		t.Error("identical fingerprint not flagged")
	}
	// One bit off: same listing, a tracking token changed.
	if !nearDuplicate(seen, 0xDEADBEEF00000001) {
		t.Error("fingerprint within threshold not flagged")
	}
	// Far off: a different listing.
	if nearDuplicate(seen, 0xDEADBEEF000000FF) {
		t.Error("distant fingerprint flagged")
	}
	if nearDuplicate(nil, 0xDEADBEEF00000000) {
		t.Error("empty seen set flagged")
	}
}

func TestExtractPageInvalidOrigin(t *testing.T) {
	records, err := ExtractPage(nil, "not-absolute", capturedAt)
	if records != nil {
		t.Errorf("records = %v, want nil", records)
	}
	var se *models.ScrapeError
	if !errors.As(err, &se) || se.Code != models.ErrCodeInvalidInput {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
}

func TestExtractPageNoFragments(t *testing.T) {
	records, err := ExtractPage(nil, pageOrigin, capturedAt)
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("records = %#v, want empty non-nil slice", records)
	}
}
