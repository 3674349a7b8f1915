package extract

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/use-agent/rfqharvest/fragment"
	"github.com/use-agent/rfqharvest/models"
	"github.com/use-agent/rfqharvest/patterns"
)

// minFragmentText is the acceptance-gate threshold: a record with no title
// is kept only when its source fragment carries more text than this.
const minFragmentText = 50

// backfillTitleLen is how much fragment text stands in for a missing title.
const backfillTitleLen = 100

const timestampLayout = "2006-01-02 15:04:05"

// Assembler runs every field extractor against one fragment and builds the
// record. One Assembler per page; the identifier sequence counter is
// page-scoped and not synchronized — each page is processed by exactly one
// goroutine.
type Assembler struct {
	origin   *url.URL
	captured time.Time
	seq      int

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewAssembler builds an Assembler for one page. origin is the page's base
// URL, used to absolutize relative detail and image links; captured is the
// page capture timestamp, folded into generated identifiers.
func NewAssembler(origin string, captured time.Time) (*Assembler, error) {
	base, err := url.Parse(origin)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, models.NewScrapeError(
			models.ErrCodeInvalidInput,
			fmt.Sprintf("invalid page origin %q", origin),
			err,
		)
	}
	return &Assembler{origin: base, captured: captured, now: time.Now}, nil
}

// Assemble builds one record from one fragment. The second return value is
// false when the acceptance gate rejects the fragment (no title and not
// enough text). Field extractors are independent — none reads another's
// output — so they may run in any order.
func (a *Assembler) Assemble(f fragment.Fragment) (models.ListingRecord, bool) {
	text := f.Text()
	badges := ExtractBadges(f)

	rec := models.ListingRecord{
		Title:          Title(f),
		BuyerName:      BuyerName(f),
		BuyerImage:     a.absolutize(BuyerImage(f)),
		InquiryAge:     InquiryAge(f),
		QuotesLeft:     QuotesLeft(f),
		Country:        Country(f),
		Quantity:       Quantity(f),
		EmailConfirmed: badges.EmailConfirmed,
		Experienced:    badges.Experienced,
		Completed:      badges.Completed,
		TypicalReply:   badges.TypicalReply,
		Interactive:    badges.Interactive,
		DetailURL:      a.absolutize(detailLink(f)),
		InquiryDate:    InquiryDate(f),
		ExtractedAt:    a.now().Format(timestampLayout),
	}
	rec.ID = a.identifier(rec.DetailURL)

	// Acceptance gate: drop structurally-present but semantically-empty
	// fragments (spacer rows), while tolerating listings whose title
	// heuristic genuinely failed. The threshold counts characters, not
	// bytes — multibyte text is no longer than it reads.
	if rec.Title == "" && utf8.RuneCountInString(text) <= minFragmentText {
		return models.ListingRecord{}, false
	}
	if rec.Title == "" {
		rec.Title = backfillTitle(text)
	}
	return rec, true
}

// identifier harvests the listing id from the detail URL when present,
// otherwise generates one from the page-scoped sequence counter and the
// capture timestamp. Unique within a run, not across runs.
func (a *Assembler) identifier(detailURL string) string {
	if m := patterns.ListingID.FindStringSubmatch(detailURL); m != nil {
		return m[1]
	}
	a.seq++
	return fmt.Sprintf("RFQ_%d_%d", a.seq, a.captured.Unix())
}

// absolutize resolves a possibly-relative URL against the page origin.
// Returns "" for empty or unparsable input.
func (a *Assembler) absolutize(href string) string {
	if href == "" {
		return ""
	}
	resolved, err := a.origin.Parse(href)
	if err != nil {
		return ""
	}
	return resolved.String()
}

// backfillTitle derives a stand-in title from the fragment text: the first
// 100 characters with newlines collapsed to spaces.
func backfillTitle(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	return truncate(collapsed, backfillTitleLen)
}
