package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/use-agent/rfqharvest/fragment"
	"github.com/use-agent/rfqharvest/patterns"
)

// Field length caps, matching the output contract.
const (
	maxTitleLen    = 200
	maxBuyerLen    = 100
	maxQuantityLen = 50
)

// A strategy proposes a value for one field; "" means no result. Strategies
// are pure and never panic on odd fragments.
type strategy func(fragment.Fragment) string

// chain is an ordered fallback list of strategies, evaluated left-to-right
// with early exit on the first non-empty result. The order is fixed:
// structural candidates come before free-text regex scanning, field
// last-resort heuristics come last.
type chain []strategy

func (c chain) extract(f fragment.Fragment) string {
	for _, s := range c {
		if v := s(f); v != "" {
			return v
		}
	}
	return ""
}

// ── Title ───────────────────────────────────────────────────────────

var titleChain = chain{
	titleFromCandidates,
	titleFromTextLines,
}

// Title extracts the listing headline, capped at 200 characters.
// Empty on total failure, never an error.
func Title(f fragment.Fragment) string {
	return titleChain.extract(f)
}

func titleFromCandidates(f fragment.Fragment) string {
	for _, c := range titleCandidates(f) {
		if v := c.Value(); validTitle(v) {
			return truncate(v, maxTitleLen)
		}
	}
	return ""
}

// titleFromTextLines is the last resort: the first substantial text line
// that is not itself a relative-time phrase.
func titleFromTextLines(f fragment.Fragment) string {
	for _, line := range f.Lines() {
		if len(line) > 10 && !patterns.IsRelativeTime(line) {
			return truncate(line, maxTitleLen)
		}
	}
	return ""
}

func validTitle(v string) bool {
	v = strings.TrimSpace(v)
	return len(v) > 5 && !patterns.IsNumericOnly(v) && !patterns.IsBoilerplate(v)
}

// ── Buyer name ──────────────────────────────────────────────────────

var buyerChain = chain{
	buyerFromCandidates,
	buyerFromFraming,
	buyerFromShape,
}

// BuyerName extracts the buyer or company name, capped at 100 characters.
func BuyerName(f fragment.Fragment) string {
	return buyerChain.extract(f)
}

func buyerFromCandidates(f fragment.Fragment) string {
	for _, c := range buyerCandidates(f) {
		if v := c.Value(); validBuyer(v) {
			return truncate(v, maxBuyerLen)
		}
	}
	return ""
}

func buyerFromFraming(f fragment.Fragment) string {
	text := f.Text()
	for _, re := range patterns.BuyerFraming {
		if m := re.FindStringSubmatch(text); m != nil {
			if v := strings.TrimSpace(m[1]); validBuyer(v) {
				return truncate(v, maxBuyerLen)
			}
		}
	}
	return ""
}

// buyerFromShape scans text lines for a company-name shape: a company
// suffix token, Title Case with at least two capitalized words, or
// predominantly upper-case.
func buyerFromShape(f fragment.Fragment) string {
	for _, line := range f.Lines() {
		if !validBuyer(line) {
			continue
		}
		if patterns.CompanySuffix.MatchString(line) ||
			patterns.TitleCase.MatchString(line) ||
			patterns.MostlyUpper(line) {
			return truncate(line, maxBuyerLen)
		}
	}
	return ""
}

func validBuyer(v string) bool {
	v = strings.TrimSpace(v)
	return len(v) > 3 && len(v) < 80 &&
		!patterns.IsNumericOnly(v) &&
		!patterns.LooksLikeMetadata(v)
}

// ── Country ─────────────────────────────────────────────────────────

// countryShape accepts short letter-only tokens ("UAE", "Hong Kong") that
// matched a country candidate but have no table entry; they pass through
// unchanged.
var countryShape = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{1,39}$`)

var countryChain = chain{
	countryFromCandidates,
	countryFromText,
}

// Country extracts and canonicalizes the buyer's country.
func Country(f fragment.Fragment) string {
	return countryChain.extract(f)
}

func countryFromCandidates(f fragment.Fragment) string {
	for _, c := range countryCandidates(f) {
		v := c.Value()
		if v == "" {
			continue
		}
		if name, ok := patterns.CanonicalCountry(v); ok {
			return name
		}
		if name, ok := patterns.FindCountry(v); ok {
			return name
		}
		if !patterns.IsBoilerplate(v) && countryShape.MatchString(v) {
			return v
		}
	}
	return ""
}

func countryFromText(f fragment.Fragment) string {
	if name, ok := patterns.FindCountry(f.Text()); ok {
		return name
	}
	return ""
}

// ── Inquiry age / date ──────────────────────────────────────────────

var ageChain = chain{
	ageFromCandidates,
	ageFromText,
}

// InquiryAge extracts the relative-time phrase for the inquiry.
func InquiryAge(f fragment.Fragment) string {
	return ageChain.extract(f)
}

func ageFromCandidates(f fragment.Fragment) string {
	for _, c := range ageCandidates(f) {
		v := c.Value()
		if v == "" {
			continue
		}
		if patterns.IsRelativeTime(v) || patterns.Date.MatchString(v) {
			return v
		}
	}
	return ""
}

func ageFromText(f fragment.Fragment) string {
	text := f.Text()
	for _, re := range patterns.TimeAgo {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	if m := patterns.Date.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// InquiryDate extracts an explicit date token, if the fragment carries one.
func InquiryDate(f fragment.Fragment) string {
	if m := patterns.Date.FindStringSubmatch(f.Text()); m != nil {
		return m[1]
	}
	return ""
}

// ── Quantity ────────────────────────────────────────────────────────

// unitToken is the fixed unit vocabulary; a quantity is only valid when it
// carries one of these.
var unitToken = regexp.MustCompile(`(?i)\b(piece|box|bag|unit|kg|ton|meter|yard)s?\b`)

// Quantity extracts the requested quantity plus unit, capped at 50
// characters.
func Quantity(f fragment.Fragment) string {
	text := f.Text()
	for _, re := range patterns.Quantity {
		if m := re.FindStringSubmatch(text); m != nil {
			v := strings.TrimSpace(m[1])
			if unitToken.MatchString(v) && strings.ContainsAny(v, "0123456789") {
				return truncate(v, maxQuantityLen)
			}
		}
	}
	return ""
}

// ── Quotes left ─────────────────────────────────────────────────────

// QuotesLeft extracts the remaining quote count. nil means no numeric
// capture was found; 0 is a real count and is never conflated with
// "unknown".
func QuotesLeft(f fragment.Fragment) *int {
	for _, c := range quotesCandidates(f) {
		if n, ok := parseQuotes(c.Value()); ok {
			return &n
		}
	}
	if n, ok := parseQuotes(f.Text()); ok {
		return &n
	}
	return nil
}

func parseQuotes(text string) (int, bool) {
	if m := patterns.QuotesLeft.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	return 0, false
}

// ── Buyer image ─────────────────────────────────────────────────────

// BuyerImage extracts the buyer avatar URL (possibly relative; the
// assembler resolves it against the page origin).
func BuyerImage(f fragment.Fragment) string {
	for _, c := range avatarCandidates(f) {
		if v := c.Value(); v != "" {
			return v
		}
	}
	return ""
}

// ── Badges ──────────────────────────────────────────────────────────

// Badges holds the five verification flags.
type Badges struct {
	EmailConfirmed bool
	Experienced    bool
	Completed      bool
	TypicalReply   bool
	Interactive    bool
}

// ExtractBadges derives the verification badges from a keyword-membership
// test over the fragment's lower-cased full text. Badges are independent:
// each flag looks only at its own keyword set.
func ExtractBadges(f fragment.Fragment) Badges {
	text := strings.ToLower(f.Text())
	return Badges{
		EmailConfirmed: anyKeyword(text, patterns.BadgeKeywords[patterns.BadgeEmailConfirmed]),
		Experienced:    anyKeyword(text, patterns.BadgeKeywords[patterns.BadgeExperienced]),
		Completed:      anyKeyword(text, patterns.BadgeKeywords[patterns.BadgeCompleted]),
		TypicalReply:   anyKeyword(text, patterns.BadgeKeywords[patterns.BadgeTypicalReply]),
		Interactive:    anyKeyword(text, patterns.BadgeKeywords[patterns.BadgeInteractive]),
	}
}

func anyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ── Detail link ─────────────────────────────────────────────────────

// detailLink returns the first listing-detail href found by the title
// candidate search, or "".
func detailLink(f fragment.Fragment) string {
	for _, link := range f.Links() {
		href := link.Attr("href")
		if strings.Contains(strings.ToLower(href), "rfq") {
			return href
		}
	}
	return ""
}

func truncate(v string, n int) string {
	v = strings.TrimSpace(v)
	if len(v) <= n {
		return v
	}
	// Cut on a rune boundary.
	runes := []rune(v)
	if len(runes) > n {
		runes = runes[:n]
	}
	return strings.TrimSpace(string(runes))
}
