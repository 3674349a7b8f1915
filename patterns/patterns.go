// Package patterns is the declarative pattern library shared by every field
// strategy: ordered regex lists, keyword sets, and the country alias table.
// Everything here is immutable after package init and safe to share across
// concurrent workers.
package patterns

import (
	"regexp"
	"strings"
)

// TimeAgo matches relative-time phrases, in priority order. The first
// pattern that matches wins; each has the full phrase as capture group 1.
var TimeAgo = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\s*(?:hour|day|minute|week|month)s?\s*(?:ago|before))`),
	regexp.MustCompile(`(?i)\b(yesterday|today|last week)\b`),
}

// Date matches an explicit date token (e.g. "12/31/2024").
var Date = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2,4})\b`)

// Quantity matches a number plus a unit from the fixed unit vocabulary,
// in priority order. Capture group 1 is the full quantity phrase.
var Quantity = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:[\s,]\d+)*\s*(?:piece|box|bag|unit|kg|ton|meter|yard)s?)\b`),
	regexp.MustCompile(`(?i)quantity[:\s]+(\d+(?:[\s,]\d+)*\s*\w+)`),
	regexp.MustCompile(`(?i)need[:\s]+(\d+(?:[\s,]\d+)*\s*\w+)`),
}

// QuotesLeft matches "N quotes left" with the count as capture group 1.
var QuotesLeft = regexp.MustCompile(`(?i)(\d+)\s*quotes?\s*left`)

// ListingID extracts a numeric listing id from a detail URL.
var ListingID = regexp.MustCompile(`(?i)rfq_id[=:](\d+)`)

// BuyerFraming matches buyer-name framing phrases ("from: John") with the
// name as capture group 1.
var BuyerFraming = []*regexp.Regexp{
	regexp.MustCompile(`(?i)from[:\s]+([^,\n—]+)`),
	regexp.MustCompile(`(?i)buyer[:\s]+([^,\n—]+)`),
	regexp.MustCompile(`(?i)company[:\s]+([^,\n—]+)`),
}

// CompanySuffix matches company-name suffix tokens anywhere in a line.
var CompanySuffix = regexp.MustCompile(`(?i)\b(trading|company|corp|ltd|inc|llc|co\.|group|industries)\b`)

// TitleCase matches lines shaped like "Abc Def" with at least two
// capitalized words.
var TitleCase = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+`)

// buyerExclusion rejects candidate lines that are clearly listing metadata
// rather than a name.
var buyerExclusion = regexp.MustCompile(`(?i)\b(hours?|days?|minutes?|ago|quotes?|left|pieces?|units?|box|bag|kg|tons?|rfq|request)\b`)

// boilerplateTokens are generic listing-page words that can never stand
// alone as a field value.
var boilerplateTokens = map[string]struct{}{
	"quote":   {},
	"quotes":  {},
	"request": {},
	"inquiry": {},
	"rfq":     {},
}

// numericOnly matches values consisting solely of digits, separators and
// whitespace.
var numericOnly = regexp.MustCompile(`^[\d\s.,:-]+$`)

// IsBoilerplate reports whether the trimmed, lower-cased value is one of
// the generic boilerplate tokens.
func IsBoilerplate(v string) bool {
	_, ok := boilerplateTokens[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// IsNumericOnly reports whether the value contains no letters at all.
func IsNumericOnly(v string) bool {
	return numericOnly.MatchString(strings.TrimSpace(v))
}

// LooksLikeMetadata reports whether a line reads as listing metadata
// (relative times, quote counts, quantities) rather than a name.
func LooksLikeMetadata(v string) bool {
	return buyerExclusion.MatchString(v)
}

// IsRelativeTime reports whether the line is itself a relative-time phrase.
func IsRelativeTime(v string) bool {
	for _, re := range TimeAgo {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

// MostlyUpper reports whether the majority of the letters in v are
// upper-case (and there are at least two of them).
func MostlyUpper(v string) bool {
	upper, letters := 0, 0
	for _, r := range v {
		switch {
		case r >= 'A' && r <= 'Z':
			upper++
			letters++
		case r >= 'a' && r <= 'z':
			letters++
		}
	}
	return letters >= 2 && upper*2 > letters
}
