package patterns

import (
	"regexp"
	"strings"
)

// Country is one row of the normalization table: ISO-2 code, canonical
// display name, and demonym. All lookups are case-insensitive except the
// bare ISO-2 code, which must be upper-case in the source text ("IN", "IT"
// and friends would otherwise collide with ordinary English words).
type Country struct {
	Code    string
	Name    string
	Demonym string
}

// Countries is the full normalization table.
var Countries = []Country{
	{"AE", "UAE", "Emirati"},
	{"AR", "Argentina", "Argentine"},
	{"AU", "Australia", "Australian"},
	{"BD", "Bangladesh", "Bangladeshi"},
	{"BR", "Brazil", "Brazilian"},
	{"CA", "Canada", "Canadian"},
	{"CN", "China", "Chinese"},
	{"DE", "Germany", "German"},
	{"EG", "Egypt", "Egyptian"},
	{"ES", "Spain", "Spanish"},
	{"FR", "France", "French"},
	{"GB", "UK", "British"},
	{"HK", "Hong Kong", "Hongkonger"},
	{"ID", "Indonesia", "Indonesian"},
	{"IN", "India", "Indian"},
	{"IT", "Italy", "Italian"},
	{"JP", "Japan", "Japanese"},
	{"KR", "South Korea", "Korean"},
	{"MX", "Mexico", "Mexican"},
	{"MY", "Malaysia", "Malaysian"},
	{"NG", "Nigeria", "Nigerian"},
	{"NL", "Netherlands", "Dutch"},
	{"PH", "Philippines", "Filipino"},
	{"PK", "Pakistan", "Pakistani"},
	{"RU", "Russia", "Russian"},
	{"SA", "Saudi Arabia", "Saudi"},
	{"SG", "Singapore", "Singaporean"},
	{"TH", "Thailand", "Thai"},
	{"TR", "Turkey", "Turkish"},
	{"TW", "Taiwan", "Taiwanese"},
	{"US", "USA", "American"},
	{"VN", "Vietnam", "Vietnamese"},
	{"ZA", "South Africa", "South African"},
}

// extraAliases maps long-form and alternate spellings onto canonical names.
var extraAliases = map[string]string{
	"united arab emirates": "UAE",
	"united states":        "USA",
	"united kingdom":       "UK",
	"great britain":        "UK",
	"uae":                  "UAE",
	"usa":                  "USA",
	"uk":                   "UK",
	"south korea":          "South Korea",
	"hong kong":            "Hong Kong",
	"saudi arabia":         "Saudi Arabia",
	"south africa":         "South Africa",
}

// aliasToName is the flattened case-insensitive lookup: code, name,
// demonym, and extra alias → canonical name. Built once at init.
var aliasToName = buildAliasIndex()

// countryName is the case-insensitive regex over names and demonyms.
var countryName = buildNameRegex()

// countryCode finds bare upper-case ISO-2 tokens; hits are then checked
// against the table.
var countryCode = regexp.MustCompile(`\b([A-Z]{2})\b`)

func buildAliasIndex() map[string]string {
	idx := make(map[string]string, len(Countries)*3+len(extraAliases))
	for _, c := range Countries {
		idx[strings.ToLower(c.Code)] = c.Name
		idx[strings.ToLower(c.Name)] = c.Name
		idx[strings.ToLower(c.Demonym)] = c.Name
	}
	for alias, name := range extraAliases {
		idx[alias] = name
	}
	return idx
}

func buildNameRegex() *regexp.Regexp {
	alts := make([]string, 0, len(Countries)*2+len(extraAliases))
	for alias := range extraAliases {
		alts = append(alts, regexp.QuoteMeta(alias))
	}
	for _, c := range Countries {
		alts = append(alts, regexp.QuoteMeta(c.Name), regexp.QuoteMeta(c.Demonym))
	}
	// Longer alternatives first so "United Arab Emirates" beats "UAE"
	// prefix overlaps inside the alternation.
	sortByLengthDesc(alts)
	return regexp.MustCompile(`(?i)\b(` + strings.Join(alts, "|") + `)\b`)
}

func sortByLengthDesc(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && len(s[j]) > len(s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// CanonicalCountry maps an alias token (ISO-2 code, country name, or
// demonym) to its canonical display name. Returns ("", false) when the
// token has no table entry.
func CanonicalCountry(token string) (string, bool) {
	name, ok := aliasToName[strings.ToLower(strings.TrimSpace(token))]
	return name, ok
}

// FindCountry scans free text for the first country signal and returns its
// canonical name. Bare ISO-2 codes are only honored in upper case.
func FindCountry(text string) (string, bool) {
	if m := countryName.FindStringSubmatch(text); m != nil {
		if name, ok := CanonicalCountry(m[1]); ok {
			return name, true
		}
	}
	for _, m := range countryCode.FindAllStringSubmatch(text, -1) {
		if name, ok := aliasToName[strings.ToLower(m[1])]; ok {
			return name, true
		}
	}
	return "", false
}
