// Package extract implements the field-extraction engine: per-field
// candidate selection, ordered strategy chains with validators and
// normalizers, record assembly with the acceptance gate, and cross-record
// deduplication. The engine is a pure function of (fragments, origin,
// capture time) — no I/O, no shared state across pages.
package extract

import (
	"strings"

	"github.com/use-agent/rfqharvest/fragment"
	"github.com/use-agent/rfqharvest/patterns"
)

// Source says where a candidate's value comes from. Resolved once at
// selection time so extractors never branch on node shape themselves.
type Source int

const (
	// SourceText reads the candidate's rendered text content.
	SourceText Source = iota
	// SourceAttr reads a named attribute (image alt/title for flags).
	SourceAttr
)

// Candidate is one sub-fragment proposed as a plausible holder of a field's
// value, tagged with how to read that value out of it.
type Candidate struct {
	Frag     fragment.Fragment
	Source   Source
	AttrName string
}

// Value reads the candidate's raw value.
func (c Candidate) Value() string {
	if c.Source == SourceAttr {
		return strings.TrimSpace(c.Frag.Attr(c.AttrName))
	}
	return c.Frag.Text()
}

func textCandidates(frags []fragment.Fragment) []Candidate {
	out := make([]Candidate, 0, len(frags))
	for _, f := range frags {
		out = append(out, Candidate{Frag: f, Source: SourceText})
	}
	return out
}

// titleCandidates yields title holders in reliability order: detail links
// first (their target carries the listing token), then headings, then
// anything whose class/id mentions "title". Structural signals always come
// before free-text scanning.
func titleCandidates(f fragment.Fragment) []Candidate {
	var out []Candidate
	for _, link := range f.Links() {
		if strings.Contains(strings.ToLower(link.Attr("href")), "rfq") {
			out = append(out, Candidate{Frag: link, Source: SourceText})
		}
	}
	out = append(out, textCandidates(f.FindKinds("h1", "h2", "h3", "h4"))...)
	out = append(out, textCandidates(f.Find("", "title"))...)
	return out
}

// buyerClassHints are class/id substrings that mark buyer-name holders.
var buyerClassHints = []string{"buyer", "company", "name", "contact", "supplier", "vendor"}

// buyerCandidates yields buyer-name holders: hinted elements, emphasis
// elements, then a plain div carrying exactly the generic "text" class —
// the page's last-resort username slot.
func buyerCandidates(f fragment.Fragment) []Candidate {
	var out []Candidate
	for _, hint := range buyerClassHints {
		out = append(out, textCandidates(f.Find("", hint))...)
	}
	out = append(out, textCandidates(f.FindKinds("em", "strong", "b"))...)
	for _, div := range f.Find("div", "") {
		if strings.TrimSpace(div.Attr("class")) == "text" {
			out = append(out, Candidate{Frag: div, Source: SourceText})
		}
	}
	return out
}

// countryCandidates yields country holders: hinted elements read as text,
// then flag images read through their alt/title attributes.
func countryCandidates(f fragment.Fragment) []Candidate {
	var out []Candidate
	for _, hint := range []string{"country", "location", "flag"} {
		out = append(out, textCandidates(f.Find("", hint))...)
	}
	for _, img := range f.FindKinds("img") {
		for _, attr := range []string{"alt", "title"} {
			if v := img.Attr(attr); v != "" {
				if _, ok := patterns.CanonicalCountry(v); ok {
					out = append(out, Candidate{Frag: img, Source: SourceAttr, AttrName: attr})
				}
			}
		}
	}
	return out
}

// quotesCandidates yields elements whose class/id mentions both "quote"
// and "left". Free-text fallback is handled by the field's regex chain.
func quotesCandidates(f fragment.Fragment) []Candidate {
	var out []Candidate
	for _, el := range f.Find("", "quote") {
		if attrHas(el, "left") {
			out = append(out, Candidate{Frag: el, Source: SourceText})
		}
	}
	return out
}

// ageCandidates yields elements whose class/id mentions "time" or "date".
func ageCandidates(f fragment.Fragment) []Candidate {
	var out []Candidate
	for _, hint := range []string{"time", "date"} {
		out = append(out, textCandidates(f.Find("", hint))...)
	}
	return out
}

// avatarCandidates yields buyer-image holders: images whose class/id
// mentions avatar, buyer or profile.
func avatarCandidates(f fragment.Fragment) []Candidate {
	var out []Candidate
	for _, hint := range []string{"avatar", "buyer", "profile"} {
		for _, img := range f.Find("img", hint) {
			if img.Attr("src") != "" {
				out = append(out, Candidate{Frag: img, Source: SourceAttr, AttrName: "src"})
			}
		}
	}
	return out
}

func attrHas(f fragment.Fragment, substr string) bool {
	substr = strings.ToLower(substr)
	return strings.Contains(strings.ToLower(f.Attr("class")), substr) ||
		strings.Contains(strings.ToLower(f.Attr("id")), substr)
}
