// Package fragment wraps one parsed document node (and its subtree) behind a
// small read-only view: element kind, attributes, rendered text, filtered
// descendant lookup, and link targets. The extraction engine only sees this
// type; it never touches the underlying tree directly and never mutates it.
package fragment

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Fragment is a read-only view over one node of the parsed document.
// The zero value is an empty fragment: every accessor returns an empty
// result and no method panics.
type Fragment struct {
	sel *goquery.Selection
}

// Wrap builds a Fragment from a goquery selection. Only the first node of
// the selection is considered.
func Wrap(sel *goquery.Selection) Fragment {
	return Fragment{sel: sel}
}

// Parse parses an HTML snippet and returns its body content as a single
// Fragment. Intended for tests and for wrapping listing elements whose
// HTML arrives as a string.
func Parse(rawHTML string) (Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{sel: doc.Find("body")}, nil
}

// IsZero reports whether the fragment wraps no node.
func (f Fragment) IsZero() bool {
	return f.sel == nil || f.sel.Length() == 0
}

// Kind returns the element's tag name ("div", "a", "img"), or "" for the
// zero fragment.
func (f Fragment) Kind() string {
	if f.IsZero() {
		return ""
	}
	if node := f.sel.Get(0); node != nil && node.Type == html.ElementNode {
		return node.Data
	}
	return ""
}

// Attr returns the named attribute's value, or "".
func (f Fragment) Attr(name string) string {
	if f.IsZero() {
		return ""
	}
	v, _ := f.sel.Attr(name)
	return v
}

// Text returns the rendered text content: all descendant text,
// whitespace-trimmed.
func (f Fragment) Text() string {
	if f.IsZero() {
		return ""
	}
	return strings.TrimSpace(f.sel.Text())
}

// Lines splits the rendered text into trimmed, non-empty lines.
func (f Fragment) Lines() []string {
	var lines []string
	for _, line := range strings.Split(f.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// OuterHTML returns the fragment's outer HTML, or "" on failure. Used for
// raw-fragment fingerprinting, not by the field extractors.
func (f Fragment) OuterHTML() string {
	if f.IsZero() {
		return ""
	}
	h, err := goquery.OuterHtml(f.sel)
	if err != nil {
		return ""
	}
	return h
}

// Find returns descendants matching the kind/attribute filter, in document
// order. kind "" matches any element; attrSubstr "" skips the attribute
// check. The attribute check looks at class and id, the structural signals
// listing pages actually vary. An unmatched filter yields an empty slice,
// never an error.
func (f Fragment) Find(kind, attrSubstr string) []Fragment {
	if f.IsZero() {
		return nil
	}
	selector := kind
	if selector == "" {
		selector = "*"
	}
	var out []Fragment
	f.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if attrSubstr != "" && !attrContains(s, attrSubstr) {
			return
		}
		out = append(out, Fragment{sel: s})
	})
	return out
}

// FindKinds returns descendants of any of the given kinds, in document
// order.
func (f Fragment) FindKinds(kinds ...string) []Fragment {
	if f.IsZero() || len(kinds) == 0 {
		return nil
	}
	var out []Fragment
	f.sel.Find(strings.Join(kinds, ", ")).Each(func(_ int, s *goquery.Selection) {
		out = append(out, Fragment{sel: s})
	})
	return out
}

// Links returns all hyperlink descendants carrying a non-empty href,
// including the fragment itself when it is an anchor.
func (f Fragment) Links() []Fragment {
	if f.IsZero() {
		return nil
	}
	var out []Fragment
	if f.Kind() == "a" && f.Attr("href") != "" {
		out = append(out, f)
	}
	f.sel.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		out = append(out, Fragment{sel: s})
	})
	return out
}

// LinkTarget returns the href of the first hyperlink on or under the
// fragment, or "".
func (f Fragment) LinkTarget() string {
	for _, link := range f.Links() {
		if href := link.Attr("href"); href != "" {
			return href
		}
	}
	return ""
}

// attrContains reports whether the node's class or id attribute contains
// the substring (case-insensitive).
func attrContains(s *goquery.Selection, substr string) bool {
	substr = strings.ToLower(substr)
	for _, name := range []string{"class", "id"} {
		if v, ok := s.Attr(name); ok && strings.Contains(strings.ToLower(v), substr) {
			return true
		}
	}
	return false
}
