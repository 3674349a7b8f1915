package fragment

import (
	"strings"
	"testing"
)

const listingHTML = `
<div class="rfq-item" id="listing-1">
	<a class="title" href="/rfq/detail.htm?rfq_id=42">Aluminum sheets for construction</a>
	<span class="buyer-name">Gulf Star Trading</span>
	<img class="flag-icon" src="/img/ae.png" alt="UAE" title="United Arab Emirates">
	<div class="text">posted 3 hours ago</div>
</div>`

func mustParse(t *testing.T, raw string) Fragment {
	t.Helper()
	f, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return f
}

func TestParseAndText(t *testing.T) {
	f := mustParse(t, listingHTML)
	text := f.Text()
	for _, want := range []string{"Aluminum sheets", "Gulf Star Trading", "3 hours ago"} {
		if !strings.Contains(text, want) {
			t.Errorf("Text() missing %q in %q", want, text)
		}
	}
}

func TestZeroFragment(t *testing.T) {
	var f Fragment
	if !f.IsZero() {
		t.Fatal("zero Fragment should report IsZero")
	}
	if f.Kind() != "" || f.Attr("class") != "" || f.Text() != "" {
		t.Error("zero Fragment accessors should return empty values")
	}
	if f.Find("div", "") != nil || f.Links() != nil {
		t.Error("zero Fragment lookups should return nil")
	}
}

func TestFindByAttrSubstring(t *testing.T) {
	f := mustParse(t, listingHTML)

	buyers := f.Find("", "buyer")
	if len(buyers) != 1 {
		t.Fatalf("Find(\"\", \"buyer\") returned %d fragments, want 1", len(buyers))
	}
	if got := buyers[0].Text(); got != "Gulf Star Trading" {
		t.Errorf("buyer text = %q", got)
	}

	// Unmatched filters yield an empty sequence, never an error.
	if got := f.Find("span", "nonexistent"); len(got) != 0 {
		t.Errorf("unmatched filter returned %d fragments", len(got))
	}
}

func TestFindKindConstraint(t *testing.T) {
	f := mustParse(t, listingHTML)
	if got := f.Find("img", "flag"); len(got) != 1 {
		t.Fatalf("Find(img, flag) returned %d fragments", len(got))
	}
	if got := f.Find("span", "flag"); len(got) != 0 {
		t.Errorf("Find(span, flag) returned %d fragments, want 0", len(got))
	}
}

func TestFindKinds(t *testing.T) {
	f := mustParse(t, listingHTML)
	imgs := f.FindKinds("img")
	if len(imgs) != 1 {
		t.Fatalf("FindKinds(img) returned %d, want 1", len(imgs))
	}
	if imgs[0].Kind() != "img" {
		t.Errorf("Kind() = %q, want img", imgs[0].Kind())
	}
	if got := imgs[0].Attr("alt"); got != "UAE" {
		t.Errorf("Attr(alt) = %q, want UAE", got)
	}
}

func TestLinks(t *testing.T) {
	f := mustParse(t, listingHTML)
	links := f.Links()
	if len(links) != 1 {
		t.Fatalf("Links() returned %d, want 1", len(links))
	}
	if got := f.LinkTarget(); got != "/rfq/detail.htm?rfq_id=42" {
		t.Errorf("LinkTarget() = %q", got)
	}
}

func TestLinksIncludesSelf(t *testing.T) {
	f := mustParse(t, `<a href="/rfq/1">one</a>`)
	// Parse wraps body, so the anchor is a descendant here; wrap it
	// directly to exercise the self case.
	anchors := f.FindKinds("a")
	if len(anchors) != 1 {
		t.Fatalf("FindKinds(a) returned %d", len(anchors))
	}
	self := anchors[0]
	if got := self.LinkTarget(); got != "/rfq/1" {
		t.Errorf("LinkTarget() on anchor itself = %q", got)
	}
}

func TestLines(t *testing.T) {
	f := mustParse(t, "<div>first line\nsecond line\n\n   \nthird</div>")
	lines := f.Lines()
	want := []string{"first line", "second line", "third"}
	if len(lines) != len(want) {
		t.Fatalf("Lines() = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Lines()[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestOuterHTML(t *testing.T) {
	f := mustParse(t, listingHTML)
	items := f.Find("div", "rfq")
	if len(items) != 1 {
		t.Fatalf("Find(div, rfq) returned %d", len(items))
	}
	h := items[0].OuterHTML()
	if !strings.Contains(h, `class="rfq-item"`) || !strings.Contains(h, "</div>") {
		t.Errorf("OuterHTML() = %q", h)
	}
}
