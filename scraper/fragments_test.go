package scraper

import (
	"strings"
	"testing"

	"github.com/use-agent/rfqharvest/config"
)

const listingPage = `<!DOCTYPE html>
<html><body>
	<div class="rfq-item">
		<a href="/rfq/detail.htm?rfq_id=1">Stainless steel pipes</a>
	</div>
	<div class="list-item other">
		<a href="/rfq/detail.htm?rfq_id=2">Ceramic tiles</a>
	</div>
	<div class="sidebar">navigation noise</div>
</body></html>`

func TestCollectFragments(t *testing.T) {
	frags := CollectFragments(listingPage, []string{"div[class*='rfq']", ".list-item"})
	if len(frags) != 2 {
		t.Fatalf("len = %d, want 2", len(frags))
	}
	if !strings.Contains(frags[0].Text(), "Stainless steel pipes") {
		t.Errorf("frags[0] = %q", frags[0].Text())
	}
	if !strings.Contains(frags[1].Text(), "Ceramic tiles") {
		t.Errorf("frags[1] = %q", frags[1].Text())
	}
}

// An element matched by more than one selector is returned once.
func TestCollectFragmentsDedupAcrossSelectors(t *testing.T) {
	page := `<div class="rfq-item list-item"><a href="/rfq/1">One listing</a></div>`
	frags := CollectFragments(page, []string{"div[class*='rfq']", ".list-item"})
	if len(frags) != 1 {
		t.Fatalf("len = %d, want 1", len(frags))
	}
}

func TestCollectFragmentsInvalidSelectorSkipped(t *testing.T) {
	frags := CollectFragments(listingPage, []string{"div[[[", ".list-item"})
	if len(frags) != 1 {
		t.Fatalf("len = %d, want 1 from the remaining valid selector", len(frags))
	}
}

func TestCollectFragmentsNoMatches(t *testing.T) {
	frags := CollectFragments(`<p>nothing to see</p>`, config.DefaultSelectors)
	if len(frags) != 0 {
		t.Fatalf("len = %d, want 0", len(frags))
	}
}

func TestCollectFragmentsSelectorOrder(t *testing.T) {
	// ".list-item" listed first flips the result order.
	frags := CollectFragments(listingPage, []string{".list-item", "div[class*='rfq']"})
	if len(frags) != 2 {
		t.Fatalf("len = %d, want 2", len(frags))
	}
	if !strings.Contains(frags[0].Text(), "Ceramic tiles") {
		t.Errorf("frags[0] = %q, want selector order respected", frags[0].Text())
	}
}
