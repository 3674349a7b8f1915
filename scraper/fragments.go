package scraper

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/use-agent/rfqharvest/fragment"
)

// CollectFragments parses listing-page markup and returns the candidate
// listing fragments matched by the ordered selector list, in selector
// order then document order. The same element matched by two selectors is
// returned once. A selector that fails to parse is logged and skipped;
// unparsable markup yields an empty slice. Never panics, never errors —
// a page with no candidates is simply an empty page.
func CollectFragments(rawHTML string, selectors []string) []fragment.Fragment {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		slog.Warn("listing page markup failed to parse", "error", err)
		return nil
	}

	seen := make(map[*html.Node]struct{})
	var frags []fragment.Fragment

	for _, raw := range selectors {
		sel, err := cascadia.Parse(raw)
		if err != nil {
			slog.Warn("skipping invalid listing selector", "selector", raw, "error", err)
			continue
		}
		for _, node := range cascadia.QueryAll(root, sel) {
			if _, dup := seen[node]; dup {
				continue
			}
			seen[node] = struct{}{}
			frags = append(frags, fragment.Wrap(goquery.NewDocumentFromNode(node).Selection))
		}
	}
	return frags
}
