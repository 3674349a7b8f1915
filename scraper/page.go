package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/use-agent/rfqharvest/models"
)

// PageResult is what one listing-page fetch hands to the extraction layer.
type PageResult struct {
	// HTML is the raw page markup.
	HTML string

	// FetchMethod records how the page was fetched: "http" or "browser".
	FetchMethod string

	// Captured is the wall-clock capture timestamp.
	Captured time.Time
}

// FetchPage retrieves one listing search page. The HTTP tier runs first
// when enabled; if its response carries no listing markup (the search list
// is rendered client-side whenever the site decides to challenge plain
// clients), the browser tier takes over. Fetches are spaced by the
// configured page interval.
func (s *Scraper) FetchPage(ctx context.Context, pageURL string) (*PageResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeTimeout, "canceled while waiting for fetch slot", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.scraperCfg.PageTimeout)
	defer cancel()

	if s.scraperCfg.HTTPFirst {
		html, err := s.fetchHTTP(ctx, pageURL)
		if err == nil && len(CollectFragments(html, s.scraperCfg.Selectors)) > 0 {
			return &PageResult{HTML: html, FetchMethod: "http", Captured: time.Now()}, nil
		}
		if err != nil {
			slog.Debug("http tier failed, escalating to browser", "url", pageURL, "error", err)
		} else {
			slog.Debug("http tier returned no listing markup, escalating to browser", "url", pageURL)
		}
	}

	html, err := s.fetchBrowser(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return &PageResult{HTML: html, FetchMethod: "browser", Captured: time.Now()}, nil
}

func (s *Scraper) fetchHTTP(ctx context.Context, pageURL string) (string, error) {
	httpCtx, cancel := context.WithTimeout(ctx, s.scraperCfg.HTTPTimeout)
	defer cancel()
	body, err := s.fetcher.fetch(httpCtx, pageURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// fetchBrowser renders the page in the browser: stealth script, navigate,
// staged scrolling so lazy-loaded listings materialize, then a DOM-stable
// wait before harvesting the markup.
func (s *Scraper) fetchBrowser(ctx context.Context, pageURL string) (string, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to open page",
			err,
		)
	}
	defer func() { _ = page.Close() }()

	// Stealth must be installed before navigation to take effect.
	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
	}

	// A search-engine Referer; direct hits on deep listing URLs get
	// challenged more often.
	if u, parseErr := url.Parse(pageURL); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
			},
		}.Call(page)
	}

	p := page.Context(ctx)

	if err := p.Navigate(pageURL); err != nil {
		return "", categorizeError(err, "navigation to listing page failed")
	}
	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("DOM did not stabilize after navigation, proceeding", "error", err)
	}

	if err := s.scrollThrough(ctx, p); err != nil {
		return "", err
	}

	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("DOM did not stabilize after scrolling, proceeding", "error", err)
	}

	html, err := p.HTML()
	if err != nil {
		return "", categorizeError(err, "failed to extract page HTML")
	}
	return html, nil
}

// scrollThrough walks the viewport down the page in stages: bottom, back to
// top, then half-screen steps. Listing rows below the fold only render
// once scrolled near.
func (s *Scraper) scrollThrough(ctx context.Context, p *rod.Page) error {
	steps := []string{
		`() => window.scrollTo(0, document.body.scrollHeight)`,
		`() => window.scrollTo(0, 0)`,
		`() => window.scrollTo(0, 500)`,
		`() => window.scrollTo(0, 1000)`,
		`() => window.scrollTo(0, 1500)`,
	}
	for _, js := range steps {
		if _, err := p.Eval(js); err != nil {
			return categorizeError(err, "scroll failed")
		}
		if err := sleepCtx(ctx, s.scraperCfg.ScrollDelay); err != nil {
			return err
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return models.NewScrapeError(models.ErrCodeTimeout, "page fetch deadline exceeded", ctx.Err())
	case <-time.After(d):
		return nil
	}
}

// categorizeError wraps a rod error with the matching error code.
func categorizeError(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := models.ErrCodeNavigation
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		code = models.ErrCodeTimeout
	}
	return models.NewScrapeError(code, msg, err)
}
