// Package scraper is the page/session driver: it owns the browser, fetches
// listing search pages (HTTP-first with a browser fallback), and cuts the
// rendered markup into candidate listing fragments for the extraction
// engine. Everything time-bounded or network-facing lives here — the
// engine itself never waits on anything.
package scraper

import (
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"golang.org/x/time/rate"

	"github.com/use-agent/rfqharvest/config"
	"github.com/use-agent/rfqharvest/models"
)

// Scraper manages the browser lifecycle and the per-page fetch policy.
type Scraper struct {
	browser    *rod.Browser
	browserCfg config.BrowserConfig
	scraperCfg config.ScraperConfig
	fetcher    *httpFetcher

	// limiter spaces page fetches; listing sites throttle aggressively.
	limiter *rate.Limiter
}

// NewScraper launches a headless browser with anti-automation flags and
// prepares the HTTP-first fetch tier.
func NewScraper(browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) (*Scraper, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.Bin != "" {
		l = l.Bin(browserCfg.Bin)
	}
	if browserCfg.Proxy != "" {
		l = l.Proxy(browserCfg.Proxy)
	}

	// ── Stealth flags ───────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	interval := scraperCfg.PageInterval
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	if interval <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	return &Scraper{
		browser:    browser,
		browserCfg: browserCfg,
		scraperCfg: scraperCfg,
		fetcher:    newHTTPFetcher(browserCfg.Proxy),
		limiter:    limiter,
	}, nil
}

// Close shuts down the browser process.
func (s *Scraper) Close() {
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			slog.Warn("browser close failed", "error", err)
		}
	}
	slog.Info("browser closed")
}
