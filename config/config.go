// Package config holds all application configuration: environment
// variables with sane defaults, optionally overlaid by a YAML file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Browser BrowserConfig `yaml:"browser"`
	Scraper ScraperConfig `yaml:"scraper"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// SourceConfig identifies the listing search to harvest.
type SourceConfig struct {
	// BaseURL is the listing search endpoint.
	BaseURL string `yaml:"base_url"` // default: Alibaba RFQ search list

	// Query is the raw query string appended to BaseURL (country filter,
	// sort order, tracking parameters).
	Query string `yaml:"query"`

	// Pages is how many result pages to harvest.
	Pages int `yaml:"pages"` // default: 3
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool `yaml:"headless"` // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool `yaml:"no_sandbox"` // default: false

	// Bin overrides the Chromium binary path.
	Bin string `yaml:"bin"`

	// Proxy is the proxy URL for all requests.
	Proxy string `yaml:"proxy"`
}

// ScraperConfig controls fetching and fragment discovery.
type ScraperConfig struct {
	// PageTimeout is the hard deadline for fetching one listing page.
	PageTimeout time.Duration `yaml:"page_timeout"` // default: 60s

	// ScrollDelay is the pause between staged scrolls while the page
	// lazy-loads listings.
	ScrollDelay time.Duration `yaml:"scroll_delay"` // default: 3s

	// PageInterval is the minimum spacing between page fetches, enforced
	// with a rate limiter so bursts never hit the site.
	PageInterval time.Duration `yaml:"page_interval"` // default: 5s

	// HTTPFirst tries a plain HTTP fetch (Chrome TLS fingerprint) before
	// paying for a browser render. Falls back to the browser when the
	// response carries no listing markup.
	HTTPFirst bool `yaml:"http_first"` // default: true

	// HTTPTimeout is the deadline for the HTTP-first tier.
	HTTPTimeout time.Duration `yaml:"http_timeout"` // default: 10s

	// Selectors is the ordered listing-container selector list. New page
	// schemas are accommodated by appending selectors, not by code
	// changes.
	Selectors []string `yaml:"selectors"`
}

// OutputConfig controls persistence of extracted records.
type OutputConfig struct {
	// File is the CSV output path.
	File string `yaml:"file"` // default: "alibaba_rfq_output.csv"
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // default: "info"
	Format string `yaml:"format"` // "json" or "text"; default: "text"
}

// DefaultSelectors is the ordered listing-container selector list, most
// specific first. The page markup changes over time; the list is
// deliberately over-broad and the extraction engine filters the noise.
var DefaultSelectors = []string{
	"div[class*='rfq']",
	"div[class*='item']",
	".list-item",
	".rfq-item",
	"div[data-rfq]",
	".sourcing-item",
	"tr[class*='item']",
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL: envOr("RFQ_BASE_URL", "https://sourcing.alibaba.com/rfq/rfq_search_list.htm"),
			Query:   envOr("RFQ_QUERY", "country=AE&recently=Y&tracelog=newest"),
			Pages:   envIntOr("RFQ_PAGES", 3),
		},
		Browser: BrowserConfig{
			Headless:  envBoolOr("RFQ_HEADLESS", true),
			NoSandbox: envBoolOr("RFQ_NO_SANDBOX", false),
			Bin:       os.Getenv("RFQ_BROWSER_BIN"),
			Proxy:     os.Getenv("RFQ_PROXY"),
		},
		Scraper: ScraperConfig{
			PageTimeout:  envDurationOr("RFQ_PAGE_TIMEOUT", 60*time.Second),
			ScrollDelay:  envDurationOr("RFQ_SCROLL_DELAY", 3*time.Second),
			PageInterval: envDurationOr("RFQ_PAGE_INTERVAL", 5*time.Second),
			HTTPFirst:    envBoolOr("RFQ_HTTP_FIRST", true),
			HTTPTimeout:  envDurationOr("RFQ_HTTP_TIMEOUT", 10*time.Second),
			Selectors:    envSliceOr("RFQ_SELECTORS", DefaultSelectors),
		},
		Output: OutputConfig{
			File: envOr("RFQ_OUTPUT", "alibaba_rfq_output.csv"),
		},
		Log: LogConfig{
			Level:  envOr("RFQ_LOG_LEVEL", "info"),
			Format: envOr("RFQ_LOG_FORMAT", "text"),
		},
	}
}

// ApplyFile overlays a YAML config file on top of the current values.
// Absent keys keep their env/default values.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// PageURL builds the listing search URL for the given 1-based page number.
func (c *Config) PageURL(page int) string {
	u := c.Source.BaseURL
	if q := strings.TrimPrefix(c.Source.Query, "?"); q != "" {
		u += "?" + q
	}
	if page > 1 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + "page=" + strconv.Itoa(page)
	}
	return u
}

// Origin returns the scheme://host of the source base URL, used for
// resolving relative links on listing pages.
func (c *Config) Origin() (string, error) {
	u, err := url.Parse(c.Source.BaseURL)
	if err != nil {
		return "", fmt.Errorf("config: parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("config: base URL %q has no scheme or host", c.Source.BaseURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
