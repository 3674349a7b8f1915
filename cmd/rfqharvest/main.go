package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/use-agent/rfqharvest/config"
	"github.com/use-agent/rfqharvest/extract"
	"github.com/use-agent/rfqharvest/models"
	"github.com/use-agent/rfqharvest/scraper"
	"github.com/use-agent/rfqharvest/storage"
)

func main() {
	app := &cli.App{
		Name:  "rfqharvest",
		Usage: "harvest RFQ listings from Alibaba sourcing search pages into CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML config file overlaid on env/defaults",
			},
			&cli.IntFlag{
				Name:    "pages",
				Aliases: []string{"n"},
				Usage:   "number of result pages to harvest",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "CSV output path",
			},
			&cli.BoolFlag{
				Name:  "headed",
				Usage: "run the browser with a visible window",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn, or error",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()
	if path := c.String("config"); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			return err
		}
	}
	if c.IsSet("pages") {
		cfg.Source.Pages = c.Int("pages")
	}
	if c.IsSet("out") {
		cfg.Output.File = c.String("out")
	}
	if c.Bool("headed") {
		cfg.Browser.Headless = false
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("rfqharvest starting",
		"pages", cfg.Source.Pages,
		"output", cfg.Output.File,
		"headless", cfg.Browser.Headless,
	)

	origin, err := cfg.Origin()
	if err != nil {
		return err
	}

	// ── 3. Launch the page driver ───────────────────────────────────
	sc, err := scraper.NewScraper(cfg.Browser, cfg.Scraper)
	if err != nil {
		return err
	}
	defer sc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 4. Harvest pages ────────────────────────────────────────────
	var records []models.ListingRecord
	for page := 1; page <= cfg.Source.Pages; page++ {
		pageURL := cfg.PageURL(page)
		slog.Info("fetching page", "page", page, "url", pageURL)

		result, err := sc.FetchPage(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				slog.Warn("interrupted, writing what we have", "page", page)
				break
			}
			// A failed page yields zero records, never aborts the run.
			slog.Warn("page fetch failed, skipping", "page", page, "error", err)
			continue
		}

		frags := scraper.CollectFragments(result.HTML, cfg.Scraper.Selectors)
		slog.Info("page fetched",
			"page", page,
			"method", result.FetchMethod,
			"fragments", len(frags),
		)

		pageRecords, err := extract.ExtractPage(frags, origin, result.Captured)
		if err != nil {
			slog.Warn("page extraction failed, skipping", "page", page, "error", err)
			continue
		}
		slog.Info("page extracted", "page", page, "records", len(pageRecords))
		records = append(records, pageRecords...)
	}

	// ── 5. Persist and summarize ────────────────────────────────────
	if err := storage.WriteCSV(cfg.Output.File, records); err != nil {
		return err
	}
	logSummary(records, cfg.Output.File)
	return nil
}

// logSummary reports per-field fill counts for the run.
func logSummary(records []models.ListingRecord, path string) {
	var titles, buyers, countries, quantities, emails int
	for _, r := range records {
		if r.Title != "" {
			titles++
		}
		if r.BuyerName != "" {
			buyers++
		}
		if r.Country != "" {
			countries++
		}
		if r.Quantity != "" {
			quantities++
		}
		if r.EmailConfirmed {
			emails++
		}
	}
	slog.Info("harvest complete",
		"total", len(records),
		"withTitle", titles,
		"withBuyer", buyers,
		"withCountry", countries,
		"withQuantity", quantities,
		"emailConfirmed", emails,
		"output", path,
	)
	fmt.Printf("Total RFQ records scraped: %d\n", len(records))
	fmt.Printf("Output file: %s\n", path)
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
