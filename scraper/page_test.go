package scraper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/use-agent/rfqharvest/models"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"deadline", context.DeadlineExceeded, models.ErrCodeTimeout},
		{"canceled", context.Canceled, models.ErrCodeTimeout},
		{"wrapped deadline", fmt.Errorf("eval: %w", context.DeadlineExceeded), models.ErrCodeTimeout},
		{"other", errors.New("net::ERR_CONNECTION_RESET"), models.ErrCodeNavigation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := categorizeError(tt.err, "fetch failed")
			var se *models.ScrapeError
			if !errors.As(err, &se) {
				t.Fatalf("err = %T, want *models.ScrapeError", err)
			}
			if se.Code != tt.code {
				t.Errorf("code = %q, want %q", se.Code, tt.code)
			}
			if !errors.Is(err, tt.err) {
				t.Error("wrapped cause lost")
			}
		})
	}
}

func TestCategorizeErrorNil(t *testing.T) {
	if err := categorizeError(nil, "x"); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}

func TestSleepCtx(t *testing.T) {
	if err := sleepCtx(context.Background(), 0); err != nil {
		t.Errorf("zero delay: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sleepCtx(ctx, time.Minute)
	var se *models.ScrapeError
	if !errors.As(err, &se) || se.Code != models.ErrCodeTimeout {
		t.Errorf("err = %v, want SCRAPE_TIMEOUT", err)
	}
}
