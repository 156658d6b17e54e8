package procure

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"track-matcher/core/dataset"

	"go.uber.org/zap"
)

const searchBaseURL = "https://www.amazon.com/s"

// OpenFunc launches a URL in a browser. The default implementation shells
// out to the platform opener.
type OpenFunc func(url string) error

// Options controls a procurement run.
type Options struct {
	// Limit caps the number of tabs opened, 0 opens everything.
	Limit int
	// Delay is the pause between tabs.
	Delay time.Duration
	// Open launches a URL; nil uses the system browser.
	Open OpenFunc
}

// Service opens Amazon search tabs for the rows of a dataset.
type Service struct {
	logger *zap.Logger
}

// NewService creates a new procurement service.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// SearchURL builds the digital-music search URL for one track. The album is
// included in the query when present.
func SearchURL(track, artist, album string) string {
	query := track + " " + artist
	if album != "" {
		query += " " + album
	}
	return searchBaseURL + "?k=" + url.QueryEscape(query) + "&i=digital-music"
}

// OpenSearches opens one search tab per usable dataset row. Rows without a
// track or artist are skipped and logged. It returns the number of tabs
// opened.
func (s *Service) OpenSearches(ctx context.Context, ds *dataset.Dataset, opts Options) (int, error) {
	cols, err := dataset.Detect(ds)
	if err != nil {
		return 0, err
	}

	open := opts.Open
	if open == nil {
		open = openBrowser
	}

	rows := ds.Rows
	if opts.Limit > 0 && opts.Limit < len(rows) {
		s.logger.Info("Limiting procurement run", zap.Int("limit", opts.Limit))
		rows = rows[:opts.Limit]
	}

	opened := 0
	for i, row := range rows {
		select {
		case <-ctx.Done():
			return opened, ctx.Err()
		default:
		}

		track := strings.TrimSpace(row[cols.Track])
		artist := strings.TrimSpace(row[cols.Artist])
		if track == "" || artist == "" {
			s.logger.Warn("Skipping row with missing track or artist", zap.Int("row", i+1))
			continue
		}
		album := strings.TrimSpace(row[cols.Album])

		target := SearchURL(track, artist, album)
		s.logger.Info("Opening Amazon search",
			zap.String("track", track),
			zap.String("artist", artist),
		)
		if err := open(target); err != nil {
			return opened, fmt.Errorf("open %s: %w", target, err)
		}
		opened++

		if opts.Delay > 0 && i < len(rows)-1 {
			select {
			case <-ctx.Done():
				return opened, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}
	return opened, nil
}

// openBrowser launches the platform's default browser.
func openBrowser(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}
