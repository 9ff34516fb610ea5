package calfeed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/deconcierge/vitals/internal/domain/calendar"
)

const mockURLPrefix = "mock://"

// Client fetches ICS feed bodies over HTTP, substituting registered
// fixtures for mock:// URLs and for real URLs that fail to fetch.
type Client struct {
	http     *http.Client
	fixtures *FixtureSet
	logger   *slog.Logger
}

// NewClient constructs the feed fetcher. Per-fetch deadlines come from the
// caller's context; the embedded http.Client carries no timeout of its own.
func NewClient(fixtures *FixtureSet, logger *slog.Logger) *Client {
	if fixtures == nil {
		fixtures = NewFixtureSet()
	}
	return &Client{
		http:     &http.Client{},
		fixtures: fixtures,
		logger:   logger.With("component", "calfeed.client"),
	}
}

// Fetch returns the raw ICS body for a source. mock:// URLs resolve only
// through the fixture registry. For real URLs, a transport error, timeout
// or non-success status degrades to the registered fixture when one
// exists; with no fixture the error is returned as-is.
func (c *Client) Fetch(ctx context.Context, source calendar.Source) (string, error) {
	if strings.HasPrefix(source.URL, mockURLPrefix) {
		body, ok := c.fixtures.Lookup(source.URL)
		if !ok {
			return "", fmt.Errorf("no fixture registered for %s", source.URL)
		}
		return body, nil
	}

	body, err := c.fetchHTTP(ctx, source.URL)
	if err != nil {
		if fixture, ok := c.fixtures.Lookup(source.URL); ok {
			c.logger.Warn("feed fetch failed, substituting fixture", "source", source.ID, "error", err)
			return fixture, nil
		}
		return "", err
	}
	return body, nil
}

func (c *Client) fetchHTTP(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to fetch ICS (%d): %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

var _ calendar.Fetcher = (*Client)(nil)
