package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/text/encoding/charmap"

	"github.com/omercouncil/budget-portal/internal/budget/types"
	"github.com/omercouncil/budget-portal/internal/logger"
)

// ErrFeedUnavailable marks a network or format failure fetching the live
// feed. It is a degraded-data condition, not a fatal one: callers proceed
// with an empty execution map and all execution fields zeroed.
var ErrFeedUnavailable = errors.New("live feed unavailable")

const component = "Feed"

// Fetcher downloads and parses the published-spreadsheet CSV export.
type Fetcher struct {
	URL    string
	Client *retryablehttp.Client
	Logger *logger.Logger
}

func NewFetcher(url string, appLogger *logger.Logger) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 3 * time.Second
	client.Logger = nil

	return &Fetcher{URL: url, Client: client, Logger: appLogger}
}

// Fetch downloads the feed and builds the execution map. Any failure is
// wrapped in ErrFeedUnavailable; resolution warnings are logged, never
// fatal.
func (f *Fetcher) Fetch(ctx context.Context) (types.ExecutionMap, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrFeedUnavailable, err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFeedUnavailable, err)
	}

	return f.buildFromCSV(decodeBody(body))
}

func (f *Fetcher) buildFromCSV(csvText string) (types.ExecutionMap, error) {
	rows, err := Parse(csvText)
	if err != nil {
		return nil, err
	}

	cols, warnings := ResolveColumns(rows[0])
	for _, w := range warnings {
		f.Logger.Warn(component, "Column resolution: %s", w)
	}

	m := BuildExecutionMap(rows[1:], cols)
	f.Logger.Info(component, "Execution map built: rows=%d ids=%d", len(rows)-1, len(m))
	return m, nil
}

// decodeBody handles exports that arrive in the council's legacy
// Windows-1255 encoding instead of UTF-8.
func decodeBody(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}
	decoded, err := charmap.Windows1255.NewDecoder().Bytes(body)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}
