package baseline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/omercouncil/budget-portal/internal/budget/types"
	"github.com/omercouncil/budget-portal/internal/logger"
)

const component = "Baseline"

// Fetcher downloads the static baseline and work-plan datasets. Unlike
// the live feed, these are ground truth: a failed fetch is an error, not
// a degraded state.
type Fetcher struct {
	BudgetURL   string
	WorkPlanURL string
	Client      *retryablehttp.Client
	Logger      *logger.Logger
}

func NewFetcher(budgetURL, workPlanURL string, appLogger *logger.Logger) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = nil

	return &Fetcher{
		BudgetURL:   budgetURL,
		WorkPlanURL: workPlanURL,
		Client:      client,
		Logger:      appLogger,
	}
}

func (f *Fetcher) FetchBudgetLines(ctx context.Context) ([]types.BudgetLine, error) {
	body, err := f.get(ctx, f.BudgetURL)
	if err != nil {
		return nil, fmt.Errorf("fetching baseline dataset: %w", err)
	}
	lines, err := ParseBudgetLines(body)
	if err != nil {
		return nil, err
	}
	f.Logger.Info(component, "Baseline dataset loaded: lines=%d", len(lines))
	return lines, nil
}

func (f *Fetcher) FetchWorkPlanTasks(ctx context.Context) ([]types.WorkPlanTask, error) {
	body, err := f.get(ctx, f.WorkPlanURL)
	if err != nil {
		return nil, fmt.Errorf("fetching work-plan dataset: %w", err)
	}
	tasks, err := ParseWorkPlanTasks(body)
	if err != nil {
		return nil, err
	}
	f.Logger.Info(component, "Work-plan dataset loaded: tasks=%d", len(tasks))
	return tasks, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
