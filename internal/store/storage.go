package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/omercouncil/budget-portal/internal/budget/types"
)

type Storage struct {
	FetchRuns interface {
		InsertFetchRun(ctx context.Context, run *FetchRun) error
		GetLatest(ctx context.Context, limit int) ([]FetchRun, error)
	}

	Snapshots interface {
		InsertSnapshot(ctx context.Context, runID int64, lines []types.ReconciledLine) error
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		FetchRuns: &FetchRunStore{db: db},
		Snapshots: &SnapshotStore{db: db},
	}
}
