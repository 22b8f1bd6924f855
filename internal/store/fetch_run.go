package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type FetchRunStore struct {
	db *sqlx.DB
}

var (
	TriggerTypeManual    = "manual"
	TriggerTypeStartup   = "startup"
	TriggerTypeScheduled = "scheduled"
)

var (
	StatusSuccess  = "success"
	StatusDegraded = "degraded"
	StatusFailure  = "failure"
)

// FetchRun represents one row of the 'fetch_runs' table: the audit record
// of a single fetch cycle against the baseline resources and live feed.
type FetchRun struct {
	ID             int64     `db:"id" json:"id"`
	TriggerType    string    `db:"trigger_type" json:"trigger_type"`
	Status         string    `db:"status" json:"status"`
	LineCount      int       `db:"line_count" json:"line_count"`
	TaskCount      int       `db:"task_count" json:"task_count"`
	ExecutionCount int       `db:"execution_count" json:"execution_count"`
	Detail         string    `db:"detail" json:"detail,omitempty"`
	FetchedAt      time.Time `db:"fetched_at" json:"fetched_at"`
}

func (fr *FetchRunStore) InsertFetchRun(ctx context.Context, run *FetchRun) error {
	query := `INSERT INTO fetch_runs (
		trigger_type,
		status,
		line_count,
		task_count,
		execution_count,
		detail
	) VALUES (
		:trigger_type,
		:status,
		:line_count,
		:task_count,
		:execution_count,
		:detail
	) RETURNING id, fetched_at`

	rows, err := fr.db.NamedQueryContext(ctx, query, run)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&run.ID, &run.FetchedAt); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (fr *FetchRunStore) GetLatest(ctx context.Context, limit int) ([]FetchRun, error) {
	query := `
	SELECT id, trigger_type, status, line_count, task_count, execution_count, detail, fetched_at
	FROM fetch_runs
	ORDER BY fetched_at DESC
	LIMIT $1`

	runs := []FetchRun{}
	if err := fr.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, err
	}
	return runs, nil
}
