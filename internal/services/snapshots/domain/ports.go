package domain

import "context"

// WriterPort persists a run's snapshots
type WriterPort interface {
	// UpsertBatch writes snapshots, replacing any previous row per PR,
	// and appends the derived daily aggregates
	UpsertBatch(ctx context.Context, xs []Snapshot) error

	// PruneClosed removes snapshots for PRs no longer in the open set.
	// keep holds the numbers still open per repo
	PruneClosed(ctx context.Context, repo string, keep []int) (int64, error)
}
