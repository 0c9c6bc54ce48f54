// Package service contains board workflows
package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"eipwatch/internal/modkit/repokit"
	"eipwatch/internal/services/api/board/domain"
	"eipwatch/internal/services/api/board/repo"
)

// Service defines the board service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the board service
type Svc struct {
	Repo   repo.StorageRepo
	binder repokit.Binder[repo.StorageRepo]
	db     repokit.TxRunner
}

// New constructs a board service
func New(db repokit.TxRunner, binder repokit.Binder[repo.StorageRepo]) *Svc {
	if db == nil {
		panic("board.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("board.Service requires a non nil StorageRepo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Summary returns the attention counts per bucket
func (s *Svc) Summary(ctx context.Context, in domain.SummaryInput) ([]domain.SummaryRow, error) {
	return s.Repo.Summary(ctx, in.Repo)
}

// List returns the filtered snapshots, oldest wait first
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.PRRow, error) {
	return s.Repo.List(ctx, in)
}

// Trends returns the daily aggregate series
func (s *Svc) Trends(ctx context.Context, in domain.TrendsInput) ([]domain.TrendRow, error) {
	return s.Repo.Trends(ctx, in)
}

// ExportCSV streams the filtered listing as CSV
func (s *Svc) ExportCSV(ctx context.Context, in domain.ListInput, w io.Writer) error {
	rows, err := s.Repo.List(ctx, in)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{
		"repo", "number", "title", "opener", "url",
		"type", "category", "subcategory",
		"needs_attention", "waiting_since", "waiting_days",
		"reason", "stagnant",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		var since, days string
		if r.WaitingSince != nil {
			since = r.WaitingSince.UTC().Format(time.RFC3339)
		}
		if r.WaitingDays != nil {
			days = strconv.Itoa(*r.WaitingDays)
		}
		rec := []string{
			r.Repo, strconv.Itoa(r.Number), r.Title, r.Opener, r.HTMLURL,
			r.Type, r.Category, r.Subcategory,
			strconv.FormatBool(r.NeedsAttention), since, days,
			r.Reason, strconv.FormatBool(r.Stagnant),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
