// Package service provides the snapshots service implementation
package service

import (
	"context"
	"sort"
	"time"

	"eipwatch/internal/modkit/repokit"
	"eipwatch/internal/platform/store"
	dom "eipwatch/internal/services/snapshots/domain"
	"eipwatch/internal/services/snapshots/repo"
)

// Config for the snapshots service
type Config struct {
	// DailyTable is the ClickHouse table for per-run aggregates
	DailyTable string
}

// Service implements domain.WriterPort against the PG repo, mirroring
// each accepted batch into ClickHouse daily aggregates
type Service struct {
	tx     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
	ch     store.Clickhouse
	cfg    Config
}

// New constructs a new snapshots service. ch may be nil when the
// columnar backend is disabled
func New(tx repokit.TxRunner, binder repokit.Binder[repo.Storage], ch store.Clickhouse, cfg Config) *Service {
	if cfg.DailyTable == "" {
		cfg.DailyTable = "pr_attention_daily"
	}
	return &Service{tx: tx, binder: binder, ch: ch, cfg: cfg}
}

// UpsertBatch implements domain.WriterPort
func (s *Service) UpsertBatch(ctx context.Context, xs []dom.Snapshot) error {
	if len(xs) == 0 {
		return nil
	}
	err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).UpsertBatch(ctx, xs)
	})
	if err != nil {
		return err
	}
	if s.ch == nil {
		return nil
	}

	rows := Aggregate(xs)
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{r.Day, r.Repo, r.Category, r.Subcategory, r.NeedsAttention, r.PRs})
	}
	return s.ch.Insert(ctx, s.cfg.DailyTable, data)
}

// PruneClosed implements domain.WriterPort
func (s *Service) PruneClosed(ctx context.Context, repoName string, keep []int) (int64, error) {
	var n int64
	err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		var err error
		n, err = s.binder.Bind(q).PruneClosed(ctx, repoName, keep)
		return err
	})
	return n, err
}

// Aggregate folds a batch into daily rows keyed by
// (day, repo, category, subcategory, attention), ordered for stable output
func Aggregate(xs []dom.Snapshot) []dom.DailyRow {
	type key struct {
		day            time.Time
		repo, cat, sub string
		attention      bool
	}
	counts := make(map[key]uint64, len(xs))
	for _, x := range xs {
		k := key{
			day:       x.DecidedAt.UTC().Truncate(24 * time.Hour),
			repo:      x.Repo,
			cat:       x.Category,
			sub:       x.Subcategory,
			attention: x.NeedsEditorAttention,
		}
		counts[k]++
	}

	out := make([]dom.DailyRow, 0, len(counts))
	for k, n := range counts {
		out = append(out, dom.DailyRow{
			Day:            k.day,
			Repo:           k.repo,
			Category:       k.cat,
			Subcategory:    k.sub,
			NeedsAttention: k.attention,
			PRs:            n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Day.Equal(b.Day) {
			return a.Day.Before(b.Day)
		}
		if a.Repo != b.Repo {
			return a.Repo < b.Repo
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Subcategory != b.Subcategory {
			return a.Subcategory < b.Subcategory
		}
		return !a.NeedsAttention && b.NeedsAttention
	})
	return out
}
