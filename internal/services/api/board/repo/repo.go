// Package repo provides storage access for the board
package repo

import (
	"context"
	"time"

	"eipwatch/internal/modkit/repokit"
	"eipwatch/internal/platform/store"
	"eipwatch/internal/services/api/board/domain"
)

// StorageRepo defines the board read surface
type StorageRepo interface {
	Summary(ctx context.Context, repo string) ([]domain.SummaryRow, error)
	List(ctx context.Context, in domain.ListInput) ([]domain.PRRow, error)
	Trends(ctx context.Context, in domain.TrendsInput) ([]domain.TrendRow, error)
}

// NewHybrid constructs a hybrid storage binder using PG and CH.
// ch may be nil; Trends then reports no data
func NewHybrid(ch store.Clickhouse) repokit.Binder[StorageRepo] { return &hybridBinder{ch: ch} }

type hybridBinder struct{ ch store.Clickhouse }

// Bind binds a Queryer to produce a StorageRepo
func (b *hybridBinder) Bind(q repokit.Queryer) StorageRepo { return &hybridStore{pg: q, ch: b.ch} }

type hybridStore struct {
	pg repokit.Queryer
	ch store.Clickhouse
}

func (s *hybridStore) Summary(ctx context.Context, repo string) ([]domain.SummaryRow, error) {
	const sql = `
select category, subcategory, needs_editor_attention, count(1) as prs
from pr_snapshots
where ($1 = '' or repo = $1)
group by category, subcategory, needs_editor_attention
order by prs desc, category asc, subcategory asc
`
	rows, err := s.pg.Query(ctx, sql, repo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.SummaryRow
	for rows.Next() {
		var r domain.SummaryRow
		if err := rows.Scan(&r.Category, &r.Subcategory, &r.NeedsAttention, &r.PRs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *hybridStore) List(ctx context.Context, in domain.ListInput) ([]domain.PRRow, error) {
	limit := in.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	// nil tri-state filters pass as nulls and disable the clause
	var attention, stagnant any
	if in.NeedsAttention != nil {
		attention = *in.NeedsAttention
	}
	if in.Stagnant != nil {
		stagnant = *in.Stagnant
	}

	const sql = `
select repo, number, title, opener, html_url,
	pr_type, category, subcategory,
	needs_editor_attention, waiting_since,
	last_editor_type, last_editor_date, last_editor_actor,
	last_author_type, last_author_date,
	reason, stagnant, created_by_bot, opened_by_doc_author
from pr_snapshots
where ($1 = '' or repo = $1)
and ($2 = '' or category = $2)
and ($3 = '' or subcategory = $3)
and ($4::boolean is null or needs_editor_attention = $4)
and ($5::boolean is null or stagnant = $5)
order by waiting_since asc nulls last, number asc
limit $6
`
	rows, err := s.pg.Query(ctx, sql, in.Repo, in.Category, in.Subcategory, attention, stagnant, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PRRow
	for rows.Next() {
		var r domain.PRRow
		var edType, edActor, auType *string
		var edDate, auDate *time.Time
		if err := rows.Scan(
			&r.Repo, &r.Number, &r.Title, &r.Opener, &r.HTMLURL,
			&r.Type, &r.Category, &r.Subcategory,
			&r.NeedsAttention, &r.WaitingSince,
			&edType, &edDate, &edActor,
			&auType, &auDate,
			&r.Reason, &r.Stagnant, &r.CreatedByBot, &r.OpenedByDocAuthor,
		); err != nil {
			return nil, err
		}
		if edType != nil {
			r.LastEditor = &domain.ActionView{Type: *edType, Date: edDate, Actor: deref(edActor)}
		}
		if auType != nil {
			r.LastAuthor = &domain.ActionView{Type: *auType, Date: auDate}
		}
		if r.WaitingSince != nil {
			d := int(time.Since(*r.WaitingSince).Hours() / 24)
			if d < 0 {
				d = 0
			}
			r.WaitingDays = &d
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *hybridStore) Trends(ctx context.Context, in domain.TrendsInput) ([]domain.TrendRow, error) {
	if s.ch == nil {
		return nil, nil
	}
	start, err := time.Parse("2006-01-02", in.Range.Start)
	if err != nil {
		return nil, err
	}
	endIncl, err := time.Parse("2006-01-02", in.Range.End)
	if err != nil {
		return nil, err
	}
	endExcl := endIncl.Add(24 * time.Hour)

	const sql = `
SELECT toString(day) AS day, category, subcategory, needs_attention, sum(prs) AS prs
FROM pr_attention_daily
WHERE day >= ? AND day < ?
  AND (? = '' OR repo = ?)
  AND (? = '' OR category = ?)
GROUP BY day, category, subcategory, needs_attention
ORDER BY day ASC, prs DESC
`
	rows, err := s.ch.Query(ctx, sql, start, endExcl, in.Repo, in.Repo, in.Category, in.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TrendRow
	for rows.Next() {
		var r domain.TrendRow
		var prs uint64
		if err := rows.Scan(&r.Day, &r.Category, &r.Subcategory, &r.NeedsAttention, &prs); err != nil {
			return nil, err
		}
		r.PRs = int64(prs)
		out = append(out, r)
	}
	return out, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
