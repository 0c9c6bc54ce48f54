// Package repo provides the snapshots repository implementation.
package repo

import (
	"context"
	"fmt"
	"strings"

	"eipwatch/internal/modkit/repokit"
	"eipwatch/internal/services/snapshots/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the snapshots repository
type Storage interface {
	UpsertBatch(ctx context.Context, xs []domain.Snapshot) error
	PruneClosed(ctx context.Context, repo string, keep []int) (int64, error)
}

const cols = 24

// UpsertBatch implements Storage with one multi-row statement per batch
func (s *pg) UpsertBatch(ctx context.Context, xs []domain.Snapshot) error {
	if len(xs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO pr_snapshots
		(repo, number, title, opener, html_url,
		pr_type, category, subcategory,
		needs_editor_attention, waiting_since,
		last_editor_type, last_editor_date, last_editor_actor,
		last_author_type, last_author_date,
		reason, stagnant, created_by_bot, opened_by_doc_author,
		days_since_last_activity, pr_opened_at, decided_at,
		rules_version, run_id) VALUES `)

	args := make([]any, 0, len(xs)*cols)
	for i, x := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*cols + 1
		sb.WriteByte('(')
		for j := 0; j < cols; j++ {
			if j > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "$%d", base+j)
		}
		sb.WriteByte(')')

		var edType, edActor, auType *string
		var edDate, auDate any
		if a := x.LastEditorAction; a != nil {
			edType, edActor, edDate = &a.Type, &a.Actor, a.Date
		}
		if a := x.LastAuthorAction; a != nil {
			auType, auDate = &a.Type, a.Date
		}

		args = append(args,
			x.Repo, x.Number, x.Title, x.Opener, x.HTMLURL,
			x.Type, x.Category, x.Subcategory,
			x.NeedsEditorAttention, x.WaitingSince,
			edType, edDate, edActor,
			auType, auDate,
			x.Reason, x.Stagnant, x.CreatedByBot, x.OpenedByDocAuthor,
			x.DaysSinceLastActivity, x.PROpenedAt, x.DecidedAt,
			x.RulesVersion, x.RunID,
		)
	}
	// Latest run wins per PR
	sb.WriteString(` ON CONFLICT (repo, number) DO UPDATE SET
		title = EXCLUDED.title,
		opener = EXCLUDED.opener,
		html_url = EXCLUDED.html_url,
		pr_type = EXCLUDED.pr_type,
		category = EXCLUDED.category,
		subcategory = EXCLUDED.subcategory,
		needs_editor_attention = EXCLUDED.needs_editor_attention,
		waiting_since = EXCLUDED.waiting_since,
		last_editor_type = EXCLUDED.last_editor_type,
		last_editor_date = EXCLUDED.last_editor_date,
		last_editor_actor = EXCLUDED.last_editor_actor,
		last_author_type = EXCLUDED.last_author_type,
		last_author_date = EXCLUDED.last_author_date,
		reason = EXCLUDED.reason,
		stagnant = EXCLUDED.stagnant,
		created_by_bot = EXCLUDED.created_by_bot,
		opened_by_doc_author = EXCLUDED.opened_by_doc_author,
		days_since_last_activity = EXCLUDED.days_since_last_activity,
		pr_opened_at = EXCLUDED.pr_opened_at,
		decided_at = EXCLUDED.decided_at,
		rules_version = EXCLUDED.rules_version,
		run_id = EXCLUDED.run_id`)

	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

// PruneClosed implements Storage
func (s *pg) PruneClosed(ctx context.Context, repo string, keep []int) (int64, error) {
	const sql = `DELETE FROM pr_snapshots WHERE repo = $1 AND NOT (number = ANY($2))`
	tag, err := s.q.Exec(ctx, sql, repo, keep)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
