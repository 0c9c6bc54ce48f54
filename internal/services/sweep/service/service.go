// Package service implements the sweep: list the open pull requests,
// gather each one's activity and changed files, run the decision
// engine, and persist the resulting snapshots
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	gh "eipwatch/internal/adapters/ingest/github"
	"eipwatch/internal/adapters/ingest/preamble"
	"eipwatch/internal/core/actors"
	"eipwatch/internal/core/classify"
	"eipwatch/internal/core/engine"
	"eipwatch/internal/core/timeline"
	"eipwatch/internal/platform/logger"
	"eipwatch/internal/platform/store"
	tim "eipwatch/internal/platform/time"
	editorsdom "eipwatch/internal/services/editors/domain"
	snapdom "eipwatch/internal/services/snapshots/domain"
	"eipwatch/internal/services/sweep/domain"
)

// API is the slice of the GitHub client one sweep needs
type API interface {
	ListOpenPulls(ctx context.Context, owner, repo string, page, perPage int) ([]gh.Pull, error)
	PullByNumber(ctx context.Context, owner, repo string, number int, etag string) (gh.Pull, string, bool, error)
	PullFiles(ctx context.Context, owner, repo string, number, page, perPage int) ([]gh.PullFile, error)
	PullCommits(ctx context.Context, owner, repo string, number, page, perPage int) ([]gh.Commit, error)
	PullReviews(ctx context.Context, owner, repo string, number, page, perPage int) ([]gh.Review, error)
	IssueComments(ctx context.Context, owner, repo string, number, page, perPage int) ([]gh.Comment, error)
	ReviewComments(ctx context.Context, owner, repo string, number, page, perPage int) ([]gh.Comment, error)
	FileContentAt(ctx context.Context, owner, repo, path, ref string) (string, bool, error)
}

// Config for the sweep service
type Config struct {
	Owner    string
	Repo     string
	Workers  int
	PageSize int
	DryRun   bool
}

// Service implements domain.RunnerPort
type Service struct {
	API    API
	Snaps  snapdom.WriterPort
	Roster editorsdom.RosterPort
	Eng    *engine.Engine
	Cfg    Config

	// Now is swappable for tests
	Now func() time.Time
}

// New constructs a new sweep service
func New(api API, snaps snapdom.WriterPort, roster editorsdom.RosterPort, eng *engine.Engine, cfg Config) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	return &Service{API: api, Snaps: snaps, Roster: roster, Eng: eng, Cfg: cfg, Now: func() time.Time { return time.Now().UTC() }}
}

// RunOnce implements domain.RunnerPort
func (s *Service) RunOnce(ctx context.Context) (domain.Summary, error) {
	if s.Cfg.Owner == "" || s.Cfg.Repo == "" {
		return domain.Summary{}, errors.New("sweep: owner and repo are required")
	}

	runID := uuid.NewString()
	ctx = store.WithRunID(ctx, runID)
	ctx = logger.WithRequest(ctx, "", runID)
	log := logger.C(ctx)

	sum := domain.Summary{
		RunID:   runID,
		Repo:    s.Cfg.Owner + "/" + s.Cfg.Repo,
		Started: s.Now(),
	}

	pulls, err := s.listOpen(ctx)
	if err != nil {
		return sum, err
	}
	sum.Open = len(pulls)
	log.Info().Int("open", len(pulls)).Msg("sweep started")

	editors, err := s.Roster.Editors(ctx)
	if err != nil {
		return sum, err
	}

	snaps := make([]*snapdom.Snapshot, len(pulls))
	sem := make(chan struct{}, s.Cfg.Workers)
	wg := sync.WaitGroup{}

	for i := range pulls {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			snap, err := s.decideOne(ctx, editors, pulls[i])
			if err != nil {
				log.Warn().Err(err).Int("number", pulls[i].Number).Msg("pull skipped")
				return
			}
			snap.RunID = runID
			snaps[i] = &snap
		}(i)
	}
	wg.Wait()

	batch := make([]snapdom.Snapshot, 0, len(snaps))
	for _, sn := range snaps {
		if sn != nil {
			batch = append(batch, *sn)
		}
	}
	sum.Decided = len(batch)
	sum.Failed = sum.Open - sum.Decided

	if !s.Cfg.DryRun {
		if err := s.Snaps.UpsertBatch(ctx, batch); err != nil {
			return sum, err
		}
		// every listed PR stays, including the ones that failed to decide
		keep := make([]int, 0, len(pulls))
		for _, p := range pulls {
			keep = append(keep, p.Number)
		}
		pruned, err := s.Snaps.PruneClosed(ctx, sum.Repo, keep)
		if err != nil {
			return sum, err
		}
		sum.Pruned = pruned
	}

	sum.Finished = s.Now()
	log.Info().
		Int("decided", sum.Decided).
		Int("failed", sum.Failed).
		Int64("pruned", sum.Pruned).
		Msg("sweep finished")
	return sum, nil
}

func (s *Service) listOpen(ctx context.Context) ([]gh.Pull, error) {
	var out []gh.Pull
	for page := 1; ; page++ {
		xs, err := s.API.ListOpenPulls(ctx, s.Cfg.Owner, s.Cfg.Repo, page, s.Cfg.PageSize)
		if err != nil {
			return nil, err
		}
		out = append(out, xs...)
		if len(xs) < s.Cfg.PageSize {
			return out, nil
		}
	}
}

// decideOne gathers one pull request and runs the engine over it
func (s *Service) decideOne(ctx context.Context, editors actors.Set, listed gh.Pull) (snapdom.Snapshot, error) {
	pull := listed
	// the list payload omits mergeability; the detail view carries it
	if detail, _, _, err := s.API.PullByNumber(ctx, s.Cfg.Owner, s.Cfg.Repo, listed.Number, ""); err == nil && detail.Number == listed.Number {
		pull = detail
	}

	files, docAuthors, err := s.collectFiles(ctx, pull)
	if err != nil {
		return snapdom.Snapshot{}, err
	}
	records, err := s.collectRecords(ctx, pull.Number)
	if err != nil {
		return snapdom.Snapshot{}, err
	}

	days := s.daysSinceLastActivity(pull.CreatedAt, records)
	res := s.Eng.Decide(engine.Input{
		Opener:                pull.User.Login,
		OpenedAt:              pull.CreatedAt,
		Draft:                 pull.Draft,
		HasMergeConflict:      pull.HasMergeConflict(),
		Title:                 pull.Title,
		Body:                  pull.Body,
		Records:               records,
		Files:                 files,
		Editors:               editors,
		PreambleAuthors:       docAuthors,
		DaysSinceLastActivity: &days,
	})

	now := s.Now()
	snap := snapdom.Snapshot{
		Repo:    s.Cfg.Owner + "/" + s.Cfg.Repo,
		Number:  pull.Number,
		Title:   pull.Title,
		Opener:  pull.User.Login,
		HTMLURL: pull.HTMLURL,

		Type:        res.Type.String(),
		Category:    res.Category,
		Subcategory: res.Subcategory,

		NeedsEditorAttention: res.NeedsEditorAttention,
		WaitingSince:         res.WaitingSince,
		Reason:               res.Reason,
		Stagnant:             res.Stagnant,

		CreatedByBot:      res.CreatedByBot,
		OpenedByDocAuthor: res.OpenedByDocAuthor,

		DaysSinceLastActivity: &days,
		PROpenedAt:            pull.CreatedAt,
		DecidedAt:             now,
		RulesVersion:          s.Eng.Rules().Version,
	}
	// no editor has acted yet: the wait started when the PR opened
	if snap.NeedsEditorAttention && snap.WaitingSince == nil {
		snap.WaitingSince = tim.Ptr(pull.CreatedAt)
	}
	if a := res.LastEditorAction; a != nil {
		snap.LastEditorAction = &snapdom.ActionRecord{Type: string(a.Source), Date: &a.At, Actor: a.Actor}
	}
	if a := res.LastAuthorAction; a != nil {
		snap.LastAuthorAction = &snapdom.ActionRecord{Type: string(a.Source), Date: &a.At, Actor: a.Actor}
	}
	return snap, nil
}

// collectFiles lists the changed files, computes the status-only flag
// for modified spec documents, and harvests the credited author handles
// from the touched documents' front matter
func (s *Service) collectFiles(ctx context.Context, pull gh.Pull) ([]classify.FileChange, actors.Set, error) {
	var raw []gh.PullFile
	for page := 1; ; page++ {
		xs, err := s.API.PullFiles(ctx, s.Cfg.Owner, s.Cfg.Repo, pull.Number, page, s.Cfg.PageSize)
		if err != nil {
			return nil, nil, err
		}
		raw = append(raw, xs...)
		if len(xs) < s.Cfg.PageSize {
			break
		}
	}

	rules := s.Eng.Rules()
	files := make([]classify.FileChange, 0, len(raw))
	var docs []preamble.Doc

	for _, f := range raw {
		fc := classify.FileChange{
			Filename:  f.Filename,
			Status:    f.Status,
			Additions: f.Additions,
			Deletions: f.Deletions,
		}
		if rules.MatchesSpecDoc(f.Filename) {
			switch f.Status {
			case "modified":
				head, hok, err := s.fileAt(ctx, f.Filename, pull.Head.SHA)
				if err != nil {
					return nil, nil, err
				}
				base, bok, err := s.fileAt(ctx, f.Filename, pull.Base.SHA)
				if err != nil {
					return nil, nil, err
				}
				if hok && bok {
					fc.PreambleStatusOnly = preamble.StatusOnly(base, head)
				}
				if hok {
					if d, ok := preamble.Parse(head); ok {
						docs = append(docs, d)
					}
				}
			case "added":
				head, hok, err := s.fileAt(ctx, f.Filename, pull.Head.SHA)
				if err != nil {
					return nil, nil, err
				}
				if hok {
					if d, ok := preamble.Parse(head); ok {
						docs = append(docs, d)
					}
				}
			}
		}
		files = append(files, fc)
	}

	return files, actors.NewSet(preamble.Handles(docs...)...), nil
}

// fileAt fetches one document version from the base repo by SHA.
// Head commits of fork PRs are reachable there through the merge refs
func (s *Service) fileAt(ctx context.Context, path, ref string) (string, bool, error) {
	if ref == "" {
		return "", false, nil
	}
	return s.API.FileContentAt(ctx, s.Cfg.Owner, s.Cfg.Repo, path, ref)
}

// collectRecords gathers all five activity sources for one pull request
func (s *Service) collectRecords(ctx context.Context, number int) ([]timeline.ActivityRecord, error) {
	var recs []timeline.ActivityRecord

	for page := 1; ; page++ {
		xs, err := s.API.PullCommits(ctx, s.Cfg.Owner, s.Cfg.Repo, number, page, s.Cfg.PageSize)
		if err != nil {
			return nil, err
		}
		for _, c := range xs {
			var author, committer string
			if c.Author != nil {
				author = c.Author.Login
			}
			if c.Committer != nil {
				committer = c.Committer.Login
			}
			recs = append(recs, timeline.CommitRecord(author, committer, c.Commit.Author.Date, c.Commit.Committer.Date))
		}
		if len(xs) < s.Cfg.PageSize {
			break
		}
	}

	for page := 1; ; page++ {
		xs, err := s.API.PullReviews(ctx, s.Cfg.Owner, s.Cfg.Repo, number, page, s.Cfg.PageSize)
		if err != nil {
			return nil, err
		}
		for _, r := range xs {
			recs = append(recs, timeline.ReviewRecord(r.User.Login, r.State, r.SubmittedAt, r.CreatedAt))
		}
		if len(xs) < s.Cfg.PageSize {
			break
		}
	}

	for page := 1; ; page++ {
		xs, err := s.API.IssueComments(ctx, s.Cfg.Owner, s.Cfg.Repo, number, page, s.Cfg.PageSize)
		if err != nil {
			return nil, err
		}
		for _, c := range xs {
			recs = append(recs, timeline.ActivityRecord{ActorLogin: c.User.Login, Source: timeline.SourceIssueComment, At: c.CreatedAt})
		}
		if len(xs) < s.Cfg.PageSize {
			break
		}
	}

	for page := 1; ; page++ {
		xs, err := s.API.ReviewComments(ctx, s.Cfg.Owner, s.Cfg.Repo, number, page, s.Cfg.PageSize)
		if err != nil {
			return nil, err
		}
		for _, c := range xs {
			recs = append(recs, timeline.ActivityRecord{ActorLogin: c.User.Login, Source: timeline.SourceReviewComment, At: c.CreatedAt})
		}
		if len(xs) < s.Cfg.PageSize {
			break
		}
	}

	return recs, nil
}

// daysSinceLastActivity measures from the latest record timestamp, or
// from the PR creation time when no record carries one
func (s *Service) daysSinceLastActivity(openedAt time.Time, recs []timeline.ActivityRecord) int {
	last := openedAt
	for _, r := range recs {
		if r.At != nil && r.At.After(last) {
			last = *r.At
		}
	}
	d := int(s.Now().Sub(last).Hours() / 24)
	if d < 0 {
		d = 0
	}
	return d
}
