// Package service resolves the editor roster from static config and,
// when configured, a roster file kept in the watched repo
package service

import (
	"context"
	"regexp"
	"sync"
	"time"

	"eipwatch/internal/core/actors"
	"eipwatch/internal/platform/logger"
)

// FileFetcher is the slice of the GitHub client the roster needs
type FileFetcher interface {
	FileContentAt(ctx context.Context, owner, repo, path, ref string) (string, bool, error)
}

// Config for the roster service
type Config struct {
	// Static handles always included in the roster
	Static []string

	// Owner, Repo, Path locate an optional roster file; Path empty
	// disables the remote source
	Owner string
	Repo  string
	Path  string
	Ref   string

	// TTL bounds how long a fetched roster is reused
	TTL time.Duration
}

// Service implements domain.RosterPort
type Service struct {
	api FileFetcher
	cfg Config

	mu        sync.Mutex
	cached    actors.Set
	fetchedAt time.Time
}

// New constructs a roster service. api may be nil when no roster file
// is configured
func New(api FileFetcher, cfg Config) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = 15 * time.Minute
	}
	return &Service{api: api, cfg: cfg}
}

// roster files list one handle per "- login" line; comments and section
// keys fall through the match
var entryRe = regexp.MustCompile(`(?m)^\s*-\s*@?([A-Za-z0-9](?:-?[A-Za-z0-9]){0,38})\s*(?:#.*)?$`)

// Editors implements domain.RosterPort
func (s *Service) Editors(ctx context.Context) (actors.Set, error) {
	static := actors.NewSet(s.cfg.Static...)
	if s.cfg.Path == "" || s.api == nil {
		return static, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.fetchedAt) < s.cfg.TTL {
		return s.cached, nil
	}

	content, found, err := s.api.FileContentAt(ctx, s.cfg.Owner, s.cfg.Repo, s.cfg.Path, s.cfg.Ref)
	if err != nil {
		// a stale roster beats an empty one
		if s.cached != nil {
			logger.C(ctx).Warn().Err(err).Msg("roster fetch failed, serving cached")
			return s.cached, nil
		}
		return nil, err
	}
	if !found {
		logger.C(ctx).Warn().Str("path", s.cfg.Path).Msg("roster file missing, static only")
		s.cached = static
		s.fetchedAt = time.Now()
		return s.cached, nil
	}

	set := static
	for _, m := range entryRe.FindAllStringSubmatch(content, -1) {
		set = set.With(m[1])
	}
	s.cached = set
	s.fetchedAt = time.Now()
	return s.cached, nil
}
