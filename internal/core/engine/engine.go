// Package engine is the single synchronous entry point of the decision
// core. One Decide call per pull request: it resolves roles, builds the
// timeline, reduces it to a waiting verdict, classifies the change type,
// and categorizes the combined result. Pure function of its input, no
// I/O, safe for unlimited caller concurrency
package engine

import (
	"time"

	"eipwatch/internal/core/actors"
	"eipwatch/internal/core/categorize"
	"eipwatch/internal/core/classify"
	"eipwatch/internal/core/ruleset"
	"eipwatch/internal/core/timeline"
	"eipwatch/internal/core/waiting"
)

// Input is everything one decision needs. Collaborators gather it; the
// engine only reads it
type Input struct {
	// Opener is the PR author login as reported by the host platform
	Opener string
	// OpenedAt is the PR creation time
	OpenedAt time.Time
	// Draft is the PR draft flag
	Draft bool
	// HasMergeConflict blocks the typo heuristic when true
	HasMergeConflict bool

	Title string
	Body  string

	// Records are the raw activity records from all sources, any order
	Records []timeline.ActivityRecord
	// Files are the changed files with the externally computed
	// preamble-status-only flag already set
	Files []classify.FileChange

	// Editors is the authoritative editor roster for this run
	Editors actors.Set
	// PreambleAuthors are the handles credited in the touched documents'
	// preambles. The opener is folded in automatically for role
	// resolution but this set alone decides OpenedByDocAuthor
	PreambleAuthors actors.Set

	// DaysSinceLastActivity is now minus the latest timeline timestamp,
	// or now minus OpenedAt when the timeline is empty; nil disables the
	// staleness rule
	DaysSinceLastActivity *int
}

// Result is the full categorized decision. WaitingSince stays nil in
// the no-editor-yet verdict; consumers substitute OpenedAt before
// computing waiting days
type Result struct {
	categorize.Result

	// CreatedByBot is true when the opener login carries the bot suffix
	CreatedByBot bool
	// OpenedByDocAuthor is true when the opener is in PreambleAuthors
	OpenedByDocAuthor bool

	// Events is the fused timeline the verdict was derived from
	Events []timeline.Event
}

// Engine holds the compiled rule set shared across calls
type Engine struct {
	rules      *ruleset.Set
	classifier *classify.Classifier
}

// New builds an Engine over a compiled rule set
func New(rs *ruleset.Set) *Engine {
	return &Engine{rules: rs, classifier: classify.New(rs)}
}

// Rules exposes the compiled rule set for callers that need thresholds
func (e *Engine) Rules() *ruleset.Set { return e.rules }

// Decide runs the full pipeline for one pull request. Idempotent:
// identical inputs produce identical results, and permuting Records
// never changes the outcome
func (e *Engine) Decide(in Input) Result {
	events := timeline.Build(timeline.Input{
		Records:  in.Records,
		Editors:  in.Editors,
		Authors:  in.PreambleAuthors,
		Opener:   in.Opener,
		OpenedAt: in.OpenedAt,
	})
	verdict := waiting.Analyze(events)

	typoLike := classify.LooksTypoLike(e.rules, in.Title, in.Files, in.HasMergeConflict)
	t := e.classifier.ClassifyWithOverride(classify.Input{
		Draft:    in.Draft,
		TypoLike: typoLike,
		Files:    in.Files,
		Title:    in.Title,
		Body:     in.Body,
	})

	openedByDocAuthor := in.PreambleAuthors.Has(in.Opener)
	cat := categorize.Categorize(verdict, t, categorize.Input{
		OpenedByDocAuthor:     openedByDocAuthor,
		DaysSinceLastActivity: in.DaysSinceLastActivity,
		StagnantDays:          e.rules.StagnantDays,
	})

	return Result{
		Result:            cat,
		CreatedByBot:      actors.IsBot(in.Opener),
		OpenedByDocAuthor: openedByDocAuthor,
		Events:            events,
	}
}
