// Package domain holds the snapshot types shared by the sweep writer
// and the board readers
package domain

import "time"

// ActionRecord is a persisted last-action of one role on a PR
type ActionRecord struct {
	Type  string     `json:"type"`
	Date  *time.Time `json:"date"`
	Actor string     `json:"actor,omitempty"`
}

// Snapshot is the persisted decision for one open pull request.
// One row per (repo, number); each sweep run overwrites the previous row
type Snapshot struct {
	Repo    string
	Number  int
	Title   string
	Opener  string
	HTMLURL string

	Type        string
	Category    string
	Subcategory string

	NeedsEditorAttention bool
	WaitingSince         *time.Time
	LastEditorAction     *ActionRecord
	LastAuthorAction     *ActionRecord
	Reason               string
	Stagnant             bool

	CreatedByBot      bool
	OpenedByDocAuthor bool

	DaysSinceLastActivity *int

	PROpenedAt   time.Time
	DecidedAt    time.Time
	RulesVersion int
	RunID        string
}

// DailyRow is one ClickHouse aggregate row derived from a run's snapshots
type DailyRow struct {
	Day            time.Time
	Repo           string
	Category       string
	Subcategory    string
	NeedsAttention bool
	PRs            uint64
}
