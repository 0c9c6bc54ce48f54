// Package timeline fuses raw pull-request activity records from all
// sources into one chronologically ordered, role-tagged sequence
package timeline

import (
	"sort"
	"time"

	"eipwatch/internal/core/actors"
)

// Source identifies the channel an activity record came from
type Source string

const (
	// SourcePROpened is the synthetic record for the PR being opened
	SourcePROpened Source = "pr_opened"
	// SourceCommit is a commit pushed to the PR branch
	SourceCommit Source = "commit"
	// SourceIssueComment is a conversation-tab comment
	SourceIssueComment Source = "issue_comment"
	// SourceReviewComment is an inline diff comment
	SourceReviewComment Source = "review_comment"
	// SourceReviewApproved is an approving review
	SourceReviewApproved Source = "review_approved"
	// SourceReviewChangesRequested is a changes-requested review
	SourceReviewChangesRequested Source = "review_changes_requested"
	// SourceReviewCommented is a comment-only review
	SourceReviewCommented Source = "review_commented"
)

// ActivityRecord is one raw event as supplied by the ingest adapters.
// At is nil when the upstream payload had no usable timestamp; such
// records are dropped, never defaulted to now, so ordering stays honest
type ActivityRecord struct {
	ActorLogin string
	Source     Source
	At         *time.Time
}

// Event is a role-tagged, timestamped timeline entry.
// Role is never RoleNone; unresolved records are filtered before this stage
type Event struct {
	Actor  string
	Role   actors.Role
	Source Source
	At     time.Time
}

// Input carries everything one build needs. Sets are authoritative for
// the whole run; the opener is folded into the effective author set
// unless it is a bot login
type Input struct {
	Records  []ActivityRecord
	Editors  actors.Set
	Authors  actors.Set
	Opener   string
	OpenedAt time.Time
}

// Build resolves, filters, and orders the records into a timeline.
// The output is a pure function of the input set: permuting Records
// never changes the result because the final stable sort normalizes
// order while preserving relative source order on timestamp ties
func Build(in Input) []Event {
	authors := in.Authors
	if actors.Usable(in.Opener) {
		authors = authors.With(in.Opener)
	}
	res := actors.NewResolver(in.Editors, authors)

	events := make([]Event, 0, len(in.Records)+1)

	// The PR-open record counts as an author event only when the opener
	// actually resolves to author; an editor opening their own PR is an
	// editor signal already covered by their later activity, and a bot
	// opener never contributes an event
	if !in.OpenedAt.IsZero() {
		if role, ok := res.Resolve(in.Opener); ok && role == actors.RoleAuthor {
			events = append(events, Event{
				Actor:  actors.Fold(in.Opener),
				Role:   actors.RoleAuthor,
				Source: SourcePROpened,
				At:     in.OpenedAt,
			})
		}
	}

	for _, rec := range in.Records {
		if rec.At == nil {
			continue
		}
		role, ok := res.Resolve(rec.ActorLogin)
		if !ok || role == actors.RoleNone {
			continue
		}
		events = append(events, Event{
			Actor:  actors.Fold(rec.ActorLogin),
			Role:   role,
			Source: rec.Source,
			At:     *rec.At,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At.Before(events[j].At)
	})
	return events
}

// ReviewRecord builds a record for a review, preferring the submission
// timestamp and falling back to the creation timestamp. Both absent
// yields a droppable record (nil At)
func ReviewRecord(login, state string, submittedAt, createdAt *time.Time) ActivityRecord {
	at := submittedAt
	if at == nil {
		at = createdAt
	}
	return ActivityRecord{ActorLogin: login, Source: reviewSource(state), At: at}
}

func reviewSource(state string) Source {
	switch state {
	case "APPROVED", "approved":
		return SourceReviewApproved
	case "CHANGES_REQUESTED", "changes_requested":
		return SourceReviewChangesRequested
	default:
		return SourceReviewCommented
	}
}

// CommitRecord builds a record for a commit, preferring the author
// identity and timestamp and falling back to the committer's. A commit
// that attributes to nobody in either set is dropped by Build
func CommitRecord(authorLogin, committerLogin string, authoredAt, committedAt *time.Time) ActivityRecord {
	login := authorLogin
	if login == "" {
		login = committerLogin
	}
	at := authoredAt
	if at == nil {
		at = committedAt
	}
	return ActivityRecord{ActorLogin: login, Source: SourceCommit, At: at}
}
