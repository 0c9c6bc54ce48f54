// Package waiting reduces an ordered timeline to an attention verdict
package waiting

import (
	"time"

	"eipwatch/internal/core/actors"
	"eipwatch/internal/core/timeline"
)

// Reason strings are part of the output contract and consumed verbatim
// by the board
const (
	ReasonNoEditor        = "no editor interaction yet"
	ReasonWaitingOnEditor = "author responded after the last editor action; waiting on editor"
	ReasonWaitingOnAuthor = "editor acted last with no author response since; waiting on author"
)

// Action is the last recorded action of a role on the timeline
type Action struct {
	Source timeline.Source `json:"type"`
	At     time.Time       `json:"date"`
	Actor  string          `json:"actor"`
}

// Verdict is the attention decision with its timestamped justification.
// WaitingSince is nil in the no-editor-yet case; the caller substitutes
// the PR creation time before computing waiting days
type Verdict struct {
	NeedsEditorAttention bool
	WaitingSince         *time.Time
	LastEditorAction     *Action
	LastAuthorAction     *Action
	Reason               string
}

// Analyze is a single pass over an already-sorted timeline. Three
// terminal outcomes, no intermediate state:
//
//   - no editor event at all: needs attention since PR creation
//   - an author event strictly after the last editor event: needs
//     attention again since that author event
//   - otherwise: the ball is in the author's court
//
// Ties on the last editor timestamp are broken by strict After, so an
// author event at the exact same instant does not count as a response
func Analyze(events []timeline.Event) Verdict {
	var lastEditor *timeline.Event
	var lastAuthor *timeline.Event
	for i := range events {
		switch events[i].Role {
		case actors.RoleEditor:
			lastEditor = &events[i]
		case actors.RoleAuthor:
			lastAuthor = &events[i]
		}
	}

	if lastEditor == nil {
		return Verdict{
			NeedsEditorAttention: true,
			LastAuthorAction:     action(lastAuthor),
			Reason:               ReasonNoEditor,
		}
	}

	// latest author event strictly after the last editor event
	var reply *timeline.Event
	for i := range events {
		if events[i].Role != actors.RoleAuthor {
			continue
		}
		if events[i].At.After(lastEditor.At) {
			reply = &events[i]
		}
	}

	if reply != nil {
		since := reply.At
		return Verdict{
			NeedsEditorAttention: true,
			WaitingSince:         &since,
			LastEditorAction:     action(lastEditor),
			LastAuthorAction:     action(reply),
			Reason:               ReasonWaitingOnEditor,
		}
	}

	return Verdict{
		NeedsEditorAttention: false,
		LastEditorAction:     action(lastEditor),
		LastAuthorAction:     action(lastAuthor),
		Reason:               ReasonWaitingOnAuthor,
	}
}

func action(ev *timeline.Event) *Action {
	if ev == nil {
		return nil
	}
	return &Action{Source: ev.Source, At: ev.At, Actor: ev.Actor}
}
