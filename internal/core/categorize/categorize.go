// Package categorize merges the waiting-state verdict with the change
// type, applies the override and staleness rules, and maps the result
// onto the external category/subcategory vocabulary. Every branch is a
// total function; malformed input degrades to "not stagnant" rather
// than erroring so one bad PR never halts a batch run
package categorize

import (
	"eipwatch/internal/core/classify"
	"eipwatch/internal/core/waiting"
)

// Subcategory vocabulary, consumed as opaque enumerants downstream
const (
	SubAwaited         = "AWAITED"
	SubStagnant        = "Stagnant"
	SubWaitingOnEditor = "Waiting on Editor"
	SubWaitingOnAuthor = "Waiting on Author"
)

// ReasonAwaitingAuthors replaces the verdict reason when the non-author
// status/new-EIP override fires
const ReasonAwaitingAuthors = "waiting on the spec authors, not yet reviewed"

// Input are the categorization knobs beyond the verdict and type
type Input struct {
	// OpenedByDocAuthor is true when the PR opener is credited in the
	// touched documents' preambles (the opener's implicit author-set
	// membership does not count here)
	OpenedByDocAuthor bool

	// DaysSinceLastActivity is computed by the caller as now minus the
	// latest timeline timestamp (or minus creation time with an empty
	// timeline); nil means unknown and disables the staleness rule
	DaysSinceLastActivity *int

	// StagnantDays is the staleness threshold, usually ruleset.StagnantDays
	StagnantDays int
}

// Result is the externally visible contract: the verdict plus the
// category/subcategory labels and the staleness flag
type Result struct {
	waiting.Verdict
	Type        classify.Type
	Category    string
	Subcategory string
	Stagnant    bool
}

// Label maps a change type to its external category label. TypeOther
// maps to "Content Edit"; that choice is canonical across the board,
// the CSV export, and the aggregates
func Label(t classify.Type) string {
	switch t {
	case classify.TypeDraft:
		return "PR DRAFT"
	case classify.TypeTypo:
		return "Typo"
	case classify.TypeNewEIP:
		return "New EIP"
	case classify.TypeStatusChange:
		return "Status Change"
	case classify.TypeWebsite:
		return "Website"
	case classify.TypeTooling:
		return "Tooling"
	case classify.TypeEIP1:
		return "EIP-1"
	case classify.TypeOther:
		return "Content Edit"
	default:
		return "Content Edit"
	}
}

// Categorize applies, in order: the non-author status/new-EIP override,
// the staleness rule, subcategory priority, and the category mapping.
// Later steps see the state rewritten by earlier ones
func Categorize(v waiting.Verdict, t classify.Type, in Input) Result {
	// A non-author opening a mechanical status or new-spec PR does not
	// need editor attention before anyone at all has engaged; the next
	// step belongs to the credited document authors
	if (t == classify.TypeStatusChange || t == classify.TypeNewEIP) &&
		!in.OpenedByDocAuthor &&
		v.LastEditorAction == nil && v.LastAuthorAction == nil {
		v.NeedsEditorAttention = false
		v.WaitingSince = nil
		v.Reason = ReasonAwaitingAuthors
	}

	// Staleness is only reachable in the waiting-on-author state; a PR
	// that needs editor attention is never stagnant regardless of age
	stagnant := !v.NeedsEditorAttention &&
		in.DaysSinceLastActivity != nil &&
		*in.DaysSinceLastActivity >= in.StagnantDays &&
		in.StagnantDays > 0

	var sub string
	switch {
	case t == classify.TypeDraft && !stagnant:
		sub = SubAwaited
	case stagnant:
		sub = SubStagnant
	case v.NeedsEditorAttention:
		sub = SubWaitingOnEditor
	default:
		sub = SubWaitingOnAuthor
	}

	return Result{
		Verdict:     v,
		Type:        t,
		Category:    Label(t),
		Subcategory: sub,
		Stagnant:    stagnant,
	}
}
