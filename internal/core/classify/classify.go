// Package classify assigns exactly one change-type label to a pull
// request from file-level and text signals. The rules form an explicit
// ordered table evaluated by a first-match reducer, so order and
// coverage are unit-testable independently of any single branch chain
package classify

import (
	"eipwatch/internal/core/ruleset"
)

// Type is the closed set of change-type labels
type Type uint8

const (
	// TypeUnknown is the zero value and is never produced by Classify
	TypeUnknown Type = iota
	// TypeDraft marks a PR still in draft state
	TypeDraft
	// TypeTypo marks a small typo/grammar/spelling fix
	TypeTypo
	// TypeNewEIP marks a PR adding a new spec document
	TypeNewEIP
	// TypeStatusChange marks a PR that only moves a document's preamble status
	TypeStatusChange
	// TypeWebsite marks website-content changes
	TypeWebsite
	// TypeTooling marks CI/workflow/tooling changes
	TypeTooling
	// TypeEIP1 marks edits to the process document #1
	TypeEIP1
	// TypeOther is the fallthrough content edit
	TypeOther
)

// String returns the stable wire form of a Type
func (t Type) String() string {
	switch t {
	case TypeDraft:
		return "draft"
	case TypeTypo:
		return "typo"
	case TypeNewEIP:
		return "new_eip"
	case TypeStatusChange:
		return "status_change"
	case TypeWebsite:
		return "website"
	case TypeTooling:
		return "tooling"
	case TypeEIP1:
		return "eip_1"
	case TypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// ParseType maps a wire form back to a Type, Unknown when unrecognized
func ParseType(s string) Type {
	for _, t := range []Type{
		TypeDraft, TypeTypo, TypeNewEIP, TypeStatusChange,
		TypeWebsite, TypeTooling, TypeEIP1, TypeOther,
	} {
		if t.String() == s {
			return t
		}
	}
	return TypeUnknown
}

// FileChange is one changed file as supplied by the file-change
// collaborator. PreambleStatusOnly is computed externally by diffing
// the document at base and head; the classifier consumes it as given
type FileChange struct {
	Filename           string
	Status             string // "added" | "modified" | "removed"
	Additions          int
	Deletions          int
	PreambleStatusOnly bool
}

// Input is everything one classification needs
type Input struct {
	Draft    bool
	TypoLike bool
	Files    []FileChange
	Title    string
	Body     string
}

// rule pairs a label with a pure predicate; first applicable rule wins
type rule struct {
	label   Type
	applies func(rs *ruleset.Set, in Input) bool
}

// Ordering rationale: draft and typo short-circuit first because they
// are near-certain and cheap; file-pattern rules precede text-keyword
// rules because file evidence is stronger than title/body wording
var table = []rule{
	{TypeDraft, func(_ *ruleset.Set, in Input) bool { return in.Draft }},
	{TypeTypo, func(_ *ruleset.Set, in Input) bool { return in.TypoLike }},
	{TypeNewEIP, func(rs *ruleset.Set, in Input) bool {
		for _, f := range in.Files {
			if f.Status == "added" && rs.MatchesSpecDoc(f.Filename) {
				return true
			}
		}
		return false
	}},
	{TypeStatusChange, func(rs *ruleset.Set, in Input) bool {
		for _, f := range in.Files {
			if f.Status == "modified" && f.PreambleStatusOnly && rs.MatchesSpecDoc(f.Filename) {
				return true
			}
		}
		return false
	}},
	{TypeWebsite, func(rs *ruleset.Set, in Input) bool {
		for _, f := range in.Files {
			if rs.UnderWebsitePath(f.Filename) {
				return true
			}
		}
		return rs.MentionsWebsite(in.Title) || rs.MentionsWebsite(in.Body)
	}},
	{TypeTooling, func(rs *ruleset.Set, in Input) bool {
		if rs.HasToolingPrefix(in.Title) {
			return true
		}
		if rs.HasToolingKeyword(in.Title) || rs.HasToolingKeyword(in.Body) {
			return true
		}
		return rs.FirstTokenIsTooling(in.Body)
	}},
	{TypeEIP1, func(rs *ruleset.Set, in Input) bool {
		for _, f := range in.Files {
			if rs.IsFirstDoc(f.Filename) {
				return true
			}
		}
		return false
	}},
	{TypeOther, func(*ruleset.Set, Input) bool { return true }},
}

// Classifier evaluates the rule table against one compiled rule set
type Classifier struct {
	rules *ruleset.Set
}

// New constructs a Classifier
func New(rs *ruleset.Set) *Classifier {
	if rs == nil {
		panic("classify: nil rule set")
	}
	return &Classifier{rules: rs}
}

// Classify returns the first matching label. The final fallthrough rule
// makes the table total, so exactly one label is always produced
func (c *Classifier) Classify(in Input) Type {
	for _, r := range table {
		if r.applies(c.rules, in) {
			return r.label
		}
	}
	return TypeOther // unreachable; the table ends in a catch-all
}

// ClassifyWithOverride applies the status-intent promotion after the
// table returns TypeOther: a title signalling status intent plus at
// least one modified spec document whose only change is the preamble
// status promotes the result to TypeStatusChange. Rule four only fires
// when the preamble flag is the sole evidence; this captures PRs whose
// human-written title also states the intent
func (c *Classifier) ClassifyWithOverride(in Input) Type {
	t := c.Classify(in)
	if t != TypeOther {
		return t
	}
	if !c.rules.TitleSignalsStatusIntent(in.Title) {
		return t
	}
	for _, f := range in.Files {
		if f.Status == "modified" && f.PreambleStatusOnly {
			return TypeStatusChange
		}
	}
	return t
}

// LooksTypoLike computes the externally supplied TypoLike flag: a
// typo-ish title, a small file count, a small line delta, and no merge
// conflict. Callers gather the inputs; the thresholds live in the rule set
func LooksTypoLike(rs *ruleset.Set, title string, files []FileChange, hasConflict bool) bool {
	if hasConflict || !rs.TitleLooksTypo(title) {
		return false
	}
	if len(files) > rs.TypoMaxFiles {
		return false
	}
	lines := 0
	for _, f := range files {
		lines += f.Additions + f.Deletions
	}
	return lines < rs.TypoMaxLines
}
