package classify

import (
	"testing"

	"eipwatch/internal/core/ruleset"
)

func newClassifier(t *testing.T) *Classifier {
	t.Helper()
	rs, err := ruleset.Load()
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	return New(rs)
}

func TestClassify_DraftWinsOverEverything(t *testing.T) {
	c := newClassifier(t)
	got := c.Classify(Input{
		Draft: true,
		Files: []FileChange{{Filename: "EIPS/eip-9999.md", Status: "added"}},
		Title: "Add EIP-9999",
	})
	if got != TypeDraft {
		t.Fatalf("draft flag must short-circuit, got %v", got)
	}
}

func TestClassify_TypoBeforeFileRules(t *testing.T) {
	c := newClassifier(t)
	got := c.Classify(Input{
		TypoLike: true,
		Files:    []FileChange{{Filename: "EIPS/eip-20.md", Status: "modified"}},
		Title:    "Fix spelling in eip-20",
	})
	if got != TypeTypo {
		t.Fatalf("typo flag must win over file rules, got %v", got)
	}
}

func TestClassify_NewSpecDocument(t *testing.T) {
	c := newClassifier(t)
	got := c.Classify(Input{
		Files: []FileChange{
			{Filename: "assets/eip-9999/impl.sol", Status: "added"},
			{Filename: "ERCS/erc-9999.md", Status: "added"},
		},
		Title: "Add ERC-9999: token hooks",
	})
	if got != TypeNewEIP {
		t.Fatalf("added spec document must classify as new, got %v", got)
	}
}

func TestClassify_StatusChangeNeedsModifiedSpecDoc(t *testing.T) {
	c := newClassifier(t)

	got := c.Classify(Input{
		Files: []FileChange{{Filename: "EIPS/eip-3675.md", Status: "modified", PreambleStatusOnly: true}},
		Title: "EIP-3675 housekeeping",
	})
	if got != TypeStatusChange {
		t.Fatalf("preamble-only modification must classify as status change, got %v", got)
	}

	// the flag on a non-spec file is not evidence for rule four
	got = c.Classify(Input{
		Files: []FileChange{{Filename: "README.md", Status: "modified", PreambleStatusOnly: true}},
		Title: "Readme cleanup",
	})
	if got != TypeOther {
		t.Fatalf("non-spec file must not trigger status change, got %v", got)
	}
}

func TestClassify_WebsiteByPathAndByKeyword(t *testing.T) {
	c := newClassifier(t)

	if got := c.Classify(Input{
		Files: []FileChange{{Filename: "website/index.html", Status: "modified"}},
		Title: "Fix landing page",
	}); got != TypeWebsite {
		t.Fatalf("website path must classify as website, got %v", got)
	}

	if got := c.Classify(Input{
		Title: "Update the WEBSITE nav",
	}); got != TypeWebsite {
		t.Fatalf("website keyword must classify as website, got %v", got)
	}
}

func TestClassify_ToolingPrefixNotDoubleCounted(t *testing.T) {
	c := newClassifier(t)
	got := c.Classify(Input{Title: "Bump: update CI config"})
	if got != TypeTooling {
		t.Fatalf("tooling prefix must fire once, got %v", got)
	}
}

func TestClassify_FirstDocEdit(t *testing.T) {
	c := newClassifier(t)
	got := c.Classify(Input{
		Files: []FileChange{{Filename: "EIPS/eip-1.md", Status: "modified"}},
		Title: "Clarify editor responsibilities",
	})
	if got != TypeEIP1 {
		t.Fatalf("process document edit, got %v", got)
	}
}

func TestClassify_Totality(t *testing.T) {
	c := newClassifier(t)
	inputs := []Input{
		{},
		{Title: "Something unrelated", Body: "prose"},
		{Files: []FileChange{{Filename: "assets/logo.svg", Status: "added"}}},
	}
	for i, in := range inputs {
		got := c.Classify(in)
		if got == TypeUnknown {
			t.Fatalf("input %d produced no label", i)
		}
	}
}

func TestClassifyWithOverride_StatusIntentPromotion(t *testing.T) {
	c := newClassifier(t)

	got := c.ClassifyWithOverride(Input{
		Title: "Withdraw my proposal",
		Files: []FileChange{{Filename: "README.md", Status: "modified", PreambleStatusOnly: true}},
	})
	if got != TypeStatusChange {
		t.Fatalf("status-intent title plus preamble-only file must promote, got %v", got)
	}

	// zero preamble-only files: the override must not fire
	got = c.ClassifyWithOverride(Input{
		Title: "status update on my proposal",
		Files: []FileChange{{Filename: "README.md", Status: "modified"}},
	})
	if got != TypeOther {
		t.Fatalf("override without preamble evidence must stay other, got %v", got)
	}

	// the override never demotes an earlier rule's result
	got = c.ClassifyWithOverride(Input{
		Draft: true,
		Title: "Move to Final",
		Files: []FileChange{{Filename: "EIPS/eip-2.md", Status: "modified", PreambleStatusOnly: true}},
	})
	if got != TypeDraft {
		t.Fatalf("override must only apply after the table returns other, got %v", got)
	}
}

func TestLooksTypoLike(t *testing.T) {
	rs, err := ruleset.Load()
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}

	small := []FileChange{{Filename: "EIPS/eip-20.md", Status: "modified", Additions: 2, Deletions: 2}}

	if !LooksTypoLike(rs, "Fix typo", small, false) {
		t.Fatalf("small typo-titled change should qualify")
	}
	if LooksTypoLike(rs, "Fix typo", small, true) {
		t.Fatalf("merge conflict disqualifies")
	}
	if LooksTypoLike(rs, "Rework everything", small, false) {
		t.Fatalf("title without a typo word disqualifies")
	}

	var many []FileChange
	for i := 0; i < 6; i++ {
		many = append(many, FileChange{Filename: "EIPS/eip-20.md", Status: "modified", Additions: 1})
	}
	if LooksTypoLike(rs, "Fix typo", many, false) {
		t.Fatalf("more than five files disqualifies")
	}

	big := []FileChange{{Filename: "EIPS/eip-20.md", Status: "modified", Additions: 30, Deletions: 20}}
	if LooksTypoLike(rs, "Fix typo", big, false) {
		t.Fatalf("fifty changed lines is not under the limit")
	}
}
