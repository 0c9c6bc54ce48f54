package actors

import "testing"

func TestUsable(t *testing.T) {
	cases := []struct {
		login string
		want  bool
	}{
		{"alice", true},
		{"", false},
		{"   ", false},
		{"dependabot[bot]", false},
		{"Renovate[BOT]", false},
		{"notabot", true},
	}
	for _, c := range cases {
		if got := Usable(c.login); got != c.want {
			t.Fatalf("Usable(%q) = %v, want %v", c.login, got, c.want)
		}
	}
}

func TestResolve_EditorBeatsAuthor(t *testing.T) {
	r := NewResolver(NewSet("carol"), NewSet("carol", "dave"))

	role, ok := r.Resolve("carol")
	if !ok || role != RoleEditor {
		t.Fatalf("dual-set login resolved to %v (ok=%v), want editor", role, ok)
	}
	role, ok = r.Resolve("dave")
	if !ok || role != RoleAuthor {
		t.Fatalf("author login resolved to %v (ok=%v), want author", role, ok)
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	r := NewResolver(NewSet("Carol"), NewSet("DAVE"))

	if role, ok := r.Resolve("cArOl"); !ok || role != RoleEditor {
		t.Fatalf("folded editor lookup failed: %v ok=%v", role, ok)
	}
	if role, ok := r.Resolve("dave"); !ok || role != RoleAuthor {
		t.Fatalf("folded author lookup failed: %v ok=%v", role, ok)
	}
}

func TestResolve_UnusableDistinctFromNone(t *testing.T) {
	r := NewResolver(NewSet("carol"), NewSet("dave"))

	if role, ok := r.Resolve("stranger"); !ok || role != RoleNone {
		t.Fatalf("unknown login: got %v ok=%v, want none ok=true", role, ok)
	}
	if _, ok := r.Resolve("ci-runner[bot]"); ok {
		t.Fatalf("bot login must be unusable, not merely none")
	}
	if _, ok := r.Resolve(""); ok {
		t.Fatalf("empty login must be unusable")
	}
}

func TestSetWith_DoesNotMutateOriginal(t *testing.T) {
	base := NewSet("a")
	ext := base.With("b")

	if base.Has("b") {
		t.Fatalf("With mutated the receiver")
	}
	if !ext.Has("a") || !ext.Has("b") {
		t.Fatalf("extended set missing members: %v", ext.Logins())
	}
}
