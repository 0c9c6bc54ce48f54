// Package preamble reads the front matter of spec documents: the
// credited author handles and the status field, plus the diff check
// that tells a status-only edit apart from a content edit.
// The front matter is the header block between two "---" lines; its
// author field mixes display names, emails, and @handles, and only the
// handles matter here
package preamble

import (
	"regexp"
	"strings"
)

// Doc is the parsed front matter of one spec document
type Doc struct {
	Status  string
	Authors []string
}

// handles are written "(@login)"; a bare @ would also match the host
// part of author emails
var handleRe = regexp.MustCompile(`\(@([A-Za-z0-9](?:-?[A-Za-z0-9]){0,38})\)`)

// Parse extracts the front matter from a document.
// ok is false when the document has no front matter block
func Parse(content string) (Doc, bool) {
	fm, _, ok := split(content)
	if !ok {
		return Doc{}, false
	}

	var d Doc
	for _, line := range strings.Split(fm, "\n") {
		key, val, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "status":
			d.Status = strings.TrimSpace(val)
		case "author":
			for _, m := range handleRe.FindAllStringSubmatch(val, -1) {
				d.Authors = append(d.Authors, m[1])
			}
		}
	}
	return d, true
}

// Handles collects the @handles from many documents, deduplicated in
// first-seen order
func Handles(docs ...Doc) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range docs {
		for _, h := range d.Authors {
			key := strings.ToLower(h)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, h)
		}
	}
	return out
}

// StatusOnly reports whether head differs from base solely in the
// front-matter status field. Both versions must carry front matter,
// the status values must differ, and everything else, header and body,
// must be byte-identical
func StatusOnly(base, head string) bool {
	bd, bok := Parse(base)
	hd, hok := Parse(head)
	if !bok || !hok {
		return false
	}
	if bd.Status == hd.Status {
		return false
	}
	return stripStatus(base) == stripStatus(head)
}

// stripStatus removes the front-matter status line, leaving the rest of
// the document untouched
func stripStatus(content string) string {
	fm, body, ok := split(content)
	if !ok {
		return content
	}
	lines := strings.Split(fm, "\n")
	kept := lines[:0]
	for _, line := range lines {
		key, _, found := strings.Cut(line, ":")
		if found && strings.ToLower(strings.TrimSpace(key)) == "status" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n") + "\n---\n" + body
}

// split cuts a document into front matter and body.
// The block must start at the first line
func split(content string) (fm, body string, ok bool) {
	s := strings.TrimPrefix(content, "\uFEFF")
	if !strings.HasPrefix(s, "---") {
		return "", "", false
	}
	rest := s[3:]
	rest = strings.TrimPrefix(rest, "\r\n")
	rest = strings.TrimPrefix(rest, "\n")

	for _, marker := range []string{"\n---\n", "\n---\r\n", "\r\n---\r\n"} {
		if i := strings.Index(rest, marker); i >= 0 {
			return rest[:i], rest[i+len(marker):], true
		}
	}
	// front matter closed at EOF
	if strings.HasSuffix(rest, "\n---") {
		return strings.TrimSuffix(rest, "\n---"), "", true
	}
	return "", "", false
}
