// Package ruleset loads and compiles the classification vocabularies
// from the embedded rules.json: spec-document path conventions, website
// and tooling markers, the typo-title heuristic, and the status-intent
// pattern. Display strings never live here, only matching rules
package ruleset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

//go:embed rules.json
var embedded []byte

type rawWebsite struct {
	PathPrefix string `json:"path_prefix"`
	Keyword    string `json:"keyword"`
}

type rawTooling struct {
	TitlePrefixes []string `json:"title_prefixes"`
	Keywords      []string `json:"keywords"`
}

type rawTypo struct {
	TitlePattern string `json:"title_pattern"`
	MaxFiles     int    `json:"max_files"`
	MaxLines     int    `json:"max_lines"`
}

type rawSpecDoc struct {
	Dir     string `json:"dir"`
	Pattern string `json:"pattern"`
	First   string `json:"first"`
}

type rawSet struct {
	Version      int          `json:"version"`
	SpecDocs     []rawSpecDoc `json:"spec_docs"`
	Website      rawWebsite   `json:"website"`
	Tooling      rawTooling   `json:"tooling"`
	Typo         rawTypo      `json:"typo"`
	StatusIntent string       `json:"status_intent"`
	StagnantDays int          `json:"stagnant_days"`
}

// SpecDoc is one compiled directory/number convention
type SpecDoc struct {
	Dir     string
	Pattern *regexp.Regexp
	First   string
}

// Set is the compiled rule set consumed by the classifier and categorizer
type Set struct {
	Version int

	SpecDocs []SpecDoc

	WebsitePathPrefix string
	WebsiteKeyword    string

	ToolingTitlePrefixes []string
	toolingKeyword       *regexp.Regexp
	toolingKeywordSet    map[string]struct{}

	TypoTitle    *regexp.Regexp
	TypoMaxFiles int
	TypoMaxLines int

	StatusIntent *regexp.Regexp

	StagnantDays int
}

// Load compiles the embedded rules.json
func Load() (*Set, error) {
	var raw rawSet
	if err := json.Unmarshal(embedded, &raw); err != nil {
		return nil, fmt.Errorf("ruleset: parse rules.json: %w", err)
	}
	if raw.Version != 1 {
		return nil, fmt.Errorf("ruleset: unsupported rules.json version %d (want 1)", raw.Version)
	}

	s := &Set{
		Version:              raw.Version,
		WebsitePathPrefix:    raw.Website.PathPrefix,
		WebsiteKeyword:       strings.ToLower(raw.Website.Keyword),
		ToolingTitlePrefixes: make([]string, 0, len(raw.Tooling.TitlePrefixes)),
		TypoMaxFiles:         raw.Typo.MaxFiles,
		TypoMaxLines:         raw.Typo.MaxLines,
		StagnantDays:         raw.StagnantDays,
		toolingKeywordSet:    make(map[string]struct{}, len(raw.Tooling.Keywords)),
	}

	for _, d := range raw.SpecDocs {
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return nil, fmt.Errorf("ruleset: compile spec-doc pattern %q: %w", d.Pattern, err)
		}
		s.SpecDocs = append(s.SpecDocs, SpecDoc{Dir: d.Dir, Pattern: re, First: d.First})
	}

	for _, p := range raw.Tooling.TitlePrefixes {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			s.ToolingTitlePrefixes = append(s.ToolingTitlePrefixes, p)
		}
	}
	kws := make([]string, 0, len(raw.Tooling.Keywords))
	for _, k := range raw.Tooling.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		kws = append(kws, regexp.QuoteMeta(k))
		s.toolingKeywordSet[k] = struct{}{}
	}
	if len(kws) > 0 {
		re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(kws, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("ruleset: compile tooling keywords: %w", err)
		}
		s.toolingKeyword = re
	}

	var err error
	if s.TypoTitle, err = regexp.Compile(raw.Typo.TitlePattern); err != nil {
		return nil, fmt.Errorf("ruleset: compile typo pattern: %w", err)
	}
	if s.StatusIntent, err = regexp.Compile(raw.StatusIntent); err != nil {
		return nil, fmt.Errorf("ruleset: compile status-intent pattern: %w", err)
	}

	return s, nil
}

// MatchesSpecDoc reports whether path is a numbered spec document under
// any of the three directory conventions
func (s *Set) MatchesSpecDoc(path string) bool {
	for _, d := range s.SpecDocs {
		if d.Pattern.MatchString(path) {
			return true
		}
	}
	return false
}

// IsFirstDoc reports whether path is the document #1 file of a convention
func (s *Set) IsFirstDoc(path string) bool {
	for _, d := range s.SpecDocs {
		if path == d.First {
			return true
		}
	}
	return false
}

// UnderWebsitePath reports whether path sits under the website content tree
func (s *Set) UnderWebsitePath(path string) bool {
	return s.WebsitePathPrefix != "" && strings.HasPrefix(path, s.WebsitePathPrefix)
}

// MentionsWebsite reports a case-insensitive substring match of the
// website keyword in free text
func (s *Set) MentionsWebsite(text string) bool {
	return s.WebsiteKeyword != "" && strings.Contains(strings.ToLower(text), s.WebsiteKeyword)
}

// HasToolingPrefix reports whether title starts with one of the fixed
// tooling prefixes followed by a colon
func (s *Set) HasToolingPrefix(title string) bool {
	lt := strings.ToLower(strings.TrimSpace(title))
	for _, p := range s.ToolingTitlePrefixes {
		if strings.HasPrefix(lt, p+":") {
			return true
		}
	}
	return false
}

// HasToolingKeyword reports a case-insensitive whole-word match of any
// tooling keyword in text
func (s *Set) HasToolingKeyword(text string) bool {
	return s.toolingKeyword != nil && s.toolingKeyword.MatchString(text)
}

// FirstTokenIsTooling reports whether the first whitespace-delimited
// token of body exactly matches a tooling keyword
func (s *Set) FirstTokenIsTooling(body string) bool {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return false
	}
	_, ok := s.toolingKeywordSet[strings.ToLower(fields[0])]
	return ok
}

// TitleLooksTypo reports whether title matches the typo/grammar pattern
func (s *Set) TitleLooksTypo(title string) bool {
	return s.TypoTitle.MatchString(title)
}

// TitleSignalsStatusIntent reports whether title matches the broader
// status-change-intent pattern used by the classifier override
func (s *Set) TitleSignalsStatusIntent(title string) bool {
	return s.StatusIntent.MatchString(title)
}
