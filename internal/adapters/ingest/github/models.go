package github

import "time"

// User is a partial GitHub user or app document
type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Type  string `json:"type"`
}

// Pull is a partial pull request document with the fields the sweep uses
type Pull struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	State     string     `json:"state"`
	Draft     bool       `json:"draft"`
	User      User       `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	MergedAt  *time.Time `json:"merged_at"`

	// Mergeable is null while GitHub is still computing it; false with
	// MergeableState "dirty" means a merge conflict
	Mergeable      *bool  `json:"mergeable"`
	MergeableState string `json:"mergeable_state"`

	Head Ref `json:"head"`
	Base Ref `json:"base"`

	HTMLURL string `json:"html_url"`
}

// Ref is one side of a pull request
type Ref struct {
	SHA  string `json:"sha"`
	Ref  string `json:"ref"`
	Repo *struct {
		FullName string `json:"full_name"`
	} `json:"repo"`
}

// HasMergeConflict reports whether GitHub has flagged the PR dirty
func (p Pull) HasMergeConflict() bool {
	if p.Mergeable != nil && !*p.Mergeable {
		return true
	}
	return p.MergeableState == "dirty"
}

// PullFile is one changed file in a pull request
type PullFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"` // added | modified | removed | renamed
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// Commit is a partial commit document from the pull commits listing.
// Author and Committer (the GitHub accounts) may be null when the git
// identity does not map to an account
type Commit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author    GitIdentity `json:"author"`
		Committer GitIdentity `json:"committer"`
	} `json:"commit"`
	Author    *User `json:"author"`
	Committer *User `json:"committer"`
}

// GitIdentity is the in-commit name/date pair
type GitIdentity struct {
	Name string     `json:"name"`
	Date *time.Time `json:"date"`
}

// Review is a partial pull request review document
type Review struct {
	ID          int64      `json:"id"`
	User        User       `json:"user"`
	State       string     `json:"state"` // APPROVED | CHANGES_REQUESTED | COMMENTED | ...
	SubmittedAt *time.Time `json:"submitted_at"`
	CreatedAt   *time.Time `json:"created_at"`
}

// Comment is a partial issue or review comment document
type Comment struct {
	ID        int64      `json:"id"`
	User      User       `json:"user"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
