// Package domain holds DTOs for board http and service contracts
package domain

import "time"

// TimeRange defines a start and end day for trend queries
// Times are ISO8601 dates without timezone
type TimeRange struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02" example:"2025-08-01"`
	End   string `json:"end" validate:"required,datetime=2006-01-02" example:"2025-08-31"`
}

// SummaryInput scopes the attention summary
type SummaryInput struct {
	Repo string `json:"repo,omitempty" validate:"omitempty,min=1,max=200" example:"ethereum/EIPs"`
}

// SummaryRow is one bucket of the attention summary
type SummaryRow struct {
	Category       string `json:"category" example:"Typo"`
	Subcategory    string `json:"subcategory" example:"Waiting on Editor"`
	NeedsAttention bool   `json:"needs_attention" example:"true"`
	PRs            int64  `json:"prs" example:"12"`
}

// ListInput filters the snapshot listing
type ListInput struct {
	Repo           string `json:"repo,omitempty" validate:"omitempty,min=1,max=200" example:"ethereum/EIPs"`
	Category       string `json:"category,omitempty" validate:"omitempty,min=1,max=40" example:"Status Change"`
	Subcategory    string `json:"subcategory,omitempty" validate:"omitempty,min=1,max=40" example:"Waiting on Editor"`
	NeedsAttention *bool  `json:"needs_attention,omitempty" example:"true"`
	Stagnant       *bool  `json:"stagnant,omitempty" example:"false"`
	Limit          int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"100"`
}

// ActionView is the persisted last action of one role
type ActionView struct {
	Type  string     `json:"type" example:"review_changes_requested"`
	Date  *time.Time `json:"date"`
	Actor string     `json:"actor,omitempty" example:"editor-login"`
}

// PRRow is one listed snapshot, oldest wait first
type PRRow struct {
	Repo        string `json:"repo" example:"ethereum/EIPs"`
	Number      int    `json:"number" example:"8421"`
	Title       string `json:"title" example:"Update EIP-7002: clarify exits"`
	Opener      string `json:"opener" example:"author-login"`
	HTMLURL     string `json:"html_url" example:"https://github.com/ethereum/EIPs/pull/8421"`
	Type        string `json:"type" example:"STATUS_CHANGE"`
	Category    string `json:"category" example:"Status Change"`
	Subcategory string `json:"subcategory" example:"Waiting on Editor"`

	NeedsAttention bool        `json:"needs_attention" example:"true"`
	WaitingSince   *time.Time  `json:"waiting_since"`
	WaitingDays    *int        `json:"waiting_days,omitempty" example:"14"`
	LastEditor     *ActionView `json:"last_editor_action,omitempty"`
	LastAuthor     *ActionView `json:"last_author_action,omitempty"`
	Reason         string      `json:"reason" example:"author replied after the last editor action"`
	Stagnant       bool        `json:"stagnant" example:"false"`

	CreatedByBot      bool `json:"created_by_bot" example:"false"`
	OpenedByDocAuthor bool `json:"opened_by_doc_author" example:"true"`
}

// TrendsInput scopes the daily aggregate series
type TrendsInput struct {
	Range    TimeRange `json:"range"`
	Repo     string    `json:"repo,omitempty" validate:"omitempty,min=1,max=200" example:"ethereum/EIPs"`
	Category string    `json:"category,omitempty" validate:"omitempty,min=1,max=40" example:"Typo"`
}

// TrendRow is one day of one bucket
type TrendRow struct {
	Day            string `json:"day" example:"2025-08-01"`
	Category       string `json:"category" example:"Typo"`
	Subcategory    string `json:"subcategory" example:"Waiting on Editor"`
	NeedsAttention bool   `json:"needs_attention" example:"true"`
	PRs            int64  `json:"prs" example:"12"`
}
