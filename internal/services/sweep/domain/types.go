// Package domain defines the sweep contracts
package domain

import "time"

// Summary reports one completed sweep run
type Summary struct {
	RunID string `json:"run_id"`
	Repo  string `json:"repo"`

	Open    int   `json:"open"`
	Decided int   `json:"decided"`
	Failed  int   `json:"failed"`
	Pruned  int64 `json:"pruned"`

	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
}
