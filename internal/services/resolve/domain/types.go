// Package domain defines the resolution types and ports
package domain

import (
	"donormatch/internal/core/contact"
	contrib "donormatch/internal/services/contrib/domain"
)

// Resolution is one output row: the winning geography-complete variant for a
// logical input contact, paired with its summary. Summary is nil when no
// candidate matched; every import id yields exactly one Resolution either way
type Resolution struct {
	ImportID string           `json:"import_id"`
	Contact  contact.Contact  `json:"contact"`
	Summary  *contrib.Summary `json:"summary,omitempty"`
}

// Matched reports whether the resolution carries a positive summary
func (r Resolution) Matched() bool { return r.Summary != nil }

// BatchResult is the outcome of one batch run
type BatchResult struct {
	RunID       string       `json:"run_id"`
	Resolutions []Resolution `json:"resolutions"`
	Matched     int          `json:"matched"`
}
