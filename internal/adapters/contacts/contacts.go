// Package contacts provides contact source adapters. Every source implements
// the same capability interface; the resolution engine never knows which
// format a contact came from
package contacts

import (
	"context"
	"fmt"

	"donormatch/internal/core/contact"
)

// Reason is a typed parse failure category
type Reason string

const (
	// ReasonMissingName marks a record skipped for a missing first or last name
	ReasonMissingName Reason = "missing_name"

	// ReasonBadZip marks a zip dropped from an otherwise kept record
	ReasonBadZip Reason = "bad_zip"

	// ReasonBadPhone marks a phone dropped from an otherwise kept record
	ReasonBadPhone Reason = "bad_phone"

	// ReasonBadRecord marks a record skipped because it could not be decoded
	ReasonBadRecord Reason = "bad_record"
)

// Diagnostic is one per-record parse finding. Records are never silently
// dropped: every skip and every dropped field is reported here
type Diagnostic struct {
	Record int    `json:"record"` // 1-based data record number
	Field  string `json:"field,omitempty"`
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Field != "" {
		return fmt.Sprintf("record %d: %s (%s): %s", d.Record, d.Reason, d.Field, d.Detail)
	}
	return fmt.Sprintf("record %d: %s: %s", d.Record, d.Reason, d.Detail)
}

// Result is a parsed contact list plus its ingestion diagnostics
type Result struct {
	Contacts    []contact.Contact
	Diagnostics []Diagnostic
}

// Skipped counts diagnostics that dropped a whole record
func (r Result) Skipped() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Reason == ReasonMissingName || d.Reason == ReasonBadRecord {
			n++
		}
	}
	return n
}

// Provider yields contacts from some source. Implementations return a hard
// error only when the source itself is unreadable; malformed records become
// diagnostics instead
type Provider interface {
	Contacts(ctx context.Context) (Result, error)
}

// Static is an in-memory provider for tests and single-contact calls
type Static []contact.Contact

// Contacts implements Provider
func (s Static) Contacts(context.Context) (Result, error) {
	return Result{Contacts: append([]contact.Contact(nil), s...)}, nil
}
