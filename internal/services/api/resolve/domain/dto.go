// Package domain holds DTOs for the resolve http surface
package domain

import "donormatch/internal/core/contact"

// ResolveInput is one contact payload. Names are required; geography and
// phone are optional and drive variant expansion server-side
type ResolveInput struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name"  validate:"required,min=1,max=100"`
	City      string `json:"city,omitempty"     validate:"omitempty,max=100"`
	State     string `json:"state,omitempty"    validate:"omitempty,us_state"`
	ZipCode   string `json:"zip_code,omitempty" validate:"omitempty,us_zip"`
	Phone     string `json:"phone,omitempty"    validate:"omitempty,max=30"`
	ImportID  string `json:"import_id,omitempty" validate:"omitempty,max=200"`
}

// Contact canonicalizes the payload into the core contact form
func (in ResolveInput) Contact() contact.Contact {
	return contact.New(
		in.FirstName,
		in.LastName,
		in.City,
		in.State,
		in.ZipCode,
		in.Phone,
		in.ImportID,
	)
}

// BatchInput resolves many contacts under one run
type BatchInput struct {
	Contacts []ResolveInput `json:"contacts" validate:"required,min=1,max=5000,dive"`
}
