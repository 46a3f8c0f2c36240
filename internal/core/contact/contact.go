// Package contact models an address-book contact and the derived immutable
// variants used during identity resolution
package contact

import (
	"strconv"
	"strings"

	pstrings "donormatch/internal/platform/strings"
)

// Contact is one address-book entry. City and state travel together: either
// both are set or both are empty. Derived variants are new copies, a Contact
// is never mutated after construction
type Contact struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty" validate:"omitempty,us_state"`
	ZipCode   string `json:"zip_code,omitempty" validate:"omitempty,us_zip"`
	Phone     string `json:"phone,omitempty"`

	// ImportID tags every variant derived from the same source row so a
	// batch can fold them back into one output
	ImportID string `json:"import_id,omitempty"`
}

// New canonicalizes names and geography into uppercase form
func New(first, last, city, state, zip, phone, importID string) Contact {
	return Contact{
		FirstName: pstrings.UpperFold(first),
		LastName:  pstrings.UpperFold(last),
		City:      pstrings.UpperFold(city),
		State:     pstrings.UpperFold(state),
		ZipCode:   strings.TrimSpace(zip),
		Phone:     strings.TrimSpace(phone),
		ImportID:  importID,
	}
}

// HasCityState reports whether geography is already complete
func (c Contact) HasCityState() bool { return c.City != "" && c.State != "" }

// HasZip reports whether a zip code is present
func (c Contact) HasZip() bool { return c.ZipCode != "" }

// Zip5 returns the 5-digit prefix of the zip code, or empty
func (c Contact) Zip5() string {
	if len(c.ZipCode) < 5 {
		return ""
	}
	return c.ZipCode[:5]
}

// WithCityState returns a copy with geography filled in
func (c Contact) WithCityState(city, state string) Contact {
	out := c
	out.City = pstrings.UpperFold(city)
	out.State = pstrings.UpperFold(state)
	return out
}

// WithoutZip returns a copy with the zip code stripped, broadening a match
// to city/state only
func (c Contact) WithoutZip() Contact {
	out := c
	out.ZipCode = ""
	return out
}

// IdentityKey is the dedup key for one resolved identity within a batch run
func (c Contact) IdentityKey() string {
	return c.LastName + "|" + c.FirstName + "|" + c.City + "|" + c.State
}

// ClusterIndexer is the narrow nickname lookup needed for fuzzy ids
type ClusterIndexer interface {
	IndexOf(name string) (int, bool)
}

// FuzzyID derives a fast exact-match proxy for "probably the same person":
// normalized last name, nickname cluster id (or the literal first name when
// no cluster is known), and zip5
func (c Contact) FuzzyID(idx ClusterIndexer) string {
	first := c.FirstName
	if idx != nil {
		if i, ok := idx.IndexOf(c.FirstName); ok {
			first = strconv.Itoa(i)
		}
	}
	return c.LastName + "|" + first + "|" + c.Zip5()
}
