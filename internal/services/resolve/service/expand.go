// Package service implements contact variant expansion and batch resolution
package service

import (
	"context"

	"donormatch/internal/core/contact"
	geo "donormatch/internal/services/geo/domain"
	"donormatch/internal/services/resolve/domain"
)

// Expander produces the geography-complete variants of a contact.
// Priority: an already-complete contact passes through untouched, then zip,
// then phone area code. A zip that resolves to nothing does NOT fall
// through to the phone: the zip was the stronger signal and it missed
type Expander struct {
	geo geo.ResolverPort
}

// Compile-time assertion: Expander implements domain.ExpanderPort
var _ domain.ExpanderPort = (*Expander)(nil)

// NewExpander constructs an expander over the geography resolver
func NewExpander(g geo.ResolverPort) *Expander {
	if g == nil {
		panic("resolve.Expander requires a non-nil geo resolver")
	}
	return &Expander{geo: g}
}

// Expand yields zero, one, or many variants for c
func (e *Expander) Expand(ctx context.Context, c contact.Contact) ([]contact.Contact, error) {
	if c.HasCityState() {
		return []contact.Contact{c}, nil
	}

	if c.HasZip() {
		pairs, err := e.geo.CityStatesByZip(ctx, c.ZipCode)
		if err != nil {
			return nil, err
		}
		return fill(c, pairs), nil
	}

	if npa := c.NPA(); npa != "" {
		pairs, err := e.geo.CityStatesByAreaCode(ctx, npa)
		if err != nil {
			return nil, err
		}
		return fill(c, pairs), nil
	}

	// no zip, no phone, no geography: nothing to try
	return nil, nil
}

func fill(c contact.Contact, pairs []geo.CityState) []contact.Contact {
	out := make([]contact.Contact, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, c.WithCityState(p.City, p.State))
	}
	return out
}
