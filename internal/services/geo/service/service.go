// Package service implements the geography resolver
package service

import (
	"context"

	"donormatch/internal/modkit/repokit"
	"donormatch/internal/services/geo/domain"
)

// Svc answers zip and area-code lookups against the Postgres tables
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
}

// Compile-time assertion: Svc implements domain.ResolverPort
var _ domain.ResolverPort = (*Svc)(nil)

// New constructs the geo service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo]) *Svc {
	if db == nil {
		panic("geo.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("geo.Service requires a non-nil Repo binder")
	}
	return &Svc{db: db, binder: binder}
}

// CityStatesByZip accepts a 5- or 9-digit zip and looks up its zip5.
// Anything else is simply unknown geography, not an error
func (s *Svc) CityStatesByZip(ctx context.Context, zip string) ([]domain.CityState, error) {
	if len(zip) != 5 && len(zip) != 9 {
		return nil, nil
	}
	return s.binder.Bind(s.db).CityStatesByZip(ctx, zip[:5])
}

// CityStatesByAreaCode looks up a three-digit NPA id
func (s *Svc) CityStatesByAreaCode(ctx context.Context, npa string) ([]domain.CityState, error) {
	if len(npa) != 3 {
		return nil, nil
	}
	return s.binder.Bind(s.db).CityStatesByAreaCode(ctx, npa)
}
