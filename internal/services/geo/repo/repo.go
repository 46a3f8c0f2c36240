// Package repo provides Postgres bindings for the geography domain.Repo
package repo

import (
	"context"

	"donormatch/internal/modkit/repokit"
	"donormatch/internal/platform/store"
	"donormatch/internal/services/geo/domain"
)

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// Compile-time assertion: queries implements domain.Repo
var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

func scanCityState(r store.Row) (domain.CityState, error) {
	var cs domain.CityState
	err := r.Scan(&cs.City, &cs.State)
	return cs, err
}

// CityStatesByZip returns every (city, state) pair on file for a zip5.
// Rows missing either half are excluded so callers never see a partial pair
func (r *queries) CityStatesByZip(ctx context.Context, zip5 string) ([]domain.CityState, error) {
	return store.Many(ctx, r.q, scanCityState, `
		SELECT DISTINCT city, state
		FROM zip_city_states
		WHERE zip5 = $1
		  AND city <> '' AND state <> ''
		ORDER BY city, state
	`, zip5)
}

// CityStatesByAreaCode returns every (city, state) pair on file for an NPA id
func (r *queries) CityStatesByAreaCode(ctx context.Context, npa string) ([]domain.CityState, error) {
	return store.Many(ctx, r.q, scanCityState, `
		SELECT DISTINCT city, state
		FROM area_code_city_states
		WHERE npa_id = $1
		  AND city <> '' AND state <> ''
		ORDER BY city, state
	`, npa)
}
