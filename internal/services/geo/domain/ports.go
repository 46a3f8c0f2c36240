package domain

import "context"

// Repo is the storage surface for the lookup tables
type Repo interface {
	CityStatesByZip(ctx context.Context, zip5 string) ([]CityState, error)
	CityStatesByAreaCode(ctx context.Context, npa string) ([]CityState, error)
}

// ResolverPort answers geography questions for under-specified contacts.
// An unknown zip or area code is an empty result, never an error
type ResolverPort interface {
	CityStatesByZip(ctx context.Context, zip string) ([]CityState, error)
	CityStatesByAreaCode(ctx context.Context, npa string) ([]CityState, error)
}
