package domain

import (
	"context"

	"donormatch/internal/core/contact"
)

// Repo is the warehouse query surface. Each call issues exactly one query;
// the IND-entity and positive-amount filters plus the committee join are
// applied by the store, never re-checked here
type Repo interface {
	ByLastZipFirsts(ctx context.Context, last, zip5 string, firsts []string) ([]Record, error)
	ByLastCityStateFirsts(ctx context.Context, last, city, state string, firsts []string) ([]Record, error)
	CommitteeByID(ctx context.Context, id string) (*Committee, error)
}

// NamesProvider yields the variant sets of interchangeable spellings for a
// first name. An unknown name yields no sets
type NamesProvider interface {
	RelatedNameSets(name string) [][]string
}

// SelectorPort picks the single best contribution summary for a
// geography-complete contact, or nil when nothing matches
type SelectorPort interface {
	PreferredSummary(ctx context.Context, c contact.Contact) (*Summary, error)
	Committee(ctx context.Context, id string) (*Committee, error)
}
