// Package service implements contribution matching and best-summary selection
package service

import (
	"context"
	"errors"
	"time"

	"donormatch/internal/core/contact"
	"donormatch/internal/platform/logger"
	"donormatch/internal/services/contrib/domain"
)

// Svc drives the warehouse matcher across name variants and zip-specificity
// levels and keeps the single largest positive summary
type Svc struct {
	repo  domain.Repo
	names domain.NamesProvider

	// queryTimeout bounds each warehouse call, 0 means unbounded.
	// An expired call counts as "no match for this candidate"
	queryTimeout time.Duration
}

// Compile-time assertion: Svc implements domain.SelectorPort
var _ domain.SelectorPort = (*Svc)(nil)

// New constructs the contribution service
func New(repo domain.Repo, names domain.NamesProvider, queryTimeout time.Duration) *Svc {
	if repo == nil {
		panic("contrib.Service requires a non-nil Repo")
	}
	if names == nil {
		panic("contrib.Service requires a non-nil NamesProvider")
	}
	return &Svc{repo: repo, names: names, queryTimeout: queryTimeout}
}

// variantSets returns the first-name spelling sets to try for a contact.
// The literal first name is always a member of every set; a name with no
// known cluster gets a singleton
func (s *Svc) variantSets(first string) [][]string {
	sets := s.names.RelatedNameSets(first)
	if len(sets) == 0 {
		return [][]string{{first}}
	}
	out := make([][]string, 0, len(sets))
	for _, set := range sets {
		found := false
		for _, name := range set {
			if name == first {
				found = true
				break
			}
		}
		if !found {
			set = append(append(make([]string, 0, len(set)+1), set...), first)
		}
		out = append(out, set)
	}
	return out
}

// records issues the single warehouse query for one candidate and one
// variant set. Zip wins over city/state when present
func (s *Svc) records(ctx context.Context, c contact.Contact, firsts []string) ([]domain.Record, error) {
	if zip5 := c.Zip5(); zip5 != "" {
		return s.repo.ByLastZipFirsts(ctx, c.LastName, zip5, firsts)
	}
	if !c.HasCityState() {
		panic("contrib: matching a contact without city/state, expand first")
	}
	return s.repo.ByLastCityStateFirsts(ctx, c.LastName, c.City, c.State, firsts)
}

// summariesFor collects every positive summary for one candidate contact
func (s *Svc) summariesFor(ctx context.Context, c contact.Contact) ([]domain.Summary, error) {
	var out []domain.Summary
	for _, set := range s.variantSets(c.FirstName) {
		qctx := ctx
		cancel := context.CancelFunc(func() {})
		if s.queryTimeout > 0 {
			qctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		}
		recs, err := s.records(qctx, c, set)
		cancel()
		if err != nil {
			// a bounded call that ran out of time is a miss for this
			// candidate, not a batch failure
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				logger.C(ctx).Warn().
					Str("last_name", c.LastName).
					Str("first_name", c.FirstName).
					Msg("warehouse query timed out, treating as no match")
				continue
			}
			return nil, err
		}
		if sum := domain.NewSummary(recs); sum.Positive() {
			out = append(out, sum)
		}
	}
	return out, nil
}

// PreferredSummary returns the largest positive summary for a
// geography-complete contact, or nil when nothing matches.
// Candidates are tried most-specific first: the contact itself, then a
// zip-stripped copy when it carries a zip. Ties keep the earlier candidate,
// so equal totals prefer the zip-qualified match and, within one candidate,
// the earlier variant set in cluster order
func (s *Svc) PreferredSummary(ctx context.Context, c contact.Contact) (*domain.Summary, error) {
	if !c.HasCityState() {
		panic("contrib: PreferredSummary requires city and state, expand first")
	}
	candidates := []contact.Contact{c}
	if c.HasZip() {
		candidates = append(candidates, c.WithoutZip())
	}

	var best *domain.Summary
	for _, cand := range candidates {
		sums, err := s.summariesFor(ctx, cand)
		if err != nil {
			return nil, err
		}
		for i := range sums {
			if best == nil || sums[i].TotalCents > best.TotalCents {
				best = &sums[i]
			}
		}
	}
	return best, nil
}

// Committee exposes the committee lookup for callers enriching output
func (s *Svc) Committee(ctx context.Context, id string) (*domain.Committee, error) {
	return s.repo.CommitteeByID(ctx, id)
}
