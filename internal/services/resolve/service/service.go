package service

import (
	"context"
	"sync"

	"donormatch/internal/core/contact"
	"donormatch/internal/platform/logger"
	contrib "donormatch/internal/services/contrib/domain"
	"donormatch/internal/services/resolve/domain"

	"github.com/google/uuid"
)

// Svc resolves contacts: expand to geography-complete variants, match each
// variant against the warehouse, keep the best summary per logical contact
type Svc struct {
	expander domain.ExpanderPort
	selector contrib.SelectorPort
	workers  int
}

var _ domain.ResolverPort = (*Svc)(nil)

// New builds the resolver service. Panics on nil deps
func New(expander domain.ExpanderPort, selector contrib.SelectorPort, workers int) *Svc {
	if expander == nil {
		panic("resolve service: expander is required")
	}
	if selector == nil {
		panic("resolve service: selector is required")
	}
	return &Svc{expander: expander, selector: selector, workers: max(workers, 1)}
}

// Resolve handles a single contact outside any batch. Variants are tried in
// expansion order and the best positive summary wins; ties keep the earlier
// variant. A contact with no variants or no match resolves to itself with a
// nil summary
func (s *Svc) Resolve(ctx context.Context, c contact.Contact) (domain.Resolution, error) {
	variants, err := s.expander.Expand(ctx, c)
	if err != nil {
		return domain.Resolution{}, err
	}

	res := domain.Resolution{ImportID: c.ImportID, Contact: c}
	if len(variants) > 0 {
		res.Contact = variants[0]
	}
	for _, v := range variants {
		sum, err := s.selector.PreferredSummary(ctx, v)
		if err != nil {
			return domain.Resolution{}, err
		}
		if sum == nil {
			continue
		}
		if res.Summary == nil || sum.TotalCents > res.Summary.TotalCents {
			res.Contact = v
			res.Summary = sum
		}
	}
	return res, nil
}

// unit is one (group, variant) pair flowing through the match pool
type unit struct {
	group   int // index into the batch's group order
	contact contact.Contact
}

// batchGroup collects every raw input row sharing an import id. Providers may
// legitimately emit several raw contacts under one import id; they still
// yield a single output row
type batchGroup struct {
	importID  string
	original  contact.Contact
	firstUnit int
}

// ResolveBatch resolves a whole batch under one run id with identity dedup:
// once any variant of an identity key matches, later units carrying the same
// key are skipped so a donor counted under one contact is not counted again
// under another. Rows sharing an import id collapse into one group and one
// resolution; groups are emitted in first-appearance order. A selector error
// aborts the batch (per-call timeouts are downgraded to no-match before they
// reach here)
func (s *Svc) ResolveBatch(ctx context.Context, contacts []contact.Contact) (domain.BatchResult, error) {
	runID := uuid.NewString()
	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx)

	out := domain.BatchResult{RunID: runID, Resolutions: make([]domain.Resolution, 0, len(contacts))}
	if len(contacts) == 0 {
		return out, nil
	}

	// Expansion runs sequentially so the variant order, and with it the
	// tie-break, is deterministic for a given input
	units := make([]unit, 0, len(contacts))
	groups := make([]batchGroup, 0, len(contacts))
	groupIdx := make(map[string]int, len(contacts))
	for _, c := range contacts {
		g, seen := groupIdx[c.ImportID]
		if !seen || c.ImportID == "" {
			// rows without an import id never merge
			g = len(groups)
			groups = append(groups, batchGroup{importID: c.ImportID, original: c, firstUnit: -1})
			if c.ImportID != "" {
				groupIdx[c.ImportID] = g
			}
		}
		variants, err := s.expander.Expand(ctx, c)
		if err != nil {
			return domain.BatchResult{}, err
		}
		for _, v := range variants {
			if groups[g].firstUnit < 0 {
				groups[g].firstUnit = len(units)
			}
			units = append(units, unit{group: g, contact: v})
		}
	}

	summaries := make([]*contrib.Summary, len(units))
	errs := make([]error, len(units))
	dedup := NewDedup()

	sem := make(chan struct{}, s.workers)
	wg := sync.WaitGroup{}
	for i := range units {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			u := units[i]
			key := u.contact.IdentityKey()
			if dedup.Resolved(key) {
				return
			}
			sum, err := s.selector.PreferredSummary(ctx, u.contact)
			if err != nil {
				errs[i] = err
				return
			}
			if sum == nil {
				return
			}
			// Re-check under the mark: another worker may have resolved
			// the same identity while our query ran
			if !dedup.MarkResolved(key) {
				return
			}
			summaries[i] = sum
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return domain.BatchResult{}, err
	}
	for i, err := range errs {
		if err != nil {
			log.Error().Err(err).
				Str("import_id", units[i].contact.ImportID).
				Str("identity", units[i].contact.IdentityKey()).
				Msg("variant match failed, aborting batch")
			return domain.BatchResult{}, err
		}
	}

	resolutions := make([]domain.Resolution, len(groups))
	for g, grp := range groups {
		res := domain.Resolution{ImportID: grp.importID, Contact: grp.original}
		if grp.firstUnit >= 0 {
			res.Contact = units[grp.firstUnit].contact
		}
		resolutions[g] = res
	}
	// Units are walked in expansion order, so the strictly-greater
	// comparison keeps the earlier candidate on ties
	for i, sum := range summaries {
		if sum == nil {
			continue
		}
		res := &resolutions[units[i].group]
		if res.Summary == nil || sum.TotalCents > res.Summary.TotalCents {
			res.Contact = units[i].contact
			res.Summary = sum
		}
	}
	for _, res := range resolutions {
		if res.Matched() {
			out.Matched++
		}
		out.Resolutions = append(out.Resolutions, res)
	}

	log.Info().
		Str("run_id", runID).
		Int("contacts", len(contacts)).
		Int("groups", len(groups)).
		Int("variants", len(units)).
		Int("matched", out.Matched).
		Msg("batch resolve complete")
	return out, nil
}
