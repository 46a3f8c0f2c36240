package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"donormatch/internal/core/contact"
	"donormatch/internal/platform/testkit"
	contrib "donormatch/internal/services/contrib/domain"
)

// fakeSelector serves summaries keyed by identity key. Concurrency-safe so
// the batch worker pool can hit it directly
type fakeSelector struct {
	mu        sync.Mutex
	summaries map[string]*contrib.Summary
	errs      map[string]error
	calls     []string
}

func (f *fakeSelector) PreferredSummary(ctx context.Context, c contact.Contact) (*contrib.Summary, error) {
	key := c.IdentityKey()
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	return f.summaries[key], nil
}

func (f *fakeSelector) Committee(ctx context.Context, id string) (*contrib.Committee, error) {
	return nil, nil
}

func (f *fakeSelector) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, k := range f.calls {
		if k == key {
			n++
		}
	}
	return n
}

func summaryCents(total int64) *contrib.Summary {
	return &contrib.Summary{TotalCents: total, Records: 1}
}

func TestResolvePicksLargestTotalAcrossVariants(t *testing.T) {
	kent := contact.New("Jane", "Doe", "Kent", "WA", "", "", "")
	seattle := contact.New("Jane", "Doe", "Seattle", "WA", "", "", "")
	sel := &fakeSelector{summaries: map[string]*contrib.Summary{
		kent.IdentityKey():    summaryCents(3000),
		seattle.IdentityKey(): summaryCents(12000),
	}}
	exp := &fakeExpander{variants: map[string][]contact.Contact{
		"J": {kent, seattle},
	}}
	s := New(exp, sel, 1)

	got, err := s.Resolve(context.Background(), contact.New("Jane", "Doe", "", "", "", "", "J"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !got.Matched() || got.Summary.TotalCents != 12000 {
		t.Fatalf("expected the 12000-cent variant to win, got %+v", got.Summary)
	}
	if got.Contact.City != "SEATTLE" {
		t.Fatalf("winning variant not carried, got %+v", got.Contact)
	}
}

func TestResolveTieKeepsEarlierVariant(t *testing.T) {
	kent := contact.New("Jane", "Doe", "Kent", "WA", "", "", "")
	seattle := contact.New("Jane", "Doe", "Seattle", "WA", "", "", "")
	sel := &fakeSelector{summaries: map[string]*contrib.Summary{
		kent.IdentityKey():    summaryCents(5000),
		seattle.IdentityKey(): summaryCents(5000),
	}}
	exp := &fakeExpander{variants: map[string][]contact.Contact{
		"J": {kent, seattle},
	}}
	s := New(exp, sel, 1)

	got, err := s.Resolve(context.Background(), contact.New("Jane", "Doe", "", "", "", "", "J"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Contact.City != "KENT" {
		t.Fatalf("tie must keep the earlier variant, got %+v", got.Contact)
	}
}

func TestResolveNoMatchFallsBackToFirstVariant(t *testing.T) {
	seattle := contact.New("Jane", "Doe", "Seattle", "WA", "", "", "")
	exp := &fakeExpander{variants: map[string][]contact.Contact{
		"J": {seattle},
	}}
	s := New(exp, &fakeSelector{}, 1)

	got, err := s.Resolve(context.Background(), contact.New("Jane", "Doe", "", "", "", "", "J"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Matched() {
		t.Fatalf("expected no match, got %+v", got.Summary)
	}
	if got.Contact.City != "SEATTLE" {
		t.Fatalf("fallback should carry the first variant, got %+v", got.Contact)
	}
}

func TestResolveBatchDedupSkipsSameIdentity(t *testing.T) {
	// Two input rows collapse onto the same identity once geography is
	// filled in. The first one matches; the second must be skipped, not
	// counted a second time
	a := contact.New("Jane", "Doe", "Seattle", "WA", "98101", "", "row-1")
	b := contact.New("Jane", "Doe", "", "", "98101", "", "row-2")
	bVariant := b.WithCityState("SEATTLE", "WA")

	sel := &fakeSelector{summaries: map[string]*contrib.Summary{
		a.IdentityKey(): summaryCents(7500),
	}}
	exp := &fakeExpander{variants: map[string][]contact.Contact{
		"row-1": {a},
		"row-2": {bVariant},
	}}
	s := New(exp, sel, 1)

	got, err := s.ResolveBatch(context.Background(), []contact.Contact{a, b})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	if len(got.Resolutions) != 2 {
		t.Fatalf("expected one resolution per input, got %d", len(got.Resolutions))
	}
	if got.Matched != 1 {
		t.Fatalf("dedup must keep a single match, got %d", got.Matched)
	}
	first, second := got.Resolutions[0], got.Resolutions[1]
	if !first.Matched() || first.Summary.TotalCents != 7500 {
		t.Fatalf("first row should carry the match, got %+v", first.Summary)
	}
	if second.Matched() {
		t.Fatalf("second row must be deduped, got %+v", second.Summary)
	}
	if n := sel.callCount(a.IdentityKey()); n != 1 {
		t.Fatalf("expected a single warehouse lookup for the shared identity, got %d", n)
	}
}

func TestResolveBatchUnmatchableContactYieldsOriginal(t *testing.T) {
	c := contact.New("Jane", "Doe", "", "", "", "", "row-1")
	s := New(&fakeExpander{}, &fakeSelector{}, 2)

	got, err := s.ResolveBatch(context.Background(), []contact.Contact{c})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	if len(got.Resolutions) != 1 || got.Matched != 0 {
		t.Fatalf("expected one unmatched resolution, got %+v", got)
	}
	res := got.Resolutions[0]
	if res.Matched() || res.Contact != c || res.ImportID != "row-1" {
		t.Fatalf("unmatchable contact must resolve to itself, got %+v", res)
	}
}

func TestResolveBatchSharedImportIDYieldsOneRow(t *testing.T) {
	// One import id carrying two pre-expanded geography guesses must still
	// come back as a single resolution with the larger summary
	kent := contact.New("Jane", "Doe", "Kent", "WA", "", "", "X")
	seattle := contact.New("Jane", "Doe", "Seattle", "WA", "", "", "X")
	sel := &fakeSelector{summaries: map[string]*contrib.Summary{
		kent.IdentityKey():    summaryCents(3000),
		seattle.IdentityKey(): summaryCents(12000),
	}}
	s := New(echoExpander{}, sel, 2)

	got, err := s.ResolveBatch(context.Background(), []contact.Contact{kent, seattle})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	if len(got.Resolutions) != 1 {
		t.Fatalf("rows sharing an import id must collapse to one resolution, got %d", len(got.Resolutions))
	}
	if got.Matched != 1 {
		t.Fatalf("a shared import id counts as one match, got %d", got.Matched)
	}
	res := got.Resolutions[0]
	if res.ImportID != "X" || !res.Matched() || res.Summary.TotalCents != 12000 {
		t.Fatalf("expected the 12000-cent pair under import id X, got %+v", res)
	}
	if res.Contact.City != "SEATTLE" {
		t.Fatalf("winning variant not carried, got %+v", res.Contact)
	}
}

func TestResolveBatchEmptyImportIDsStayDistinct(t *testing.T) {
	a := contact.New("Jane", "Doe", "Seattle", "WA", "", "", "")
	b := contact.New("Bob", "Roe", "Kent", "WA", "", "", "")
	s := New(echoExpander{}, &fakeSelector{}, 1)

	got, err := s.ResolveBatch(context.Background(), []contact.Contact{a, b})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	if len(got.Resolutions) != 2 {
		t.Fatalf("rows without an import id must not merge, got %d", len(got.Resolutions))
	}
}

func TestResolveBatchSelectorErrorAbortsBatch(t *testing.T) {
	ok := contact.New("Jane", "Doe", "Seattle", "WA", "", "", "row-1")
	bad := contact.New("Bob", "Roe", "Kent", "WA", "", "", "row-2")
	sentinel := errors.New("warehouse down")
	sel := &fakeSelector{
		summaries: map[string]*contrib.Summary{ok.IdentityKey(): summaryCents(100)},
		errs:      map[string]error{bad.IdentityKey(): sentinel},
	}
	exp := &fakeExpander{variants: map[string][]contact.Contact{
		"row-1": {ok},
		"row-2": {bad},
	}}
	s := New(exp, sel, 2)

	_, err := s.ResolveBatch(context.Background(), []contact.Contact{ok, bad})
	if !errors.Is(err, sentinel) {
		t.Fatalf("a selector failure must abort the batch, got %v", err)
	}
}

func TestResolveBatchAssignsRunID(t *testing.T) {
	s := New(&fakeExpander{}, &fakeSelector{}, 1)

	got, err := s.ResolveBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	if got.RunID == "" {
		t.Fatal("expected a run id even for an empty batch")
	}
}

func TestNewRequiresDeps(t *testing.T) {
	testkit.MustPanic(t, func() { New(nil, &fakeSelector{}, 1) })
	testkit.MustPanic(t, func() { New(&fakeExpander{}, nil, 1) })
}

// fakeExpander returns canned variants keyed by import id
type fakeExpander struct {
	variants map[string][]contact.Contact
}

func (f *fakeExpander) Expand(ctx context.Context, c contact.Contact) ([]contact.Contact, error) {
	return f.variants[c.ImportID], nil
}

// echoExpander passes each contact through as its own single variant, for
// inputs that arrive geography-complete
type echoExpander struct{}

func (echoExpander) Expand(ctx context.Context, c contact.Contact) ([]contact.Contact, error) {
	return []contact.Contact{c}, nil
}
