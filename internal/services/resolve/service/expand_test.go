package service

import (
	"context"
	"reflect"
	"testing"

	"donormatch/internal/core/contact"
	"donormatch/internal/platform/testkit"
	geo "donormatch/internal/services/geo/domain"
)

type fakeGeo struct {
	byZip map[string][]geo.CityState
	byNPA map[string][]geo.CityState
}

func (f *fakeGeo) CityStatesByZip(ctx context.Context, zip string) ([]geo.CityState, error) {
	return f.byZip[zip], nil
}

func (f *fakeGeo) CityStatesByAreaCode(ctx context.Context, npa string) ([]geo.CityState, error) {
	return f.byNPA[npa], nil
}

func TestExpandCompleteContactPassesThrough(t *testing.T) {
	e := NewExpander(&fakeGeo{})
	c := contact.New("Jane", "Doe", "Seattle", "WA", "98101", "", "")

	got, err := e.Expand(context.Background(), c)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !reflect.DeepEqual(got, []contact.Contact{c}) {
		t.Fatalf("expected untouched pass-through, got %+v", got)
	}
}

func TestExpandZipFillsCityState(t *testing.T) {
	g := &fakeGeo{byZip: map[string][]geo.CityState{
		"98101": {{City: "SEATTLE", State: "WA"}},
	}}
	e := NewExpander(g)
	c := contact.New("Jane", "Doe", "", "", "98101", "", "")

	got, err := e.Expand(context.Background(), c)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(got))
	}
	if got[0].City != "SEATTLE" || got[0].State != "WA" || got[0].ZipCode != "98101" {
		t.Fatalf("unexpected variant %+v", got[0])
	}
}

func TestExpandEmptyZipDoesNotFallThroughToPhone(t *testing.T) {
	g := &fakeGeo{byNPA: map[string][]geo.CityState{
		"206": {{City: "SEATTLE", State: "WA"}},
	}}
	e := NewExpander(g)
	c := contact.New("Jane", "Doe", "", "", "00000", "(206) 555-0100", "")

	got, err := e.Expand(context.Background(), c)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("zip miss must not fall back to area code, got %+v", got)
	}
}

func TestExpandAreaCodeManyVariants(t *testing.T) {
	g := &fakeGeo{byNPA: map[string][]geo.CityState{
		"206": {
			{City: "KENT", State: "WA"},
			{City: "SEATTLE", State: "WA"},
		},
	}}
	e := NewExpander(g)
	c := contact.New("Jane", "Doe", "", "", "", "(206) 555-0100", "")

	got, err := e.Expand(context.Background(), c)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(got))
	}
	if got[0].City != "KENT" || got[1].City != "SEATTLE" {
		t.Fatalf("variants must follow resolver order, got %+v", got)
	}
}

func TestExpandNothingToTry(t *testing.T) {
	e := NewExpander(&fakeGeo{})
	c := contact.New("Jane", "Doe", "", "", "", "", "")

	got, err := e.Expand(context.Background(), c)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no variants, got %+v", got)
	}
}

func TestNewExpanderRequiresGeo(t *testing.T) {
	testkit.MustPanic(t, func() { NewExpander(nil) })
}
