package domain

import "testing"

func rec(id, cmteID, cmteName, party string, cents int64) Record {
	return Record{
		ID:          id,
		Committee:   Committee{ID: cmteID, Name: cmteName, Party: party},
		AmountCents: cents,
	}
}

func TestSummaryAdditivity(t *testing.T) {
	s := NewSummary([]Record{
		rec("1", "C1", "ALPHA PAC", PartyRepublican, 2500),
		rec("2", "C1", "ALPHA PAC", PartyRepublican, 1000),
		rec("3", "C2", "BETA FUND", PartyDemocrat, 5000),
		rec("4", "C3", "GAMMA COMMITTEE", "", 700),
	})

	if s.TotalCents != 9200 {
		t.Fatalf("total = %d", s.TotalCents)
	}
	var byParty, byCommittee int64
	for _, pt := range s.Parties {
		byParty += pt.TotalCents
	}
	for _, ct := range s.Committees {
		byCommittee += ct.TotalCents
	}
	if byParty != s.TotalCents || byCommittee != s.TotalCents {
		t.Errorf("splits do not add up: party=%d committee=%d total=%d", byParty, byCommittee, s.TotalCents)
	}
	if s.Records != 4 {
		t.Errorf("records = %d", s.Records)
	}
}

func TestSummaryUnknownPartyBucket(t *testing.T) {
	s := NewSummary([]Record{rec("1", "C3", "GAMMA", "", 700)})
	pt, ok := s.Parties[""]
	if !ok || pt.TotalCents != 700 {
		t.Errorf("unknown party bucket = %+v, present=%v", pt, ok)
	}
}

func TestSummaryPercents(t *testing.T) {
	s := NewSummary([]Record{
		rec("1", "C1", "ALPHA", PartyRepublican, 7500),
		rec("2", "C2", "BETA", PartyDemocrat, 2500),
	})
	if got := s.Committees["C1"].Percent; got != 0.75 {
		t.Errorf("C1 percent = %v", got)
	}
	if got := s.Parties[PartyDemocrat].Percent; got != 0.25 {
		t.Errorf("DEM percent = %v", got)
	}
}

func TestSummaryEmptyAndZeroAreNotPositive(t *testing.T) {
	if NewSummary(nil).Positive() {
		t.Error("empty summary must not be positive")
	}
	if NewSummary([]Record{rec("1", "C1", "A", "", 0)}).Positive() {
		t.Error("zero-total summary must not be positive")
	}
}

func TestAdjustedPartyOverride(t *testing.T) {
	actblue := Committee{ID: "C00401224", Name: "ACTBLUE", Party: ""}
	if got := actblue.AdjustedParty(); got != PartyDemocrat {
		t.Errorf("ActBlue adjusted party = %q", got)
	}
	plain := Committee{ID: "C99999999", Party: PartyRepublican}
	if got := plain.AdjustedParty(); got != PartyRepublican {
		t.Errorf("adjusted party = %q", got)
	}
}

func TestSummaryAppliesOverrideToSplits(t *testing.T) {
	s := NewSummary([]Record{
		rec("1", "C00401224", "ACTBLUE", "", 1000),
	})
	if _, ok := s.Parties[""]; ok {
		t.Error("override committee leaked into the unknown-party bucket")
	}
	if s.Parties[PartyDemocrat].TotalCents != 1000 {
		t.Errorf("DEM total = %d", s.Parties[PartyDemocrat].TotalCents)
	}
	if s.Committees["C00401224"].Party != PartyDemocrat {
		t.Errorf("committee party = %q", s.Committees["C00401224"].Party)
	}
}
