package domain

// PartyTotal is the per-party slice of a summary
type PartyTotal struct {
	TotalCents int64   `json:"total_cents"`
	Percent    float64 `json:"percent"`
}

// CommitteeTotal is the per-committee slice of a summary
type CommitteeTotal struct {
	Name       string  `json:"name"`
	Party      string  `json:"party,omitempty"`
	TotalCents int64   `json:"total_cents"`
	Percent    float64 `json:"percent"`
}

// Summary aggregates a record set into totals, by-party totals, and
// by-committee totals. Unknown party lands in the empty-string bucket.
// Invariant: TotalCents equals the sum over Parties and the sum over
// Committees for any record set
type Summary struct {
	TotalCents int64                     `json:"total_cents"`
	Parties    map[string]PartyTotal     `json:"parties"`
	Committees map[string]CommitteeTotal `json:"committees"`
	Records    int                       `json:"records"`
}

// NewSummary aggregates records. The committee party override set is applied
// here so every downstream split sees the adjusted party
func NewSummary(records []Record) Summary {
	s := Summary{
		Parties:    make(map[string]PartyTotal),
		Committees: make(map[string]CommitteeTotal),
		Records:    len(records),
	}
	for _, r := range records {
		s.TotalCents += r.AmountCents

		party := r.Committee.AdjustedParty()
		pt := s.Parties[party]
		pt.TotalCents += r.AmountCents
		s.Parties[party] = pt

		ct, ok := s.Committees[r.Committee.ID]
		if !ok {
			ct = CommitteeTotal{Name: r.Committee.Name, Party: party}
		}
		ct.TotalCents += r.AmountCents
		s.Committees[r.Committee.ID] = ct
	}
	if s.TotalCents > 0 {
		for p, pt := range s.Parties {
			pt.Percent = float64(pt.TotalCents) / float64(s.TotalCents)
			s.Parties[p] = pt
		}
		for id, ct := range s.Committees {
			ct.Percent = float64(ct.TotalCents) / float64(s.TotalCents)
			s.Committees[id] = ct
		}
	}
	return s
}

// Positive reports whether the summary may be surfaced as a match.
// A zero or negative total is equivalent to "no contributions found"
func (s Summary) Positive() bool { return s.TotalCents > 0 }
