// Package domain defines the contribution warehouse types and ports
package domain

import "time"

// Party codes as reported by the warehouse committee master
const (
	PartyDemocrat   = "DEM"
	PartyRepublican = "REP"
)

// KnownDemocraticCommitteeIDs overrides the reported party for committees
// that are Democratic in practice even when the master file says otherwise.
// ActBlue is the key example
var KnownDemocraticCommitteeIDs = map[string]struct{}{
	"C00401224": {}, // ActBlue
	"C00744946": {}, // Biden Victory Fund
	"C00341396": {}, // MoveOn.org Political Action
	"C00763003": {}, // Golden Tennis Shoe PAC 2020
	"C90020884": {}, // The IMPACT Fund
	"C00368332": {}, // Washington Women for Choice
	"C00728360": {}, // Movement Voter PAC
	"C00693515": {}, // Fair Fight
	"C00193433": {}, // EMILY's List
	"C00678839": {}, // INDIVISIBLE Action
	"C00630707": {}, // National Democratic Redistricting PAC
	"C00752691": {}, // ONE FOR ALL Committee
}

// Committee is one row of the committee master. Party is empty when the
// committee reports no affiliation
type Committee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party,omitempty"`
}

// AdjustedParty returns the reported party, except for the known override
// set where we know better
func (c Committee) AdjustedParty() string {
	if _, ok := KnownDemocraticCommitteeIDs[c.ID]; ok {
		return PartyDemocrat
	}
	return c.Party
}

// Record is one itemized individual contribution joined with its committee
type Record struct {
	ID          string
	Committee   Committee
	Name        string // "LAST, FIRST M" as indexed by the warehouse
	City        string
	State       string
	ZipCode     string
	AmountCents int64
	Date        time.Time
}

// Zip5 returns the 5-digit prefix of the record's zip code
func (r Record) Zip5() string {
	if len(r.ZipCode) < 5 {
		return ""
	}
	return r.ZipCode[:5]
}
