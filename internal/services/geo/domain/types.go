// Package domain defines the types and ports for the geography lookup service
package domain

// CityState is one candidate geography for an ambiguous zip or area code
type CityState struct {
	City  string `json:"city"`
	State string `json:"state"`
}
