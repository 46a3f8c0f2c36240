package contact

import (
	"github.com/nyaruka/phonenumbers"
)

// NormalizeE164 normalizes a phone number to E.164 form, biased towards US
// numbers since that is what address books here mostly contain. Returns
// empty when the number cannot be parsed or is invalid
func NormalizeE164(phone string) string {
	if phone == "" {
		return ""
	}
	parsed, err := phonenumbers.Parse(phone, "US")
	if err != nil {
		return ""
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return ""
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

// NPAID returns the North American numbering plan area code for an
// E.164-formatted number, or empty for non-NANP numbers
func NPAID(e164 string) string {
	if len(e164) != 12 || e164[:2] != "+1" {
		return ""
	}
	return e164[2:5]
}

// NPA derives the area code of the contact's phone, normalizing first.
// Empty when the contact has no valid North American number
func (c Contact) NPA() string {
	return NPAID(NormalizeE164(c.Phone))
}
