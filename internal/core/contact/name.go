package contact

import (
	"strings"

	perr "donormatch/internal/platform/errors"
	pstrings "donormatch/internal/platform/strings"
)

// SplitName splits a contribution-store name in "LAST, FIRST <MORE>" form
// into normalized (last, first). A name without a comma yields an empty
// first name
func SplitName(name string) (last, first string, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", perr.BadDataf("empty name")
	}
	parts := strings.SplitN(name, ",", 2)
	last = pstrings.UpperFold(parts[0])
	if len(parts) == 1 {
		return last, "", nil
	}
	rest := strings.TrimSpace(parts[1])
	if rest == "" {
		return last, "", nil
	}
	first = pstrings.UpperFold(strings.SplitN(rest, " ", 2)[0])
	return last, first, nil
}

// JoinName composes the "LAST, FIRST" form the contribution store indexes on
func JoinName(last, first string) string {
	return pstrings.UpperFold(last) + ", " + pstrings.UpperFold(first)
}
