package ledger

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeName trims the name and collapses internal whitespace runs to a
// single space. Casing is kept; this is the form that gets stored.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NameKey is the comparison form of a name: normalized and case-folded.
// Two participants whose keys match are the same participant.
func NameKey(name string) string {
	return cases.Fold().String(NormalizeName(name))
}
