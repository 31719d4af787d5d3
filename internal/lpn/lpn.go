// Package lpn recognizes License Plate Numbers in free text.
//
// An LPN is a run of 8 to 12 ASCII digits with a word boundary on both
// ends. Longer digit runs never match, not even a 12-digit slice of them,
// and digits glued to letters ("LPN12345678") are not LPNs either.
package lpn

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinDigits is the shortest digit run recognized as an LPN.
	MinDigits = 8
	// MaxDigits is the longest digit run recognized as an LPN.
	MaxDigits = 12
)

var pattern = regexp.MustCompile(fmt.Sprintf(`\b[0-9]{%d,%d}\b`, MinDigits, MaxDigits))

// Find returns every non-overlapping LPN in text, in order of appearance.
// Duplicates are kept; collapse them with a Set.
func Find(text string) []string {
	if text == "" {
		return nil
	}
	return pattern.FindAllString(text, -1)
}

// Normalize trims surrounding whitespace so a value can be compared
// against extracted identifiers.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}
