package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeKey canonicalizes free text into a join key: whitespace is trimmed
// and collapsed, letters are uppercased and diacritics are removed, so
// "  São  Paulo" and "SAO PAULO" produce the same key.
// Empty input yields an empty key.
func NormalizeKey(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)

	// Transformers carry state, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// LaneKey identifies an origin/destination pair after normalization.
type LaneKey struct {
	Origin      string
	Destination string
}

func NewLaneKey(origin, destination string) LaneKey {
	return LaneKey{
		Origin:      NormalizeKey(origin),
		Destination: NormalizeKey(destination),
	}
}

func (k LaneKey) String() string { return k.Origin + "|" + k.Destination }
