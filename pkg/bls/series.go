package bls

import "strings"

// SeriesParts holds the sub-fields of a composite series identifier.
// A CPI-U series id such as "CUSR0000SA0" reads as survey prefix "CU",
// seasonal adjustment "S", periodicity "R", area "0000", item "SA0".
type SeriesParts struct {
	Prefix      string
	Seasonal    string
	Periodicity string
	AreaCode    string
	ItemCode    string
}

// DecomposeSeriesID splits a series identifier at fixed offsets:
// [0:2) prefix, [2:3) seasonal, [3:4) periodicity, [4:8) area code,
// [8:) item code with surrounding whitespace trimmed. Offsets are
// clamped to the identifier length, so short or malformed identifiers
// yield short or empty parts instead of failing; content is not
// validated.
func DecomposeSeriesID(id string) SeriesParts {
	return SeriesParts{
		Prefix:      substr(id, 0, 2),
		Seasonal:    substr(id, 2, 3),
		Periodicity: substr(id, 3, 4),
		AreaCode:    substr(id, 4, 8),
		ItemCode:    strings.TrimSpace(substr(id, 8, len(id))),
	}
}

func substr(s string, from, to int) string {
	if from > len(s) {
		from = len(s)
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}
