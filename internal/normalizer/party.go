package normalizer

import (
	"strings"

	"pavotes/pkg/utils"
)

// partyCodes maps source party labels to canonical codes. Labels missing
// from the map are upper-cased as-is so minor parties survive into the
// per-party vote breakdown.
var partyCodes = map[string]string{
	"dem":                "DEM",
	"democrat":           "DEM",
	"democratic":         "DEM",
	"rep":                "REP",
	"republican":         "REP",
	"grn":                "GRN",
	"green":              "GRN",
	"green party":        "GRN",
	"lib":                "LIB",
	"libertarian":        "LIB",
	"const":              "CNST",
	"constitution":       "CNST",
	"constitution party": "CNST",
	"ref":                "REF",
	"reform":             "REF",
	"forward":            "FWD",
	"forward party":      "FWD",
	"keystone":           "KEY",
}

// NormalizeParty maps a raw party label to its canonical code. Empty input
// returns an empty code; the aggregator backfills those from candidate
// names where possible.
func NormalizeParty(raw string) string {
	label := utils.NormalizeWhitespace(raw)
	if label == "" {
		return ""
	}

	if code, ok := partyCodes[strings.ToLower(label)]; ok {
		return code
	}

	return strings.ToUpper(label)
}
