package normalizer

import (
	"strings"

	"pavotes/pkg/utils"
)

// Canonical statewide contest names.
const (
	OfficePresident       = "President"
	OfficeUSSenate        = "U.S. Senate"
	OfficeGovernor        = "Governor"
	OfficeAttorneyGeneral = "Attorney General"
	OfficeAuditorGeneral  = "Auditor General"
	OfficeStateTreasurer  = "State Treasurer"
)

// Contest describes how a canonical office appears in the dataset.
type Contest struct {
	Category string
	Name     string
}

// contests maps canonical offices to their dataset category key and
// display name.
var contests = map[string]Contest{
	OfficePresident:       {Category: "president", Name: "President of the United States"},
	OfficeUSSenate:        {Category: "us_senate", Name: "United States Senator"},
	OfficeGovernor:        {Category: "governor", Name: "Governor of Pennsylvania"},
	OfficeAttorneyGeneral: {Category: "attorney_general", Name: "Attorney General of Pennsylvania"},
	OfficeAuditorGeneral:  {Category: "auditor_general", Name: "Auditor General of Pennsylvania"},
	OfficeStateTreasurer:  {Category: "state_treasurer", Name: "State Treasurer of Pennsylvania"},
}

// officeAliases maps lower-cased source labels to canonical offices. It
// covers both OpenElections short names and the long official-returns
// names. District-level offices are recognized so their rows can be
// filtered without being miscounted as unknown labels.
var officeAliases = map[string]string{
	"president":                      OfficePresident,
	"president of the united states": OfficePresident,
	"u.s. senate":                    OfficeUSSenate,
	"us senate":                      OfficeUSSenate,
	"u.s. senator":                   OfficeUSSenate,
	"united states senator":          OfficeUSSenate,
	"governor":                       OfficeGovernor,
	"attorney general":               OfficeAttorneyGeneral,
	"auditor general":                OfficeAuditorGeneral,
	"state treasurer":                OfficeStateTreasurer,
	"treasurer":                      OfficeStateTreasurer,

	// Recognized but never statewide contests.
	"state house":                  "State House",
	"state representative":         "State House",
	"general assembly":             "State House",
	"state senate":                 "State Senate",
	"state senator":                "State Senate",
	"u.s. house":                   "U.S. House",
	"u.s. congress":                "U.S. House",
	"united states representative": "U.S. House",
}

// NormalizeOffice maps a raw office label to its canonical name. The
// second return is false when the label matches no recognized contest.
func NormalizeOffice(raw string) (string, bool) {
	label := strings.ToLower(utils.NormalizeWhitespace(raw))
	if label == "" {
		return "", false
	}

	canonical, ok := officeAliases[label]

	return canonical, ok
}

// ContestFor returns the dataset category and display name for a canonical
// office. The second return is false for offices the dataset does not
// publish (district-level contests).
func ContestFor(office string) (Contest, bool) {
	c, ok := contests[office]

	return c, ok
}
