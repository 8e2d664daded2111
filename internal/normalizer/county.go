package normalizer

import (
	"regexp"
	"strings"

	"pavotes/pkg/utils"
)

// canonicalCounties is the full list of Pennsylvania's 67 counties. Every
// county name in the emitted dataset comes from this list; rows naming
// anything else are dropped as unknown.
var canonicalCounties = []string{
	"Adams", "Allegheny", "Armstrong", "Beaver", "Bedford", "Berks",
	"Blair", "Bradford", "Bucks", "Butler", "Cambria", "Cameron",
	"Carbon", "Centre", "Chester", "Clarion", "Clearfield", "Clinton",
	"Columbia", "Crawford", "Cumberland", "Dauphin", "Delaware", "Elk",
	"Erie", "Fayette", "Forest", "Franklin", "Fulton", "Greene",
	"Huntingdon", "Indiana", "Jefferson", "Juniata", "Lackawanna",
	"Lancaster", "Lawrence", "Lebanon", "Lehigh", "Luzerne", "Lycoming",
	"McKean", "Mercer", "Mifflin", "Monroe", "Montgomery", "Montour",
	"Northampton", "Northumberland", "Perry", "Philadelphia", "Pike",
	"Potter", "Schuylkill", "Snyder", "Somerset", "Sullivan",
	"Susquehanna", "Tioga", "Union", "Venango", "Warren", "Washington",
	"Wayne", "Westmoreland", "Wyoming", "York",
}

var countySet = func() map[string]string {
	set := make(map[string]string, len(canonicalCounties))
	for _, name := range canonicalCounties {
		set[strings.ToUpper(name)] = name
	}

	return set
}()

var mcPrefixPattern = regexp.MustCompile(`\bMc([a-z])`)

// Counties returns the canonical 67-county list in alphabetical order.
func Counties() []string {
	out := make([]string, len(canonicalCounties))
	copy(out, canonicalCounties)

	return out
}

// CountyCount is the number of Pennsylvania counties.
const CountyCount = 67

// NormalizeCounty maps a raw county label onto the canonical list. The
// " County" suffix is stripped, whitespace collapsed, and casing repaired
// (including Mc* surname prefixes, e.g. "MCKEAN" -> "McKean"). The
// second return is false when the name matches no canonical county.
func NormalizeCounty(raw string) (string, bool) {
	name := strings.ReplaceAll(raw, " County", "")
	name = strings.ReplaceAll(name, " COUNTY", "")
	name = utils.NormalizeWhitespace(name)

	if name == "" {
		return "", false
	}

	name = utils.TitleCase(name)
	name = fixMcPrefix(name)

	canonical, ok := countySet[strings.ToUpper(name)]

	return canonical, ok
}

func fixMcPrefix(name string) string {
	return mcPrefixPattern.ReplaceAllStringFunc(name, func(m string) string {
		return "Mc" + strings.ToUpper(m[2:])
	})
}
