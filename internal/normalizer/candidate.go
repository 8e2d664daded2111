package normalizer

import (
	"regexp"
	"strings"

	"pavotes/pkg/utils"
)

var (
	runningMatePattern = regexp.MustCompile(`(?i)\s*(?:/|\band\b|&)\s*`)
	initialPattern     = regexp.MustCompile(`\b[A-Z]\b\.?`)
	dePrefixPattern    = regexp.MustCompile(`\bDe([a-z])`)
)

// suffixes repairs generational suffixes after title casing.
var suffixes = map[string]string{
	"Jr":  "Jr.",
	"Sr":  "Sr.",
	"Ii":  "II",
	"Iii": "III",
	"Iv":  "IV",
}

// presidentNames maps year and party to the presidential nominee, since
// source files disagree on running-mate formatting and initials.
var presidentNames = map[int]map[string]string{
	2000: {"DEM": "Al Gore", "REP": "George W. Bush"},
	2004: {"DEM": "John F. Kerry", "REP": "George W. Bush"},
	2008: {"DEM": "Barack Obama", "REP": "John McCain"},
	2012: {"DEM": "Barack Obama", "REP": "Mitt Romney"},
	2016: {"DEM": "Hillary Clinton", "REP": "Donald J. Trump"},
	2020: {"DEM": "Joe Biden", "REP": "Donald J. Trump"},
	2024: {"DEM": "Kamala Harris", "REP": "Donald J. Trump"},
}

// PresidentName returns the presidential nominee for a year and party
// code, or "" when the ticket is not mapped.
func PresidentName(year int, party string) string {
	return presidentNames[year][party]
}

// NormalizeCandidate cleans a raw candidate label: running mates are
// stripped for ticket offices (President, Governor), casing is repaired,
// standalone middle initials gain a period, and generational suffixes are
// restored.
func NormalizeCandidate(raw, office string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	if office == OfficePresident || office == OfficeGovernor {
		if parts := runningMatePattern.Split(name, 2); len(parts) > 0 {
			name = parts[0]
		}
	}

	name = utils.NormalizeWhitespace(name)
	name = utils.TitleCase(name)

	name = initialPattern.ReplaceAllStringFunc(name, func(m string) string {
		if strings.HasSuffix(m, ".") {
			return m
		}

		return m + "."
	})

	name = fixMcPrefix(name)
	name = dePrefixPattern.ReplaceAllStringFunc(name, func(m string) string {
		return "De" + strings.ToUpper(m[2:])
	})

	parts := strings.Split(name, " ")
	if len(parts) > 0 {
		if fixed, ok := suffixes[parts[len(parts)-1]]; ok {
			parts[len(parts)-1] = fixed
			name = strings.Join(parts, " ")
		}
	}

	return name
}
