package emitter

import (
	"errors"
	"fmt"
	"strings"

	"pavotes/internal/margins"
	"pavotes/internal/models"
	"pavotes/internal/normalizer"
)

// ErrSchemaMismatch is fatal: a document that fails its schema check is
// never written, so no invalid artifact is ever published.
var ErrSchemaMismatch = errors.New("dataset violates output schema")

const maxReportedIssues = 10

// validCodes is the closed set of competitiveness codes.
var validCodes = func() map[string]bool {
	set := map[string]bool{"TOSSUP": true}

	for _, label := range margins.Categories() {
		if label == margins.CategoryTossup {
			continue
		}

		upper := strings.ToUpper(label)
		set["D_"+upper] = true
		set["R_"+upper] = true
	}

	return set
}()

// Validate checks the assembled dataset against the output schema: stable
// key shape, canonical county names, non-negative integer votes, sums that
// reconcile, categories from the fixed enum, and margins that recompute
// from their own party breakdowns.
func Validate(dataset *models.Dataset) error {
	var issues []string

	report := func(format string, args ...any) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}

	if dataset.Metadata.Title == "" {
		report("metadata.title is empty")
	}

	if len(dataset.Metadata.Years) == 0 {
		report("metadata.years is empty")
	}

	if len(dataset.ResultsByYear) == 0 {
		report("results_by_year is empty")
	}

	for yearKey, yearContests := range dataset.ResultsByYear {
		for category, entry := range yearContests {
			if entry.ContestName == "" {
				report("%s/%s: contest_name is empty", yearKey, category)
			}

			if len(entry.Results) == 0 {
				report("%s/%s: no county results", yearKey, category)
			}

			countyTotal := 0

			for county, result := range entry.Results {
				checkCountyResult(yearKey, category, county, result, report)
				countyTotal += result.TotalVotes
			}

			checkStatewide(yearKey, category, entry, countyTotal, report)
		}
	}

	if len(issues) == 0 {
		return nil
	}

	shown := issues
	if len(shown) > maxReportedIssues {
		shown = shown[:maxReportedIssues]
	}

	return fmt.Errorf("%w: %d issue(s): %s", ErrSchemaMismatch, len(issues), strings.Join(shown, "; "))
}

func checkCountyResult(yearKey, category, county string, r models.CountyResult, report func(string, ...any)) {
	where := fmt.Sprintf("%s/%s/%s", yearKey, category, county)

	if _, ok := normalizer.NormalizeCounty(county); !ok {
		report("%s: county not canonical", where)
	}

	if r.County != county {
		report("%s: county field %q disagrees with key", where, r.County)
	}

	if r.Year != yearKey {
		report("%s: year field %q disagrees with key", where, r.Year)
	}

	if r.DemVotes < 0 || r.RepVotes < 0 || r.OtherVotes < 0 || r.TotalVotes <= 0 {
		report("%s: negative or zero vote counts", where)
	}

	if r.DemVotes+r.RepVotes+r.OtherVotes != r.TotalVotes {
		report("%s: party votes do not sum to total", where)
	}

	if r.TwoPartyTotal != r.DemVotes+r.RepVotes {
		report("%s: two_party_total inconsistent", where)
	}

	if !validCodes[r.Competitiveness.Code] {
		report("%s: unknown competitiveness code %q", where, r.Competitiveness.Code)
	}

	if r.Winner == "" {
		report("%s: winner is empty", where)
	}

	if r.Winner == models.WinnerTie && r.Margin != 0 {
		report("%s: tie with non-zero margin", where)
	}

	// Margins must recompute from the record's own party breakdown.
	res, err := margins.Compute(r.AllParties, r.TotalVotes)
	if err != nil {
		report("%s: margin not recomputable: %v", where, err)

		return
	}

	if res.Margin != r.Margin || res.MarginPct != r.MarginPct || res.Winner != r.Winner {
		report("%s: margin fields inconsistent with party votes", where)
	}
}

func checkStatewide(yearKey, category string, entry models.ContestResults, countyTotal int, report func(string, ...any)) {
	where := fmt.Sprintf("%s/%s/statewide", yearKey, category)

	state := entry.Statewide

	if state.TotalVotes != countyTotal {
		report("%s: total differs from sum of county totals", where)
	}

	if state.Counties != len(entry.Results) {
		report("%s: county count %d != %d results", where, state.Counties, len(entry.Results))
	}

	if state.DemVotes+state.RepVotes+state.OtherVotes != state.TotalVotes {
		report("%s: party votes do not sum to total", where)
	}

	if !validCodes[state.Competitiveness.Code] {
		report("%s: unknown competitiveness code %q", where, state.Competitiveness.Code)
	}
}
