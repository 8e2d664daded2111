// Package aggregator groups normalized rows into per-county contest totals.
package aggregator

import (
	"sort"
	"strings"

	"pavotes/internal/models"
	"pavotes/internal/normalizer"
)

// Aggregator sums normalized rows by (office, county, party). Grouping is
// order-independent and all accumulation is integer, so output is identical
// for any permutation of the input rows. Precinct rows collapse into county
// totals in the same pass.
type Aggregator struct{}

// New creates an aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Aggregate consumes all rows for one year and returns county contest
// totals sorted by office then county.
func (a *Aggregator) Aggregate(year int, rows []models.RawRow) []*models.CountyContestResult {
	parties := backfillParties(rows)

	type key struct {
		office string
		county string
	}

	grouped := make(map[key]*models.CountyContestResult)

	for i, row := range rows {
		k := key{office: row.Office, county: row.County}

		contest, ok := grouped[k]
		if !ok {
			contest = &models.CountyContestResult{
				Year:       year,
				Office:     row.Office,
				County:     row.County,
				PartyVotes: make(map[string]int),
				Candidates: make(map[string]string),
			}
			grouped[k] = contest
		}

		party := row.Party
		if party == "" {
			party = parties[i]
		}

		if party != "" {
			contest.PartyVotes[party] += row.Votes
		}

		contest.Total += row.Votes

		trackCandidate(contest, party, row)
	}

	results := make([]*models.CountyContestResult, 0, len(grouped))
	for _, contest := range grouped {
		results = append(results, contest)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Office != results[j].Office {
			return results[i].Office < results[j].Office
		}

		return results[i].County < results[j].County
	})

	return results
}

// backfillParties builds per-row party codes for rows missing a label,
// using the party other rows assign the same candidate. Some source years
// label a candidate's party only on a subset of rows.
func backfillParties(rows []models.RawRow) map[int]string {
	byCandidate := make(map[string]string)

	for _, row := range rows {
		if row.Party == "" || row.Candidate == "" {
			continue
		}

		// Smallest code wins on conflict, keeping the result independent
		// of input row order.
		key := candidateKey(row.Office, row.Candidate)
		if cur, ok := byCandidate[key]; !ok || row.Party < cur {
			byCandidate[key] = row.Party
		}
	}

	backfilled := make(map[int]string)

	for i, row := range rows {
		if row.Party != "" || row.Candidate == "" {
			continue
		}

		if party, ok := byCandidate[candidateKey(row.Office, row.Candidate)]; ok {
			backfilled[i] = party
		}
	}

	return backfilled
}

func candidateKey(office, candidate string) string {
	return office + "\x00" + strings.ToLower(candidate)
}

// trackCandidate records the major-party candidate names for a contest.
// Presidential names come from the nominee map so every county shows the
// same ticket regardless of per-row formatting.
func trackCandidate(contest *models.CountyContestResult, party string, row models.RawRow) {
	if party != models.PartyDem && party != models.PartyRep {
		return
	}

	if row.Office == normalizer.OfficePresident {
		if name := normalizer.PresidentName(row.Year, party); name != "" {
			contest.Candidates[party] = name

			return
		}
	}

	if row.Candidate == "" {
		return
	}

	// Smallest name wins when source rows spell a candidate differently,
	// keeping the result independent of input row order.
	if cur := contest.Candidates[party]; cur == "" || row.Candidate < cur {
		contest.Candidates[party] = row.Candidate
	}
}
