// Package margins computes signed victory margins and competitiveness
// categories for county and statewide contest totals.
//
// Sign convention: positive margins are Democratic leads, negative margins
// are leads by any other party. The convention is fixed across the whole
// dataset; consumers read the winner field rather than inferring party
// from sign.
package margins

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"pavotes/internal/models"
)

// ErrZeroVotes marks a contest with no recorded ballots. The derived
// record is excluded from the dataset instead of dividing by zero.
var ErrZeroVotes = errors.New("contest total is zero")

// Result holds the computed margin for one contest.
type Result struct {
	Winner       string
	LeadingParty string
	SecondParty  string
	Margin       int
	MarginPct    float64
}

// Compute finds the two highest party totals and derives the signed margin
// percentage over all ballots cast:
//
//	marginPct = (leading - second) / total * 100
//
// An exact tie between the top two yields winner TIE and margin zero.
func Compute(partyVotes map[string]int, total int) (Result, error) {
	if total == 0 {
		return Result{}, ErrZeroVotes
	}

	parties := make([]string, 0, len(partyVotes))
	for party := range partyVotes {
		parties = append(parties, party)
	}

	// Votes descending, then party code ascending so ordering never
	// depends on map iteration.
	sort.Slice(parties, func(i, j int) bool {
		if partyVotes[parties[i]] != partyVotes[parties[j]] {
			return partyVotes[parties[i]] > partyVotes[parties[j]]
		}

		return parties[i] < parties[j]
	})

	var res Result

	if len(parties) > 0 {
		res.LeadingParty = parties[0]
	}

	if len(parties) > 1 {
		res.SecondParty = parties[1]
	}

	leading := partyVotes[res.LeadingParty]
	second := partyVotes[res.SecondParty]

	gap := leading - second
	pct := round2(float64(gap) / float64(total) * 100)

	switch {
	case gap == 0:
		res.Winner = models.WinnerTie
	case res.LeadingParty == models.PartyDem:
		res.Winner = models.PartyDem
		res.Margin = gap
		res.MarginPct = pct
	default:
		res.Winner = res.LeadingParty
		res.Margin = -gap
		res.MarginPct = -pct
	}

	return res, nil
}

// Calculator derives emitted county records from aggregated contest totals.
type Calculator struct{}

// New creates a calculator.
func New() *Calculator {
	return &Calculator{}
}

// CountyRecord turns one aggregated county contest into its emitted record.
// Returns ErrZeroVotes (wrapped with contest context) for empty contests.
func (c *Calculator) CountyRecord(contest *models.CountyContestResult, contestName, yearKey string) (models.CountyResult, error) {
	res, err := Compute(contest.PartyVotes, contest.Total)
	if err != nil {
		return models.CountyResult{}, fmt.Errorf("%s %s in %s: %w", contest.County, contest.Office, yearKey, err)
	}

	dem := contest.PartyVotes[models.PartyDem]
	rep := contest.PartyVotes[models.PartyRep]

	record := models.CountyResult{
		County:          contest.County,
		Contest:         contestName,
		Year:            yearKey,
		DemCandidate:    contest.Candidates[models.PartyDem],
		RepCandidate:    contest.Candidates[models.PartyRep],
		DemVotes:        dem,
		RepVotes:        rep,
		OtherVotes:      contest.Total - dem - rep,
		TotalVotes:      contest.Total,
		TwoPartyTotal:   dem + rep,
		Margin:          res.Margin,
		MarginPct:       res.MarginPct,
		DemPct:          round2(float64(dem) / float64(contest.Total) * 100),
		RepPct:          round2(float64(rep) / float64(contest.Total) * 100),
		Winner:          res.Winner,
		Competitiveness: Rate(res.MarginPct),
		AllParties:      copyVotes(contest.PartyVotes),
	}

	return record, nil
}

// StateRecord aggregates county records for one contest into the statewide
// record, computed with the same margin math over summed totals.
func (c *Calculator) StateRecord(contestName, yearKey string, counties map[string]models.CountyResult) (models.StateResult, error) {
	partyVotes := make(map[string]int)
	total := 0

	var demCandidate, repCandidate string

	// Iterate in county order so candidate selection is deterministic.
	names := make([]string, 0, len(counties))
	for name := range counties {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		county := counties[name]

		for party, votes := range county.AllParties {
			partyVotes[party] += votes
		}

		// Unlabeled votes contribute to totals but not to any party.
		total += county.TotalVotes

		if demCandidate == "" {
			demCandidate = county.DemCandidate
		}

		if repCandidate == "" {
			repCandidate = county.RepCandidate
		}
	}

	res, err := Compute(partyVotes, total)
	if err != nil {
		return models.StateResult{}, fmt.Errorf("statewide %s in %s: %w", contestName, yearKey, err)
	}

	dem := partyVotes[models.PartyDem]
	rep := partyVotes[models.PartyRep]

	record := models.StateResult{
		Contest:         contestName,
		Year:            yearKey,
		DemCandidate:    demCandidate,
		RepCandidate:    repCandidate,
		DemVotes:        dem,
		RepVotes:        rep,
		OtherVotes:      total - dem - rep,
		TotalVotes:      total,
		TwoPartyTotal:   dem + rep,
		Margin:          res.Margin,
		MarginPct:       res.MarginPct,
		Winner:          res.Winner,
		Competitiveness: Rate(res.MarginPct),
		Counties:        len(counties),
	}

	return record, nil
}

func copyVotes(votes map[string]int) map[string]int {
	out := make(map[string]int, len(votes))
	for party, v := range votes {
		out[party] = v
	}

	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
