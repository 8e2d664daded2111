// Package models defines the data shapes that flow through the election
// results pipeline, from raw CSV rows to the emitted dataset document.
package models

// Party codes used throughout the pipeline.
const (
	PartyDem = "DEM"
	PartyRep = "REP"

	// WinnerTie is emitted when the top two finishers are exactly level.
	WinnerTie = "TIE"
)

// RawRow is one normalized source row: canonical county, office, party and
// candidate names with an integer vote count. Precinct is empty for
// county-granularity sources.
type RawRow struct {
	Year      int
	Office    string
	County    string
	Precinct  string
	Candidate string
	Party     string
	Votes     int
}

// CountyContestResult holds the summed votes for one (year, office, county)
// contest, keyed by party code.
type CountyContestResult struct {
	Year       int
	Office     string
	County     string
	PartyVotes map[string]int
	// Candidates maps DEM/REP to the normalized candidate name.
	Candidates map[string]string
	Total      int
}

// Competitiveness is the category assigned to a margin, including the
// display-layer code and color ramp entry.
type Competitiveness struct {
	Category string `json:"category"`
	Party    string `json:"party"`
	Code     string `json:"code"`
	Color    string `json:"color"`
}

// CountyResult is one emitted county record: vote totals, signed margin and
// competitiveness for a single contest. MarginPct is positive for a
// Democratic lead and negative otherwise.
type CountyResult struct {
	County          string          `json:"county"`
	Contest         string          `json:"contest"`
	Year            string          `json:"year"`
	DemCandidate    string          `json:"dem_candidate"`
	RepCandidate    string          `json:"rep_candidate"`
	DemVotes        int             `json:"dem_votes"`
	RepVotes        int             `json:"rep_votes"`
	OtherVotes      int             `json:"other_votes"`
	TotalVotes      int             `json:"total_votes"`
	TwoPartyTotal   int             `json:"two_party_total"`
	Margin          int             `json:"margin"`
	MarginPct       float64         `json:"margin_pct"`
	DemPct          float64         `json:"dem_pct"`
	RepPct          float64         `json:"rep_pct"`
	Winner          string          `json:"winner"`
	Competitiveness Competitiveness `json:"competitiveness"`
	AllParties      map[string]int  `json:"all_parties"`
}

// StateResult is the statewide aggregate for one (year, contest), computed
// by summing county totals and running the same margin math over the sums.
type StateResult struct {
	Contest         string          `json:"contest"`
	Year            string          `json:"year"`
	DemCandidate    string          `json:"dem_candidate"`
	RepCandidate    string          `json:"rep_candidate"`
	DemVotes        int             `json:"dem_votes"`
	RepVotes        int             `json:"rep_votes"`
	OtherVotes      int             `json:"other_votes"`
	TotalVotes      int             `json:"total_votes"`
	TwoPartyTotal   int             `json:"two_party_total"`
	Margin          int             `json:"margin"`
	MarginPct       float64         `json:"margin_pct"`
	Winner          string          `json:"winner"`
	Competitiveness Competitiveness `json:"competitiveness"`
	Counties        int             `json:"counties"`
}
