// Package findings derives research statistics from an emitted dataset:
// flipped counties, swing magnitudes, statewide trends, and bellwethers.
package findings

import (
	"sort"
	"strconv"

	"pavotes/internal/models"
)

// TrendPoint is one county's result in one election.
type TrendPoint struct {
	Year      int
	MarginPct float64
	Winner    string
	Category  string
}

// Flip describes a county whose winner changed between the earliest and
// latest elections of a contest.
type Flip struct {
	County         string
	FromParty      string
	ToParty        string
	Swing          float64
	EarliestYear   int
	LatestYear     int
	EarliestMargin float64
	LatestMargin   float64
}

// Swing ranks a county by total margin movement over time.
type Swing struct {
	County     string
	TotalSwing float64
	First      TrendPoint
	Last       TrendPoint
}

// Bellwether counts how often a county's winner matched the statewide
// winner.
type Bellwether struct {
	County    string
	Matches   int
	Elections int
}

// Analyzer computes findings over one contest category of a dataset.
type Analyzer struct {
	dataset *models.Dataset
}

// New creates an analyzer.
func New(dataset *models.Dataset) *Analyzer {
	return &Analyzer{dataset: dataset}
}

// CountyTrends collects each county's per-year results for a contest,
// sorted by year.
func (a *Analyzer) CountyTrends(category string) map[string][]TrendPoint {
	trends := make(map[string][]TrendPoint)

	for yearKey, contests := range a.dataset.ResultsByYear {
		entry, ok := contests[category]
		if !ok {
			continue
		}

		year, err := strconv.Atoi(yearKey)
		if err != nil {
			continue
		}

		for county, result := range entry.Results {
			trends[county] = append(trends[county], TrendPoint{
				Year:      year,
				MarginPct: result.MarginPct,
				Winner:    result.Winner,
				Category:  result.Competitiveness.Category,
			})
		}
	}

	for county := range trends {
		points := trends[county]
		sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
		trends[county] = points
	}

	return trends
}

// FlippedCounties returns every county whose winner differs between its
// earliest and latest election in the contest, sorted by swing magnitude.
func (a *Analyzer) FlippedCounties(category string) []Flip {
	var flips []Flip

	for county, points := range a.CountyTrends(category) {
		if len(points) < 2 {
			continue
		}

		first := points[0]
		last := points[len(points)-1]

		if first.Winner == last.Winner {
			continue
		}

		flips = append(flips, Flip{
			County:         county,
			FromParty:      first.Winner,
			ToParty:        last.Winner,
			Swing:          last.MarginPct - first.MarginPct,
			EarliestYear:   first.Year,
			LatestYear:     last.Year,
			EarliestMargin: first.MarginPct,
			LatestMargin:   last.MarginPct,
		})
	}

	sort.Slice(flips, func(i, j int) bool {
		if abs(flips[i].Swing) != abs(flips[j].Swing) {
			return abs(flips[i].Swing) > abs(flips[j].Swing)
		}

		return flips[i].County < flips[j].County
	})

	return flips
}

// BiggestSwings ranks counties by absolute margin movement between their
// earliest and latest elections, returning at most topN entries.
func (a *Analyzer) BiggestSwings(category string, topN int) []Swing {
	var swings []Swing

	for county, points := range a.CountyTrends(category) {
		if len(points) < 2 {
			continue
		}

		first := points[0]
		last := points[len(points)-1]

		swings = append(swings, Swing{
			County:     county,
			TotalSwing: last.MarginPct - first.MarginPct,
			First:      first,
			Last:       last,
		})
	}

	sort.Slice(swings, func(i, j int) bool {
		if abs(swings[i].TotalSwing) != abs(swings[j].TotalSwing) {
			return abs(swings[i].TotalSwing) > abs(swings[j].TotalSwing)
		}

		return swings[i].County < swings[j].County
	})

	if topN > 0 && len(swings) > topN {
		swings = swings[:topN]
	}

	return swings
}

// StatewideTrend returns the statewide aggregates for a contest, sorted by
// year.
func (a *Analyzer) StatewideTrend(category string) []models.StateResult {
	var trend []models.StateResult

	for _, contests := range a.dataset.ResultsByYear {
		if entry, ok := contests[category]; ok {
			trend = append(trend, entry.Statewide)
		}
	}

	sort.Slice(trend, func(i, j int) bool { return trend[i].Year < trend[j].Year })

	return trend
}

// Bellwethers ranks counties by how often their winner matched the
// statewide winner across all elections of the contest.
func (a *Analyzer) Bellwethers(category string) []Bellwether {
	stateWinners := make(map[int]string)
	for _, state := range a.StatewideTrend(category) {
		if year, err := strconv.Atoi(state.Year); err == nil {
			stateWinners[year] = state.Winner
		}
	}

	var ranked []Bellwether

	for county, points := range a.CountyTrends(category) {
		b := Bellwether{County: county}

		for _, point := range points {
			winner, ok := stateWinners[point.Year]
			if !ok {
				continue
			}

			b.Elections++

			if point.Winner == winner {
				b.Matches++
			}
		}

		if b.Elections > 0 {
			ranked = append(ranked, b)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Matches != ranked[j].Matches {
			return ranked[i].Matches > ranked[j].Matches
		}

		return ranked[i].County < ranked[j].County
	})

	return ranked
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
