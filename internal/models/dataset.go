package models

import (
	"errors"
	"fmt"
	"strconv"
)

// Dataset lookup errors.
var (
	ErrContestNotFound = errors.New("contest not found")
	ErrCountyNotFound  = errors.New("county not found")
)

// Metadata describes the emitted dataset.
type Metadata struct {
	Title         string   `json:"title"`
	Years         []int    `json:"years"`
	Contests      []string `json:"contests"`
	CountiesCount int      `json:"counties_count"`
	SourceHash    string   `json:"source_hash"`
}

// ContestResults holds one contest's county results plus the statewide
// aggregate for that year.
type ContestResults struct {
	ContestName string                  `json:"contest_name"`
	Results     map[string]CountyResult `json:"results"`
	Statewide   StateResult             `json:"statewide"`
}

// Dataset is the single document the display layer consumes. Keys in
// ResultsByYear are four-digit year strings; the inner map is keyed by
// contest category (e.g. "president", "us_senate").
type Dataset struct {
	Metadata      Metadata                             `json:"metadata"`
	ResultsByYear map[string]map[string]ContestResults `json:"results_by_year"`
}

// Contest returns the results for a contest category in a given year.
func (d *Dataset) Contest(category string, year int) (ContestResults, error) {
	yearKey := strconv.Itoa(year)

	contests, ok := d.ResultsByYear[yearKey]
	if !ok {
		return ContestResults{}, fmt.Errorf("%w: %s in %d", ErrContestNotFound, category, year)
	}

	contest, ok := contests[category]
	if !ok {
		return ContestResults{}, fmt.Errorf("%w: %s in %d", ErrContestNotFound, category, year)
	}

	return contest, nil
}

// CountyResult returns one county's result for a contest category and year.
func (d *Dataset) CountyResult(category string, year int, county string) (CountyResult, error) {
	contest, err := d.Contest(category, year)
	if err != nil {
		return CountyResult{}, err
	}

	result, ok := contest.Results[county]
	if !ok {
		return CountyResult{}, fmt.Errorf("%w: %s (%s %d)", ErrCountyNotFound, county, category, year)
	}

	return result, nil
}

// Flipped reports whether a county's winning party differs between two
// elections of the same contest category.
func (d *Dataset) Flipped(category string, year1, year2 int, county string) (bool, error) {
	first, err := d.CountyResult(category, year1, county)
	if err != nil {
		return false, err
	}

	second, err := d.CountyResult(category, year2, county)
	if err != nil {
		return false, err
	}

	return first.Winner != second.Winner, nil
}
