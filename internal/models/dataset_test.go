package models

import (
	"errors"
	"testing"
)

func lookupDataset() *Dataset {
	return &Dataset{
		Metadata: Metadata{Title: "Pennsylvania Election Results"},
		ResultsByYear: map[string]map[string]ContestResults{
			"2012": {
				"president": {
					ContestName: "President of the United States",
					Results: map[string]CountyResult{
						"Erie": {County: "Erie", Year: "2012", Winner: "DEM"},
					},
				},
			},
			"2016": {
				"president": {
					ContestName: "President of the United States",
					Results: map[string]CountyResult{
						"Erie": {County: "Erie", Year: "2016", Winner: "REP"},
					},
				},
			},
		},
	}
}

func TestDataset_Contest(t *testing.T) {
	d := lookupDataset()

	contest, err := d.Contest("president", 2012)
	if err != nil {
		t.Fatalf("Contest failed: %v", err)
	}

	if contest.ContestName != "President of the United States" {
		t.Errorf("ContestName = %q", contest.ContestName)
	}

	if _, err := d.Contest("governor", 2012); !errors.Is(err, ErrContestNotFound) {
		t.Errorf("Expected ErrContestNotFound, got %v", err)
	}

	if _, err := d.Contest("president", 1999); !errors.Is(err, ErrContestNotFound) {
		t.Errorf("Expected ErrContestNotFound for missing year, got %v", err)
	}
}

func TestDataset_CountyResult(t *testing.T) {
	d := lookupDataset()

	result, err := d.CountyResult("president", 2016, "Erie")
	if err != nil {
		t.Fatalf("CountyResult failed: %v", err)
	}

	if result.Winner != "REP" {
		t.Errorf("Winner = %q, want REP", result.Winner)
	}

	if _, err := d.CountyResult("president", 2016, "Adams"); !errors.Is(err, ErrCountyNotFound) {
		t.Errorf("Expected ErrCountyNotFound, got %v", err)
	}
}

func TestDataset_Flipped(t *testing.T) {
	d := lookupDataset()

	flipped, err := d.Flipped("president", 2012, 2016, "Erie")
	if err != nil {
		t.Fatalf("Flipped failed: %v", err)
	}

	if !flipped {
		t.Error("Expected Erie to report a flip between 2012 and 2016")
	}

	same, err := d.Flipped("president", 2012, 2012, "Erie")
	if err != nil {
		t.Fatalf("Flipped failed: %v", err)
	}

	if same {
		t.Error("Identical elections cannot flip")
	}
}

func TestRunSummary_Merge(t *testing.T) {
	a := RunSummary{FilesProcessed: 1, RowsRead: 100, RowsKept: 80, MalformedRows: 5}
	b := RunSummary{FilesProcessed: 2, RowsRead: 50, RowsKept: 40, UnknownCounties: 3}

	a.Merge(b)

	if a.FilesProcessed != 3 || a.RowsRead != 150 || a.RowsKept != 120 {
		t.Errorf("Merged summary wrong: %+v", a)
	}

	if a.MalformedRows != 5 || a.UnknownCounties != 3 {
		t.Errorf("Merged exclusion counters wrong: %+v", a)
	}
}

func TestRunSummary_Dropped(t *testing.T) {
	s := RunSummary{
		MalformedRows:    2,
		UnknownOffices:   3,
		UnknownCounties:  4,
		ZeroVoteContests: 1,
		RowsFiltered:     100, // filtered rows are intentional, not dropped
	}

	if got := s.Dropped(); got != 10 {
		t.Errorf("Dropped = %d, want 10", got)
	}
}
