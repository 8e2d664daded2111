package margins

import (
	"errors"
	"testing"

	"pavotes/internal/models"
)

func TestCompute_RepublicanLead(t *testing.T) {
	// 150,500 total ballots with a 5,500-vote Republican lead over the
	// Democrat works out to a signed margin of -3.65.
	votes := map[string]int{"DEM": 72500, "REP": 78000}

	res, err := Compute(votes, 150500)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if res.Winner != "REP" {
		t.Errorf("Winner = %q, want REP", res.Winner)
	}

	if res.Margin != -5500 {
		t.Errorf("Margin = %d, want -5500", res.Margin)
	}

	if res.MarginPct != -3.65 {
		t.Errorf("MarginPct = %v, want -3.65", res.MarginPct)
	}
}

func TestCompute_DemocraticLead(t *testing.T) {
	votes := map[string]int{"DEM": 60000, "REP": 40000, "LIB": 2000}

	res, err := Compute(votes, 102000)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if res.Winner != models.PartyDem {
		t.Errorf("Winner = %q, want DEM", res.Winner)
	}

	if res.Margin != 20000 {
		t.Errorf("Margin = %d, want 20000", res.Margin)
	}

	// (60000-40000)/102000*100 = 19.61
	if res.MarginPct != 19.61 {
		t.Errorf("MarginPct = %v, want 19.61", res.MarginPct)
	}
}

func TestCompute_ThirdPartyWinner(t *testing.T) {
	votes := map[string]int{"DEM": 100, "REP": 90, "GRN": 200}

	res, err := Compute(votes, 390)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// Non-Democratic leads are negative regardless of party.
	if res.Winner != "GRN" {
		t.Errorf("Winner = %q, want GRN", res.Winner)
	}

	if res.MarginPct >= 0 {
		t.Errorf("MarginPct = %v, want negative", res.MarginPct)
	}
}

func TestCompute_ExactTie(t *testing.T) {
	votes := map[string]int{"DEM": 500, "REP": 500}

	res, err := Compute(votes, 1000)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if res.Winner != models.WinnerTie {
		t.Errorf("Winner = %q, want TIE", res.Winner)
	}

	if res.Margin != 0 || res.MarginPct != 0 {
		t.Errorf("Margin = %d, MarginPct = %v, want zero", res.Margin, res.MarginPct)
	}
}

func TestCompute_ZeroVotes(t *testing.T) {
	_, err := Compute(map[string]int{}, 0)
	if !errors.Is(err, ErrZeroVotes) {
		t.Errorf("Expected ErrZeroVotes, got %v", err)
	}
}

func TestCompute_SinglePartyContest(t *testing.T) {
	votes := map[string]int{"DEM": 1000}

	res, err := Compute(votes, 1000)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if res.Winner != models.PartyDem {
		t.Errorf("Winner = %q, want DEM", res.Winner)
	}

	if res.MarginPct != 100 {
		t.Errorf("MarginPct = %v, want 100", res.MarginPct)
	}
}

func TestCalculator_CountyRecord(t *testing.T) {
	contest := &models.CountyContestResult{
		Year:   2022,
		Office: "U.S. Senate",
		County: "Lackawanna",
		PartyVotes: map[string]int{
			"DEM": 72500,
			"REP": 78000,
		},
		Candidates: map[string]string{
			"DEM": "John Fetterman",
			"REP": "Mehmet Oz",
		},
		Total: 150500,
	}

	record, err := New().CountyRecord(contest, "United States Senator", "2022")
	if err != nil {
		t.Fatalf("CountyRecord failed: %v", err)
	}

	if record.County != "Lackawanna" || record.Year != "2022" {
		t.Errorf("Record identity wrong: %+v", record)
	}

	if record.DemVotes != 72500 || record.RepVotes != 78000 {
		t.Errorf("Vote columns wrong: dem=%d rep=%d", record.DemVotes, record.RepVotes)
	}

	if record.OtherVotes != 0 {
		t.Errorf("OtherVotes = %d, want 0", record.OtherVotes)
	}

	if record.TwoPartyTotal != 150500 {
		t.Errorf("TwoPartyTotal = %d, want 150500", record.TwoPartyTotal)
	}

	if record.MarginPct != -3.65 {
		t.Errorf("MarginPct = %v, want -3.65", record.MarginPct)
	}

	if record.Winner != "REP" {
		t.Errorf("Winner = %q, want REP", record.Winner)
	}

	if record.Competitiveness.Code != "R_LEAN" {
		t.Errorf("Code = %q, want R_LEAN", record.Competitiveness.Code)
	}

	if record.Competitiveness.Category != "Lean Republican" {
		t.Errorf("Category = %q, want Lean Republican", record.Competitiveness.Category)
	}
}

func TestCalculator_CountyRecord_OtherVotes(t *testing.T) {
	contest := &models.CountyContestResult{
		Year:       2020,
		Office:     "President",
		County:     "Erie",
		PartyVotes: map[string]int{"DEM": 500, "REP": 400, "LIB": 50},
		Candidates: map[string]string{},
		Total:      960, // 10 unlabeled write-in ballots
	}

	record, err := New().CountyRecord(contest, "President of the United States", "2020")
	if err != nil {
		t.Fatalf("CountyRecord failed: %v", err)
	}

	if record.OtherVotes != 60 {
		t.Errorf("OtherVotes = %d, want 60", record.OtherVotes)
	}

	if record.TwoPartyTotal != 900 {
		t.Errorf("TwoPartyTotal = %d, want 900", record.TwoPartyTotal)
	}

	if record.AllParties["LIB"] != 50 {
		t.Errorf("AllParties[LIB] = %d, want 50", record.AllParties["LIB"])
	}
}

func TestCalculator_CountyRecord_ZeroVotes(t *testing.T) {
	contest := &models.CountyContestResult{
		Year:       2020,
		Office:     "President",
		County:     "Cameron",
		PartyVotes: map[string]int{},
		Candidates: map[string]string{},
	}

	_, err := New().CountyRecord(contest, "President of the United States", "2020")
	if !errors.Is(err, ErrZeroVotes) {
		t.Errorf("Expected ErrZeroVotes, got %v", err)
	}
}

func TestCalculator_StateRecord(t *testing.T) {
	counties := map[string]models.CountyResult{
		"Adams": {
			County: "Adams", Year: "2022",
			DemCandidate: "John Fetterman", RepCandidate: "Mehmet Oz",
			DemVotes: 17000, RepVotes: 27000, TotalVotes: 45000,
			AllParties: map[string]int{"DEM": 17000, "REP": 27000, "LIB": 1000},
		},
		"Berks": {
			County: "Berks", Year: "2022",
			DemCandidate: "John Fetterman", RepCandidate: "Mehmet Oz",
			DemVotes: 90000, RepVotes: 80000, TotalVotes: 172000,
			AllParties: map[string]int{"DEM": 90000, "REP": 80000, "LIB": 2000},
		},
	}

	record, err := New().StateRecord("United States Senator", "2022", counties)
	if err != nil {
		t.Fatalf("StateRecord failed: %v", err)
	}

	if record.DemVotes != 107000 || record.RepVotes != 107000 {
		t.Errorf("Statewide votes wrong: dem=%d rep=%d", record.DemVotes, record.RepVotes)
	}

	if record.TotalVotes != 217000 {
		t.Errorf("TotalVotes = %d, want 217000", record.TotalVotes)
	}

	if record.Winner != models.WinnerTie {
		t.Errorf("Winner = %q, want TIE (equal statewide totals)", record.Winner)
	}

	if record.Counties != 2 {
		t.Errorf("Counties = %d, want 2", record.Counties)
	}

	if record.DemCandidate != "John Fetterman" {
		t.Errorf("DemCandidate = %q", record.DemCandidate)
	}
}
