package normalizer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pavotes/internal/config"
	"pavotes/internal/logger"
	"pavotes/internal/models"
)

func testNormalizer() *Normalizer {
	return New(logger.NewWithWriter("error", io.Discard))
}

func countyElection(year int, races ...string) config.ElectionConfig {
	return config.ElectionConfig{
		Year:        year,
		File:        "test.csv",
		Granularity: config.GranularityCounty,
		Layout:      config.LayoutOpenElections,
		Races:       races,
		Enabled:     true,
	}
}

func TestNormalize_OpenElectionsLayout(t *testing.T) {
	csvData := `county,office,district,party,candidate,votes
Adams,President,,DEM,Joe Biden,20000
Adams,President,,REP,Trump/Pence,30000
Adams,State Representative,91,REP,Dan Moul,25000
`
	n := testNormalizer()

	var sum models.RunSummary

	rows, err := n.normalize(countyElection(2020, "President"), strings.NewReader(csvData), &sum)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if rows[0].County != "Adams" || rows[0].Party != "DEM" || rows[0].Votes != 20000 {
		t.Errorf("Unexpected first row: %+v", rows[0])
	}

	// Running mate stripped for the presidential ticket.
	if rows[1].Candidate != "Trump" {
		t.Errorf("Candidate = %q, want Trump", rows[1].Candidate)
	}

	if sum.RowsRead != 3 {
		t.Errorf("RowsRead = %d, want 3", sum.RowsRead)
	}

	// The legislative row is recognized and silently filtered.
	if sum.RowsFiltered != 1 {
		t.Errorf("RowsFiltered = %d, want 1", sum.RowsFiltered)
	}

	if sum.UnknownOffices != 0 {
		t.Errorf("UnknownOffices = %d, want 0", sum.UnknownOffices)
	}
}

func TestNormalize_OfficialLayout(t *testing.T) {
	csvData := `County Name,Office Name,Party Name,Candidate Name,Votes
ALLEGHENY,UNITED STATES SENATOR,Democratic,JOHN FETTERMAN,"362,166"
ALLEGHENY,UNITED STATES SENATOR,Republican,MEHMET OZ,"241,323"
`
	el := config.ElectionConfig{
		Year:        2022,
		File:        "official.csv",
		Granularity: config.GranularityCounty,
		Layout:      config.LayoutOfficial,
		Races:       []string{"U.S. Senate"},
		Enabled:     true,
	}

	n := testNormalizer()

	var sum models.RunSummary

	rows, err := n.normalize(el, strings.NewReader(csvData), &sum)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if rows[0].County != "Allegheny" {
		t.Errorf("County = %q, want Allegheny", rows[0].County)
	}

	if rows[0].Office != OfficeUSSenate {
		t.Errorf("Office = %q, want %q", rows[0].Office, OfficeUSSenate)
	}

	// Comma-grouped votes from official returns parse cleanly.
	if rows[0].Votes != 362166 {
		t.Errorf("Votes = %d, want 362166", rows[0].Votes)
	}

	if rows[0].Candidate != "John Fetterman" {
		t.Errorf("Candidate = %q, want John Fetterman", rows[0].Candidate)
	}
}

func TestNormalize_PrecinctRows(t *testing.T) {
	csvData := `county,precinct,office,district,party,candidate,votes
Erie,Ward 1,President,,DEM,Joe Biden,150
Erie,Ward 2,President,,DEM,Joe Biden,225
`
	el := countyElection(2020, "President")
	el.Granularity = config.GranularityPrecinct

	n := testNormalizer()

	var sum models.RunSummary

	rows, err := n.normalize(el, strings.NewReader(csvData), &sum)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if rows[0].Precinct != "Ward 1" || rows[1].Precinct != "Ward 2" {
		t.Errorf("Precinct labels not carried: %+v", rows)
	}
}

func TestNormalize_BadRowsCounted(t *testing.T) {
	csvData := `county,office,district,party,candidate,votes
Adams,President,,DEM,Joe Biden,N/A
Adams,Zoning Board,,DEM,Someone,100
Atlantis,President,,DEM,Joe Biden,100
Adams,President,,REP,Donald Trump,30000
`
	n := testNormalizer()

	var sum models.RunSummary

	rows, err := n.normalize(countyElection(2020, "President"), strings.NewReader(csvData), &sum)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("Expected 1 kept row, got %d", len(rows))
	}

	if sum.MalformedRows != 1 {
		t.Errorf("MalformedRows = %d, want 1", sum.MalformedRows)
	}

	if sum.UnknownOffices != 1 {
		t.Errorf("UnknownOffices = %d, want 1", sum.UnknownOffices)
	}

	if sum.UnknownCounties != 1 {
		t.Errorf("UnknownCounties = %d, want 1", sum.UnknownCounties)
	}

	if sum.RowsKept != 1 {
		t.Errorf("RowsKept = %d, want 1", sum.RowsKept)
	}
}

func TestNormalize_EmptyFile(t *testing.T) {
	n := testNormalizer()

	var sum models.RunSummary

	_, err := n.normalize(countyElection(2020, "President"), strings.NewReader(""), &sum)
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("Expected ErrEmptyFile, got %v", err)
	}
}

func TestNormalize_MissingColumn(t *testing.T) {
	csvData := `county,party,candidate,votes
Adams,DEM,Joe Biden,100
`
	n := testNormalizer()

	var sum models.RunSummary

	_, err := n.normalize(countyElection(2020, "President"), strings.NewReader(csvData), &sum)
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn, got %v", err)
	}
}

func TestNormalizeFile_MissingFile(t *testing.T) {
	n := testNormalizer()

	var sum models.RunSummary

	_, err := n.NormalizeFile(countyElection(2020, "President"), "/nonexistent/file.csv", &sum)
	if err == nil {
		t.Fatal("Expected error for missing file")
	}

	if sum.FilesProcessed != 0 {
		t.Errorf("FilesProcessed = %d, want 0", sum.FilesProcessed)
	}
}

func TestNormalizeFile_CountsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.csv")

	csvData := `county,office,district,party,candidate,votes
Adams,President,,DEM,Joe Biden,20000
`
	if err := os.WriteFile(path, []byte(csvData), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	n := testNormalizer()

	var sum models.RunSummary

	rows, err := n.NormalizeFile(countyElection(2020, "President"), path, &sum)
	if err != nil {
		t.Fatalf("NormalizeFile failed: %v", err)
	}

	if len(rows) != 1 {
		t.Errorf("Expected 1 row, got %d", len(rows))
	}

	if sum.FilesProcessed != 1 {
		t.Errorf("FilesProcessed = %d, want 1", sum.FilesProcessed)
	}
}

func TestParseVotes(t *testing.T) {
	if v, err := parseVotes("1234"); err != nil || v != 1234 {
		t.Errorf("parseVotes(1234) = %d, %v", v, err)
	}

	if v, err := parseVotes("1,234"); err != nil || v != 1234 {
		t.Errorf("parseVotes(1,234) = %d, %v", v, err)
	}

	if v, err := parseVotes("1234.0"); err != nil || v != 1234 {
		t.Errorf("parseVotes(1234.0) = %d, %v", v, err)
	}

	if _, err := parseVotes("-5"); !errors.Is(err, ErrMalformedRow) {
		t.Errorf("parseVotes(-5) error = %v, want ErrMalformedRow", err)
	}

	if _, err := parseVotes("N/A"); !errors.Is(err, ErrMalformedRow) {
		t.Errorf("parseVotes(N/A) error = %v, want ErrMalformedRow", err)
	}

	if _, err := parseVotes(""); !errors.Is(err, ErrMalformedRow) {
		t.Errorf("parseVotes(empty) error = %v, want ErrMalformedRow", err)
	}
}
