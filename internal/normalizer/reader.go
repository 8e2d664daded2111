// Package normalizer parses raw election CSV files into normalized rows
// with canonical county, office, party and candidate vocabulary.
package normalizer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pavotes/internal/config"
	"pavotes/internal/logger"
	"pavotes/internal/models"
)

// Row-level normalization errors. Rows failing these are skipped and
// counted in the run summary; they never abort the file.
var (
	ErrMalformedRow  = errors.New("malformed row: votes field is not numeric")
	ErrUnknownOffice = errors.New("unknown office label")
	ErrUnknownCounty = errors.New("county does not match canonical list")
	ErrMissingColumn = errors.New("required column missing from header")
	ErrEmptyFile     = errors.New("source file has no header row")
)

// columns holds the resolved header indices for one source file.
type columns struct {
	county    int
	office    int
	party     int
	candidate int
	votes     int
	precinct  int
}

// Normalizer turns one source file into normalized rows according to its
// year profile.
type Normalizer struct {
	log *logger.Logger
}

// New creates a normalizer.
func New(log *logger.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// NormalizeFile reads the CSV at path and returns normalized rows for the
// races the profile selects. Row-level failures are counted in sum and
// logged; only unreadable files and broken headers are returned as errors.
func (n *Normalizer) NormalizeFile(el config.ElectionConfig, path string, sum *models.RunSummary) ([]models.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()

	rows, err := n.normalize(el, f, sum)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", path, err)
	}

	sum.FilesProcessed++

	return rows, nil
}

func (n *Normalizer) normalize(el config.ElectionConfig, r io.Reader, sum *models.RunSummary) ([]models.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := resolveColumns(header, el.Layout)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(el.Races))
	for _, race := range el.Races {
		selected[race] = true
	}

	var rows []models.RawRow

	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		line++

		if err != nil {
			// Structurally broken line; treat like any other bad row.
			sum.RowsRead++
			sum.MalformedRows++
			n.log.Warn("skipping unparseable row", "year", el.Year, "line", line, "error", err)

			continue
		}

		sum.RowsRead++

		row, err := n.normalizeRecord(el, cols, record)
		if err != nil {
			switch {
			case errors.Is(err, errUnselectedOffice):
				sum.RowsFiltered++
			case errors.Is(err, ErrMalformedRow):
				sum.MalformedRows++
				n.log.Warn("skipping malformed row", "year", el.Year, "line", line, "error", err)
			case errors.Is(err, ErrUnknownOffice):
				sum.UnknownOffices++
				n.log.Warn("skipping row with unknown office", "year", el.Year, "line", line, "error", err)
			case errors.Is(err, ErrUnknownCounty):
				sum.UnknownCounties++
				n.log.Warn("dropping row: county not canonical, data completeness reduced",
					"year", el.Year, "line", line, "error", err)
			default:
				sum.MalformedRows++
				n.log.Warn("skipping row", "year", el.Year, "line", line, "error", err)
			}

			continue
		}

		if !selected[row.Office] {
			sum.RowsFiltered++

			continue
		}

		sum.RowsKept++

		rows = append(rows, row)
	}

	return rows, nil
}

// errUnselectedOffice marks rows whose office is recognized but not
// extracted for this year. Internal only; never surfaced as an error.
var errUnselectedOffice = errors.New("office not selected for this year")

func (n *Normalizer) normalizeRecord(el config.ElectionConfig, cols columns, record []string) (models.RawRow, error) {
	office, ok := NormalizeOffice(field(record, cols.office))
	if !ok {
		return models.RawRow{}, fmt.Errorf("%w: %q", ErrUnknownOffice, field(record, cols.office))
	}

	if _, statewide := ContestFor(office); !statewide {
		return models.RawRow{}, errUnselectedOffice
	}

	county, ok := NormalizeCounty(field(record, cols.county))
	if !ok {
		return models.RawRow{}, fmt.Errorf("%w: %q", ErrUnknownCounty, field(record, cols.county))
	}

	votes, err := parseVotes(field(record, cols.votes))
	if err != nil {
		return models.RawRow{}, err
	}

	row := models.RawRow{
		Year:      el.Year,
		Office:    office,
		County:    county,
		Party:     NormalizeParty(field(record, cols.party)),
		Candidate: NormalizeCandidate(field(record, cols.candidate), office),
		Votes:     votes,
	}

	if el.Granularity == config.GranularityPrecinct && cols.precinct >= 0 {
		row.Precinct = strings.TrimSpace(field(record, cols.precinct))
	}

	return row, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return record[idx]
}

// parseVotes accepts plain integers, comma-grouped integers from official
// returns ("1,234"), and float-formatted counts some exports produce
// ("1234.0").
func parseVotes(raw string) (int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrMalformedRow)
	}

	if v, err := strconv.Atoi(s); err == nil {
		if v < 0 {
			return 0, fmt.Errorf("%w: negative count %q", ErrMalformedRow, raw)
		}

		return v, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedRow, raw)
	}

	return int(f), nil
}

// resolveColumns finds the required header indices for the layout.
func resolveColumns(header []string, layout string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	lookup := func(names ...string) int {
		for _, name := range names {
			if i, ok := index[name]; ok {
				return i
			}
		}

		return -1
	}

	var cols columns

	switch layout {
	case config.LayoutOfficial:
		cols = columns{
			county:    lookup("county name"),
			office:    lookup("office name"),
			party:     lookup("party name"),
			candidate: lookup("candidate name"),
			votes:     lookup("votes"),
			precinct:  -1,
		}
	default:
		cols = columns{
			county:    lookup("county"),
			office:    lookup("office"),
			party:     lookup("party"),
			candidate: lookup("candidate"),
			votes:     lookup("votes"),
			precinct:  lookup("precinct", "division"),
		}
	}

	for name, idx := range map[string]int{
		"county": cols.county,
		"office": cols.office,
		"votes":  cols.votes,
	} {
		if idx < 0 {
			return columns{}, fmt.Errorf("%w: %s (layout %s)", ErrMissingColumn, name, layout)
		}
	}

	return cols, nil
}
