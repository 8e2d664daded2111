package storage

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"

	_ "github.com/lib/pq" // postgres driver
	"pavotes/internal/logger"
	"pavotes/internal/models"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS county_results (
	year          INT          NOT NULL,
	contest       TEXT         NOT NULL,
	county        TEXT         NOT NULL,
	dem_candidate TEXT         NOT NULL DEFAULT '',
	rep_candidate TEXT         NOT NULL DEFAULT '',
	dem_votes     INT          NOT NULL,
	rep_votes     INT          NOT NULL,
	other_votes   INT          NOT NULL,
	total_votes   INT          NOT NULL,
	margin_pct    DOUBLE PRECISION NOT NULL,
	winner        TEXT         NOT NULL,
	category      TEXT         NOT NULL,
	PRIMARY KEY (year, contest, county)
)`

const upsertSQL = `
INSERT INTO county_results (
	year, contest, county, dem_candidate, rep_candidate,
	dem_votes, rep_votes, other_votes, total_votes,
	margin_pct, winner, category
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (year, contest, county) DO UPDATE SET
	dem_candidate = EXCLUDED.dem_candidate,
	rep_candidate = EXCLUDED.rep_candidate,
	dem_votes     = EXCLUDED.dem_votes,
	rep_votes     = EXCLUDED.rep_votes,
	other_votes   = EXCLUDED.other_votes,
	total_votes   = EXCLUDED.total_votes,
	margin_pct    = EXCLUDED.margin_pct,
	winner        = EXCLUDED.winner,
	category      = EXCLUDED.category`

// PostgresWriter upserts county results into a county_results table.
type PostgresWriter struct {
	db  *sql.DB
	log *logger.Logger
}

// NewPostgresWriter connects to Postgres, verifies the connection, and
// ensures the target table exists.
func NewPostgresWriter(dsn string, log *logger.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("postgres: create table: %w", err)
	}

	return &PostgresWriter{db: db, log: log}, nil
}

// WriteDataset upserts every county result in one transaction, so a failed
// load never leaves a partially updated table.
func (w *PostgresWriter) WriteDataset(dataset *models.Dataset) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}

	stmt, err := tx.Prepare(upsertSQL)
	if err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("postgres: prepare: %w", err)
	}

	count := 0

	for _, yearKey := range sortedYears(dataset) {
		year, err := strconv.Atoi(yearKey)
		if err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()

			return fmt.Errorf("postgres: bad year key %q: %w", yearKey, err)
		}

		for _, category := range sortedCategories(dataset.ResultsByYear[yearKey]) {
			entry := dataset.ResultsByYear[yearKey][category]

			for _, county := range sortedCounties(entry.Results) {
				r := entry.Results[county]

				_, err := stmt.Exec(
					year, entry.ContestName, r.County,
					r.DemCandidate, r.RepCandidate,
					r.DemVotes, r.RepVotes, r.OtherVotes, r.TotalVotes,
					r.MarginPct, r.Winner, r.Competitiveness.Category,
				)
				if err != nil {
					_ = stmt.Close()
					_ = tx.Rollback()

					return fmt.Errorf("postgres: upsert %s/%s/%s: %w", yearKey, category, county, err)
				}

				count++
			}
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("postgres: close statement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}

	w.log.Info("dataset loaded into postgres", "rows", count)

	return nil
}

// Close closes the database connection.
func (w *PostgresWriter) Close() error {
	return w.db.Close()
}

func sortedYears(dataset *models.Dataset) []string {
	years := make([]string, 0, len(dataset.ResultsByYear))
	for year := range dataset.ResultsByYear {
		years = append(years, year)
	}

	sort.Strings(years)

	return years
}

func sortedCategories(contests map[string]models.ContestResults) []string {
	categories := make([]string, 0, len(contests))
	for category := range contests {
		categories = append(categories, category)
	}

	sort.Strings(categories)

	return categories
}

func sortedCounties(results map[string]models.CountyResult) []string {
	counties := make([]string, 0, len(results))
	for county := range results {
		counties = append(counties, county)
	}

	sort.Strings(counties)

	return counties
}
