// Package emitter assembles the final dataset document, checks it against
// the output schema, and publishes it atomically.
package emitter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"pavotes/internal/config"
	"pavotes/internal/logger"
	"pavotes/internal/margins"
	"pavotes/internal/models"
	"pavotes/internal/normalizer"
)

// DatasetTitle is the fixed metadata title of the emitted document.
const DatasetTitle = "Pennsylvania Election Results"

// Emitter builds and writes the dataset.
type Emitter struct {
	log    *logger.Logger
	calc   *margins.Calculator
	output config.OutputConfig
}

// New creates an emitter.
func New(log *logger.Logger, output config.OutputConfig) *Emitter {
	return &Emitter{
		log:    log,
		calc:   margins.New(),
		output: output,
	}
}

// BuildDataset derives the emitted document from per-year aggregated
// contests. Zero-vote contests are excluded and counted in sum.
func (e *Emitter) BuildDataset(byYear map[int][]*models.CountyContestResult, sourceHash string, sum *models.RunSummary) *models.Dataset {
	dataset := &models.Dataset{
		Metadata: models.Metadata{
			Title:      DatasetTitle,
			SourceHash: sourceHash,
		},
		ResultsByYear: make(map[string]map[string]models.ContestResults),
	}

	contestSet := make(map[string]bool)
	countySet := make(map[string]bool)

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}

	sort.Ints(years)

	for _, year := range years {
		yearKey := strconv.Itoa(year)

		for _, contest := range byYear[year] {
			info, ok := normalizer.ContestFor(contest.Office)
			if !ok {
				continue
			}

			record, err := e.calc.CountyRecord(contest, info.Name, yearKey)
			if err != nil {
				if errors.Is(err, margins.ErrZeroVotes) {
					sum.ZeroVoteContests++
					e.log.Warn("excluding contest with no recorded votes", "error", err)

					continue
				}

				// Compute only fails on zero totals.
				continue
			}

			if dataset.ResultsByYear[yearKey] == nil {
				dataset.ResultsByYear[yearKey] = make(map[string]models.ContestResults)
			}

			entry, ok := dataset.ResultsByYear[yearKey][info.Category]
			if !ok {
				entry = models.ContestResults{
					ContestName: info.Name,
					Results:     make(map[string]models.CountyResult),
				}
			}

			entry.Results[contest.County] = record
			dataset.ResultsByYear[yearKey][info.Category] = entry

			contestSet[info.Category] = true
			countySet[contest.County] = true
		}

		dataset.Metadata.Years = append(dataset.Metadata.Years, year)
	}

	e.attachStatewide(dataset)

	dataset.Metadata.Contests = sortedKeys(contestSet)
	dataset.Metadata.CountiesCount = len(countySet)

	for yearKey, yearContests := range dataset.ResultsByYear {
		for category, entry := range yearContests {
			sum.ContestsEmitted++
			e.log.Debug("contest emitted", "year", yearKey, "contest", category, "counties", len(entry.Results))
		}
	}

	return dataset
}

func (e *Emitter) attachStatewide(dataset *models.Dataset) {
	for yearKey, yearContests := range dataset.ResultsByYear {
		for category, entry := range yearContests {
			state, err := e.calc.StateRecord(entry.ContestName, yearKey, entry.Results)
			if err != nil {
				// Unreachable once zero-vote contests are excluded, but a
				// statewide zero should not crash the run either.
				e.log.Warn("skipping statewide aggregate", "error", err)

				continue
			}

			entry.Statewide = state
			yearContests[category] = entry
		}
	}
}

// Write validates the dataset against its schema and publishes it
// atomically: marshal, write to a temp file next to the destination, then
// rename into place. A previously published artifact is never touched by a
// failed run.
func (e *Emitter) Write(dataset *models.Dataset) error {
	if err := Validate(dataset); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)

	if e.output.PrettyPrint {
		data, err = json.MarshalIndent(dataset, "", "  ")
	} else {
		data, err = json.Marshal(dataset)
	}

	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	data = append(data, '\n')

	dir := filepath.Dir(e.output.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".pavotes-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("close temp file: %w", err)
	}

	if e.output.CreateBackup {
		if err := e.backupExisting(); err != nil {
			_ = os.Remove(tmpPath)

			return err
		}
	}

	if err := os.Rename(tmpPath, e.output.Path); err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("publish dataset: %w", err)
	}

	e.log.Info("dataset published", "path", e.output.Path, "bytes", len(data))

	return nil
}

func (e *Emitter) backupExisting() error {
	existing, err := os.ReadFile(e.output.Path)
	if os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("read existing dataset for backup: %w", err)
	}

	backupPath := e.output.Path + ".bak"
	if err := os.WriteFile(backupPath, existing, 0644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	e.log.Info("previous dataset backed up", "path", backupPath)

	return nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
