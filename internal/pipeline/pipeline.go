// Package pipeline runs the full ETL: normalize each configured source
// file, aggregate to county totals, derive margins and categories, and
// emit the dataset document.
package pipeline

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"pavotes/internal/aggregator"
	"pavotes/internal/config"
	"pavotes/internal/emitter"
	"pavotes/internal/logger"
	"pavotes/internal/models"
	"pavotes/internal/normalizer"
	"pavotes/pkg/fingerprint"
)

// Pipeline wires the stages together for one run.
type Pipeline struct {
	cfg  *config.Config
	log  *logger.Logger
	norm *normalizer.Normalizer
	agg  *aggregator.Aggregator
	emit *emitter.Emitter
}

// New creates a pipeline from validated configuration.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:  cfg,
		log:  log,
		norm: normalizer.New(log),
		agg:  aggregator.New(),
		emit: emitter.New(log, cfg.Pipeline.Output),
	}
}

// fileResult carries one source file's aggregated contests and its local
// accumulator back to the merge step.
type fileResult struct {
	index    int
	year     int
	contests []*models.CountyContestResult
	summary  models.RunSummary
	err      error
}

// Run executes the pipeline once and publishes the dataset. The returned
// summary counts every non-fatal exclusion; a non-nil error means nothing
// was published and any previous artifact is untouched.
func (p *Pipeline) Run() (*models.Dataset, models.RunSummary, error) {
	var summary models.RunSummary

	elections, paths := p.availableSources()
	if len(elections) == 0 {
		return nil, summary, fmt.Errorf("no readable source files among %d enabled elections", len(p.cfg.GetEnabledElections()))
	}

	sourceHash, err := fingerprint.Files(paths)
	if err != nil {
		return nil, summary, fmt.Errorf("fingerprint sources: %w", err)
	}

	results, err := p.processFiles(elections, paths)
	if err != nil {
		return nil, summary, err
	}

	// Merge in configuration order so later profiles for the same year
	// override earlier ones deterministically.
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	byYear := make(map[int][]*models.CountyContestResult)

	for _, res := range results {
		byYear[res.year] = append(byYear[res.year], res.contests...)
		summary.Merge(res.summary)
	}

	dataset := p.emit.BuildDataset(byYear, sourceHash, &summary)

	if err := p.emit.Write(dataset); err != nil {
		return nil, summary, err
	}

	return dataset, summary, nil
}

// availableSources filters enabled elections down to those whose files
// exist, warning about the rest so gaps in coverage stay visible.
func (p *Pipeline) availableSources() ([]config.ElectionConfig, []string) {
	var (
		elections []config.ElectionConfig
		paths     []string
	)

	for _, el := range p.cfg.GetEnabledElections() {
		path := p.cfg.SourcePath(el)

		if _, err := os.Stat(path); err != nil {
			p.log.Warn("source file unavailable, skipping election", "year", el.Year, "path", path)

			continue
		}

		elections = append(elections, el)
		paths = append(paths, path)
	}

	return elections, paths
}

// processFiles normalizes and aggregates each source file. Files are
// independent, so up to max_parallel_files run concurrently; results are
// merged only after every worker finishes.
func (p *Pipeline) processFiles(elections []config.ElectionConfig, paths []string) ([]fileResult, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []fileResult
		sem     = make(chan struct{}, p.cfg.Pipeline.Concurrency.MaxParallelFiles)
	)

	for i, el := range elections {
		wg.Add(1)

		go func(index int, el config.ElectionConfig, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res := p.processFile(index, el, path)

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}(i, el, paths[i])
	}

	wg.Wait()

	for _, res := range results {
		if res.err != nil {
			return nil, res.err
		}
	}

	return results, nil
}

func (p *Pipeline) processFile(index int, el config.ElectionConfig, path string) fileResult {
	res := fileResult{index: index, year: el.Year}

	p.log.Info("processing source file",
		"year", el.Year, "granularity", el.Granularity, "layout", el.Layout, "path", path)

	rows, err := p.norm.NormalizeFile(el, path, &res.summary)
	if err != nil {
		res.err = err

		return res
	}

	res.contests = p.agg.Aggregate(el.Year, rows)

	p.log.Info("source file aggregated",
		"year", el.Year,
		"rows_kept", res.summary.RowsKept,
		"contests", len(res.contests),
		"dropped", res.summary.Dropped())

	return res
}
