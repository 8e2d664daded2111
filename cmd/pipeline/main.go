// Package main provides the one-shot ETL command: it reads the configured
// raw election CSVs, aggregates county results, and publishes the dataset
// JSON consumed by the map display layer.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"pavotes/internal/config"
	"pavotes/internal/logger"
	"pavotes/internal/pipeline"
	"pavotes/internal/report"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to pipeline configuration")
	inputDir := flag.String("input", "", "Override input directory for raw CSV files")
	outputPath := flag.String("output", "", "Override output path for the dataset JSON")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *inputDir != "" {
		cfg.Pipeline.Input.BasePath = *inputDir
	}

	if *outputPath != "" {
		cfg.Pipeline.Output.Path = *outputPath
	}

	log := logger.New(cfg.Pipeline.Logging.Level)

	log.Info("starting election results pipeline",
		"elections", len(cfg.GetEnabledElections()),
		"input", cfg.Pipeline.Input.BasePath,
		"output", cfg.Pipeline.Output.Path)

	startTime := time.Now()

	dataset, summary, err := pipeline.New(cfg, log).Run()
	if err != nil {
		log.Error("pipeline failed, previous dataset left untouched", "error", err)
		os.Exit(1)
	}

	log.Info("pipeline complete",
		"years", len(dataset.Metadata.Years),
		"contests", len(dataset.Metadata.Contests),
		"counties", dataset.Metadata.CountiesCount,
		"duration", time.Since(startTime))

	fmt.Println()
	fmt.Print(report.Summary(summary))
	fmt.Println()
	fmt.Printf("Dataset: %s\n", cfg.Pipeline.Output.Path)
	fmt.Printf("Source fingerprint: %s\n", dataset.Metadata.SourceHash)

	if dropped := summary.Dropped(); dropped > 0 {
		fmt.Printf("Dropped %d row(s)/contest(s); see warnings above.\n", dropped)
	}
}
