// Package main provides the source downloader: it mirrors the raw election
// CSVs listed in the configuration into the pipeline's input directory.
package main

import (
	"flag"
	"fmt"
	"os"

	"pavotes/internal/config"
	"pavotes/internal/fetch"
	"pavotes/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to pipeline configuration")
	force := flag.Bool("force", false, "Re-download files that already exist")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Pipeline.Logging.Level)

	if cfg.Fetch.BaseURL == "" {
		log.Error("fetch.base_url is not configured")
		os.Exit(1)
	}

	downloader := fetch.New(cfg.Fetch, log)

	fetched := 0
	skipped := 0
	failed := 0

	for _, el := range cfg.GetEnabledElections() {
		dest := cfg.SourcePath(el)

		if !*force {
			if _, err := os.Stat(dest); err == nil {
				log.Debug("source already present", "year", el.Year, "path", dest)

				skipped++

				continue
			}
		}

		if err := downloader.Download(cfg.Fetch.BaseURL, el.File, dest); err != nil {
			log.Error("failed to fetch source", "year", el.Year, "file", el.File, "error", err)

			failed++

			continue
		}

		fetched++
	}

	log.Info("fetch complete", "fetched", fetched, "skipped", skipped, "failed", failed)

	if failed > 0 {
		os.Exit(1)
	}
}
