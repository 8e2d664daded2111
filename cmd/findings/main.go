// Package main provides the findings command: it reads an emitted dataset
// and renders a markdown research report for one contest.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"pavotes/internal/models"
	"pavotes/internal/report"
)

func main() {
	datasetPath := flag.String("dataset", "", "Path to the emitted dataset JSON")
	contest := flag.String("contest", "president", "Contest category to analyze")
	outputPath := flag.String("output", "", "Write the report to this file instead of stdout")
	topSwings := flag.Int("top", 10, "Number of counties in the biggest-swings ranking")

	flag.Parse()

	if *datasetPath == "" {
		fmt.Println("Usage: findings -dataset <results.json> [-contest president] [-output report.md]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(*datasetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read dataset: %v\n", err)
		os.Exit(1)
	}

	var dataset models.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse dataset: %v\n", err)
		os.Exit(1)
	}

	found := false

	for _, category := range dataset.Metadata.Contests {
		if category == *contest {
			found = true

			break
		}
	}

	if !found {
		fmt.Fprintf(os.Stderr, "contest %q not in dataset (available: %v)\n", *contest, dataset.Metadata.Contests)
		os.Exit(1)
	}

	rendered := report.Findings(&dataset, *contest, *topSwings)

	if *outputPath == "" {
		fmt.Print(rendered)

		return
	}

	if err := os.WriteFile(*outputPath, []byte(rendered), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Report written to %s\n", *outputPath)
}
