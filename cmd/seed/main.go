// Package main provides the seed command: it loads an emitted dataset into
// PostgreSQL so results can be queried alongside other research tables.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"pavotes/internal/logger"
	"pavotes/internal/models"
	"pavotes/internal/storage"
)

func main() {
	datasetPath := flag.String("dataset", "data/output/results.json", "Path to the emitted dataset JSON")
	envFile := flag.String("env", ".env", "Path to the environment file with database credentials")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")

	flag.Parse()

	log := logger.New(*logLevel)

	if err := godotenv.Load(*envFile); err != nil {
		log.Debug("no environment file loaded", "path", *envFile, "error", err)
	}

	dsn := buildDSN()

	data, err := os.ReadFile(*datasetPath)
	if err != nil {
		log.Error("failed to read dataset", "path", *datasetPath, "error", err)
		os.Exit(1)
	}

	var dataset models.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		log.Error("failed to parse dataset", "error", err)
		os.Exit(1)
	}

	writer, err := storage.NewPostgresWriter(dsn, log)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer writer.Close()

	if err := writer.WriteDataset(&dataset); err != nil {
		log.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}

	log.Info("seed complete",
		"years", len(dataset.Metadata.Years),
		"contests", len(dataset.Metadata.Contests))
}

func buildDSN() string {
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "")
	dbname := getEnv("POSTGRES_DB", "pavotes")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
