// Package fetch downloads raw source CSVs with config-driven retry logic.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pavotes/internal/config"
	"pavotes/internal/logger"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

const userAgent = "pavotes-fetch/1.0 (+election results pipeline)"

// Downloader fetches source files over HTTP with retry and backoff.
type Downloader struct {
	client       *http.Client
	retryPolicy  config.RetryPolicy
	backupBases  []string
	bufferSizeKb int
	log          *logger.Logger
}

// New creates a downloader from the fetch configuration.
func New(cfg config.FetchConfig, log *logger.Logger) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: cfg.Retry.GetTimeout(),
		},
		retryPolicy:  cfg.Retry,
		backupBases:  cfg.BackupURLs,
		bufferSizeKb: cfg.BufferSizeKb,
		log:          log,
	}
}

// Download fetches base+file and writes it to dest, creating intermediate
// directories. Backup base URLs are tried in order after the primary
// exhausts its retries.
func (d *Downloader) Download(base, file, dest string) error {
	bases := append([]string{base}, d.backupBases...)

	var lastErr error

	for _, b := range bases {
		url := joinURL(b, file)

		body, err := d.get(url)
		if err != nil {
			lastErr = err

			d.log.Warn("download failed, trying next source", "url", url, "error", err)

			continue
		}

		if err := writeFile(dest, body); err != nil {
			return err
		}

		d.log.Info("downloaded source file", "url", url, "dest", dest, "bytes", len(body))

		return nil
	}

	return fmt.Errorf("all sources failed for %s: %w", file, lastErr)
}

// get fetches one URL with the configured retry policy.
func (d *Downloader) get(url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= d.retryPolicy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if delay := d.retryPolicy.GetRetryDelay(attempt); delay > 0 {
				time.Sleep(delay)
			}
		}

		req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.8")

		resp, err := d.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, d.retryPolicy.MaxAttempts, err)

			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)

			if !isRetryableStatus(resp.StatusCode) {
				return nil, lastErr
			}

			continue
		}

		limit := int64(d.bufferSizeKb) * 1024

		body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
		_ = resp.Body.Close()

		if err != nil {
			lastErr = fmt.Errorf("read response body: %w", err)

			continue
		}

		return body, nil
	}

	return nil, lastErr
}

func writeFile(dest string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	if err := os.WriteFile(dest, body, 0644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}

	return nil
}

func joinURL(base, file string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(file, "/")
}

// isRetryableStatus reports whether a status indicates a temporary failure.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests,
		http.StatusRequestTimeout:
		return true
	}

	return false
}
