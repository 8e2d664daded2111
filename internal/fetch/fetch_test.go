package fetch

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"pavotes/internal/config"
	"pavotes/internal/logger"
)

func testFetchConfig() config.FetchConfig {
	return config.FetchConfig{
		BufferSizeKb: 1024,
		Retry: config.RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    1,
			MaxDelayMs:        5,
			BackoffMultiplier: 2.0,
			TimeoutSec:        5,
		},
	}
}

func testDownloader(cfg config.FetchConfig) *Downloader {
	return New(cfg, logger.NewWithWriter("error", io.Discard))
}

func TestDownload_Success(t *testing.T) {
	const payload = "county,office,votes\nAdams,President,100\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2020/county.csv" {
			http.NotFound(w, r)

			return
		}

		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "sources", "2020", "county.csv")

	d := testDownloader(testFetchConfig())

	if err := d.Download(server.URL, "2020/county.csv", dest); err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}

	if string(data) != payload {
		t.Errorf("Downloaded content = %q, want %q", data, payload)
	}
}

func TestDownload_RetriesTemporaryFailure(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++

		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "file.csv")

	d := testDownloader(testFetchConfig())

	if err := d.Download(server.URL, "file.csv", dest); err != nil {
		t.Fatalf("Download failed after retries: %v", err)
	}

	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestDownload_NotFoundIsNotRetried(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.NotFound(w, r)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "file.csv")

	d := testDownloader(testFetchConfig())

	err := d.Download(server.URL, "file.csv", dest)
	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Fatalf("Expected ErrUnexpectedStatusCode, got %v", err)
	}

	if attempts != 1 {
		t.Errorf("Expected 1 attempt for 404, got %d", attempts)
	}

	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("Failed download should not create the destination file")
	}
}

func TestDownload_BackupSourceUsed(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer primary.Close()

	backup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("from backup"))
	}))
	defer backup.Close()

	cfg := testFetchConfig()
	cfg.BackupURLs = []string{backup.URL}

	dest := filepath.Join(t.TempDir(), "file.csv")

	d := testDownloader(cfg)

	if err := d.Download(primary.URL, "file.csv", dest); err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}

	if string(data) != "from backup" {
		t.Errorf("Downloaded content = %q, want backup payload", data)
	}
}

func TestJoinURL(t *testing.T) {
	if got := joinURL("http://example.com/base/", "/2020/file.csv"); got != "http://example.com/base/2020/file.csv" {
		t.Errorf("joinURL = %q", got)
	}

	if got := joinURL("http://example.com/base", "2020/file.csv"); got != "http://example.com/base/2020/file.csv" {
		t.Errorf("joinURL = %q", got)
	}
}
