package fingerprint

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	return path
}

func TestFiles_Stable(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "a.csv", "county,votes\nAdams,100\n")
	b := writeFixture(t, dir, "b.csv", "county,votes\nBerks,200\n")

	first, err := Files([]string{a, b})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}

	if len(first) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(first))
	}

	second, err := Files([]string{a, b})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}

	if first != second {
		t.Error("Same inputs produced different fingerprints")
	}
}

func TestFiles_OrderIndependent(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "a.csv", "first")
	b := writeFixture(t, dir, "b.csv", "second")

	forward, err := Files([]string{a, b})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}

	backward, err := Files([]string{b, a})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}

	if forward != backward {
		t.Error("Fingerprint depends on path order")
	}
}

func TestFiles_ContentSensitive(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "a.csv", "original")

	before, err := Files([]string{a})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}

	writeFixture(t, dir, "a.csv", "changed")

	after, err := Files([]string{a})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}

	if before == after {
		t.Error("Changed content produced the same fingerprint")
	}
}

func TestFiles_NoInputs(t *testing.T) {
	_, err := Files(nil)
	if !errors.Is(err, ErrNoInputs) {
		t.Errorf("Expected ErrNoInputs, got %v", err)
	}
}

func TestFiles_MissingFile(t *testing.T) {
	_, err := Files([]string{"/nonexistent/file.csv"})
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "a.csv", "payload")

	digest, err := Files([]string{a})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}

	ok, err := Verify([]string{a}, digest)
	if err != nil || !ok {
		t.Errorf("Verify = %v, %v, want match", ok, err)
	}

	ok, err = Verify([]string{a}, "deadbeef")
	if err != nil || ok {
		t.Errorf("Verify with wrong digest = %v, %v, want mismatch", ok, err)
	}
}
