package resultsink

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrisliatas/combobooks/internal/logger"
)

func readResults(t *testing.T, path string) []any {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading result file: %v", err)
	}
	var out []any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decoding result file: %v", err)
	}
	return out
}

func TestAddBelowThresholdDoesNotFlush(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "results.json", 3, logger.Nop())

	if err := s.Add("one"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "results.json")); !os.IsNotExist(err) {
		t.Error("file should not exist before the batch threshold is reached")
	}
}

func TestAddFlushesAtThreshold(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "results.json", 2, logger.Nop())

	if err := s.Add("one"); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("two"); err != nil {
		t.Fatal(err)
	}

	got := readResults(t, filepath.Join(dir, "results.json"))
	if len(got) != 2 {
		t.Fatalf("result file has %d entries after reaching threshold, want 2", len(got))
	}
}

func TestFlushWritesPartialBatch(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "results.json", 10, logger.Nop())

	if err := s.Add("only-one"); err != nil {
		t.Fatal(err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	got := readResults(t, filepath.Join(dir, "results.json"))
	if len(got) != 1 {
		t.Fatalf("Flush wrote %d entries, want 1", len(got))
	}
}

func TestFlushWithNothingPendingIsNoop(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "results.json", 10, logger.Nop())

	if err := s.Flush(); err != nil {
		t.Fatalf("Flush with nothing pending should be a no-op, got error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "results.json")); !os.IsNotExist(err) {
		t.Error("Flush with nothing pending should not create a file")
	}
}

func TestFlushAppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	if err := os.WriteFile(path, []byte(`["previous"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(dir, "results.json", 1, logger.Nop())
	if err := s.Add("new"); err != nil {
		t.Fatal(err)
	}

	got := readResults(t, path)
	if len(got) != 2 {
		t.Fatalf("expected existing + new results merged, got %d entries: %v", len(got), got)
	}
}

func TestFlushToleratesCorruptExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	if err := os.WriteFile(path, []byte(`not valid json`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(dir, "results.json", 1, logger.Nop())
	if err := s.Add("new"); err != nil {
		t.Fatalf("Add should overwrite a corrupt existing file rather than fail: %v", err)
	}

	got := readResults(t, path)
	if len(got) != 1 || got[0] != "new" {
		t.Fatalf("expected corrupt file to be overwritten with just the new result, got %v", got)
	}
}

func TestFlushCreatesResultsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	s := New(dir, "results.json", 1, logger.Nop())

	if err := s.Add("x"); err != nil {
		t.Fatalf("Add should create missing intermediate directories: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "results.json")); err != nil {
		t.Errorf("expected results file to exist: %v", err)
	}
}
