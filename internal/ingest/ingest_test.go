package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanPages(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "page_002.png"))
	touch(t, filepath.Join(root, "page_001.jpg"))
	touch(t, filepath.Join(root, "nested", "page_003.tiff"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, ".hidden", "page_004.png"))
	touch(t, filepath.Join(root, ".page_005.png"))

	pages, stats, err := ScanPages(root)
	if err != nil {
		t.Fatalf("ScanPages: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d: %v", len(pages), pages)
	}
	// Sorted order, hidden and non-image entries excluded.
	for i := 1; i < len(pages); i++ {
		if pages[i-1] >= pages[i] {
			t.Fatalf("pages not sorted: %v", pages)
		}
	}
	if stats.Matched != 3 {
		t.Fatalf("matched = %d, want 3", stats.Matched)
	}
}

func TestScanPagesEmptyRoot(t *testing.T) {
	if _, _, err := ScanPages("  "); err == nil {
		t.Fatal("expected error for blank root")
	}
}

func TestScanPagesMissingRoot(t *testing.T) {
	_, _, err := ScanPages(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}
