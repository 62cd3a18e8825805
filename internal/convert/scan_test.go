package convert

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanFindsVideoFilesSorted(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(rel string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("b/episode.mkv")
	mustWrite("a/movie.mp4")
	mustWrite("a/notes.txt")
	mustWrite("a/UPPER.MKV")

	files, err := Scan(dir, []string{".mp4", ".mkv"})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a", "UPPER.MKV"),
		filepath.Join(dir, "a", "movie.mp4"),
		filepath.Join(dir, "b", "episode.mkv"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("got %v, want %v", files, want)
		}
	}
}

func TestScanMissingRoot(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"), []string{".mkv"})
	if err != nil {
		t.Fatalf("missing root should not error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
}
