package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tracksmith/internal/config"
	"tracksmith/internal/journal"
	"tracksmith/internal/logging"
)

// ffprobeStub answers the four probe queries for a file carrying one DTS
// 5.1 English track, so plans come out as encodes.
const ffprobeStub = `#!/bin/sh
case "$*" in
*"stream=index,codec_name,bit_rate,channels"*)
  echo '{"streams":[{"index":1,"codec_name":"dts","bit_rate":"1536000","channels":6,"tags":{"language":"eng"}}]}'
  ;;
*"stream=index,codec_name:stream_tags=language"*)
  echo '{"streams":[]}'
  ;;
*"format=duration"*)
  echo '{"format":{"duration":"120.0"}}'
  ;;
*"stream=r_frame_rate"*)
  echo '{"streams":[{"r_frame_rate":"24000/1001"}]}'
  ;;
*"stream=bit_rate"*)
  echo '{"streams":[{"bit_rate":"5000000"}]}'
  ;;
*)
  echo '{}'
  ;;
esac
`

const ffmpegStub = `#!/bin/sh
for a in "$@"; do out="$a"; done
echo converted > "$out"
exit 0
`

func testConfig(t *testing.T, library string) *config.Config {
	t.Helper()
	return &config.Config{
		Paths: config.Paths{
			LibraryDir: library,
			LogDir:     t.TempDir(),
		},
		Convert: config.Convert{
			Workers:    1,
			Extensions: []string{".mkv", ".mp4"},
		},
	}
}

func stubPath(t *testing.T, stubs map[string]string) {
	t.Helper()
	binDir := t.TempDir()
	for name, body := range stubs {
		writeStub(t, binDir, name, body)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestServiceRunConvertsFile(t *testing.T) {
	skipWithoutShell(t)
	stubPath(t, map[string]string{"ffprobe": ffprobeStub, "ffmpeg": ffmpegStub})

	library := t.TempDir()
	original := filepath.Join(library, "movie.mkv")
	if err := os.WriteFile(original, []byte("dts original"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t, library)
	ctx := context.Background()
	store, err := journal.Open(ctx, cfg.Paths.LogDir)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer store.Close()

	svc := NewService(cfg, logging.NewNop(), store)
	summary, err := svc.Run(ctx, library, false)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Scanned != 1 || summary.Converted != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %#v", summary)
	}

	data, err := os.ReadFile(original)
	if err != nil {
		t.Fatalf("read converted file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "converted" {
		t.Fatalf("original not replaced by converted output: %q", data)
	}

	matches, _ := filepath.Glob(filepath.Join(library, "movie_backup_*.mkv"))
	if len(matches) != 1 {
		t.Fatalf("expected one backup file, got %v", matches)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("journal recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one journal row, got %d", len(entries))
	}
	row := entries[0]
	if row.Outcome != journal.OutcomeConverted || row.Codec != "eac3" || row.BitrateKbps != 768 {
		t.Fatalf("unexpected journal row: %#v", row)
	}
	if row.SessionID == "" || row.BackupPath == "" {
		t.Fatalf("session or backup missing from journal row: %#v", row)
	}
}

func TestServiceDryRunTouchesNothing(t *testing.T) {
	skipWithoutShell(t)
	stubPath(t, map[string]string{"ffprobe": ffprobeStub, "ffmpeg": "#!/bin/sh\nexit 1\n"})

	library := t.TempDir()
	original := filepath.Join(library, "movie.mkv")
	if err := os.WriteFile(original, []byte("dts original"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(testConfig(t, library), logging.NewNop(), nil)
	summary, err := svc.Run(context.Background(), library, true)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Scanned != 1 || summary.Skipped != 1 || summary.Converted != 0 {
		t.Fatalf("unexpected summary: %#v", summary)
	}

	data, err := os.ReadFile(original)
	if err != nil || string(data) != "dts original" {
		t.Fatalf("dry run modified the library: %q %v", data, err)
	}
}

func TestServiceFailedConversionLeavesOriginal(t *testing.T) {
	skipWithoutShell(t)
	stubPath(t, map[string]string{"ffprobe": ffprobeStub, "ffmpeg": "#!/bin/sh\necho boom >&2\nexit 1\n"})

	library := t.TempDir()
	original := filepath.Join(library, "movie.mkv")
	if err := os.WriteFile(original, []byte("dts original"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(testConfig(t, library), logging.NewNop(), nil)
	summary, err := svc.Run(context.Background(), library, false)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Failed != 1 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	data, err := os.ReadFile(original)
	if err != nil || string(data) != "dts original" {
		t.Fatalf("failed conversion must leave original intact: %q %v", data, err)
	}
	if matches, _ := filepath.Glob(filepath.Join(library, "*_converted.mkv")); len(matches) != 0 {
		t.Fatalf("intermediate output not cleaned up: %v", matches)
	}
}
