package subtitles

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"tracksmith/internal/config"
	"tracksmith/internal/logging"
)

func TestExtensionForCodec(t *testing.T) {
	cases := map[string]string{
		"subrip":            ".srt",
		"SubRip":            ".srt",
		"mov_text":          ".srt",
		"ass":               ".ass",
		"webvtt":            ".vtt",
		"dvd_subtitle":      ".sub",
		"hdmv_pgs_subtitle": ".sup",
		"something_odd":     ".sup",
		"":                  ".sup",
	}
	for codec, want := range cases {
		if got := extensionForCodec(codec); got != want {
			t.Errorf("extensionForCodec(%q) = %q, want %q", codec, got, want)
		}
	}
}

func writeStub(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
}

func TestExtractWritesEachStream(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub tests require a POSIX shell")
	}
	binDir := t.TempDir()
	writeStub(t, binDir, "ffprobe", `#!/bin/sh
echo '{"streams":[{"index":2,"codec_name":"subrip","tags":{"language":"eng"}},{"index":3,"codec_name":"hdmv_pgs_subtitle","tags":{"language":"und"}}]}'
`)
	writeStub(t, binDir, "ffmpeg", `#!/bin/sh
for a in "$@"; do out="$a"; done
echo sub > "$out"
exit 0
`)
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	outputDir := filepath.Join(t.TempDir(), "subs")
	svc := NewService(&config.Config{}, logging.NewNop())
	extracted, err := svc.Extract(context.Background(), "movie.mkv", outputDir)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(extracted) != 2 {
		t.Fatalf("expected 2 extractions, got %#v", extracted)
	}

	wantNames := []string{"subtitle_2_eng.srt", "subtitle_3_unknown.sup"}
	for i, want := range wantNames {
		if filepath.Base(extracted[i].Output) != want {
			t.Errorf("output %d = %q, want %q", i, extracted[i].Output, want)
		}
		if _, err := os.Stat(extracted[i].Output); err != nil {
			t.Errorf("output file missing: %v", err)
		}
	}
}

func TestExtractNoStreams(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub tests require a POSIX shell")
	}
	binDir := t.TempDir()
	writeStub(t, binDir, "ffprobe", "#!/bin/sh\necho '{\"streams\":[]}'\n")
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	svc := NewService(&config.Config{}, logging.NewNop())
	extracted, err := svc.Extract(context.Background(), "movie.mkv", t.TempDir())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if extracted != nil {
		t.Fatalf("expected nil, got %#v", extracted)
	}
}

func TestExtractContinuesPastFailedStream(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub tests require a POSIX shell")
	}
	binDir := t.TempDir()
	writeStub(t, binDir, "ffprobe", `#!/bin/sh
echo '{"streams":[{"index":2,"codec_name":"subrip","tags":{"language":"eng"}},{"index":3,"codec_name":"subrip","tags":{"language":"por"}}]}'
`)
	// Fails on stream 2, succeeds on stream 3.
	writeStub(t, binDir, "ffmpeg", `#!/bin/sh
for a in "$@"; do out="$a"; done
case "$*" in
*"0:2"*) echo "extract failed" >&2; exit 1 ;;
esac
echo sub > "$out"
exit 0
`)
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	svc := NewService(&config.Config{}, logging.NewNop())
	extracted, err := svc.Extract(context.Background(), "movie.mkv", t.TempDir())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(extracted) != 1 || extracted[0].Index != 3 {
		t.Fatalf("expected only stream 3 extracted, got %#v", extracted)
	}
}
