package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("expected exists=false for missing file")
	}
	if path == "" {
		t.Fatalf("expected resolved path")
	}
	if cfg.Convert.Workers != defaultConvertWorkers {
		t.Fatalf("workers = %d, want default %d", cfg.Convert.Workers, defaultConvertWorkers)
	}
	if cfg.TMDB.BaseURL != defaultTMDBBaseURL {
		t.Fatalf("tmdb base url = %q", cfg.TMDB.BaseURL)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
library_dir = "` + dir + `/media"

[convert]
workers = 2
hw_accel_type = "NVENC"
extensions = ["MKV", ".mp4"]

[tmdb]
base_url = "https://example.test/api/"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatalf("expected exists=true")
	}
	if cfg.Convert.HWAccelType != "nvenc" {
		t.Fatalf("hw_accel_type = %q", cfg.Convert.HWAccelType)
	}
	if len(cfg.Convert.Extensions) != 2 || cfg.Convert.Extensions[0] != ".mkv" {
		t.Fatalf("extensions = %v", cfg.Convert.Extensions)
	}
	if cfg.TMDB.BaseURL != "https://example.test/api" {
		t.Fatalf("base url not trimmed: %q", cfg.TMDB.BaseURL)
	}
	if !filepath.IsAbs(cfg.Paths.LibraryDir) {
		t.Fatalf("library dir not absolute: %q", cfg.Paths.LibraryDir)
	}
}

func TestLoadRejectsBadHWAccelType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[convert]\nhw_accel_type = \"vulkan\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "hw_accel_type") {
		t.Fatalf("expected hw_accel_type error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRACKSMITH_WORKERS", "7")
	t.Setenv("TRACKSMITH_LANGUAGES", "eng, spa")
	t.Setenv("TMDB_API_KEY", "from-env")

	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Convert.Workers != 7 {
		t.Fatalf("workers = %d, want 7", cfg.Convert.Workers)
	}
	if len(cfg.Convert.Languages) != 2 || cfg.Convert.Languages[1] != "spa" {
		t.Fatalf("languages = %v", cfg.Convert.Languages)
	}
	if cfg.TMDB.APIKey != "from-env" {
		t.Fatalf("api key = %q", cfg.TMDB.APIKey)
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := ExpandPath("~/media")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "media") {
		t.Fatalf("ExpandPath(~/media) = %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[convert]") {
		t.Fatalf("sample missing convert section")
	}

	// The sample itself must be loadable.
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample does not load: %v", err)
	}
}
