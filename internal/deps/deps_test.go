package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func writeStub(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "present", "#!/bin/sh\necho \"present version 1.2.3\"\nexit 0\n")

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "   "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Version != "present version 1.2.3" {
		t.Fatalf("unexpected version: %q", results[0].Version)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("blank command should be reported unconfigured: %#v", results[2])
	}
}

func TestCheckBinariesVersionFailureStillAvailable(t *testing.T) {
	binDir := t.TempDir()
	grumpy := writeStub(t, binDir, "grumpy", "#!/bin/sh\nexit 1\n")

	results := CheckBinaries([]Requirement{{Name: "Grumpy", Command: grumpy}})
	if !results[0].Available {
		t.Fatalf("binary exists; must be available despite version probe failure")
	}
	if results[0].Version != "" {
		t.Fatalf("expected empty version, got %q", results[0].Version)
	}
}
