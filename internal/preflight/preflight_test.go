package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Library directory", dir)
	if !result.Passed {
		t.Fatalf("expected tempdir to pass: %#v", result)
	}

	missing := CheckDirectoryAccess("Library directory", dir+"/nope")
	if missing.Passed {
		t.Fatalf("missing directory should fail")
	}
	if !strings.Contains(missing.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %q", missing.Detail)
	}
}

func TestCheckFreeSpace(t *testing.T) {
	result := CheckFreeSpace("Free space", t.TempDir())
	if result.Detail == "" {
		t.Fatalf("expected detail with free space figure")
	}
	// Pass/fail depends on the machine; statfs errors are the only hard failure.
	if strings.Contains(result.Detail, "statfs") {
		t.Fatalf("statfs failed: %q", result.Detail)
	}
}

func TestCheckTMDB(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/configuration" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("api_key") != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ok := CheckTMDB(context.Background(), server.URL, "good")
	if !ok.Passed {
		t.Fatalf("expected pass: %#v", ok)
	}

	bad := CheckTMDB(context.Background(), server.URL, "bad")
	if bad.Passed || !strings.Contains(bad.Detail, "auth failed") {
		t.Fatalf("expected auth failure: %#v", bad)
	}

	missing := CheckTMDB(context.Background(), server.URL, "")
	if missing.Passed {
		t.Fatalf("missing key must fail")
	}
}
