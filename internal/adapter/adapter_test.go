package adapter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/ingest"
)

const sampleCatalog = `[
	{"id": 1, "title": "Akira", "url": "?path=/Akira"},
	{"id": 2, "title": "Monster", "genres": [{"name": "History"}]},
	"garbage"
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
source:
  path: https://example.test/list.json
  timeout: 5s
featured:
  strategy: LAST
feed:
  page_size: 0
ui:
  grid_columns: 6
`)

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Source.Path != "https://example.test/list.json" {
		t.Errorf("Source.Path = %q", cfg.Source.Path)
	}
	if cfg.Source.Timeout != 5*time.Second {
		t.Errorf("Source.Timeout = %v", cfg.Source.Timeout)
	}
	if cfg.Featured.Strategy != string(ingest.StrategyLast) {
		t.Errorf("Featured.Strategy = %q", cfg.Featured.Strategy)
	}
	if cfg.Feed.PageSize != 24 {
		t.Errorf("non-positive page size should fall back to default, got %d", cfg.Feed.PageSize)
	}
	if cfg.UI.GridColumns != 6 {
		t.Errorf("UI.GridColumns = %d", cfg.UI.GridColumns)
	}
	if cfg.Home.RandomCount != 23 || cfg.Featured.Marker != ingest.DefaultMarker {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfigFile_EnvOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "source:\n  path: from-file.json\n")
	t.Setenv("ANIDEX_SOURCE_PATH", "from-env.json")
	t.Setenv("ANIDEX_HOME_RANDOM_COUNT", "5")

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Source.Path != "from-env.json" {
		t.Errorf("Source.Path = %q, want env override", cfg.Source.Path)
	}
	if cfg.Home.RandomCount != 5 {
		t.Errorf("Home.RandomCount = %d, want 5", cfg.Home.RandomCount)
	}
}

func TestSaveConfigFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Source.Path = "catalog.json"
	cfg.Cloud.FallbackBase = "https://mirror.test"

	if err := SaveConfigFile(cfg, path); err != nil {
		t.Fatalf("SaveConfigFile: %v", err)
	}
	got, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if got.Source.Path != "catalog.json" || got.Cloud.FallbackBase != "https://mirror.test" {
		t.Errorf("round trip lost values: %+v", got)
	}
	if got.Source.Timeout != cfg.Source.Timeout {
		t.Errorf("Source.Timeout = %v, want %v", got.Source.Timeout, cfg.Source.Timeout)
	}
}

func TestLoader_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "list.json", sampleCatalog)
	l := NewLoader(path, time.Second, ingest.Options{}, NullLogger())

	col, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(col.Entries) != 2 || col.Skipped != 1 {
		t.Fatalf("entries = %d, skipped = %d", len(col.Entries), col.Skipped)
	}
	if col.Featured == nil || col.Featured.Title != "Monster" {
		t.Errorf("Featured = %+v, want Monster", col.Featured)
	}
}

func TestLoader_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(sampleCatalog))
		case "/bad.json":
			w.Write([]byte(`{"A": [`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	col, err := NewLoader(srv.URL+"/ok.json", time.Second, ingest.Options{}, nil).Load(context.Background())
	if err != nil || len(col.Entries) != 2 {
		t.Fatalf("remote load = %d entries, err %v", len(col.Entries), err)
	}

	tests := []struct {
		name       string
		source     string
		wantStatus int
	}{
		{"server error", srv.URL + "/missing", http.StatusInternalServerError},
		{"malformed json", srv.URL + "/bad.json", 0},
		{"missing file", filepath.Join(t.TempDir(), "nope.json"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(tt.source, time.Second, ingest.Options{}, nil).Load(context.Background())
			if !errors.Is(err, domain.ErrLoadFailure) {
				t.Fatalf("err = %v, want ErrLoadFailure", err)
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("err is not a *LoadError: %T", err)
			}
			if le.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", le.Status, tt.wantStatus)
			}
		})
	}
}

func TestOpener(t *testing.T) {
	var ran []string
	capture := func(cmd *exec.Cmd) error {
		ran = cmd.Args
		return nil
	}

	o := NewOpener("", nil, NullLogger())
	o.start = capture
	o.goos = "linux"
	if err := o.Open("https://example.test/a"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(ran) != 2 || ran[0] != "xdg-open" || ran[1] != "https://example.test/a" {
		t.Errorf("system opener args = %v", ran)
	}

	o = NewOpener("firefox", []string{"--new-tab"}, NullLogger())
	o.start = capture
	if err := o.Open("https://example.test/b"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(ran) != 3 || ran[0] != "firefox" || ran[1] != "--new-tab" || ran[2] != "https://example.test/b" {
		t.Errorf("configured opener args = %v", ran)
	}

	if err := o.Open(domain.UnavailableURL); err == nil {
		t.Errorf("opening the unavailable sentinel should fail")
	}
}

func TestSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "anidex.log")
	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "debug"})
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}
	logger.Debug("hello", "count", 1)
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		t.Fatalf("log file empty: %v", err)
	}

	if _, _, err := SetupLogger(&LoggingConfig{}); err != nil {
		t.Errorf("empty file should discard, got %v", err)
	}

	levels := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range levels {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
