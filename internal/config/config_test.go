package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"LEDGER_DB_PATH", "LEDGER_EXPORT_DIR", "LEDGER_DEFAULT_ACCOUNT", "LEDGER_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.DBPath != "./data/ledger.db" {
		t.Fatalf("unexpected default db path: %s", cfg.DBPath)
	}
	if cfg.ExportDir != "." {
		t.Fatalf("unexpected default export dir: %s", cfg.ExportDir)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log level: %s", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LEDGER_DB_PATH", "/tmp/other.db")
	t.Setenv("LEDGER_DEFAULT_ACCOUNT", "Checking")
	t.Setenv("LEDGER_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.DBPath != "/tmp/other.db" {
		t.Fatalf("expected env db path, got %s", cfg.DBPath)
	}
	if cfg.DefaultAccount != "Checking" {
		t.Fatalf("expected env default account, got %s", cfg.DefaultAccount)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected env log level, got %s", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	good := &Config{
		DBPath:    filepath.Join(dir, "data", "ledger.db"),
		ExportDir: filepath.Join(dir, "exports"),
		LogLevel:  "info",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []*Config{
		{DBPath: "", ExportDir: dir, LogLevel: "info"},
		{DBPath: filepath.Join(dir, "ledger.db"), ExportDir: "", LogLevel: "info"},
		{DBPath: filepath.Join(dir, "ledger.db"), ExportDir: dir, LogLevel: "loud"},
	}
	for i, cfg := range bads {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSlogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"WARN", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", slog.LevelInfo, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tc := range cases {
		cfg := &Config{LogLevel: tc.in}
		got, err := cfg.SlogLevel()
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}
