package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sync.DebounceSec != 5 || cfg.Sync.IntervalSec != 60 {
		t.Errorf("sync defaults = %+v", cfg.Sync)
	}
	if cfg.Remote.TimeoutSec != 30 {
		t.Errorf("remote timeout default = %d", cfg.Remote.TimeoutSec)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level default = %q", cfg.LogLevel)
	}
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &AppConfig{
		UserID:   "u1",
		DataDir:  "/tmp/attendance",
		LogLevel: "debug",
		Remote: RemoteConfig{
			BaseURL:    "https://store.example.com",
			AnonKey:    "anon",
			TimeoutSec: 10,
		},
		Sync:   SyncConfig{DebounceSec: 2, IntervalSec: 30},
		Report: ReportConfig{Template: "default", OutputDir: "/tmp/reports"},
	}
	if err := SaveConfig(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.UserID != "u1" || got.Remote.BaseURL != want.Remote.BaseURL {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.Sync.DebounceSec != 2 || got.Sync.IntervalSec != 30 {
		t.Errorf("sync settings = %+v", got.Sync)
	}
	if got.Report.Template != "default" {
		t.Errorf("report template = %q", got.Report.Template)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "user_id: u2\nremote:\n  base_url: https://store.example.com\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UserID != "u2" {
		t.Errorf("user_id = %q", cfg.UserID)
	}
	if cfg.Sync.DebounceSec != 5 {
		t.Errorf("unset sync.debounce_sec should default to 5, got %d", cfg.Sync.DebounceSec)
	}
	if cfg.Remote.TimeoutSec != 30 {
		t.Errorf("unset remote.timeout_sec should default to 30, got %d", cfg.Remote.TimeoutSec)
	}
}
