package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Output.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Output.Format)
	}
	if cfg.Runtime.Workers != 0 {
		t.Errorf("Workers = %d, want 0 (auto)", cfg.Runtime.Workers)
	}
	if cfg.Runtime.MaxFileSize != 1<<20 {
		t.Errorf("MaxFileSize = %d", cfg.Runtime.MaxFileSize)
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Suggestions != DefaultConfig().Output.Suggestions {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Runtime.Workers = 3
	cfg.Paths.StoreDir = "/tmp/store"
	cfg.Output.Format = "json"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Runtime.Workers != 3 || loaded.Paths.StoreDir != "/tmp/store" || loaded.Output.Format != "json" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// workers decodes into the wrong type for the struct but the raw map
	// still yields the output section.
	bad := "[runtime]\nworkers = \"four\"\n\n[output]\nformat = \"json\"\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q, want json recovered from partial parse", cfg.Output.Format)
	}
	if cfg.Runtime.Workers != 0 {
		t.Errorf("Workers = %d, want default after bad value", cfg.Runtime.Workers)
	}
}

func TestResolveStoreDirConfigured(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	cfg := DefaultConfig()
	cfg.Paths.StoreDir = dir

	got, err := cfg.ResolveStoreDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("ResolveStoreDir = %q, want %q", got, dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("store dir not created: %v", err)
	}
}
