package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatal("explicit missing config file should error")
	}
	_ = cfg

	// An empty path with no config file present yields defaults.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("default backend = %q, want %q", cfg.Cache.Backend, BackendFile)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
seed = 7

[density]
"." = 0.2

[cache]
backend = "none"

[server]
addr = ":9090"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
	if cfg.Cache.Backend != BackendNone {
		t.Errorf("Backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}

	m := cfg.DensityMap()
	if m.Foreground('.') {
		t.Error("overridden '.' density 0.2 should classify as background")
	}
	if !m.Foreground('#') {
		t.Error("unoverridden characters keep their default density")
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "tape"
`)
	if _, err := Load(path); err == nil {
		t.Error("unknown cache backend should be rejected")
	}
}

func TestLoad_RejectsBadDensityKey(t *testing.T) {
	path := writeConfig(t, `
[density]
"ab" = 0.5
`)
	if _, err := Load(path); err == nil {
		t.Error("multi-character density key should be rejected")
	}
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, "seed = [not toml")
	if _, err := Load(path); err == nil {
		t.Error("malformed TOML should be rejected")
	}
}
