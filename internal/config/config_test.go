package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mfagan/keypad/internal/input/key"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "keypad.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := DefaultConfig()
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[input]
os = "mac"

[plot]
cache_size = 4
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input.OS != "mac" {
		t.Errorf("os = %q, want mac", cfg.Input.OS)
	}
	if cfg.Plot.CacheSize != 4 {
		t.Errorf("cache_size = %d, want 4", cfg.Plot.CacheSize)
	}
	if cfg.HostOS() != key.OSMac {
		t.Errorf("HostOS() = %v, want OSMac", cfg.HostOS())
	}
}

func TestLoadRejectsUnknownOS(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[input]
os = "beos"
`)
	if _, err := Load(path); !errors.Is(err, ErrBadOS) {
		t.Errorf("err = %v, want ErrBadOS", err)
	}
}

func TestLoadRejectsBadCacheSize(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[plot]
cache_size = 0
`)
	if _, err := Load(path); err == nil {
		t.Error("Load accepted cache_size 0")
	}
}

func TestLoadParsesBindings(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[input.bindings]
"C-g" = "clear"
"M-p" = "push 0"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := map[string]string{"C-g": "clear", "M-p": "push 0"}
	if !reflect.DeepEqual(cfg.Input.Bindings, want) {
		t.Errorf("bindings = %v, want %v", cfg.Input.Bindings, want)
	}
}

func TestLoadRejectsMalformedBinding(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad chord", "[input.bindings]\n\"Q-x\" = \"clear\"\n"},
		{"empty command", "[input.bindings]\n\"C-g\" = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load accepted malformed binding")
			}
		})
	}
}

func TestHostOSMapping(t *testing.T) {
	tests := []struct {
		os   string
		want key.HostOS
	}{
		{"linux", key.OSLinux},
		{"windows", key.OSWindows},
		{"mac", key.OSMac},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Input.OS = tt.os
		if got := cfg.HostOS(); got != tt.want {
			t.Errorf("HostOS(%q) = %v, want %v", tt.os, got, tt.want)
		}
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `[plot]
cache_size = 2
`)

	updates := make(chan Config, 4)
	w, err := Watch(path, func(cfg Config) { updates <- cfg })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	writeConfig(t, dir, `[plot]
cache_size = 9
`)

	select {
	case cfg := <-updates:
		if cfg.Plot.CacheSize != 9 {
			t.Errorf("reloaded cache_size = %d, want 9", cfg.Plot.CacheSize)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload within 3s")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `[plot]
cache_size = 2
`)

	updates := make(chan Config, 4)
	w, err := Watch(path, func(cfg Config) { updates <- cfg })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-updates:
		t.Errorf("unexpected reload: %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}
}
