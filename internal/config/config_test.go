package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colr.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
debug = true
strict = true
palette = "FULL"

[defaults]
lighten = 0.5

[server]
addr = "127.0.0.1:9000"
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Debug = true
	want.Strict = true
	want.Palette = "full"
	want.Defaults.Lighten = 0.5
	want.Server.Addr = "127.0.0.1:9000"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad syntax", "debug = ", "decoding config"},
		{"wrong type", `debug = "yes"`, "decoding config"},
		{"unknown key", "colour = 1", "unknown keys: colour"},
		{"unknown nested key", "[server]\nport = 80", "unknown keys: server.port"},
		{"unknown palette", `palette = "neon"`, "unknown palette"},
		{"blend above 1", "[defaults]\nblend = 1.5", "defaults.blend"},
		{"negative lighten", "[defaults]\nlighten = -0.1", "defaults.lighten"},
		{"darken above 1", "[defaults]\ndarken = 2.0", "defaults.darken"},
		{"empty addr", "[server]\naddr = \"\"", "server.addr"},
		{"negative timeout", "[server]\nread_timeout = -1", "server.read_timeout"},
		{"zero swatch", "[server]\nmax_swatch = 0", "server.max_swatch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
