package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"abacus/abacusos/tasks/calculator"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, "abacus.yaml", `
window:
  title: Pocket
  scale: 3
log:
  level: debug
theme:
  accent: "#ff0000"
serve:
  transport: http
  addr: 127.0.0.1:9090
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Window.Title = "Pocket"
	want.Window.Scale = 3
	want.Log.Level = "debug"
	want.Theme.Accent = "#ff0000"
	want.Serve = Serve{Transport: "http", Addr: "127.0.0.1:9090"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}

	th, err := cfg.Theme.Calculator()
	if err != nil {
		t.Fatalf("Calculator: %v", err)
	}
	if th.Accent != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("accent = %v", th.Accent)
	}
	if th.Background != calculator.DefaultTheme().Background {
		t.Fatalf("background changed: %v", th.Background)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ABACUS_LOG_LEVEL", "warn")
	t.Setenv("ABACUS_TRACE", "true")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" || !cfg.Trace.Enabled {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("ABACUS_SERVE_ADDR=:7070\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("ABACUS_SERVE_ADDR") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Serve.Addr != ":7070" {
		t.Fatalf("addr = %q, want :7070", cfg.Serve.Addr)
	}
}

func TestLoadRejects(t *testing.T) {
	t.Chdir(t.TempDir())
	for name, body := range map[string]string{
		"bad yaml":      "window: [",
		"bad scale":     "window: {scale: 0}",
		"bad transport": "serve: {transport: grpc}",
		"bad colour":    `theme: {pressed: "blue"}`,
	} {
		if _, err := Load(writeFile(t, "c.yaml", body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#292d36", color.RGBA{R: 0x29, G: 0x2d, B: 0x36, A: 0xff}},
		{"#fff", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseColor(%q) = %v, %v", tc.in, got, err)
		}
	}
	for _, bad := range []string{"292d36", "#12345", "#gggggg"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("ParseColor(%q) should fail", bad)
		}
	}
}
