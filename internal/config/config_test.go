package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"

	"github.com/example/scrann/internal/theme"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
output = ~/Pictures/annotated.png
color = #00ff00
capture_retries = 5

[notify]
capture = true
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.Output != "~/Pictures/annotated.png" {
		t.Errorf("Expected output '~/Pictures/annotated.png', got '%s'", cfg.Output)
	}
	if cfg.Color != "#00ff00" {
		t.Errorf("Expected color '#00ff00', got '%s'", cfg.Color)
	}
	if cfg.CaptureRetries != 5 {
		t.Errorf("Expected capture_retries 5, got %d", cfg.CaptureRetries)
	}
	if !cfg.Notify.Capture || cfg.Notify.Save || !cfg.Notify.Copy {
		t.Errorf("Unexpected notify settings %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.CaptureRetries != DefaultCaptureRetries {
		t.Errorf("capture_retries default = %d", cfg.CaptureRetries)
	}
	if !cfg.Notify.Capture || !cfg.Notify.Save || !cfg.Notify.Copy {
		t.Errorf("notifications should default on, got %+v", cfg.Notify)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"capture_retries = 0",
		"color = #12",
		"[notify]\nsave = maybe",
		"[theme.x]\nBackground = nope",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
output = /home/user/shots/out.png
capture_retries = 2

[notify]
capture = true
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.Output != cfg2.Output {
		t.Errorf("Output mismatch: %q vs %q", cfg.Output, cfg2.Output)
	}
	if cfg.CaptureRetries != cfg2.CaptureRetries {
		t.Errorf("CaptureRetries mismatch: %d vs %d", cfg.CaptureRetries, cfg2.CaptureRetries)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderOverrideAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scrann.rc")
	if err := os.WriteFile(path, []byte("theme = dark\ncolor = red\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SCRANN_THEME", "")
	t.Setenv("SCRANN_OUTPUT", "")
	t.Setenv("SCRANN_COLOR", "blue")

	l := NewLoader("1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q, want %q", got, path)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if cfg.Color != "blue" {
		t.Errorf("SCRANN_COLOR should override file, got %q", cfg.Color)
	}
}

func TestLoaderDevMode(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	if err := os.WriteFile(filepath.Join(dir, ".scrannrc"), []byte("theme = light\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := NewLoader("1.0.0", "").GetConfigPath(); got != "" {
		t.Errorf("release build should ignore .scrannrc, got %q", got)
	}
	if got := NewLoader("dev", "").GetConfigPath(); filepath.Base(got) != ".scrannrc" {
		t.Errorf("dev build should find .scrannrc, got %q", got)
	}
}

func TestResolveTheme(t *testing.T) {
	cfg := New()
	cfg.Theme = "custom"
	custom := theme.Default()
	custom.Name = "custom"
	cfg.Themes["custom"] = custom
	got, err := cfg.ResolveTheme(&theme.Loader{})
	if err != nil || got != custom {
		t.Fatalf("ResolveTheme = %v, %v", got, err)
	}

	cfg.Theme = "dark"
	got, err = cfg.ResolveTheme(&theme.Loader{})
	if err != nil || got.Name != "dark" {
		t.Fatalf("ResolveTheme dark = %v, %v", got, err)
	}
}
