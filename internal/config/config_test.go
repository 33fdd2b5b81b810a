package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme

[editor]
max_width = 1024
max_height = 768
debounce_ms = 25
history_limit = 5

[brush]
size = 7.5
color = "#00ff00"

[export]
file = out.png
dir = /tmp/edits

[notify]
export = true
copy = false

[theme.my_custom_theme]
Background = #111111
Foreground: #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.Editor != (Editor{MaxWidth: 1024, MaxHeight: 768, DebounceMS: 25, HistoryLimit: 5}) {
		t.Errorf("Unexpected editor section: %+v", cfg.Editor)
	}
	if cfg.Brush.Size != 7.5 || cfg.Brush.Color != "#00ff00" {
		t.Errorf("Unexpected brush section: %+v", cfg.Brush)
	}
	if cfg.Export.File != "out.png" || cfg.Export.Dir != "/tmp/edits" {
		t.Errorf("Unexpected export section: %+v", cfg.Export)
	}
	if !cfg.Notify.Export {
		t.Error("Expected notify.export to be true")
	}
	if cfg.Notify.Copy {
		t.Error("Expected notify.copy to be false")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
	if theme.Foreground.R != 0xFF {
		t.Errorf("Unexpected Foreground color: %+v", theme.Foreground)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("# nothing here\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.MaxWidth != 800 || cfg.Editor.MaxHeight != 600 || cfg.Editor.HistoryLimit != 20 {
		t.Errorf("Unexpected defaults: %+v", cfg.Editor)
	}
	if cfg.Export.File != "edited-image.png" || cfg.Brush.Color != "#ff0000" {
		t.Errorf("Unexpected defaults: %+v %+v", cfg.Export, cfg.Brush)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"[editor]\nmax_width = wide\n",
		"[editor]\nhistory_limit = -1\n",
		"[brush]\nsize = 0\n",
		"[notify]\nexport = maybe\n",
		"[theme.x]\nBackground = blue\n",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark

[editor]
max_width = 640
history_limit = 3

[brush]
size = 12
color = #123456

[export]
dir = /home/user/edits

[notify]
export = true
copy = true

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
	if cfg.Editor != cfg2.Editor {
		t.Errorf("Editor mismatch: %+v vs %+v", cfg.Editor, cfg2.Editor)
	}
	if cfg.Brush != cfg2.Brush {
		t.Errorf("Brush mismatch: %+v vs %+v", cfg.Brush, cfg2.Brush)
	}
	if cfg.Export != cfg2.Export {
		t.Errorf("Export mismatch: %+v vs %+v", cfg.Export, cfg2.Export)
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

func TestLoaderOverrideAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "photoedit.rc")
	l := NewLoader("v1.0.0", path)

	cfg := New()
	cfg.Theme = "dark"
	cfg.Editor.HistoryLimit = 7
	written, err := l.Save(cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if written != path {
		t.Fatalf("Save wrote %s, want %s", written, path)
	}
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q", got)
	}
	loaded, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Theme != "dark" || loaded.Editor.HistoryLimit != 7 {
		t.Fatalf("Load returned %+v", loaded)
	}
}

func TestLoaderDevLocalFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if err := os.WriteFile(filepath.Join(dir, ".photoeditrc"), []byte("theme = dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := NewLoader("v2", "").GetConfigPath(); got != "" {
		t.Fatalf("release build picked up %q", got)
	}
	cfg, err := NewLoader("dev", "").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Fatalf("Theme = %q", cfg.Theme)
	}
}
