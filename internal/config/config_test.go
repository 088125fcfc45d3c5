package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	v := ValidateConfig(DefaultConfig())
	if v.HasErrors() {
		t.Fatalf("default config has errors: %+v", v.Errors)
	}
	if v.HasWarnings() {
		t.Errorf("default config has warnings: %+v", v.Warnings)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *UserConfig)
		wantErr string
		wantWrn string
	}{
		{"zoom range inverted", func(c *UserConfig) { c.Timeline.MinZoom, c.Timeline.MaxZoom = 10, 1 }, "min_zoom", ""},
		{"zoom step too small", func(c *UserConfig) { c.Timeline.ZoomStep = 1 }, "zoom_step", ""},
		{"negative min clip", func(c *UserConfig) { c.Timeline.MinClipDuration = -1 }, "min_clip_duration", ""},
		{"follow margin too wide", func(c *UserConfig) { c.Timeline.FollowMargin = 0.5 }, "follow_margin", ""},
		{"bad grid step", func(c *UserConfig) { c.Snapping.GridSteps = []float64{0.5, 0} }, "grid_steps", ""},
		{"descending grid", func(c *UserConfig) { c.Snapping.GridSteps = []float64{1, 0.5} }, "", "grid_steps"},
		{"header width clamped", func(c *UserConfig) { c.Appearance.HeaderWidth = 99 }, "", "header_width"},
		{"duplicate key", func(c *UserConfig) { c.Keybindings.View["fit"] = []string{"space"} }, "", "fit"},
		{"unknown action", func(c *UserConfig) { c.Keybindings.System["launch_rockets"] = []string{"R"} }, "", "launch_rockets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			v := ValidateConfig(cfg)
			if tt.wantErr != "" && !hasKey(v.Errors, tt.wantErr) {
				t.Errorf("expected error on %q, got %+v", tt.wantErr, v.Errors)
			}
			if tt.wantErr == "" && v.HasErrors() {
				t.Errorf("unexpected errors: %+v", v.Errors)
			}
			if tt.wantWrn != "" && !hasKey(v.Warnings, tt.wantWrn) {
				t.Errorf("expected warning on %q, got %+v", tt.wantWrn, v.Warnings)
			}
		})
	}
}

func hasKey(list []ValidationError, key string) bool {
	for _, e := range list {
		if e.Key == key {
			return true
		}
	}
	return false
}

func TestLoadConfigFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[appearance]
theme = "nord"

[timeline]
default_zoom = 12.5

[snapping]
enabled = false

[keybindings.view]
fit = ["F2"]
`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Appearance.Theme != "nord" || cfg.Timeline.DefaultZoom != 12.5 {
		t.Errorf("explicit values lost: %+v %+v", cfg.Appearance, cfg.Timeline)
	}
	if cfg.Timeline.ZoomStep != DefaultZoomStep || cfg.Appearance.HeaderWidth != DefaultHeaderWidth {
		t.Errorf("defaults not filled: step=%v header=%v", cfg.Timeline.ZoomStep, cfg.Appearance.HeaderWidth)
	}
	if cfg.SnappingEnabled() {
		t.Error("snapping should be disabled")
	}
	if !cfg.FollowEnabled() {
		t.Error("follow should default on")
	}
	if len(cfg.Snapping.GridSteps) == 0 {
		t.Error("grid steps not filled")
	}

	reg := NewKeybindRegistry(cfg)
	if got := reg.GetAction("f2"); got != "fit" {
		t.Errorf("GetAction(f2) = %q, want fit", got)
	}
	if got := reg.GetAction("f"); got != "" {
		t.Errorf("the replaced default key still resolves to %q", got)
	}
	if got := reg.GetAction("space"); got != "play_pause" {
		t.Errorf("unrelated defaults lost: space -> %q", got)
	}
}

func TestLoadConfigFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[timeline]\nzoom_step = 0.5\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(path); err == nil {
		t.Fatal("expected an error for zoom_step < 1")
	}

	if err := os.WriteFile(path, []byte("[timeline\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(path); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestWriteConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := WriteConfigFile(path, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# tuicut Configuration File") {
		t.Error("missing header comment")
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Timeline.MaxZoom != DefaultMaxZoom {
		t.Errorf("MaxZoom = %v", cfg.Timeline.MaxZoom)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ctrl+L", "ctrl+l"},
		{"Alt+G", "alt+g"},
		{"shift+G", "shift+G"},
		{"control+shift+Left", "ctrl+shift+left"},
		{"Escape", "esc"},
		{"+", "+"},
		{"ctrl++", "ctrl++"},
		{"Y", "Y"},
		{"  ", ""},
		{"cmd+PageUp", "meta+pgup"},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKeybindRegistryDisplay(t *testing.T) {
	reg := NewKeybindRegistry(nil)
	if got := reg.GetKeysForDisplay("track_up"); got != "k, ↑" {
		t.Errorf("track_up display = %q", got)
	}
	if got := reg.GetKeysForDisplay("quit"); got != "q, Ctrl+c" {
		t.Errorf("quit display = %q", got)
	}
	if reg.GetKeysForDisplay("nope") != "" {
		t.Error("unknown action should have no keys")
	}
	if len(reg.ListAll()) != len(ActionDescriptions) {
		t.Errorf("ListAll() has %d actions, want %d", len(reg.ListAll()), len(ActionDescriptions))
	}
}

func TestGetKeybindingsSections(t *testing.T) {
	sections := GetKeybindings(nil)
	titles := map[string]bool{}
	for _, s := range sections {
		titles[s.Title] = true
		for _, b := range s.Bindings {
			if b.Key == "" || b.Description == "" {
				t.Errorf("section %s has empty binding %+v", s.Title, b)
			}
		}
	}
	for _, want := range []string{"TRANSPORT", "NAVIGATION", "VIEW", "EDITING", "MOUSE", "SYSTEM"} {
		if !titles[want] {
			t.Errorf("missing section %s", want)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	t.Cleanup(func() {
		UseASCIIOnly = false
		HeaderWidth = DefaultHeaderWidth
		HideStatusBar = false
		DebugLogging = false
	})

	cfg := DefaultConfig()
	cfg.Appearance.HeaderWidth = 20
	ApplyOverrides(Overrides{ASCIIOnly: true, Zoom: 9, NoSnap: true, Grid: true}, cfg)

	if !UseASCIIOnly || PlayheadGlyph() != "|" {
		t.Error("ASCII mode not applied")
	}
	if HeaderWidth != 20 {
		t.Errorf("HeaderWidth = %d, want 20", HeaderWidth)
	}
	if cfg.Timeline.DefaultZoom != 9 || cfg.SnappingEnabled() || !cfg.Snapping.Grid {
		t.Errorf("timeline overrides not applied: %+v %+v", cfg.Timeline, cfg.Snapping)
	}

	ApplyOverrides(Overrides{HeaderWidth: 1000}, nil)
	if HeaderWidth != MaxHeaderWidth {
		t.Errorf("HeaderWidth = %d, want clamp to %d", HeaderWidth, MaxHeaderWidth)
	}
}
