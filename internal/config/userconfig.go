package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/snap"
	"github.com/Gaurav-Gosain/tuicut/internal/viewport"
)

// configRelPath is the config file location relative to the XDG config home
const configRelPath = "tuicut/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Timeline    TimelineConfig    `toml:"timeline"`
	Snapping    SnappingConfig    `toml:"snapping"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme         string `toml:"theme"`           // Color theme name (e.g., dracula, nord, my-custom-theme)
	ASCIIOnly     bool   `toml:"ascii_only"`      // Use ASCII characters instead of box drawing glyphs
	HeaderWidth   int    `toml:"header_width"`    // Track header column width in cells (default: 14, min: 8, max: 40)
	ShowRuler     *bool  `toml:"show_ruler"`      // Show the time ruler (default: true)
	HideStatusBar bool   `toml:"hide_status_bar"` // Hide the bottom status bar
}

// TimelineConfig holds zoom, trim and playback settings
type TimelineConfig struct {
	MinZoom              float64 `toml:"min_zoom"`               // Widest zoom-out in cells per second
	MaxZoom              float64 `toml:"max_zoom"`               // Deepest zoom-in in cells per second
	DefaultZoom          float64 `toml:"default_zoom"`           // Zoom when the editor opens
	ZoomStep             float64 `toml:"zoom_step"`              // Multiplicative zoom step (> 1)
	MinClipDuration      float64 `toml:"min_clip_duration"`      // Shortest clip a trim can produce, in seconds
	MaxSourceDuration    float64 `toml:"max_source_duration"`    // Upper bound for a clip's source out point (0 = unbounded)
	FollowMargin         float64 `toml:"follow_margin"`          // Fraction of the viewport kept around a followed playhead
	CursorPreservingZoom *bool   `toml:"cursor_preserving_zoom"` // Keep the time under the cursor fixed while wheel zooming (default: true)
	FollowPlayhead       *bool   `toml:"follow_playhead"`        // Scroll to keep the playhead visible during playback (default: true)
	FPS                  float64 `toml:"fps"`                    // Timecode frame rate when the sequence has none
}

// SnappingConfig holds snapping settings
type SnappingConfig struct {
	Enabled          *bool     `toml:"enabled"`             // Snap to playhead, clip edges and markers (default: true)
	Grid             bool      `toml:"grid"`                // Also snap to the ruler grid
	ThresholdPx      float64   `toml:"threshold_px"`        // Snap distance in cells
	MinGridSpacingPx float64   `toml:"min_grid_spacing_px"` // Minimum cells between grid ticks
	GridSteps        []float64 `toml:"grid_steps"`          // Grid interval ladder in seconds, finest first
}

// KeybindingsConfig holds all keybinding configurations
type KeybindingsConfig struct {
	Transport  map[string][]string `toml:"transport"`
	Navigation map[string][]string `toml:"navigation"`
	View       map[string][]string `toml:"view"`
	Editing    map[string][]string `toml:"editing"`
	System     map[string][]string `toml:"system"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	enabled := true
	return &UserConfig{
		Appearance: AppearanceConfig{
			HeaderWidth: DefaultHeaderWidth,
			ShowRuler:   &enabled,
		},
		Timeline: TimelineConfig{
			MinZoom:              DefaultMinZoom,
			MaxZoom:              DefaultMaxZoom,
			DefaultZoom:          DefaultZoom,
			ZoomStep:             DefaultZoomStep,
			MinClipDuration:      DefaultMinClipDuration,
			FollowMargin:         DefaultFollowMargin,
			CursorPreservingZoom: boolPtr(true),
			FollowPlayhead:       boolPtr(true),
			FPS:                  DefaultFPS,
		},
		Snapping: SnappingConfig{
			Enabled:          boolPtr(true),
			ThresholdPx:      DefaultSnapThresholdPx,
			MinGridSpacingPx: DefaultMinGridSpacingPx,
			GridSteps:        append([]float64(nil), snap.DefaultGridSteps...),
		},
		Keybindings: KeybindingsConfig{
			Transport: map[string][]string{
				"play_pause":  {"space"},
				"frame_back":  {"left"},
				"frame_fwd":   {"right"},
				"second_back": {"shift+left"},
				"second_fwd":  {"shift+right"},
				"go_start":    {"home"},
				"go_end":      {"end"},
			},
			Navigation: map[string][]string{
				"prev_marker":  {"["},
				"next_marker":  {"]"},
				"scroll_left":  {"h"},
				"scroll_right": {"l"},
				"track_up":     {"k", "up"},
				"track_down":   {"j", "down"},
				"center":       {"c"},
			},
			View: map[string][]string{
				"zoom_in":       {"+", "="},
				"zoom_out":      {"-"},
				"fit":           {"f"},
				"toggle_follow": {"F"},
				"toggle_snap":   {"s"},
				"toggle_grid":   {"g"},
			},
			Editing: map[string][]string{
				"add_marker":    {"m"},
				"cancel_drag":   {"esc"},
				"next_clip":     {"tab"},
				"prev_clip":     {"shift+tab"},
				"copy_timecode": {"y"},
				"copy_edl":      {"Y"},
				"toggle_mute":   {"M"},
				"toggle_lock":   {"L"},
			},
			System: map[string][]string{
				"toggle_help": {"?"},
				"toggle_logs": {"ctrl+l"},
				"quit":        {"q", "ctrl+c"},
			},
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Config doesn't exist, create default
		return createDefaultConfig()
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile reads, fills and validates the config at path.
func LoadConfigFile(configPath string) (*UserConfig, error) {
	// #nosec G304 - configPath is from XDG search or the caller, reading user config is intentional
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingTimeline(&cfg, defaultCfg)
	fillMissingSnapping(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, err := range validation.Errors {
			fmt.Fprintf(os.Stderr, "Config error in [%s]: %s - %s\n", err.Field, err.Key, err.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}

	if validation.HasWarnings() {
		for _, warn := range validation.Warnings {
			fmt.Fprintf(os.Stderr, "Config warning in [%s]: %s - %s\n", warn.Field, warn.Key, warn.Message)
		}
	}

	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	configPath, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	cfg := DefaultConfig()
	if err := WriteConfigFile(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfigFile writes cfg to path with the documentation header.
func WriteConfigFile(configPath string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# tuicut Configuration File\n")
	sb.WriteString("# Timeline appearance, zoom, snapping and keybindings\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# For keybindings documentation, run: tuicut keybinds list\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# theme: Color theme name (e.g., dracula, nord, my-custom-theme)\n")
	sb.WriteString("#   Leave empty to use standard terminal colors.\n")
	sb.WriteString("#   CLI flag --theme overrides this. Custom themes: ~/.config/tuicut/themes/*.json\n")
	sb.WriteString("# header_width: Track header column width (8 to 40, default 14)\n")
	sb.WriteString("#\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# TIMELINE\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# Zoom values are cells per second. One terminal cell is one pixel.\n")
	sb.WriteString("# min_clip_duration: Shortest clip a trim can produce (seconds)\n")
	sb.WriteString("# max_source_duration: Upper bound for source out points, 0 for none\n")
	sb.WriteString("# follow_margin: Fraction of the view kept around the playhead (0 to 0.5)\n")
	sb.WriteString("#\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# SNAPPING\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# Priority: playhead > clip edges > markers > grid\n")
	sb.WriteString("# threshold_px: Snap distance in cells (default 2)\n")
	sb.WriteString("# grid_steps: Candidate grid intervals in seconds, finest first. The finest\n")
	sb.WriteString("#   step at least min_grid_spacing_px cells wide is used.\n")
	sb.WriteString("# ============================================================================\n\n")

	if _, err := sb.Write(data); err != nil {
		return fmt.Errorf("failed to write config data: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.HeaderWidth <= 0 {
		cfg.Appearance.HeaderWidth = defaultCfg.Appearance.HeaderWidth
	}
	if cfg.Appearance.ShowRuler == nil {
		cfg.Appearance.ShowRuler = boolPtr(*defaultCfg.Appearance.ShowRuler)
	}
}

// fillMissingTimeline fills in any missing timeline settings with defaults
func fillMissingTimeline(cfg, defaultCfg *UserConfig) {
	t, d := &cfg.Timeline, defaultCfg.Timeline
	if t.MinZoom <= 0 {
		t.MinZoom = d.MinZoom
	}
	if t.MaxZoom <= 0 {
		t.MaxZoom = d.MaxZoom
	}
	if t.DefaultZoom <= 0 {
		t.DefaultZoom = d.DefaultZoom
	}
	if t.ZoomStep == 0 {
		t.ZoomStep = d.ZoomStep
	}
	if t.MinClipDuration == 0 {
		t.MinClipDuration = d.MinClipDuration
	}
	if t.FollowMargin == 0 {
		t.FollowMargin = d.FollowMargin
	}
	if t.CursorPreservingZoom == nil {
		t.CursorPreservingZoom = boolPtr(*d.CursorPreservingZoom)
	}
	if t.FollowPlayhead == nil {
		t.FollowPlayhead = boolPtr(*d.FollowPlayhead)
	}
	if t.FPS <= 0 {
		t.FPS = d.FPS
	}
}

// fillMissingSnapping fills in any missing snapping settings with defaults
func fillMissingSnapping(cfg, defaultCfg *UserConfig) {
	s, d := &cfg.Snapping, defaultCfg.Snapping
	if s.Enabled == nil {
		s.Enabled = boolPtr(*d.Enabled)
	}
	if s.ThresholdPx == 0 {
		s.ThresholdPx = d.ThresholdPx
	}
	if s.MinGridSpacingPx == 0 {
		s.MinGridSpacingPx = d.MinGridSpacingPx
	}
	if len(s.GridSteps) == 0 {
		s.GridSteps = append([]float64(nil), d.GridSteps...)
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.Transport == nil {
		cfg.Keybindings.Transport = make(map[string][]string)
	}
	if cfg.Keybindings.Navigation == nil {
		cfg.Keybindings.Navigation = make(map[string][]string)
	}
	if cfg.Keybindings.View == nil {
		cfg.Keybindings.View = make(map[string][]string)
	}
	if cfg.Keybindings.Editing == nil {
		cfg.Keybindings.Editing = make(map[string][]string)
	}
	if cfg.Keybindings.System == nil {
		cfg.Keybindings.System = make(map[string][]string)
	}

	fillMapDefaults(cfg.Keybindings.Transport, defaultCfg.Keybindings.Transport)
	fillMapDefaults(cfg.Keybindings.Navigation, defaultCfg.Keybindings.Navigation)
	fillMapDefaults(cfg.Keybindings.View, defaultCfg.Keybindings.View)
	fillMapDefaults(cfg.Keybindings.Editing, defaultCfg.Keybindings.Editing)
	fillMapDefaults(cfg.Keybindings.System, defaultCfg.Keybindings.System)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}

// ViewportConfig returns the viewport settings from the timeline section.
func (c *UserConfig) ViewportConfig() viewport.Config {
	return viewport.Config{
		MinZoom:          c.Timeline.MinZoom,
		MaxZoom:          c.Timeline.MaxZoom,
		ZoomStep:         c.Timeline.ZoomStep,
		FollowMargin:     c.Timeline.FollowMargin,
		CursorPreserving: c.Timeline.CursorPreservingZoom == nil || *c.Timeline.CursorPreservingZoom,
	}
}

// SnapConfig returns the snapping settings.
func (c *UserConfig) SnapConfig() snap.Config {
	return snap.Config{
		ThresholdPx:      c.Snapping.ThresholdPx,
		MinGridSpacingPx: c.Snapping.MinGridSpacingPx,
		GridSteps:        c.Snapping.GridSteps,
	}
}

// SnappingEnabled reports whether semantic snapping is on.
func (c *UserConfig) SnappingEnabled() bool {
	return c.Snapping.Enabled == nil || *c.Snapping.Enabled
}

// FollowEnabled reports whether playback follows the playhead.
func (c *UserConfig) FollowEnabled() bool {
	return c.Timeline.FollowPlayhead == nil || *c.Timeline.FollowPlayhead
}
