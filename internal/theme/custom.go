package theme

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	tint "github.com/lrstanley/bubbletint/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

// clipOverrides holds per-track-kind clip colors declared by custom themes,
// keyed by theme ID.
var (
	clipOverridesMu sync.RWMutex
	clipOverrides   = map[string]map[timeline.TrackKind]color.Color{}
)

// clipTable is the optional "clips" object of a theme file: hex colors
// keyed by track kind. It sits next to the bubbletint palette fields.
type clipTable struct {
	Clips map[string]string `json:"clips"`
}

// GetThemesDir returns the path to the custom themes directory (~/.config/tuicut/themes/).
// Creates the directory if it doesn't exist.
func GetThemesDir() (string, error) {
	keepFile, err := xdg.ConfigFile("tuicut/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get themes directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

// LoadCustomThemes reads all *.json files from the themes directory,
// loads each as a custom theme, and registers them with bubbletint.
// Returns the list of successfully loaded theme IDs.
// Logs warnings for bad files but doesn't fail startup.
func LoadCustomThemes(themesDir string) ([]string, error) {
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}

		path := filepath.Join(themesDir, entry.Name())
		t, err := LoadCustomThemeFile(path)
		if err != nil {
			log.Printf("Warning: skipping custom theme %s: %v", entry.Name(), err)
			continue
		}

		tint.Register(t)
		loaded = append(loaded, t.ID)
	}

	return loaded, nil
}

// LoadCustomThemeFile reads a JSON theme and returns its palette. The ID is
// derived from the filename when missing, and missing colors are filled in.
// Clip colors from the "clips" table are recorded under the theme ID.
func LoadCustomThemeFile(path string) (*tint.Tint, error) {
	// #nosec G304 - path is from user's config directory, reading custom themes is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var t tint.Tint
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse theme JSON: %w", err)
	}
	var ct clipTable
	if err := json.Unmarshal(data, &ct); err != nil {
		return nil, fmt.Errorf("failed to parse theme clips: %w", err)
	}

	if t.ID == "" {
		base := filepath.Base(path)
		t.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if t.ID == "" {
		return nil, fmt.Errorf("theme has no ID")
	}
	if t.DisplayName == "" {
		t.DisplayName = t.ID
	}

	fillDefaults(&t)

	clips, err := parseClipColors(ct.Clips)
	if err != nil {
		return nil, err
	}
	clipOverridesMu.Lock()
	if len(clips) > 0 {
		clipOverrides[t.ID] = clips
	} else {
		delete(clipOverrides, t.ID)
	}
	clipOverridesMu.Unlock()

	return &t, nil
}

func parseClipColors(raw map[string]string) (map[timeline.TrackKind]color.Color, error) {
	out := make(map[timeline.TrackKind]color.Color, len(raw))
	for k, hex := range raw {
		kind := timeline.TrackKind(strings.ToLower(k))
		if !kind.Valid() {
			return nil, fmt.Errorf("clips: unknown track kind %q", k)
		}
		if !strings.HasPrefix(hex, "#") || (len(hex) != 7 && len(hex) != 4) {
			return nil, fmt.Errorf("clips.%s: %q is not a hex color", k, hex)
		}
		out[kind] = tint.FromHex(hex)
	}
	return out, nil
}

// clipOverride returns the custom clip color for kind in the active theme.
func clipOverride(kind timeline.TrackKind) (color.Color, bool) {
	t := Current()
	if t == nil {
		return nil, false
	}
	clipOverridesMu.RLock()
	defer clipOverridesMu.RUnlock()
	c, ok := clipOverrides[t.ID][kind]
	return c, ok
}

// fillDefaults fills nil color pointers with xterm defaults.
func fillDefaults(t *tint.Tint) {
	if t.Fg == nil {
		t.Fg = tint.FromHex("#e5e5e5")
	}
	if t.Bg == nil {
		t.Bg = tint.FromHex("#000000")
	}
	if t.Cursor == nil {
		t.Cursor = copyColor(t.Fg)
	}

	normal := []struct {
		slot **tint.Color
		hex  string
	}{
		{&t.Black, "#000000"},
		{&t.Red, "#cd0000"},
		{&t.Green, "#00cd00"},
		{&t.Yellow, "#cdcd00"},
		{&t.Blue, "#0000ee"},
		{&t.Purple, "#cd00cd"},
		{&t.Cyan, "#00cdcd"},
		{&t.White, "#e5e5e5"},
	}
	for _, n := range normal {
		if *n.slot == nil {
			*n.slot = tint.FromHex(n.hex)
		}
	}

	// Bright variants default to normal if nil
	bright := [][2]**tint.Color{
		{&t.BrightBlack, &t.Black},
		{&t.BrightRed, &t.Red},
		{&t.BrightGreen, &t.Green},
		{&t.BrightYellow, &t.Yellow},
		{&t.BrightBlue, &t.Blue},
		{&t.BrightPurple, &t.Purple},
		{&t.BrightCyan, &t.Cyan},
		{&t.BrightWhite, &t.White},
	}
	for _, b := range bright {
		if *b[0] == nil {
			*b[0] = copyColor(*b[1])
		}
	}
}

// copyColor creates a copy of a tint.Color.
func copyColor(c *tint.Color) *tint.Color {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}
