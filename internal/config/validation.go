package config

import (
	"fmt"
	"math"
	"sort"
)

// ValidationError describes a single problem in the user config.
type ValidationError struct {
	Field   string
	Key     string
	Message string
}

// ValidationResult collects blocking errors and non-blocking warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors reports whether the config cannot be used.
func (v *ValidationResult) HasErrors() bool { return len(v.Errors) > 0 }

// HasWarnings reports whether the config has suspicious values.
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

func (v *ValidationResult) errorf(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) warnf(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationError{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

// ValidateConfig checks value ranges and keybinding conflicts.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	if w := cfg.Appearance.HeaderWidth; w != 0 && (w < MinHeaderWidth || w > MaxHeaderWidth) {
		v.warnf("appearance", "header_width", "%d is outside %d..%d and will be clamped", w, MinHeaderWidth, MaxHeaderWidth)
	}

	t := cfg.Timeline
	for _, f := range []struct {
		key string
		val float64
	}{
		{"min_zoom", t.MinZoom},
		{"max_zoom", t.MaxZoom},
		{"default_zoom", t.DefaultZoom},
		{"fps", t.FPS},
	} {
		if !(f.val > 0) || math.IsInf(f.val, 0) {
			v.errorf("timeline", f.key, "must be a positive number, got %v", f.val)
		}
	}
	if t.MinZoom > 0 && t.MaxZoom > 0 && t.MinZoom > t.MaxZoom {
		v.errorf("timeline", "min_zoom", "min_zoom (%v) is greater than max_zoom (%v)", t.MinZoom, t.MaxZoom)
	}
	if t.DefaultZoom > 0 && t.MinZoom > 0 && t.MaxZoom >= t.MinZoom && (t.DefaultZoom < t.MinZoom || t.DefaultZoom > t.MaxZoom) {
		v.warnf("timeline", "default_zoom", "%v is outside min_zoom..max_zoom and will be clamped", t.DefaultZoom)
	}
	if !(t.ZoomStep > 1) {
		v.errorf("timeline", "zoom_step", "must be greater than 1, got %v", t.ZoomStep)
	}
	if t.MinClipDuration < 0 || math.IsNaN(t.MinClipDuration) {
		v.errorf("timeline", "min_clip_duration", "must not be negative, got %v", t.MinClipDuration)
	}
	if t.MaxSourceDuration < 0 || math.IsNaN(t.MaxSourceDuration) {
		v.errorf("timeline", "max_source_duration", "must not be negative, got %v", t.MaxSourceDuration)
	}
	if t.FollowMargin < 0 || t.FollowMargin >= 0.5 || math.IsNaN(t.FollowMargin) {
		v.errorf("timeline", "follow_margin", "must be in [0, 0.5), got %v", t.FollowMargin)
	}

	s := cfg.Snapping
	if s.ThresholdPx < 0 || math.IsNaN(s.ThresholdPx) {
		v.errorf("snapping", "threshold_px", "must not be negative, got %v", s.ThresholdPx)
	} else if s.ThresholdPx > 20 {
		v.warnf("snapping", "threshold_px", "%v cells will snap almost everything", s.ThresholdPx)
	}
	if !(s.MinGridSpacingPx > 0) {
		v.errorf("snapping", "min_grid_spacing_px", "must be positive, got %v", s.MinGridSpacingPx)
	}
	for i, step := range s.GridSteps {
		if !(step > 0) || math.IsInf(step, 0) {
			v.errorf("snapping", "grid_steps", "step %d (%v) must be a positive number", i, step)
			continue
		}
		if i > 0 && step <= s.GridSteps[i-1] {
			v.warnf("snapping", "grid_steps", "steps should be ascending; %v follows %v", step, s.GridSteps[i-1])
		}
	}

	validateKeybinds(cfg, v)
	return v
}

func validateKeybinds(cfg *UserConfig, v *ValidationResult) {
	seen := make(map[string]string)
	names := []string{"transport", "navigation", "view", "editing", "system"}
	for i, section := range cfg.Keybindings.sections() {
		for _, action := range sortedKeys(section) {
			if _, known := ActionDescriptions[action]; !known {
				v.warnf("keybindings."+names[i], action, "unknown action")
			}
			for _, key := range section[action] {
				norm := NormalizeKey(key)
				if norm == "" {
					v.errorf("keybindings."+names[i], action, "empty key")
					continue
				}
				if other, dup := seen[norm]; dup && other != action {
					v.warnf("keybindings."+names[i], action, "key %q is also bound to %s", key, other)
					continue
				}
				seen[norm] = action
			}
		}
	}
	sort.SliceStable(v.Warnings, func(i, j int) bool { return v.Warnings[i].Field < v.Warnings[j].Field })
}
