// Package export writes the committed timeline out as an edit decision list
// or a PNG snapshot, and copies timecodes to the clipboard.
package export

import (
	"fmt"
	"math"
)

// IsDropFrame reports whether fps is one of the NTSC rates that use
// drop-frame timecode.
func IsDropFrame(fps float64) bool {
	return math.Abs(fps-29.97) < 0.01 || math.Abs(fps-59.94) < 0.01
}

// nominalFPS is the integer frame count per timecode second.
func nominalFPS(fps float64) int {
	n := int(math.Round(fps))
	if n <= 0 {
		return 30
	}
	return n
}

// Frames converts seconds to a whole frame count at fps.
func Frames(sec, fps float64) int {
	if !(fps > 0) || math.IsInf(fps, 0) {
		fps = 30
	}
	if !(sec > 0) || math.IsInf(sec, 0) {
		return 0
	}
	return int(math.Round(sec * fps))
}

// Timecode formats sec as HH:MM:SS:FF at fps. Drop-frame rates use
// HH:MM:SS;FF and skip frame numbers the way broadcast timecode does.
func Timecode(sec, fps float64) string {
	return FramesToTimecode(Frames(sec, fps), fps)
}

// FramesToTimecode formats a frame count at fps.
func FramesToTimecode(frames int, fps float64) string {
	nominal := nominalFPS(fps)
	sep := ":"
	if IsDropFrame(fps) {
		frames = dropFrameNumber(frames, nominal)
		sep = ";"
	}
	ff := frames % nominal
	totalSeconds := frames / nominal
	ss := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	mm := totalMinutes % 60
	hh := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", hh, mm, ss, sep, ff)
}

// dropFrameNumber renumbers a real frame count so that the first frame
// numbers of every minute not divisible by ten are skipped.
func dropFrameNumber(frames, nominal int) int {
	drop := nominal / 15
	perMinute := nominal*60 - drop
	perTenMinutes := nominal*600 - drop*9

	tens := frames / perTenMinutes
	rem := frames % perTenMinutes
	frames += drop * 9 * tens
	if rem > drop {
		frames += drop * ((rem - drop) / perMinute)
	}
	return frames
}
