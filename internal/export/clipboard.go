package export

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// CopyText puts s on the system clipboard.
func CopyText(s string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard available")
	}
	if err := writeClipboard(s); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// CopyTimecode copies the timecode of sec at fps and returns it.
func CopyTimecode(sec, fps float64) (string, error) {
	tc := Timecode(sec, fps)
	return tc, CopyText(tc)
}

// CopyEDL copies the EDL of one track.
func CopyEDL(seq *timeline.Sequence, trackIdx int) error {
	edl, err := GenerateEDL(seq, trackIdx)
	if err != nil {
		return err
	}
	return CopyText(edl)
}
