package export

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

// Event is one EDL edit resolved from a clip.
type Event struct {
	Number    int
	Reel      string
	Channel   string
	SourceIn  string
	SourceOut string
	RecordIn  string
	RecordOut string
	Speed     float64
	ClipName  string
	MediaPath string
}

// Events resolves the clips of track trackIdx into EDL events ordered by
// timeline position.
func Events(seq *timeline.Sequence, trackIdx int) ([]Event, error) {
	if seq == nil {
		return nil, fmt.Errorf("no sequence")
	}
	if trackIdx < 0 || trackIdx >= len(seq.Tracks) {
		return nil, fmt.Errorf("track %d out of range (sequence has %d tracks)", trackIdx, len(seq.Tracks))
	}
	fps := seq.FPS
	track := seq.Tracks[trackIdx]

	clips := append([]*timeline.Clip(nil), track.Clips...)
	sort.SliceStable(clips, func(i, j int) bool { return clips[i].TimelineIn < clips[j].TimelineIn })

	channel := "V"
	if track.Kind == timeline.KindAudio {
		channel = "A"
	}

	events := make([]Event, 0, len(clips))
	for i, c := range clips {
		events = append(events, Event{
			Number:    i + 1,
			Reel:      reelName(c.AssetPath),
			Channel:   channel,
			SourceIn:  Timecode(c.SourceIn, fps),
			SourceOut: Timecode(c.SourceOut, fps),
			RecordIn:  Timecode(c.TimelineIn, fps),
			RecordOut: Timecode(c.TimelineOut(), fps),
			Speed:     c.Rate(),
			ClipName:  c.Name,
			MediaPath: c.AssetPath,
		})
	}
	return events, nil
}

// reelName derives an 8-character reel from an asset path.
func reelName(asset string) string {
	base := strings.TrimSuffix(filepath.Base(asset), filepath.Ext(asset))
	var sb strings.Builder
	for _, r := range strings.ToUpper(base) {
		if sb.Len() == 8 {
			break
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 || asset == "" {
		return "AX"
	}
	return sb.String()
}

// GenerateEDL renders a CMX3600 edit decision list for one track.
func GenerateEDL(seq *timeline.Sequence, trackIdx int) (string, error) {
	events, err := Events(seq, trackIdx)
	if err != nil {
		return "", err
	}

	title := seq.Name
	if title == "" {
		title = "Untitled"
	}
	lines := []string{fmt.Sprintf("TITLE: %s", title)}
	if IsDropFrame(seq.FPS) {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	for _, ev := range events {
		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", ev.Number, ev.Reel, ev.Channel, ev.SourceIn, ev.SourceOut, ev.RecordIn, ev.RecordOut),
		)
		if ev.Speed != 1 {
			lines = append(lines, fmt.Sprintf("M2   %-8s %05.1f                %s", ev.Reel, ev.Speed*float64(nominalFPS(seq.FPS)), ev.SourceIn))
		}
		lines = append(lines, fmt.Sprintf("* FROM CLIP NAME:  %s", ev.ClipName))
		if ev.MediaPath != "" {
			lines = append(lines, fmt.Sprintf("* MEDIA PATH:  %s", ev.MediaPath))
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n"), nil
}

// WriteEDL writes the EDL for one track to w.
func WriteEDL(w io.Writer, seq *timeline.Sequence, trackIdx int) error {
	edl, err := GenerateEDL(seq, trackIdx)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, edl); err != nil {
		return fmt.Errorf("failed to write EDL: %w", err)
	}
	return nil
}
