package app

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/theme"
)

func (e *Editor) renderOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	if e.ShowHelp {
		helpLayer := lipgloss.NewLayer(e.RenderHelpMenu(e.Width, e.Height)).
			X(0).Y(0).Z(config.ZIndexHelp).ID("help")
		layers = append(layers, helpLayer)
	}

	if e.ShowLogs {
		logLayer := lipgloss.NewLayer(e.renderLogViewer()).
			X(0).Y(0).Z(config.ZIndexLogs).ID("logs")
		layers = append(layers, logLayer)
	}

	layers = append(layers, e.renderNotifications()...)
	return layers
}

// logsPerPage is the number of log lines the viewer shows at the current
// height.
func (e *Editor) logsPerPage() int {
	maxDisplayHeight := max(e.Height-8, 8)
	fixedLines := 4
	if len(e.LogMessages) > maxDisplayHeight-fixedLines {
		fixedLines = 6
	}
	return max(maxDisplayHeight-fixedLines, 1)
}

func (e *Editor) renderLogViewer() string {
	logTitle := lipgloss.NewStyle().
		Foreground(theme.HelpBorder()).
		Bold(true).
		Render("Editor Logs")

	logsPerPage := e.logsPerPage()
	totalLogs := len(e.LogMessages)
	maxScroll := max(totalLogs-logsPerPage, 0)
	e.LogScrollOffset = max(0, min(e.LogScrollOffset, maxScroll))

	dim := lipgloss.NewStyle().Foreground(theme.HelpGray())

	lines := []string{logTitle, ""}
	startIdx := e.LogScrollOffset
	displayCount := 0
	for i := startIdx; i < totalLogs && displayCount < logsPerPage; i++ {
		msg := e.LogMessages[i]

		levelColor := theme.LogViewerInfo()
		switch msg.Level {
		case "ERROR":
			levelColor = theme.LogViewerError()
		case "WARN":
			levelColor = theme.LogViewerWarn()
		}

		levelStr := lipgloss.NewStyle().
			Foreground(levelColor).
			Render(fmt.Sprintf("[%s]", msg.Level))
		lines = append(lines, fmt.Sprintf("%s %s %s", msg.Time.Format("15:04:05"), levelStr, msg.Message))
		displayCount++
	}
	if totalLogs == 0 {
		lines = append(lines, dim.Render("No log entries yet"))
	}

	if maxScroll > 0 {
		lines = append(lines, "", dim.Render(fmt.Sprintf("Showing %d-%d of %d logs",
			startIdx+1, startIdx+displayCount, totalLogs)))
	}
	lines = append(lines, "", dim.Render("Press 'q'/'esc' to exit, j/k or ↑/↓ to scroll"))

	logBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Width(min(80, max(e.Width-2, 20))).
		Background(theme.LogViewerBg()).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(e.Width, e.Height, lipgloss.Center, lipgloss.Center, logBox)
}

// helpLines renders every keybinding section as plain lines. Sections with
// a "snap" condition only show while snapping is on.
func (e *Editor) helpLines() []string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.HelpBorder()).Bold(true)
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.HelpKeyBadge()).
		Background(theme.HelpKeyBadgeBg()).
		Bold(true).
		Padding(0, 1)
	descStyle := lipgloss.NewStyle().Foreground(theme.HelpGray())

	sections := config.GetKeybindings(e.KeybindRegistry)

	keyWidth := 0
	for _, s := range sections {
		for _, b := range s.Bindings {
			keyWidth = max(keyWidth, lipgloss.Width(b.Key))
		}
	}

	var lines []string
	for _, s := range sections {
		switch s.Condition {
		case "snap":
			if !e.SnapEnabled {
				continue
			}
		case "!snap":
			if e.SnapEnabled {
				continue
			}
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, titleStyle.Render(s.Title))
		for _, b := range s.Bindings {
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(b.Key))
			lines = append(lines, keyStyle.Render(b.Key)+pad+"  "+descStyle.Render(b.Description))
		}
	}
	return lines
}

// RenderHelpMenu renders the scrollable keybinding overlay centred in a
// width x height area.
func (e *Editor) RenderHelpMenu(width, height int) string {
	lines := e.helpLines()

	visible := max(height-8, 3)
	maxScroll := max(len(lines)-visible, 0)
	e.HelpScrollOffset = max(0, min(e.HelpScrollOffset, maxScroll))
	page := lines[e.HelpScrollOffset:min(e.HelpScrollOffset+visible, len(lines))]

	dim := lipgloss.NewStyle().Foreground(theme.HelpGray())
	body := append([]string{}, page...)
	if maxScroll > 0 {
		body = append(body, "", dim.Render(fmt.Sprintf("%d/%d (j/k to scroll)", e.HelpScrollOffset+len(page), len(lines))))
	}
	body = append(body, "", dim.Render("Press '?' or 'esc' to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Background(theme.LogViewerBg()).
		Render(strings.Join(body, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// HelpLineCount is the number of lines the help overlay scrolls through.
func (e *Editor) HelpLineCount() int {
	return len(e.helpLines())
}

// renderNotifications stacks the active notifications in the top-right
// corner, below the ruler.
func (e *Editor) renderNotifications() []*lipgloss.Layer {
	if len(e.Notifications) == 0 {
		return nil
	}

	var layers []*lipgloss.Layer
	notifY := 1
	if config.ShowRuler {
		notifY = config.RulerHeight + 1
	}
	maxNotifWidth := min(max(e.Width-8, 20), 60)

	for i, notif := range e.Notifications {
		if time.Since(notif.StartTime) >= notif.Duration {
			continue
		}

		bgColor := theme.NotificationInfo()
		icon := config.NotificationIconInfo
		switch notif.Type {
		case "error":
			bgColor, icon = theme.NotificationError(), config.NotificationIconError
		case "warning":
			bgColor, icon = theme.NotificationWarning(), config.NotificationIconWarning
		case "success":
			bgColor, icon = theme.NotificationSuccess(), config.NotificationIconSuccess
		}

		message := ansi.Truncate(notif.Message, maxNotifWidth-8, "...")

		notifBox := lipgloss.NewStyle().
			Background(bgColor).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1).
			Bold(true).
			MaxWidth(maxNotifWidth).
			Render(fmt.Sprintf("%s %s", icon, message))

		notifX := max(e.Width-lipgloss.Width(notifBox)-2, 0)
		layers = append(layers, lipgloss.NewLayer(notifBox).
			X(notifX).Y(notifY+i*2).Z(config.ZIndexNotifications).
			ID(fmt.Sprintf("notif-%s", notif.ID)))
	}
	return layers
}
