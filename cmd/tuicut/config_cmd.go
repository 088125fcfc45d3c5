package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/colorprofile"
	tint "github.com/lrstanley/bubbletint/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/theme"
)

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// findEditor returns the user's editor: $EDITOR, $VISUAL, then the first
// common editor found on PATH.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e, nil
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e, nil
		}
	}
	return "", fmt.Errorf("no editor found: set $EDITOR")
}

func editConfigFile() error {
	// Make sure the file exists before opening it
	if _, err := config.LoadUserConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	// #nosec G204 - the editor comes from the user's own environment
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func resetConfigToDefaults(skipConfirm bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if !skipConfirm && !confirm(os.Stdin, fmt.Sprintf("Overwrite %s with defaults? [y/N] ", path)) {
		fmt.Println("Reset cancelled")
		return nil
	}

	if err := config.WriteConfigFile(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("Configuration reset: %s\n", path)
	return nil
}

// confirm prints prompt and reports whether the answer starts with y.
func confirm(r io.Reader, prompt string) bool {
	fmt.Print(prompt)
	answer, _ := bufio.NewReader(r).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// cliWriter downsamples colors to what stdout supports.
func cliWriter() *colorprofile.Writer {
	return colorprofile.NewWriter(os.Stdout, os.Environ())
}

// keybindingsTable renders the keybindings of registry as one table per
// section.
func keybindingsTable(registry *config.KeybindRegistry) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader()).Padding(0, 1)
	keyStyle := lipgloss.NewStyle().Foreground(theme.CLITableKey()).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader())

	var sb strings.Builder
	for _, section := range config.GetKeybindings(registry) {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
			Headers("KEY", "ACTION").
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case col == 0:
					return keyStyle
				default:
					return cellStyle
				}
			})
		for _, b := range section.Bindings {
			t.Row(b.Key, b.Description)
		}
		sb.WriteString(titleStyle.Render(section.Title))
		sb.WriteByte('\n')
		sb.WriteString(t.String())
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func listKeybindings() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config, showing defaults: %v\n", err)
		userConfig = config.DefaultConfig()
	}
	if themeName != "" {
		_ = theme.Initialize(themeName)
	}
	_, err = fmt.Fprint(cliWriter(), keybindingsTable(config.NewKeybindRegistry(userConfig)))
	return err
}

// previewThemeColors prints the 16 ANSI colors of a theme as swatches.
func previewThemeColors(name string) error {
	if err := theme.Initialize(name); err != nil {
		return err
	}
	t := theme.Current()
	if t == nil {
		return fmt.Errorf("theme %q not found", name)
	}

	rows := [][]struct {
		label string
		c     lipgloss.Style
	}{
		{
			{"black", swatch(t.Black)}, {"red", swatch(t.Red)}, {"green", swatch(t.Green)}, {"yellow", swatch(t.Yellow)},
			{"blue", swatch(t.Blue)}, {"purple", swatch(t.Purple)}, {"cyan", swatch(t.Cyan)}, {"white", swatch(t.White)},
		},
		{
			{"br.black", swatch(t.BrightBlack)}, {"br.red", swatch(t.BrightRed)}, {"br.green", swatch(t.BrightGreen)}, {"br.yellow", swatch(t.BrightYellow)},
			{"br.blue", swatch(t.BrightBlue)}, {"br.purple", swatch(t.BrightPurple)}, {"br.cyan", swatch(t.BrightCyan)}, {"br.white", swatch(t.BrightWhite)},
		},
	}

	w := cliWriter()
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(name))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, s := range row {
			cells = append(cells, s.c.Render(fmt.Sprintf("%-10s", s.label)))
		}
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return nil
}

func swatch(c *tint.Color) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1)
	if c == nil {
		return s
	}
	return s.Background(c).Foreground(lipgloss.Color("#000000"))
}
