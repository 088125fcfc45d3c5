package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Gaurav-Gosain/tuicut/internal/export"
)

func runExportEDL(path string, track int, out string) error {
	seq, err := openSequence(path)
	if err != nil {
		return err
	}
	if out == "" {
		return export.WriteEDL(os.Stdout, seq, track)
	}
	return writeFile(out, func(w io.Writer) error {
		return export.WriteEDL(w, seq, track)
	})
}

// writeFile creates path and fills it with write. A failed close is reported
// so a short write never looks like success.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()
	return write(f)
}

func runExportPNG(path, out string, width int, playhead float64) error {
	seq, err := openSequence(path)
	if err != nil {
		return err
	}

	opts := export.DefaultSnapshotOptions()
	if width > 0 {
		opts.Width = width
	}
	opts.Playhead = playhead

	if err := export.SavePNG(out, seq, opts); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}
