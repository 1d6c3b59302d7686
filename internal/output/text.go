// internal/output/text.go
package output

import (
	"fmt"
	"io"
)

// WriteText prints one TSV line per alignment, with an optional header.
func WriteText(w io.Writer, list []Alignment, header bool) error {
	return WriteTextWithRenderer(w, list, header, false, nil)
}

// WriteTextWithRenderer writes buffered rows, optionally followed by a
// rendered alignment block per row.
func WriteTextWithRenderer(w io.Writer, list []Alignment, header, prettyMode bool, render func(Alignment) string) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, a := range list {
		if err := writeRow(w, a, prettyMode, render); err != nil {
			return err
		}
	}
	return nil
}

// StreamTextWithRenderer writes rows as they arrive on in.
func StreamTextWithRenderer(w io.Writer, in <-chan Alignment, header, prettyMode bool, render func(Alignment) string) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for a := range in {
		if err := writeRow(w, a, prettyMode, render); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, a Alignment, prettyMode bool, render func(Alignment) string) error {
	if _, err := fmt.Fprintln(w, FormatRowTSV(a)); err != nil {
		return err
	}
	if prettyMode && render != nil {
		if _, err := io.WriteString(w, render(a)); err != nil {
			return err
		}
	}
	return nil
}
