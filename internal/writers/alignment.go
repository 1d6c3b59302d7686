// internal/writers/alignment.go
package writers

import (
	"fmt"
	"io"

	"agal/internal/output"
	"agal/internal/pretty"
)

// StartAlignmentWriter spins up a writer goroutine for output.Alignment
// items. (Backward-compatible wrapper using pretty.DefaultOptions)
func StartAlignmentWriter(out io.Writer, format string, header bool, prettyMode bool, bufSize int) (chan<- output.Alignment, <-chan error) {
	return StartAlignmentWriterWithPrettyOptions(out, format, header, prettyMode, pretty.DefaultOptions, bufSize)
}

// StartAlignmentWriterWithPrettyOptions allows customizing the pretty renderer.
func StartAlignmentWriterWithPrettyOptions(out io.Writer, format string, header bool, prettyMode bool, popt pretty.Options, bufSize int) (chan<- output.Alignment, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan output.Alignment, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case output.FormatJSON:
			var buf []output.Alignment
			for a := range in {
				buf = append(buf, a)
			}
			err = output.WriteJSON(out, buf)

		case output.FormatText:
			err = output.StreamTextWithRenderer(out, in, header, prettyMode,
				func(a output.Alignment) string { return pretty.RenderAlignmentWithOptions(a, popt) },
			)

		default:
			err = fmt.Errorf("unsupported output %q", format)
		}
		// Drain so producers never block after a writer error.
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}
