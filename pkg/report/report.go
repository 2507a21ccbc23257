// Package report formats an assembler run's collected errors for
// standard error: a framed block with one "[KIND] message" line per
// error, colored when standard error is an interactive terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"arc24asm/pkg/asm"
)

const separatorWidth = 78

const (
	colorRed   = "\x1b[31m"
	colorDim   = "\x1b[2m"
	colorReset = "\x1b[0m"
)

// Writer prints framed error reports. Its color decision is made once
// at construction time from the destination's terminal state, matching
// how a CLI decides once whether to colorize its whole run.
type Writer struct {
	out   io.Writer
	color bool
}

// NewWriter builds a Writer for w. Coloring is enabled only when w is
// os.Stderr (or another *os.File) and it refers to a terminal.
func NewWriter(w io.Writer) *Writer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Writer{out: w, color: color}
}

// Errors prints every error in list, framed by two separator lines,
// preceded by the source file name. It does nothing if list is empty.
func (w *Writer) Errors(sourceName string, list *asm.ErrorList) {
	if list.Len() == 0 {
		return
	}

	sep := strings.Repeat("=", separatorWidth)
	fmt.Fprintf(w.out, "%s\n", w.dim(sep))
	fmt.Fprintf(w.out, "%s\n", w.dim(fmt.Sprintf("ERROR REPORT: %s", sourceName)))
	for _, e := range list.Items() {
		fmt.Fprintf(w.out, "%s\n", w.errorLine(e))
	}
	fmt.Fprintf(w.out, "%s\n", w.dim(sep))
}

func (w *Writer) errorLine(e asm.Error) string {
	line := e.String()
	if !w.color {
		return line
	}
	return colorRed + line + colorReset
}

func (w *Writer) dim(s string) string {
	if !w.color {
		return s
	}
	return colorDim + s + colorReset
}
