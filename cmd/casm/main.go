// Command casm assembles one or more source files against the 24-bit
// instruction set: assembler <base1> [<base2> ...]. Each base name gets
// "<base>.as" appended for input; ".am"/".ob"/".ent"/".ext" are written
// on success. One file's failure never stops the others.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"arc24asm/pkg/asm"
	"arc24asm/pkg/report"
	"arc24asm/pkg/utils"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <base1> [<base2> ...]", filepath.Base(os.Args[0]))
	}

	bases := os.Args[1:]
	stderr := report.NewWriter(os.Stderr)

	var g errgroup.Group
	for _, base := range bases {
		base := base
		g.Go(func() error {
			processFile(base, stderr)
			return nil
		})
	}
	_ = g.Wait()

	// Exit 0 once at least one argument was given, regardless of how
	// many files failed: a failing file already got its own report.
}

// processFile runs the full pipeline over one base name and writes its
// output files. It reports true on success.
func processFile(base string, stderr *report.Writer) bool {
	sourceName := base + ".as"

	fullPath, _, err := utils.GetPathInfo(sourceName)
	if err != nil {
		reportFileError(stderr, sourceName, asm.ErrFileOpen, err)
		return false
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		reportFileError(stderr, sourceName, asm.ErrFileRead, err)
		return false
	}

	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	result := asm.Run(base, lines)
	ctx := result.Context

	if result.Am != nil {
		if err := writeLines(base+".am", result.Am); err != nil {
			fmt.Fprintf(os.Stderr, "casm: %v\n", err)
		}
	}

	if ctx.Errors.Len() > 0 {
		stderr.Errors(ctx.SourceName, ctx.Errors)
		return false
	}

	if err := writeLines(base+".ob", asm.FormatObject(ctx)); err != nil {
		fmt.Fprintf(os.Stderr, "casm: %v\n", err)
		return false
	}
	if len(ctx.Entries) > 0 {
		if err := writeLines(base+".ent", asm.FormatEntries(ctx)); err != nil {
			fmt.Fprintf(os.Stderr, "casm: %v\n", err)
			return false
		}
	}
	if len(ctx.Externals) > 0 {
		if err := writeLines(base+".ext", asm.FormatExternals(ctx)); err != nil {
			fmt.Fprintf(os.Stderr, "casm: %v\n", err)
			return false
		}
	}
	return true
}

// reportFileError routes a filesystem failure through the same framed
// report as every other diagnostic, so a missing or unreadable source
// file looks like any other assembler error rather than a bare Go
// error string.
func reportFileError(stderr *report.Writer, sourceName string, kind asm.ErrorKind, cause error) {
	list := &asm.ErrorList{}
	list.Add(kind, sourceName, 0, "%v", cause)
	stderr.Errors(sourceName, list)
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, l := range lines {
		if _, err := f.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	return nil
}
