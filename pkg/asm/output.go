package asm

import "fmt"

// FormatObject renders the ".ob" file body: a header line giving the
// code and data image sizes in decimal, followed by one line per code
// word and then one line per data word, each as a 7-digit decimal
// address and a 6-digit hex value. Data words share the instruction
// counter with code, so when data directives come before code the
// lines are not in address order.
func FormatObject(ctx *Context) []string {
	codeSize := ctx.IC - InitialIC - ctx.DC
	lines := make([]string, 0, 1+len(ctx.CodeImage)+len(ctx.DataImage))
	lines = append(lines, fmt.Sprintf("     %d %d", codeSize, ctx.DC))

	for _, w := range ctx.CodeImage {
		lines = append(lines, fmt.Sprintf("%07d %06x", w.Address, w.Value))
	}
	for _, w := range ctx.DataImage {
		lines = append(lines, fmt.Sprintf("%07d %06x", w.Address, w.Value))
	}
	return lines
}

// FormatEntries renders the ".ent" file body, one "name address" line
// per resolved entry symbol.
func FormatEntries(ctx *Context) []string {
	lines := make([]string, 0, len(ctx.Entries))
	for _, s := range ctx.Entries {
		lines = append(lines, fmt.Sprintf("%s %07d", s.Name, s.Address))
	}
	return lines
}

// FormatExternals renders the ".ext" file body, one "name address"
// line per reference to a declared extern symbol.
func FormatExternals(ctx *Context) []string {
	lines := make([]string, 0, len(ctx.Externals))
	for _, s := range ctx.Externals {
		lines = append(lines, fmt.Sprintf("%s %07d", s.Name, s.Address))
	}
	return lines
}
