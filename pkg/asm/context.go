package asm

// Context is the per-file aggregate described in spec.md §3. It owns
// every list produced while translating one source file; nothing
// crosses a Context boundary, so processing many files concurrently
// (as cmd/casm does) only ever requires one Context each.
type Context struct {
	Filename   string // base name, without extension
	SourceName string // "<base>.as", used in diagnostics

	PreprocessedLines []string
	Tokens            []Token // full token stream, in line order

	Symbols     map[string]Symbol
	EntryNames  []Symbol
	ExternNames []Symbol

	Entries   []Symbol // resolved, written to .ent
	Externals []Symbol // resolved, written to .ext

	CodeImage []Word
	DataImage []Word

	IC int
	DC int

	Errors *ErrorList

	lineIndex map[int][]Token
}

// NewContext creates an empty Context ready to run the pipeline.
// base is the file's name without its source extension.
func NewContext(base string) *Context {
	return &Context{
		Filename:   base,
		SourceName: base + ".as",
		Symbols:    make(map[string]Symbol),
		Errors:     &ErrorList{},
		IC:         InitialIC,
	}
}

// tokensForLine returns the tokens belonging to a single 1-based
// preprocessed line number.
func (ctx *Context) tokensForLine(lineNo int) []Token {
	return ctx.lineIndex[lineNo]
}

func (ctx *Context) indexTokens() {
	ctx.lineIndex = make(map[int][]Token, len(ctx.PreprocessedLines))
	for _, t := range ctx.Tokens {
		ctx.lineIndex[t.Line] = append(ctx.lineIndex[t.Line], t)
	}
}

// Result is the outcome of running the pipeline over one file.
type Result struct {
	Context *Context
	// Am, when non-nil, is the expanded intermediate source ready to
	// be written to "<base>.am". It is set as soon as preprocessing
	// finishes error-free, even if a later stage fails.
	Am []string
}

// Run executes the five-stage pipeline over rawLines (the raw content
// of "<base>.as", split into lines). Per spec.md §5, each stage that
// leaves any errors in the list stops the pipeline before the next
// stage runs; the Context is still returned so a caller can inspect
// ctx.Errors.
func Run(base string, rawLines []string) Result {
	ctx := NewContext(base)

	expanded := Preprocess(ctx.SourceName, rawLines, ctx.Errors)
	if ctx.Errors.Len() > 0 {
		return Result{Context: ctx}
	}
	ctx.PreprocessedLines = expanded
	result := Result{Context: ctx, Am: expanded}

	for i, line := range expanded {
		lineNo := i + 1
		ctx.Tokens = append(ctx.Tokens, Tokenize(ctx.SourceName, line, lineNo, ctx.Errors)...)
	}
	if ctx.Errors.Len() > 0 {
		return result
	}
	ctx.indexTokens()

	FirstPass(ctx)
	if ctx.Errors.Len() > 0 {
		return result
	}

	SecondPass(ctx)
	return result
}
