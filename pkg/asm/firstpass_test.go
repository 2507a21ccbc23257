package asm

import "testing"

func TestValidateLabelNameRejectsReserved(t *testing.T) {
	errs := &ErrorList{}
	if ValidateLabelName("f.as", "mov", 1, map[string]Symbol{}, errs) {
		t.Fatal("expected mov to be rejected as a label")
	}
	if errs.Len() != 1 || errs.Items()[0].Kind != ErrLabelCollidesInstruction {
		t.Fatalf("got %v", errs.Items())
	}
}

func TestValidateLabelNameLength(t *testing.T) {
	errs := &ErrorList{}
	longName := ""
	for i := 0; i < MaxLabelLen+1; i++ {
		longName += "a"
	}
	if ValidateLabelName("f.as", longName, 1, map[string]Symbol{}, errs) {
		t.Fatal("expected over-length label to be rejected")
	}
	if errs.Items()[0].Kind != ErrLabelMaxLen {
		t.Fatalf("got %v", errs.Items())
	}
}

func TestValidateLabelNameDuplicate(t *testing.T) {
	errs := &ErrorList{}
	symbols := map[string]Symbol{"LOOP": {Name: "LOOP", Address: 100}}
	if ValidateLabelName("f.as", "LOOP", 5, symbols, errs) {
		t.Fatal("expected duplicate label to be rejected")
	}
	if errs.Items()[0].Kind != ErrLabelDuplicate {
		t.Fatalf("got %v", errs.Items())
	}
}

func TestDefineSymbolExternNotInsertedAsLocalOnly(t *testing.T) {
	ctx := NewContext("f")
	tokens := []Token{tok(TokDot, "."), tok(TokDirExtern, "extern"), tok(TokIdentifier, "W")}
	DefineSymbol(ctx, tokens)

	sym, ok := ctx.Symbols["W"]
	if !ok || !sym.External {
		t.Fatalf("extern symbol not recorded as external: %+v", sym)
	}
	if len(ctx.ExternNames) != 1 {
		t.Fatalf("ExternNames = %v, want 1 entry", ctx.ExternNames)
	}
}

func TestDefineSymbolEntryNotInsertedIntoSymbolTable(t *testing.T) {
	ctx := NewContext("f")
	tokens := []Token{tok(TokDot, "."), tok(TokDirEntry, "entry"), tok(TokIdentifier, "MAIN")}
	DefineSymbol(ctx, tokens)

	if _, ok := ctx.Symbols["MAIN"]; ok {
		t.Fatal("entry declaration must not define a symbol table entry by itself")
	}
	if len(ctx.EntryNames) != 1 {
		t.Fatalf("EntryNames = %v, want 1 entry", ctx.EntryNames)
	}
}

func TestFirstPassAdvancesIC(t *testing.T) {
	ctx := NewContext("f")
	ctx.PreprocessedLines = []string{"mov r1, r2", "add #5, r3"}
	ctx.Tokens = append(ctx.Tokens, Tokenize(ctx.SourceName, ctx.PreprocessedLines[0], 1, ctx.Errors)...)
	ctx.Tokens = append(ctx.Tokens, Tokenize(ctx.SourceName, ctx.PreprocessedLines[1], 2, ctx.Errors)...)
	ctx.indexTokens()

	FirstPass(ctx)

	if ctx.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors.Items())
	}
	// mov r1,r2 -> 1 word; add #5,r3 -> header + immediate = 2 words
	if ctx.IC != InitialIC+3 {
		t.Errorf("IC = %d, want %d", ctx.IC, InitialIC+3)
	}
}
