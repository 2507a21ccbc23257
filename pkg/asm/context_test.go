package asm

import "testing"

func TestRunValidProgramProducesObjectCode(t *testing.T) {
	src := []string{
		".extern W",
		"MAIN: mov #5, r1",
		"      add r1, W",
		"LOOP: jmp &MAIN",
		"      .entry LOOP",
		"      stop",
	}
	res := Run("prog", src)
	ctx := res.Context
	if ctx.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors.Items())
	}

	if len(ctx.Externals) != 1 || ctx.Externals[0].Name != "W" {
		t.Fatalf("Externals = %v", ctx.Externals)
	}
	if len(ctx.Entries) != 1 || ctx.Entries[0].Name != "LOOP" {
		t.Fatalf("Entries = %v", ctx.Entries)
	}

	// mov #5,r1 -> 2 words; add r1,W -> 2 words; jmp &MAIN -> 2 words; stop -> 1 word
	wantIC := InitialIC + 7
	if ctx.IC != wantIC {
		t.Errorf("IC = %d, want %d", ctx.IC, wantIC)
	}
	if len(ctx.CodeImage) != 7 {
		t.Fatalf("CodeImage has %d words, want 7: %v", len(ctx.CodeImage), ctx.CodeImage)
	}
}

func TestRunUndeclaredEntryReportsSymbolNotFound(t *testing.T) {
	src := []string{
		".entry GHOST",
		"stop",
	}
	res := Run("prog", src)
	ctx := res.Context
	found := false
	for _, e := range ctx.Errors.Items() {
		if e.Kind == ErrSymbolNotFound {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrSymbolNotFound, got %v", ctx.Errors.Items())
	}
}

func TestRunStopsAfterPreprocessorErrors(t *testing.T) {
	src := []string{"mcro Bad", "stop", "mcroend"}
	res := Run("prog", src)
	if res.Am != nil {
		t.Fatal("Am should be nil when preprocessing fails")
	}
	if res.Context.Errors.Len() == 0 {
		t.Fatal("expected preprocessor error")
	}
}

func TestRunDataAndStringDirectives(t *testing.T) {
	src := []string{
		"NUMS: .data 1, -1, 7",
		"MSG:  .string \"hi\"",
		"stop",
	}
	res := Run("prog", src)
	ctx := res.Context
	if ctx.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors.Items())
	}
	if ctx.DC != 6 {
		t.Fatalf("DC = %d, want 6 (3 data words + 2 chars + terminator)", ctx.DC)
	}
	if len(ctx.DataImage) != 6 {
		t.Fatalf("DataImage has %d words, want 6", len(ctx.DataImage))
	}
	last := ctx.DataImage[len(ctx.DataImage)-1]
	if last.Value != 0 {
		t.Errorf("string terminator = %d, want 0", last.Value)
	}
}

func TestFormatObjectHeader(t *testing.T) {
	src := []string{"MAIN: mov #1, r1", "stop"}
	res := Run("prog", src)
	lines := FormatObject(res.Context)
	if len(lines) == 0 {
		t.Fatal("expected at least a header line")
	}
	want := "     3 0"
	if lines[0] != want {
		t.Errorf("header = %q, want %q", lines[0], want)
	}
}
