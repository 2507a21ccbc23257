package asm

import "testing"

func TestSplitLexemes(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"mov r1, r2", []string{"mov", "r1", ",", "r2"}},
		{"LOOP: .data 1,2,3", []string{"LOOP", ":", ".", "data", "1", ",", "2", ",", "3"}},
		{`STR: .string "abc"`, []string{"STR", ":", ".", "string", `"`, "abc", `"`}},
		{"", nil},
	}
	for _, tc := range tests {
		got := splitLexemes(tc.line)
		if len(got) != len(tc.want) {
			t.Fatalf("splitLexemes(%q) = %v; want %v", tc.line, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("splitLexemes(%q)[%d] = %q; want %q", tc.line, i, got[i], tc.want[i])
			}
		}
	}
}

func TestTokenizeLabelAndInstruction(t *testing.T) {
	errs := &ErrorList{}
	tokens := Tokenize("f.as", "LOOP: mov r1, r2", 1, errs)
	if errs.Len() != 0 {
		t.Fatalf("unexpected errors: %v", errs.Items())
	}
	if len(tokens) != 6 {
		t.Fatalf("got %d tokens, want 6: %v", len(tokens), tokens)
	}
	if tokens[0].Kind != TokLabel || tokens[0].Lexeme != "LOOP" {
		t.Errorf("token 0 = %v, want LABEL(LOOP)", tokens[0])
	}
	if tokens[2].Kind != TokInstruction {
		t.Errorf("token 2 = %v, want instruction", tokens[2])
	}
	if tokens[3].Kind != TokRegister || tokens[5].Kind != TokRegister {
		t.Errorf("register tokens misclassified: %v %v", tokens[3], tokens[5])
	}
}

func TestTokenizeImmediate(t *testing.T) {
	errs := &ErrorList{}
	tokens := Tokenize("f.as", "mov #7, r2", 1, errs)
	if errs.Len() != 0 {
		t.Fatalf("unexpected errors: %v", errs.Items())
	}
	found := false
	for _, tok := range tokens {
		if tok.Lexeme == "7" {
			found = true
			if tok.Kind != TokImmediate {
				t.Errorf("immediate value token kind = %v, want TokImmediate", tok.Kind)
			}
		}
	}
	if !found {
		t.Fatalf("did not find token for '7' in %v", tokens)
	}
}

func TestTokenizeInvalidToken(t *testing.T) {
	errs := &ErrorList{}
	Tokenize("f.as", "mov r1, $bad", 1, errs)
	if errs.Len() != 1 {
		t.Fatalf("expected 1 error, got %d: %v", errs.Len(), errs.Items())
	}
	if errs.Items()[0].Kind != ErrInvalidToken {
		t.Errorf("kind = %v, want ErrInvalidToken", errs.Items()[0].Kind)
	}
}

func TestTokenizeStringLiteral(t *testing.T) {
	errs := &ErrorList{}
	tokens := Tokenize("f.as", `STR: .string "hello"`, 1, errs)
	if errs.Len() != 0 {
		t.Fatalf("unexpected errors: %v", errs.Items())
	}
	text := StringLiteralText(tokens)
	if text != "hello" {
		t.Errorf("StringLiteralText = %q, want %q", text, "hello")
	}
}

func TestColonDotMissingSpace(t *testing.T) {
	errs := &ErrorList{}
	Tokenize("f.as", "LOOP:.data 1", 1, errs)
	found := false
	for _, e := range errs.Items() {
		if e.Kind == ErrLabelMissingSpace {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ErrLabelMissingSpace, got %v", errs.Items())
	}
}
