package asm

import "strconv"

// IsLabelStatement reports whether the first token of a statement is
// a LABEL (i.e. an identifier immediately followed by a colon).
func IsLabelStatement(tokens []Token) bool {
	return len(tokens) > 0 && tokens[0].Kind == TokLabel
}

// IsEntryStatement reports whether any token in the statement is the
// `entry` directive keyword.
func IsEntryStatement(tokens []Token) bool {
	for _, t := range tokens {
		if t.Kind == TokDirEntry {
			return true
		}
	}
	return false
}

// IsExternStatement reports whether any token in the statement is the
// `extern` directive keyword.
func IsExternStatement(tokens []Token) bool {
	for _, t := range tokens {
		if t.Kind == TokDirExtern {
			return true
		}
	}
	return false
}

// IsInstructionStatement reports whether the statement (skipping a
// leading label) contains an instruction mnemonic.
func IsInstructionStatement(tokens []Token) bool {
	i := 0
	if IsLabelStatement(tokens) {
		i = 2
	}
	for ; i < len(tokens); i++ {
		if tokens[i].Kind == TokInstruction {
			return true
		}
	}
	return false
}

// IsDirectiveStatement reports whether the statement (skipping a
// leading label) contains one of the four directive keywords.
func IsDirectiveStatement(tokens []Token) bool {
	i := 0
	if IsLabelStatement(tokens) {
		i = 2
	}
	for ; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case TokDirData, TokDirString, TokDirEntry, TokDirExtern:
			return true
		}
	}
	return false
}

func isOperandToken(t Token) bool {
	return t.Kind == TokRegister || t.Kind == TokImmediate || t.Kind == TokIdentifier
}

func countOperandTokens(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		if isOperandToken(t) {
			n++
		}
	}
	return n
}

func addressingModeOf(t Token, relative bool) AddressingMode {
	if relative {
		return ModeRelative
	}
	switch t.Kind {
	case TokImmediate:
		return ModeImmediate
	case TokRegister:
		return ModeRegister
	case TokIdentifier:
		return ModeDirect
	default:
		return ModeNone
	}
}

// ParseInstruction parses an instruction statement. When validate is
// true (first-pass mode) it also performs the full per-statement
// semantic validation table from spec.md §4.3; second-pass callers
// pass validate=false since the statement was already checked once.
//
// On a fatal structural defect (missing label colon) it reports the
// error and returns ok=false; a statement with only semantic defects
// still returns ok=true with WordCount set so IC/DC bookkeeping stays
// correct.
func ParseInstruction(filename string, tokens []Token, validate bool, errs *ErrorList) (*ParsedInstruction, bool) {
	if len(tokens) == 0 {
		return nil, false
	}

	pi := &ParsedInstruction{WordCount: 1}
	i := 0
	lineNo := tokens[0].Line

	if tokens[0].Kind == TokLabel {
		lbl := tokens[0]
		pi.Label = &lbl
		i = 2
	} else if tokens[0].Kind == TokIdentifier {
		if len(tokens) < 2 || tokens[1].Kind != TokColon {
			errs.Add(ErrLabelMissingColon, filename, lineNo, "missing colon after label %q", tokens[0].Lexeme)
			return nil, false
		}
	}

	if i >= len(tokens) || tokens[i].Kind != TokInstruction {
		return nil, false
	}
	pi.Mnemonic = tokens[i]
	info, _ := LookupInstruction(tokens[i].Lexeme)
	pi.Info = info
	i++

	operandCount := countOperandTokens(tokens[i:])
	commaCount := 0
	relative := false
	var rs, rt *Operand

	for ; i < len(tokens); i++ {
		t := tokens[i]
		if t.Kind == TokAmper {
			relative = true
			continue
		}
		if isOperandToken(t) {
			op := Operand{Token: t, Mode: addressingModeOf(t, relative)}
			if rs == nil && rt == nil {
				rs = &op
			} else if rt == nil {
				rt = &op
			}
			relative = false
			continue
		}
		if t.Kind == TokComma {
			commaCount++
		}
	}

	if operandCount == 1 {
		rt = rs
		rs = nil
	}
	pi.RS = rs
	pi.RT = rt

	if rs != nil && rs.IsExtra() {
		pi.WordCount++
	}
	if rt != nil && rt.IsExtra() {
		pi.WordCount++
	}

	if !validate {
		return pi, true
	}

	if operandCount != info.NumOps {
		errs.Add(ErrWrongOperandCount, filename, lineNo, "%s expects %d operand(s), got %d", pi.Mnemonic.Lexeme, info.NumOps, operandCount)
	}
	if rs != nil && !permits(info.SrcMask, rs.Mode) {
		errs.Add(ErrBadAddressingMode, filename, lineNo, "%s does not permit %s addressing for the source operand", pi.Mnemonic.Lexeme, addressingModeName(rs.Mode))
	}
	if rt != nil && !permits(info.DstMask, rt.Mode) {
		errs.Add(ErrBadAddressingMode, filename, lineNo, "%s does not permit %s addressing for the destination operand", pi.Mnemonic.Lexeme, addressingModeName(rt.Mode))
	}
	if rs != nil && rs.Mode == ModeImmediate {
		validateImmediateToken(filename, rs.Token, errs)
	}
	if rt != nil && rt.Mode == ModeImmediate {
		validateImmediateToken(filename, rt.Token, errs)
	}
	if operandCount == 2 && commaCount != 1 {
		errs.Add(ErrInstIllegalNumComma, filename, lineNo, "invalid number of commas in instruction %q", pi.Mnemonic.Lexeme)
	}

	return pi, true
}

func addressingModeName(m AddressingMode) string {
	switch m {
	case ModeImmediate:
		return "immediate"
	case ModeDirect:
		return "direct"
	case ModeRelative:
		return "relative"
	case ModeRegister:
		return "register"
	default:
		return "none"
	}
}

func parseImmediateValue(lexeme string) (int, bool) {
	v, err := strconv.Atoi(lexeme)
	return v, err == nil
}

func validateImmediateToken(filename string, t Token, errs *ErrorList) {
	v, ok := parseImmediateValue(t.Lexeme)
	if !ok {
		errs.Add(ErrInvalidImm, filename, t.Line, "invalid immediate value %q", t.Lexeme)
		return
	}
	if v < Imm21Min || v > Imm21Max {
		errs.Add(ErrImmOutOfBounds, filename, t.Line, "immediate value %d exceeds allowed range (%d to %d)", v, Imm21Min, Imm21Max)
	}
}

// ParseDirective parses a data/string/entry/extern statement and
// validates it per spec.md §4.3. The comma-list checks iterate to
// completion and check the trailing-comma condition once at the end,
// rather than returning mid-loop on the last element (see
// spec.md §9's open question about the reference implementation's
// early-return loop).
func ParseDirective(filename string, tokens []Token, errs *ErrorList) (*ParsedDirective, bool) {
	if len(tokens) == 0 {
		return nil, false
	}

	pd := &ParsedDirective{Tokens: tokens}
	i := 0
	lineNo := tokens[0].Line

	if tokens[0].Kind == TokLabel {
		lbl := tokens[0]
		pd.Label = &lbl
		i = 2
	}

	if i >= len(tokens) || tokens[i].Kind != TokDot {
		errs.Add(ErrDirDotMissing, filename, lineNo, "a dot is missing before the directive")
		return nil, false
	}
	i++

	if i >= len(tokens) {
		errs.Add(ErrInvalidStatement, filename, lineNo, "empty directive statement")
		return nil, false
	}

	switch tokens[i].Kind {
	case TokDirData:
		pd.Kind = DirData
		validateDataList(filename, tokens[i+1:], errs, pd)
	case TokDirString:
		pd.Kind = DirString
		validateStringLiteral(filename, tokens[i+1:], lineNo, errs, pd)
	case TokDirEntry:
		pd.Kind = DirEntry
	case TokDirExtern:
		pd.Kind = DirExtern
	default:
		errs.Add(ErrInvalidStatement, filename, lineNo, "unknown directive %q", tokens[i].Lexeme)
		return nil, false
	}

	return pd, true
}

func validateDataList(filename string, rest []Token, errs *ErrorList, pd *ParsedDirective) {
	if len(rest) == 0 {
		errs.Add(ErrInvalidData, filename, pd.Tokens[0].Line, "data directive has no operands")
		return
	}
	if rest[0].Kind == TokComma {
		errs.Add(ErrDataIllegalComma, filename, rest[0].Line, "integer list cannot start with a comma")
		return
	}

	count := 0
	for i, t := range rest {
		switch t.Kind {
		case TokImmediate:
			validateDataValue(filename, t, errs)
			count++
			if i+1 < len(rest) && rest[i+1].Kind != TokComma {
				errs.Add(ErrDataIllegalComma, filename, t.Line, "missing comma between %q and %q", t.Lexeme, rest[i+1].Lexeme)
				return
			}
		case TokComma:
			if i+1 < len(rest) && rest[i+1].Kind == TokComma {
				errs.Add(ErrMultiComma, filename, t.Line, "multiple consecutive commas in data directive")
				return
			}
		default:
			errs.Add(ErrInvalidData, filename, t.Line, "unexpected token %q in data directive", t.Lexeme)
			return
		}
	}

	if rest[len(rest)-1].Kind == TokComma {
		errs.Add(ErrDataIllegalComma, filename, rest[len(rest)-1].Line, "integer list cannot end with a comma")
		return
	}

	pd.WordCount = count
}

func validateDataValue(filename string, t Token, errs *ErrorList) {
	v, ok := parseImmediateValue(t.Lexeme)
	if !ok {
		errs.Add(ErrInvalidData, filename, t.Line, "invalid data value %q", t.Lexeme)
		return
	}
	if v < Imm21Min || v > Imm21Max {
		errs.Add(ErrImmOutOfBounds, filename, t.Line, "data value %d exceeds allowed range (%d to %d)", v, Imm21Min, Imm21Max)
	}
}

func validateStringLiteral(filename string, rest []Token, lineNo int, errs *ErrorList, pd *ParsedDirective) {
	if len(rest) == 0 {
		errs.Add(ErrStrMissingQuote, filename, lineNo, "expected a quote at the beginning of the string")
		return
	}
	if rest[0].Kind == TokComma {
		errs.Add(ErrStrIllegalComma, filename, lineNo, "string directive cannot start with a comma")
		return
	}
	if rest[0].Kind != TokQuote {
		errs.Add(ErrStrMissingQuote, filename, lineNo, "expected a quote at the beginning of the string")
		return
	}
	if rest[len(rest)-1].Kind == TokComma {
		errs.Add(ErrStrIllegalComma, filename, lineNo, "string directive cannot end with a comma")
		return
	}
	if rest[len(rest)-1].Kind != TokQuote {
		errs.Add(ErrStrMissingQuote, filename, lineNo, "expected a quote at the end of the string")
		return
	}

	length := 0
	for _, t := range rest {
		if t.Kind == TokStringLit {
			length += len(t.Lexeme)
		}
	}
	pd.WordCount = length + 1
}

// StringLiteralText concatenates the literal characters (without the
// surrounding quotes) of a parsed .string directive, in source order.
func StringLiteralText(tokens []Token) string {
	var sb []byte
	for _, t := range tokens {
		if t.Kind == TokStringLit {
			sb = append(sb, t.Lexeme...)
		}
	}
	return string(sb)
}

// OperandName extracts the entry-name operand of an .entry/.extern
// directive: the single identifier that follows the directive keyword.
func OperandName(tokens []Token) (string, bool) {
	for _, t := range tokens {
		if t.Kind == TokIdentifier {
			return t.Lexeme, true
		}
	}
	return "", false
}
