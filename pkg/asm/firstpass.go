package asm

import "unicode"

// ValidateLabelName checks a candidate label (or macro name reused as
// a label) against spec.md §3's naming rule, reporting the first
// defect it finds. It returns false if the name cannot be used as a
// symbol.
func ValidateLabelName(filename string, name string, lineNo int, symbols map[string]Symbol, errs *ErrorList) bool {
	if name == "" {
		errs.Add(ErrEmptyLabel, filename, lineNo, "empty label name")
		return false
	}
	if len(name) > MaxLabelLen {
		errs.Add(ErrLabelMaxLen, filename, lineNo, "label name %q exceeds maximum length of %d characters", name, MaxLabelLen)
		return false
	}
	if !unicode.IsLetter(rune(name[0])) {
		errs.Add(ErrLabelStartsWithDigit, filename, lineNo, "label name %q must start with a letter", name)
		return false
	}
	for i := 1; i < len(name); i++ {
		r := rune(name[i])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			errs.Add(ErrLabelInvalidChar, filename, lineNo, "label name %q contains invalid character %q", name, string(r))
			return false
		}
	}
	if IsInstruction(name) {
		errs.Add(ErrLabelCollidesInstruction, filename, lineNo, "label name %q cannot be an instruction name", name)
		return false
	}
	if IsRegister(name) {
		errs.Add(ErrLabelCollidesRegister, filename, lineNo, "label name %q cannot be a register name", name)
		return false
	}
	if IsDirective(name) {
		errs.Add(ErrLabelCollidesDirective, filename, lineNo, "label name %q cannot be a directive name", name)
		return false
	}
	if _, exists := symbols[name]; exists {
		errs.Add(ErrLabelDuplicate, filename, lineNo, "label %q already defined", name)
		return false
	}
	return true
}

func validateAddress(filename string, address int, lineNo int, errs *ErrorList) {
	if address > Word24Max {
		errs.Add(ErrAddrOutOfBounds, filename, lineNo, "address %d exceeds maximum allowed value of %d", address, Word24Max)
	}
}

// DefineSymbol implements spec.md §4.5's symbol definition rules for
// one statement's tokens. It mutates ctx.Symbols, ctx.EntryNames and
// ctx.ExternNames as appropriate.
func DefineSymbol(ctx *Context, tokens []Token) {
	if len(tokens) == 0 {
		return
	}

	i := 0
	var label *Token
	if tokens[0].Kind == TokLabel {
		label = &tokens[0]
		i = 2
	} else {
		i = 1
	}
	if i < len(tokens) && tokens[i].Kind == TokDot {
		i++
	}
	if i >= len(tokens) {
		return
	}
	directiveTok := tokens[i]

	isEntry := IsEntryStatement(tokens)
	isExtern := IsExternStatement(tokens)

	if label != nil && !isEntry && !isExtern {
		if !ValidateLabelName(ctx.Filename, label.Lexeme, label.Line, ctx.Symbols, ctx.Errors) {
			return
		}
	}

	var name string
	address := 0
	external := false
	entry := false

	switch directiveTok.Kind {
	case TokInstruction, TokDirData, TokDirString:
		if label == nil {
			return
		}
		name = label.Lexeme
		address = ctx.IC
		validateAddress(ctx.Filename, address, label.Line, ctx.Errors)

	case TokDirExtern:
		n, ok := OperandName(tokens[i+1:])
		if !ok {
			return
		}
		name = n
		external = true

	case TokDirEntry:
		n, ok := OperandName(tokens[i+1:])
		if !ok {
			return
		}
		name = n
		entry = true

	default:
		return
	}

	sym := Symbol{Name: name, Address: address, External: external, Entry: entry}

	if external || !entry {
		ctx.Symbols[name] = sym
	}

	if external {
		ctx.ExternNames = append(ctx.ExternNames, sym)
	} else if entry {
		ctx.EntryNames = append(ctx.EntryNames, sym)
	}
}

// FirstPass walks every statement, defines symbols and advances IC/DC
// per spec.md §4.5.
func FirstPass(ctx *Context) {
	for lineNo := 1; lineNo <= len(ctx.PreprocessedLines); lineNo++ {
		tokens := ctx.tokensForLine(lineNo)
		if len(tokens) == 0 {
			continue
		}

		if IsLabelStatement(tokens) || IsEntryStatement(tokens) || IsExternStatement(tokens) {
			DefineSymbol(ctx, tokens)
		}

		isInstr := IsInstructionStatement(tokens)
		isDir := IsDirectiveStatement(tokens)

		if isInstr {
			pi, ok := ParseInstruction(ctx.Filename, tokens, true, ctx.Errors)
			if ok {
				ctx.IC += pi.WordCount
			}
		}

		if isDir {
			pd, ok := ParseDirective(ctx.Filename, tokens, ctx.Errors)
			if ok {
				ctx.DC += pd.WordCount
				ctx.IC += pd.WordCount
			}
		}

		if !isInstr && !isDir {
			ctx.Errors.Add(ErrInvalidStatement, ctx.Filename, lineNo, "invalid statement")
		}
	}
}
