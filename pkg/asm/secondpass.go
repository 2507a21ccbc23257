package asm

// SecondPass re-walks every statement using the token list built
// during lexing, resolves symbol references, encodes instructions and
// data/string directives into words, and populates the resolved
// entries/externals tables. It never touches ctx.IC/ctx.DC (those
// hold the first pass's final totals, reused for the object header);
// it tracks its own emission cursor independently, exactly as
// spec.md's Design Notes require keeping the two counters separate.
func SecondPass(ctx *Context) {
	ic := InitialIC

	for lineNo := 1; lineNo <= len(ctx.PreprocessedLines); lineNo++ {
		tokens := ctx.tokensForLine(lineNo)
		if len(tokens) == 0 {
			continue
		}

		if IsInstructionStatement(tokens) {
			pi, ok := ParseInstruction(ctx.Filename, tokens, false, ctx.Errors)
			if !ok {
				continue
			}
			logReferences(ctx, pi, ic)
			encodeInstruction(ctx, pi, &ic)
		}

		if IsDirectiveStatement(tokens) {
			pd, ok := ParseDirective(ctx.Filename, tokens, ctx.Errors)
			if ok {
				encodeDirective(ctx, pd, &ic)
			}
		}
	}

	resolveEntries(ctx)
}

// logReferences appends an Externals entry for every reference site
// (label or operand identifier) whose name is a declared extern. The
// destination operand's emission address depends on whether the
// source operand consumed an extra word, per the reference
// implementation's IC+1/IC+2 split.
func logReferences(ctx *Context, pi *ParsedInstruction, headerIC int) {
	if pi.Label != nil {
		recordExternReference(ctx, pi.Label.Lexeme, headerIC+1)
	}
	if pi.RS != nil && pi.RS.Token.Kind == TokIdentifier {
		recordExternReference(ctx, pi.RS.Token.Lexeme, headerIC+1)
	}
	if pi.RT != nil && pi.RT.Token.Kind == TokIdentifier {
		rtAddr := headerIC + 1
		if pi.RS != nil && pi.RS.IsExtra() {
			rtAddr = headerIC + 2
		}
		recordExternReference(ctx, pi.RT.Token.Lexeme, rtAddr)
	}
}

func recordExternReference(ctx *Context, name string, address int) {
	for _, en := range ctx.ExternNames {
		if en.Name == name {
			ctx.Externals = append(ctx.Externals, Symbol{Name: name, Address: address, External: true})
			return
		}
	}
}

// resolveEntries fills in the address of every declared .entry from
// the symbol table, once, after every label has been defined. A
// declared entry with no matching local definition is a defect: per
// spec.md §3, entry symbols must resolve to a locally-defined address.
func resolveEntries(ctx *Context) {
	for _, en := range ctx.EntryNames {
		sym, ok := ctx.Symbols[en.Name]
		if !ok || sym.External {
			ctx.Errors.Add(ErrSymbolNotFound, ctx.Filename, 0, "entry symbol %q was never defined in this file", en.Name)
			continue
		}
		ctx.Entries = append(ctx.Entries, Symbol{Name: en.Name, Address: sym.Address, Entry: true})
	}
}

func encodeInstruction(ctx *Context, pi *ParsedInstruction, ic *int) {
	header := EncodeHeader(pi.Info, pi.RS, pi.RT)
	ctx.CodeImage = append(ctx.CodeImage, Word{Address: *ic, Value: header})
	*ic++

	if pi.RS != nil && pi.RS.IsExtra() {
		encodeExtraWord(ctx, pi.RS, *ic)
		*ic++
	}
	if pi.RT != nil && pi.RT.IsExtra() {
		encodeExtraWord(ctx, pi.RT, *ic)
		*ic++
	}
}

func encodeExtraWord(ctx *Context, op *Operand, addr int) {
	switch op.Mode {
	case ModeImmediate:
		v, ok := parseImmediateValue(op.Token.Lexeme)
		if !ok {
			return
		}
		if v < Imm21Min || v > Imm21Max {
			ctx.Errors.Add(ErrImmOutOfBounds, ctx.Filename, op.Token.Line, "immediate value %d exceeds allowed range (%d to %d)", v, Imm21Min, Imm21Max)
		}
		ctx.CodeImage = append(ctx.CodeImage, Word{Address: addr, Value: EncodeImmediateWord(v, AREAbsolute)})

	case ModeDirect:
		sym, ok := ctx.Symbols[op.Token.Lexeme]
		if !ok {
			ctx.Errors.Add(ErrSymbolNotFound, ctx.Filename, op.Token.Line, "symbol %q not found in symbol table", op.Token.Lexeme)
			return
		}
		if sym.Address > Word24Max {
			ctx.Errors.Add(ErrAddrOutOfBounds, ctx.Filename, op.Token.Line, "symbol address %d exceeds maximum allowed value of %d", sym.Address, Word24Max)
		}
		are := ARERelocatable
		if sym.External {
			are = AREExternal
		}
		ctx.CodeImage = append(ctx.CodeImage, Word{Address: addr, Value: EncodeImmediateWord(sym.Address, are)})

	case ModeRelative:
		sym, ok := ctx.Symbols[op.Token.Lexeme]
		if !ok {
			ctx.Errors.Add(ErrSymbolNotFound, ctx.Filename, op.Token.Line, "symbol %q not found in symbol table", op.Token.Lexeme)
			return
		}
		rel := sym.Address - addr + 1
		if rel < Imm21Min || rel > Imm21Max {
			ctx.Errors.Add(ErrAddrOutOfBounds, ctx.Filename, op.Token.Line, "relative address offset %d exceeds allowed range (%d to %d)", rel, Imm21Min, Imm21Max)
		}
		ctx.CodeImage = append(ctx.CodeImage, Word{Address: addr, Value: EncodeImmediateWord(rel, AREAbsolute)})
	}
}

func encodeDirective(ctx *Context, pd *ParsedDirective, ic *int) {
	switch pd.Kind {
	case DirData:
		for _, t := range pd.Tokens {
			if t.Kind != TokImmediate {
				continue
			}
			v, ok := parseImmediateValue(t.Lexeme)
			if !ok {
				continue
			}
			ctx.DataImage = append(ctx.DataImage, Word{Address: *ic, Value: uint32(v) & Word24Max})
			*ic++
		}

	case DirString:
		text := StringLiteralText(pd.Tokens)
		for i := 0; i < len(text); i++ {
			ctx.DataImage = append(ctx.DataImage, Word{Address: *ic, Value: uint32(text[i])})
			*ic++
		}
		ctx.DataImage = append(ctx.DataImage, Word{Address: *ic, Value: 0})
		*ic++
	}
}
