package asm

import "strings"

// InstructionInfo is one row of the instruction table: opcode/funct
// pair plus the addressing-mode masks each operand slot permits.
// Mnemonics that share an opcode (clr/not/inc/dec all opcode 5, add/sub
// both under the arithmetic family) are disambiguated by Funct alone;
// nothing in the pipeline branches on mnemonic name once this table
// has been consulted.
type InstructionInfo struct {
	Name    string
	Opcode  int
	Funct   int
	NumOps  int
	SrcMask int
	DstMask int
}

// instructionTable is the closed set of sixteen mnemonics for the
// 24-bit ISA.
var instructionTable = []InstructionInfo{
	{"mov", 0, 0, 2, MaskImmediate | MaskDirect | MaskRegister, MaskDirect | MaskRegister},
	{"cmp", 1, 0, 2, MaskImmediate | MaskDirect | MaskRegister, MaskImmediate | MaskDirect | MaskRegister},
	{"add", 2, 1, 2, MaskImmediate | MaskDirect | MaskRegister, MaskDirect | MaskRegister},
	{"sub", 2, 2, 2, MaskImmediate | MaskDirect | MaskRegister, MaskDirect | MaskRegister},
	{"lea", 4, 0, 2, MaskDirect, MaskDirect | MaskRegister},
	{"clr", 5, 1, 1, 0, MaskDirect | MaskRegister},
	{"not", 5, 2, 1, 0, MaskDirect | MaskRegister},
	{"inc", 5, 3, 1, 0, MaskDirect | MaskRegister},
	{"dec", 5, 4, 1, 0, MaskDirect | MaskRegister},
	{"jmp", 9, 1, 1, 0, MaskDirect | MaskRelative},
	{"bne", 9, 2, 1, 0, MaskDirect | MaskRelative},
	{"jsr", 9, 3, 1, 0, MaskDirect | MaskRelative},
	{"red", 12, 0, 1, 0, MaskDirect | MaskRegister},
	{"prn", 13, 0, 1, 0, MaskImmediate | MaskDirect | MaskRegister},
	{"rts", 14, 0, 0, 0, 0},
	{"stop", 15, 0, 0, 0, 0},
}

var instructionByName map[string]InstructionInfo

func init() {
	instructionByName = make(map[string]InstructionInfo, len(instructionTable))
	for _, info := range instructionTable {
		instructionByName[info.Name] = info
	}
}

// LookupInstruction returns the ISA row for a mnemonic, case-sensitive
// (mnemonics are always lowercase in valid source).
func LookupInstruction(name string) (InstructionInfo, bool) {
	info, ok := instructionByName[name]
	return info, ok
}

// IsInstruction reports whether name is one of the sixteen mnemonics.
func IsInstruction(name string) bool {
	_, ok := instructionByName[name]
	return ok
}

var registerNames = map[string]int{
	"r0": 0, "r1": 1, "r2": 2, "r3": 3,
	"r4": 4, "r5": 5, "r6": 6, "r7": 7,
}

// IsRegister reports whether name is one of r0..r7.
func IsRegister(name string) bool {
	_, ok := registerNames[name]
	return ok
}

// RegisterNumber returns a register's index, or -1 if name isn't one.
func RegisterNumber(name string) int {
	if n, ok := registerNames[name]; ok {
		return n
	}
	return -1
}

var directiveNames = map[string]DirectiveKind{
	"data":   DirData,
	"string": DirString,
	"entry":  DirEntry,
	"extern": DirExtern,
}

// IsDirective reports whether name is one of the four directives.
func IsDirective(name string) bool {
	_, ok := directiveNames[name]
	return ok
}

// DirectiveKindOf resolves a directive name to its kind.
func DirectiveKindOf(name string) (DirectiveKind, bool) {
	k, ok := directiveNames[name]
	return k, ok
}

// permits reports whether mode is allowed in an operand slot whose
// permitted-mode bitmask is mask.
func permits(mask int, mode AddressingMode) bool {
	return mask&maskFor(mode) != 0
}

// Word bit layout (bit positions, LSB = 0):
//
//	OPCODE   18..23  (6 bits)
//	SRC mode 16..17  (2 bits)
//	SRC reg  13..15  (3 bits)
//	DST mode 11..12  (2 bits)
//	DST reg  8..10   (3 bits)
//	FUNCT    3..7    (5 bits)
//	ARE      0..2    (3 bits)
const (
	posOpcode  = 18
	posSrcMode = 16
	posSrcReg  = 13
	posDstMode = 11
	posDstReg  = 8
	posFunct   = 3
	posARE     = 0
)

func encodeAddrMode(mode AddressingMode) uint32 {
	switch mode {
	case ModeImmediate:
		return 0
	case ModeDirect:
		return 1
	case ModeRelative:
		return 2
	case ModeRegister:
		return 3
	default:
		return 0
	}
}

// EncodeHeader packs an instruction's header word: opcode, funct, ARE
// absolute, and — for any operand that resolved to REGISTER — its
// register number and mode. Non-register operands get their mode bits
// set here too, but their value is carried by a following extra word.
func EncodeHeader(info InstructionInfo, rs, rt *Operand) uint32 {
	var w uint32
	w |= uint32(info.Opcode) << posOpcode
	w |= uint32(info.Funct) << posFunct
	w |= uint32(AREAbsolute) << posARE

	if rs != nil {
		w |= encodeAddrMode(rs.Mode) << posSrcMode
		if rs.Mode == ModeRegister {
			w |= uint32(RegisterNumber(rs.Token.Lexeme)) << posSrcReg
		}
	}
	if rt != nil {
		w |= encodeAddrMode(rt.Mode) << posDstMode
		if rt.Mode == ModeRegister {
			w |= uint32(RegisterNumber(rt.Token.Lexeme)) << posDstReg
		}
	}
	return w & Word24Max
}

// EncodeImmediateWord packs a signed value into the value field
// (bits 3..23) of an extra word with the given ARE tag.
func EncodeImmediateWord(value int, are ARE) uint32 {
	return (uint32(value) << 3 & 0xFFFFF8) | (uint32(are) & 0x7)
}

// normalizeLine collapses runs of horizontal whitespace to a single
// space, matching the preprocessor's whitespace-normalization rule.
func normalizeLine(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
