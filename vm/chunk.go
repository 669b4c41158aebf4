package vm

import (
	"fmt"

	"github.com/vesper-lang/vesper/debug"
	"github.com/vesper-lang/vesper/utils"
)

//go:generate stringer -type=OpCode
type OpCode byte

const (
	OpReturn OpCode = iota
	OpConstant
	OpNegate
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNil
	OpTrue
	OpFalse
	OpNot
	OpEqual
	OpGreater
	OpLess
	OpPrint
	OpPop
	OpDefineGlobal
	OpGetGlobal
	OpSetGlobal
	OpGetLocal
	OpSetLocal
)

// hasOperand reports whether inst is a two-byte, constant/slot-carrying
// instruction: Constant, DefineGlobal, GetGlobal, SetGlobal, GetLocal,
// SetLocal all read one more operand byte; everything else is nullary.
func hasOperand(inst OpCode) bool {
	switch inst {
	case OpConstant, OpDefineGlobal, OpGetGlobal, OpSetGlobal, OpGetLocal, OpSetLocal:
		return true
	default:
		return false
	}
}

// MaxConsts is the constant-pool capacity: addressable by exactly one byte.
const MaxConsts = 256

// Chunk is an append-only buffer of instructions plus a parallel line table
// and a ≤256-entry constant pool. Invariant: len(code) == len(lines),
// asserted in debug builds.
type Chunk struct {
	code []byte
	// Contract: len(lines) == len(code)
	lines  []int
	consts []Value
}

func NewChunk() *Chunk { return &Chunk{} }

func (c *Chunk) Write(b byte, line int) {
	c.code = append(c.code, b)
	c.lines = append(c.lines, line)
	debug.AssertEq(len(c.code), len(c.lines))
}

// AddConst appends const_ to the pool and reports whether the pool still
// fits in one byte's worth of addressing. On overflow the caller is
// expected to report "Too many constants in one chunk" and fall back to
// index 0.
func (c *Chunk) AddConst(const_ Value) (idx int, ok bool) {
	idx = len(c.consts)
	c.consts = append(c.consts, const_)
	return idx, idx < MaxConsts
}

func (c *Chunk) Len() int { return len(c.code) }

func (c *Chunk) DisassembleInst(offset int) (res string, newOffset int) {
	sprintf := func(format string, a ...any) { res += fmt.Sprintf(format, a...) }

	sprintf("%04d ", offset)
	if offset > 0 && c.lines[offset] == c.lines[offset-1] {
		sprintf("   | ")
	} else {
		sprintf("%4d ", c.lines[offset])
	}

	inst := OpCode(c.code[offset])
	size := 1 + utils.BoolToInt[int](hasOperand(inst))
	if !hasOperand(inst) {
		sprintf("%s", inst)
		return res, offset + size
	}

	const_ := c.code[offset+1]
	sprintf("%-16s %4d '%s'", inst, const_, c.consts[const_])
	return res, offset + size
}

func (c *Chunk) Disassemble(name string) (res string) {
	res = fmt.Sprintf("== %s ==\n", name)
	for i := 0; i < len(c.code); {
		var delta string
		delta, i = c.DisassembleInst(i)
		res += delta + "\n"
	}
	return res
}
