package vm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileSimpleExpression(t *testing.T) {
	chunk, err := Compile("print 1 + 2;", NewInterner())
	assert.NoError(t, err)
	assert.Equal(t, []byte{
		byte(OpConstant), 0,
		byte(OpConstant), 1,
		byte(OpAdd),
		byte(OpPrint),
		byte(OpReturn),
	}, chunk.code)
}

func TestCompileLocalsEmitGetSetLocal(t *testing.T) {
	chunk, err := Compile("{ var a = 1; a = a + 1; print a; }", NewInterner())
	assert.NoError(t, err)
	assert.Contains(t, chunk.code, byte(OpGetLocal))
	assert.Contains(t, chunk.code, byte(OpSetLocal))
	// A block-scoped local is popped, not left dangling, once its scope ends.
	assert.Equal(t, byte(OpPop), chunk.code[len(chunk.code)-2])
}

func TestCompileGlobalsEmitGlobalOps(t *testing.T) {
	chunk, err := Compile("var a = 1; a = a + 1;", NewInterner())
	assert.NoError(t, err)
	assert.Contains(t, chunk.code, byte(OpDefineGlobal))
	assert.Contains(t, chunk.code, byte(OpGetGlobal))
	assert.Contains(t, chunk.code, byte(OpSetGlobal))
}

func TestCompileTooManyConstants(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxConsts+1; i++ {
		b.WriteString("1;\n")
	}
	_, err := Compile(b.String(), NewInterner())
	assert.ErrorContains(t, err, "Too many constants in one chunk.")
}

func TestCompileErrorMessagesMatchExternalFormat(t *testing.T) {
	_, err := Compile("1 +;", NewInterner())
	assert.ErrorContains(t, err, "[line 1] Error at ';'")
}

func TestCompileUnexpectedEOFReportsAtEnd(t *testing.T) {
	_, err := Compile("print 1", NewInterner())
	assert.ErrorContains(t, err, "[line 1] Error at end")
}

func TestCompileAndOrAreRejected(t *testing.T) {
	_, err := Compile("print true and false;", NewInterner())
	assert.ErrorContains(t, err, "Expect ';' after value.")

	_, err = Compile("and;", NewInterner())
	assert.ErrorContains(t, err, "Expect expression.")
}

func TestInternSharesHandlesAcrossCompiles(t *testing.T) {
	it := NewInterner()
	c1, err := Compile(`"shared";`, it)
	assert.NoError(t, err)
	c2, err := Compile(`"shared";`, it)
	assert.NoError(t, err)
	assert.Equal(t, c1.consts[0].(VStr).Handle, c2.consts[0].(VStr).Handle)
}
