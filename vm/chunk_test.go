package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkWriteKeepsLinesInSync(t *testing.T) {
	c := NewChunk()
	c.Write(byte(OpNil), 1)
	c.Write(byte(OpTrue), 1)
	c.Write(byte(OpPop), 2)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []int{1, 1, 2}, c.lines)
}

func TestAddConstOverflow(t *testing.T) {
	c := NewChunk()
	for i := 0; i < MaxConsts; i++ {
		_, ok := c.AddConst(VNum(i))
		assert.True(t, ok)
	}
	idx, ok := c.AddConst(VNum(999))
	assert.False(t, ok)
	assert.Equal(t, MaxConsts, idx)
}

func TestDisassembleInst(t *testing.T) {
	c := NewChunk()
	idx, ok := c.AddConst(VNum(7))
	assert.True(t, ok)
	c.Write(byte(OpConstant), 1)
	c.Write(byte(idx), 1)
	c.Write(byte(OpReturn), 1)

	line, next := c.DisassembleInst(0)
	assert.Contains(t, line, "OpConstant")
	assert.Contains(t, line, "7")
	assert.Equal(t, 2, next)

	line, next = c.DisassembleInst(next)
	assert.Contains(t, line, "OpReturn")
	assert.Equal(t, 3, next)
}
