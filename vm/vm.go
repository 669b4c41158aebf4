package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vesper-lang/vesper/debug"
	e "github.com/vesper-lang/vesper/errors"
)

// VM is the stack machine that executes a compiled Chunk. It owns the
// global-variable table and the string Interner, both of which
// outlive any single Interpret call so that a REPL session can build up
// globals and reuse interned strings line after line.
type VM struct {
	chunk *Chunk
	ip    int
	stack []Value

	globals  map[StrHandle]Value
	interner *Interner

	// Out receives Print statement output; it defaults to os.Stdout but
	// tests substitute a buffer so program output can be asserted on.
	Out io.Writer
}

func NewVM() *VM {
	return &VM{globals: make(map[StrHandle]Value), interner: NewInterner(), Out: os.Stdout}
}

func (vm *VM) push(val Value) { vm.stack = append(vm.stack, val) }

func (vm *VM) pop() (last Value) {
	len_ := len(vm.stack)
	vm.stack, last = vm.stack[:len_-1], vm.stack[len_-1]
	return
}

func (vm *VM) peek(distance int) Value { return vm.stack[len(vm.stack)-1-distance] }

// Interpret compiles src against the VM's shared Interner and, on success,
// runs the resulting chunk. A compile error leaves the VM's prior state
// (globals, stack) untouched; a runtime error resets the stack but keeps
// globals defined so far, matching a REPL's expectation that a failed line
// doesn't undo earlier ones.
func (vm *VM) Interpret(src string) error {
	chunk, err := Compile(src, vm.interner)
	if err != nil {
		return err
	}
	vm.chunk = chunk
	vm.ip = 0
	if err := vm.run(); err != nil {
		vm.stack = nil
		return err
	}
	return nil
}

func (vm *VM) runtimeErrorf(format string, a ...any) error {
	line := -1
	if vm.ip-1 >= 0 && vm.ip-1 < len(vm.chunk.lines) {
		line = vm.chunk.lines[vm.ip-1]
	}
	return &e.RuntimeError{Line: line, Message: fmt.Sprintf(format, a...)}
}

func (vm *VM) run() error {
	readByte := func() (res byte) {
		res = vm.chunk.code[vm.ip]
		vm.ip++
		return
	}
	readConst := func() Value { return vm.chunk.consts[readByte()] }
	readStrHandle := func() StrHandle { return readConst().(VStr).Handle }

	for {
		if debug.DEBUG && logrus.IsLevelEnabled(logrus.DebugLevel) {
			logrus.Debugln(vm.stackTrace())
			instDump, _ := vm.chunk.DisassembleInst(vm.ip)
			logrus.Debugln(instDump)
		}

		switch inst := OpCode(readByte()); inst {
		case OpConstant:
			vm.push(readConst())
		case OpNil:
			vm.push(VNil{})
		case OpTrue:
			vm.push(VBool(true))
		case OpFalse:
			vm.push(VBool(false))
		case OpPop:
			vm.pop()

		case OpGetLocal:
			vm.push(vm.stack[readByte()])
		case OpSetLocal:
			vm.stack[readByte()] = vm.peek(0)

		case OpGetGlobal:
			name := readStrHandle()
			val, ok := vm.globals[name]
			if !ok {
				return vm.runtimeErrorf("Undefined variable '%s'.", name)
			}
			vm.push(val)
		case OpDefineGlobal:
			vm.globals[readStrHandle()] = vm.pop()
		case OpSetGlobal:
			name := readStrHandle()
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeErrorf("Undefined variable '%s'.", name)
			}
			vm.globals[name] = vm.peek(0)

		case OpEqual:
			rhs, lhs := vm.pop(), vm.pop()
			vm.push(VEq(lhs, rhs))
		case OpGreater:
			rhs, lhs := vm.pop(), vm.pop()
			res, ok := VGreater(lhs, rhs)
			if !ok {
				return vm.runtimeErrorf("Operands must be numbers.")
			}
			vm.push(res)
		case OpLess:
			rhs, lhs := vm.pop(), vm.pop()
			res, ok := VLess(lhs, rhs)
			if !ok {
				return vm.runtimeErrorf("Operands must be numbers.")
			}
			vm.push(res)

		case OpAdd:
			rhs, lhs := vm.pop(), vm.pop()
			res, ok := VAdd(vm.interner, lhs, rhs)
			if !ok {
				return vm.runtimeErrorf("Operands must be two numbers or two strings.")
			}
			vm.push(res)
		case OpSubtract:
			rhs, lhs := vm.pop(), vm.pop()
			res, ok := VSub(lhs, rhs)
			if !ok {
				return vm.runtimeErrorf("Operands must be numbers.")
			}
			vm.push(res)
		case OpMultiply:
			rhs, lhs := vm.pop(), vm.pop()
			res, ok := VMul(lhs, rhs)
			if !ok {
				return vm.runtimeErrorf("Operands must be numbers.")
			}
			vm.push(res)
		case OpDivide:
			rhs, lhs := vm.pop(), vm.pop()
			res, ok := VDiv(lhs, rhs)
			if !ok {
				return vm.runtimeErrorf("Operands must be numbers.")
			}
			vm.push(res)
		case OpNegate:
			res, ok := VNeg(vm.pop())
			if !ok {
				return vm.runtimeErrorf("Operand must be a number.")
			}
			vm.push(res)
		case OpNot:
			vm.push(!VTruthy(vm.pop()))

		case OpPrint:
			fmt.Fprintln(vm.Out, vm.pop())

		case OpReturn:
			// No function calls in this language: a top-level Return just
			// ends execution. The compiler always leaves the stack empty
			// here, each statement having popped its own result.
			return nil

		default:
			return vm.runtimeErrorf("unknown instruction '%d'", inst)
		}
	}
}

func (vm *VM) stackTrace() string {
	res := "          "
	for _, slot := range vm.stack {
		res += fmt.Sprintf("[ %s ]", slot)
	}
	return res
}
