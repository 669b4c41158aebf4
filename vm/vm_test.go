package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/vesper-lang/vesper/vm"
)

func init() { logrus.SetLevel(logrus.DebugLevel) }

// TestPair is one line of source fed to a shared VM and the stdout it is
// expected to produce, if any.
type TestPair struct{ input, output string }

// assertEval feeds each pair's input into one VM in sequence, so that
// globals and scoping from earlier pairs are visible to later ones: the
// same persistent-session model a REPL gives the user. If errSubstr is
// non-empty, the last pair in the run is expected to fail with an error
// containing it; every pair before that one must still succeed.
func assertEval(t *testing.T, errSubstr string, pairs ...TestPair) {
	t.Helper()

	var out bytes.Buffer
	vm_ := vm.NewVM()
	vm_.Out = &out

	for i, pair := range pairs {
		err := vm_.Interpret(pair.input + "\n")
		if i == len(pairs)-1 && errSubstr != "" {
			assert.ErrorContains(t, err, errSubstr)
			return
		}
		assert.NoError(t, err)
		assert.Equal(t, pair.output, strings.TrimRight(out.String(), "\n"))
		out.Reset()
	}
	assert.Empty(t, errSubstr, "a successful run must have an empty errSubstr")
}

func TestCalculator(t *testing.T) {
	assertEval(t, "", []TestPair{
		{"print 2 +2;", "4"},
		{"print 11.4 + 5.14 / 19198.10;", "11.400267734827926"},
		{"print -6 *(-4+ -3) == 6*4 + 2  *((((9))));", "true"},
		{
			heredoc.Doc(`
				print 4/1 - 4/3 + 4/5 - 4/7 + 4/9 - 4/11
					+ 4/13 - 4/15 + 4/17 - 4/19 + 4/21 - 4/23;
			`),
			"3.058402765927333",
		},
	}...)
}

func TestStrings(t *testing.T) {
	assertEval(t, "", []TestPair{
		{`print "hello, " + "world";`, `hello, world`},
		{`print "a" == "a";`, "true"},
		{`print "a" == "b";`, "false"},
	}...)
}

func TestFalsy(t *testing.T) {
	assertEval(t, "", []TestPair{
		{"print !nil;", "true"},
		{"print !false;", "true"},
		{"print !0;", "false"},
		{`print !"";`, "false"},
		{"print !!nil;", "false"},
	}...)
}

func TestVarsBlocks(t *testing.T) {
	assertEval(t, "", []TestPair{
		{"var foo = 2;", ""},
		{"print foo;", "2"},
		{"print foo + 3 == 1 + foo * foo;", "true"},
		{"var bar;", ""},
		{"print bar;", "nil"},
		{"bar = foo = 2;", ""},
		{"print foo;", "2"},
		{"print bar;", "2"},
		{"{ foo = foo + 1; var bar; var foo1 = foo; foo1 = foo1 + 1; }", ""},
		{"print foo;", "3"},
	}...)
}

func TestShadowing(t *testing.T) {
	assertEval(t, "", []TestPair{
		{"var foo = 1;", ""},
		{"{ var foo = 2; print foo; }", "2"},
		{"print foo;", "1"},
	}...)
}

func TestVarOwnInit(t *testing.T) {
	assertEval(t, "Can't read variable in its own initializer",
		[]TestPair{
			{"var foo = 2;", ""},
			{"{ var foo = foo; }", ""},
		}...,
	)
}

func TestRedeclareInSameScope(t *testing.T) {
	assertEval(t, "Already a variable with this name in this scope",
		[]TestPair{
			{"{ var foo = 1; var foo = 2; }", ""},
		}...,
	)
}

func TestUndefinedGlobalGet(t *testing.T) {
	assertEval(t, "Undefined variable 'nope'",
		[]TestPair{
			{"print nope;", ""},
		}...,
	)
}

func TestUndefinedGlobalSet(t *testing.T) {
	assertEval(t, "Undefined variable 'nope'",
		[]TestPair{
			{"nope = 1;", ""},
		}...,
	)
}

func TestRuntimeTypeErrors(t *testing.T) {
	assertEval(t, "Operands must be two numbers or two strings", []TestPair{
		{`print 1 + "2";`, ""},
	}...)
	assertEval(t, "Operand must be a number", []TestPair{
		{`print -"nope";`, ""},
	}...)
}

func TestParseErrors(t *testing.T) {
	assertEval(t, "Expect expression",
		[]TestPair{{"if (true) 1;", ""}}...)
	assertEval(t, "Expect ')' after expression",
		[]TestPair{{"print (1 + 2;", ""}}...)
	assertEval(t, "Expect ';' after expression",
		[]TestPair{{"1 + 1", ""}}...)
}
