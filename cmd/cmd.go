package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	easy "github.com/t-tomalak/logrus-easy-formatter"
	e "github.com/vesper-lang/vesper/errors"
	"github.com/vesper-lang/vesper/utils"
	"github.com/vesper-lang/vesper/vm"
)

// Exit codes follow the sysexits.h convention: success, a malformed
// invocation, a compile-time diagnostic, and an uncaught runtime error.
const (
	exitOK          = 0
	exitUsage       = 64
	exitCompileFail = 65
	exitRuntimeFail = 70
)

func App() (app *cobra.Command) {
	app = &cobra.Command{
		Use:   "vesper [path]",
		Short: "Launch the vesper bytecode interpreter",
	}

	app.Flags().SortFlags = true
	const defaultVerbosity = "INFO"
	verbosity := app.Flags().StringP("verbosity", "v", defaultVerbosity, "Logging verbosity")
	trace := app.Flags().IntP("trace", "t", 0, "Trace VM execution in debug builds (0 or 1)")

	app.Run = func(_ *cobra.Command, args []string) {
		verbosityLvl, err := logrus.ParseLevel(*verbosity)
		if err != nil {
			verbosityLvl, _ = logrus.ParseLevel(defaultVerbosity)
		}
		logrus.SetLevel(verbosityLvl)
		logrus.SetFormatter(&easy.Formatter{LogFormat: "//DBG// %msg%\n"})
		if utils.IntToBool(*trace) {
			logrus.SetLevel(logrus.DebugLevel)
		}

		os.Exit(run(args))
	}
	return
}

func run(args []string) int {
	switch len(args) {
	case 0:
		return repl()
	case 1:
		return runFile(args[0])
	default:
		fmt.Fprintln(os.Stderr, "Usage: vesper [path]")
		return exitUsage
	}
}

func runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		logrus.Error(err)
		return exitUsage
	}

	if err := vm.NewVM().Interpret(string(src)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var runtimeErr *e.RuntimeError
		if errors.As(err, &runtimeErr) {
			return exitRuntimeFail
		}
		return exitCompileFail
	}
	return exitOK
}

// repl runs an interactive read-eval-print loop over one persistent VM, so
// variables defined on one line stay visible to the next. A bad line
// reports its error and keeps the session going; only EOF (Ctrl-D) or an
// interrupt ends it.
func repl() int {
	rl, err := readline.New("> ")
	if err != nil {
		logrus.Fatal(err)
	}
	defer rl.Close()

	vm_ := vm.NewVM()
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF (Ctrl-D) or readline.ErrInterrupt (Ctrl-C)
			return exitOK
		}
		if err := vm_.Interpret(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
