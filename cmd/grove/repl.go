package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/groveembed/grove/pkg/vm"
)

// runREPL drives an interactive read-eval-print loop over a persistent
// VM, so local/global bindings and blueprints from earlier lines stay
// visible to later ones — the same persistent-session shape as the
// teacher's REPL, just backed by readline instead of a bare
// bufio.Scanner so users get history and line editing.
func runREPL(cmd *cobra.Command) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "grove> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	v := newConfiguredVM(cmd)
	registerStandardHostFns(v)

	green := color.New(color.FgGreen)
	fmt.Fprintln(cmd.OutOrStdout(), "grove REPL — type 'exit' or press Ctrl-D to quit")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		if err := v.Eval(line); err != nil {
			printEvalError(cmd, err)
			continue
		}
		green.Fprintln(cmd.OutOrStdout(), "ok")
	}
}

// registerStandardHostFns wires up the couple of host functions every
// Grove script running under the reference CLI can rely on: print (the
// real counterpart of the "log" callback used throughout the embedding
// boundary's own tests) and clock (monotonic-ish wall time in seconds, a
// common scripting-sandbox primitive).
func registerStandardHostFns(v *vm.VM) {
	v.RegisterFn("print", hostPrint)
	v.RegisterFn("clock", hostClock)
}
