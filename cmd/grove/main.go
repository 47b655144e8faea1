// Command grove is the reference CLI host for the Grove scripting
// language: it runs script files, offers an interactive REPL, and
// demonstrates the handful of host functions (print, clock) a real
// embedding application would wire up itself.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/groveembed/grove/pkg/groveerr"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd wires up the grove CLI's subcommands. Running with no
// subcommand at all drops straight into the REPL, matching the teacher's
// "no args means REPL" convenience.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "grove",
		Short:        "Grove — a small, embeddable scripting language",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd)
		},
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newVersionCmd())

	root.PersistentFlags().String("config", "", "path to a grove.toml config file")
	root.PersistentFlags().Uint64("instruction-limit", 0, "override the default instruction budget (0 = use config/default)")

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the grove CLI version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "grove version %s\n", version)
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "Run a Grove source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(cmd, args[0])
		},
	}
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Grove REPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd)
		},
	}
}

// runFile reads and evaluates a single script file, printing a colorized
// error (including the Grove error kind and source position) on failure.
func runFile(cmd *cobra.Command, filename string) error {
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	v := newConfiguredVM(cmd)
	registerStandardHostFns(v)

	if err := v.Eval(string(source)); err != nil {
		printEvalError(cmd, err)
		return err
	}
	return nil
}

func printEvalError(cmd *cobra.Command, err error) {
	red := color.New(color.FgRed, color.Bold)
	if ge, ok := groveerr.As(err); ok {
		red.Fprintf(cmd.ErrOrStderr(), "error: %s\n", ge.Error())
		return
	}
	red.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
}
