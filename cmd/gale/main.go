// Command gale runs scripts or a REPL against the gale nucleus runtime.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gale-lang/gale"
)

var rootCmd = &cobra.Command{
	Use:   "gale [script]",
	Short: "gale runs the concatenative gale language nucleus",
	Long: heredoc.Doc(`
		gale is a minimal stack machine for the gale language: a small,
		statically-shaped, concatenative language. Invoked with a script
		argument, it evaluates the file and exits; invoked bare, it opens a
		line-editing REPL.
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

var verbose bool

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	rt := gale.NewRuntime(gale.WithOutput(os.Stdout), gale.WithLogLevel(level))
	defer rt.Flush()

	if len(args) == 1 {
		return runScript(rt, args[0])
	}
	return runREPL(rt)
}

func runScript(rt *gale.Runtime, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gale.Recover(path, func() error {
		return rt.EvalReader(path, f)
	})
}

func runREPL(rt *gale.Runtime) error {
	rl, err := readline.New("gale> ")
	if err != nil {
		return err
	}
	defer rl.Close()

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
		evalErr := gale.Recover("repl", func() error {
			return rt.Eval(line)
		})
		if evalErr != nil {
			fmt.Fprintln(os.Stderr, evalErr)
		}
		rt.Flush()
	}
}
