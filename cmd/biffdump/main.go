package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yamitzky/biffkit-go/biff"
	"github.com/yamitzky/biffkit-go/config"
)

var version = "dev"

// app holds the global flags and the streams every command writes to.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	configPath       string
	verbose          int
	password         string
	ignoreCorruption bool
	streamPath       string

	config *config.Config
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "biffdump: %v\n", err)
		var usage usageError
		if errors.As(err, &usage) {
			return 2
		}
		return 1
	}
	return 0
}

type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "biffdump",
		Short: "Inspect and rewrite BIFF8 workbooks",
		Long: `biffdump reads Excel 97-2003 workbooks record by record. It dumps the
BIFF record stream, lists the entries of the compound file or zip package
around it, prints drawing trees and saves workbooks back, optionally with a
new password.

A file name of "-" reads the file from standard input.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.CountVarP(&a.verbose, "verbose", "v", "log more diagnostics, repeat for debug output")
	flags.StringVarP(&a.password, "password", "p", "", "password of an encrypted workbook")
	flags.BoolVar(&a.ignoreCorruption, "ignore-workbook-corruption", false, "keep unparsable records raw instead of failing")
	flags.StringVarP(&a.streamPath, "stream", "s", "", "container entry holding the record stream")

	root.AddCommand(
		a.newRecordsCommand(),
		a.newCountCommand(),
		a.newFormatCommand(),
		a.newLsCommand(),
		a.newCatCommand(),
		a.newEscherCommand(),
		a.newFormulasCommand(),
		a.newResaveCommand(),
		a.newConfigCommand(),
		a.newVersionCommand(),
	)
	return root
}

// loadConfig reads the configuration file, if any, and applies the flags
// given on the command line on top of it.
func (a *app) loadConfig(cmd *cobra.Command, args []string) error {
	a.config = config.DefaultConfig()
	if a.configPath != "" {
		c, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.config = c
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		a.config.Verbosity = a.verbose
	}
	if flags.Changed("password") {
		a.config.Password = a.password
	}
	if flags.Changed("ignore-workbook-corruption") {
		a.config.IgnoreWorkbookCorruption = a.ignoreCorruption
	}
	return nil
}

// readInput returns the bytes of filename, or of stdin for "-".
func (a *app) readInput(filename string) ([]byte, error) {
	if filename == "-" {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(filename)
}

// options reads filename and returns the options to open it with.
func (a *app) options(filename string) (*biff.OpenOptions, error) {
	data, err := a.readInput(filename)
	if err != nil {
		return nil, err
	}
	options := a.config.OpenOptions(a.stderr)
	options.FileContents = data
	options.StreamPath = a.streamPath
	return options, nil
}
