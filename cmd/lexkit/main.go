package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lexkit/internal/version"
)

// errLexical reports that tokenize found diagnostics; they are already printed.
var errLexical = errors.New("lexical errors")

var rootCmd = &cobra.Command{
	Use:           "lexkit",
	Short:         "State-machine lexer toolkit",
	Long:          `lexkit runs lexical grammars over source files and prints their token streams`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopProfiling)

		stopTracing, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopTracing)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runCleanups()
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)
	addPersistentFlags(rootCmd)
}

// addPersistentFlags registers the global flags on root.
func addPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().String("config", "", "path to lexkit.toml (default: search upwards from the working directory)")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = unlimited)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr, .ndjson for JSON)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

// main executes the root command. Any error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	err := rootCmd.Execute()
	runCleanups()
	if err != nil {
		if !errors.Is(err, errLexical) {
			fmt.Fprintf(os.Stderr, "lexkit: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color against the terminal state of f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}
