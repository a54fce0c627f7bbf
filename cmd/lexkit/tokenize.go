package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lexkit/internal/diag"
	"lexkit/internal/driver"
	"lexkit/internal/observ"
	"lexkit/internal/source"
	"lexkit/internal/tokfmt"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file|dir|->",
	Short: "Tokenize a source file or a directory",
	Long: `Tokenize runs a lexical grammar over a file, every matching file of a
directory (in parallel), or stdin ("-") and prints the token stream.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	addTokenizeFlags(tokenizeCmd)
}

func addTokenizeFlags(cmd *cobra.Command) {
	cmd.Flags().String("grammar", "pl0", "grammar to run (arith|pl0)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().Bool("log", false, "keep trivia tokens in the lexer log")
	cmd.Flags().Bool("trivia", false, "print parser and trivia tokens from the log (implies --log)")
	cmd.Flags().Bool("nfc", false, "normalize sources to Unicode NFC before lexing")
	cmd.Flags().Int("jobs", 0, "parallel workers for directories (0 = GOMAXPROCS)")
	cmd.Flags().String("ext", "", "file extension for directories (default: .<grammar>)")
	cmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	target := args[0]
	ctx := cmd.Context()

	if target == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		res, err := driver.TokenizeSource(ctx, "<stdin>", content, s.driver)
		if err != nil {
			return err
		}
		return printResult(cmd, res, s)
	}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		res, err := driver.Tokenize(ctx, target, s.driver)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		return printResult(cmd, res, s)
	}

	var (
		fileSet *source.FileSet
		results []driver.TokenizeDirResult
	)
	if wantUI(s) {
		fileSet, results, err = runDirWithUI(ctx, "tokenize "+target, target, s.driver)
	} else {
		fileSet, results, err = driver.TokenizeDir(ctx, target, s.driver)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	colored := useColor(cmd, os.Stdout)
	all := diag.NewBag(0)
	var timing observ.Report
	for _, r := range results {
		if r.Result != nil {
			timing.Add(r.Result.Timing)
			if s.format == "pretty" {
				err = tokfmt.Summary(cmd.OutOrStdout(), r.Path, r.Result.Tokens, r.Bag.Len(), colored)
			} else {
				err = printTokens(cmd.OutOrStdout(), r.Result, s, colored)
			}
			if err != nil {
				return err
			}
		}
		all.Merge(r.Bag)
	}
	// file ids follow the sorted file order, so this groups diagnostics by file
	all.Sort()
	if err := printDiagnostics(cmd, all, fileSet, s.driver.MaxDiagnostics); err != nil {
		return err
	}
	if s.timings {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d files\n", len(results))
		printTimings(cmd.ErrOrStderr(), timing)
	}
	if all.HasErrors() {
		return errLexical
	}
	return nil
}

// printDiagnostics renders bag to stderr; limit is the per-file cap shown
// when diagnostics were dropped.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, limit int) error {
	if bag.Len() > 0 {
		if err := tokfmt.Diagnostics(cmd.ErrOrStderr(), bag.Items(), fs, useColor(cmd, os.Stderr)); err != nil {
			return err
		}
	}
	if d := bag.Dropped(); d > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "... %d more diagnostics not shown (limit %d per file)\n", d, limit)
	}
	return nil
}

func printResult(cmd *cobra.Command, res *driver.TokenizeResult, s settings) error {
	if err := printDiagnostics(cmd, res.Bag, res.FileSet, res.Bag.Cap()); err != nil {
		return err
	}
	if err := printTokens(cmd.OutOrStdout(), res, s, useColor(cmd, os.Stdout)); err != nil {
		return err
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), res.Timing)
	}
	if res.Bag.HasErrors() {
		return errLexical
	}
	return nil
}

func printTokens(w io.Writer, res *driver.TokenizeResult, s settings, colored bool) error {
	if s.format == "msgpack" {
		return driver.WriteDump(w, res)
	}

	g, err := res.Session.Grammar(res.Grammar)
	if err != nil {
		return err
	}
	in := tokfmt.Input{
		Tokens:  res.Tokens,
		Names:   g.Names(),
		File:    res.File,
		Symbols: res.Session.Interner(),
	}
	if s.trivia {
		in.Tokens = res.Logged
	}

	switch s.format {
	case "pretty":
		return tokfmt.Pretty(w, in, tokfmt.PrettyOpts{Color: colored})
	case "json":
		return tokfmt.JSON(w, in)
	default:
		return fmt.Errorf("unknown format: %s", s.format)
	}
}

func printTimings(w io.Writer, r observ.Report) {
	fmt.Fprint(w, r.String())
}
