package main

import (
	"testing"

	"github.com/spf13/cobra"

	"lexkit/internal/config"
)

// newTestCommand builds a root+tokenize pair that shares no state with the
// real commands.
func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "lexkit"}
	addPersistentFlags(root)
	cmd := &cobra.Command{Use: "tokenize", RunE: func(*cobra.Command, []string) error { return nil }}
	addTokenizeFlags(cmd)
	root.AddCommand(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestApplyFlagsKeepsConfigWhenUnset(t *testing.T) {
	cfg := config.Default()
	cfg.Lexer.Grammar = "arith"
	cfg.Output.Format = "json"
	cfg.Output.MaxDiagnostics = 7

	s, err := applyFlags(newTestCommand(t), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.driver.Grammar != "arith" || s.format != "json" || s.driver.MaxDiagnostics != 7 {
		t.Fatalf("config values overridden by flag defaults: %+v", s)
	}
}

func TestApplyFlagsOverride(t *testing.T) {
	cfg := config.Default()
	cmd := newTestCommand(t, "--grammar", "arith", "--format", "msgpack", "--jobs", "3", "--max-diagnostics", "0", "--nfc", "--trivia")

	s, err := applyFlags(cmd, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.driver.Grammar != "arith" || s.format != "msgpack" || s.driver.Jobs != 3 || s.driver.MaxDiagnostics != 0 {
		t.Fatalf("flags not applied: %+v", s)
	}
	if !s.driver.NormalizeNFC || !s.trivia || !s.driver.Log {
		t.Fatalf("bool flags not applied: %+v", s)
	}
}

func TestApplyFlagsValidates(t *testing.T) {
	if _, err := applyFlags(newTestCommand(t, "--format", "xml"), config.Default()); err == nil {
		t.Fatal("expected invalid format error")
	}
	if _, err := applyFlags(newTestCommand(t, "--jobs", "-2"), config.Default()); err == nil {
		t.Fatal("expected invalid jobs error")
	}
}

func TestApplyFlagsRejectsBadUI(t *testing.T) {
	if _, err := applyFlags(newTestCommand(t, "--ui", "maybe"), config.Default()); err == nil {
		t.Fatal("expected error for --ui=maybe")
	}
	s, err := applyFlags(newTestCommand(t, "--ui", "off"), config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if wantUI(s) {
		t.Fatal("--ui=off must disable the progress view")
	}
}
