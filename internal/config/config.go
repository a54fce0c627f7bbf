// Package config loads lexkit.toml.
//
// The file is optional. It is searched from the working directory upwards;
// command-line flags override whatever it sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"lexkit/internal/trace"
)

// FileName is the name looked up by Find.
const FileName = "lexkit.toml"

type Config struct {
	Lexer  LexerConfig  `toml:"lexer"`
	Output OutputConfig `toml:"output"`
	Run    RunConfig    `toml:"run"`

	// Path is where the config was read from; empty for Default.
	Path string `toml:"-"`
}

type LexerConfig struct {
	Grammar      string `toml:"grammar"`
	Log          bool   `toml:"log"`
	NormalizeNFC bool   `toml:"normalize_nfc"`
}

type OutputConfig struct {
	Format         string `toml:"format"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type RunConfig struct {
	Jobs       int    `toml:"jobs"`
	TraceLevel string `toml:"trace_level"`
}

// Formats lists the accepted output.format values.
var Formats = []string{"pretty", "json", "msgpack"}

// Default returns the configuration used when no lexkit.toml exists.
func Default() Config {
	return Config{
		Lexer:  LexerConfig{Grammar: "pl0"},
		Output: OutputConfig{Format: "pretty", MaxDiagnostics: 100},
		Run:    RunConfig{TraceLevel: "off"},
	}
}

// Find walks up from startDir to locate lexkit.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover returns the config found from startDir, or Default if there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads a config file. Keys absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges. The grammar name is checked by the driver,
// which owns the registry.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Lexer.Grammar) == "" {
		return errors.New("[lexer].grammar must not be empty")
	}
	if !isFormat(c.Output.Format) {
		return fmt.Errorf("[output].format %q (expected: %s)", c.Output.Format, strings.Join(Formats, "|"))
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must be >= 0, got %d", c.Output.MaxDiagnostics)
	}
	if c.Run.Jobs < 0 {
		return fmt.Errorf("[run].jobs must be >= 0, got %d", c.Run.Jobs)
	}
	if _, err := trace.ParseLevel(c.Run.TraceLevel); err != nil {
		return fmt.Errorf("[run].trace_level: %w", err)
	}
	return nil
}

func isFormat(s string) bool {
	return slices.Contains(Formats, s)
}
