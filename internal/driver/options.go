package driver

import (
	"lexkit/internal/config"
)

// Options controls a tokenize run.
type Options struct {
	Grammar        string
	Log            bool // keep parser+trivia tokens in TokenizeResult.Logged
	NormalizeNFC   bool
	MaxDiagnostics int
	Jobs           int    // TokenizeDir workers; <= 0 means GOMAXPROCS
	Ext            string // TokenizeDir file filter; empty means "." + Grammar
	Progress       ProgressSink
}

// OptionsFromConfig maps lexkit.toml onto driver options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Grammar:        cfg.Lexer.Grammar,
		Log:            cfg.Lexer.Log,
		NormalizeNFC:   cfg.Lexer.NormalizeNFC,
		MaxDiagnostics: cfg.Output.MaxDiagnostics,
		Jobs:           cfg.Run.Jobs,
	}
}

func (o Options) ext() string {
	if o.Ext != "" {
		return o.Ext
	}
	return "." + o.Grammar
}
