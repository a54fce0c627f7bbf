package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lexkit/internal/driver"
	"lexkit/internal/source"
	"lexkit/internal/ui"
)

type dirOutcome struct {
	fileSet *source.FileSet
	results []driver.TokenizeDirResult
	err     error
}

// wantUI resolves --ui: auto shows progress only for pretty output on a terminal.
func wantUI(s settings) bool {
	switch s.ui {
	case "on":
		return true
	case "off":
		return false
	}
	return s.format == "pretty" && isTerminal(os.Stdout)
}

func runDirWithUI(ctx context.Context, title, dir string, opts driver.Options) (*source.FileSet, []driver.TokenizeDirResult, error) {
	files, err := driver.ListFiles(dir, opts)
	if err != nil {
		return nil, nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fileSet, results, err := driver.TokenizeDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, fmt.Errorf("progress ui: %w", uiErr)
	}
	return outcome.fileSet, outcome.results, outcome.err
}
