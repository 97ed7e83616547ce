package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lintcheck/internal/driver"
	"lintcheck/internal/source"
	"lintcheck/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.CheckResult
	err     error
}

// runCheckDirWithUI runs a directory check behind a live progress view. The
// check itself runs in a goroutine; the UI consumes its event channel and
// quits when the channel closes.
func runCheckDirWithUI(ctx context.Context, title, dir string, opts driver.CheckOptions, jobs int) (*source.FileSet, []driver.CheckResult, error) {
	files, err := driver.ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.CheckDir(ctx, dir, optsCopy, jobs)
		outcomeCh <- checkOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
