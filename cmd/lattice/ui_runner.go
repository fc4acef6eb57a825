package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lattice/internal/driver"
	"lattice/internal/source"
	"lattice/internal/ui"
)

type checkOutcome struct {
	results []driver.CheckResult
	err     error
}

func runCheckWithUI(ctx context.Context, title string, fileSet *source.FileSet, paths []string, opts driver.CheckOptions) ([]driver.CheckResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		reqOpts := opts
		reqOpts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CheckFiles(ctx, fileSet, paths, reqOpts)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewCheckModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// UI мог выйти раньше (ctrl+c) — дочитываем, чтобы воркеры не встали
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
