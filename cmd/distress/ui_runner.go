package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"distress/internal/driver"
	"distress/internal/source"
	"distress/internal/ui"
)

type solveOutcome struct {
	results []driver.FileResult
	err     error
}

// runSolveWithUI solves files while a Bubble Tea program renders progress
// from the driver's file events.
func runSolveWithUI(ctx context.Context, fs *source.FileSet, files []string, opts driver.Options) ([]driver.FileResult, error) {
	events := make(chan driver.FileEvent, 256)
	outcomeCh := make(chan solveOutcome, 1)

	go func() {
		res, err := driver.SolveFiles(ctx, fs, files, opts, func(ev driver.FileEvent) {
			events <- ev
		})
		outcomeCh <- solveOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("solve", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// после выхода UI (ошибка или Ctrl+C) дочитываем события, чтобы не
	// заблокировать решатель
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
