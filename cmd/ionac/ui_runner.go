package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BurntChromium/IonaLang/internal/driver"
	"github.com/BurntChromium/IonaLang/internal/ui"
)

type compileOutcome struct {
	results []driver.FileResult
	err     error
}

// runCompileWithUI compiles files while a Bubble Tea progress view consumes
// the driver events. The compile goroutine closes the event channel when
// done, which ends the program. Returns the session so callers can flush
// the instantiation table afterwards.
func runCompileWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Session, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	opts.Progress = events
	session := driver.NewSession(opts)
	outcomeCh := make(chan compileOutcome, 1)

	go func() {
		results, err := session.CompileAll(ctx, files)
		outcomeCh <- compileOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return session, outcome.results, uiErr
	}
	return session, outcome.results, outcome.err
}
