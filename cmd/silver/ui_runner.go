package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"silver/internal/driver"
	"silver/internal/source"
	"silver/internal/ui"
)

type batchOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

func runBatchWithUI(ctx context.Context, title string, files []string, jobs int, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.FileObserver = func(path string, ev driver.PhaseEvent) {
			if ev.Status != driver.PhaseStart {
				return
			}
			events <- ui.Event{File: path, Stage: stageFor(ev.Name), Status: ui.StatusWorking}
		}
		fs, results, err := driver.EvaluateFiles(ctx, files, jobs, optsCopy, func(r driver.FileResult) {
			status := ui.StatusDone
			if r.Failed() {
				status = ui.StatusError
			}
			events <- ui.Event{File: r.Path, Status: status}
		})
		outcomeCh <- batchOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// the view may quit early; keep the workers unblocked
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

func stageFor(phase string) ui.Stage {
	switch phase {
	case "parse":
		return ui.StageParse
	case "bind":
		return ui.StageBind
	case "eval":
		return ui.StageEval
	default:
		return ui.StageNone
	}
}
