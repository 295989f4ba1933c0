package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(m tea.Model, events ...Event) tea.Model {
	for _, ev := range events {
		m, _ = m.Update(eventMsg(ev))
	}
	return m
}

func TestProgressTracksFiles(t *testing.T) {
	events := make(chan Event)
	m := NewProgressModel("run", []string{"a.sv", "b.sv"}, events)
	m = feed(m,
		Event{File: "a.sv", Stage: StageBind, Status: StatusWorking},
		Event{File: "b.sv", Status: StatusError},
		Event{File: "unknown.sv", Status: StatusDone},
	)

	pm := m.(*progressModel)
	assert.Equal(t, "binding", pm.items[0].status)
	assert.Equal(t, "error", pm.items[1].status)
	assert.InDelta(t, 0.75, pm.percent(), 1e-9)

	view := m.View()
	assert.Contains(t, view, "run 1/2")
	assert.Contains(t, view, "a.sv")
	assert.Contains(t, view, "1 failed")
}

func TestProgressQuitsWhenEventsClose(t *testing.T) {
	m := NewProgressModel("run", []string{"a.sv"}, nil)
	m, cmd := m.Update(doneMsg{})
	require.NotNil(t, cmd)
	assert.True(t, m.(*progressModel).done)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestProgressHidesFinishedRows(t *testing.T) {
	files := make([]string, maxRows+5)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.sv", i)
	}
	m := NewProgressModel("run", files, nil)
	for _, f := range files[:6] {
		m = feed(m, Event{File: f, Status: StatusDone})
	}

	pm := m.(*progressModel)
	rows := pm.visibleRows()
	assert.Len(t, rows, maxRows-1)
	for _, row := range rows {
		assert.NotEqual(t, "done", row.status)
	}
	assert.True(t, strings.Contains(m.View(), "more"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short.sv", truncate("short.sv", 20))
	assert.Equal(t, "very...", truncate("very/long/path/file.sv", 10))
	assert.Equal(t, "ver", truncate("very", 3))
}
