package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lattice/internal/driver"
)

func newTestModel(files ...string) *checkModel {
	m, ok := NewCheckModel("lattice check", files, nil).(*checkModel)
	if !ok {
		panic("unexpected model type")
	}
	return m
}

func TestApplyEvent_Labels(t *testing.T) {
	m := newTestModel("a.lt", "b.lt")

	m.applyEvent(driver.Event{File: "a.lt", Stage: driver.StageParse, Status: driver.StatusWorking})
	assert.Equal(t, labelParsing, m.files[0].label)
	assert.Equal(t, labelQueued, m.files[1].label)

	m.applyEvent(driver.Event{File: "a.lt", Stage: driver.StageValidate, Status: driver.StatusDone})
	assert.Equal(t, labelOK, m.files[0].label)

	m.applyEvent(driver.Event{File: "b.lt", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("boom")})
	assert.Equal(t, labelFailed, m.files[1].label)
	assert.Equal(t, 1, m.failed)

	// failed rows stay failed
	m.applyEvent(driver.Event{File: "b.lt", Stage: driver.StageParse, Status: driver.StatusWorking})
	assert.Equal(t, labelFailed, m.files[1].label)
	assert.InDelta(t, 1.0, m.percent(), 1e-9)
}

func TestApplyEvent_UnknownAndRunLevel(t *testing.T) {
	m := newTestModel("a.lt")
	assert.Nil(t, m.applyEvent(driver.Event{File: "zzz.lt", Stage: driver.StageParse, Status: driver.StatusWorking}))
	assert.Nil(t, m.applyEvent(driver.Event{Stage: driver.StageValidate, Status: driver.StatusDone}))
	assert.Equal(t, labelQueued, m.files[0].label)
}

func TestPercent_ByStage(t *testing.T) {
	m := newTestModel("a.lt", "b.lt")
	m.applyEvent(driver.Event{File: "a.lt", Stage: driver.StageValidate, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "b.lt", Stage: driver.StageLoad, Status: driver.StatusWorking})
	assert.InDelta(t, (0.8+0.1)/2, m.percent(), 1e-9)
}

func TestView(t *testing.T) {
	m := newTestModel("a.lt", "b.lt")
	m.applyEvent(driver.Event{File: "b.lt", Stage: driver.StageValidate, Status: driver.StatusError})

	_, cmd := m.Update(doneMsg{})
	require.NotNil(t, cmd)
	view := m.View()
	assert.True(t, strings.Contains(view, "done: lattice check"), view)
	assert.Contains(t, view, "a.lt")
	assert.Contains(t, view, "1 of 2 files failed")
}

func TestView_Empty(t *testing.T) {
	assert.Empty(t, newTestModel().View())
}

func TestUpdate_WindowSize(t *testing.T) {
	m := newTestModel("a.lt")
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 116, m.prog.Width)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, 7, runewidth.StringWidth(truncate("abcdefghij", 7)))
	assert.Equal(t, "日本...", truncate("日本語テキスト", 7))
}

func TestListen_ClosedChannel(t *testing.T) {
	ch := make(chan driver.Event)
	close(ch)
	m := newTestModel("a.lt")
	m.events = ch
	msg := m.listen()()
	assert.IsType(t, doneMsg{}, msg)
}
