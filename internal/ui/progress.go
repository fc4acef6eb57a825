package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lattice/internal/driver"
)

const (
	labelQueued     = "queued"
	labelLoading    = "loading"
	labelParsing    = "parsing"
	labelValidating = "validating"
	labelOK         = "ok"
	labelFailed     = "failed"
)

type checkModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	files   []fileRow
	index   map[string]int
	failed  int
	width   int
	done    bool
}

type fileRow struct {
	path    string
	label   string
	stage   driver.Stage
	elapsed time.Duration
}

type eventMsg driver.Event
type doneMsg struct{}

// NewCheckModel returns a Bubble Tea model that renders CheckFiles progress.
// The model quits once events is closed.
func NewCheckModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	rows := make([]fileRow, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		rows = append(rows, fileRow{path: file, label: labelQueued})
		index[file] = i
	}
	return &checkModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		files:   rows,
		index:   index,
		width:   80,
	}
}

func (m *checkModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listen())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		next, cmd := m.prog.Update(msg)
		m.prog = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *checkModel) View() string {
	if len(m.files) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-24, 20)
	for _, row := range m.files {
		label := labelStyle(row.label).Render(fmt.Sprintf("%10s", row.label))
		b.WriteString("  ")
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(truncate(row.path, nameWidth))
		if row.elapsed > 0 {
			b.WriteString(fmt.Sprintf(" (%s)", row.elapsed.Round(time.Microsecond)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	if m.failed > 0 {
		b.WriteString(labelStyle(labelFailed).Render(fmt.Sprintf("%d of %d files failed", m.failed, len(m.files))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *checkModel) listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent updates the row for ev.File and returns the progress bar command.
// Run-level events (empty File) are ignored.
func (m *checkModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	row := &m.files[idx]
	if row.label == labelFailed {
		return nil
	}
	row.stage = ev.Stage
	row.label = rowLabel(ev.Stage, ev.Status)
	if ev.Elapsed > 0 {
		row.elapsed = ev.Elapsed
	}
	if ev.Status == driver.StatusError {
		m.failed++
	}
	return m.prog.SetPercent(m.percent())
}

func (m *checkModel) percent() float64 {
	total := 0.0
	for _, row := range m.files {
		switch row.label {
		case labelOK, labelFailed:
			total++
		default:
			total += stageWeight(row.stage)
		}
	}
	return total / float64(len(m.files))
}

func stageWeight(stage driver.Stage) float64 {
	switch stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageParse:
		return 0.4
	case driver.StageValidate:
		return 0.8
	default:
		return 0
	}
}

func rowLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusQueued:
		return labelQueued
	case driver.StatusError:
		return labelFailed
	case driver.StatusDone:
		// load done — файл ещё не разобран
		if stage == driver.StageValidate {
			return labelOK
		}
	}
	switch stage {
	case driver.StageLoad:
		return labelLoading
	case driver.StageParse:
		return labelParsing
	default:
		return labelValidating
	}
}

func labelStyle(label string) lipgloss.Style {
	switch label {
	case labelOK:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case labelFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case labelLoading, labelParsing, labelValidating:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
