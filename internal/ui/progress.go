// Package ui renders terminal views for long-running commands.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lexkit/internal/driver"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	workStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// column widths of a file row: status, tokens, invalid
const (
	statusCol  = 10
	tokensCol  = 8
	invalidCol = 6
)

// fileRow is one file of the run as last reported by the driver.
type fileRow struct {
	path    string
	stage   driver.Stage
	status  driver.Status
	tokens  int
	invalid int
	counted bool // tokens and invalid are known
}

func (r fileRow) finished() bool {
	return r.status == driver.StatusDone || r.status == driver.StatusError
}

// weight is how far the row has come, 0..1.
func (r fileRow) weight() float64 {
	if r.finished() {
		return 1
	}
	if r.status == driver.StatusQueued {
		return 0
	}
	switch r.stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageLex:
		return 0.5
	case driver.StageDiagnose:
		return 0.9
	}
	return 0
}

func (r fileRow) label() string {
	if r.status != driver.StatusWorking {
		return string(r.status)
	}
	switch r.stage {
	case driver.StageLoad:
		return "loading"
	case driver.StageLex:
		return "lexing"
	case driver.StageDiagnose:
		return "diagnosing"
	}
	return string(r.status)
}

func (r fileRow) style() lipgloss.Style {
	switch r.status {
	case driver.StatusDone:
		return okStyle
	case driver.StatusError:
		return errStyle
	case driver.StatusWorking:
		return workStyle
	}
	return idleStyle
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	phase   driver.Stage // run-wide stage, from events without a file
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model listing the files of a
// directory run with their status and token counts. The model quits once
// events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.rows[i] = fileRow{path: file, status: driver.StatusQueued}
		m.byPath[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
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
			m.bar.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next waits for the following driver event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		if ev.Status == driver.StatusWorking {
			m.phase = ev.Stage
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	row.stage, row.status = ev.Stage, ev.Status
	if ev.Stage == driver.StageDiagnose {
		row.tokens, row.invalid, row.counted = ev.Tokens, ev.Invalid, true
	}
	return m.bar.SetPercent(m.percent())
}

// percent is the share of finished work across all files.
func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += r.weight()
	}
	return sum / float64(len(m.rows))
}

// totals sums the rows: finished files, tokens and invalid tokens.
func (m *progressModel) totals() (finished, tokens, invalid int) {
	for _, r := range m.rows {
		if r.finished() {
			finished++
		}
		tokens += r.tokens
		invalid += r.invalid
	}
	return finished, tokens, invalid
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	finished, tokens, invalid := m.totals()

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header(finished)))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusCol-tokensCol-invalidCol-6, 20)
	for _, r := range m.rows {
		b.WriteString("  ")
		b.WriteString(r.style().Render(fmt.Sprintf("%*s", statusCol, r.label())))
		b.WriteString(" ")
		b.WriteString(countCells(r))
		b.WriteString(" ")
		b.WriteString(truncate(r.path, nameWidth))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n  %d tokens", tokens)
	if invalid > 0 {
		b.WriteString(", ")
		b.WriteString(invalidStyle.Render(fmt.Sprintf("%d invalid", invalid)))
	}
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) header(finished int) string {
	h := m.title
	if m.phase != "" && !m.done {
		phase := fileRow{stage: m.phase, status: driver.StatusWorking}
		h = fmt.Sprintf("%s (%s)", h, phase.label())
	}
	h = fmt.Sprintf("%s %d/%d", h, finished, len(m.rows))
	if m.done {
		return "done: " + h
	}
	return m.spinner.View() + " " + h
}

// countCells renders the tokens and invalid columns; blank until known.
func countCells(r fileRow) string {
	if !r.counted {
		return strings.Repeat(" ", tokensCol+1+invalidCol)
	}
	inv := fmt.Sprintf("%*s", invalidCol, "")
	if r.invalid > 0 {
		inv = invalidStyle.Render(fmt.Sprintf("%*s", invalidCol, fmt.Sprintf("!%d", r.invalid)))
	}
	return fmt.Sprintf("%*d", tokensCol, r.tokens) + " " + inv
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
