// Package tui provides a Bubble Tea terminal user interface for gig-list.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ZimbiX/gig-list-en/internal/model"
	"github.com/ZimbiX/gig-list-en/internal/pipeline"
	"github.com/ZimbiX/gig-list-en/internal/report"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	stageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Width(15)
)

const maxLogs = 10

// errCancelled is reported when the user stops a run.
var errCancelled = fmt.Errorf("cancelled by user: %w", context.Canceled)

// State represents the current UI state.
type State int

const (
	StateStarting State = iota
	StateRunning
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   pipeline.ProgressLevel
}

// stageProgress tracks the latest counts reported for a stage.
type stageProgress struct {
	done  int
	total int
}

// RunFunc runs the crawl. The model calls it once from Init.
type RunFunc func(ctx context.Context) (*model.Report, error)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	spinner  spinner.Model
	progress progress.Model
	logs     []LogEntry
	stages   map[pipeline.Stage]stageProgress
	report   *model.Report
	err      error
	verbose  bool

	ctx    context.Context
	cancel context.CancelFunc
	run    RunFunc

	width  int
	height int
}

// NewModel creates a new TUI model that will call run with a context it
// cancels on ctrl+c or esc.
func NewModel(ctx context.Context, run RunFunc, verbose bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(ctx)

	return Model{
		state:    StateStarting,
		spinner:  sp,
		progress: prog,
		logs:     make([]LogEntry, 0),
		stages:   make(map[pipeline.Stage]stageProgress),
		verbose:  verbose,
		ctx:      ctx,
		cancel:   cancel,
		run:      run,
	}
}

// Message types
type (
	// ProgressMsg carries a pipeline progress event.
	ProgressMsg struct {
		Event pipeline.ProgressEvent
	}

	// DoneMsg is sent when the run finishes.
	DoneMsg struct {
		Report *model.Report
		Err    error
	}
)

// Init starts the spinner and the run.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start())
}

func (m Model) start() tea.Cmd {
	ctx, run := m.ctx, m.run
	return func() tea.Msg {
		r, err := run(ctx)
		return DoneMsg{Report: r, Err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 30
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			if m.state != StateComplete {
				m.state = StateError
				m.err = errCancelled
			}
			return m, tea.Quit

		case "esc":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}
			m.cancel()
			m.state = StateError
			m.err = errCancelled

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "v":
			m.verbose = !m.verbose
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		ev := msg.Event
		if m.state == StateStarting {
			m.state = StateRunning
		}
		if ev.Stage != "" && ev.Total > 0 {
			m.stages[ev.Stage] = stageProgress{done: ev.Done, total: ev.Total}
		}
		// Filter verbose messages if not in verbose mode
		if ev.Level == pipeline.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{Message: ev.Message, Level: ev.Level})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case DoneMsg:
		switch {
		case m.state == StateError:
			// Already cancelled by the user.
		case msg.Err != nil && m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
			m.report = msg.Report
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ gig-list"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Upcoming gigs of the bands you like"))
	b.WriteString("\n\n")

	switch m.state {
	case StateStarting:
		b.WriteString(m.viewStarting())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewStarting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching liked pages..."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.renderStages())
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderStages() string {
	var b strings.Builder

	for _, stage := range pipeline.Stages {
		sp, ok := m.stages[stage]
		b.WriteString(stageStyle.Render(string(stage)))
		if !ok {
			b.WriteString(m.spinner.View())
			b.WriteString(dimStyle.Render(" waiting"))
			b.WriteString("\n")
			continue
		}

		b.WriteString(m.progress.ViewAs(float64(sp.done) / float64(sp.total)))
		b.WriteString(infoStyle.Render(fmt.Sprintf(" %d/%d", sp.done, sp.total)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	bands, events, detailed := 0, 0, 0
	if m.report != nil {
		bands = len(m.report.Bands)
		events = m.report.EventCount()
		detailed = m.report.DetailedCount()
	}

	box := boxStyle.Render(fmt.Sprintf(
		"✓ Crawl Complete!\n\n"+
			"Bands: %d\n"+
			"Events: %d\n"+
			"With details: %d",
		bands,
		events,
		detailed,
	))
	b.WriteString(box)
	b.WriteString("\n\n")

	if m.report != nil {
		b.WriteString(report.RenderTree(m.report))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")

	var se *pipeline.StageError
	if errors.As(m.err, &se) {
		b.WriteString(fmt.Sprintf("  Stage: %s\n", se.Stage))
		b.WriteString(fmt.Sprintf("  Key:   %s\n", se.Key))
		b.WriteString(fmt.Sprintf("  %s\n", se.Err.Error()))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  Work done before the failure is cached; run again to resume."))
		b.WriteString("\n")
	} else if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s\n", m.err.Error()))
	}

	if len(m.logs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case pipeline.LevelError:
			style = errorStyle
			prefix = "✗"
		case pipeline.LevelWarning:
			style = warningStyle
			prefix = "!"
		case pipeline.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case pipeline.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateStarting, StateRunning:
		return "v: verbose • esc: cancel"
	case StateComplete, StateError:
		return "q: quit"
	}
	return ""
}

// Run starts the TUI application and blocks until it exits. Once the
// alternate screen is gone, a completed report is written to out.
//
// start receives a function that forwards progress events to the UI and
// returns the RunFunc to execute, so the pipeline can report into the
// program it runs under.
func Run(ctx context.Context, out io.Writer, verbose bool, start func(onProgress func(pipeline.ProgressEvent)) RunFunc) error {
	var program *tea.Program
	onProgress := func(e pipeline.ProgressEvent) {
		program.Send(ProgressMsg{Event: e})
	}

	program = tea.NewProgram(NewModel(ctx, start(onProgress), verbose), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}
	return finish(final, out)
}

// finish reports the outcome of the final model: the run error, or the
// rendered report of a completed run.
func finish(final tea.Model, out io.Writer) error {
	m, ok := final.(Model)
	if !ok {
		return nil
	}

	switch m.state {
	case StateError:
		return m.err
	case StateComplete:
		if m.report == nil {
			return nil
		}
		_, err := fmt.Fprintln(out, report.RenderTree(m.report))
		return err
	}
	return nil
}
