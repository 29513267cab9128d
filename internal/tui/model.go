package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Faint(true)
)

// Work computes the flattened deletion sequence.
type Work func() ([]string, error)

type model struct {
	sp   spinner.Model
	work Work

	done bool
	dirs []string
	err  error
}

type analyzeDoneMsg struct {
	dirs []string
	err  error
}

func newModel(work Work) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return model{sp: sp, work: work}
}

// Analyze runs work while a spinner is shown on out, then clears the line.
// Input is not read and signals are left to the caller.
func Analyze(out io.Writer, work Work) ([]string, error) {
	p := tea.NewProgram(newModel(work),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(model)
	return m.dirs, m.err
}

func (m model) analyzeCmd() tea.Cmd {
	return func() tea.Msg {
		dirs, err := m.work()
		return analyzeDoneMsg{dirs: dirs, err: err}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.sp.Tick, m.analyzeCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case analyzeDoneMsg:
		m.done = true
		m.dirs = msg.dirs
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}
	return m.sp.View() + " " + labelStyle.Render("Analyzing...")
}
