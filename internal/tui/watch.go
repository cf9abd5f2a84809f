package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ravenrobotics/raven/internal/supervise"
)

// refreshInterval is how often the watch view polls the registry.
const refreshInterval = time.Second

// serviceRow is one service's live state in the watch table.
type serviceRow struct {
	Name   string
	PID    int
	Alive  bool
	Uptime string
}

// snapshotMsg carries one polling pass over the registry.
type snapshotMsg struct {
	Rows []serviceRow
	Err  error
}

// tickMsg schedules the next polling pass.
type tickMsg time.Time

// watchModel renders a self-refreshing service status table.
type watchModel struct {
	version  string
	registry *supervise.Registry
	spinner  spinner.Model
	rows     []serviceRow
	err      error
	loaded   bool
	quitting bool
}

func newWatchModel(version string, registry *supervise.Registry) watchModel {
	return watchModel{
		version:  version,
		registry: registry,
		spinner:  newSpinner(),
	}
}

// snapshotCmd reads the registry and probes each entry's liveness.
func snapshotCmd(registry *supervise.Registry) tea.Cmd {
	return func() tea.Msg {
		entries, err := registry.Read()
		if err != nil {
			return snapshotMsg{Err: err}
		}
		rows := make([]serviceRow, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, serviceRow{
				Name:   e.Name,
				PID:    e.PID,
				Alive:  supervise.Alive(e.PID),
				Uptime: supervise.Uptime(e.PID),
			})
		}
		return snapshotMsg{Rows: rows}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, snapshotCmd(m.registry))
}

// Update implements tea.Model.
func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case snapshotMsg:
		m.rows = msg.Rows
		m.err = msg.Err
		m.loaded = true
		return m, tickCmd()

	case tickMsg:
		return m, snapshotCmd(m.registry)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(titleStyle.Render("RAVEN"))
	b.WriteString(" ")
	b.WriteString(versionStyle.Render(m.version))
	b.WriteString("  ")
	b.WriteString(runningStyle.Render("fleet status"))
	b.WriteString("\n  ")
	b.WriteString(separator(48))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString("  " + m.spinner.View() + " reading registry...\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render("✗") + " " + m.err.Error() + "\n")
	case len(m.rows) == 0:
		b.WriteString(dimStyle.Render("  No services registered. Run 'raven start' first.") + "\n")
	default:
		b.WriteString(fmt.Sprintf("  %-18s %-10s %-10s %s\n",
			dimStyle.Render("SERVICE"), dimStyle.Render("PID"),
			dimStyle.Render("STATE"), dimStyle.Render("UPTIME")))
		for _, row := range m.rows {
			state := successStyle.Render("● running")
			uptime := row.Uptime
			if !row.Alive {
				state = errorStyle.Render("○ dead")
				uptime = "-"
			}
			if uptime == "" {
				uptime = "-"
			}
			b.WriteString(fmt.Sprintf("  %-18s %-10d %-19s %s\n",
				normalStyle.Render(row.Name), row.PID, state, dimStyle.Render(uptime)))
		}
	}

	b.WriteString("\n  ")
	b.WriteString(helpStyle.Render("q quit · refreshes every second"))
	b.WriteString("\n")
	return b.String()
}

// RunWatch launches the live status view and blocks until the user
// quits.
//
// Parameters:
//   - version: the CLI version string for the header
//   - registry: the process registry to poll
//
// Returns:
//   - error: any error from the Bubble Tea runtime
func RunWatch(version string, registry *supervise.Registry) error {
	p := tea.NewProgram(
		newWatchModel(version, registry),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
