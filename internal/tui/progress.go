// Package tui provides the interactive scan progress view used by the
// clean command on TTY sessions.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Prot10/MyMacCleaner-sub003/internal/ui"
)

// ProgressMsg reports one completed catalog entry.
type ProgressMsg struct {
	Done        int
	Total       int
	Description string
}

// DoneMsg ends the progress view.
type DoneMsg struct{}

// ScanModel is a minimal spinner-plus-counter model shown while the
// scanner walks the catalog.
type ScanModel struct {
	spinner  spinner.Model
	done     int
	total    int
	current  string
	quitting bool
}

// NewScanModel builds the progress model for a catalog of the given
// size.
func NewScanModel(total int) ScanModel {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(ui.OKStyle),
	)
	return ScanModel{spinner: sp, total: total}
}

func (m ScanModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case ProgressMsg:
		m.done = msg.Done
		m.total = msg.Total
		m.current = msg.Description
		return m, nil

	case DoneMsg:
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ScanModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("\n  %s Scanning %d/%d  %s\n",
		m.spinner.View(), m.done, m.total, ui.MutedStyle.Render(m.current))
}

// Cancelled reports whether the user quit the view before the scan
// finished.
func (m ScanModel) Cancelled() bool {
	return m.quitting && m.done < m.total
}
