package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stackaudit/stackaudit/internal/types"
)

// Run starts the interactive findings browser and blocks until the user quits.
func Run(findings []types.Finding) error {
	m := NewModel(findings)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
