package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// RunListsTUI starts the interactive list browser
func RunListsTUI(service ListService) error {
	model := NewListModel(service)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(ListModel); ok && m.err != nil {
		fmt.Printf("❌ Error: %v\n", m.err)
	}

	return nil
}
