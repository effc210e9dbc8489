package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, api API) error {
	p := tea.NewProgram(New(ctx, api), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal client failed: %w", err)
	}
	return nil
}
