package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/policyengine/sb60calc/internal/tui"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Walk the household curve interactively",
	RunE:  runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(_ *cobra.Command, _ []string) error {
	_, sc, _, err := loadScenario()
	if err != nil {
		return err
	}

	explorer, err := tui.NewExplorer(sc.Bill.ID+"  Change in net income", sc.Household)
	if err != nil {
		return err
	}

	p := tea.NewProgram(explorer, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
