package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/tinytodo/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and edit lists interactively",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		return tui.RunListsTUI(a.manager)
	}),
}
