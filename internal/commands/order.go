package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tinytodo/internal/parser"
)

var listOrderCmd = &cobra.Command{
	Use:   "order <list_id>...",
	Short: "Reorder lists",
	Long: `Reorder lists. The given lists take positions 0, 1, 2... in the order
named; lists not named keep their position.

Usage:
  tinytodo lists order 3 1 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ids := make([]int64, 0, len(args))
		for _, arg := range args {
			id, err := parseListID(arg)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}

		resp, err := a.manager.Reorder(cmd.Context(), parser.OrderFromIDs(ids))
		if err != nil {
			return fmt.Errorf("reorder lists: %w", err)
		}
		printTotal(cmd.OutOrStdout(), "order", resp)
		return nil
	}),
}
