package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listRenameCmd = &cobra.Command{
	Use:     "rename <list_id> <name>",
	Aliases: []string{"mv"},
	Short:   "Rename a list",
	Args:    cobra.MinimumNArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseListID(args[0])
		if err != nil {
			return err
		}

		resp, err := a.manager.Rename(cmd.Context(), id, strings.Join(args[1:], " "))
		if err != nil {
			return fmt.Errorf("rename list #%d: %w", id, err)
		}
		if len(resp.List) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "List #%d cannot be renamed.\n", id)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Renamed list #%d to %s\n", id, resp.List[0].Name)
		return nil
	}),
}
