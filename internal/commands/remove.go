package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listRmCmd = &cobra.Command{
	Use:     "rm <list_id>",
	Aliases: []string{"delete"},
	Short:   "Delete a list with all its tasks",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseListID(args[0])
		if err != nil {
			return err
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			v, err := a.manager.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Delete list #%d %q and all its tasks? [y/N] ", id, v.Name)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		resp, err := a.manager.Delete(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("delete list #%d: %w", id, err)
		}
		printTotal(cmd.OutOrStdout(), "deleted", resp)
		return nil
	}),
}

var listClearCmd = &cobra.Command{
	Use:   "clear <list_id>",
	Short: "Delete the completed tasks of a list",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseListID(args[0])
		if err != nil {
			return err
		}

		resp, err := a.manager.ClearCompleted(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("clear list #%d: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d completed tasks from list #%d\n", resp.Total, id)
		return nil
	}),
}

func init() {
	listRmCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
