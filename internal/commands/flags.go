package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tinytodo/internal/lists"
	"github.com/balkashynov/tinytodo/internal/tui"
)

var listSortCmd = &cobra.Command{
	Use:   "sort <list_id> <mode>",
	Short: "Set how tasks of a list are sorted",
	Long: `Set the task sort mode of a list.

Modes:
  0        manual
  1 / 101  priority (101 descending)
  2 / 102  due date
  3 / 103  created
  4 / 104  edited

Any other value resets the list to manual sorting.`,
	Args: cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseListID(args[0])
		if err != nil {
			return err
		}
		mode, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid sort mode '%s'", args[1])
		}

		if _, err := a.manager.SetSort(cmd.Context(), id, mode); err != nil {
			return fmt.Errorf("sort list #%d: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "List #%d sorted by %s\n", id, tui.SortName(lists.NormalizeSort(mode)))
		return nil
	}),
}

type flagSetter func(m *lists.Manager, ctx context.Context, id int64, on bool) (lists.Response, error)

// flagCommand builds a command that switches one list flag to value.
func flagCommand(use, short string, value bool, set flagSetter) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <list_id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseListID(args[0])
			if err != nil {
				return err
			}

			resp, err := set(a.manager, cmd.Context(), id, value)
			if err != nil {
				return fmt.Errorf("%s list #%d: %w", use, id, err)
			}
			printTotal(cmd.OutOrStdout(), use, resp)
			return nil
		}),
	}
}

var listFlagCmds = []*cobra.Command{
	flagCommand("hide", "Hide a list from the tab bar", true, (*lists.Manager).SetHidden),
	flagCommand("unhide", "Show a hidden list in the tab bar", false, (*lists.Manager).SetHidden),
	flagCommand("publish", "Let anonymous callers read a list", true, (*lists.Manager).SetPublished),
	flagCommand("unpublish", "Make a list private", false, (*lists.Manager).SetPublished),
	flagCommand("show-notes", "Expand task notes", true, (*lists.Manager).SetShowNotes),
	flagCommand("hide-notes", "Collapse task notes", false, (*lists.Manager).SetShowNotes),
	flagCommand("show-completed", "Show completed tasks", true, (*lists.Manager).SetShowCompleted),
	flagCommand("hide-completed", "Hide completed tasks", false, (*lists.Manager).SetShowCompleted),
}
