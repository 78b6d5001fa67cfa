package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/tinytodo/internal/lists"
	"github.com/balkashynov/tinytodo/internal/tui"
)

var listsCmd = &cobra.Command{
	Use:     "lists",
	Aliases: []string{"l"},
	Short:   "Manage task lists",
	Long: `Manage task lists. The all-tasks list has id -1; it can be sorted,
hidden and have completed tasks shown, but not renamed, published or
deleted.`,
}

var listLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List task lists",
	Args:    cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		public, _ := cmd.Flags().GetBool("public")
		resp, err := a.manager.All(cmd.Context(), !public)
		if err != nil {
			return fmt.Errorf("fetch lists: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}

		printLists(cmd.OutOrStdout(), resp.List)
		return nil
	}),
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tui.ColorAccentBright))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorDisabledText))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSuccess))
)

// printLists prints a table of lists. Hidden lists are dimmed.
func printLists(w io.Writer, views []lists.View) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No lists found. Use 'tinytodo lists add \"name\"' to create your first list.")
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-5s %-30s %-16s %s", "ID", "NAME", "SORT", "FLAGS")))
	fmt.Fprintln(w, strings.Repeat("-", 70))

	for _, v := range views {
		row := fmt.Sprintf("%-5d %s  %-16s %s", v.ID, tui.FitName(v.Name, 28), tui.SortName(v.Sort), flagList(v))
		if v.Hidden != 0 {
			row = mutedStyle.Render(row)
		}
		fmt.Fprintln(w, row)
	}
}

func flagList(v lists.View) string {
	var flags []string
	if v.Published != 0 {
		flags = append(flags, "published")
	}
	if v.ShowCompl != 0 {
		flags = append(flags, "show-completed")
	}
	if v.ShowNotes != 0 {
		flags = append(flags, "show-notes")
	}
	if v.Hidden != 0 {
		flags = append(flags, "hidden")
	}
	return strings.Join(flags, ",")
}

// parseListID accepts a list id, including -1 for the all-tasks list.
func parseListID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || (id < 1 && id != lists.AllTasksID) {
		return 0, fmt.Errorf("invalid list ID '%s'", arg)
	}
	return id, nil
}

// printTotal reports the total of an operation.
func printTotal(w io.Writer, action string, resp lists.Response) {
	if resp.Total == 0 {
		fmt.Fprintln(w, mutedStyle.Render(action+": nothing changed"))
		return
	}
	fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("%s: %d", action, resp.Total)))
}

func init() {
	listLsCmd.Flags().Bool("public", false, "Show only what anonymous callers see")
	listLsCmd.Flags().Bool("json", false, "JSON output")

	listsCmd.AddCommand(listLsCmd)
	listsCmd.AddCommand(listAddCmd)
	listsCmd.AddCommand(listRenameCmd)
	listsCmd.AddCommand(listSortCmd)
	listsCmd.AddCommand(listFlagCmds...)
	listsCmd.AddCommand(listOrderCmd)
	listsCmd.AddCommand(listRmCmd)
	listsCmd.AddCommand(listClearCmd)
}
