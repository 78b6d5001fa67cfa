package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tinytodo/internal/db"
	"github.com/balkashynov/tinytodo/internal/logging"
	"github.com/balkashynov/tinytodo/internal/parser"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Manage the tasks of a list",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <list_id> <title>",
	Short: "Add a task to a list",
	Long: `Add a task to a list.

Smart parsing syntax:
  #tag1,tag2  - Tags (comma-separated or individual)
  +priority   - Priority (low/medium/high or 1/2/3)

Example:
  tinytodo task add 2 "Buy milk #shop +high"`,
	Args: cobra.MinimumNArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		listID, err := parseListID(args[0])
		if err != nil {
			return err
		}

		parsed := parser.ParseTitle(strings.Join(args[1:], " "))
		if len(parsed.Errors) > 0 {
			return fmt.Errorf("cannot parse task: %s", strings.Join(parsed.Errors, ", "))
		}
		if parsed.Title == "" {
			return fmt.Errorf("task title cannot be empty")
		}

		tags := parsed.Tags
		if flagTags, _ := cmd.Flags().GetStringSlice("tags"); len(flagTags) > 0 {
			tags = flagTags
		}
		prio := parsed.Priority
		if flagPrio, _ := cmd.Flags().GetString("priority"); flagPrio != "" {
			p, ok := parser.PriorityToInt(flagPrio)
			if !ok {
				return fmt.Errorf("invalid priority '%s'. Use: low, medium, high, 1, 2, or 3", flagPrio)
			}
			prio = p
		}
		note, _ := cmd.Flags().GetString("note")

		task, err := a.tasks.Create(cmd.Context(), db.CreateTaskRequest{
			ListID: listID,
			Title:  parsed.Title,
			Tags:   tags,
			Prio:   prio,
			Note:   note,
		})
		if err != nil {
			return err
		}
		a.logger.Debug("task created", logging.TaskID(task.ID), logging.ListID(listID))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created task #%d: %s\n", task.ID, task.Title)
		if len(tags) > 0 {
			fmt.Fprintf(out, "  Tags: %s\n", strings.Join(tags, ", "))
		}
		if task.Prio > 0 {
			fmt.Fprintf(out, "  Priority: %s\n", priorityName(task.Prio))
		}
		return nil
	}),
}

func priorityName(prio int) string {
	priorities := []string{"", "low", "medium", "high"}
	if prio < 0 || prio >= len(priorities) {
		return ""
	}
	return priorities[prio]
}

// completeCommand marks a task done or back to open.
func completeCommand(use, short string, done bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <task_id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			taskID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task ID '%s'", args[0])
			}

			task, err := a.tasks.SetCompleted(cmd.Context(), taskID, done)
			if err != nil {
				return err
			}
			a.logger.Debug("task completion changed", logging.TaskID(task.ID), "done", done)

			if done {
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Marked task #%d as done: %s\n", task.ID, task.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "↩️  Marked task #%d back to open: %s\n", task.ID, task.Title)
			}
			return nil
		}),
	}
}

var (
	taskDoneCmd   = completeCommand("done", "Mark a task as completed", true)
	taskUndoneCmd = completeCommand("undone", "Mark a completed task as open", false)
)

var taskLsCmd = &cobra.Command{
	Use:     "ls <list_id>",
	Aliases: []string{"list"},
	Short:   "List the tasks of a list",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		listID, err := parseListID(args[0])
		if err != nil {
			return err
		}

		tasks, err := a.tasks.ByList(cmd.Context(), listID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintf(out, "No tasks in list #%d.\n", listID)
			return nil
		}

		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-5s %-6s %-40s %-8s %s", "ID", "STATUS", "TITLE", "PRIORITY", "TAGS")))
		fmt.Fprintln(out, strings.Repeat("-", 80))
		for _, task := range tasks {
			tags, err := a.tasks.TagNames(cmd.Context(), task.ID)
			if err != nil {
				return err
			}

			title := task.Title
			if len(title) > 38 {
				title = title[:35] + "..."
			}
			status := "todo"
			if task.Compl {
				status = "done"
			}

			row := fmt.Sprintf("%-5d %-6s %-40s %-8s %s", task.ID, status, title, priorityName(task.Prio), strings.Join(tags, ","))
			if task.Compl {
				row = mutedStyle.Render(row)
			}
			fmt.Fprintln(out, row)
		}
		return nil
	}),
}

func init() {
	taskAddCmd.Flags().StringSliceP("tags", "t", []string{}, "Comma-separated tags")
	taskAddCmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high, or 1-3")
	taskAddCmd.Flags().String("note", "", "Additional notes")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskUndoneCmd)
	taskCmd.AddCommand(taskLsCmd)
}
