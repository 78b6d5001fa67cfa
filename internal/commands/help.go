package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show comprehensive help for tinytodo",
	Long:  `Display detailed help for all tinytodo commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if sub, _, err := rootCmd.Find(args); err == nil && sub != rootCmd {
				_ = sub.Help()
				return
			}
		}
		showCustomHelp(cmd)
	},
}

func showCustomHelp(cmd *cobra.Command) {
	fmt.Fprint(cmd.OutOrStdout(), `
tinytodo - task lists from the terminal and over HTTP

COMMANDS:

  serve                   Serve the lists API over HTTP
    --listen              Listen address (default 127.0.0.1:8080)
    --token               Bearer token required for writes

  lists ls                Show all lists (the all-tasks list is id -1,
                          pass it after --, e.g. lists sort -- -1 2)
    --public              Show what anonymous callers see
    --json                JSON output
  lists add <name>        Create a list
  lists rename <id> <name>
  lists sort <id> <mode>  0 manual, 1 priority, 2 due, 3 created, 4 edited (+100 descending)
  lists hide|unhide <id>
  lists publish|unpublish <id>
  lists show-notes|hide-notes <id>
  lists show-completed|hide-completed <id>
  lists order <id>...     Put lists in the given order
  lists rm <id>           Delete a list and its tasks
    -y, --yes             Do not ask for confirmation
  lists clear <id>        Delete the completed tasks of a list

  task add <list> <title> Add a task with smart parsing
    -t, --tags            Comma-separated tags
    -p, --priority        Priority: low|medium|high
    --note                Additional notes

    Smart syntax:
      #hashtags     Auto-create tags
      +priority     Set priority (low/medium/high)

    Example:
      tinytodo task add 2 "Fix login bug #frontend +high"

  task done|undone <id>   Mark a task completed or open
  task ls <list>          List the tasks of a list

  tui                     Browse and edit lists interactively
  version                 Print version information
  help                    Show this help

GLOBAL FLAGS:

  --config                Config file (default ./.tinytodo.json)
  --db                    SQLite database path
  --settings-dir          Directory of settings domains
  --table-prefix          Table name prefix
  --log-level             debug|info|warn|error

`)
}
