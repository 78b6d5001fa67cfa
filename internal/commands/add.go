package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a list",
	Long: `Create a list. Quotes, angle brackets and ampersands are removed from
the name and surrounding whitespace is trimmed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		resp, err := a.manager.Create(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("create list: %w", err)
		}

		v := resp.List[0]
		fmt.Fprintf(cmd.OutOrStdout(), "Created list #%d: %s\n", v.ID, v.Name)
		return nil
	}),
}
