package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"eterea/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a bookmark",
	Long: `Delete a bookmark with its tag links, media and search index entry.
Tags stay in the catalog.

Warning: This operation cannot be undone. Importing the export again
restores the bookmark without its favorite flag.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewDeleteCommand(GetStore(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
