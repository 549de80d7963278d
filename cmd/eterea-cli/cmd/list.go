package cmd

import (
	"github.com/spf13/cobra"

	"eterea/internal/application/commands"
)

var (
	listOffset    int
	listLimit     int
	listFavorites bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks newest first",
	Long: `List stored bookmarks one page at a time, newest first.

Examples:
  eterea-cli list
  eterea-cli list --favorites
  eterea-cli list --offset 50 --limit 50`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := commands.NewListCommand(GetStore(), listOffset, listLimit, listFavorites).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printPage(cmd.OutOrStdout(), page, "")
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one bookmark in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := commands.NewShowCommand(GetStore(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printBookmark(cmd.OutOrStdout(), b)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "bookmarks to skip")
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 0, "page size (default 50)")
	listCmd.Flags().BoolVarP(&listFavorites, "favorites", "f", false, "only favorites")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
