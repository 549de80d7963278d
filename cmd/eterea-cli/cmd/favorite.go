package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"eterea/internal/application/commands"
)

var favoriteSet string

var favoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle or set the favorite flag",
	Long: `Flip the favorite flag of a bookmark, or set it with --set.

Examples:
  eterea-cli favorite 6f1c...      # toggle
  eterea-cli favorite --set=false 6f1c...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			result *commands.FavoriteResult
			err    error
		)
		switch favoriteSet {
		case "":
			result, err = commands.NewToggleFavoriteCommand(GetStore(), args[0]).Execute(cmd.Context())
		case "true", "false":
			result, err = commands.NewSetFavoriteCommand(GetStore(), args[0], favoriteSet == "true").Execute(cmd.Context())
		default:
			return fmt.Errorf("--set must be true or false, got %q", favoriteSet)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	favoriteCmd.Flags().StringVar(&favoriteSet, "set", "", "set the flag to true or false instead of toggling")
	rootCmd.AddCommand(favoriteCmd)
}
