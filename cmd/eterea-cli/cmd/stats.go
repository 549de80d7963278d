package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"eterea/internal/application/commands"
)

var statsTop int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		top := cfg.TopTags
		if cmd.Flags().Changed("top") {
			top = statsTop
		}
		st, err := commands.NewStatsCommand(GetStore(), top).Execute(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Bookmarks: %d\n", st.TotalBookmarks)
		fmt.Fprintf(w, "Favorites: %d\n", st.FavoriteBookmarks)
		fmt.Fprintf(w, "Authors:   %d\n", st.UniqueAuthors)
		fmt.Fprintf(w, "Tags:      %d\n", st.UniqueTags)
		if st.EarliestDate != nil && st.LatestDate != nil {
			fmt.Fprintf(w, "Range:     %s to %s\n", st.EarliestDate.Format(time.DateOnly), st.LatestDate.Format(time.DateOnly))
		}
		if len(st.TopTags) > 0 {
			fmt.Fprintln(w, "\nTop tags:")
			for _, tc := range st.TopTags {
				fmt.Fprintf(w, "%6d  %s\n", tc.Count, tc.Name)
			}
		}
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags by usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := commands.NewTagsCommand(GetStore()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(tags) == 0 {
			fmt.Fprintln(w, "No tags")
		}
		for _, tc := range tags {
			fmt.Fprintf(w, "%6d  %s\n", tc.Count, tc.Name)
		}
		return nil
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the full-text index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := commands.NewReindexCommand(GetStore()).Execute(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Search index rebuilt")
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsTop, "top", 0, "how many top tags to show (default from config)")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(reindexCmd)
}
