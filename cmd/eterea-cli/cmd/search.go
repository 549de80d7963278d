package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eterea/internal/application"
	"eterea/internal/application/commands"
	"eterea/internal/domain"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Full-text search",
	Long: `Search bookmark content, notes, authors and tags.

Every term is prefix-matched and all terms must match. Results are
ranked by relevance, then newest first.

Examples:
  eterea-cli search rust
  eterea-cli search --limit 10 sqlite fts`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		results, err := commands.NewSearchCommand(GetStore(), query, searchLimit).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printBookmarks(cmd.OutOrStdout(), results, query)
		return nil
	},
}

var filterOpts struct {
	query     string
	tag       string
	author    string
	from      string
	to        string
	favorites bool
	media     string
	offset    int
	limit     int
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Query with combined constraints",
	Long: `Query bookmarks by text, tag, author, date range, favorite flag and
attached media. All given constraints must hold.

Examples:
  eterea-cli filter --tag go --from 2024-01-01
  eterea-cli filter --author @someone --media yes
  eterea-cli filter --query "async rust" --favorites`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := buildFilter()
		if err != nil {
			return err
		}
		page, err := commands.NewFilterCommand(GetStore(), f).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printPage(cmd.OutOrStdout(), page, f.Query)
		return nil
	},
}

func buildFilter() (domain.SearchFilter, error) {
	f := domain.SearchFilter{
		Query:         filterOpts.query,
		Tag:           filterOpts.tag,
		Author:        filterOpts.author,
		FavoritesOnly: filterOpts.favorites,
		Offset:        filterOpts.offset,
		Limit:         filterOpts.limit,
	}

	var err error
	if f.From, err = application.ParseDateBound(filterOpts.from, false); err != nil {
		return f, err
	}
	if f.To, err = application.ParseDateBound(filterOpts.to, true); err != nil {
		return f, err
	}

	switch filterOpts.media {
	case "", "any":
	case "yes":
		yes := true
		f.HasMedia = &yes
	case "no":
		no := false
		f.HasMedia = &no
	default:
		return f, fmt.Errorf("--media must be any, yes or no, got %q", filterOpts.media)
	}
	return f, nil
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "maximum results (default 100)")
	rootCmd.AddCommand(searchCmd)

	fl := filterCmd.Flags()
	fl.StringVarP(&filterOpts.query, "query", "q", "", "full-text terms")
	fl.StringVarP(&filterOpts.tag, "tag", "t", "", "exact tag, case-insensitive")
	fl.StringVarP(&filterOpts.author, "author", "a", "", "exact author handle")
	fl.StringVar(&filterOpts.from, "from", "", "earliest date (YYYY-MM-DD or RFC 3339)")
	fl.StringVar(&filterOpts.to, "to", "", "latest date (YYYY-MM-DD or RFC 3339)")
	fl.BoolVarP(&filterOpts.favorites, "favorites", "f", false, "only favorites")
	fl.StringVar(&filterOpts.media, "media", "any", "attached media: any, yes or no")
	fl.IntVar(&filterOpts.offset, "offset", 0, "results to skip")
	fl.IntVarP(&filterOpts.limit, "limit", "l", 0, "page size (default 100)")
	rootCmd.AddCommand(filterCmd)
}
