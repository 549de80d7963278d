package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"eterea/internal/application/commands"
	"eterea/internal/ingestion"
	"eterea/internal/ports"
)

var (
	ingestDryRun    bool
	ingestBatchSize int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Import bookmark export files",
	Long: `Import one or more bookmark exports. The format is detected from the
file extension and, for CSV, from the header row. A dry run only parses
the files and does not open or create the database.

Examples:
  eterea-cli ingest bookmarks.csv
  eterea-cli ingest --dry-run export.json
  eterea-cli ingest --batch-size 500 old.csv new.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batch := cfg.BatchSize
		if ingestBatchSize > 0 {
			batch = ingestBatchSize
		}
		// dry runs never open the store
		var writer ports.BookmarkWriter
		if !ingestDryRun {
			writer = GetStore()
		}
		ingester := ingestion.NewIngester(writer, log, ingestion.WithBatchSize(batch))

		out := cmd.OutOrStdout()
		for _, path := range args {
			result, err := commands.NewImportCommand(ingester, path, ingestDryRun).Execute(cmd.Context())
			if result != nil {
				printImport(out, result)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	},
}

func printImport(w io.Writer, res *commands.ImportResult) {
	r := res.Report
	if res.DryRun {
		fmt.Fprintf(w, "%s (%s): %d bookmarks would be imported, %d rows skipped\n",
			r.Path, r.Format, r.Parsed, r.RowsSkipped)
	} else {
		fmt.Fprintf(w, "%s (%s): %d inserted, %d duplicates, %d rows skipped in %s (%.0f bookmarks/s)\n",
			r.Path, r.Format, r.Inserted, r.Duplicates, r.RowsSkipped, r.Duration.Round(time.Millisecond), r.Rate())
	}
	for _, skip := range res.Skipped {
		fmt.Fprintf(w, "  skipped %s\n", skip.Error())
	}
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestDryRun, "dry-run", "n", false, "parse and report without writing")
	ingestCmd.Flags().IntVar(&ingestBatchSize, "batch-size", 0, "bookmarks per transaction (default from config)")
	rootCmd.AddCommand(ingestCmd)
}
