package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"eterea/internal/adapters/sqlite"
	"eterea/internal/config"
	"eterea/internal/logger"
	"eterea/internal/ports"
)

var (
	dbPath string
	cfg    *config.Config
	log    logger.Logger
	store  *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "eterea-cli",
	Short: "Import and search bookmark exports",
	Long: `eterea-cli ingests bookmark exports (legacy CSV, new CSV and JSON)
into a local SQLite database and queries them with full-text search.

Re-importing the same file is safe: bookmarks are deduplicated by URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DatabasePath = config.ExpandHome(dbPath)
		}

		log = logger.New(cfg.LogLevel, cfg.PrettyLog)
		if !opensStore(cmd) {
			return nil
		}
		store, err = sqlite.Open(cfg.DatabasePath, log)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// opensStore is false for dry runs, which must not create the database
func opensStore(cmd *cobra.Command) bool {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	return err != nil || !dryRun
}

// closeStore releases the database. Post-run hooks are skipped when a
// command fails, so Execute calls it too.
func closeStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	_ = log.Sync()
	return err
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	_ = closeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the bookmark database (default from config)")
}

// GetStore returns the opened bookmark store
func GetStore() ports.BookmarkStore {
	return store
}
