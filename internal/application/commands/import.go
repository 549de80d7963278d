package commands

import (
	"context"
	"time"

	"eterea/internal/application"
	"eterea/internal/domain"
	"eterea/internal/ingestion"
)

// ImportResult contains the outcome of importing one file
type ImportResult struct {
	Report  *domain.ImportReport
	Skipped []ingestion.RowError
	DryRun  bool
}

// ImportCommand ingests one export file
type ImportCommand struct {
	ingester *ingestion.Ingester
	Path     string
	DryRun   bool
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(ingester *ingestion.Ingester, path string, dryRun bool) *ImportCommand {
	return &ImportCommand{
		ingester: ingester,
		Path:     path,
		DryRun:   dryRun,
	}
}

// Validate checks if the import operation is valid
func (c *ImportCommand) Validate() error {
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the import. A dry run parses the file and reports what
// would be imported without writing anything. After a storage failure the
// partial report is returned along with the error.
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.DryRun {
		start := time.Now()
		res, err := c.ingester.Parse(c.Path)
		if err != nil {
			return nil, err
		}
		return &ImportResult{
			Report: &domain.ImportReport{
				Path:        c.Path,
				Format:      res.Format.String(),
				Parsed:      len(res.Bookmarks),
				RowsSkipped: len(res.Skipped),
				Duration:    time.Since(start),
			},
			Skipped: res.Skipped,
			DryRun:  true,
		}, nil
	}

	report, err := c.ingester.IngestFile(ctx, c.Path)
	if report == nil {
		return nil, err
	}
	return &ImportResult{Report: report}, err
}
