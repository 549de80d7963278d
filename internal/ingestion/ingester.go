package ingestion

import (
	"context"
	"fmt"
	"os"
	"time"

	"eterea/internal/domain"
	"eterea/internal/logger"
	"eterea/internal/ports"
)

// DefaultBatchSize is the number of bookmarks per insert transaction
const DefaultBatchSize = 1000

// Ingester detects, parses and persists export files
type Ingester struct {
	store     ports.BookmarkWriter
	log       logger.Logger
	batchSize int
}

// Option configures an Ingester
type Option func(*Ingester)

// WithBatchSize sets the batch size; non-positive values keep the default
func WithBatchSize(n int) Option {
	return func(in *Ingester) {
		if n > 0 {
			in.batchSize = n
		}
	}
}

// NewIngester creates an ingester writing to store
func NewIngester(store ports.BookmarkWriter, log logger.Logger, opts ...Option) *Ingester {
	if log == nil {
		log = logger.Nop()
	}
	in := &Ingester{store: store, log: log, batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// BatchSize returns the configured batch size
func (in *Ingester) BatchSize() int {
	return in.batchSize
}

// Parse detects the format of path and parses it without touching storage
func (in *Ingester) Parse(path string) (*ParseResult, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	defer f.Close()

	log := in.log.With(logger.String("file", path), logger.String("format", format.String()))
	log.Info("detected format")

	parser, err := ParserFor(format)
	if err != nil {
		return nil, err
	}
	res, err := parser.Parse(f)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	for _, skipped := range res.Skipped {
		log.Warnf("skipping row %d: %v", skipped.Row, skipped.Err)
	}
	log.Info("parsed file",
		logger.Int("bookmarks", len(res.Bookmarks)),
		logger.Int("skipped", len(res.Skipped)))
	return res, nil
}

// IngestFile parses path and stores its bookmarks in batches. Batches that
// committed before a storage failure stay committed; the returned report
// counts them. Once started, ingestion is not cancelled by ctx.
func (in *Ingester) IngestFile(ctx context.Context, path string) (*domain.ImportReport, error) {
	start := time.Now()

	res, err := in.Parse(path)
	if err != nil {
		return nil, err
	}

	report := &domain.ImportReport{
		Path:        path,
		Format:      res.Format.String(),
		Parsed:      len(res.Bookmarks),
		RowsSkipped: len(res.Skipped),
	}

	ctx = context.WithoutCancel(ctx)
	in.log.Info("inserting bookmarks",
		logger.Int("total", len(res.Bookmarks)),
		logger.Int("batch_size", in.batchSize))

	for lo := 0; lo < len(res.Bookmarks); lo += in.batchSize {
		hi := min(lo+in.batchSize, len(res.Bookmarks))

		batch, err := in.store.InsertBatch(ctx, res.Bookmarks[lo:hi])
		if batch != nil {
			report.Inserted += batch.Inserted()
			if !batch.RolledBack {
				report.Duplicates += batch.Duplicates()
			}
		}
		if err != nil {
			report.Duration = time.Since(start)
			return report, fmt.Errorf("batch %d of %s: %w", report.Batches+1, path, err)
		}
		report.Batches++
		in.log.Debugf("batch %d: rows %d-%d, %d inserted", report.Batches, lo+1, hi, batch.Inserted())
	}

	report.Duration = time.Since(start)
	in.log.Info("import finished",
		logger.String("file", path),
		logger.Int("inserted", report.Inserted),
		logger.Int("duplicates", report.Duplicates),
		logger.Int("skipped", report.RowsSkipped),
		logger.Duration("duration", report.Duration))
	return report, nil
}

// wrapFileError keeps detection errors typed and wraps read failures
func wrapFileError(path string, err error) error {
	switch err.(type) {
	case *FormatUndetectedError:
		return err
	default:
		return &FileError{Path: path, Err: err}
	}
}
