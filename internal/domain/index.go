package domain

import "time"

// InsertOutcome is what happened to one record of a batch
type InsertOutcome int

const (
	OutcomeInserted  InsertOutcome = iota
	OutcomeDuplicate               // natural key already stored, skipped
	OutcomeFailed                  // aborted the batch
)

func (o InsertOutcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "failed"
	}
}

// RecordResult is the outcome for one bookmark of a batch
type RecordResult struct {
	ID       string
	TweetURL string
	Outcome  InsertOutcome
	Err      error
}

// BatchReport collects per-record outcomes of one insert transaction.
// When RolledBack is set nothing from the batch was kept.
type BatchReport struct {
	Results    []RecordResult
	RolledBack bool
}

// Inserted counts records that were written (zero after a rollback)
func (r *BatchReport) Inserted() int {
	if r.RolledBack {
		return 0
	}
	return r.count(OutcomeInserted)
}

// Duplicates counts records skipped for an existing natural key
func (r *BatchReport) Duplicates() int {
	return r.count(OutcomeDuplicate)
}

func (r *BatchReport) count(o InsertOutcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// ImportReport summarizes one ingested file
type ImportReport struct {
	Path        string
	Format      string
	Parsed      int // bookmarks built from the file
	RowsSkipped int // rows that failed parsing or validation
	Inserted    int
	Duplicates  int
	Batches     int
	Duration    time.Duration
}

// Rate returns inserted bookmarks per second
func (r *ImportReport) Rate() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Inserted) / r.Duration.Seconds()
}
