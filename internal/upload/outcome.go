package upload

import "github.com/caritas-cda/rawload/internal/scan"

// Outcome is the terminal state of one file within a run. Each file reaches
// exactly one outcome; nothing is retried within a run.
type Outcome string

const (
	// OutcomeUploaded means the object was written to the store.
	OutcomeUploaded Outcome = "uploaded"
	// OutcomeSkipped means the destination key already existed and force
	// was off; no upload call was made.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means an I/O or store error occurred; the run continues
	// but exits non-zero.
	OutcomeFailed Outcome = "failed"
	// OutcomePlanned is the dry-run pseudo-outcome: the action was reported
	// and no I/O performed.
	OutcomePlanned Outcome = "planned"
)

// Result is the per-file outcome produced by the Uploader.
type Result struct {
	File    scan.FileRecord
	Key     string
	Outcome Outcome
	Err     error
}
