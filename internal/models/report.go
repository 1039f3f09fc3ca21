package models

import (
	"fmt"
	"time"
)

// FileResult records the outcome of one dispatched input file.
type FileResult struct {
	// Source is the input file as given to the run.
	Source string
	// Type is the resolved data type, forced or detected, or the
	// TypeAssumedFromDir label when an explicit folder was used.
	Type string
	// Dir is the destination subdirectory under the import root.
	Dir string
	// Outcome is the terminal result for this file.
	Outcome Outcome
	// Waited is the time spent polling the server log for the verdict.
	Waited time.Duration
	// Message carries error detail for failed copies.
	Message string
}

// Report summarizes a completed import run.
type Report struct {
	RunID     string
	Started   time.Time
	Elapsed   time.Duration
	Total     int
	Succeeded int
	Failed    int
	Results   []FileResult
}

// Summary renders the run counts in the classic one-line form.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d of %d files successfully imported", r.Succeeded, r.Total)
}
