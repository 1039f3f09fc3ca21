// Package models defines data structures shared across the import tool.
package models

// Outcome represents the terminal result of a single import attempt.
type Outcome string

const (
	OutcomeSucceeded    Outcome = "succeeded"
	OutcomeFailed       Outcome = "failed"
	OutcomeUnclassified Outcome = "unclassified"
	OutcomeTimedOut     Outcome = "timed_out"
)

// TypeAssumedFromDir is the type label for files routed through an
// explicit destination directory, where no classification happens.
const TypeAssumedFromDir = "<assumed from specified folder>"
