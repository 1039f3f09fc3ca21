package monitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/aardalath/arestools/internal/models"
)

// Line markers the ARES server appends when an import attempt ends.
// Matched unanchored: server lines carry timestamp and level prefixes.
var (
	finishedRe = regexp.MustCompile(`FileManagerImpl - Finished importing`)
	successRe  = regexp.MustCompile(`- Import time:`)
	failedRe   = regexp.MustCompile(`- Import of task .* failed`)
)

// Monitor detects the outcome of a single import attempt by polling the
// tail of the server log. Imports must be strictly sequential: the log is
// one append-only stream with no per-task identifier, so the last two
// lines are only meaningful while one import is in flight.
type Monitor struct {
	// LogPath is the ARES server log file.
	LogPath string
	// Interval between tail polls. Defaults to one second.
	Interval time.Duration
	// Timeout bounds one wait; zero waits until the context ends.
	Timeout time.Duration
}

// Wait blocks until the log tail reports a terminal outcome. An expired
// Timeout produces OutcomeTimedOut; any other context cancellation is
// returned as an error. The log handle is held only for this wait.
func (m *Monitor) Wait(ctx context.Context) (models.Outcome, error) {
	f, err := os.Open(m.LogPath)
	if err != nil {
		return "", fmt.Errorf("open server log: %w", err)
	}
	defer f.Close()

	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	interval := m.Interval
	if interval <= 0 {
		interval = time.Second
	}

	// The first check is delayed one interval: the server needs a moment
	// to pick up the dropped file before the tail means anything.
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return models.OutcomeTimedOut, nil
			}
			return "", ctx.Err()
		case <-ticker.C:
		}

		lines, err := Tail(f, 2)
		if err != nil {
			return "", fmt.Errorf("tail server log: %w", err)
		}
		if len(lines) < 2 {
			continue
		}

		if outcome, done := Verdict(lines[0], lines[1]); done {
			return outcome, nil
		}
	}
}

// Verdict applies the marker protocol to the last two log lines: the
// second-to-last line must carry the import-finished marker, the last
// line the success or failure marker. done is false while the pair is
// incomplete, which means the import is still pending.
func Verdict(secondToLast, last string) (models.Outcome, bool) {
	if !finishedRe.MatchString(secondToLast) {
		return "", false
	}
	switch {
	case successRe.MatchString(last):
		return models.OutcomeSucceeded, true
	case failedRe.MatchString(last):
		return models.OutcomeFailed, true
	}
	return "", false
}
