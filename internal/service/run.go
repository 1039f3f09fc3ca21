package service

import (
	"sync"
	"time"

	"github.com/aardalath/arestools/internal/models"
	"github.com/google/uuid"
)

// Phase represents the stage an import run is in.
type Phase string

const (
	PhasePending    Phase = "pending"
	PhaseDefinition Phase = "definition"
	PhaseImporting  Phase = "importing"
	PhaseDone       Phase = "done"
	PhaseAborted    Phase = "aborted"
)

// RunState is a point-in-time view of a run's progress.
type RunState struct {
	Phase     Phase
	Current   string // file currently being imported
	Progress  int
	Total     int
	Succeeded int
	Failed    int
}

// Run tracks the live state of an import run. ID and StartedAt are set
// once at creation; everything else is guarded by the mutex and read
// through Snapshot.
type Run struct {
	ID        string
	StartedAt time.Time

	mu    sync.RWMutex
	state RunState
}

func newRun() *Run {
	return &Run{
		ID:        uuid.New().String()[:8], // Short ID for convenience
		StartedAt: time.Now(),
		state:     RunState{Phase: PhasePending},
	}
}

func (r *Run) setPhase(p Phase) {
	r.mu.Lock()
	r.state.Phase = p
	r.mu.Unlock()
}

func (r *Run) setTotal(n int) {
	r.mu.Lock()
	r.state.Total = n
	r.mu.Unlock()
}

func (r *Run) startFile(name string) {
	r.mu.Lock()
	r.state.Current = name
	r.mu.Unlock()
}

func (r *Run) recordOutcome(outcome models.Outcome) {
	r.mu.Lock()
	r.state.Progress++
	switch outcome {
	case models.OutcomeSucceeded:
		r.state.Succeeded++
	default:
		r.state.Failed++
	}
	r.mu.Unlock()
}

// Snapshot returns a thread-safe copy of run state.
func (r *Run) Snapshot() RunState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}
