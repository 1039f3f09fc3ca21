package metrics

import (
	"testing"
	"time"

	"github.com/aardalath/arestools/internal/models"
)

func TestCollector_RecordTiming(t *testing.T) {
	c := NewCollector()

	c.RecordTiming(OpWait, 100*time.Millisecond)
	c.RecordTiming(OpWait, 300*time.Millisecond)
	c.RecordTiming(OpWait, 200*time.Millisecond)

	snap := c.Snapshot()
	if snap.Wait == nil {
		t.Fatal("Wait snapshot is nil")
	}
	if snap.Wait.Count != 3 {
		t.Errorf("Count = %d, want 3", snap.Wait.Count)
	}
	if snap.Wait.TotalTimeMs != 600 {
		t.Errorf("TotalTimeMs = %d, want 600", snap.Wait.TotalTimeMs)
	}
	if snap.Wait.AvgTimeMs != 200 {
		t.Errorf("AvgTimeMs = %f, want 200", snap.Wait.AvgTimeMs)
	}
	if snap.Wait.MinTimeMs != 100 {
		t.Errorf("MinTimeMs = %d, want 100", snap.Wait.MinTimeMs)
	}
	if snap.Wait.MaxTimeMs != 300 {
		t.Errorf("MaxTimeMs = %d, want 300", snap.Wait.MaxTimeMs)
	}
}

func TestCollector_RecordOutcome(t *testing.T) {
	c := NewCollector()

	c.RecordOutcome(models.OutcomeSucceeded)
	c.RecordOutcome(models.OutcomeSucceeded)
	c.RecordOutcome(models.OutcomeFailed)
	c.RecordOutcome(models.OutcomeUnclassified)

	snap := c.Snapshot()
	if snap.Outcomes[models.OutcomeSucceeded] != 2 {
		t.Errorf("succeeded = %d, want 2", snap.Outcomes[models.OutcomeSucceeded])
	}
	if snap.Outcomes[models.OutcomeFailed] != 1 {
		t.Errorf("failed = %d, want 1", snap.Outcomes[models.OutcomeFailed])
	}
	if snap.Outcomes[models.OutcomeUnclassified] != 1 {
		t.Errorf("unclassified = %d, want 1", snap.Outcomes[models.OutcomeUnclassified])
	}
	if snap.Outcomes[models.OutcomeTimedOut] != 0 {
		t.Errorf("timed_out = %d, want 0", snap.Outcomes[models.OutcomeTimedOut])
	}
}

func TestCollector_EmptySnapshot(t *testing.T) {
	c := NewCollector()

	snap := c.Snapshot()
	if snap.Copy != nil {
		t.Error("Copy snapshot should be nil with no recordings")
	}
	if snap.Wait != nil {
		t.Error("Wait snapshot should be nil with no recordings")
	}
	if len(snap.Outcomes) != 0 {
		t.Errorf("Outcomes = %v, want empty", snap.Outcomes)
	}
	if snap.UptimeSeconds < 0 {
		t.Errorf("UptimeSeconds = %f, want >= 0", snap.UptimeSeconds)
	}
}

func TestCollector_OperationsIndependent(t *testing.T) {
	c := NewCollector()

	c.RecordTiming(OpCopy, 5*time.Millisecond)
	c.RecordTiming(OpWait, 2*time.Second)

	snap := c.Snapshot()
	if snap.Copy == nil || snap.Copy.Count != 1 {
		t.Errorf("Copy = %+v, want count 1", snap.Copy)
	}
	if snap.Wait == nil || snap.Wait.Count != 1 {
		t.Errorf("Wait = %+v, want count 1", snap.Wait)
	}
	if snap.Copy.TotalTimeMs == snap.Wait.TotalTimeMs {
		t.Error("copy and wait timings should not be aggregated together")
	}
}
