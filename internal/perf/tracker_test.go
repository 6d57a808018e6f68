package perf

import (
	"testing"
	"time"
)

func TestTracker_StartStopLifecycle(t *testing.T) {
	tr := NewTracker(false, false)

	if err := tr.Start(); err != nil {
		t.Fatal(err)
	}
	if err := tr.Start(); err == nil {
		t.Error("double Start should fail")
	}

	m, err := tr.Stop()
	if err != nil {
		t.Fatal(err)
	}
	if m.WallTime <= 0 {
		t.Errorf("expected positive wall time, got %v", m.WallTime)
	}

	if _, err := tr.Stop(); err == nil {
		t.Error("Stop after Stop should fail")
	}
}

func TestTracker_RecordIOAccumulates(t *testing.T) {
	tr := NewTracker(false, true)
	if err := tr.Start(); err != nil {
		t.Fatal(err)
	}

	tr.RecordIO(100, 2*time.Millisecond)
	tr.RecordIO(50, time.Millisecond)

	m, err := tr.Stop()
	if err != nil {
		t.Fatal(err)
	}
	if m.TotalBytesRead != 150 {
		t.Errorf("expected 150 bytes read, got %d", m.TotalBytesRead)
	}
	if m.FilesRead != 2 {
		t.Errorf("expected 2 files read, got %d", m.FilesRead)
	}
	if m.TotalIOTime != 3*time.Millisecond {
		t.Errorf("expected 3ms IO time, got %v", m.TotalIOTime)
	}
}

func TestTracker_RecordIOIgnoredWhenInactive(t *testing.T) {
	tr := NewTracker(false, true)
	tr.RecordIO(100, time.Millisecond)

	if err := tr.Start(); err != nil {
		t.Fatal(err)
	}
	m, err := tr.Stop()
	if err != nil {
		t.Fatal(err)
	}
	if m.TotalBytesRead != 0 {
		t.Errorf("pre-Start RecordIO should be ignored, got %d bytes", m.TotalBytesRead)
	}
}

func TestTracker_NilTrackerNeverTracks(t *testing.T) {
	var tr *Tracker
	if tr.TrackingIO() {
		t.Error("nil tracker must not report IO tracking")
	}
}

func TestTracker_MemorySampling(t *testing.T) {
	tr := NewTracker(true, false)
	if err := tr.Start(); err != nil {
		t.Fatal(err)
	}

	// Allocate something measurable between samples.
	buf := make([]byte, 1<<20)
	_ = buf

	m, err := tr.Stop()
	if err != nil {
		t.Fatal(err)
	}
	if m.PeakMemoryBytes == 0 {
		t.Error("expected a non-zero heap sample")
	}
}
