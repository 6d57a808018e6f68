package perf

import (
	"errors"
	"runtime"
	"time"
)

// Metrics is the immutable result of one tracked run.
type Metrics struct {
	// PeakMemoryBytes is the highest observed heap allocation.
	PeakMemoryBytes uint64 `json:"peak_memory_bytes"`

	// TotalBytesRead is the application-level bytes read from disk.
	TotalBytesRead int64 `json:"total_bytes_read"`

	// TotalIOTime is the cumulative wall-clock time spent in reads.
	TotalIOTime time.Duration `json:"total_io_time"`

	// FilesRead is the number of recorded read operations.
	FilesRead int `json:"files_read"`

	// WallTime is the total duration between Start and Stop.
	WallTime time.Duration `json:"wall_time"`
}

// Tracker collects memory and I/O statistics during a scan. It is owned by
// a single run and is not safe for concurrent use. Start and Stop must be
// paired; both fail loudly on misuse.
type Tracker struct {
	trackMemory bool
	trackIO     bool

	started   bool
	startedAt time.Time
	peakHeap  uint64
	bytesRead int64
	ioTime    time.Duration
	filesRead int
}

// NewTracker returns an inactive tracker. Memory sampling reads
// runtime.MemStats, which has a small cost per sample; I/O accounting only
// sums values reported via RecordIO.
func NewTracker(trackMemory, trackIO bool) *Tracker {
	return &Tracker{trackMemory: trackMemory, trackIO: trackIO}
}

// Start begins a tracked run. Starting an already running tracker is an error.
func (t *Tracker) Start() error {
	if t.started {
		return errors.New("perf: tracker is already running")
	}
	t.started = true
	t.startedAt = time.Now()
	t.peakHeap = 0
	t.bytesRead = 0
	t.ioTime = 0
	t.filesRead = 0
	t.sampleMemory()
	return nil
}

// Stop ends the run and returns the collected metrics. Stopping a tracker
// that was never started is an error.
func (t *Tracker) Stop() (Metrics, error) {
	if !t.started {
		return Metrics{}, errors.New("perf: tracker has not been started")
	}
	t.sampleMemory()
	t.started = false
	return Metrics{
		PeakMemoryBytes: t.peakHeap,
		TotalBytesRead:  t.bytesRead,
		TotalIOTime:     t.ioTime,
		FilesRead:       t.filesRead,
		WallTime:        time.Since(t.startedAt),
	}, nil
}

// Active reports whether the tracker is between Start and Stop.
func (t *Tracker) Active() bool {
	return t.started
}

// TrackingIO reports whether RecordIO calls are currently being accumulated.
// A nil tracker never tracks, so callers can hold a nil *Tracker safely.
func (t *Tracker) TrackingIO() bool {
	return t != nil && t.started && t.trackIO
}

// RecordIO adds one read operation to the running totals. Calls while the
// tracker is inactive are ignored.
func (t *Tracker) RecordIO(bytes int64, elapsed time.Duration) {
	if !t.TrackingIO() {
		return
	}
	t.bytesRead += bytes
	t.ioTime += elapsed
	t.filesRead++
	t.sampleMemory()
}

func (t *Tracker) sampleMemory() {
	if !t.trackMemory {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.HeapAlloc > t.peakHeap {
		t.peakHeap = ms.HeapAlloc
	}
}
