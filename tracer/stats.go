package tracer

import "time"

// Per-worker statistics for a traced frame.
type WorkerStats struct {
	// The worker id.
	Id string

	// Number of claimed blocks and traced rows.
	Blocks uint32
	Rows   uint32

	// Emitted rays by kind.
	PrimaryRays    uint64
	ReflectionRays uint64
	ShadowRays     uint64

	// Time spent by the worker.
	RenderTime time.Duration
}

// Tracer statistics for the last traced frame.
type Stats struct {
	// Frame dimensions.
	FrameW uint32
	FrameH uint32

	// Individual worker stats.
	Workers []WorkerStats

	// Time spent on each frame row, indexed by row.
	RowTimes []time.Duration

	// Total render time for entire frame.
	RenderTime time.Duration
}

// Get the total number of rays emitted while tracing the frame.
func (s *Stats) TotalRays() uint64 {
	var total uint64
	for _, ws := range s.Workers {
		total += ws.PrimaryRays + ws.ReflectionRays + ws.ShadowRays
	}
	return total
}

// Get the percentage of frame rows traced by a worker.
func (s *Stats) FramePercent(worker int) float32 {
	if s.FrameH == 0 {
		return 0
	}
	return 100 * float32(s.Workers[worker].Rows) / float32(s.FrameH)
}
