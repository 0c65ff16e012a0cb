package renderer

import (
	"time"

	"github.com/achilleasa/whitted/tracer"
)

type WorkerStat struct {
	// The worker id.
	Id string

	// Number of claimed blocks and the percentage of total frame rows they represent.
	Blocks       uint32
	Rows         uint32
	FramePercent float32

	// Emitted rays.
	Rays uint64

	// Time spent tracing.
	RenderTime time.Duration
}

type FrameStats struct {
	// The rendered view and the file it was written to.
	View   string
	Output string

	// Framebuffer description.
	Frame string

	// Individual worker stats.
	Workers []WorkerStat

	// Trace time per frame row.
	RowTimes []time.Duration

	// Total render time for entire frame and time spent encoding the output.
	RenderTime time.Duration
	WriteTime  time.Duration
}

// Total number of rays emitted by all workers.
func (fs *FrameStats) TotalRays() uint64 {
	var total uint64
	for _, ws := range fs.Workers {
		total += ws.Rays
	}
	return total
}

func newFrameStats(view string, fb *FrameBuffer, trStats *tracer.Stats) FrameStats {
	fs := FrameStats{
		View:       view,
		Frame:      fb.String(),
		Workers:    make([]WorkerStat, len(trStats.Workers)),
		RowTimes:   trStats.RowTimes,
		RenderTime: trStats.RenderTime,
	}
	for index, ws := range trStats.Workers {
		fs.Workers[index] = WorkerStat{
			Id:           ws.Id,
			Blocks:       ws.Blocks,
			Rows:         ws.Rows,
			FramePercent: trStats.FramePercent(index),
			Rays:         ws.PrimaryRays + ws.ReflectionRays + ws.ShadowRays,
			RenderTime:   ws.RenderTime,
		}
	}
	return fs
}
