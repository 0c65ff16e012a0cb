package tracer

import (
	"fmt"
	"sync/atomic"
)

// A unit of work processed by a tracer worker: a run of consecutive rows.
type BlockRequest struct {
	// Block start row and height.
	BlockY uint32
	BlockH uint32
}

// The BlockScheduler interface is implemented by all block scheduling
// algorithms. Implementations must be safe for concurrent use; every frame
// row is handed out exactly once.
type BlockScheduler interface {
	// Claim the next block of rows. Returns false when no rows are left.
	Next() (BlockRequest, bool)
}

// A SchedulerFactory creates a scheduler for a single frame.
type SchedulerFactory func(frameH, numWorkers, blockH uint32) BlockScheduler

// The dynamic scheduler hands out fixed-height blocks to whichever worker
// asks next.
type dynamicScheduler struct {
	nextRow atomic.Uint64
	frameH  uint64
	blockH  uint64
}

// Create a new dynamic scheduler that splits frameH rows in blocks of
// blockH rows.
func NewDynamicScheduler(frameH, blockH uint32) BlockScheduler {
	if blockH == 0 {
		blockH = 1
	}
	return &dynamicScheduler{
		frameH: uint64(frameH),
		blockH: uint64(blockH),
	}
}

func (sch *dynamicScheduler) Next() (BlockRequest, bool) {
	start := sch.nextRow.Add(sch.blockH) - sch.blockH
	if start >= sch.frameH {
		return BlockRequest{}, false
	}

	return BlockRequest{
		BlockY: uint32(start),
		BlockH: uint32(min(sch.blockH, sch.frameH-start)),
	}, true
}

// The guided scheduler starts with large blocks and shrinks them as the
// frame drains: each claim takes remaining/(2*numWorkers) rows but never
// less than minBlockH.
type guidedScheduler struct {
	nextRow    atomic.Uint32
	frameH     uint32
	numWorkers uint32
	minBlockH  uint32
}

// Create a new guided scheduler.
func NewGuidedScheduler(frameH, numWorkers, minBlockH uint32) BlockScheduler {
	if numWorkers == 0 {
		numWorkers = 1
	}
	if minBlockH == 0 {
		minBlockH = 1
	}
	return &guidedScheduler{
		frameH:     frameH,
		numWorkers: numWorkers,
		minBlockH:  minBlockH,
	}
}

func (sch *guidedScheduler) Next() (BlockRequest, bool) {
	for {
		start := sch.nextRow.Load()
		if start >= sch.frameH {
			return BlockRequest{}, false
		}

		remaining := sch.frameH - start
		blockH := max(remaining/(2*sch.numWorkers), sch.minBlockH)
		blockH = min(blockH, remaining)
		if sch.nextRow.CompareAndSwap(start, start+blockH) {
			return BlockRequest{BlockY: start, BlockH: blockH}, true
		}
	}
}

// Get a factory for dynamic schedulers.
func DynamicScheduler() SchedulerFactory {
	return func(frameH, _, blockH uint32) BlockScheduler {
		return NewDynamicScheduler(frameH, blockH)
	}
}

// Get a factory for guided schedulers. The block height acts as the minimum
// block size.
func GuidedScheduler() SchedulerFactory {
	return func(frameH, numWorkers, blockH uint32) BlockScheduler {
		return NewGuidedScheduler(frameH, numWorkers, blockH)
	}
}

// Lookup a scheduler factory by name.
func SchedulerByName(name string) (SchedulerFactory, error) {
	switch name {
	case "", "dynamic":
		return DynamicScheduler(), nil
	case "guided":
		return GuidedScheduler(), nil
	}
	return nil, fmt.Errorf("tracer: unknown scheduler %q", name)
}
