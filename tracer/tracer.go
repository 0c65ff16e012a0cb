package tracer

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/achilleasa/whitted/log"
	"github.com/achilleasa/whitted/scene"
	"github.com/achilleasa/whitted/types"
)

// Tracer defaults.
const (
	DefaultShadowBias     float32 = 1e-2
	DefaultReflectionBias float32 = 1e-2
	DefaultMaxReflections uint32  = 3
	DefaultBlockHeight    uint32  = 4
)

// The camera services required by the tracer.
type Camera interface {
	// World-space eye position.
	Position() types.Vec3

	// Distance to the near clip plane.
	NearClip() float32

	// Map a viewport coordinate (u, v in [0, 1]) and a depth along the
	// view direction to a world-space point.
	ViewportToWorld(u, v, z float32) types.Vec3
}

// The scene services required by the tracer.
type Scene interface {
	NumObjects() int
	Object(index int) scene.Primitive
	NumLights() int
	Light(index int) scene.Light
}

// A pixel grid that receives traced colors. Row 0 is the bottom row of the
// viewport. SetPixel is invoked concurrently for distinct rows.
type Target interface {
	Width() int
	Height() int
	SetPixel(row, col int, color types.Color)
}

// Tracer configuration. Biases are expected to be > 0 and small relative
// to the scene scale.
type Config struct {
	// Color added for each light that a point is occluded from.
	ShadowColor types.Color

	// Color returned by rays that hit nothing.
	BackgroundColor types.Color

	// Offset along the surface normal applied to shadow ray origins.
	ShadowBias float32

	// Offset along the reflected direction applied to reflection ray origins.
	ReflectionBias float32

	// Maximum recursion depth. A value of 0 renders every pixel black.
	MaxReflections uint32

	// Build the specular half-vector from the raw light position instead
	// of the direction to the light.
	LegacyHalfway bool
}

// Get the default tracer configuration.
func DefaultConfig() Config {
	return Config{
		ShadowColor:     types.Black,
		BackgroundColor: types.Black,
		ShadowBias:      DefaultShadowBias,
		ReflectionBias:  DefaultReflectionBias,
		MaxReflections:  DefaultMaxReflections,
	}
}

func (c Config) String() string {
	return fmt.Sprintf(
		"Tracer(shadow-color: %v, background-color: %v, shadow-bias: %g, reflection-bias: %g, max-num-reflections: %d, legacy-halfway: %t)",
		c.ShadowColor, c.BackgroundColor, c.ShadowBias, c.ReflectionBias, c.MaxReflections, c.LegacyHalfway,
	)
}

// An Option customizes a Tracer.
type Option func(*Tracer)

// Set the number of worker goroutines. Values <= 0 select runtime.NumCPU().
func NumWorkers(n int) Option {
	return func(tr *Tracer) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		tr.numWorkers = n
	}
}

// Set the number of rows per scheduled block.
func BlockHeight(h uint32) Option {
	return func(tr *Tracer) {
		if h == 0 {
			h = DefaultBlockHeight
		}
		tr.blockH = h
	}
}

// Set the block scheduler.
func Scheduler(factory SchedulerFactory) Option {
	return func(tr *Tracer) {
		tr.schedulerFactory = factory
	}
}

// Replace the whole tracer configuration.
func WithConfig(cfg Config) Option {
	return func(tr *Tracer) {
		tr.cfg = cfg
	}
}

// A Whitted-style recursive ray tracer. Configuration setters affect the
// frames traced after they return; each Trace call works on a snapshot.
type Tracer struct {
	logger log.Logger

	sync.Mutex

	cfg              Config
	numWorkers       int
	blockH           uint32
	schedulerFactory SchedulerFactory

	// Statistics for last traced frame.
	stats *Stats
}

// Create a new tracer.
func New(opts ...Option) *Tracer {
	tr := &Tracer{
		logger:           log.New("tracer"),
		cfg:              DefaultConfig(),
		numWorkers:       runtime.NumCPU(),
		blockH:           DefaultBlockHeight,
		schedulerFactory: DynamicScheduler(),
		stats:            &Stats{},
	}
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}

func (tr *Tracer) SetShadowColor(color types.Color) {
	tr.Lock()
	tr.cfg.ShadowColor = color
	tr.Unlock()
}

func (tr *Tracer) SetBackgroundColor(color types.Color) {
	tr.Lock()
	tr.cfg.BackgroundColor = color
	tr.Unlock()
}

func (tr *Tracer) SetShadowBias(bias float32) {
	tr.Lock()
	tr.cfg.ShadowBias = bias
	tr.Unlock()
}

func (tr *Tracer) SetReflectionBias(bias float32) {
	tr.Lock()
	tr.cfg.ReflectionBias = bias
	tr.Unlock()
}

func (tr *Tracer) SetMaxReflections(maxReflections uint32) {
	tr.Lock()
	tr.cfg.MaxReflections = maxReflections
	tr.Unlock()
}

func (tr *Tracer) SetLegacyHalfway(legacy bool) {
	tr.Lock()
	tr.cfg.LegacyHalfway = legacy
	tr.Unlock()
}

// Get a copy of the current configuration.
func (tr *Tracer) Config() Config {
	tr.Lock()
	defer tr.Unlock()
	return tr.cfg
}

// Get the number of worker goroutines used for tracing frames.
func (tr *Tracer) NumWorkers() int {
	return tr.numWorkers
}

// Retrieve last frame statistics.
func (tr *Tracer) Stats() *Stats {
	tr.Lock()
	defer tr.Unlock()
	return tr.stats
}

func (tr *Tracer) String() string {
	return tr.Config().String()
}

// Trace a single ray and return its color.
func (tr *Tracer) TraceRay(camera Camera, sc Scene, ray scene.Ray) types.Color {
	fc := newFrameContext(tr.Config(), camera, sc)
	return fc.traceRay(ray, 0, &WorkerStats{})
}

// Trace the primary ray through pixel (row, col) of a frameW x frameH frame
// and return its color. Row 0 is the bottom row.
func (tr *Tracer) TracePixel(camera Camera, sc Scene, frameW, frameH, row, col int) types.Color {
	fc := newFrameContext(tr.Config(), camera, sc)
	invW := 1.0 / float32(frameW)
	invH := 1.0 / float32(frameH)
	u := (float32(col) + 0.5) * invW
	v := (float32(row) + 0.5) * invH
	return fc.traceRay(fc.primaryRay(u, v), 0, &WorkerStats{})
}

// Trace a frame: for each target pixel shoot a ray from the camera eye
// through its projected point on the near clip plane, trace it through
// the scene and store the resulting color. Rows are claimed dynamically by
// a pool of workers so that expensive rows do not stall the frame.
func (tr *Tracer) Trace(camera Camera, sc Scene, target Target) {
	tr.Lock()
	cfg := tr.cfg
	numWorkers := tr.numWorkers
	blockH := tr.blockH
	factory := tr.schedulerFactory
	tr.Unlock()

	frameW, frameH := target.Width(), target.Height()
	stats := &Stats{
		FrameW: uint32(max(frameW, 0)),
		FrameH: uint32(max(frameH, 0)),
	}
	if frameW <= 0 || frameH <= 0 {
		tr.setStats(stats)
		return
	}

	if numWorkers > frameH {
		numWorkers = frameH
	}

	tr.logger.Debugf("tracing %dx%d frame with %d workers; %s", frameW, frameH, numWorkers, cfg)

	fc := newFrameContext(cfg, camera, sc)
	scheduler := factory(uint32(frameH), uint32(numWorkers), blockH)
	stats.Workers = make([]WorkerStats, numWorkers)
	stats.RowTimes = make([]time.Duration, frameH)

	start := time.Now()
	var wg sync.WaitGroup
	for idx := 0; idx < numWorkers; idx++ {
		ws := &stats.Workers[idx]
		ws.Id = fmt.Sprintf("worker-%02d", idx)

		wg.Add(1)
		go func() {
			defer wg.Done()
			fc.runWorker(scheduler, target, ws, stats.RowTimes)
		}()
	}
	wg.Wait()
	stats.RenderTime = time.Since(start)

	tr.setStats(stats)
	tr.logger.Infof("traced %dx%d frame in %d ms (%d rays)", frameW, frameH, stats.RenderTime.Nanoseconds()/1e6, stats.TotalRays())
}

func (tr *Tracer) setStats(stats *Stats) {
	tr.Lock()
	tr.stats = stats
	tr.Unlock()
}

// An immutable snapshot of everything a frame reads while tracing.
type frameContext struct {
	cfg    Config
	camera Camera
	scene  Scene

	eye   types.Vec3
	nearZ float32
}

func newFrameContext(cfg Config, camera Camera, sc Scene) *frameContext {
	return &frameContext{
		cfg:    cfg,
		camera: camera,
		scene:  sc,
		eye:    camera.Position(),
		nearZ:  camera.NearClip(),
	}
}

// Claim blocks from the scheduler until the frame is exhausted.
func (fc *frameContext) runWorker(scheduler BlockScheduler, target Target, ws *WorkerStats, rowTimes []time.Duration) {
	start := time.Now()
	frameW, frameH := target.Width(), target.Height()
	invW := 1.0 / float32(frameW)
	invH := 1.0 / float32(frameH)

	for {
		blockReq, ok := scheduler.Next()
		if !ok {
			break
		}

		for row := blockReq.BlockY; row < blockReq.BlockY+blockReq.BlockH; row++ {
			rowStart := time.Now()
			v := (float32(row) + 0.5) * invH
			for col := 0; col < frameW; col++ {
				primaryRay := fc.primaryRay((float32(col)+0.5)*invW, v)
				ws.PrimaryRays++
				target.SetPixel(int(row), col, fc.traceRay(primaryRay, 0, ws))
			}
			rowTimes[row] = time.Since(rowStart)
		}

		ws.Blocks++
		ws.Rows += blockReq.BlockH
	}

	ws.RenderTime = time.Since(start)
}

// Get the ray from the eye through viewport point (u, v) on the near plane.
func (fc *frameContext) primaryRay(u, v float32) scene.Ray {
	pixelPos := fc.camera.ViewportToWorld(u, v, fc.nearZ)
	return scene.NewRay(fc.eye, types.Direction(fc.eye, pixelPos))
}
