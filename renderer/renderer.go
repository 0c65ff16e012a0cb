package renderer

import (
	"fmt"
	"time"

	"github.com/achilleasa/whitted/asset/writer"
	"github.com/achilleasa/whitted/log"
	"github.com/achilleasa/whitted/scene"
	"github.com/achilleasa/whitted/tracer"
	"github.com/achilleasa/whitted/types"
)

type Renderer interface {
	// Render every view and write the frames to their output files.
	Render() error

	// Trace the pixel at (row, col) of a view. Row 0 is the bottom row.
	Probe(view string, row, col uint32) (types.Color, error)

	// Release renderer resources.
	Close()

	// Get render statistics for the views rendered by the last Render call.
	Stats() []FrameStats
}

// The default renderer traces each view of a scene into a framebuffer and
// encodes the result with the image writer matching the output pattern.
type defaultRenderer struct {
	logger log.Logger

	sc          *scene.Scene
	views       []*scene.Camera
	tracer      *tracer.Tracer
	options     Options
	frameBuffer *FrameBuffer

	stats []FrameStats
}

// Create a new default renderer for the given scene.
func NewDefault(sc *scene.Scene, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	views, err := selectViews(sc, opts.Views)
	if err != nil {
		return nil, err
	}
	if _, err = opts.OutputFile("", len(views)); err != nil {
		return nil, err
	}

	cfg := tracerConfig(sc.Settings, opts.Overrides)
	if cfg.ShadowBias <= 0 || cfg.ReflectionBias <= 0 {
		return nil, ErrInvalidBias
	}

	factory, err := tracer.SchedulerByName(opts.Scheduler)
	if err != nil {
		return nil, err
	}

	r := &defaultRenderer{
		logger:  log.New("renderer"),
		sc:      sc,
		views:   views,
		options: opts,
		tracer: tracer.New(
			tracer.WithConfig(cfg),
			tracer.NumWorkers(opts.NumWorkers),
			tracer.BlockHeight(opts.BlockHeight),
			tracer.Scheduler(factory),
		),
		frameBuffer: NewFrameBuffer(int(opts.FrameW), int(opts.FrameH), cfg.BackgroundColor),
	}
	r.logger.Debugf("%s", r.tracer)

	return r, nil
}

// Resolve view names to scene cameras.
func selectViews(sc *scene.Scene, names []string) ([]*scene.Camera, error) {
	if len(names) == 0 {
		if len(sc.Cameras) == 0 {
			return nil, ErrNoCamera
		}
		return sc.Cameras, nil
	}

	views := make([]*scene.Camera, 0, len(names))
	for _, name := range names {
		cam := sc.Camera(name)
		if cam == nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownView, name)
		}
		views = append(views, cam)
	}
	return views, nil
}

// Build the tracer configuration: defaults, then scene settings, then
// explicit overrides.
func tracerConfig(settings scene.Settings, overrides TracerOverrides) tracer.Config {
	cfg := tracer.DefaultConfig()

	for _, layer := range []TracerOverrides{
		{
			ShadowColor:     settings.ShadowColor,
			BackgroundColor: settings.BackgroundColor,
			ShadowBias:      settings.ShadowBias,
			ReflectionBias:  settings.ReflectionBias,
			MaxReflections:  settings.MaxReflections,
		},
		overrides,
	} {
		if layer.ShadowColor != nil {
			cfg.ShadowColor = *layer.ShadowColor
		}
		if layer.BackgroundColor != nil {
			cfg.BackgroundColor = *layer.BackgroundColor
		}
		if layer.ShadowBias != nil {
			cfg.ShadowBias = *layer.ShadowBias
		}
		if layer.ReflectionBias != nil {
			cfg.ReflectionBias = *layer.ReflectionBias
		}
		if layer.MaxReflections != nil {
			cfg.MaxReflections = *layer.MaxReflections
		}
		if layer.LegacyHalfway != nil {
			cfg.LegacyHalfway = *layer.LegacyHalfway
		}
	}
	return cfg
}

func (r *defaultRenderer) Render() error {
	if r.frameBuffer == nil {
		return ErrRendererClosed
	}
	r.stats = make([]FrameStats, 0, len(r.views))
	aspect := float32(r.options.FrameW) / float32(r.options.FrameH)

	for _, cam := range r.views {
		cam.SetupProjection(aspect)
		r.frameBuffer.Clear()

		r.logger.Noticef("rendering view %q into %s framebuffer", cam.Name, r.frameBuffer)
		r.tracer.Trace(cam, r.sc, r.frameBuffer)
		stats := newFrameStats(cam.Name, r.frameBuffer, r.tracer.Stats())

		outFile, err := r.options.OutputFile(cam.Name, len(r.views))
		if err != nil {
			return err
		}
		if outFile != "" {
			start := time.Now()
			if err = writer.WriteImage(outFile, r.frameBuffer.Image(r.options.Exposure)); err != nil {
				return err
			}
			stats.Output = outFile
			stats.WriteTime = time.Since(start)
			r.logger.Noticef("wrote view %q to %s in %d ms", cam.Name, outFile, stats.WriteTime.Nanoseconds()/1e6)
		}

		r.stats = append(r.stats, stats)
	}

	return nil
}

func (r *defaultRenderer) Probe(view string, row, col uint32) (types.Color, error) {
	views, err := selectViews(r.sc, []string{view})
	if err != nil {
		return types.Black, err
	}
	if row >= r.options.FrameH || col >= r.options.FrameW {
		return types.Black, ErrProbeOutsideFrame
	}

	cam := views[0]
	cam.SetupProjection(float32(r.options.FrameW) / float32(r.options.FrameH))
	return r.tracer.TracePixel(cam, r.sc, int(r.options.FrameW), int(r.options.FrameH), int(row), int(col)), nil
}

func (r *defaultRenderer) Close() {
	r.frameBuffer = nil
}

func (r *defaultRenderer) Stats() []FrameStats {
	return r.stats
}
