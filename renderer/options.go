package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achilleasa/whitted/asset/writer"
	"github.com/achilleasa/whitted/tracer"
	"github.com/achilleasa/whitted/types"
)

// Default output file name pattern. The %s placeholder is replaced by the
// view (camera) name.
const DefaultOutputPattern = "frame-%s.ppm"

// Tracer settings that override both the defaults and any scene file
// settings. Nil fields are not overridden.
type TracerOverrides struct {
	ShadowColor     *types.Color
	BackgroundColor *types.Color
	ShadowBias      *float32
	ReflectionBias  *float32
	MaxReflections  *uint32
	LegacyHalfway   *bool
}

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of tracing workers; 0 selects the number of CPUs.
	NumWorkers int

	// Rows per scheduled block and the scheduler name (dynamic or guided).
	BlockHeight uint32
	Scheduler   string

	// Exposure for tonemapping.
	Exposure float32

	// Output file name pattern.
	OutputPattern string

	// Names of the views (cameras) to render. If empty all scene cameras
	// are rendered.
	Views []string

	Overrides TracerOverrides
}

// Get the default render options.
func DefaultOptions() Options {
	return Options{
		FrameW:        640,
		FrameH:        480,
		BlockHeight:   tracer.DefaultBlockHeight,
		Scheduler:     "dynamic",
		Exposure:      1.0,
		OutputPattern: DefaultOutputPattern,
	}
}

// Check the options for errors.
func (opts *Options) Validate() error {
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return ErrInvalidFrameDims
	}
	if opts.Exposure <= 0 {
		return ErrInvalidExposure
	}
	if b := opts.Overrides.ShadowBias; b != nil && *b <= 0 {
		return ErrInvalidBias
	}
	if b := opts.Overrides.ReflectionBias; b != nil && *b <= 0 {
		return ErrInvalidBias
	}
	if _, err := tracer.SchedulerByName(opts.Scheduler); err != nil {
		return err
	}
	if opts.OutputPattern != "" {
		if _, err := writer.EncoderFor(filepath.Ext(opts.OutputPattern)); err != nil {
			return fmt.Errorf("%w: %s", ErrUnsupportedOutput, err.Error())
		}
	}
	return nil
}

// Get the output file for a view. An empty pattern disables output.
func (opts *Options) OutputFile(view string, numViews int) (string, error) {
	switch {
	case opts.OutputPattern == "":
		return "", nil
	case strings.Contains(opts.OutputPattern, "%s"):
		return strings.Replace(opts.OutputPattern, "%s", view, 1), nil
	case numViews > 1:
		return "", ErrAmbiguousOutput
	}
	return opts.OutputPattern, nil
}
