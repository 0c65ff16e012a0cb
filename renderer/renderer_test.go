package renderer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/achilleasa/whitted/scene"
	"github.com/achilleasa/whitted/tracer"
	"github.com/achilleasa/whitted/types"
)

func testOptions(t *testing.T) Options {
	opts := DefaultOptions()
	opts.FrameW, opts.FrameH = 16, 12
	opts.NumWorkers = 3
	opts.OutputPattern = filepath.Join(t.TempDir(), "frame-%s.png")
	return opts
}

func TestOptionsValidate(t *testing.T) {
	negative := float32(-1)

	type spec struct {
		mutate func(*Options)
		expErr error
	}
	specs := []spec{
		{func(o *Options) {}, nil},
		{func(o *Options) { o.FrameW = 0 }, ErrInvalidFrameDims},
		{func(o *Options) { o.FrameH = 0 }, ErrInvalidFrameDims},
		{func(o *Options) { o.Exposure = 0 }, ErrInvalidExposure},
		{func(o *Options) { o.Overrides.ShadowBias = &negative }, ErrInvalidBias},
		{func(o *Options) { o.Overrides.ReflectionBias = &negative }, ErrInvalidBias},
		{func(o *Options) { o.OutputPattern = "frame.gif" }, ErrUnsupportedOutput},
		{func(o *Options) { o.OutputPattern = "" }, nil},
	}

	for index, s := range specs {
		opts := DefaultOptions()
		s.mutate(&opts)
		err := opts.Validate()
		if s.expErr == nil && err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if s.expErr != nil && !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
	}

	opts := DefaultOptions()
	opts.Scheduler = "static"
	if err := opts.Validate(); err == nil {
		t.Fatal("expected an error for an unknown scheduler")
	}
}

func TestOutputFile(t *testing.T) {
	type spec struct {
		pattern  string
		numViews int
		exp      string
		expErr   error
	}
	specs := []spec{
		{"frame-%s.ppm", 1, "frame-front.ppm", nil},
		{"frame-%s.ppm", 4, "frame-front.ppm", nil},
		{"out.png", 1, "out.png", nil},
		{"out.png", 2, "", ErrAmbiguousOutput},
		{"", 3, "", nil},
	}

	for index, s := range specs {
		opts := Options{OutputPattern: s.pattern}
		got, err := opts.OutputFile("front", s.numViews)
		if !errors.Is(err, s.expErr) || got != s.exp {
			t.Fatalf("[spec %d] expected (%q, %v); got (%q, %v)", index, s.exp, s.expErr, got, err)
		}
	}
}

func TestTracerConfigPrecedence(t *testing.T) {
	sceneBg := types.RGB(0.1, 0.1, 0.1)
	sceneBias := float32(0.5)
	sceneMax := uint32(7)
	flagBg := types.RGB(0.9, 0.9, 0.9)
	flagMax := uint32(1)
	legacy := true

	cfg := tracerConfig(
		scene.Settings{BackgroundColor: &sceneBg, ShadowBias: &sceneBias, MaxReflections: &sceneMax},
		TracerOverrides{BackgroundColor: &flagBg, MaxReflections: &flagMax, LegacyHalfway: &legacy},
	)

	exp := tracer.DefaultConfig()
	exp.BackgroundColor = flagBg
	exp.ShadowBias = sceneBias
	exp.MaxReflections = flagMax
	exp.LegacyHalfway = true
	if cfg != exp {
		t.Fatalf("expected config:\n%s\ngot:\n%s", exp, cfg)
	}

	if cfg = tracerConfig(scene.Settings{}, TracerOverrides{}); cfg != tracer.DefaultConfig() {
		t.Fatalf("expected default config; got %s", cfg)
	}
}

func TestNewDefaultErrors(t *testing.T) {
	sc, _ := scene.Builtin("simple")
	zero := float32(0)
	badScene, _ := scene.Builtin("mirror")
	badScene.Settings.ReflectionBias = &zero

	type spec struct {
		sc     *scene.Scene
		mutate func(*Options)
		expErr error
	}
	specs := []spec{
		{nil, func(o *Options) {}, ErrSceneNotDefined},
		{scene.NewScene(), func(o *Options) {}, ErrNoCamera},
		{sc, func(o *Options) { o.Views = []string{"side"} }, ErrUnknownView},
		{sc, func(o *Options) { o.OutputPattern = "frame.ppm" }, ErrAmbiguousOutput},
		{sc, func(o *Options) { o.FrameW = 0 }, ErrInvalidFrameDims},
		{badScene, func(o *Options) {}, ErrInvalidBias},
	}

	for index, s := range specs {
		opts := testOptions(t)
		s.mutate(&opts)
		if _, err := NewDefault(s.sc, opts); !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
	}
}

func TestRenderAllViews(t *testing.T) {
	sc, err := scene.Builtin("simple")
	if err != nil {
		t.Fatal(err)
	}

	opts := testOptions(t)
	r, err := NewDefault(sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err = r.Render(); err != nil {
		t.Fatal(err)
	}

	stats := r.Stats()
	if len(stats) != len(sc.Cameras) {
		t.Fatalf("expected stats for %d views; got %d", len(sc.Cameras), len(stats))
	}
	for index, fs := range stats {
		if fs.View != sc.Cameras[index].Name {
			t.Fatalf("expected view %q; got %q", sc.Cameras[index].Name, fs.View)
		}
		if fs.Frame != "16x12 (0.00 MP)" {
			t.Fatalf("unexpected frame description %q", fs.Frame)
		}
		if _, err := os.Stat(fs.Output); err != nil {
			t.Fatalf("expected output for view %q: %v", fs.View, err)
		}
		var rows uint32
		for _, ws := range fs.Workers {
			rows += ws.Rows
		}
		if rows != 12 || len(fs.RowTimes) != 12 {
			t.Fatalf("expected 12 traced rows; got %d", rows)
		}
		if fs.TotalRays() < 16*12 {
			t.Fatalf("expected at least one ray per pixel; got %d", fs.TotalRays())
		}
	}
}

func TestRenderSelectedViewAndProbe(t *testing.T) {
	sc, _ := scene.Builtin("simple")
	opts := testOptions(t)
	opts.Views = []string{"top"}
	opts.OutputPattern = filepath.Join(t.TempDir(), "top.ppm")

	r, err := NewDefault(sc, opts)
	if err != nil {
		t.Fatal(err)
	}

	if err = r.Render(); err != nil {
		t.Fatal(err)
	}
	if stats := r.Stats(); len(stats) != 1 || stats[0].Output != opts.OutputPattern {
		t.Fatalf("expected a single output at %s; got %+v", opts.OutputPattern, stats)
	}

	// Looking straight at the sphere: the center pixel hits it and is not the sky
	c, err := r.Probe("top", 6, 8)
	if err != nil {
		t.Fatal(err)
	}
	if c == *sc.Settings.BackgroundColor {
		t.Fatalf("expected center probe to hit the sphere; got background %v", c)
	}

	if _, err = r.Probe("top", 12, 0); !errors.Is(err, ErrProbeOutsideFrame) {
		t.Fatalf("expected probe outside frame error; got %v", err)
	}
	if _, err = r.Probe("side", 0, 0); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected unknown view error; got %v", err)
	}

	r.Close()
	if err = r.Render(); !errors.Is(err, ErrRendererClosed) {
		t.Fatalf("expected closed renderer error; got %v", err)
	}
}
