package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/achilleasa/whitted/asset/scene/reader"
	"github.com/achilleasa/whitted/renderer"
	"github.com/achilleasa/whitted/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"gonum.org/v1/gonum/stat"
)

// Render every selected view of a scene.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	opts, err := renderOptions(ctx)
	if err != nil {
		return err
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}
	logger.Infof("loaded %s", sc)

	var probeRow, probeCol uint32
	probe := ctx.String("probe")
	if probe != "" {
		if probeRow, probeCol, err = parseProbe(probe); err != nil {
			return err
		}
		// Probing does not produce any output files
		opts.OutputPattern = ""
	}

	r, err := renderer.NewDefault(sc, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	if probe != "" {
		view := sc.Cameras[0].Name
		if len(opts.Views) != 0 {
			view = opts.Views[0]
		}
		color, err := r.Probe(view, probeRow, probeCol)
		if err != nil {
			return err
		}
		logger.Noticef("view %q, pixel (row: %d, col: %d): %v", view, probeRow, probeCol, color)
		return nil
	}

	if err = r.Render(); err != nil {
		return err
	}

	for _, stats := range r.Stats() {
		displayFrameStats(stats)
	}

	return nil
}

// Load the scene file argument or fall back to a built-in scene.
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	switch ctx.NArg() {
	case 0:
		return scene.Builtin(ctx.String("builtin"))
	case 1:
		if ctx.IsSet("builtin") {
			return nil, errors.New("a scene file and a built-in scene cannot be specified at the same time")
		}
		return reader.ReadScene(ctx.Args().First())
	}
	return nil, errors.New("expected at most one scene file argument")
}

// Map command flags to renderer options. Tracer settings are only
// overridden for flags that were explicitly set.
func renderOptions(ctx *cli.Context) (renderer.Options, error) {
	opts := renderer.DefaultOptions()
	opts.FrameW = uint32(ctx.Int("width"))
	opts.FrameH = uint32(ctx.Int("height"))
	opts.NumWorkers = ctx.Int("workers")
	opts.BlockHeight = uint32(ctx.Int("block-height"))
	opts.Scheduler = ctx.String("scheduler")
	opts.Exposure = float32(ctx.Float64("exposure"))
	opts.OutputPattern = ctx.String("out")
	opts.Views = ctx.StringSlice("view")

	if ctx.Int("width") <= 0 || ctx.Int("height") <= 0 {
		return opts, renderer.ErrInvalidFrameDims
	}

	for _, name := range []string{"shadow-color", "background"} {
		if !ctx.IsSet(name) {
			continue
		}
		color, err := parseColor(ctx.String(name))
		if err != nil {
			return opts, fmt.Errorf("invalid value for --%s: %s", name, err.Error())
		}
		if name == "background" {
			opts.Overrides.BackgroundColor = &color
		} else {
			opts.Overrides.ShadowColor = &color
		}
	}

	if ctx.IsSet("shadow-bias") {
		bias := float32(ctx.Float64("shadow-bias"))
		opts.Overrides.ShadowBias = &bias
	}
	if ctx.IsSet("reflection-bias") {
		bias := float32(ctx.Float64("reflection-bias"))
		opts.Overrides.ReflectionBias = &bias
	}
	if ctx.IsSet("max-reflections") {
		if ctx.Int("max-reflections") < 0 {
			return opts, errors.New("invalid value for --max-reflections: must be >= 0")
		}
		maxReflections := uint32(ctx.Int("max-reflections"))
		opts.Overrides.MaxReflections = &maxReflections
	}
	if ctx.IsSet("legacy-halfway") {
		legacy := ctx.Bool("legacy-halfway")
		opts.Overrides.LegacyHalfway = &legacy
	}

	return opts, opts.Validate()
}

func displayFrameStats(stats renderer.FrameStats) {
	logger.Noticef("frame statistics for view %q\n%s", stats.View, formatFrameStats(stats))
}

func formatFrameStats(stats renderer.FrameStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Blocks", "Rows", "% of frame", "Rays", "Render time"})
	for _, ws := range stats.Workers {
		table.Append([]string{
			ws.Id,
			fmt.Sprintf("%d", ws.Blocks),
			fmt.Sprintf("%d", ws.Rows),
			fmt.Sprintf("%02.1f %%", ws.FramePercent),
			fmt.Sprintf("%d", ws.Rays),
			fmt.Sprintf("%s", ws.RenderTime),
		})
	}

	mean, stdDev := rowTimeStats(stats.RowTimes)
	table.SetFooter([]string{
		"",
		"",
		fmt.Sprintf("%.3f ± %.3f ms/row", mean, stdDev),
		"TOTAL",
		fmt.Sprintf("%d", stats.TotalRays()),
		fmt.Sprintf("%s", stats.RenderTime),
	})

	table.Render()

	if stats.Output != "" {
		fmt.Fprintf(&buf, "output: %s (written in %s)\n", stats.Output, stats.WriteTime)
	}
	return buf.String()
}

// Get the mean and standard deviation of per-row trace times in ms.
func rowTimeStats(rowTimes []time.Duration) (mean, stdDev float64) {
	if len(rowTimes) == 0 {
		return 0, 0
	}

	samples := make([]float64, len(rowTimes))
	for index, d := range rowTimes {
		samples[index] = float64(d) / float64(time.Millisecond)
	}
	if len(samples) == 1 {
		return samples[0], 0
	}
	return stat.MeanStdDev(samples, nil)
}
