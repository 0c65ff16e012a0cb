package main

import (
	"os"
	"runtime"

	"github.com/achilleasa/whitted/cmd"
	"github.com/achilleasa/whitted/log"
	"github.com/achilleasa/whitted/renderer"
	"github.com/achilleasa/whitted/tracer"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "whitted"
	app.Usage = "render scenes using whitted-style ray tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set log level (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render scene",
			Description: `
Render one image per scene view (camera). The scene is either loaded from the
scene file argument (.scene/.obj text format or .json) or selected from the
built-in scenes.

Tracer settings defined by the scene file are overridden by any explicitly
set tracer flags.`,
			ArgsUsage: "[scene_file]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "builtin",
					Value: "simple",
					Usage: "built-in scene to render when no scene file is specified",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 640,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 480,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: runtime.NumCPU(),
					Usage: "number of tracing workers",
				},
				cli.IntFlag{
					Name:  "block-height",
					Value: int(tracer.DefaultBlockHeight),
					Usage: "number of rows claimed by a worker at a time",
				},
				cli.StringFlag{
					Name:  "scheduler",
					Value: "dynamic",
					Usage: "row block scheduler (dynamic, guided)",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Value: 1.0,
					Usage: "camera exposure for tone-mapping",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: renderer.DefaultOutputPattern,
					Usage: "image filename pattern; %s is replaced by the view name and the extension selects the format",
				},
				cli.StringSliceFlag{
					Name:  "view",
					Value: &cli.StringSlice{},
					Usage: "render only this view; may be specified multiple times",
				},
				cli.StringFlag{
					Name:  "background",
					Usage: "background color as r,g,b",
				},
				cli.StringFlag{
					Name:  "shadow-color",
					Usage: "shadow color as r,g,b",
				},
				cli.Float64Flag{
					Name:  "shadow-bias",
					Value: float64(tracer.DefaultShadowBias),
					Usage: "shadow ray origin offset",
				},
				cli.Float64Flag{
					Name:  "reflection-bias",
					Value: float64(tracer.DefaultReflectionBias),
					Usage: "reflection ray origin offset",
				},
				cli.IntFlag{
					Name:  "max-reflections",
					Value: int(tracer.DefaultMaxReflections),
					Usage: "max recursion depth",
				},
				cli.BoolFlag{
					Name:  "legacy-halfway",
					Usage: "compute the specular half-vector from the raw light position",
				},
				cli.StringFlag{
					Name:  "probe",
					Usage: "trace a single pixel (row,col) of the first selected view and print its color",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:      "scene-info",
			Usage:     "display scene statistics",
			ArgsUsage: "[scene_file]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "builtin",
					Value: "simple",
					Usage: "built-in scene to inspect when no scene file is specified",
				},
			},
			Action: cmd.ShowSceneInfo,
		},
		{
			Name:   "list-scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "convert",
			Usage: "convert text scene files to json",
			Description: `
Parse scene definitions in the text scene format (including any call/mtllib
references) and write each one as a self-contained json scene next to the
source file.`,
			ArgsUsage: "scene_file1.scene scene_file2.scene ...",
			Action:    cmd.ConvertScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New("whitted").Error(err.Error())
		os.Exit(1)
	}
}
