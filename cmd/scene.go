package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achilleasa/whitted/asset/scene/reader"
	"github.com/achilleasa/whitted/asset/scene/writer"
	"github.com/achilleasa/whitted/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Convert text scene files to the JSON scene format.
func ConvertScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() == 0 {
		return errors.New("missing scene file arguments")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		ext := strings.ToLower(filepath.Ext(sceneFile))
		if ext != ".scene" && ext != ".obj" {
			logger.Warningf("skipping unsupported file %s", sceneFile)
			continue
		}

		logger.Noticef("parsing scene: %s", sceneFile)
		sc, err := reader.ReadScene(sceneFile)
		if err != nil {
			return err
		}

		jsonFile := strings.TrimSuffix(sceneFile, filepath.Ext(sceneFile)) + ".json"
		if err = writer.WriteScene(sc, jsonFile); err != nil {
			return err
		}
		logger.Noticef("wrote %s", jsonFile)
	}

	return nil
}

// Display scene info for a scene file or a built-in scene.
func ShowSceneInfo(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", formatSceneInfo(sc))
	return nil
}

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", "Objects", "Lights", "Views"})
	for _, name := range scene.BuiltinNames() {
		sc, err := scene.Builtin(name)
		if err != nil {
			return err
		}
		table.Append([]string{
			name,
			fmt.Sprintf("%d", len(sc.Primitives)),
			fmt.Sprintf("%d", len(sc.Lights)),
			cameraNames(sc),
		})
	}
	table.Render()

	logger.Noticef("built-in scenes:\n%s", buf.String())
	return nil
}

func formatSceneInfo(sc *scene.Scene) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Asset type", "Count"})

	counts := sc.PrimitiveCounts()
	for _, pt := range []scene.PrimitiveType{scene.PlanePrimitive, scene.SpherePrimitive, scene.BoxPrimitive, scene.TrianglePrimitive} {
		table.Append([]string{pt.String() + "s", fmt.Sprintf("%d", counts[pt])})
	}
	table.Append([]string{"lights", fmt.Sprintf("%d", len(sc.Lights))})
	table.Append([]string{"materials", fmt.Sprintf("%d", len(sc.Materials))})
	table.Append([]string{"cameras", cameraNames(sc)})
	table.SetFooter([]string{"objects", fmt.Sprintf("%d", len(sc.Primitives))})
	table.Render()

	return buf.String()
}

func cameraNames(sc *scene.Scene) string {
	names := make([]string, len(sc.Cameras))
	for index, cam := range sc.Cameras {
		names[index] = cam.Name
	}
	return strings.Join(names, ", ")
}
