package tracer

import (
	"github.com/achilleasa/whitted/scene"
	"github.com/achilleasa/whitted/types"
)

const colorEpsilon = 1e-4

// A row-major color grid used as a trace target.
type gridTarget struct {
	w, h   int
	pixels []types.Color
}

func newGridTarget(w, h int) *gridTarget {
	return &gridTarget{w: w, h: h, pixels: make([]types.Color, w*h)}
}

func (g *gridTarget) Width() int  { return g.w }
func (g *gridTarget) Height() int { return g.h }

func (g *gridTarget) SetPixel(row, col int, c types.Color) {
	g.pixels[row*g.w+col] = c
}

func (g *gridTarget) Pixel(row, col int) types.Color {
	return g.pixels[row*g.w+col]
}

// A camera at the origin looking down the -Z axis.
func originCamera() *scene.Camera {
	cam := scene.NewCamera(60)
	cam.Look(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	return cam
}

func newMaterial(ambient, diffuse, specular types.Color, shininess, intrinsic, reflectivity float32) *scene.Material {
	return &scene.Material{
		Ambient:      ambient,
		Diffuse:      diffuse,
		Specular:     specular,
		Shininess:    shininess,
		Intrinsic:    intrinsic,
		Reflectivity: reflectivity,
	}
}

// Build a scene from primitives, registering their materials.
func buildScene(prims []scene.Primitive, lights []scene.Light) *scene.Scene {
	sc := scene.NewScene()
	seen := make(map[*scene.Material]bool)
	for _, prim := range prims {
		if mat := prim.Material(); !seen[mat] {
			seen[mat] = true
			if err := sc.AddMaterial(mat); err != nil {
				panic(err)
			}
		}
		if err := sc.AddPrimitive(prim); err != nil {
			panic(err)
		}
	}
	for _, light := range lights {
		sc.AddLight(light)
	}
	return sc
}

func testFrameContext(cfg Config, cam Camera, sc Scene) *frameContext {
	return newFrameContext(cfg, cam, sc)
}
