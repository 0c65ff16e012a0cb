package scene

import (
	"fmt"
	"sort"

	"github.com/achilleasa/whitted/types"
)

// A named palette used by the built-in scenes.
var (
	paletteGray       = types.RGB(0.50, 0.50, 0.50)
	paletteGreen      = types.RGB(0.00, 0.50, 0.00)
	paletteLightGreen = types.RGB(0.56, 0.93, 0.56)
	paletteSkyBlue    = types.RGB(0.53, 0.81, 0.92)
	paletteBrick      = types.RGB(0.80, 0.30, 0.20)
)

var builtinScenes = map[string]func() *Scene{
	"simple":  simpleScene,
	"mirror":  mirrorScene,
	"shadows": shadowScene,
}

// Get the names of the built-in scenes.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create a built-in scene by name.
func Builtin(name string) (*Scene, error) {
	ctor, exists := builtinScenes[name]
	if !exists {
		return nil, fmt.Errorf("scene: unknown built-in scene %q", name)
	}
	return ctor(), nil
}

func newLookAtCamera(name string, eye, target types.Vec3, fov, near float32) *Camera {
	cam := NewCamera(fov)
	cam.Name = name
	cam.Near = near
	cam.Look(eye, target)
	return cam
}

func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}

// A matte green sphere lit by a single white light and viewed from four sides.
func simpleScene() *Scene {
	sc := NewScene()
	sc.Name = "simple"
	bg := paletteSkyBlue
	sc.Settings.BackgroundColor = &bg

	brightWhite := &Material{Name: "brightWhite", Intrinsic: 1, Shininess: 32}
	brightWhite.SetColors(paletteGray, types.White, types.White)

	matteGreen := &Material{Name: "matteGreen", Shininess: 32}
	matteGreen.SetWeights(1.0, 0.0)
	matteGreen.SetColors(paletteLightGreen, paletteGreen, paletteGreen)

	mustAdd(sc.AddMaterial(matteGreen))
	sphere := NewSphere(types.XYZ(0, 50, 0), 25, matteGreen)
	mustAdd(sc.AddPrimitive(sphere))
	sc.AddLight(NewPointLightFromMaterial(types.XYZ(0, 100, 25), brightWhite))

	target := sphere.Centroid()
	mustAdd(sc.AddCamera(newLookAtCamera("front", types.XYZ(0, 50, 50), target, 110, 5)))
	mustAdd(sc.AddCamera(newLookAtCamera("behind", types.XYZ(0, 50, -50), target, 110, 5)))
	mustAdd(sc.AddCamera(newLookAtCamera("top", types.XYZ(0, 100, 0), target, 110, 5)))
	mustAdd(sc.AddCamera(newLookAtCamera("bottom", types.XYZ(0, -50, 0), target, 110, 5)))
	return sc
}

// A perfect mirror sphere resting on a colored plane.
func mirrorScene() *Scene {
	sc := NewScene()
	sc.Name = "mirror"

	floor := &Material{Name: "brick", Intrinsic: 1, Shininess: 8}
	floor.SetColors(paletteBrick.Scale(0.2), paletteBrick, types.Black)

	chrome := &Material{Name: "chrome", Shininess: 64}
	chrome.SetWeights(0.0, 1.0)
	chrome.SetColors(types.Black, types.Black, types.White)

	mustAdd(sc.AddMaterial(floor))
	mustAdd(sc.AddMaterial(chrome))
	mustAdd(sc.AddPrimitive(NewPlane(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0), floor)))
	mustAdd(sc.AddPrimitive(NewSphere(types.XYZ(0, 1, 0), 1, chrome)))
	sc.AddLight(NewPointLight(types.XYZ(5, 10, 5)))

	mustAdd(sc.AddCamera(newLookAtCamera("main", types.XYZ(0, 2, 6), types.XYZ(0, 1, 0), 60, 1)))
	return sc
}

// Two spheres and a box casting shadows on a plane.
func shadowScene() *Scene {
	sc := NewScene()
	sc.Name = "shadows"
	bg := types.RGB(0.05, 0.05, 0.08)
	sc.Settings.BackgroundColor = &bg
	shadow := types.RGB(0.02, 0.02, 0.02)
	sc.Settings.ShadowColor = &shadow

	ground := &Material{Name: "ground", Intrinsic: 0.8, Reflectivity: 0.2, Shininess: 16}
	ground.SetColors(paletteGray.Scale(0.2), paletteGray, paletteGray)

	green := &Material{Name: "green", Intrinsic: 1, Shininess: 32}
	green.SetColors(paletteGreen.Scale(0.3), paletteLightGreen, types.White)

	brick := &Material{Name: "brick", Intrinsic: 0.7, Reflectivity: 0.3, Shininess: 64}
	brick.SetColors(paletteBrick.Scale(0.2), paletteBrick, types.White)

	for _, mat := range []*Material{ground, green, brick} {
		mustAdd(sc.AddMaterial(mat))
	}
	mustAdd(sc.AddPrimitive(NewPlane(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0), ground)))
	mustAdd(sc.AddPrimitive(NewSphere(types.XYZ(-1.5, 1, 0), 1, green)))
	mustAdd(sc.AddPrimitive(NewSphere(types.XYZ(1.5, 0.75, 1), 0.75, brick)))
	mustAdd(sc.AddPrimitive(NewBox(types.XYZ(-0.5, 0, -2.5), types.XYZ(0.5, 1.5, -1.5), brick)))

	light := NewPointLight(types.XYZ(-4, 8, 6))
	light.SetAttenuation(1, 0.01, 0.001)
	sc.AddLight(light)
	sc.AddLight(NewPointLight(types.XYZ(6, 6, 2)))

	mustAdd(sc.AddCamera(newLookAtCamera("main", types.XYZ(0, 3, 8), types.XYZ(0, 0.75, 0), 55, 1)))
	return sc
}
