package scene

import (
	"fmt"

	"github.com/achilleasa/whitted/types"
)

// Optional tracer settings carried by a scene file. Nil fields are left to
// the tracer defaults.
type Settings struct {
	ShadowColor     *types.Color
	BackgroundColor *types.Color
	ShadowBias      *float32
	ReflectionBias  *float32
	MaxReflections  *uint32
}

type Scene struct {
	Name string

	Cameras    []*Camera
	Materials  []*Material
	Primitives []Primitive
	Lights     []Light

	Settings Settings
}

func NewScene() *Scene {
	return &Scene{
		Cameras:    make([]*Camera, 0),
		Materials:  make([]*Material, 0),
		Primitives: make([]Primitive, 0),
		Lights:     make([]Light, 0),
	}
}

// Get the number of scene primitives.
func (s *Scene) NumObjects() int {
	return len(s.Primitives)
}

// Get primitive by index.
func (s *Scene) Object(index int) Primitive {
	return s.Primitives[index]
}

// Get the number of scene lights.
func (s *Scene) NumLights() int {
	return len(s.Lights)
}

// Get light by index.
func (s *Scene) Light(index int) Light {
	return s.Lights[index]
}

// Attach a camera to the scene.
func (s *Scene) AddCamera(camera *Camera) error {
	for _, cam := range s.Cameras {
		if cam == camera {
			return fmt.Errorf("scene: camera already added")
		}
		if camera.Name != "" && cam.Name == camera.Name {
			return fmt.Errorf("scene: duplicate camera name %q", camera.Name)
		}
	}
	s.Cameras = append(s.Cameras, camera)
	return nil
}

// Lookup a camera by name.
func (s *Scene) Camera(name string) *Camera {
	for _, cam := range s.Cameras {
		if cam.Name == name {
			return cam
		}
	}
	return nil
}

// Add a material to the scene.
func (s *Scene) AddMaterial(material *Material) error {
	for _, mat := range s.Materials {
		if mat == material {
			return fmt.Errorf("scene: material already added")
		}
	}
	s.Materials = append(s.Materials, material)
	return nil
}

// Add a primitive to the scene.
func (s *Scene) AddPrimitive(primitive Primitive) error {
	for _, prim := range s.Primitives {
		if prim == primitive {
			return fmt.Errorf("scene: primitive already added")
		}
	}
	if primitive.Material() == nil {
		return fmt.Errorf("scene: no material assigned to primitive")
	}
	for _, mat := range s.Materials {
		if mat == primitive.Material() {
			s.Primitives = append(s.Primitives, primitive)
			return nil
		}
	}

	return fmt.Errorf("scene: primitive references unknown material; ensure that the material is added to the scene before adding the primitive")
}

// Add a light to the scene.
func (s *Scene) AddLight(light Light) {
	s.Lights = append(s.Lights, light)
}

// Count primitives by type.
func (s *Scene) PrimitiveCounts() map[PrimitiveType]int {
	counts := make(map[PrimitiveType]int)
	for _, prim := range s.Primitives {
		counts[prim.Type()]++
	}
	return counts
}

func (s *Scene) String() string {
	return fmt.Sprintf(
		"Scene(name: %q, objects: %d, lights: %d, materials: %d, cameras: %d)",
		s.Name, len(s.Primitives), len(s.Lights), len(s.Materials), len(s.Cameras),
	)
}
