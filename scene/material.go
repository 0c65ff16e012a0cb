package scene

import (
	"fmt"

	"github.com/achilleasa/whitted/types"
)

// Defines a surface material.
//
// The final color of a surface point is Intrinsic*local + Reflectivity*reflected.
// The two weights are independent inputs; they are not required to sum to 1
// and are never normalized.
type Material struct {
	// Material name (as referenced by scene files).
	Name string

	// Ambient, diffuse and specular colors.
	Ambient  types.Color
	Diffuse  types.Color
	Specular types.Color

	// Specular exponent.
	Shininess float32

	// Weight of the reflected color, in [0, 1].
	Reflectivity float32

	// Weight of the locally shaded color.
	Intrinsic float32
}

// Create a diffuse, non-reflective gray material.
func DefaultMaterial() *Material {
	return &Material{
		Ambient:   types.RGB(0.1, 0.1, 0.1),
		Diffuse:   types.RGB(0.7, 0.7, 0.7),
		Specular:  types.RGB(0.3, 0.3, 0.3),
		Shininess: 32,
		Intrinsic: 1,
	}
}

// Set ambient, diffuse and specular colors.
func (m *Material) SetColors(ambient, diffuse, specular types.Color) {
	m.Ambient = ambient
	m.Diffuse = diffuse
	m.Specular = specular
}

// Set the intrinsic and reflectivity weights.
func (m *Material) SetWeights(intrinsic, reflectivity float32) {
	m.Intrinsic = intrinsic
	m.Reflectivity = reflectivity
}

func (m *Material) String() string {
	return fmt.Sprintf(
		"Material(name: %q, ambient: %v, diffuse: %v, specular: %v, shininess: %.2f, reflectivity: %.2f, intrinsic: %.2f)",
		m.Name, m.Ambient, m.Diffuse, m.Specular, m.Shininess, m.Reflectivity, m.Intrinsic,
	)
}
