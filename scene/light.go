package scene

import (
	"fmt"

	"github.com/achilleasa/whitted/types"
)

// The Light interface is implemented by all light sources.
type Light interface {
	// World-space light position.
	Position() types.Vec3

	// Light colors. Only these three material fields are meaningful for a light.
	AmbientColor() types.Color
	DiffuseColor() types.Color
	SpecularColor() types.Color

	// Light intensity reaching point p.
	IntensityAtPoint(p types.Vec3) types.Color
}

// A point light. The intensity at a point is the light's diffuse color scaled
// by 1 / (Kc + Kl*d + Kq*d^2) where d is the distance to the light.
type PointLight struct {
	Pos      types.Vec3
	Ambient  types.Color
	Diffuse  types.Color
	Specular types.Color

	// Constant, linear and quadratic attenuation factors.
	Kc, Kl, Kq float32
}

// Create a point light with white diffuse/specular colors and no attenuation.
func NewPointLight(pos types.Vec3) *PointLight {
	return &PointLight{
		Pos:      pos,
		Ambient:  types.RGB(0.2, 0.2, 0.2),
		Diffuse:  types.White,
		Specular: types.White,
		Kc:       1,
	}
}

// Create a point light that borrows its colors from a material.
func NewPointLightFromMaterial(pos types.Vec3, mat *Material) *PointLight {
	l := NewPointLight(pos)
	l.Ambient, l.Diffuse, l.Specular = mat.Ambient, mat.Diffuse, mat.Specular
	return l
}

// Set attenuation factors.
func (l *PointLight) SetAttenuation(kc, kl, kq float32) {
	l.Kc, l.Kl, l.Kq = kc, kl, kq
}

func (l *PointLight) Position() types.Vec3       { return l.Pos }
func (l *PointLight) AmbientColor() types.Color  { return l.Ambient }
func (l *PointLight) DiffuseColor() types.Color  { return l.Diffuse }
func (l *PointLight) SpecularColor() types.Color { return l.Specular }

// Get light intensity at point p.
func (l *PointLight) IntensityAtPoint(p types.Vec3) types.Color {
	if l.Kl == 0 && l.Kq == 0 {
		if l.Kc == 0 || l.Kc == 1 {
			return l.Diffuse
		}
		return l.Diffuse.Scale(1 / l.Kc)
	}

	d := types.Distance(p, l.Pos)
	denom := l.Kc + l.Kl*d + l.Kq*d*d
	if denom <= 0 {
		return l.Diffuse
	}
	return l.Diffuse.Scale(1 / denom)
}

func (l *PointLight) String() string {
	return fmt.Sprintf(
		"Light(position: (%.2f, %.2f, %.2f), ambient: %v, diffuse: %v, specular: %v)",
		l.Pos[0], l.Pos[1], l.Pos[2], l.Ambient, l.Diffuse, l.Specular,
	)
}
