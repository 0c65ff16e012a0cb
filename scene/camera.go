package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/whitted/types"
	"github.com/go-gl/mathgl/mgl32"
)

// Default camera settings.
const (
	DefaultFOV      float32 = 60.0
	DefaultNearClip float32 = 1.0
	DefaultFarClip  float32 = 1000.0
)

// The camera type controls a scene view. It maps normalized viewport
// coordinates (u, v in [0, 1], v = 0 at the bottom edge) plus a depth along
// the view direction to world-space points.
type Camera struct {
	Name string

	Eye    types.Vec3
	LookAt types.Vec3
	Up     types.Vec3

	// Vertical field of view in degrees.
	FOV float32

	// Viewport aspect ratio (width / height).
	Aspect float32

	// Clip plane distances.
	Near float32
	Far  float32

	ViewMat    mgl32.Mat4
	ProjMat    mgl32.Mat4
	invViewMat mgl32.Mat4
	tanHalfFOV float32
}

func NewCamera(fov float32) *Camera {
	c := &Camera{
		Eye:    types.Vec3{0, 0, 0},
		LookAt: types.Vec3{0, 0, -1},
		Up:     types.Vec3{0, 1, 0},
		FOV:    fov,
		Aspect: 1,
		Near:   DefaultNearClip,
		Far:    DefaultFarClip,
	}
	c.Update()
	return c
}

// Setup camera projection matrix.
func (c *Camera) SetupProjection(aspect float32) {
	c.Aspect = aspect
	c.Update()
}

// Position the camera at eye looking at target.
func (c *Camera) Look(eye, target types.Vec3) {
	c.Eye = eye
	c.LookAt = target
	c.Update()
}

// Recalculate the view and projection matrices.
func (c *Camera) Update() {
	up := c.Up
	if up.IsZero() {
		up = types.Vec3{0, 1, 0}
	}
	dir := types.Direction(c.Eye, c.LookAt)
	if dir.IsZero() {
		dir = types.Vec3{0, 0, -1}
		c.LookAt = c.Eye.Add(dir)
	}

	// Pick another up vector if we are looking straight along it
	if float32(math.Abs(float64(dir.Dot(up.Normalize())))) > 0.999 {
		up = types.Vec3{0, 0, 1}
		if math.Abs(float64(dir[2])) > 0.999 {
			up = types.Vec3{1, 0, 0}
		}
	}

	c.ViewMat = mgl32.LookAtV(mgl32.Vec3(c.Eye), mgl32.Vec3(c.LookAt), mgl32.Vec3(up))
	c.invViewMat = c.ViewMat.Inv()
	c.ProjMat = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	c.tanHalfFOV = float32(math.Tan(float64(mgl32.DegToRad(c.FOV)) * 0.5))
}

// Get the camera eye position.
func (c *Camera) Position() types.Vec3 {
	return c.Eye
}

// Get the near clip plane distance.
func (c *Camera) NearClip() float32 {
	return c.Near
}

// Map a viewport coordinate and a depth along the view direction to a
// world-space point.
func (c *Camera) ViewportToWorld(u, v, z float32) types.Vec3 {
	halfH := c.tanHalfFOV * z
	halfW := halfH * c.Aspect
	camSpace := mgl32.Vec4{(2*u - 1) * halfW, (2*v - 1) * halfH, -z, 1}
	return types.Vec3(c.invViewMat.Mul4x1(camSpace).Vec3())
}

// Project a world-space point to viewport coordinates. This is the inverse
// of ViewportToWorld for points in front of the camera.
func (c *Camera) WorldToViewport(p types.Vec3) (u, v float32) {
	win := mgl32.Project(mgl32.Vec3(p), c.ViewMat, c.ProjMat, 0, 0, 1, 1)
	return win[0], win[1]
}

func (c *Camera) String() string {
	return fmt.Sprintf(
		"Camera(name: %q, eye: (%.2f, %.2f, %.2f), look-at: (%.2f, %.2f, %.2f), fov: %.1f, aspect: %.3f, near: %.2f)",
		c.Name, c.Eye[0], c.Eye[1], c.Eye[2], c.LookAt[0], c.LookAt[1], c.LookAt[2], c.FOV, c.Aspect, c.Near,
	)
}
