package render

import (
	"math"
	"math/rand/v2"
	"time"

	"sphere-ca/internal/sphere"
)

const (
	// DefaultDistance is the initial eye distance from the sphere centre.
	DefaultDistance = 5.0
	// MinDistance and MaxDistance bound zooming.
	MinDistance = 1.5
	MaxDistance = 40.0
	// ZoomStep is the distance change per wheel notch.
	ZoomStep = 0.1
	// DragDegreesPerPixel converts mouse motion into rotation.
	DragDegreesPerPixel = 0.1
	// FieldOfView is the vertical field of view in degrees.
	FieldOfView = 28.0
	// BackingRadius is the radius of the opaque sphere drawn under the cells.
	BackingRadius = 0.95
)

// Camera looks at the unit sphere from a point on the +Z axis. The sphere is
// rotated about X, then Y, then Z by the stored angles in degrees.
type Camera struct {
	RotX, RotY, RotZ float64
	Distance         float64

	// Spin rates in degrees per millisecond.
	SpinX, SpinY, SpinZ float64
}

// NewCamera returns a camera at the default distance with no rotation.
func NewCamera() *Camera {
	return &Camera{Distance: DefaultDistance}
}

// RandomSpin picks a slow auto-rotation about every axis.
func (c *Camera) RandomSpin(rng *rand.Rand) {
	c.SpinX = (rng.Float64() - 0.5) * 0.01
	c.SpinY = (rng.Float64() - 0.5) * 0.01
	c.SpinZ = (rng.Float64() - 0.5) * 0.01
}

// Spin advances the auto-rotation by dt.
func (c *Camera) Spin(dt time.Duration) {
	ms := float64(dt) / float64(time.Millisecond)
	c.RotX += c.SpinX * ms
	c.RotY += c.SpinY * ms
	c.RotZ += c.SpinZ * ms
}

// Drag rotates the sphere by a mouse movement in pixels.
func (c *Camera) Drag(dx, dy float64) {
	c.RotX += dy * DragDegreesPerPixel
	c.RotY += dx * DragDegreesPerPixel
}

// Zoom moves the eye by notches wheel steps; positive values move closer.
func (c *Camera) Zoom(notches float64) {
	c.Distance -= notches * ZoomStep
	c.Distance = math.Max(MinDistance, math.Min(MaxDistance, c.Distance))
}

// Rotate applies the camera rotation to v.
func (c *Camera) Rotate(v sphere.Vec3) sphere.Vec3 {
	v = rotZ(v, c.RotZ)
	v = rotY(v, c.RotY)
	return rotX(v, c.RotX)
}

func rotX(v sphere.Vec3, deg float64) sphere.Vec3 {
	s, cs := math.Sincos(deg * math.Pi / 180)
	return sphere.Vec3{X: v.X, Y: cs*v.Y - s*v.Z, Z: s*v.Y + cs*v.Z}
}

func rotY(v sphere.Vec3, deg float64) sphere.Vec3 {
	s, cs := math.Sincos(deg * math.Pi / 180)
	return sphere.Vec3{X: cs*v.X + s*v.Z, Y: v.Y, Z: -s*v.X + cs*v.Z}
}

func rotZ(v sphere.Vec3, deg float64) sphere.Vec3 {
	s, cs := math.Sincos(deg * math.Pi / 180)
	return sphere.Vec3{X: cs*v.X - s*v.Y, Y: s*v.X + cs*v.Y, Z: v.Z}
}

func focal() float64 {
	return 1 / math.Tan(FieldOfView*math.Pi/360)
}

// Project maps a point on the unit sphere to screen coordinates for a w×h
// viewport. Points on the far side of the sphere are not visible.
func (c *Camera) Project(v sphere.Vec3, w, h int) (x, y float64, visible bool) {
	r := c.Rotate(v)
	if r.Z*c.Distance <= 1 {
		return 0, 0, false
	}
	depth := c.Distance - r.Z
	f := focal()
	aspect := float64(w) / float64(h)
	nx := f / aspect * r.X / depth
	ny := f * r.Y / depth
	x = (nx + 1) / 2 * float64(w)
	y = (1 - ny) / 2 * float64(h)
	return x, y, true
}

// DiscRadius returns the on-screen radius in pixels of the backing sphere.
func (c *Camera) DiscRadius(w, h int) float64 {
	s := BackingRadius / c.Distance
	return s / math.Sqrt(1-s*s) * focal() * float64(h) / 2
}

// CellRadius returns a dot radius that lets cells roughly tile the visible
// disc.
func (c *Camera) CellRadius(cells, w, h int) float64 {
	if cells <= 0 {
		return 1
	}
	return math.Max(1, 0.8*c.DiscRadius(w, h)*math.Sqrt(2/float64(cells)))
}
