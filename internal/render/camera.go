package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera circles the cube at a distance, always looking at the
// origin
type OrbitCamera struct {
	Yaw      float32
	Pitch    float32
	Distance float32
	Fov      float32
}

// NewOrbitCamera creates a camera at a comfortable viewing distance
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Yaw:      0.6,
		Pitch:    0.4,
		Distance: 4,
		Fov:      mgl32.DegToRad(55),
	}
}

// Position returns the camera's world position
func (c *OrbitCamera) Position() mgl32.Vec3 {
	pitch := mgl32.Clamp(c.Pitch, -1.5, 1.5)
	return mgl32.Vec3{
		c.Distance * math32.Cos(pitch) * math32.Sin(c.Yaw),
		c.Distance * math32.Sin(pitch),
		c.Distance * math32.Cos(pitch) * math32.Cos(c.Yaw),
	}
}

// ViewProjection returns the combined matrix for the given aspect ratio
func (c *OrbitCamera) ViewProjection(aspect float32) mgl32.Mat4 {
	view := mgl32.LookAtV(c.Position(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(c.Fov, aspect, 0.01, 100)
	return proj.Mul4(view)
}

// Orbit rotates the camera by mouse deltas
func (c *OrbitCamera) Orbit(dx, dy float32) {
	c.Yaw += dx * 0.01
	c.Pitch = mgl32.Clamp(c.Pitch+dy*0.01, -1.5, 1.5)
}

// Zoom moves the camera along its view axis
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance-delta*0.3, 1.2, 30)
}
