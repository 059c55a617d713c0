package component

import "cogentcore.org/core/math32"

const (
	DefaultFOV         = 75
	DefaultDistance    = 10
	DefaultMinDistance = 5
	DefaultMaxDistance = 50

	nearPlane = 0.1
	maxPitch  = math32.Pi/2 - 0.01
)

var worldUp = math32.Vec3(0, 1, 0)

// Camera is an orbit camera around Target. Yaw and Pitch are in radians,
// FOV is the vertical field of view in degrees.
type Camera struct {
	Target      math32.Vector3
	Yaw         float32
	Pitch       float32
	Distance    float32
	MinDistance float32
	MaxDistance float32
	FOV         float32

	Width  float64
	Height float64
}

var CameraComponent = NewComponent[Camera]()

// NewCamera starts at (0,0,Distance) looking at the origin.
func NewCamera(minDistance, maxDistance float32) Camera {
	if minDistance <= 0 {
		minDistance = DefaultMinDistance
	}
	if maxDistance < minDistance {
		maxDistance = DefaultMaxDistance
	}
	return Camera{
		Distance:    math32.Clamp(DefaultDistance, minDistance, maxDistance),
		MinDistance: minDistance,
		MaxDistance: maxDistance,
		FOV:         DefaultFOV,
	}
}

// Eye is the camera position in world space.
func (c *Camera) Eye() math32.Vector3 {
	cosPitch := math32.Cos(c.Pitch)
	offset := math32.Vec3(cosPitch*math32.Sin(c.Yaw), math32.Sin(c.Pitch), cosPitch*math32.Cos(c.Yaw))
	return c.Target.Add(offset.MulScalar(c.Distance))
}

// Orbit rotates the eye around the target.
func (c *Camera) Orbit(dyaw, dpitch float32) {
	c.Yaw += dyaw
	c.Pitch = math32.Clamp(c.Pitch+dpitch, -maxPitch, maxPitch)
}

// Zoom scales the distance by factor and clamps it.
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.Distance = math32.Clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// Pan moves the target in the view plane by world-unit offsets.
func (c *Camera) Pan(right, up float32) {
	_, r, u := c.basis()
	c.Target = c.Target.Add(r.MulScalar(right)).Add(u.MulScalar(up))
}

func (c *Camera) basis() (forward, right, up math32.Vector3) {
	forward = c.Target.Sub(c.Eye()).Normal()
	right = forward.Cross(worldUp).Normal()
	up = right.Cross(forward)
	return forward, right, up
}

// Focal is the distance in pixels to the image plane.
func (c *Camera) Focal() float64 {
	fov := c.FOV
	if fov <= 0 {
		fov = DefaultFOV
	}
	return (c.Height / 2) / float64(math32.Tan(math32.DegToRad(fov)/2))
}

// Project maps a world point to screen pixels. ok is false behind the near
// plane. depth is the distance along the view axis.
func (c *Camera) Project(p math32.Vector3) (x, y, depth float64, ok bool) {
	f, r, u := c.basis()
	d := p.Sub(c.Eye())
	z := float64(d.Dot(f))
	if z <= nearPlane {
		return 0, 0, z, false
	}
	focal := c.Focal()
	x = c.Width/2 + float64(d.Dot(r))*focal/z
	y = c.Height/2 - float64(d.Dot(u))*focal/z
	return x, y, z, true
}

// ProjectSphere returns the screen circle of a sphere.
func (c *Camera) ProjectSphere(center math32.Vector3, radius float32) Projection {
	x, y, depth, ok := c.Project(center)
	if !ok {
		return Projection{Depth: depth}
	}
	return Projection{
		X:       x,
		Y:       y,
		Radius:  float64(radius) * c.Focal() / depth,
		Depth:   depth,
		Visible: true,
	}
}
