package component

// Projection is the screen-space circle of a sphere for the current frame.
type Projection struct {
	X, Y    float64
	Radius  float64
	Depth   float64
	Visible bool
}

var ProjectionComponent = NewComponent[Projection]()
