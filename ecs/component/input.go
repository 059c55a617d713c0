package component

// Input stores per-frame pointer state.
type Input struct {
	X, Y float64

	Clicked    bool
	RotateDX   float64
	RotateDY   float64
	PanDX      float64
	PanDY      float64
	Wheel      float64
	InViewport bool
}

var InputComponent = NewComponent[Input]()
