package component

import "cogentcore.org/core/math32"

// Starfield is a fixed cloud of background points.
type Starfield struct {
	Points []math32.Vector3
	Size   float32
}

var StarfieldComponent = NewComponent[Starfield]()
