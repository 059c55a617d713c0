package component

import "time"

// Spin rotates an entity about its Y axis at Rate radians per second.
type Spin struct {
	Rate  float32
	Angle float32
}

var SpinComponent = NewComponent[Spin]()

// SpinAngle is the rotation reached after elapsed time.
func SpinAngle(rate float32, elapsed time.Duration) float32 {
	return rate * float32(elapsed.Seconds())
}
