package component

import "cogentcore.org/core/math32"

// Transform places an entity in world space. Rotation is about the Y axis.
type Transform struct {
	Position math32.Vector3
	Rotation float32
	Scale    float32
}

var TransformComponent = NewComponent[Transform]()
