package component

import "github.com/milk9111/orbitcore/data"

// PlanetBody is a rendered, pickable planet sphere.
type PlanetBody struct {
	Planet data.Planet
	Radius float32
}

var PlanetBodyComponent = NewComponent[PlanetBody]()
