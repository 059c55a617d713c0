package component

const HoveredScale = 1.1

// Hover marks an entity as a pick target.
type Hover struct {
	Hovered bool
}

var HoverComponent = NewComponent[Hover]()

// HoverScale is the mesh scale for a hover flag.
func HoverScale(hovered bool) float32 {
	if hovered {
		return HoveredScale
	}
	return 1
}
