package ui

import (
	"fmt"
	goimage "image"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/orbitcore/data"
)

const controlsHint = "drag: orbit | right-drag: pan | wheel: zoom | click a planet to enter"

// UniverseOverlay is drawn over the 3D scene: title, planet legend and a
// cycling status line.
type UniverseOverlay struct {
	UI *ebitenui.UI

	theme    *Theme
	legend   *widget.Container
	entries  *widget.Container
	status   *widget.Text
	onSelect func(data.Planet)
}

func NewUniverseOverlay(theme *Theme, planets []data.Planet, onSelect func(data.Planet)) *UniverseOverlay {
	o := &UniverseOverlay{theme: theme, onSelect: onSelect}

	header := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Left: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(anchored(widget.AnchorLayoutPositionStart, widget.AnchorLayoutPositionStart)),
	)
	header.AddChild(theme.text("ORBIT CORE", theme.Title, textColor))
	header.AddChild(theme.text("a universe of sound", theme.Small, mutedColor))

	o.legend = theme.panel(8, widget.DirectionVertical,
		anchored(widget.AnchorLayoutPositionEnd, widget.AnchorLayoutPositionCenter),
	)
	o.legend.AddChild(theme.text("Planets", theme.Body, textColor))
	o.entries = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
		widget.RowLayoutOpts.Direction(widget.DirectionVertical),
		widget.RowLayoutOpts.Spacing(6),
	)))
	o.legend.AddChild(o.entries)
	o.SetPlanets(planets)

	footer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Bottom: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(anchored(widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionEnd)),
	)
	o.status = theme.text("", theme.Body, textColor)
	footer.AddChild(o.status)
	footer.AddChild(theme.text(controlsHint, theme.Mono, mutedColor))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(header)
	root.AddChild(o.legend)
	root.AddChild(footer)
	o.UI = &ebitenui.UI{Container: root}
	return o
}

// SetPlanets rebuilds the legend.
func (o *UniverseOverlay) SetPlanets(planets []data.Planet) {
	o.entries.RemoveChildren()
	for _, p := range planets {
		o.entries.AddChild(o.theme.button(LegendLabel(p), func() {
			if o.onSelect != nil {
				o.onSelect(p)
			}
		}))
	}
}

// SetStatus replaces the status line.
func (o *UniverseOverlay) SetStatus(line string) {
	o.status.Label = line
}

// Covers reports whether screen point (x, y) is over an overlay panel.
func (o *UniverseOverlay) Covers(x, y float64) bool {
	return goimage.Pt(int(x), int(y)).In(o.legend.GetWidget().Rect)
}

func (o *UniverseOverlay) Update() {
	o.UI.Update()
}

func (o *UniverseOverlay) Draw(screen *ebiten.Image) {
	o.UI.Draw(screen)
}

// LegendLabel is the legend entry of a planet.
func LegendLabel(p data.Planet) string {
	if p.Genre == "" {
		return p.Name
	}
	return fmt.Sprintf("%s  (%s)", p.Name, p.Genre)
}
