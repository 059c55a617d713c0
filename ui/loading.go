package ui

import (
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

// LoadingScreen shows the current loading message and, once the sequence
// allows it, a continue button.
type LoadingScreen struct {
	UI *ebitenui.UI

	message  *widget.Text
	progress *widget.Text
	button   *widget.Button
}

// NewLoadingScreen builds the loading UI. onContinue runs when the
// continue button is pressed.
func NewLoadingScreen(theme *Theme, onContinue func()) *LoadingScreen {
	s := &LoadingScreen{}

	title := theme.text("ORBIT CORE", theme.Title, textColor)
	s.message = theme.text("", theme.Body, textColor)
	s.progress = theme.text("", theme.Mono, mutedColor)
	s.button = theme.button("Continue", onContinue)
	setVisible(s.button, false)

	panel := theme.panel(14, widget.DirectionVertical,
		widget.WidgetOpts.MinSize(480, 200),
		anchored(widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionCenter),
	)
	panel.AddChild(title)
	panel.AddChild(s.message)
	panel.AddChild(s.progress)
	panel.AddChild(s.button)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	s.UI = &ebitenui.UI{Container: root}
	return s
}

// SetMessage shows message i of n.
func (s *LoadingScreen) SetMessage(text string, i, n int) {
	s.message.Label = text
	s.progress.Label = ProgressDots(i, n)
}

// ShowContinue toggles the continue button.
func (s *LoadingScreen) ShowContinue(show bool) {
	setVisible(s.button, show)
}

func (s *LoadingScreen) Update() {
	s.UI.Update()
}

func (s *LoadingScreen) Draw(screen *ebiten.Image) {
	s.UI.Draw(screen)
}

// ProgressDots renders one dot per message, filled up to message i.
func ProgressDots(i, n int) string {
	if n <= 0 {
		return ""
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return strings.TrimSpace(strings.Repeat("* ", i+1) + strings.Repeat(". ", n-i-1))
}
