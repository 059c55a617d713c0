package ui

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	textColor   = color.NRGBA{R: 0xee, G: 0xee, B: 0xff, A: 0xff}
	mutedColor  = color.NRGBA{R: 0x99, G: 0x99, B: 0xb0, A: 0xff}
	panelColor  = color.NRGBA{R: 0x08, G: 0x08, B: 0x18, A: 200}
	buttonIdle  = color.NRGBA{R: 0x22, G: 0x22, B: 0x3a, A: 230}
	buttonHover = color.NRGBA{R: 0x33, G: 0x33, B: 0x55, A: 240}
	buttonPress = color.NRGBA{R: 0x18, G: 0x18, B: 0x28, A: 255}
)

// Theme holds the faces and widget images shared by every screen.
type Theme struct {
	Body  text.Face
	Title text.Face
	Small text.Face
	Mono  text.Face

	Panel  *image.NineSlice
	Button *widget.ButtonImage
}

// NewTheme loads Go Regular at the UI sizes.
func NewTheme() (*Theme, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("ui: load font: %w", err)
	}
	return &Theme{
		Body:  &text.GoTextFace{Source: s, Size: 16},
		Title: &text.GoTextFace{Source: s, Size: 32},
		Small: &text.GoTextFace{Source: s, Size: 13},
		Mono:  text.NewGoXFace(basicfont.Face7x13),

		Panel: image.NewNineSliceColor(panelColor),
		Button: &widget.ButtonImage{
			Idle:    image.NewNineSliceColor(buttonIdle),
			Hover:   image.NewNineSliceColor(buttonHover),
			Pressed: image.NewNineSliceColor(buttonPress),
		},
	}, nil
}

func (t *Theme) text(label string, face text.Face, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &face, clr),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func (t *Theme) button(label string, onClick func()) *widget.Button {
	face := t.Body
	return widget.NewButton(
		widget.ButtonOpts.Image(t.Button),
		widget.ButtonOpts.Text(label, &face, &widget.ButtonTextColor{Idle: textColor, Disabled: mutedColor}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

func (t *Theme) panel(spacing int, direction widget.Direction, opts ...widget.WidgetOpt) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(t.Panel),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(direction),
			widget.RowLayoutOpts.Spacing(spacing),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 20, Right: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(opts...),
	)
}

func row(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(spacing),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func anchored(h, v widget.AnchorLayoutPosition) widget.WidgetOpt {
	return widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: h, VerticalPosition: v})
}

func setLabel(b *widget.Button, label string) {
	if b == nil {
		return
	}
	if t := b.Text(); t != nil {
		t.Label = label
	}
}

func setVisible(w widget.HasWidget, visible bool) {
	if visible {
		w.GetWidget().Visibility = widget.Visibility_Show
		return
	}
	w.GetWidget().Visibility = widget.Visibility_Hide
}
