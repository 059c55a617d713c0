package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/orbitcore/ecs"
	"github.com/milk9111/orbitcore/ecs/component"
)

// clickSlop is how far the pointer may travel between press and release
// and still count as a click.
const clickSlop = 4.0

// Pointer is one frame of raw pointer state.
type Pointer struct {
	X, Y        float64
	Left, Right bool
	WheelY      float64
}

// PointerSource reads the pointer once per frame.
type PointerSource interface {
	Pointer() Pointer
}

// EbitenPointer reads mouse and gamepad state from ebiten.
type EbitenPointer struct{}

func (EbitenPointer) Pointer() Pointer {
	x, y := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	p := Pointer{
		X:      float64(x),
		Y:      float64(y),
		Left:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		WheelY: wy,
	}

	const stickDeadzone = 0.2
	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Abs(ry) > stickDeadzone {
			p.WheelY = -ry
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			p.Left = true
		}
	}
	return p
}

// InputSystem turns raw pointer state into clicks and drag deltas.
type InputSystem struct {
	source PointerSource

	prev      Pointer
	havePrev  bool
	pressX    float64
	pressY    float64
	travelled float64

	viewportFn func(x, y float64) bool
}

func NewInputSystem(source PointerSource) *InputSystem {
	if source == nil {
		source = EbitenPointer{}
	}
	return &InputSystem{source: source}
}

// SetViewport limits clicks and drags to points where fn is true. Overlay
// widgets use it to keep their clicks out of the scene.
func (i *InputSystem) SetViewport(fn func(x, y float64) bool) {
	i.viewportFn = fn
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	p := i.source.Pointer()
	prev := i.prev
	if !i.havePrev {
		prev = p
		i.havePrev = true
	}
	i.prev = p

	inViewport := i.viewportFn == nil || i.viewportFn(p.X, p.Y)
	dx, dy := p.X-prev.X, p.Y-prev.Y

	clicked := false
	switch {
	case p.Left && !prev.Left:
		i.pressX, i.pressY = p.X, p.Y
		i.travelled = 0
	case p.Left:
		i.travelled = math.Max(i.travelled, math.Hypot(p.X-i.pressX, p.Y-i.pressY))
	case prev.Left:
		clicked = inViewport && i.travelled <= clickSlop
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = component.Input{X: p.X, Y: p.Y, Clicked: clicked, InViewport: inViewport}
		if !inViewport {
			return
		}
		if p.Left && prev.Left {
			input.RotateDX, input.RotateDY = dx, dy
		}
		if p.Right && prev.Right {
			input.PanDX, input.PanDY = dx, dy
		}
		input.Wheel = p.WheelY
	})
}
