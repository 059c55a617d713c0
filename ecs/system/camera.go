package system

import (
	"cogentcore.org/core/math32"
	"github.com/milk9111/orbitcore/ecs"
	"github.com/milk9111/orbitcore/ecs/component"
)

const (
	rotateSpeed = 0.005
	panSpeed    = 0.0015
	zoomStep    = 0.9
)

// CameraSystem applies orbit controls and keeps the camera viewport in
// sync with the screen.
type CameraSystem struct {
	camEntity ecs.Entity
	width     float64
	height    float64
}

func NewCameraSystem(width, height float64) *CameraSystem {
	return &CameraSystem{width: width, height: height}
}

// Resize sets the viewport used for projection.
func (cs *CameraSystem) Resize(width, height float64) {
	cs.width, cs.height = width, height
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam.Width, cam.Height = cs.width, cs.height

	input, ok := ecs.Get(w, cs.camEntity, component.InputComponent.Kind())
	if !ok {
		return
	}
	if input.RotateDX != 0 || input.RotateDY != 0 {
		cam.Orbit(float32(-input.RotateDX*rotateSpeed), float32(input.RotateDY*rotateSpeed))
	}
	if input.PanDX != 0 || input.PanDY != 0 {
		scale := float64(cam.Distance) * panSpeed
		cam.Pan(float32(-input.PanDX*scale), float32(input.PanDY*scale))
	}
	if input.Wheel != 0 {
		cam.Zoom(math32.Pow(zoomStep, float32(input.Wheel)))
	}
}
