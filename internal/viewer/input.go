package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sweeptide/internal/mathutil"
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// InputHandler maps keys to arena actions. Digits grant perks in key
// order; with Shift held they add weapons instead.
type InputHandler struct {
	viewer *Viewer
}

func NewInputHandler(v *Viewer) *InputHandler {
	return &InputHandler{viewer: v}
}

func (ih *InputHandler) HandleInput() {
	v := ih.viewer

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.paused = !v.paused
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for i, key := range digitKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if shift {
			v.addWeapon(i)
		} else {
			v.grantPerk(i)
		}
	}

	v.world.SetMoveInput(ih.moveDirection())
}

func (ih *InputHandler) moveDirection() mathutil.Vec2 {
	var dir mathutil.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	return dir
}
