package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/momentum/internal/application/movement"
)

// KeyState reports whether a key is held.
type KeyState func(ebiten.Key) bool

// DefaultBindings maps each control to its keys.
var DefaultBindings = map[movement.Control][]ebiten.Key{
	movement.ControlUp:    {ebiten.KeyW, ebiten.KeyArrowUp},
	movement.ControlDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
	movement.ControlLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	movement.ControlRight: {ebiten.KeyD, ebiten.KeyArrowRight},
	movement.ControlJump:  {ebiten.KeySpace, ebiten.KeyK},
}

// KeyboardInput samples the keyboard once per tick into a control mask
type KeyboardInput struct {
	bindings map[movement.Control][]ebiten.Key
	held     KeyState
	current  movement.Control
}

// NewKeyboardInput creates an input source reading the ebiten keyboard
func NewKeyboardInput() *KeyboardInput {
	return NewKeyStateInput(DefaultBindings, ebiten.IsKeyPressed)
}

// NewKeyStateInput creates an input source over an arbitrary key reader.
func NewKeyStateInput(bindings map[movement.Control][]ebiten.Key, held KeyState) *KeyboardInput {
	return &KeyboardInput{bindings: bindings, held: held}
}

// Poll samples the keys and returns the new mask.
func (k *KeyboardInput) Poll() movement.Control {
	var c movement.Control
	for ctrl, keys := range k.bindings {
		for _, key := range keys {
			if k.held(key) {
				c |= ctrl
				break
			}
		}
	}
	// opposite directions cancel out
	if c.Has(movement.ControlLeft | movement.ControlRight) {
		c &^= movement.ControlLeft | movement.ControlRight
	}
	k.current = c
	return c
}

// Controls returns the mask of the last Poll
func (k *KeyboardInput) Controls() movement.Control {
	return k.current
}
