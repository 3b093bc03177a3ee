// Package scene defines the screens the game loop steps.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen driven by the fixed-step loop. Update returns the
// next scene to switch to, or nil to stay. A returned error stops the loop.
type Scene interface {
	Update(dt float64) (next Scene, err error)
	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes current, OnExit when it is
	// replaced or the loop terminates.
	OnEnter()
	OnExit()
}

// Sized is implemented by scenes that pick their own logical screen size.
type Sized interface {
	Layout(outsideWidth, outsideHeight int) (int, int)
}
