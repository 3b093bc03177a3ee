package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/younwookim/momentum/internal/application/scene"
)

// stubScene counts lifecycle calls and returns a canned Update result.
type stubScene struct {
	updates, draws, enters, exits int
	lastDT                        float64
	next                          scene.Scene
	err                           error
}

func (s *stubScene) Update(dt float64) (scene.Scene, error) {
	s.updates++
	s.lastDT = dt
	return s.next, s.err
}

func (s *stubScene) Draw(*ebiten.Image) { s.draws++ }
func (s *stubScene) OnEnter()           { s.enters++ }
func (s *stubScene) OnExit()            { s.exits++ }

type sizedScene struct{ stubScene }

func (s *sizedScene) Layout(int, int) (int, int) { return 256, 192 }

func TestGame_EntersInitialSceneAndDraws(t *testing.T) {
	first := &stubScene{}
	g := New(first, 320, 240, 0)
	assert.Equal(t, 1, first.enters)

	g.Draw(ebiten.NewImage(320, 240))
	assert.Equal(t, 1, first.draws)
}

func TestGame_Update(t *testing.T) {
	tests := []struct {
		name    string
		dt      float64
		next    bool
		err     error
		updates int
		wantDT  float64
		wantErr error
		exits   int
		enters  int // on the follow-up scene
	}{
		{name: "stays on nil", updates: 5, wantDT: 1.0 / 60.0},
		{name: "fixed step", dt: 1.0 / 30.0, updates: 1, wantDT: 1.0 / 30.0},
		{name: "transition", next: true, updates: 1, wantDT: 1.0 / 60.0, exits: 1, enters: 1},
		{name: "error propagates", err: assert.AnError, updates: 1, wantDT: 1.0 / 60.0, wantErr: assert.AnError},
		{name: "termination exits", err: ebiten.Termination, updates: 1, wantDT: 1.0 / 60.0, wantErr: ebiten.Termination, exits: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			second := &stubScene{}
			first := &stubScene{err: tt.err}
			if tt.next {
				first.next = second
			}
			g := New(first, 320, 240, tt.dt)

			for i := 0; i < tt.updates; i++ {
				err := g.Update()
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.NoError(t, err)
				}
			}

			assert.Equal(t, tt.updates, first.updates)
			assert.InDelta(t, tt.wantDT, first.lastDT, 1e-12)
			assert.Equal(t, tt.exits, first.exits)
			assert.Equal(t, tt.enters, second.enters)

			if tt.next {
				assert.NoError(t, g.Update())
				assert.Equal(t, 1, second.updates, "later updates go to the new scene")
			}

			// Close exits whatever is current exactly once.
			g.Close()
			g.Close()
			if tt.next {
				assert.Equal(t, 1, second.exits)
			} else {
				assert.Equal(t, 1, first.exits)
			}
		})
	}
}

func TestGame_Layout(t *testing.T) {
	tests := []struct {
		name  string
		scene scene.Scene
		w, h  int
	}{
		{"game size", &stubScene{}, 320, 240},
		{"scene size", &sizedScene{}, 256, 192},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := New(tt.scene, 320, 240, 0).Layout(640, 480)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}
