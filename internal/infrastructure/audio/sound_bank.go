// Package audio plays the synthesized effect sounds requested by movement
// controllers.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/younwookim/momentum/internal/application/movement"
)

const sampleRate = beep.SampleRate(44100)

// DefaultRecipes are the built-in effect sounds keyed by sound id.
var DefaultRecipes = map[string]Recipe{
	movement.SoundJump:     {From: 380, To: 820, Duration: 150 * time.Millisecond, Wave: WaveSquare, Volume: 0.15},
	movement.SoundRoll:     {From: 260, To: 140, Duration: 120 * time.Millisecond, Wave: WaveTriangle, Volume: 0.2},
	movement.SoundBrake:    {From: 900, To: 500, Duration: 200 * time.Millisecond, Wave: WaveSquare, Volume: 0.1},
	movement.SoundSpinDash: {From: 300, To: 1200, Duration: 180 * time.Millisecond, Wave: WaveSquare, Volume: 0.12},
	movement.SoundRelease:  {From: 1200, To: 200, Duration: 250 * time.Millisecond, Wave: WaveTriangle, Volume: 0.2},
}

// SoundBank mixes effect sounds onto the speaker. Channel 0 overlaps
// freely; any other channel plays one sound at a time, a new sound
// cutting off the previous one.
type SoundBank struct {
	mu          sync.Mutex
	recipes     map[string]Recipe
	mixer       *beep.Mixer
	channels    map[int]*beep.Ctrl
	initialized bool
}

// NewSoundBank creates a bank over the given recipes.
func NewSoundBank(recipes map[string]Recipe) *SoundBank {
	return &SoundBank{
		recipes:  recipes,
		mixer:    &beep.Mixer{},
		channels: make(map[int]*beep.Ctrl),
	}
}

// Initialize opens the speaker.
func (b *SoundBank) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Cleanup silences every channel.
func (b *SoundBank) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	for _, ctrl := range b.channels {
		ctrl.Paused = true
	}
	b.mixer.Clear()
	speaker.Unlock()
	b.channels = make(map[int]*beep.Ctrl)
	b.initialized = false
}

// Streamer builds the stream for a sound id.
func (b *SoundBank) Streamer(id string) (beep.Streamer, bool) {
	r, ok := b.recipes[id]
	if !ok {
		return nil, false
	}
	return newTone(r, sampleRate), true
}

// PlaySound starts a sound. Unknown ids and an uninitialized bank are ignored.
func (b *SoundBank) PlaySound(id string, channel int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	s, ok := b.Streamer(id)
	if !ok {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if channel == 0 {
		b.mixer.Add(s)
		return
	}
	if prev, ok := b.channels[channel]; ok {
		prev.Paused = true
	}
	ctrl := &beep.Ctrl{Streamer: s, Paused: false}
	b.channels[channel] = ctrl
	b.mixer.Add(ctrl)
}
