package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/momentum/internal/application/movement"
)

func drain(t *testing.T, s interface {
	Stream([][2]float64) (int, bool)
}) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			if smp[0] > peak {
				peak = smp[0]
			}
			assert.Equal(t, smp[0], smp[1], "mono output on both channels")
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream never ended")
	return 0, 0
}

func TestTone_Length(t *testing.T) {
	tests := []struct {
		name string
		wave Wave
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"triangle", WaveTriangle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Recipe{From: 440, To: 880, Duration: 50 * time.Millisecond, Wave: tt.wave, Volume: 0.5}
			total, peak := drain(t, newTone(r, sampleRate))

			assert.Equal(t, sampleRate.N(50*time.Millisecond), total)
			assert.LessOrEqual(t, peak, 0.5)
			assert.Greater(t, peak, 0.0)
		})
	}
}

func TestSoundBank_Streamer(t *testing.T) {
	b := NewSoundBank(DefaultRecipes)

	for _, id := range []string{
		movement.SoundJump,
		movement.SoundRoll,
		movement.SoundBrake,
		movement.SoundSpinDash,
		movement.SoundRelease,
	} {
		s, ok := b.Streamer(id)
		require.True(t, ok, id)
		total, _ := drain(t, s)
		assert.Equal(t, sampleRate.N(DefaultRecipes[id].Duration), total, id)
	}

	_, ok := b.Streamer("missing")
	assert.False(t, ok)
}

func TestSoundBank_PlayBeforeInitialize(t *testing.T) {
	b := NewSoundBank(DefaultRecipes)
	assert.NotPanics(t, func() {
		b.PlaySound(movement.SoundJump, 0)
		b.PlaySound(movement.SoundJump, 1)
		b.Cleanup()
	})
	assert.Empty(t, b.channels)
}
