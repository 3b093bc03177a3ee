package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// Recipe describes a short synthesized effect: a frequency sweep with a
// linear fade out.
type Recipe struct {
	From, To float64 // Hz
	Duration time.Duration
	Wave     Wave
	Volume   float64
}

// tone streams one Recipe.
type tone struct {
	r        Recipe
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

func newTone(r Recipe, rate beep.SampleRate) *tone {
	return &tone{r: r, rate: rate, total: rate.N(r.Duration)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.position >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.position >= t.total {
			return i, true
		}
		progress := float64(t.position) / float64(t.total)
		freq := t.r.From + (t.r.To-t.r.From)*progress

		var val float64
		switch t.r.Wave {
		case WaveSquare:
			val = 1
			if t.phase >= 0.5 {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(t.phase-0.5) - 1
		default:
			val = math.Sin(2 * math.Pi * t.phase)
		}
		val *= t.r.Volume * (1 - progress)

		samples[i][0] = val
		samples[i][1] = val

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
