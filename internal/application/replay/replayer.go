package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/momentum/internal/application/movement"
)

// Replayer handles input playback from recorded data. It is an input
// source: call Next once per tick, then controllers read Controls.
type Replayer struct {
	data    ReplayData
	frame   int
	current movement.Control
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != FormatVersion {
		return nil, fmt.Errorf("replay %s: unsupported version %q", filename, data.Version)
	}

	return &data, nil
}

// Next loads the input of the next frame. It returns false once the
// recording is exhausted, after which Controls reports no input.
func (r *Replayer) Next() bool {
	if r.frame >= len(r.data.Frames) {
		r.current = 0
		return false
	}
	r.current = r.data.Frames[r.frame].Controls()
	r.frame++
	return true
}

// Controls returns the mask loaded by the last Next
func (r *Replayer) Controls() movement.Control {
	return r.current
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Stage returns the stage the recording was made on
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.current = 0
}

// CreateTestReplayData creates replay data holding the same controls on
// every frame.
func CreateTestReplayData(frames int, held movement.Control) ReplayData {
	data := ReplayData{
		Version:   FormatVersion,
		Stage:     "test",
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameFromControls(i, held)
	}

	return data
}
