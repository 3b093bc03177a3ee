package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/momentum/internal/application/movement"
)

func TestFrameInput_Controls(t *testing.T) {
	tests := []struct {
		name string
		mask movement.Control
	}{
		{"idle", 0},
		{"run right", movement.ControlRight},
		{"jump left", movement.ControlJump | movement.ControlLeft},
		{"crouch", movement.ControlDown},
		{"everything", movement.ControlUp | movement.ControlDown | movement.ControlLeft | movement.ControlRight | movement.ControlJump},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fi := FrameFromControls(7, tt.mask)
			assert.Equal(t, 7, fi.F)
			assert.Equal(t, tt.mask, fi.Controls())
		})
	}
}

func TestReplayer_Next(t *testing.T) {
	data := ReplayData{
		Version: FormatVersion,
		Stage:   "test",
		Frames: []FrameInput{
			{F: 0, L: true},
			{F: 1, R: true, J: true},
			{F: 2},
		},
	}

	r := NewReplayer(data)
	assert.Equal(t, movement.Control(0), r.Controls())
	assert.Equal(t, 3, r.TotalFrames())
	assert.Equal(t, "test", r.Stage())

	require.True(t, r.Next())
	assert.Equal(t, movement.ControlLeft, r.Controls())

	require.True(t, r.Next())
	assert.Equal(t, movement.ControlRight|movement.ControlJump, r.Controls())

	require.True(t, r.Next())
	assert.Equal(t, movement.Control(0), r.Controls())
	assert.Equal(t, 3, r.CurrentFrame())

	assert.False(t, r.Next())
	assert.Equal(t, movement.Control(0), r.Controls())

	r.Reset()
	assert.Equal(t, 0, r.CurrentFrame())
	require.True(t, r.Next())
	assert.Equal(t, movement.ControlLeft, r.Controls())
}

func TestRecorderAndReplayer(t *testing.T) {
	rec := NewRecorder("demo")
	inputs := []movement.Control{
		0,
		movement.ControlRight,
		movement.ControlRight | movement.ControlJump,
		movement.ControlDown,
	}
	for _, c := range inputs {
		rec.RecordFrame(c)
	}
	rec.Stop()
	rec.RecordFrame(movement.ControlLeft)

	assert.False(t, rec.IsRecording())
	require.Equal(t, len(inputs), rec.FrameCount())

	file := filepath.Join(t.TempDir(), GenerateFilename())
	require.NoError(t, rec.Save(file))

	data, err := LoadReplay(file)
	require.NoError(t, err)
	assert.Equal(t, "demo", data.Stage)

	r := NewReplayer(*data)
	for i, want := range inputs {
		require.True(t, r.Next())
		assert.Equal(t, want, r.Controls(), "frame %d", i)
	}
	assert.False(t, r.Next())
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder("demo")
	err := rec.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.Error(t, err)
}

func TestLoadReplay_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadReplay(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{not json"), 0o644))
	_, err = LoadReplay(garbage)
	assert.Error(t, err)

	old := filepath.Join(dir, "old.json")
	require.NoError(t, os.WriteFile(old, []byte(`{"version":"0.1","stage":"demo","frames":[{"f":0}]}`), 0o644))
	_, err = LoadReplay(old)
	assert.ErrorContains(t, err, "unsupported version")
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData(5, movement.ControlRight)
	require.Len(t, data.Frames, 5)
	for i, f := range data.Frames {
		assert.Equal(t, i, f.F)
		assert.Equal(t, movement.ControlRight, f.Controls())
	}
}
