package replay

import "github.com/younwookim/momentum/internal/application/movement"

// FrameInput records input state for a single frame
type FrameInput struct {
	F int  `json:"f"`           // Frame number
	L bool `json:"l,omitempty"` // Left
	R bool `json:"r,omitempty"` // Right
	U bool `json:"u,omitempty"` // Up
	D bool `json:"d,omitempty"` // Down
	J bool `json:"j,omitempty"` // Jump
}

// FormatVersion is written to new recordings and required when loading.
const FormatVersion = "1.0"

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// FrameFromControls packs a control mask into a frame record.
func FrameFromControls(f int, c movement.Control) FrameInput {
	return FrameInput{
		F: f,
		L: c.Has(movement.ControlLeft),
		R: c.Has(movement.ControlRight),
		U: c.Has(movement.ControlUp),
		D: c.Has(movement.ControlDown),
		J: c.Has(movement.ControlJump),
	}
}

// Controls returns the control mask held on this frame.
func (fi FrameInput) Controls() movement.Control {
	var c movement.Control
	if fi.L {
		c |= movement.ControlLeft
	}
	if fi.R {
		c |= movement.ControlRight
	}
	if fi.U {
		c |= movement.ControlUp
	}
	if fi.D {
		c |= movement.ControlDown
	}
	if fi.J {
		c |= movement.ControlJump
	}
	return c
}
