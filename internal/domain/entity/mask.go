package entity

import "fmt"

// Mask is a per-pixel occupancy grid for a tile.
type Mask struct {
	W, H int
	bits []bool
}

// NewMask creates an empty mask.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Mask{W: w, H: h, bits: make([]bool, w*h)}
}

// DecodeMask converts a packed 2-bit-per-pixel bitmap into a mask.
// Pixels are row-major, four per byte, most significant pair first.
// Any non-zero pixel value is occupied.
func DecodeMask(w, h int, packed []byte) (*Mask, error) {
	need := (w*h + 3) / 4
	if len(packed) < need {
		return nil, fmt.Errorf("mask %dx%d needs %d bytes, got %d", w, h, need, len(packed))
	}
	m := NewMask(w, h)
	for i := range m.bits {
		shift := uint(6 - 2*(i%4))
		m.bits[i] = (packed[i/4]>>shift)&0x3 != 0
	}
	return m, nil
}

// At reports whether the local pixel (x, y) is occupied.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.bits[y*m.W+x]
}

// Set marks the local pixel (x, y).
func (m *Mask) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.bits[y*m.W+x] = on
}

// Height returns the number of occupied pixels in column x counted from the
// bottom edge until the first gap.
func (m *Mask) Height(x int) int {
	n := 0
	for y := m.H - 1; y >= 0 && m.At(x, y); y-- {
		n++
	}
	return n
}

// MaskFull returns a fully occupied mask.
func MaskFull(w, h int) *Mask {
	m := NewMask(w, h)
	for i := range m.bits {
		m.bits[i] = true
	}
	return m
}

// MaskHalf returns a mask whose bottom half is occupied.
func MaskHalf(w, h int) *Mask {
	m := NewMask(w, h)
	for y := h / 2; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

// MaskSlope returns a 45 degree ramp. A rising ramp climbs towards +X.
func MaskSlope(w, h int, rising bool) *Mask {
	m := NewMask(w, h)
	for x := 0; x < w; x++ {
		col := x
		if !rising {
			col = w - 1 - x
		}
		top := h - 1 - (col*h)/w
		for y := top; y < h; y++ {
			m.Set(x, y, true)
		}
	}
	return m
}

// MaskShape returns a preset mask by name. Unknown names return nil, which
// callers treat as a fully occupied tile.
func MaskShape(name string, w, h int) *Mask {
	switch name {
	case "full":
		return MaskFull(w, h)
	case "half":
		return MaskHalf(w, h)
	case "slope_up_right", "45_up_right":
		return MaskSlope(w, h, true)
	case "slope_up_left", "45_up_left":
		return MaskSlope(w, h, false)
	default:
		return nil
	}
}
