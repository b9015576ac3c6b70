package component

import "fmt"

// PixelBuffer is a row-major grid of small integers. It backs both sprite
// shapes and the screen the win check inspects.
type PixelBuffer struct {
	Rows int
	Cols int
	Pix  []uint8
}

func NewPixelBuffer(rows, cols int) *PixelBuffer {
	return &PixelBuffer{Rows: rows, Cols: cols, Pix: make([]uint8, rows*cols)}
}

// FilledPixelBuffer returns a rows×cols buffer with every pixel set to v.
func FilledPixelBuffer(rows, cols int, v uint8) *PixelBuffer {
	b := NewPixelBuffer(rows, cols)
	b.Fill(v)
	return b
}

func (b *PixelBuffer) At(row, col int) uint8 {
	return b.Pix[row*b.Cols+col]
}

func (b *PixelBuffer) Set(row, col int, v uint8) {
	b.Pix[row*b.Cols+col] = v
}

func (b *PixelBuffer) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.Rows && col < b.Cols
}

func (b *PixelBuffer) Fill(v uint8) {
	for i := range b.Pix {
		b.Pix[i] = v
	}
}

// CountNonZero returns the number of lit pixels.
func (b *PixelBuffer) CountNonZero() int {
	n := 0
	for _, p := range b.Pix {
		if p != 0 {
			n++
		}
	}
	return n
}

// AllZero reports whether the buffer is entirely black.
func (b *PixelBuffer) AllZero() bool {
	for _, p := range b.Pix {
		if p != 0 {
			return false
		}
	}
	return true
}

// XorBlit combines src into b with its top-left corner at (row, col).
// Pixels falling outside b are dropped.
func (b *PixelBuffer) XorBlit(src *PixelBuffer, row, col int) {
	for r := 0; r < src.Rows; r++ {
		dr := row + r
		if dr < 0 || dr >= b.Rows {
			continue
		}
		for c := 0; c < src.Cols; c++ {
			dc := col + c
			if dc < 0 || dc >= b.Cols {
				continue
			}
			b.Pix[dr*b.Cols+dc] ^= src.Pix[r*src.Cols+c]
		}
	}
}

// Clone returns a deep copy.
func (b *PixelBuffer) Clone() *PixelBuffer {
	out := &PixelBuffer{Rows: b.Rows, Cols: b.Cols, Pix: make([]uint8, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

func (b *PixelBuffer) String() string {
	return fmt.Sprintf("PixelBuffer(%dx%d)", b.Rows, b.Cols)
}

// Screen tags the entity holding the rendered screen PixelBuffer.
type Screen struct{}

// LevelInfo names the level a World was realised for. It lives on the
// screen entity.
type LevelInfo struct {
	Name  string
	Title string
}

// Sprite is a pixel shape drawn at the entity's Transform2D.
type Sprite struct {
	Key    string
	Pixels *PixelBuffer
}

// Size returns the sprite extents as (rows, cols).
func (s *Sprite) Size() (float64, float64) {
	if s == nil || s.Pixels == nil {
		return 0, 0
	}
	return float64(s.Pixels.Rows), float64(s.Pixels.Cols)
}
