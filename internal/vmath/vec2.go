package vmath

import "math"

// Axis indices into a Vec2. Positions follow the pixel buffer layout:
// axis 0 is the row (vertical), axis 1 is the column (horizontal).
const (
	Row = 0
	Col = 1
)

// Vec2 is a 2D float vector stored as (row, col).
type Vec2 [2]float64

func V(row, col float64) Vec2 { return Vec2{row, col} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v[0] + o[0], v[1] + o[1]} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v[0] - o[0], v[1] - o[1]} }

// Scale multiplies both axes by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v[0] * s, v[1] * s} }

// Mul multiplies per axis.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v[0] * o[0], v[1] * o[1]} }

func (v Vec2) Abs() Vec2 { return Vec2{math.Abs(v[0]), math.Abs(v[1])} }

// Round rounds each axis half away from zero.
func (v Vec2) Round() Vec2 { return Vec2{math.Round(v[0]), math.Round(v[1])} }

func (v Vec2) IsZero() bool { return v[0] == 0 && v[1] == 0 }

// Len returns the Euclidean norm.
func (v Vec2) Len() float64 { return math.Hypot(v[0], v[1]) }

// Clamp limits each axis to [lo, hi] of the matching axis.
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{Clamp(v[0], lo[0], hi[0]), Clamp(v[1], lo[1], hi[1])}
}

// Within reports whether every axis of v has magnitude strictly below eps.
func (v Vec2) Within(eps float64) bool {
	return math.Abs(v[0]) < eps && math.Abs(v[1]) < eps
}

// Clamp limits x to [lo, hi]. When lo > hi, lo wins.
func Clamp(x, lo, hi float64) float64 {
	if x > hi {
		x = hi
	}
	if x < lo {
		x = lo
	}
	return x
}

// Rect is an axis-aligned rectangle in (row, col) space; Bottom and Right
// are exclusive.
type Rect struct {
	Top, Left, Bottom, Right float64
}

// Contains reports whether a shape of size (rows, cols) placed at pos lies
// fully inside r.
func (r Rect) Contains(pos Vec2, rows, cols float64) bool {
	return pos[Row] >= r.Top && pos[Col] >= r.Left &&
		pos[Row]+rows <= r.Bottom && pos[Col]+cols <= r.Right
}

// ClampShape moves pos the minimum amount so a (rows, cols) shape fits r.
func (r Rect) ClampShape(pos Vec2, rows, cols float64) Vec2 {
	return Vec2{
		Clamp(pos[Row], r.Top, r.Bottom-rows),
		Clamp(pos[Col], r.Left, r.Right-cols),
	}
}
