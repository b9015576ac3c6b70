package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(0.5, -4)

	assert.Equal(t, V(1.5, -2), a.Add(b))
	assert.Equal(t, V(0.5, 6), a.Sub(b))
	assert.Equal(t, V(3, 6), a.Scale(3))
	assert.Equal(t, V(0.5, -8), a.Mul(b))
	assert.Equal(t, V(0.5, 4), b.Abs())
	assert.Equal(t, V(2, -3), V(1.5, -2.5).Round())
	assert.True(t, Vec2{}.IsZero())
	assert.InDelta(t, 5.0, V(3, 4).Len(), 1e-12)
}

func TestVec2Within(t *testing.T) {
	assert.True(t, V(0.99, -0.5).Within(1))
	assert.False(t, V(1, 0).Within(1))
	assert.False(t, V(0, -1.2).Within(1))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, Clamp(11, 0, 10))
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 3.0, Clamp(1, 3, 2))
	assert.Equal(t, V(0, 10), V(-3, 12).Clamp(V(0, 0), V(10, 10)))
}

func TestRectContains(t *testing.T) {
	r := Rect{Top: 0, Left: 0, Bottom: 64, Right: 128}

	tests := []struct {
		name string
		pos  Vec2
		want bool
	}{
		{"inside", V(2, 2), true},
		{"touching bottom right", V(34, 98), true},
		{"over top", V(-1, 2), false},
		{"over left", V(2, -0.5), false},
		{"over bottom", V(35, 2), false},
		{"over right", V(2, 99), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.pos, 30, 30))
		})
	}
}

func TestRectClampShape(t *testing.T) {
	r := Rect{Top: 0, Left: 0, Bottom: 64, Right: 128}
	assert.Equal(t, V(34, 0), r.ClampShape(V(40, -3), 30, 30))
	assert.Equal(t, V(2, 2), r.ClampShape(V(2, 2), 30, 30))
}
