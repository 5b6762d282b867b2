package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIntersectionArea_Correctness validates IntersectionArea against known cases.
func TestIntersectionArea_Correctness(t *testing.T) {
	tests := []struct {
		name     string
		r1       Rect
		r2       Rect
		expected float32
	}{
		{
			name:     "Identical rectangles",
			r1:       NewRect(0, 0, 100, 100),
			r2:       NewRect(0, 0, 100, 100),
			expected: 10000,
		},
		{
			name:     "No overlap",
			r1:       NewRect(0, 0, 100, 100),
			r2:       NewRect(200, 200, 100, 100),
			expected: 0,
		},
		{
			name:     "Overlap in X only",
			r1:       NewRect(0, 0, 100, 100),
			r2:       NewRect(50, 200, 100, 100),
			expected: 0,
		},
		{
			name:     "Diagonal with both sides negative",
			r1:       NewRect(0, 0, 10, 10),
			r2:       NewRect(20, 30, 5, 5),
			expected: 0,
		},
		{
			name:     "Touching edges",
			r1:       NewRect(0, 0, 100, 100),
			r2:       NewRect(100, 0, 100, 100),
			expected: 0,
		},
		{
			name:     "Quarter overlap",
			r1:       NewRect(0, 0, 100, 100),
			r2:       NewRect(50, 50, 100, 100),
			expected: 2500,
		},
		{
			name:     "One inside other",
			r1:       NewRect(0, 0, 100, 100),
			r2:       NewRect(25, 25, 50, 50),
			expected: 2500,
		},
		{
			name:     "Fractional cell units",
			r1:       NewRect(-0.5, -0.5, 1, 1),
			r2:       NewRect(-1, -1, 1, 1),
			expected: 0.25,
		},
		{
			name:     "Zero width",
			r1:       NewRect(10, 10, 0, 50),
			r2:       NewRect(0, 0, 100, 100),
			expected: 0,
		},
		{
			name:     "Negative coordinates",
			r1:       NewRect(-100, -100, 100, 100),
			r2:       NewRect(-50, -50, 100, 100),
			expected: 2500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IntersectionArea(tt.r1, tt.r2)
			assert.InDelta(t, tt.expected, result, 1e-6, "intersection area")
			assert.GreaterOrEqual(t, result, float32(0), "area must never be negative")

			// IntersectionArea(A, B) must equal IntersectionArea(B, A) exactly.
			assert.Equal(t, result, IntersectionArea(tt.r2, tt.r1), "intersection must be symmetric")
		})
	}
}

// TestIntersectionArea_DisjointIsExactlyZero sweeps rectangles that never
// overlap and checks the result is exactly 0.
func TestIntersectionArea_DisjointIsExactlyZero(t *testing.T) {
	base := NewRect(0, 0, 10, 10)
	offsets := []Point{
		{X: 10, Y: 0}, {X: -10, Y: 0}, {X: 0, Y: 10}, {X: 0, Y: -10},
		{X: 15, Y: 15}, {X: -15, Y: 15}, {X: 15, Y: -15}, {X: -15, Y: -15},
		{X: 11, Y: 3}, {X: 3, Y: -12},
	}
	for _, off := range offsets {
		other := Rect{UpperLeft: off, Dims: base.Dims}
		assert.Equal(t, float32(0), IntersectionArea(base, other), "offset %+v", off)
		assert.Equal(t, float32(0), IntersectionArea(other, base), "offset %+v", off)
	}
}

func TestRectHelpers(t *testing.T) {
	r := NewRect(16, 16, 32, 32)
	assert.Equal(t, Point{X: 48, Y: 48}, r.LowerRight())
	assert.Equal(t, Point{X: 32, Y: 32}, r.Center())
	assert.Equal(t, float32(1024), r.Area())
}
