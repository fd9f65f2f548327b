package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func unitBox(x, y, z float64) AABB {
	return AABB{Min: mgl64.Vec3{x, y, z}, Max: mgl64.Vec3{x + 1, y + 1, z + 1}}
}

// =============================================================================
// Construction
// =============================================================================

func TestNewAABBFromCenter(t *testing.T) {
	aabb := NewAABBFromCenter(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0.5, 1, 1.5})

	assert.Equal(t, mgl64.Vec3{0.5, 1, 1.5}, aabb.Min)
	assert.Equal(t, mgl64.Vec3{1.5, 3, 4.5}, aabb.Max)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, aabb.Center())
	assert.Equal(t, mgl64.Vec3{0.5, 1, 1.5}, aabb.HalfExtents())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, aabb.Size())
}

func TestAABBTranslateUnionExpand(t *testing.T) {
	a := unitBox(0, 0, 0)

	moved := a.Translate(mgl64.Vec3{2, -1, 0.5})
	assert.Equal(t, AABB{Min: mgl64.Vec3{2, -1, 0.5}, Max: mgl64.Vec3{3, 0, 1.5}}, moved)
	assert.Equal(t, a, a.Translate(mgl64.Vec3{}))

	assert.Equal(t, AABB{Min: mgl64.Vec3{0, -1, 0}, Max: mgl64.Vec3{3, 1, 1.5}}, a.Union(moved))
	assert.Equal(t, AABB{Min: mgl64.Vec3{-0.25, -0.25, -0.25}, Max: mgl64.Vec3{1.25, 1.25, 1.25}}, a.Expand(0.25))
}

func TestAABBValid(t *testing.T) {
	tests := []struct {
		name     string
		aabb     AABB
		expected bool
	}{
		{"unit", unitBox(0, 0, 0), true},
		{"zero volume", AABB{}, true},
		{"inverted X", AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{0, 1, 1}}, false},
		{"inverted Y", AABB{Min: mgl64.Vec3{0, 1, 0}, Max: mgl64.Vec3{1, 0, 1}}, false},
		{"NaN", AABB{Min: mgl64.Vec3{math.NaN(), 0, 0}, Max: mgl64.Vec3{1, 1, 1}}, false},
		{"infinite", AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, math.Inf(1), 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.aabb.Valid())
		})
	}
}

// =============================================================================
// Overlap tests
// =============================================================================

func TestAABBOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aabb1    AABB
		aabb2    AABB
		expected bool
	}{
		{"separated on X", unitBox(0, 0, 0), unitBox(2, 0, 0), false},
		{"separated on Y", unitBox(0, 0, 0), unitBox(0, -2, 0), false},
		{"separated on Z", unitBox(0, 0, 0), unitBox(0, 0, 2), false},
		{"overlapping", unitBox(0, 0, 0), unitBox(0.5, 0.5, 0.5), true},
		{"contained", AABB{Min: mgl64.Vec3{-5, -5, -5}, Max: mgl64.Vec3{5, 5, 5}}, unitBox(0, 0, 0), true},
		{"face touching", unitBox(0, 0, 0), unitBox(1, 0, 0), true},
		{"corner touching", unitBox(0, 0, 0), unitBox(1, 1, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.aabb1.Overlaps(tt.aabb2))
			assert.Equal(t, tt.expected, tt.aabb2.Overlaps(tt.aabb1), "not symmetric")
		})
	}
}

func TestAABBIntersects(t *testing.T) {
	const eps = 1e-4

	tests := []struct {
		name     string
		aabb1    AABB
		aabb2    AABB
		expected bool
	}{
		{"overlapping", unitBox(0, 0, 0), unitBox(0.5, 0.5, 0.5), true},
		{"face touching", unitBox(0, 0, 0), unitBox(1, 0, 0), false},
		{"overlap within eps", unitBox(0, 0, 0), unitBox(0.99995, 0, 0), false},
		{"overlap beyond eps", unitBox(0, 0, 0), unitBox(0.999, 0, 0), true},
		{"standing on top", unitBox(0, 0, 0), unitBox(0, 1, 0), false},
		{"separated", unitBox(0, 0, 0), unitBox(3, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.aabb1.Intersects(tt.aabb2, eps))
		})
	}
}

func TestAABBOverlapsXZ(t *testing.T) {
	tests := []struct {
		name     string
		aabb1    AABB
		aabb2    AABB
		expected bool
	}{
		{"ignores Y", unitBox(0, 0, 0), unitBox(0.5, 10, 0.5), true},
		{"edge touching on X", unitBox(0, 0, 0), unitBox(1, 0, 0), false},
		{"edge touching on Z", unitBox(0, 0, 0), unitBox(0, 0, -1), false},
		{"separated on Z", unitBox(0, 0, 0), unitBox(0, 0, 2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.aabb1.OverlapsXZ(tt.aabb2))
		})
	}
}

func TestAABBVerticalOverlap(t *testing.T) {
	tests := []struct {
		name     string
		aabb1    AABB
		aabb2    AABB
		expected float64
	}{
		{"half", unitBox(0, 0, 0), unitBox(5, 0.5, 5), 0.5},
		{"touching", unitBox(0, 0, 0), unitBox(0, 1, 0), 0},
		{"apart", unitBox(0, 0, 0), unitBox(0, 3, 0), -2},
		{"contained", AABB{Min: mgl64.Vec3{0, -5, 0}, Max: mgl64.Vec3{1, 5, 1}}, unitBox(0, 0, 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.aabb1.VerticalOverlap(tt.aabb2))
		})
	}
}

func TestAABBContainsPoint(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{"center", mgl64.Vec3{0, 0, 0}, true},
		{"corner", mgl64.Vec3{1, 1, 1}, true},
		{"face center", mgl64.Vec3{0, -1, 0}, true},
		{"outside X", mgl64.Vec3{1.0001, 0, 0}, false},
		{"outside Z", mgl64.Vec3{0, 0, -2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, aabb.ContainsPoint(tt.point), "ContainsPoint(%v)", tt.point)
		})
	}
}
