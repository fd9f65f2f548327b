package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNewCharacter(t *testing.T) {
	c := NewCharacter(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0.5, 1, 0.5})

	assert.Equal(t, 1.0, c.Bottom())
	assert.Equal(t, 1.0, c.PreviousBottom())
	assert.Equal(t, AABB{Min: mgl64.Vec3{0.5, 1, 2.5}, Max: mgl64.Vec3{1.5, 3, 3.5}}, c.AABB())
}

func TestCharacterIntegrate(t *testing.T) {
	c := NewCharacter(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
	c.Velocity = mgl64.Vec3{1, 0, 0}

	displacement := c.Integrate(0.5, mgl64.Vec3{0, -10, 0})

	assert.Equal(t, mgl64.Vec3{1, -5, 0}, c.Velocity)
	assert.Equal(t, mgl64.Vec3{0.5, -2.5, 0}, displacement)
	assert.Equal(t, mgl64.Vec3{0, 2, 0}, c.Position, "Integrate must not move the character")
	assert.Equal(t, 1.5, c.PreviousBottom())
}

func TestCharacterApply(t *testing.T) {
	tests := []struct {
		name         string
		velocity     mgl64.Vec3
		displacement mgl64.Vec3
		offset       mgl64.Vec3
		onGround     bool
		expectedVel  mgl64.Vec3
	}{
		{
			name:         "unobstructed",
			velocity:     mgl64.Vec3{2, -1, 3},
			displacement: mgl64.Vec3{0.2, -0.1, 0.3},
			offset:       mgl64.Vec3{0.2, -0.1, 0.3},
			expectedVel:  mgl64.Vec3{2, -1, 3},
		},
		{
			name:         "blocked on X keeps Z",
			velocity:     mgl64.Vec3{2, 0, 3},
			displacement: mgl64.Vec3{0.2, 0, 0.3},
			offset:       mgl64.Vec3{0, 0, 0.3},
			expectedVel:  mgl64.Vec3{0, 0, 3},
		},
		{
			name:         "blocked on negative Z",
			velocity:     mgl64.Vec3{0, 0, -3},
			displacement: mgl64.Vec3{0, 0, -0.3},
			offset:       mgl64.Vec3{0, 0, 0},
			expectedVel:  mgl64.Vec3{0, 0, 0},
		},
		{
			name:         "head hit stops the jump",
			velocity:     mgl64.Vec3{0, 4, 0},
			displacement: mgl64.Vec3{0, 0.4, 0},
			offset:       mgl64.Vec3{0, 0.1, 0},
			expectedVel:  mgl64.Vec3{0, 0, 0},
		},
		{
			name:         "landing",
			velocity:     mgl64.Vec3{1, -6, 0},
			displacement: mgl64.Vec3{0.1, -0.6, 0},
			offset:       mgl64.Vec3{0.1, -0.55, 0},
			onGround:     true,
			expectedVel:  mgl64.Vec3{1, 0, 0},
		},
		{
			name:         "pushed along the motion is kept",
			velocity:     mgl64.Vec3{0, -1, 0},
			displacement: mgl64.Vec3{0, -0.1, 0},
			offset:       mgl64.Vec3{0, -0.2, 0},
			expectedVel:  mgl64.Vec3{0, -1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCharacter(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
			c.Velocity = tt.velocity

			c.Apply(tt.displacement, tt.offset, tt.onGround, false)

			assert.Equal(t, tt.expectedVel, c.Velocity)
			assert.Equal(t, mgl64.Vec3{0, 1, 0}.Add(tt.offset), c.Position)
			assert.Equal(t, tt.onGround, c.OnGround)
		})
	}
}
