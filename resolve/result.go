package resolve

import (
	"github.com/akmonengine/stride/collider"
	"github.com/go-gl/mathgl/mgl64"
)

// Result describes what happened to one actor during one resolve call.
// It is built fresh on every call.
type Result struct {
	// Offset is the corrected displacement of the actor center
	Offset mgl64.Vec3

	OnGround bool
	OnSlope  bool
	// SlopeCollider is the slope the actor stands on, when OnSlope
	SlopeCollider collider.Slope
	// GroundCollider is the collider the actor stands on, when OnGround
	GroundCollider collider.Collider
	// GroundHeight is the top of the selected ground surface, -Inf if none
	GroundHeight float64

	Collided bool
	// CollidedWith is the last collider that blocked an axis or was hit from below
	CollidedWith collider.Collider
	// Blockers lists every collider that stopped the actor during the call,
	// in the order they were hit, without duplicates
	Blockers []collider.Collider
}

func (r *Result) block(c collider.Collider) {
	r.Collided = true
	r.CollidedWith = c
	for _, b := range r.Blockers {
		if b == c {
			return
		}
	}
	r.Blockers = append(r.Blockers, c)
}
