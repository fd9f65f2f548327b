package collider

import (
	"github.com/akmonengine/stride/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Box is a static axis-aligned box: walls, floors and platforms.
// A OneWay box only catches actors falling onto its top; it never blocks
// sideways and can be jumped through from below.
type Box struct {
	actor.AABB
	OneWay bool
}

var _ Collider = (*Box)(nil)

// NewBox creates a solid box collider
func NewBox(min, max mgl64.Vec3) *Box {
	return &Box{AABB: actor.AABB{Min: min, Max: max}}
}

func (b *Box) Bounds() actor.AABB {
	return b.AABB
}

// BlocksHorizontal requires a real vertical overlap so that standing on (or
// brushing under) a neighbouring box does not stop sideways movement
func (b *Box) BlocksHorizontal(p Probe) bool {
	if b.OneWay {
		return false
	}
	if !p.Box.Intersects(b.AABB, Epsilon) {
		return false
	}

	return p.Box.VerticalOverlap(b.AABB) > p.MinVerticalOverlap
}

// Ground offers the box top when the footprints overlap and the top is not
// above the actor's pre-move top by more than AboveTolerance
func (b *Box) Ground(p Probe) (Surface, bool) {
	if b.OneWay && !p.Descending {
		return Surface{}, false
	}
	if !p.Box.OverlapsXZ(b.AABB) {
		return Surface{}, false
	}
	if b.Max.Y() > p.Previous.Max.Y()+p.AboveTolerance {
		return Surface{}, false
	}

	return Surface{Top: b.Max.Y(), Underside: b.Min.Y(), Approach: b.Max.Y()}, true
}

func (b *Box) IsOneWay() bool {
	return b.OneWay
}
