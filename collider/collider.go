// Package collider defines the static geometry a character can run into.
//
// Every collider answers the same three questions for the resolver: its
// broad-phase bounds, whether it stops a swept box on a horizontal axis, and
// which walkable surface it offers under the box. Boxes and slopes only
// differ in how they answer.
package collider

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/akmonengine/stride/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the strict-intersection margin used for horizontal blocking
const Epsilon = 1e-4

var (
	ErrNilCollider   = errors.New("collider: nil collider")
	ErrInvalidBounds = errors.New("collider: invalid bounds")
)

// Probe describes the swept actor a collider is tested against
type Probe struct {
	// Box is the actor box after the tentative move
	Box actor.AABB
	// Center is the center of Box
	Center mgl64.Vec3
	// Previous is the actor box at the start of the resolve call
	Previous actor.AABB
	// Descending is true when the requested vertical displacement is <= 0
	Descending bool

	MinVerticalOverlap  float64
	AboveTolerance      float64
	SlopeGroundDistance float64
}

// Surface is a walkable surface offered by a collider under a probe
type Surface struct {
	// Top is the height the actor's bottom snaps to
	Top float64
	// Underside is the lowest point of the collider below Top, used for
	// hits from below
	Underside float64
	// Approach is the height the actor's previous bottom is compared with to
	// tell a landing from an underside hit
	Approach float64
}

// Collider is implemented by every static shape the resolver handles
type Collider interface {
	// Bounds returns the broad-phase box
	Bounds() actor.AABB
	// BlocksHorizontal reports whether the swept box in p is stopped by the collider
	BlocksHorizontal(p Probe) bool
	// Ground returns the surface under p, if the collider is a ground candidate
	Ground(p Probe) (Surface, bool)
}

// Slope is a collider whose walkable surface is a height field over XZ
type Slope interface {
	Collider
	// HeightAt returns the surface height at (x, z), false outside the footprint
	HeightAt(x, z float64) (float64, bool)
	IntersectsBox(box actor.AABB) bool
	ShouldBlockHorizontalMovement(box actor.AABB, x, z float64) bool
}

// Validate fails fast on colliders the resolver cannot trust. A silently
// skipped collider turns into a hole in the level.
func Validate(c Collider) error {
	if c == nil {
		return ErrNilCollider
	}
	switch v := reflect.ValueOf(c); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return ErrNilCollider
		}
	}

	bounds := c.Bounds()
	if !bounds.Valid() {
		return fmt.Errorf("%w: min=%v max=%v", ErrInvalidBounds, bounds.Min, bounds.Max)
	}

	return nil
}

// IsNil reports whether c is nil or holds a nil pointer of any implementation
func IsNil(c Collider) bool {
	return errors.Is(Validate(c), ErrNilCollider)
}

// IsOneWay reports whether c only supports actors from above. One-way
// colliders are never walls or ceilings.
func IsOneWay(c Collider) bool {
	ow, ok := c.(interface{ IsOneWay() bool })
	return ok && ow.IsOneWay()
}
