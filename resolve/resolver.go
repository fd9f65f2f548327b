// Package resolve moves a kinematic actor box through static colliders.
//
// Horizontal movement is resolved one axis at a time, X then Z, so that an
// actor moving diagonally into a wall keeps sliding along it. Vertical
// movement is resolved last: the highest ground candidate under the actor
// decides whether it lands, stays airborne or hit something from below.
//
// The resolver holds no state between calls. Everything it does is
// reported through the returned Result and the optional Tracer.
package resolve

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/stride/actor"
	"github.com/akmonengine/stride/collider"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrInvalidActor    = errors.New("resolve: invalid actor box")
	ErrInvalidMovement = errors.New("resolve: non-finite movement")
)

// ResolveMovement resolves movement against static boxes only.
// Nil entries are skipped.
func ResolveMovement(box actor.AABB, movement mgl64.Vec3, boxes []*collider.Box, cfg Config) (Result, error) {
	colliders := make([]collider.Collider, len(boxes))
	for i, b := range boxes {
		if b != nil {
			colliders[i] = b
		}
	}

	return Resolve(box, movement, colliders, cfg)
}

// ResolveMovementWithSlopes resolves movement against a mixed list of boxes
// and slopes. The highest ground surface of either kind wins.
func ResolveMovementWithSlopes(box actor.AABB, movement mgl64.Vec3, colliders []collider.Collider, cfg Config) (Result, error) {
	return Resolve(box, movement, colliders, cfg)
}

// sweep carries the per-call working state
type sweep struct {
	origin mgl64.Vec3
	start  actor.AABB
	cfg    Config
	tracer Tracer
}

// box returns the actor box displaced by offset. A zero offset gives back
// the starting box bit for bit.
func (s *sweep) box(offset mgl64.Vec3) actor.AABB {
	return s.start.Translate(offset)
}

func (s *sweep) probe(swept actor.AABB, movement mgl64.Vec3) collider.Probe {
	return collider.Probe{
		Box:                 swept,
		Center:              swept.Center(),
		Previous:            s.start,
		Descending:          movement.Y() <= 0,
		MinVerticalOverlap:  s.cfg.MinVerticalOverlap,
		AboveTolerance:      s.cfg.AboveTolerance,
		SlopeGroundDistance: s.cfg.SlopeGroundDistance,
	}
}

func (s *sweep) trace(event Event) {
	if s.tracer != nil {
		s.tracer.OnStep(event)
	}
}

// Resolve moves box by movement through colliders and returns the corrected
// offset with the ground and collision state. Nil colliders and cfg.Self
// are skipped; any other collider with invalid bounds aborts the call.
func Resolve(box actor.AABB, movement mgl64.Vec3, colliders []collider.Collider, cfg Config) (Result, error) {
	if !box.Valid() {
		return Result{}, fmt.Errorf("%w: min=%v max=%v", ErrInvalidActor, box.Min, box.Max)
	}
	for i := 0; i < 3; i++ {
		if math.IsNaN(movement[i]) || math.IsInf(movement[i], 0) {
			return Result{}, fmt.Errorf("%w: %v", ErrInvalidMovement, movement)
		}
	}

	active := make([]collider.Collider, 0, len(colliders))
	for i, c := range colliders {
		if collider.IsNil(c) || (cfg.Self != nil && c == cfg.Self) {
			continue
		}
		if err := collider.Validate(c); err != nil {
			return Result{}, fmt.Errorf("resolve: collider %d: %w", i, err)
		}
		active = append(active, c)
	}

	s := sweep{
		origin: box.Center(),
		start:  box,
		cfg:    cfg,
		tracer: cfg.tracer(),
	}

	prevBottom := box.Min.Y()
	if cfg.PrevBottomY != nil {
		prevBottom = *cfg.PrevBottomY
	}

	result := Result{GroundHeight: math.Inf(-1)}
	var offset mgl64.Vec3

	// Phase 1: horizontal, X strictly before Z
	for _, axis := range [2]int{0, 2} {
		delta := movement[axis]
		if delta == 0 {
			continue
		}

		offset[axis] = delta
		swept := s.box(offset)
		probe := s.probe(swept, movement)

		var blocker collider.Collider
		for _, c := range active {
			if c.BlocksHorizontal(probe) {
				blocker = c
				break
			}
		}

		if blocker != nil {
			offset[axis] = 0
			result.block(blocker)
		}

		phase := PhaseAxisX
		if axis == 2 {
			phase = PhaseAxisZ
		}
		s.trace(Event{
			Phase:   phase,
			Center:  s.origin.Add(offset),
			Swept:   swept,
			Struck:  blocker,
			Blocked: blocker != nil,
		})
	}

	// Phase 2: vertical and grounding
	offset[1] = movement.Y()
	swept := s.box(offset)
	probe := s.probe(swept, movement)

	var ground collider.Collider
	var surface collider.Surface
	for _, c := range active {
		sf, ok := c.Ground(probe)
		if !ok {
			continue
		}
		// one-way surfaces only exist for actors coming from above
		if collider.IsOneWay(c) && prevBottom < sf.Approach-cfg.LandThreshold {
			continue
		}
		if ground == nil || sf.Top > surface.Top {
			ground = c
			surface = sf
		}
	}

	landing := LandingAirborne
	if ground != nil {
		result.GroundHeight = surface.Top
		distance := swept.Min.Y() - surface.Top

		if prevBottom >= surface.Approach-cfg.LandThreshold {
			// coming from above
			if distance <= cfg.LandThreshold {
				offset[1] += surface.Top - swept.Min.Y()
				result.OnGround = true
				result.GroundCollider = ground
				landing = LandingSnap
				if distance < -cfg.PenetrationAllowance {
					landing = LandingPenetration
				}

				if slope, ok := ground.(collider.Slope); ok {
					result.OnSlope = true
					result.SlopeCollider = slope
				}
			}
		} else if swept.Max.Y() > surface.Underside {
			// already below the surface: never teleport on top of it
			offset[1] += surface.Underside - cfg.PenetrationAllowance - swept.Max.Y()
			result.block(ground)
			landing = LandingUnderside
		}
	}

	s.trace(Event{
		Phase:   PhaseVertical,
		Center:  s.origin.Add(offset),
		Swept:   swept,
		Struck:  ground,
		Blocked: landing == LandingUnderside,
		Landing: landing,
	})

	if movement.Y() > 0 && !result.OnGround && landing != LandingUnderside {
		s.ceiling(&result, &offset, active)
	}

	result.Offset = offset
	center := s.origin.Add(offset)

	if cfg.Watch != nil && cfg.Watch.contains(center) {
		snapshot := result
		event := Event{Phase: PhaseWatch, Center: center, Swept: s.box(offset), Result: &snapshot}
		s.trace(event)
		if cfg.Watch.Break != nil {
			cfg.Watch.Break(event)
		}
	}

	if s.tracer != nil {
		snapshot := result
		s.trace(Event{Phase: PhaseResult, Center: center, Swept: s.box(offset), Result: &snapshot})
	}

	return result, nil
}

// ceiling stops an upward move under the lowest collider bottom above the
// actor's pre-move top, for obstacles too high to be ground candidates
func (s *sweep) ceiling(result *Result, offset *mgl64.Vec3, active []collider.Collider) {
	swept := s.box(*offset)
	minBottom := s.start.Max.Y() - s.cfg.AboveTolerance

	var ceiling collider.Collider
	ceilingBottom := math.Inf(1)
	for _, c := range active {
		if collider.IsOneWay(c) {
			continue
		}
		bounds := c.Bounds()
		if !swept.OverlapsXZ(bounds) || bounds.Min.Y() < minBottom {
			continue
		}
		if bounds.Min.Y() < ceilingBottom {
			ceilingBottom = bounds.Min.Y()
			ceiling = c
		}
	}

	if ceiling == nil || swept.Max.Y() <= ceilingBottom {
		return
	}

	offset[1] += ceilingBottom - s.cfg.PenetrationAllowance - swept.Max.Y()
	result.block(ceiling)

	s.trace(Event{
		Phase:   PhaseCeiling,
		Center:  s.origin.Add(*offset),
		Swept:   swept,
		Struck:  ceiling,
		Blocked: true,
	})
}
