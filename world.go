package stride

import (
	"fmt"
	"math"

	"github.com/akmonengine/stride/actor"
	"github.com/akmonengine/stride/collider"
	"github.com/akmonengine/stride/resolve"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DEFAULT_WORKERS  = 1
	DEFAULT_SUBSTEPS = 1
	// DEFAULT_MAX_SUBSTEP is the longest distance a character travels in a
	// single resolve call
	DEFAULT_MAX_SUBSTEP = 0.5
)

// maxPieces caps how many resolve calls one substep may be split into
const maxPieces = 64

// blockedEpsilon is how much of a piece must be removed before its axis counts as stopped
const blockedEpsilon = 1e-9

// queryMargin grows the broad-phase box past every resolver tolerance
const queryMargin = 0.1

type World struct {
	// Static level geometry
	Colliders []collider.Collider
	// Kinematic characters moved each step
	Characters []*actor.Character
	// Gravity acceleration (m/s²)
	Gravity mgl64.Vec3
	// Config is shared by every resolve call, usually resolve.DefaultConfig()
	Config resolve.Config
	// SpatialGrid is optional; without it every collider is scanned
	SpatialGrid *SpatialGrid
	Workers     int
	// Substeps splits dt into equal integration steps
	Substeps int
	// MaxSubstep splits a substep displacement longer than this into several
	// resolve calls so that thin colliders are not skipped
	MaxSubstep float64

	Events Events

	indexed int
	dirty   bool
}

// characterStep holds the per-character slot written by one worker.
// The worker only touches sim; the character is overwritten in the commit phase.
type characterStep struct {
	character *actor.Character
	sim       actor.Character
	result    resolve.Result
	err       error
}

// AddCollider adds a static collider to the world
func (w *World) AddCollider(c collider.Collider) {
	w.Colliders = append(w.Colliders, c)
	w.dirty = true
}

// RemoveCollider removes a static collider from the world
func (w *World) RemoveCollider(c collider.Collider) {
	k := -1
	for i, other := range w.Colliders {
		if other == c {
			k = i
			break
		}
	}

	if k != -1 {
		w.Colliders = append(w.Colliders[:k], w.Colliders[k+1:]...)
		w.dirty = true
	}

	w.Events.forgetCollider(c)
}

// AddCharacter adds a character to the world
func (w *World) AddCharacter(character *actor.Character) {
	w.Characters = append(w.Characters, character)
}

// RemoveCharacter removes a character from the world
func (w *World) RemoveCharacter(character *actor.Character) {
	k := -1
	for i, c := range w.Characters {
		if c == character {
			k = i
			break
		}
	}

	if k != -1 {
		w.Characters = append(w.Characters[:k], w.Characters[k+1:]...)
	}

	w.Events.forget(character)
}

// Step moves every character by its velocity over dt. A malformed collider
// or character aborts the step and leaves every character as it was.
func (w *World) Step(dt float64) error {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)
	w.Substeps = max(DEFAULT_SUBSTEPS, w.Substeps)
	if w.MaxSubstep <= 0 {
		w.MaxSubstep = DEFAULT_MAX_SUBSTEP
	}

	// Phase 1: Broad phase index, rebuilt only when the level changed
	if err := w.buildGrid(); err != nil {
		return err
	}

	steps := make([]*characterStep, len(w.Characters))
	for i, character := range w.Characters {
		steps[i] = &characterStep{character: character, sim: *character}
	}

	// Phase 2: Resolve, characters are independent
	task(w.Workers, steps, func(step *characterStep) {
		w.resolveCharacter(dt, step)
	})

	for _, step := range steps {
		if step.err != nil {
			return step.err
		}
	}

	// Phase 3: Commit positions and record events in character order
	for _, step := range steps {
		*step.character = step.sim
		w.Events.recordResult(step.character, step.result)
	}

	w.Events.flush(w.Characters)

	return nil
}

func (w *World) buildGrid() error {
	if !w.dirty && w.indexed == len(w.Colliders) {
		return nil
	}

	for i, c := range w.Colliders {
		if collider.IsNil(c) {
			continue
		}
		if err := collider.Validate(c); err != nil {
			return fmt.Errorf("stride: collider %d: %w", i, err)
		}
	}

	if w.SpatialGrid != nil {
		w.SpatialGrid.Clear()
		for i, c := range w.Colliders {
			if collider.IsNil(c) {
				continue
			}
			w.SpatialGrid.Insert(i, c.Bounds())
		}
		w.SpatialGrid.SortCells()
	}

	w.indexed = len(w.Colliders)
	w.dirty = false

	return nil
}

func (w *World) resolveCharacter(dt float64, step *characterStep) {
	sim := &step.sim
	if !sim.AABB().Valid() {
		step.err = fmt.Errorf("stride: character %v: %w", sim.Id, resolve.ErrInvalidActor)
		return
	}

	h := dt / float64(w.Substeps)
	total := resolve.Result{GroundHeight: math.Inf(-1)}

	for range w.Substeps {
		displacement := sim.Integrate(h, w.Gravity)

		moved, last, err := w.resolvePieces(sim, displacement, &total)
		if err != nil {
			step.err = fmt.Errorf("stride: character %v: %w", sim.Id, err)
			return
		}

		sim.Apply(displacement, moved, last.OnGround, last.OnSlope)
		total.Offset = total.Offset.Add(moved)
		total.OnGround = last.OnGround
		total.OnSlope = last.OnSlope
		total.SlopeCollider = last.SlopeCollider
		total.GroundCollider = last.GroundCollider
		total.GroundHeight = last.GroundHeight
	}

	step.result = total
}

// resolvePieces moves sim's box through displacement in pieces no longer
// than MaxSubstep. It returns the summed offset and the last piece's result;
// blockers are accumulated into total.
func (w *World) resolvePieces(sim *actor.Character, displacement mgl64.Vec3, total *resolve.Result) (mgl64.Vec3, resolve.Result, error) {
	n := pieceCount(displacement.Len(), w.MaxSubstep)
	piece := displacement.Mul(1 / float64(n))

	var moved mgl64.Vec3
	var last resolve.Result
	for range n {
		box := sim.AABB().Translate(moved)

		colliders := w.Colliders
		query := box.Union(box.Translate(piece)).Expand(queryMargin)
		if w.SpatialGrid != nil && query.Valid() {
			colliders = w.SpatialGrid.Query(query, w.Colliders)
		}

		cfg := w.Config.WithPrevBottomY(box.Min.Y())
		result, err := resolve.ResolveMovementWithSlopes(box, piece, colliders, cfg)
		if err != nil {
			return moved, last, err
		}

		moved = moved.Add(result.Offset)
		last = result
		if result.Collided {
			total.Collided = true
			total.CollidedWith = result.CollidedWith
		}
		for _, blocker := range result.Blockers {
			appendUnique(&total.Blockers, blocker)
		}

		// a stopped axis stays stopped for the rest of the substep
		for i := 0; i < 3; i++ {
			if (piece[i] > 0 && result.Offset[i] < piece[i]-blockedEpsilon) ||
				(piece[i] < 0 && result.Offset[i] > piece[i]+blockedEpsilon) {
				piece[i] = 0
			}
		}
	}

	return moved, last, nil
}

// pieceCount returns how many resolve calls a displacement of length needs
func pieceCount(length, maxSubstep float64) int {
	if math.IsNaN(length) || math.IsInf(length, 0) || length <= maxSubstep {
		return 1
	}

	return min(maxPieces, int(math.Ceil(length/maxSubstep)))
}

func appendUnique(list *[]collider.Collider, c collider.Collider) {
	for _, other := range *list {
		if other == c {
			return
		}
	}
	*list = append(*list, c)
}
