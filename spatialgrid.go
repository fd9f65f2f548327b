package stride

import (
	"math"
	"sort"

	"github.com/akmonengine/stride/actor"
	"github.com/akmonengine/stride/collider"
	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - Coordinates of a cell on the XZ plane
type CellKey struct {
	X, Z int
}

// Cell - Collider indices stored in one cell
type Cell struct {
	colliderIndices []int
}

// SpatialGrid - Uniform hashed grid over XZ, the broad phase for static colliders.
// Levels are mostly flat, so Y is left to the exact bounds test.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid - Creates a grid of numCells buckets, rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].colliderIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo - Rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - Inserts a collider index in every cell its bounds cover
func (sg *SpatialGrid) Insert(colliderIndex int, bounds actor.AABB) {
	minCell := sg.worldToCell(bounds.Min)
	maxCell := sg.worldToCell(bounds.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for z := minCell.Z; z <= maxCell.Z; z++ {
			cellIdx := sg.hashCell(CellKey{x, z})

			sg.cells[cellIdx].colliderIndices = append(
				sg.cells[cellIdx].colliderIndices,
				colliderIndex,
			)
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].colliderIndices = sg.cells[i].colliderIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].colliderIndices) > 1 {
			sort.Ints(sg.cells[i].colliderIndices)
		}
	}
}

// Query - Returns the colliders whose bounds overlap box, in ascending index
// order, so the resolver sees them in the same order as a full linear scan.
// Query only reads the grid and is safe to call from several workers.
func (sg *SpatialGrid) Query(box actor.AABB, colliders []collider.Collider) []collider.Collider {
	if !box.Valid() {
		return nil
	}

	minCell := sg.worldToCell(box.Min)
	maxCell := sg.worldToCell(box.Max)

	// A box covering more cells than the grid holds visits every bucket anyway
	if (maxCell.X-minCell.X+1)*(maxCell.Z-minCell.Z+1) > len(sg.cells) {
		return overlapping(box, colliders)
	}

	indices := make([]int, 0, 16)
	for x := minCell.X; x <= maxCell.X; x++ {
		for z := minCell.Z; z <= maxCell.Z; z++ {
			cellIdx := sg.hashCell(CellKey{x, z})
			indices = append(indices, sg.cells[cellIdx].colliderIndices...)
		}
	}
	sort.Ints(indices)

	found := make([]collider.Collider, 0, len(indices))
	last := -1
	for _, idx := range indices {
		// Avoid duplicates from colliders spanning several cells
		if idx == last {
			continue
		}
		last = idx

		if idx >= len(colliders) || collider.IsNil(colliders[idx]) {
			continue
		}
		if colliders[idx].Bounds().Overlaps(box) {
			found = append(found, colliders[idx])
		}
	}

	return found
}

// overlapping - Linear scan equivalent of Query
func overlapping(box actor.AABB, colliders []collider.Collider) []collider.Collider {
	found := make([]collider.Collider, 0, len(colliders))
	for _, c := range colliders {
		if collider.IsNil(c) {
			continue
		}
		if c.Bounds().Overlaps(box) {
			found = append(found, c)
		}
	}

	return found
}

// worldToCell - Converts a world position to XZ cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell - Hashes a cell to an index in the cells array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
