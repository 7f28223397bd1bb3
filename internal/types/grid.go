package types

import "sort"

// Grid is a simple in-memory BlockSource backed by a map from position
// to block, adapted from the teacher's internal/world chunk/block
// storage (world.World's per-chunk block map) down to the one shape
// this pipeline actually needs: positioned blocks plus a bounding box,
// with no chunking, streaming, or persistence concerns.
type Grid struct {
	blocks map[BlockPosition]InputBlock
	bounds BoundingBox
	dirty  bool
}

// NewGrid creates an empty grid. Bounds grow automatically as blocks
// are set, unless SetBounds is called to pin them explicitly (useful
// for an intentionally air-padded scene).
func NewGrid() *Grid {
	return &Grid{blocks: make(map[BlockPosition]InputBlock)}
}

func (g *Grid) Set(p BlockPosition, block InputBlock) {
	g.blocks[p] = block
	g.dirty = true
}

func (g *Grid) Remove(p BlockPosition) {
	delete(g.blocks, p)
	g.dirty = true
}

// SetBounds pins the grid's reported bounds regardless of which
// positions are actually populated, letting a caller pad the box (the
// light map's BFS needs a one-block air margin, per spec.md §4.5).
func (g *Grid) SetBounds(b BoundingBox) {
	g.bounds = b
	g.dirty = false
}

func (g *Grid) GetBlock(p BlockPosition) (InputBlock, bool) {
	b, ok := g.blocks[p]
	return b, ok
}

func (g *Grid) Bounds() BoundingBox {
	if g.dirty {
		g.recomputeBounds()
	}
	return g.bounds
}

func (g *Grid) recomputeBounds() {
	first := true
	var box BoundingBox
	for p := range g.blocks {
		if first {
			box = BoundingBox{Min: p, Max: p.Add(1, 1, 1)}
			first = false
			continue
		}
		if p.X < box.Min.X {
			box.Min.X = p.X
		}
		if p.Y < box.Min.Y {
			box.Min.Y = p.Y
		}
		if p.Z < box.Min.Z {
			box.Min.Z = p.Z
		}
		if p.X+1 > box.Max.X {
			box.Max.X = p.X + 1
		}
		if p.Y+1 > box.Max.Y {
			box.Max.Y = p.Y + 1
		}
		if p.Z+1 > box.Max.Z {
			box.Max.Z = p.Z + 1
		}
	}
	g.bounds = box
	g.dirty = false
}

// IterBlocks visits every block in a fixed, deterministic order
// (x-major, then y, then z) regardless of Go's randomized map
// iteration, since the mesher's byte-reproducibility guarantee (see
// spec §5, §8) depends on a stable visitation order for non-greedy
// face emission.
func (g *Grid) IterBlocks(visit func(BlockPosition, InputBlock) bool) {
	positions := make([]BlockPosition, 0, len(g.blocks))
	for p := range g.blocks {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		a, b := positions[i], positions[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	for _, p := range positions {
		if !visit(p, g.blocks[p]) {
			return
		}
	}
}

// Count reports how many non-empty positions the grid holds.
func (g *Grid) Count() int { return len(g.blocks) }
