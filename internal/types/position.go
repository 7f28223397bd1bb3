package types

// BlockPosition addresses a single block within a region by integer
// coordinates. It is intentionally a plain value type — positions are
// used as map keys throughout block iteration and light propagation.
type BlockPosition struct {
	X, Y, Z int
}

func (p BlockPosition) Neighbor(d Direction) BlockPosition {
	off := d.Offset()
	return BlockPosition{X: p.X + off[0], Y: p.Y + off[1], Z: p.Z + off[2]}
}

func (p BlockPosition) Add(dx, dy, dz int) BlockPosition {
	return BlockPosition{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// BoundingBox is an inclusive-exclusive axis-aligned region of block
// positions: blocks with X in [Min.X, Max.X), etc. are contained.
type BoundingBox struct {
	Min, Max BlockPosition
}

func BoundingBoxFromPoints(a, b BlockPosition) BoundingBox {
	box := BoundingBox{Min: a, Max: b}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}

func (b BoundingBox) Dimensions() (dx, dy, dz int) {
	return b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z
}

func (b BoundingBox) Contains(p BlockPosition) bool {
	return p.X >= b.Min.X && p.X < b.Max.X &&
		p.Y >= b.Min.Y && p.Y < b.Max.Y &&
		p.Z >= b.Min.Z && p.Z < b.Max.Z
}
