package entity

import (
	"schematicmesher/internal/meshing"
	"schematicmesher/internal/types"
)

// FluidType distinguishes water from lava for texture selection.
type FluidType int

const (
	Water FluidType = iota
	Lava
)

// FluidState is a fluid block's parsed level/source/falling state.
type FluidState struct {
	Type      FluidType
	Amount    int // 1-8, 8 = source/full
	IsSource  bool
	IsFalling bool
}

// FluidStateFromBlock parses block into a FluidState, or reports ok=false
// if it isn't a fluid block.
func FluidStateFromBlock(block types.InputBlock) (FluidState, bool) {
	var fluidType FluidType
	switch block.BlockID() {
	case "water":
		fluidType = Water
	case "lava":
		fluidType = Lava
	default:
		return FluidState{}, false
	}

	level := 0
	if v, ok := block.Properties["level"]; ok {
		level = parseLevel(v)
	}

	isFalling := level >= 8
	var isSource bool
	var amount int
	switch {
	case level == 0:
		isSource, amount = true, 8
	case level < 8:
		isSource, amount = false, 8-level
	default:
		isSource, amount = false, 8
	}

	return FluidState{Type: fluidType, Amount: amount, IsSource: isSource, IsFalling: isFalling}, true
}

func parseLevel(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// OwnHeight is this fluid block's own height in [0,1] before any
// neighbor averaging: full column (1.0) when falling, else amount/9.
func (s FluidState) OwnHeight() float32 {
	if s.IsFalling {
		return 1.0
	}
	return float32(s.Amount) / 9.0
}

func (s FluidState) StillTexture() string {
	if s.Type == Lava {
		return "block/lava_still"
	}
	return "block/water_still"
}

// DirectionShade is Minecraft's fixed per-face fluid lighting factor.
func DirectionShade(dir types.Direction) float32 {
	switch dir {
	case types.Up:
		return 1.0
	case types.Down:
		return 0.5
	case types.North, types.South:
		return 0.8
	default:
		return 0.6
	}
}

func sameFluid(source types.BlockSource, pos types.BlockPosition, fluidType FluidType) bool {
	b, ok := source.GetBlock(pos)
	if !ok {
		return false
	}
	state, ok := FluidStateFromBlock(b)
	return ok && state.Type == fluidType
}

// cornerHeight averages the fluid height at one corner shared by up to
// four blocks, giving extra weight to source-block neighbors so the
// surface stays flat near a source and only slopes where it must.
func cornerHeight(source types.BlockSource, pos types.BlockPosition, state FluidState, dx, dz int) float32 {
	above := pos.Add(0, 1, 0)
	if sameFluid(source, above, state.Type) {
		return 1.0
	}

	offsets := [4][2]int{{0, 0}, {dx, 0}, {0, dz}, {dx, dz}}
	var totalHeight, totalWeight float32

	for _, off := range offsets {
		np := pos.Add(off[0], 0, off[1])
		npAbove := np.Add(0, 1, 0)
		if sameFluid(source, npAbove, state.Type) {
			return 1.0
		}

		nb, ok := source.GetBlock(np)
		if !ok {
			continue
		}
		nf, ok := FluidStateFromBlock(nb)
		if !ok || nf.Type != state.Type {
			continue
		}
		h := nf.OwnHeight()
		weight := float32(1.0)
		if h >= 0.8 {
			weight = 10.0
		}
		totalHeight += h * weight
		totalWeight += weight
	}

	if totalWeight > 0 {
		return totalHeight / totalWeight
	}
	return state.OwnHeight()
}

// CornerHeights returns the four corner heights [NW, NE, SE, SW] for a
// fluid block, averaged with same-fluid neighbors.
func CornerHeights(source types.BlockSource, pos types.BlockPosition, state FluidState) [4]float32 {
	return [4]float32{
		cornerHeight(source, pos, state, -1, -1),
		cornerHeight(source, pos, state, 1, -1),
		cornerHeight(source, pos, state, 1, 1),
		cornerHeight(source, pos, state, -1, 1),
	}
}

// VisibleFaces reports which of [down, up, north, south, west, east]
// need geometry: hidden where the same fluid (or, for the bottom/sides,
// an opaque block) already occludes the face.
func VisibleFaces(source types.BlockSource, pos types.BlockPosition, state FluidState, isOpaque func(types.BlockPosition) bool) [6]bool {
	faces := [6]bool{true, true, true, true, true, true}

	below := pos.Add(0, -1, 0)
	if sameFluid(source, below, state.Type) || isOpaque(below) {
		faces[0] = false
	}
	above := pos.Add(0, 1, 0)
	if sameFluid(source, above, state.Type) {
		faces[1] = false
	}

	sideDirs := [4]types.Direction{types.North, types.South, types.West, types.East}
	for i, dir := range sideDirs {
		off := dir.Offset()
		neighbor := pos.Add(off[0], off[1], off[2])
		if sameFluid(source, neighbor, state.Type) || isOpaque(neighbor) {
			faces[2+i] = false
		}
	}
	return faces
}

const fluidEpsilon = 0.001

// GenerateFluidGeometry emits the top, bottom, and visible side quads
// for one fluid block, sloping the top face's four corners per
// CornerHeights and shading each face by DirectionShade.
func GenerateFluidGeometry(source types.BlockSource, pos types.BlockPosition, state FluidState, isOpaque func(types.BlockPosition) bool, baseColor [4]float32) ([]meshing.Vertex, []uint32, []FaceTexture) {
	var vertices []meshing.Vertex
	var indices []uint32
	var textures []FaceTexture

	faces := VisibleFaces(source, pos, state, isOpaque)
	h := CornerHeights(source, pos, state)
	hNW, hNE, hSE, hSW := h[0], h[1], h[2], h[3]

	x := float32(pos.X) - 0.5
	y := float32(pos.Y) - 0.5
	z := float32(pos.Z) - 0.5

	isTransparent := state.Type == Water
	tex := state.StillTexture()

	shadeColor := func(shade float32) [4]float32 {
		return [4]float32{baseColor[0] * shade, baseColor[1] * shade, baseColor[2] * shade, baseColor[3]}
	}

	if faces[1] {
		color := shadeColor(DirectionShade(types.Up))
		normal := [3]float32{0, 1, 0}
		vStart := uint32(len(vertices))
		vertices = append(vertices,
			meshing.NewVertex([3]float32{x, y + hNW, z}, normal, [2]float32{0, 0}).WithColor(color),
			meshing.NewVertex([3]float32{x + 1, y + hNE, z}, normal, [2]float32{1, 0}).WithColor(color),
			meshing.NewVertex([3]float32{x + 1, y + hSE, z + 1}, normal, [2]float32{1, 1}).WithColor(color),
			meshing.NewVertex([3]float32{x, y + hSW, z + 1}, normal, [2]float32{0, 1}).WithColor(color),
		)
		indices = append(indices, vStart, vStart+3, vStart+2, vStart, vStart+2, vStart+1)
		textures = append(textures, FaceTexture{Texture: tex, IsTransparent: isTransparent})
	}

	if faces[0] {
		color := shadeColor(DirectionShade(types.Down))
		normal := [3]float32{0, -1, 0}
		vStart := uint32(len(vertices))
		vertices = append(vertices,
			meshing.NewVertex([3]float32{x, y + fluidEpsilon, z + 1}, normal, [2]float32{0, 1}).WithColor(color),
			meshing.NewVertex([3]float32{x + 1, y + fluidEpsilon, z + 1}, normal, [2]float32{1, 1}).WithColor(color),
			meshing.NewVertex([3]float32{x + 1, y + fluidEpsilon, z}, normal, [2]float32{1, 0}).WithColor(color),
			meshing.NewVertex([3]float32{x, y + fluidEpsilon, z}, normal, [2]float32{0, 0}).WithColor(color),
		)
		indices = append(indices, vStart, vStart+3, vStart+2, vStart, vStart+2, vStart+1)
		textures = append(textures, FaceTexture{Texture: tex, IsTransparent: isTransparent})
	}

	type sidePlane struct {
		visible            bool
		dir                types.Direction
		a, b               [3]float32 // top-edge endpoints, a at height ha, b at height hb
		ha, hb             float32
	}
	planes := []sidePlane{
		{faces[2], types.North, [3]float32{x + 1, y, z + fluidEpsilon}, [3]float32{x, y, z + fluidEpsilon}, hNE, hNW},
		{faces[3], types.South, [3]float32{x, y, z + 1 - fluidEpsilon}, [3]float32{x + 1, y, z + 1 - fluidEpsilon}, hSW, hSE},
		{faces[4], types.West, [3]float32{x + fluidEpsilon, y, z + 1}, [3]float32{x + fluidEpsilon, y, z}, hSW, hNW},
		{faces[5], types.East, [3]float32{x + 1 - fluidEpsilon, y, z}, [3]float32{x + 1 - fluidEpsilon, y, z + 1}, hNE, hSE},
	}

	for _, p := range planes {
		if !p.visible {
			continue
		}
		color := shadeColor(DirectionShade(p.dir))
		n := p.dir.Normal()
		vStart := uint32(len(vertices))
		vertices = append(vertices,
			meshing.NewVertex(p.a, n, [2]float32{0, 1 - p.ha}).WithColor(color),
			meshing.NewVertex([3]float32{p.a[0], p.a[1] + p.ha, p.a[2]}, n, [2]float32{0, 0}).WithColor(color),
			meshing.NewVertex([3]float32{p.b[0], p.b[1] + p.hb, p.b[2]}, n, [2]float32{1, 0}).WithColor(color),
			meshing.NewVertex(p.b, n, [2]float32{1, 1 - p.hb}).WithColor(color),
		)
		indices = append(indices, vStart, vStart+1, vStart+2, vStart, vStart+2, vStart+3)
		textures = append(textures, FaceTexture{Texture: state.flowTexture(), IsTransparent: isTransparent})
	}

	return vertices, indices, textures
}

func (s FluidState) flowTexture() string {
	if s.Type == Lava {
		return "block/lava_flow"
	}
	return "block/water_flow"
}
