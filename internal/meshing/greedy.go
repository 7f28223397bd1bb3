package meshing

import (
	"sort"

	"schematicmesher/internal/types"
)

// FaceMergeKey is the greedy-merge equality test: two adjacent faces
// coalesce into one rectangle only when every field here matches.
type FaceMergeKey struct {
	Texture string
	Tint    [4]uint8
	AO      [4]uint8
	Light   uint8
}

// QuantizeColor converts a float RGBA color to the u8 form used both
// for the merge key and the recorded MergedQuad tint.
func QuantizeColor(c [4]float32) [4]uint8 {
	return [4]uint8{
		quantizeChannel(c[0]), quantizeChannel(c[1]), quantizeChannel(c[2]), quantizeChannel(c[3]),
	}
}

// QuantizeAO quantizes four per-corner AO factors (each 0..1, 1 meaning
// unoccluded) to u8 for use in a FaceMergeKey, first applying intensity
// as 1 - intensity*(1-factor): two faces only
// merge when their corners agree on shading, so a merged rectangle
// never blends visibly different AO across its footprint.
func QuantizeAO(raw [4]float32, intensity float32) [4]uint8 {
	var out [4]uint8
	for i, r := range raw {
		out[i] = quantizeChannel(1 - intensity*(1-r))
	}
	return out
}

func quantizeChannel(v float32) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255.0 + 0.5)
}

type greedyFace struct {
	key           FaceMergeKey
	isTransparent bool
}

// MergedQuad is one greedy-merged rectangle, in (direction, layer, u,
// v, width, height) form; see PosToLayerCoords for the axis mapping.
type MergedQuad struct {
	Direction     types.Direction
	Layer         int
	UMin, VMin    int
	Width, Height int
	Texture       string
	Tint          [4]uint8
	AO            [4]uint8
	IsTransparent bool
}

// GreedyMesher collects greedy-eligible faces per (direction, layer,
// u, v) cell and merges each layer into rectangles on Merge.
type GreedyMesher struct {
	layers map[types.Direction]map[int]map[[2]int]greedyFace
}

func NewGreedyMesher() *GreedyMesher {
	return &GreedyMesher{layers: make(map[types.Direction]map[int]map[[2]int]greedyFace)}
}

// AddFace records one greedy-eligible face at pos, keyed by its merge
// key and transparency flag. A later call for the same (direction,
// layer, u, v) cell overwrites the earlier one (a caller never adds
// the same cell twice in well-formed input, since each position/face
// pair is emitted once).
func (g *GreedyMesher) AddFace(pos types.BlockPosition, dir types.Direction, key FaceMergeKey, isTransparent bool) {
	layer, u, v := PosToLayerCoords(pos, dir)
	byLayer, ok := g.layers[dir]
	if !ok {
		byLayer = make(map[int]map[[2]int]greedyFace)
		g.layers[dir] = byLayer
	}
	grid, ok := byLayer[layer]
	if !ok {
		grid = make(map[[2]int]greedyFace)
		byLayer[layer] = grid
	}
	grid[[2]int{u, v}] = greedyFace{key: key, isTransparent: isTransparent}
}

// PosToLayerCoords maps a block position and face direction to
// (layer, u, v): the fixed axis value plus the two in-plane axes,
// assigned Up/Down->(y;x,z), North/South->(z;x,y), East/West->(x;z,y).
func PosToLayerCoords(pos types.BlockPosition, dir types.Direction) (layer, u, v int) {
	switch dir {
	case types.Up, types.Down:
		return pos.Y, pos.X, pos.Z
	case types.North, types.South:
		return pos.Z, pos.X, pos.Y
	default: // East, West
		return pos.X, pos.Z, pos.Y
	}
}

// Merge runs the greedy rectangle-expansion pass over every recorded
// layer and returns the merged quads. Directions are visited in
// AllDirections order and layers in ascending order, and the scan
// order *within* a layer is fixed to v-major/u-minor with
// right-then-down expansion per spec.md §4.7/§9, so the returned
// slice, including its order, is reproducible.
func (g *GreedyMesher) Merge() []MergedQuad {
	var out []MergedQuad
	for _, dir := range types.AllDirections {
		byLayer, ok := g.layers[dir]
		if !ok {
			continue
		}
		layers := make([]int, 0, len(byLayer))
		for l := range byLayer {
			layers = append(layers, l)
		}
		sort.Ints(layers)
		for _, layer := range layers {
			out = append(out, mergeLayer(dir, layer, byLayer[layer])...)
		}
	}
	return out
}

func mergeLayer(dir types.Direction, layer int, grid map[[2]int]greedyFace) []MergedQuad {
	if len(grid) == 0 {
		return nil
	}
	uMin, uMax, vMin, vMax := boundsOf(grid)

	width := uMax - uMin + 1
	visited := make([]bool, width*(vMax-vMin+1))
	idx := func(u, v int) int { return (u - uMin) + (v-vMin)*width }

	var result []MergedQuad
	for v := vMin; v <= vMax; v++ {
		for u := uMin; u <= uMax; u++ {
			if visited[idx(u, v)] {
				continue
			}
			face, ok := grid[[2]int{u, v}]
			if !ok {
				continue
			}

			w := 1
			for u+w <= uMax && !visited[idx(u+w, v)] {
				next, ok := grid[[2]int{u + w, v}]
				if !ok || next.key != face.key {
					break
				}
				w++
			}

			h := 1
		rowScan:
			for v+h <= vMax {
				for du := 0; du < w; du++ {
					if visited[idx(u+du, v+h)] {
						break rowScan
					}
					next, ok := grid[[2]int{u + du, v + h}]
					if !ok || next.key != face.key {
						break rowScan
					}
				}
				h++
			}

			for dv := 0; dv < h; dv++ {
				for du := 0; du < w; du++ {
					visited[idx(u+du, v+dv)] = true
				}
			}

			result = append(result, MergedQuad{
				Direction: dir, Layer: layer,
				UMin: u, VMin: v, Width: w, Height: h,
				Texture: face.key.Texture, Tint: face.key.Tint, AO: face.key.AO,
				IsTransparent: face.isTransparent,
			})
		}
	}
	return result
}

func boundsOf(grid map[[2]int]greedyFace) (uMin, uMax, vMin, vMax int) {
	first := true
	for k := range grid {
		if first {
			uMin, uMax, vMin, vMax = k[0], k[0], k[1], k[1]
			first = false
			continue
		}
		if k[0] < uMin {
			uMin = k[0]
		}
		if k[0] > uMax {
			uMax = k[0]
		}
		if k[1] < vMin {
			vMin = k[1]
		}
		if k[1] > vMax {
			vMax = k[1]
		}
	}
	return
}

// WorldPositions computes the 4 world-space corners of a merged quad,
// in the same winding order a full-cube element face would use, scaled
// from the per-block unit cube to the merged rectangle's footprint.
func (q MergedQuad) WorldPositions() [4][3]float32 {
	uMin, vMin := float32(q.UMin), float32(q.VMin)
	uMax, vMax := float32(q.UMin+q.Width), float32(q.VMin+q.Height)
	layer := float32(q.Layer)

	switch q.Direction {
	case types.Up:
		y := layer + 1
		return [4][3]float32{{uMin, y, vMin}, {uMax, y, vMin}, {uMax, y, vMax}, {uMin, y, vMax}}
	case types.Down:
		y := layer
		return [4][3]float32{{uMin, y, vMax}, {uMax, y, vMax}, {uMax, y, vMin}, {uMin, y, vMin}}
	case types.North:
		z := layer
		return [4][3]float32{{uMax, vMax, z}, {uMin, vMax, z}, {uMin, vMin, z}, {uMax, vMin, z}}
	case types.South:
		z := layer + 1
		return [4][3]float32{{uMin, vMax, z}, {uMax, vMax, z}, {uMax, vMin, z}, {uMin, vMin, z}}
	case types.West:
		x := layer
		return [4][3]float32{{x, vMax, uMin}, {x, vMax, uMax}, {x, vMin, uMax}, {x, vMin, uMin}}
	default: // East
		x := layer + 1
		return [4][3]float32{{x, vMax, uMax}, {x, vMax, uMin}, {x, vMin, uMin}, {x, vMin, uMax}}
	}
}

// CornerBlockPositions returns the 4 block positions "owning" each
// corner of the merged rectangle, in the same order as WorldPositions,
// for AO resampling over the merged footprint.
func (q MergedQuad) CornerBlockPositions() [4]types.BlockPosition {
	uMin, vMin := q.UMin, q.VMin
	uMax, vMax := q.UMin+q.Width-1, q.VMin+q.Height-1
	layer := q.Layer

	fromLayerCoords := func(u, v int) types.BlockPosition {
		switch q.Direction {
		case types.Up, types.Down:
			return types.BlockPosition{X: u, Y: layer, Z: v}
		case types.North, types.South:
			return types.BlockPosition{X: u, Y: v, Z: layer}
		default: // East, West
			return types.BlockPosition{X: layer, Y: v, Z: u}
		}
	}

	switch q.Direction {
	case types.Up:
		return [4]types.BlockPosition{fromLayerCoords(uMin, vMin), fromLayerCoords(uMax, vMin), fromLayerCoords(uMax, vMax), fromLayerCoords(uMin, vMax)}
	case types.Down:
		return [4]types.BlockPosition{fromLayerCoords(uMin, vMax), fromLayerCoords(uMax, vMax), fromLayerCoords(uMax, vMin), fromLayerCoords(uMin, vMin)}
	case types.North:
		return [4]types.BlockPosition{fromLayerCoords(uMax, vMax), fromLayerCoords(uMin, vMax), fromLayerCoords(uMin, vMin), fromLayerCoords(uMax, vMin)}
	case types.South:
		return [4]types.BlockPosition{fromLayerCoords(uMin, vMax), fromLayerCoords(uMax, vMax), fromLayerCoords(uMax, vMin), fromLayerCoords(uMin, vMin)}
	case types.West:
		return [4]types.BlockPosition{fromLayerCoords(uMin, vMax), fromLayerCoords(uMax, vMax), fromLayerCoords(uMax, vMin), fromLayerCoords(uMin, vMin)}
	default: // East
		return [4]types.BlockPosition{fromLayerCoords(uMax, vMax), fromLayerCoords(uMin, vMax), fromLayerCoords(uMin, vMin), fromLayerCoords(uMax, vMin)}
	}
}
