package meshing

import (
	"strings"

	"schematicmesher/internal/types"
)

// LightMap holds the per-position block-light and sky-light levels
// (0-15) computed once for a region and consulted while shading faces.
// It is built and discarded within a single mesh call like every other
// piece of derived state.
type LightMap struct {
	block    map[types.BlockPosition]int
	sky      map[types.BlockPosition]int
	emissive map[types.BlockPosition]bool
}

// emissionLevel gives the block-light value a block itself emits.
// Most entries are state-independent; lit furnaces/lamps/candles and
// sea pickles need the block's properties to pick the right level.
func emissionLevel(block types.InputBlock) int {
	id := block.BlockID()
	if id == "candle" || strings.HasSuffix(id, "_candle") {
		if block.Properties["lit"] != "true" {
			return 0
		}
		return minInt(3*candleCount(block), 15)
	}
	switch id {
	case "glowstone", "jack_o_lantern", "sea_lantern", "beacon", "conduit", "lava", "fire", "torch", "wall_torch":
		return 15
	case "redstone_torch", "redstone_wall_torch":
		return 7
	case "soul_torch", "soul_wall_torch", "soul_lantern", "soul_fire":
		return 10
	case "lantern":
		return 15
	case "end_rod":
		return 14
	case "furnace", "blast_furnace", "smoker":
		if block.Properties["lit"] == "true" {
			return 13
		}
		return 0
	case "redstone_lamp":
		if block.Properties["lit"] == "true" {
			return 15
		}
		return 0
	case "sea_pickle":
		if block.Properties["waterlogged"] != "true" {
			return 0
		}
		return 3 * candleCount(block)
	default:
		return 0
	}
}

func candleCount(block types.InputBlock) int {
	v, ok := block.Properties["candles"]
	if !ok {
		v, ok = block.Properties["pickles"]
		if !ok {
			return 1
		}
	}
	n := 0
	for _, ch := range v {
		if ch < '0' || ch > '9' {
			return 1
		}
		n = n*10 + int(ch-'0')
	}
	if n == 0 {
		return 1
	}
	return n
}

// blockOpacity is the light-reduction cost of passing through a block,
// used as the BFS propagation divisor. Fully opaque blocks stop light
// (opacity 15 means "blocks everything"); everything else is the usual
// single-level cost, except water which attenuates extra.
func blockOpacity(block types.InputBlock, op Opacity) int {
	if block.IsAir() {
		return 0
	}
	if block.BlockID() == "water" {
		return 2
	}
	if op.Opaque {
		return 15
	}
	return 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ComputeLightMap BFS-floods block light from every emitting block and
// sky light down from the configured top light level, saturating each
// propagation step by max(1, neighbor_opacity).
func ComputeLightMap(source types.BlockSource, opacityOf func(types.InputBlock) Opacity, skyLightLevel int, enableBlock, enableSky bool) *LightMap {
	lm := &LightMap{block: make(map[types.BlockPosition]int), sky: make(map[types.BlockPosition]int), emissive: make(map[types.BlockPosition]bool)}
	bounds := source.Bounds()

	source.IterBlocks(func(p types.BlockPosition, b types.InputBlock) bool {
		if emissionLevel(b) > 0 {
			lm.emissive[p] = true
		}
		return true
	})

	if enableBlock {
		type node struct {
			pos   types.BlockPosition
			level int
		}
		queue := []node{}
		source.IterBlocks(func(p types.BlockPosition, b types.InputBlock) bool {
			if lvl := emissionLevel(b); lvl > 0 {
				lm.block[p] = lvl
				queue = append(queue, node{p, lvl})
			}
			return true
		})
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, d := range types.AllDirections {
				np := cur.pos.Neighbor(d)
				if !bounds.Contains(np) {
					continue
				}
				nb, _ := source.GetBlock(np)
				cost := minInt15(1, blockOpacity(nb, opacityOf(nb)))
				next := cur.level - cost
				if next <= 0 {
					continue
				}
				if existing, ok := lm.block[np]; ok && existing >= next {
					continue
				}
				lm.block[np] = next
				queue = append(queue, node{np, next})
			}
		}
	}

	if enableSky {
		computeSkyLight(source, opacityOf, skyLightLevel, lm)
	}

	return lm
}

func minInt15(a, b int) int {
	if b > a {
		return b
	}
	return a
}

// computeSkyLight walks each column down from the top of the bounds,
// seeding every cell with the configured sky level until the first
// opaque block, then spreads the seeded light to all neighbors with
// the same BFS used for block light.
func computeSkyLight(source types.BlockSource, opacityOf func(types.InputBlock) Opacity, skyLevel int, lm *LightMap) {
	bounds := source.Bounds()
	type node struct {
		pos   types.BlockPosition
		level int
	}
	var queue []node

	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		for z := bounds.Min.Z; z < bounds.Max.Z; z++ {
			level := skyLevel
			for y := bounds.Max.Y - 1; y >= bounds.Min.Y; y-- {
				p := types.BlockPosition{X: x, Y: y, Z: z}
				b, _ := source.GetBlock(p)
				cost := blockOpacity(b, opacityOf(b))
				if cost >= 15 {
					level = 0
				} else if cost > 0 {
					level = maxInt(0, level-cost)
				}
				if level > 0 {
					if existing, ok := lm.sky[p]; !ok || existing < level {
						lm.sky[p] = level
						queue = append(queue, node{p, level})
					}
				}
			}
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range types.AllDirections {
			np := cur.pos.Neighbor(d)
			if !bounds.Contains(np) {
				continue
			}
			nb, _ := source.GetBlock(np)
			cost := minInt15(1, blockOpacity(nb, opacityOf(nb)))
			next := cur.level - cost
			if next <= 0 {
				continue
			}
			if existing, ok := lm.sky[np]; ok && existing >= next {
				continue
			}
			lm.sky[np] = next
			queue = append(queue, node{np, next})
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// LevelAt returns the combined 0-15 light level at p, taking the
// brighter of block light and sky light (as vanilla does).
func (lm *LightMap) LevelAt(p types.BlockPosition) int {
	level := lm.block[p]
	if sky := lm.sky[p]; sky > level {
		level = sky
	}
	return level
}

// IsEmissive reports whether the block at p emits its own light; such
// blocks render at full brightness with no ambient occlusion,
// regardless of the computed light level at their position (a torch's
// own faces shouldn't read as dim just because it sits in a dark
// corner).
func (lm *LightMap) IsEmissive(p types.BlockPosition) bool {
	return lm.emissive[p]
}

// Brightness converts a 0-15 light level to the 0..1 curve vanilla's
// client uses, with ambient controlling the minimum brightness at
// level 0 (dimension ambient light, 0 for the overworld).
func Brightness(level int, ambient float32) float32 {
	ratio := float32(level) / 15.0
	return ambient + (1-ambient)*(ratio/(4-3*ratio))
}
