// Package tint computes the per-vertex grass/foliage/water/redstone/stem
// color multiplier ("tint") a block model's face applies when its
// tintindex is non-negative.
package tint

import "strings"

// Colors holds the resolved RGBA multipliers for every tintable block
// category, one flat struct so a provider can be built once and reused
// across an entire mesh call.
type Colors struct {
	Grass       [4]float32
	Foliage     [4]float32
	Water       [4]float32
	Redstone    [16][4]float32
	Stem        [8][4]float32
	LilyPad     [4]float32
	CauldronWater [4]float32
}

// DefaultColors approximates the plains biome, the same flat fallback
// used whenever no biome information is available for a block.
func DefaultColors() Colors {
	c := Colors{
		Grass:         [4]float32{0.56, 0.74, 0.35, 1.0},
		Foliage:       [4]float32{0.47, 0.66, 0.23, 1.0},
		Water:         [4]float32{0.247, 0.463, 0.894, 1.0},
		LilyPad:       [4]float32{0.204, 0.471, 0.204, 1.0},
		CauldronWater: [4]float32{0.247, 0.463, 0.894, 1.0},
	}
	c.Redstone = defaultRedstoneColors()
	c.Stem = defaultStemColors()
	return c
}

func defaultRedstoneColors() [16][4]float32 {
	var out [16][4]float32
	for power := 0; power < 16; power++ {
		ratio := float32(power) / 15.0
		out[power] = [4]float32{0.3 + 0.7*ratio, 0.1 * ratio, 0.1 * ratio, 1.0}
	}
	return out
}

func defaultStemColors() [8][4]float32 {
	var out [8][4]float32
	for stage := 0; stage < 8; stage++ {
		t := float32(stage) / 7.0
		out[stage] = [4]float32{0.2 + 0.6*t, 0.7 - 0.2*t, 0.1, 1.0}
	}
	return out
}

// ForBiome overrides DefaultColors' grass/foliage/water fields for a
// handful of biomes whose palette differs noticeably from plains. Any
// biome name not recognized here keeps the plains approximation.
func ForBiome(biome string) Colors {
	c := DefaultColors()
	switch biome {
	case "swamp", "mangrove_swamp":
		c.Grass = [4]float32{0.41, 0.43, 0.22, 1.0}
		c.Foliage = [4]float32{0.41, 0.43, 0.22, 1.0}
		c.Water = [4]float32{0.38, 0.48, 0.39, 1.0}
	case "badlands", "eroded_badlands", "wooded_badlands":
		c.Grass = [4]float32{0.57, 0.59, 0.29, 1.0}
		c.Foliage = [4]float32{0.58, 0.45, 0.2, 1.0}
	case "jungle", "bamboo_jungle", "sparse_jungle":
		c.Grass = [4]float32{0.42, 0.68, 0.17, 1.0}
		c.Foliage = [4]float32{0.34, 0.58, 0.12, 1.0}
	case "dark_forest":
		c.Grass = [4]float32{0.4, 0.58, 0.24, 1.0}
		c.Foliage = [4]float32{0.4, 0.58, 0.24, 1.0}
	case "snowy_plains", "snowy_taiga", "snowy_slopes", "ice_spikes", "frozen_peaks", "grove":
		c.Grass = [4]float32{0.55, 0.68, 0.55, 1.0}
		c.Foliage = [4]float32{0.55, 0.68, 0.55, 1.0}
	case "desert":
		c.Grass = [4]float32{0.75, 0.72, 0.31, 1.0}
		c.Foliage = [4]float32{0.75, 0.72, 0.31, 1.0}
	case "warm_ocean", "lukewarm_ocean", "deep_lukewarm_ocean":
		c.Water = [4]float32{0.26, 0.63, 0.6, 1.0}
	case "cold_ocean", "deep_cold_ocean":
		c.Water = [4]float32{0.2, 0.36, 0.67, 1.0}
	case "frozen_ocean", "deep_frozen_ocean":
		c.Water = [4]float32{0.22, 0.35, 0.7, 1.0}
	}
	return c
}

// Provider maps a block to the tint category (and sub-index, for
// redstone power level / stem growth stage) its faces should use.
type Provider struct {
	colors Colors
}

func NewProvider(colors Colors) *Provider {
	return &Provider{colors: colors}
}

// GetTint returns the color multiplier for block's tintIndex. A
// negative tintIndex (no tint declared on the face) always yields
// solid white, matching vanilla's tintindex=-1 convention.
func (p *Provider) GetTint(blockID string, properties map[string]string, tintIndex int) [4]float32 {
	if tintIndex < 0 {
		return [4]float32{1, 1, 1, 1}
	}
	switch categorize(blockID) {
	case catGrass:
		return p.colors.Grass
	case catFoliage:
		return p.colors.Foliage
	case catWater:
		return p.colors.Water
	case catLilyPad:
		return p.colors.LilyPad
	case catCauldron:
		return p.colors.CauldronWater
	case catRedstone:
		power := propInt(properties, "power", 0)
		return p.colors.Redstone[clamp(power, 0, 15)]
	case catStem:
		stage := 7
		if !strings.HasPrefix(blockID, "attached_") {
			stage = propInt(properties, "age", 0)
		}
		return p.colors.Stem[clamp(stage, 0, 7)]
	default:
		return [4]float32{1, 1, 1, 1}
	}
}

type category int

const (
	catNone category = iota
	catGrass
	catFoliage
	catWater
	catRedstone
	catStem
	catLilyPad
	catCauldron
)

func categorize(blockID string) category {
	switch {
	case blockID == "grass_block" || blockID == "grass" || blockID == "short_grass" || blockID == "tall_grass" ||
		blockID == "fern" || blockID == "large_fern" || blockID == "sugar_cane" || blockID == "potted_fern":
		return catGrass
	case strings.HasSuffix(blockID, "_leaves") && blockID != "azalea_leaves" && blockID != "flowering_azalea_leaves":
		return catFoliage
	case blockID == "vine":
		return catFoliage
	case blockID == "water" || blockID == "bubble_column" || blockID == "water_cauldron":
		return catWater
	case blockID == "redstone_wire" || blockID == "redstone_dust":
		return catRedstone
	case strings.HasSuffix(blockID, "_stem") || strings.HasPrefix(blockID, "attached_"):
		return catStem
	case blockID == "lily_pad":
		return catLilyPad
	default:
		return catNone
	}
}

func propInt(props map[string]string, key string, fallback int) int {
	v, ok := props[key]
	if !ok {
		return fallback
	}
	n := 0
	for _, ch := range v {
		if ch < '0' || ch > '9' {
			return fallback
		}
		n = n*10 + int(ch-'0')
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
