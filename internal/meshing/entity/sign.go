package entity

import "math"

// SignModel builds a standing (with post) or wall sign board on the
// vanilla 64x32 sign texture sheet.
func SignModel(texturePath string, isWall bool) ModelDef {
	board := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{-12, -14, -1},
			Dimensions: [3]float32{24, 12, 2},
			TexOffset:  [2]int{0, 0},
		}},
		Pose: DefaultPose(),
	}

	parts := []Part{board}
	if !isWall {
		post := Part{
			Cubes: []Cube{{
				Origin:     [3]float32{-1, -2, -1},
				Dimensions: [3]float32{2, 14, 2},
				TexOffset:  [2]int{0, 14},
			}},
			Pose: DefaultPose(),
		}
		parts = append(parts, post)
	}

	yOffset := float32(8)
	if isWall {
		yOffset = -4
	}
	root := Part{
		Pose: PartPose{
			Position: [3]float32{8, 24 + yOffset, 8},
			Rotation: [3]float32{math.Pi, 0, 0},
			Scale:    [3]float32{1, 1, 1},
		},
		Children: parts,
	}

	return ModelDef{
		TexturePath: texturePath,
		TextureSize: [2]int{64, 32},
		Parts:       []Part{root},
		IsOpaque:    false,
	}
}

// TextColorRGB maps Minecraft's named text colors to RGB, used for the
// flat color-block placeholder a sign's text lines render as instead of
// rasterizing glyphs (no bitmap font asset is available to this
// pipeline).
func TextColorRGB(color string) [3]uint8 {
	switch color {
	case "black":
		return [3]uint8{0, 0, 0}
	case "dark_blue":
		return [3]uint8{0, 0, 170}
	case "dark_green":
		return [3]uint8{0, 170, 0}
	case "dark_aqua":
		return [3]uint8{0, 170, 170}
	case "dark_red":
		return [3]uint8{170, 0, 0}
	case "dark_purple":
		return [3]uint8{170, 0, 170}
	case "gold":
		return [3]uint8{255, 170, 0}
	case "gray":
		return [3]uint8{170, 170, 170}
	case "dark_gray":
		return [3]uint8{85, 85, 85}
	case "blue":
		return [3]uint8{85, 85, 255}
	case "green":
		return [3]uint8{85, 255, 85}
	case "aqua":
		return [3]uint8{85, 255, 255}
	case "red":
		return [3]uint8{255, 85, 85}
	case "light_purple":
		return [3]uint8{255, 85, 255}
	case "yellow":
		return [3]uint8{255, 255, 85}
	case "white":
		return [3]uint8{255, 255, 255}
	default:
		return [3]uint8{0, 0, 0}
	}
}

// PlaceholderLineQuad returns the Y offset and RGB color for one sign
// text line: the offset is line × a quarter of the 10/16-block board
// height, so line 0 sits at offset 0 and each later line one slot
// further along.
func PlaceholderLineQuad(line int, color string) (yOffset float32, rgb [3]uint8) {
	const lineHeight = 10.0 / 16.0 / 4
	return float32(line) * lineHeight, TextColorRGB(color)
}
