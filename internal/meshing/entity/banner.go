package entity

import "math"

// BannerModel builds a standing or wall banner's pole/bar/flag geometry
// on the vanilla 64x64 banner texture sheet, wrapped in the usual
// Y-down-to-Y-up root transform since the source coordinates are
// authored with the model centered at the block and growing downward.
func BannerModel(isStanding bool, texturePath string) ModelDef {
	var parts []Part

	if isStanding {
		parts = append(parts, Part{
			Cubes: []Cube{{
				Origin:     [3]float32{-1, -42, -1},
				Dimensions: [3]float32{2, 42, 2},
				TexOffset:  [2]int{44, 0},
			}},
			Pose: DefaultPose(),
		})
	}

	barY, barZ := float32(-44), float32(-1)
	if !isStanding {
		barY, barZ = -20.5, 9.5
	}
	parts = append(parts, Part{
		Cubes: []Cube{{
			Origin:     [3]float32{-10, barY, barZ},
			Dimensions: [3]float32{20, 2, 2},
			TexOffset:  [2]int{0, 42},
		}},
		Pose: DefaultPose(),
	})

	flagOffsetY, flagOffsetZ := float32(-44), float32(0)
	if !isStanding {
		flagOffsetY, flagOffsetZ = -20.5, 10.5
	}
	parts = append(parts, Part{
		Cubes: []Cube{{
			Origin:     [3]float32{-10, 0, -2},
			Dimensions: [3]float32{20, 40, 1},
			TexOffset:  [2]int{0, 0},
		}},
		Pose: PartPose{
			Position: [3]float32{0, flagOffsetY, flagOffsetZ},
			Scale:    [3]float32{1, 1, 1},
		},
	})

	root := Part{
		Pose: PartPose{
			Position: [3]float32{8, 24, 8},
			Rotation: [3]float32{math.Pi, 0, 0},
			Scale:    [3]float32{1, 1, 1},
		},
		Children: parts,
	}

	return ModelDef{
		TexturePath: texturePath,
		TextureSize: [2]int{64, 64},
		Parts:       []Part{root},
		IsOpaque:    false,
	}
}
