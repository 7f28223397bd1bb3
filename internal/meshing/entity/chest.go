package entity

// ChestModel builds a single chest's base, lid, and latch on the
// vanilla 64x64 chest texture sheet, with the lid in its closed
// position (a static mesh export has no open/close animation to key
// off of).
func ChestModel(texturePath string) ModelDef {
	base := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{1, 0, 1},
			Dimensions: [3]float32{14, 10, 14},
			TexOffset:  [2]int{0, 19},
		}},
		Pose: DefaultPose(),
	}
	lid := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{1, 0, 1},
			Dimensions: [3]float32{14, 5, 14},
			TexOffset:  [2]int{0, 0},
		}},
		Pose: PartPose{Position: [3]float32{0, 10, 0}, Scale: [3]float32{1, 1, 1}},
	}
	latch := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{7, -2, 0},
			Dimensions: [3]float32{2, 4, 1},
			TexOffset:  [2]int{0, 0},
		}},
		Pose: PartPose{Position: [3]float32{0, 10, 0}, Scale: [3]float32{1, 1, 1}},
	}

	return ModelDef{
		TexturePath: texturePath,
		TextureSize: [2]int{64, 64},
		Parts:       []Part{base, lid, latch},
		IsOpaque:    true,
	}
}
