package entity

// MobBoxModel builds a six-part humanoid box model (head, body, two
// arms, two legs) on a 64x64 texture sheet — the structural shape
// shared by zombies, skeletons, and similar humanoid mobs, parametrized
// by texture path so one builder covers the catalog's humanoid subset.
// Parts are authored in Java's Y-down convention (origin at the head);
// pass EntityRootTransform as GenerateGeometry's facing to convert them
// into Y-up world space and apply horizontal facing in one step.
func MobBoxModel(texturePath string) ModelDef {
	head := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{-4, -8, -4},
			Dimensions: [3]float32{8, 8, 8},
			TexOffset:  [2]int{0, 0},
		}},
		Pose: DefaultPose(),
	}
	body := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{-4, 0, -2},
			Dimensions: [3]float32{8, 12, 4},
			TexOffset:  [2]int{16, 16},
		}},
		Pose: DefaultPose(),
	}
	rightArm := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{-3, -2, -2},
			Dimensions: [3]float32{4, 12, 4},
			TexOffset:  [2]int{40, 16},
		}},
		Pose: PartPose{Position: [3]float32{-5, 2, 0}, Scale: [3]float32{1, 1, 1}},
	}
	leftArm := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{-1, -2, -2},
			Dimensions: [3]float32{4, 12, 4},
			TexOffset:  [2]int{40, 16},
			Mirror:     true,
		}},
		Pose: PartPose{Position: [3]float32{5, 2, 0}, Scale: [3]float32{1, 1, 1}},
	}
	rightLeg := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{-2, 0, -2},
			Dimensions: [3]float32{4, 12, 4},
			TexOffset:  [2]int{0, 16},
		}},
		Pose: PartPose{Position: [3]float32{-2, 12, 0}, Scale: [3]float32{1, 1, 1}},
	}
	leftLeg := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{-2, 0, -2},
			Dimensions: [3]float32{4, 12, 4},
			TexOffset:  [2]int{0, 16},
			Mirror:     true,
		}},
		Pose: PartPose{Position: [3]float32{2, 12, 0}, Scale: [3]float32{1, 1, 1}},
	}

	parts := []Part{head, body, rightArm, leftArm, rightLeg, leftLeg}

	return ModelDef{
		TexturePath: texturePath,
		TextureSize: [2]int{64, 64},
		Parts:       parts,
		IsOpaque:    true,
	}
}
