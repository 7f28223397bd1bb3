package entity

import (
	"math"

	"schematicmesher/internal/types"
)

// BedModel builds a bed's mattress-plus-legs geometry on the vanilla
// 64x64 bed texture sheet. The mattress is modeled upright (16x16x6)
// and rotated +90 degrees about X to lie flat; legs are unrotated 3x3x3
// cubes at fixed corners. The face shared with the other half of the
// bed is skipped to avoid z-fighting across the block boundary.
func BedModel(color string, isHead bool) ModelDef {
	texMain := [2]int{0, 0}
	if !isHead {
		texMain = [2]int{0, 22}
	}

	sharedFace := types.Down
	if isHead {
		sharedFace = types.Up
	}

	main := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{0, 0, 0},
			Dimensions: [3]float32{16, 16, 6},
			TexOffset:  texMain,
			SkipFaces:  map[types.Direction]struct{}{sharedFace: {}},
		}},
		Pose: PartPose{
			Position: [3]float32{0, 9, 0},
			Rotation: [3]float32{math.Pi / 2, 0, 0},
			Scale:    [3]float32{1, 1, 1},
		},
	}

	legTexLeft, legTexRight := [2]int{50, 6}, [2]int{50, 18}
	legZ := float32(0)
	if !isHead {
		legTexLeft, legTexRight = [2]int{50, 0}, [2]int{50, 12}
		legZ = 13
	}

	leftLeg := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{0, 0, legZ},
			Dimensions: [3]float32{3, 3, 3},
			TexOffset:  legTexLeft,
		}},
		Pose: DefaultPose(),
	}
	rightLeg := Part{
		Cubes: []Cube{{
			Origin:     [3]float32{13, 0, legZ},
			Dimensions: [3]float32{3, 3, 3},
			TexOffset:  legTexRight,
		}},
		Pose: DefaultPose(),
	}

	return ModelDef{
		TexturePath: "entity/bed/" + color,
		TextureSize: [2]int{64, 64},
		Parts:       []Part{main, leftLeg, rightLeg},
		IsOpaque:    true,
	}
}
