package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"schematicmesher/internal/types"
)

// FacingMatrix returns the Y-rotation (about the block's horizontal
// center) that orients a model built facing south to instead face the
// given facing property value.
func FacingMatrix(facing string) mgl32.Mat4 {
	angle := facingRotationRad(facing)
	center := mgl32.Translate3D(0.5, 0, 0.5)
	rot := mgl32.HomogRotate3DY(angle)
	return center.Mul4(rot).Mul4(mgl32.Translate3D(-0.5, 0, -0.5))
}

func facingRotationRad(facing string) float32 {
	switch facing {
	case "north":
		return math.Pi
	case "south":
		return 0
	case "east":
		return -math.Pi / 2
	case "west":
		return math.Pi / 2
	default:
		return math.Pi
	}
}

// StandingRotationMatrix turns a sign/skull "rotation" property (0-15,
// each step 22.5 degrees) into a Y-rotation matrix about block center.
func StandingRotationMatrix(rotationSteps int) mgl32.Mat4 {
	angle := float32(rotationSteps) * math.Pi / 8
	center := mgl32.Translate3D(0.5, 0, 0.5)
	return center.Mul4(mgl32.HomogRotate3DY(angle)).Mul4(mgl32.Translate3D(-0.5, 0, -0.5))
}

// ShulkerFacingMatrix rotates a shulker box model around the full block
// center to face any of the six directions (shulkers attach to any
// face, not just the four horizontal ones).
func ShulkerFacingMatrix(facing string) mgl32.Mat4 {
	center := mgl32.Translate3D(0.5, 0.5, 0.5)
	var rot mgl32.Mat4
	switch facing {
	case "up":
		rot = mgl32.Ident4()
	case "down":
		rot = mgl32.HomogRotate3DX(math.Pi)
	case "north":
		rot = mgl32.HomogRotate3DX(math.Pi / 2)
	case "south":
		rot = mgl32.HomogRotate3DX(-math.Pi / 2)
	case "east":
		rot = mgl32.HomogRotate3DZ(-math.Pi / 2)
	case "west":
		rot = mgl32.HomogRotate3DZ(math.Pi / 2)
	default:
		rot = mgl32.Ident4()
	}
	return center.Mul4(rot).Mul4(mgl32.Translate3D(-0.5, -0.5, -0.5))
}

// EntityRootTransform converts a mob model's Java-convention Y-down
// coordinates (origin at the head, Y growing downward) into Y-up world
// space: rotate 180 degrees about X, then raise 1.5 blocks so the feet
// land on the ground, combined with horizontal facing.
func EntityRootTransform(facing string) mgl32.Mat4 {
	facingMat := FacingMatrix(facing)
	root := mgl32.Translate3D(0.5, 1.5, 0.5).Mul4(mgl32.HomogRotate3DX(math.Pi))
	return facingMat.Mul4(root)
}

// GetFacing reads the "facing" property, defaulting to north the way
// vanilla block entities do when it's absent.
func GetFacing(block types.InputBlock) string {
	if v, ok := block.Properties["facing"]; ok {
		return v
	}
	return "north"
}
