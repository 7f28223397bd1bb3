package meshing

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"schematicmesher/internal/types"
)

func TestRotateUVsIsIdentityAtZero(t *testing.T) {
	got := rotateUVs(0)
	if got != baseUVs {
		t.Fatalf("rotateUVs(0) = %v, want %v", got, baseUVs)
	}
}

func TestRotateUVsCyclesAt360(t *testing.T) {
	got := rotateUVs(360)
	if got != baseUVs {
		t.Fatalf("rotateUVs(360) = %v, want unchanged %v", got, baseUVs)
	}
}

func TestRotateUVs90DegreeShift(t *testing.T) {
	got := rotateUVs(90)
	want := [4][2]float32{baseUVs[1], baseUVs[2], baseUVs[3], baseUVs[0]}
	if got != want {
		t.Fatalf("rotateUVs(90) = %v, want %v", got, want)
	}
}

func TestGenerateFaceVerticesUpStaysAtTopY(t *testing.T) {
	corners := generateFaceVertices(types.Up, [3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	for _, c := range corners {
		if c[1] != 1 {
			t.Errorf("up face corner %v has Y = %v, want 1", c, c[1])
		}
	}
}

func TestGenerateFaceVerticesDownStaysAtBottomY(t *testing.T) {
	corners := generateFaceVertices(types.Down, [3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	for _, c := range corners {
		if c[1] != 0 {
			t.Errorf("down face corner %v has Y = %v, want 0", c, c[1])
		}
	}
}

func TestApplyBlockTransformIdentityNoOp(t *testing.T) {
	corners := generateFaceVertices(types.Up, [3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	normal := mgl32.Vec3{0, 1, 0}
	out, outNormal := applyBlockTransform(corners, normal, types.BlockTransform{})
	if out != corners {
		t.Errorf("identity transform changed corners: %v != %v", out, corners)
	}
	if outNormal != normal {
		t.Errorf("identity transform changed normal: %v != %v", outNormal, normal)
	}
}

func TestApplyBlockTransformY90RotatesNormal(t *testing.T) {
	normal := mgl32.Vec3{0, 0, 1} // south-facing
	corners := generateFaceVertices(types.South, [3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	_, outNormal := applyBlockTransform(corners, normal, types.BlockTransform{Y: 90})

	// A 90-degree block-level Y rotation should turn a south-facing
	// normal roughly onto the X axis, not leave it pointing at +Z.
	if math.Abs(float64(outNormal[2])) > 0.01 {
		t.Errorf("normal after 90-degree Y rotation still points along Z: %v", outNormal)
	}
}
