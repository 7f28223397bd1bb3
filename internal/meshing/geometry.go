package meshing

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"schematicmesher/internal/types"
)

// FaceCorners are the four corner positions of one cuboid face, in CCW
// winding order as seen from outside the cuboid (the glTF convention),
// paired with the matching base UV corner (top-left, top-right,
// bottom-right, bottom-left).
type FaceCorners [4]mgl32.Vec3

// generateFaceVertices returns the four corner positions of the face of
// cuboid [from,to] (in 0..1 unit-cube space) facing direction d.
func generateFaceVertices(d types.Direction, from, to [3]float32) FaceCorners {
	x0, y0, z0 := from[0], from[1], from[2]
	x1, y1, z1 := to[0], to[1], to[2]

	switch d {
	case types.Up:
		return FaceCorners{
			{x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}, {x0, y1, z0},
		}
	case types.Down:
		return FaceCorners{
			{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1},
		}
	case types.North:
		return FaceCorners{
			{x1, y0, z0}, {x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0},
		}
	case types.South:
		return FaceCorners{
			{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1},
		}
	case types.West:
		return FaceCorners{
			{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0},
		}
	case types.East:
		return FaceCorners{
			{x1, y0, z1}, {x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1},
		}
	}
	return FaceCorners{}
}

// baseUVs are the UV coordinates matching generateFaceVertices' corner
// order: top-left, top-right, bottom-right, bottom-left.
var baseUVs = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// rotateUVs applies a face's texture-space rotation (0/90/180/270) as a
// cyclic shift of the UV assignment, keeping the vertex order fixed.
func rotateUVs(rotation int) [4][2]float32 {
	steps := (rotation / 90) % 4
	if steps < 0 {
		steps += 4
	}
	var out [4][2]float32
	for i := 0; i < 4; i++ {
		out[i] = baseUVs[(i+steps)%4]
	}
	return out
}

// applyElementRotation rotates a face's corners (and its shared
// normal) about the element's declared rotation axis and origin,
// applying the rescale factor to the two axes orthogonal to the
// rotation axis when requested.
func applyElementRotation(corners FaceCorners, normal mgl32.Vec3, rot types.ElementRotation) (FaceCorners, mgl32.Vec3) {
	origin := toVec3(rot.NormalizedOrigin())
	angle := float32(rot.AngleRadians())
	rescale := rot.RescaleFactor()

	var rotMat mgl32.Mat4
	var scaleMat mgl32.Mat4
	switch rot.Axis {
	case types.AxisX:
		rotMat = mgl32.HomogRotate3DX(angle)
		scaleMat = mgl32.Scale3D(1, rescale, rescale)
	case types.AxisY:
		rotMat = mgl32.HomogRotate3DY(angle)
		scaleMat = mgl32.Scale3D(rescale, 1, rescale)
	case types.AxisZ:
		rotMat = mgl32.HomogRotate3DZ(angle)
		scaleMat = mgl32.Scale3D(rescale, rescale, 1)
	}

	transform := func(p mgl32.Vec3) mgl32.Vec3 {
		local := p.Sub(origin)
		local = mgl32.TransformCoordinate(local, scaleMat)
		local = mgl32.TransformCoordinate(local, rotMat)
		return local.Add(origin)
	}

	var out FaceCorners
	for i, c := range corners {
		out[i] = transform(c)
	}
	normalMat := rotMat // normals rotate, but are not rescaled
	newNormal := mgl32.TransformNormal(normal, normalMat)
	return out, newNormal
}

// applyBlockTransform applies a blockstate variant's x-then-y rotation
// (always 90-degree steps, about the block's own center) to a face's
// corners and normal. The angles are negated relative to a naive
// right-hand-rule rotation because Minecraft's x/y variant rotation is
// defined as a clockwise rotation of the model as viewed from the
// positive axis looking toward the origin.
func applyBlockTransform(corners FaceCorners, normal mgl32.Vec3, transform types.BlockTransform) (FaceCorners, mgl32.Vec3) {
	if transform.IsIdentity() {
		return corners, normal
	}
	center := mgl32.Vec3{0.5, 0.5, 0.5}
	xRad := -float32(transform.X) * math.Pi / 180
	yRad := -float32(transform.Y) * math.Pi / 180
	mat := mgl32.HomogRotate3DY(yRad).Mul4(mgl32.HomogRotate3DX(xRad))

	apply := func(p mgl32.Vec3) mgl32.Vec3 {
		local := p.Sub(center)
		local = mgl32.TransformCoordinate(local, mat)
		return local.Add(center)
	}

	var out FaceCorners
	for i, c := range corners {
		out[i] = apply(c)
	}
	newNormal := mgl32.TransformNormal(normal, mat)
	return out, newNormal
}

func toVec3(a [3]float32) mgl32.Vec3 { return mgl32.Vec3{a[0], a[1], a[2]} }

func fromVec3(v mgl32.Vec3) [3]float32 { return [3]float32{v[0], v[1], v[2]} }
