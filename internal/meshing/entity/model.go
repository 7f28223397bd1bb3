// Package entity builds hardcoded geometry for block entities whose
// JSON block model is empty or near-empty (chests, beds, banners,
// signs, and the mob/particle overlays that ride along with them):
// their visual shape lives in game code rather than resource-pack
// models, so the mesher has to know it directly.
package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"schematicmesher/internal/meshing"
	"schematicmesher/internal/types"
)

// Cube is one box within an entity model part, in 1/16th block units,
// laid out on its texture sheet using Minecraft's box-unwrap UV scheme.
type Cube struct {
	Origin     [3]float32
	Dimensions [3]float32
	TexOffset  [2]int
	Inflate    float32
	Mirror     bool
	SkipFaces  map[types.Direction]struct{}
}

// PartPose is a part's local transform relative to its parent: a
// translate, an XYZ Euler rotation in radians, and a scale.
type PartPose struct {
	Position [3]float32
	Rotation [3]float32
	Scale    [3]float32
}

// DefaultPose returns the identity pose (no translation/rotation, unit scale).
func DefaultPose() PartPose {
	return PartPose{Scale: [3]float32{1, 1, 1}}
}

// Part is one node in an entity model's hierarchy.
type Part struct {
	Cubes    []Cube
	Pose     PartPose
	Children []Part
}

// ModelDef is a complete entity model: its texture sheet, top-level
// parts, and whether its faces render as opaque (when false, every
// generated face is marked transparent and goes to the cutout/blend
// meshes).
type ModelDef struct {
	TexturePath string
	TextureSize [2]int
	Parts       []Part
	IsOpaque    bool
}

// FaceTexture names the texture a generated entity face should sample,
// alongside whether it needs alpha-blended (not opaque) rendering.
type FaceTexture struct {
	Texture       string
	IsTransparent bool
}

// Geometry is the (vertices, indices, per-face-quad texture) triple a
// model traversal produces, ready to fold into a Mesh.
type Geometry struct {
	Vertices      []meshing.Vertex
	Indices       []uint32
	FaceTextures  []FaceTexture
}

// GenerateGeometry walks model's part hierarchy under facing, emitting
// one quad (two triangles) per visible cube face.
func GenerateGeometry(model ModelDef, facing mgl32.Mat4) Geometry {
	g := Geometry{}
	traverseParts(model.Parts, mgl32.Ident4(), facing, model, &g)
	return g
}

func traverseParts(parts []Part, parentTransform, facing mgl32.Mat4, model ModelDef, g *Geometry) {
	for _, part := range parts {
		local := partLocalTransform(part.Pose)
		combined := parentTransform.Mul4(local)

		for _, cube := range part.Cubes {
			emitCubeFaces(cube, combined, facing, model, g)
		}
		traverseParts(part.Children, combined, facing, model, g)
	}
}

func partLocalTransform(pose PartPose) mgl32.Mat4 {
	translate := mgl32.Translate3D(pose.Position[0]/16, pose.Position[1]/16, pose.Position[2]/16)
	rotZ := mgl32.HomogRotate3DZ(pose.Rotation[2])
	rotY := mgl32.HomogRotate3DY(pose.Rotation[1])
	rotX := mgl32.HomogRotate3DX(pose.Rotation[0])
	scale := mgl32.Scale3D(pose.Scale[0], pose.Scale[1], pose.Scale[2])
	return translate.Mul4(rotZ).Mul4(rotY).Mul4(rotX).Mul4(scale)
}

var cubeFaceDefs = []struct {
	dir     types.Direction
	corners [4]int
	sideFace bool
}{
	{types.Down, [4]int{4, 5, 1, 0}, false},
	{types.Up, [4]int{3, 2, 6, 7}, false},
	{types.North, [4]int{1, 0, 3, 2}, true},
	{types.South, [4]int{4, 5, 6, 7}, true},
	{types.West, [4]int{0, 4, 7, 3}, true},
	{types.East, [4]int{5, 1, 2, 6}, true},
}

func emitCubeFaces(cube Cube, transform, facing mgl32.Mat4, model ModelDef, g *Geometry) {
	ox, oy, oz := cube.Origin[0], cube.Origin[1], cube.Origin[2]
	w, h, d := cube.Dimensions[0], cube.Dimensions[1], cube.Dimensions[2]
	inf := cube.Inflate

	x0, y0, z0 := (ox-inf)/16, (oy-inf)/16, (oz-inf)/16
	x1, y1, z1 := (ox+w+inf)/16, (oy+h+inf)/16, (oz+d+inf)/16

	corners := [8]mgl32.Vec3{
		{x0, y0, z0}, {x1, y0, z0}, {x1, y1, z0}, {x0, y1, z0},
		{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1},
	}

	full := facing.Mul4(transform)
	var transformed [8]mgl32.Vec3
	for i, c := range corners {
		transformed[i] = mgl32.TransformCoordinate(c, full)
	}

	normalMat := full.Mat3()

	for _, fd := range cubeFaceDefs {
		if cube.SkipFaces != nil {
			if _, skip := cube.SkipFaces[fd.dir]; skip {
				continue
			}
		}

		uvs := cubeFaceUVs(cube.TexOffset, cube.Dimensions, fd.dir, model.TextureSize, cube.Mirror)

		dn := fd.dir.Normal()
		normal := normalMat.Mul3x1(mgl32.Vec3{dn[0], dn[1], dn[2]})
		if normal.Len() > 0 {
			normal = normal.Normalize()
		}
		n := [3]float32{normal[0], normal[1], normal[2]}

		vStart := uint32(len(g.Vertices))
		for i, ci := range fd.corners {
			p := transformed[ci]
			g.Vertices = append(g.Vertices, meshing.NewVertex([3]float32{p[0], p[1], p[2]}, n, uvs[i]))
		}

		if fd.sideFace {
			g.Indices = append(g.Indices, vStart, vStart+1, vStart+2, vStart, vStart+2, vStart+3)
		} else {
			g.Indices = append(g.Indices, vStart, vStart+2, vStart+1, vStart, vStart+3, vStart+2)
		}

		g.FaceTextures = append(g.FaceTextures, FaceTexture{Texture: model.TexturePath, IsTransparent: !model.IsOpaque})
	}
}

// cubeFaceUVs computes one face's four UVs using Minecraft's box-unwrap
// layout: a cross-shaped cutout of DOWN/UP/WEST/NORTH/EAST/SOUTH regions
// derived from the cube's (W,H,D) and its top-left texture offset.
func cubeFaceUVs(texOffset [2]int, dims [3]float32, face types.Direction, textureSize [2]int, mirror bool) [4][2]float32 {
	u0, v0 := float32(texOffset[0]), float32(texOffset[1])
	w, h, d := dims[0], dims[1], dims[2]
	tw, th := float32(textureSize[0]), float32(textureSize[1])

	var left, top, right, bottom float32
	switch face {
	case types.Down:
		left, top, right, bottom = u0+d, v0, u0+d+w, v0+d
	case types.Up:
		left, top, right, bottom = u0+d+w, v0, u0+d+w+w, v0+d
	case types.North:
		left, top, right, bottom = u0+d, v0+d, u0+d+w, v0+d+h
	case types.South:
		left, top, right, bottom = u0+d+w+d, v0+d, u0+d+w+d+w, v0+d+h
	case types.West:
		left, top, right, bottom = u0, v0+d, u0+d, v0+d+h
	case types.East:
		left, top, right, bottom = u0+d+w, v0+d, u0+d+w+d, v0+d+h
	}

	nl, nt, nr, nb := left/tw, top/th, right/tw, bottom/th

	if face == types.Up {
		if mirror {
			return [4][2]float32{{nr, nb}, {nl, nb}, {nl, nt}, {nr, nt}}
		}
		return [4][2]float32{{nl, nb}, {nr, nb}, {nr, nt}, {nl, nt}}
	}
	if mirror {
		return [4][2]float32{{nl, nt}, {nr, nt}, {nr, nb}, {nl, nb}}
	}
	return [4][2]float32{{nr, nt}, {nl, nt}, {nl, nb}, {nr, nb}}
}
