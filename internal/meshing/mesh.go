// Package meshing turns a resolved block model plus its neighborhood
// context (culling, lighting, tint, AO) into triangle geometry.
package meshing

// Vertex is one emitted mesh vertex: world-space position, face
// normal, atlas UV, and an RGBA color combining tint and
// ambient-occlusion/light shading. Colors are carried per-vertex
// rather than as a separate stream so greedy-merged quads and
// generated entity geometry share one representation.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
	Color    [4]float32
}

func NewVertex(position, normal [3]float32, uv [2]float32) Vertex {
	return Vertex{Position: position, Normal: normal, UV: uv, Color: [4]float32{1, 1, 1, 1}}
}

func (v Vertex) WithColor(color [4]float32) Vertex {
	v.Color = color
	return v
}

// FaceMapping records where one 4-vertex/6-index face landed in a
// Mesh's flat arrays, so the output assembler can remap its UVs into
// an atlas region and later classify/split it by texture and vertex
// alpha without re-walking the geometry emitter. Greedy-merged faces
// are recorded too (so the transparency split still sees them) but
// flagged Greedy so the UV remap pass leaves their tiled UVs alone.
type FaceMapping struct {
	VertexStart uint32
	IndexStart  uint32
	Texture     string
	Transparent bool
	Greedy      bool
}

// Mesh is an indexed triangle list built up face by face over the
// course of one mesh call, then handed to the caller and discarded.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Faces    []FaceMapping
}

func NewMesh() *Mesh {
	return &Mesh{}
}

func (m *Mesh) AddVertex(v Vertex) uint32 {
	idx := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, v)
	return idx
}

// AddQuad appends four vertices in CCW winding and the two triangles
// (0,1,2) and (0,2,3) that cover them, with no face-mapping record
// (used for geometry, like the flush-into-mesh greedy path's raw
// triangulation helper, that records its own FaceMapping separately).
func (m *Mesh) AddQuad(v0, v1, v2, v3 Vertex) {
	i0 := m.AddVertex(v0)
	i1 := m.AddVertex(v1)
	i2 := m.AddVertex(v2)
	i3 := m.AddVertex(v3)
	m.Indices = append(m.Indices, i0, i1, i2, i0, i2, i3)
}

// AddFaceQuad is AddQuad plus a recorded FaceMapping, used by every
// caller that needs the face to participate in atlas UV-remap and/or
// the opaque/cutout/blend split.
func (m *Mesh) AddFaceQuad(v0, v1, v2, v3 Vertex, texture string, transparent, greedy bool) {
	vStart := uint32(len(m.Vertices))
	iStart := uint32(len(m.Indices))
	m.AddQuad(v0, v1, v2, v3)
	m.Faces = append(m.Faces, FaceMapping{VertexStart: vStart, IndexStart: iStart, Texture: texture, Transparent: transparent, Greedy: greedy})
}

// AddQuadAO is identical to AddFaceQuad except it triangulates along
// whichever diagonal keeps the ambient-occlusion interpolation
// symmetric, per vertex AO values a0..a3 (one per corner, in the same
// order as v0..v3).
func (m *Mesh) AddQuadAO(v0, v1, v2, v3 Vertex, a0, a1, a2, a3 float32, texture string, transparent bool) {
	vStart := uint32(len(m.Vertices))
	iStart := uint32(len(m.Indices))
	i0 := m.AddVertex(v0)
	i1 := m.AddVertex(v1)
	i2 := m.AddVertex(v2)
	i3 := m.AddVertex(v3)
	if a0+a2 < a1+a3 {
		m.Indices = append(m.Indices, i0, i1, i2, i0, i2, i3)
	} else {
		m.Indices = append(m.Indices, i0, i1, i3, i1, i2, i3)
	}
	m.Faces = append(m.Faces, FaceMapping{VertexStart: vStart, IndexStart: iStart, Texture: texture, Transparent: transparent})
}

// AppendEntityFaces merges in a block of externally-built geometry
// (the shape an internal/meshing/entity builder returns: one
// FaceTextureInfo per 4-vertex/6-index face, in order), recording a
// FaceMapping for each so it flows through atlas remap and the
// transparency split exactly like directly-emitted block-model faces.
func (m *Mesh) AppendEntityFaces(vertices []Vertex, indices []uint32, textures []FaceTextureInfo) {
	base := uint32(len(m.Vertices))
	indexBase := uint32(len(m.Indices))
	m.Vertices = append(m.Vertices, vertices...)
	for _, idx := range indices {
		m.Indices = append(m.Indices, base+idx)
	}
	for i, ft := range textures {
		m.Faces = append(m.Faces, FaceMapping{
			VertexStart: base + uint32(i*4),
			IndexStart:  indexBase + uint32(i*6),
			Texture:     ft.Texture,
			Transparent: ft.IsTransparent,
		})
	}
}

// FaceTextureInfo is the meshing-package mirror of
// internal/meshing/entity.FaceTexture; entity can't be imported here
// (it imports meshing for Vertex), so callers convert at the boundary.
type FaceTextureInfo struct {
	Texture       string
	IsTransparent bool
}

func (m *Mesh) Merge(other *Mesh) {
	vBase := uint32(len(m.Vertices))
	iBase := uint32(len(m.Indices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, vBase+idx)
	}
	for _, f := range other.Faces {
		f.VertexStart += vBase
		f.IndexStart += iBase
		m.Faces = append(m.Faces, f)
	}
}

func (m *Mesh) VertexCount() int   { return len(m.Vertices) }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }
func (m *Mesh) IsEmpty() bool      { return len(m.Vertices) == 0 }

// Split partitions the mesh's recorded faces into opaque, cutout, and
// blend meshes per spec: an opaque-textured face is opaque; a
// transparent-textured face with every vertex alpha >= 0.99 is cutout;
// otherwise it's blend. Only vertices/indices covered by a FaceMapping
// are carried over — raw AddQuad calls with no mapping (none remain in
// the normal pipeline) would be silently dropped, so every geometry
// path that should appear in the final output must record one.
func (m *Mesh) Split() (opaque, cutout, blend *Mesh) {
	opaque, cutout, blend = NewMesh(), NewMesh(), NewMesh()
	for _, f := range m.Faces {
		dst := opaque
		if f.Transparent {
			dst = cutout
			for i := uint32(0); i < 4; i++ {
				if m.Vertices[f.VertexStart+i].Color[3] < 0.99 {
					dst = blend
					break
				}
			}
		}
		appendFace(dst, m, f)
	}
	return
}

func appendFace(dst, src *Mesh, f FaceMapping) {
	base := uint32(len(dst.Vertices))
	for i := uint32(0); i < 4; i++ {
		dst.Vertices = append(dst.Vertices, src.Vertices[f.VertexStart+i])
	}
	for i := uint32(0); i < 6; i++ {
		offset := src.Indices[f.IndexStart+i] - f.VertexStart
		dst.Indices = append(dst.Indices, base+offset)
	}
}

// VertexAO implements the 3-sample ambient-occlusion formula: fully
// shadowed (0) when both edge-adjacent samples are occupied,
// otherwise 3 minus the number of occupied samples (0..3, where 3 is
// fully lit).
func VertexAO(side1, side2, corner bool) float32 {
	if side1 && side2 {
		return 0
	}
	occluded := 0
	if side1 {
		occluded++
	}
	if side2 {
		occluded++
	}
	if corner {
		occluded++
	}
	return float32(3 - occluded)
}
