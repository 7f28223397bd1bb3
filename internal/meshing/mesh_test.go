package meshing

import "testing"

func quad(color [4]float32) (Vertex, Vertex, Vertex, Vertex) {
	v0 := NewVertex([3]float32{0, 0, 0}, [3]float32{0, 1, 0}, [2]float32{0, 0}).WithColor(color)
	v1 := NewVertex([3]float32{1, 0, 0}, [3]float32{0, 1, 0}, [2]float32{1, 0}).WithColor(color)
	v2 := NewVertex([3]float32{1, 0, 1}, [3]float32{0, 1, 0}, [2]float32{1, 1}).WithColor(color)
	v3 := NewVertex([3]float32{0, 0, 1}, [3]float32{0, 1, 0}, [2]float32{0, 1}).WithColor(color)
	return v0, v1, v2, v3
}

func TestAddFaceQuadCounts(t *testing.T) {
	m := NewMesh()
	v0, v1, v2, v3 := quad([4]float32{1, 1, 1, 1})
	m.AddFaceQuad(v0, v1, v2, v3, "block/stone", false, false)

	if m.VertexCount() != 4 {
		t.Fatalf("VertexCount() = %d, want 4", m.VertexCount())
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("TriangleCount() = %d, want 2", m.TriangleCount())
	}
	if len(m.Faces) != 1 {
		t.Fatalf("len(Faces) = %d, want 1", len(m.Faces))
	}
	if m.IsEmpty() {
		t.Fatal("IsEmpty() = true after adding a quad")
	}
}

func TestAddQuadAOPicksSymmetricDiagonal(t *testing.T) {
	v0, v1, v2, v3 := quad([4]float32{1, 1, 1, 1})

	m := NewMesh()
	m.AddQuadAO(v0, v1, v2, v3, 1, 1, 1, 1, "block/stone", false)
	want13 := []uint32{0, 1, 3, 1, 2, 3}
	for i, idx := range m.Indices {
		if idx != want13[i] {
			t.Fatalf("uniform AO: Indices = %v, want %v", m.Indices, want13)
		}
	}

	m = NewMesh()
	m.AddQuadAO(v0, v1, v2, v3, 0, 1, 0, 1, "block/stone", false)
	want02 := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range m.Indices {
		if idx != want02[i] {
			t.Fatalf("0/1/0/1 AO: Indices = %v, want %v", m.Indices, want02)
		}
	}
}

func TestSplitClassifiesByTransparencyAndAlpha(t *testing.T) {
	m := NewMesh()
	ov0, ov1, ov2, ov3 := quad([4]float32{1, 1, 1, 1})
	m.AddFaceQuad(ov0, ov1, ov2, ov3, "block/stone", false, false)

	cv0, cv1, cv2, cv3 := quad([4]float32{1, 1, 1, 1})
	m.AddFaceQuad(cv0, cv1, cv2, cv3, "block/leaves", true, false)

	bv0, bv1, bv2, bv3 := quad([4]float32{1, 1, 1, 0.4})
	m.AddFaceQuad(bv0, bv1, bv2, bv3, "block/glass", true, false)

	opaque, cutout, blend := m.Split()
	if opaque.TriangleCount() != 2 {
		t.Errorf("opaque triangles = %d, want 2", opaque.TriangleCount())
	}
	if cutout.TriangleCount() != 2 {
		t.Errorf("cutout triangles = %d, want 2", cutout.TriangleCount())
	}
	if blend.TriangleCount() != 2 {
		t.Errorf("blend triangles = %d, want 2", blend.TriangleCount())
	}
}

func TestVertexAO(t *testing.T) {
	cases := []struct {
		side1, side2, corner bool
		want                 float32
	}{
		{false, false, false, 3},
		{true, false, false, 2},
		{false, false, true, 2},
		{true, true, false, 0},
		{true, true, true, 0},
	}
	for _, c := range cases {
		got := VertexAO(c.side1, c.side2, c.corner)
		if got != c.want {
			t.Errorf("VertexAO(%v, %v, %v) = %v, want %v", c.side1, c.side2, c.corner, got, c.want)
		}
	}
}
