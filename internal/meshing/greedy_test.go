package meshing

import (
	"schematicmesher/internal/types"
	"testing"
)

func TestMergeCoalescesAdjacentMatchingFaces(t *testing.T) {
	g := NewGreedyMesher()
	key := FaceMergeKey{Texture: "block/stone", Tint: [4]uint8{255, 255, 255, 255}, AO: [4]uint8{255, 255, 255, 255}}
	g.AddFace(types.BlockPosition{X: 0, Y: 0, Z: 0}, types.Up, key, false)
	g.AddFace(types.BlockPosition{X: 1, Y: 0, Z: 0}, types.Up, key, false)

	quads := g.Merge()
	if len(quads) != 1 {
		t.Fatalf("len(quads) = %d, want 1", len(quads))
	}
	q := quads[0]
	if q.Width != 2 || q.Height != 1 {
		t.Errorf("merged size = %dx%d, want 2x1", q.Width, q.Height)
	}
}

func TestMergeKeepsMismatchedKeysSeparate(t *testing.T) {
	g := NewGreedyMesher()
	stone := FaceMergeKey{Texture: "block/stone", Tint: [4]uint8{255, 255, 255, 255}, AO: [4]uint8{255, 255, 255, 255}}
	dirt := FaceMergeKey{Texture: "block/dirt", Tint: [4]uint8{255, 255, 255, 255}, AO: [4]uint8{255, 255, 255, 255}}
	g.AddFace(types.BlockPosition{X: 0, Y: 0, Z: 0}, types.Up, stone, false)
	g.AddFace(types.BlockPosition{X: 1, Y: 0, Z: 0}, types.Up, dirt, false)

	quads := g.Merge()
	if len(quads) != 2 {
		t.Fatalf("len(quads) = %d, want 2", len(quads))
	}
	for _, q := range quads {
		if q.Width != 1 || q.Height != 1 {
			t.Errorf("mismatched-key quad size = %dx%d, want 1x1", q.Width, q.Height)
		}
	}
}

func TestMergeSeparatesNonTouchingFaces(t *testing.T) {
	g := NewGreedyMesher()
	key := FaceMergeKey{Texture: "block/stone"}
	g.AddFace(types.BlockPosition{X: 0, Y: 0, Z: 0}, types.Up, key, false)
	g.AddFace(types.BlockPosition{X: 2, Y: 0, Z: 0}, types.Up, key, false)

	quads := g.Merge()
	if len(quads) != 2 {
		t.Fatalf("len(quads) = %d, want 2", len(quads))
	}
}

func TestPosToLayerCoordsPerAxis(t *testing.T) {
	pos := types.BlockPosition{X: 1, Y: 2, Z: 3}
	if layer, u, v := PosToLayerCoords(pos, types.Up); layer != 2 || u != 1 || v != 3 {
		t.Errorf("Up: got (%d,%d,%d), want (2,1,3)", layer, u, v)
	}
	if layer, u, v := PosToLayerCoords(pos, types.North); layer != 3 || u != 1 || v != 2 {
		t.Errorf("North: got (%d,%d,%d), want (3,1,2)", layer, u, v)
	}
	if layer, u, v := PosToLayerCoords(pos, types.East); layer != 1 || u != 3 || v != 2 {
		t.Errorf("East: got (%d,%d,%d), want (1,3,2)", layer, u, v)
	}
}

func TestQuantizeColorAndAORoundTrip(t *testing.T) {
	c := QuantizeColor([4]float32{1, 0, 0.5, 1})
	if c[0] != 255 || c[1] != 0 {
		t.Errorf("QuantizeColor red/green = %d/%d, want 255/0", c[0], c[1])
	}
	ao := QuantizeAO([4]float32{1, 1, 1, 1}, 1)
	if ao != ([4]uint8{255, 255, 255, 255}) {
		t.Errorf("QuantizeAO(full light) = %v, want all 255", ao)
	}
}
