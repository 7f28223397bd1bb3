package meshing

import (
	"testing"

	"schematicmesher/internal/types"
)

func opaqueByID(ids ...string) func(types.InputBlock) Opacity {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(b types.InputBlock) Opacity {
		if b.IsAir() {
			return Opacity{IsAir: true}
		}
		return Opacity{Opaque: set[b.BlockID()]}
	}
}

func TestComputeLightMapBlockLightPropagatesAndDecays(t *testing.T) {
	grid := types.NewGrid()
	torch := types.NewInputBlock("torch")
	grid.Set(types.BlockPosition{X: 0, Y: 0, Z: 0}, torch)
	grid.SetBounds(types.BoundingBox{Min: types.BlockPosition{X: -2, Y: -2, Z: -2}, Max: types.BlockPosition{X: 3, Y: 3, Z: 3}})

	lm := ComputeLightMap(grid, opaqueByID(), 15, true, false)

	if lm.LevelAt(types.BlockPosition{X: 0, Y: 0, Z: 0}) != 15 {
		t.Fatalf("torch cell level = %d, want 15", lm.LevelAt(types.BlockPosition{X: 0, Y: 0, Z: 0}))
	}
	if lm.LevelAt(types.BlockPosition{X: 1, Y: 0, Z: 0}) != 14 {
		t.Fatalf("adjacent cell level = %d, want 14", lm.LevelAt(types.BlockPosition{X: 1, Y: 0, Z: 0}))
	}
	if !lm.IsEmissive(types.BlockPosition{X: 0, Y: 0, Z: 0}) {
		t.Fatal("torch position should be emissive")
	}
}

func TestComputeLightMapOpaqueBlockStopsPropagation(t *testing.T) {
	grid := types.NewGrid()
	grid.Set(types.BlockPosition{X: 0, Y: 0, Z: 0}, types.NewInputBlock("torch"))
	grid.Set(types.BlockPosition{X: 1, Y: 0, Z: 0}, types.NewInputBlock("stone"))
	grid.SetBounds(types.BoundingBox{Min: types.BlockPosition{X: -1, Y: 0, Z: 0}, Max: types.BlockPosition{X: 3, Y: 1, Z: 1}})

	lm := ComputeLightMap(grid, opaqueByID("stone"), 15, true, false)

	if lm.LevelAt(types.BlockPosition{X: 2, Y: 0, Z: 0}) != 0 {
		t.Fatalf("light behind opaque block = %d, want 0", lm.LevelAt(types.BlockPosition{X: 2, Y: 0, Z: 0}))
	}
}

func TestBrightnessMonotonic(t *testing.T) {
	prev := Brightness(0, 0)
	for level := 1; level <= 15; level++ {
		b := Brightness(level, 0)
		if b <= prev {
			t.Fatalf("Brightness(%d) = %v is not greater than Brightness(%d) = %v", level, b, level-1, prev)
		}
		prev = b
	}
	if Brightness(15, 0) != 1 {
		t.Fatalf("Brightness(15, 0) = %v, want 1", Brightness(15, 0))
	}
}
