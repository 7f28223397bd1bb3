package types

import "testing"

func TestCanonicalProperties(t *testing.T) {
	b := NewInputBlock("minecraft:oak_stairs").
		WithProperty("facing", "north").
		WithProperty("half", "bottom").
		WithProperty("shape", "straight")

	got := b.CanonicalProperties()
	want := "facing=north,half=bottom,shape=straight"
	if got != want {
		t.Errorf("CanonicalProperties() = %q, want %q", got, want)
	}
}

func TestCacheKeyNoProperties(t *testing.T) {
	b := NewInputBlock("minecraft:stone")
	if got := b.CacheKey(); got != "minecraft:stone" {
		t.Errorf("CacheKey() = %q, want %q", got, "minecraft:stone")
	}
}

func TestNamespaceDefaultsToMinecraft(t *testing.T) {
	b := NewInputBlock("stone")
	if b.Namespace() != "minecraft" {
		t.Errorf("Namespace() = %q, want minecraft", b.Namespace())
	}
	if b.BlockID() != "stone" {
		t.Errorf("BlockID() = %q, want stone", b.BlockID())
	}
}

func TestIsAir(t *testing.T) {
	for _, name := range []string{"minecraft:air", "cave_air", "minecraft:void_air"} {
		if !NewInputBlock(name).IsAir() {
			t.Errorf("%q should be air", name)
		}
	}
	if NewInputBlock("minecraft:stone").IsAir() {
		t.Errorf("stone should not be air")
	}
}

func TestBlocksInRegionSkipsAir(t *testing.T) {
	g := newTestGrid()
	g.Set(BlockPosition{0, 0, 0}, NewInputBlock("minecraft:stone"))
	g.Set(BlockPosition{1, 0, 0}, NewInputBlock("minecraft:air"))

	var seen []BlockPosition
	BlocksInRegion(g, g.Bounds(), func(p BlockPosition, b InputBlock) {
		seen = append(seen, p)
	})

	if len(seen) != 1 || seen[0] != (BlockPosition{0, 0, 0}) {
		t.Errorf("expected only the stone block to be visited, got %v", seen)
	}
}

// testGrid is a minimal BlockSource used only by this package's tests.
type testGrid struct {
	blocks map[BlockPosition]InputBlock
	bounds BoundingBox
}

func newTestGrid() *testGrid {
	return &testGrid{
		blocks: make(map[BlockPosition]InputBlock),
		bounds: BoundingBox{Min: BlockPosition{0, 0, 0}, Max: BlockPosition{2, 1, 1}},
	}
}

func (g *testGrid) Set(p BlockPosition, b InputBlock) { g.blocks[p] = b }

func (g *testGrid) GetBlock(p BlockPosition) (InputBlock, bool) {
	b, ok := g.blocks[p]
	if !ok {
		return InputBlock{}, false
	}
	return b, true
}

func (g *testGrid) Bounds() BoundingBox { return g.bounds }

func (g *testGrid) IterBlocks(visit func(BlockPosition, InputBlock) bool) {
	for p, b := range g.blocks {
		if !visit(p, b) {
			return
		}
	}
}
