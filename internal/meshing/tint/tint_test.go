package tint

import "testing"

func TestGetTintNegativeIndexIsWhite(t *testing.T) {
	p := NewProvider(DefaultColors())
	got := p.GetTint("grass_block", nil, -1)
	if got != ([4]float32{1, 1, 1, 1}) {
		t.Fatalf("GetTint(tintIndex=-1) = %v, want white", got)
	}
}

func TestGetTintGrassUsesGrassColor(t *testing.T) {
	colors := DefaultColors()
	p := NewProvider(colors)
	got := p.GetTint("grass_block", nil, 0)
	if got != colors.Grass {
		t.Fatalf("GetTint(grass_block) = %v, want %v", got, colors.Grass)
	}
}

func TestGetTintFoliageExcludesAzalea(t *testing.T) {
	colors := DefaultColors()
	p := NewProvider(colors)
	if got := p.GetTint("oak_leaves", nil, 0); got != colors.Foliage {
		t.Errorf("oak_leaves should use foliage color, got %v", got)
	}
	if got := p.GetTint("azalea_leaves", nil, 0); got == colors.Foliage {
		t.Errorf("azalea_leaves should not use the foliage tint color")
	}
}

func TestGetTintRedstoneScalesWithPower(t *testing.T) {
	p := NewProvider(DefaultColors())
	dim := p.GetTint("redstone_wire", map[string]string{"power": "0"}, 0)
	bright := p.GetTint("redstone_wire", map[string]string{"power": "15"}, 0)
	if bright[0] <= dim[0] {
		t.Fatalf("fully powered redstone (%v) should be redder than unpowered (%v)", bright, dim)
	}
}

func TestGetTintRedstoneClampsOutOfRangePower(t *testing.T) {
	p := NewProvider(DefaultColors())
	// A malformed or out-of-spec power value should clamp rather than panic.
	got := p.GetTint("redstone_wire", map[string]string{"power": "99"}, 0)
	want := p.GetTint("redstone_wire", map[string]string{"power": "15"}, 0)
	if got != want {
		t.Errorf("GetTint(power=99) = %v, want clamp to power=15 value %v", got, want)
	}
}

func TestForBiomeOverridesGrassAndFoliage(t *testing.T) {
	c := ForBiome("swamp")
	d := DefaultColors()
	if c.Grass == d.Grass {
		t.Error("swamp biome should override the default grass color")
	}
}

func TestForBiomeUnknownFallsBackToDefault(t *testing.T) {
	c := ForBiome("some_unknown_biome")
	d := DefaultColors()
	if c.Grass != d.Grass || c.Water != d.Water {
		t.Error("unrecognized biome should keep the plains default colors")
	}
}
