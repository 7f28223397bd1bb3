package atlas

import (
	"testing"

	"schematicmesher/pkg/resourcepack"
)

func solidTexture(w, h int, r, g, b, a byte) *resourcepack.TextureData {
	pixels := make([]byte, w*h*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = r, g, b, a
	}
	return &resourcepack.TextureData{Width: w, Height: h, Pixels: pixels}
}

func TestEmptyBuilderReturnsPlaceholderAtlas(t *testing.T) {
	b := NewBuilder(1024, 1)
	atl, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if atl.Width != 16 || atl.Height != 16 {
		t.Fatalf("empty atlas size = %dx%d, want 16x16", atl.Width, atl.Height)
	}
	if len(atl.Regions) != 0 {
		t.Fatalf("empty atlas has %d regions, want 0", len(atl.Regions))
	}
}

func TestBuildPacksEveryDistinctTexture(t *testing.T) {
	b := NewBuilder(1024, 1)
	b.Add("block/stone", solidTexture(16, 16, 128, 128, 128, 255))
	b.Add("block/dirt", solidTexture(16, 16, 96, 64, 32, 255))

	atl, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(atl.Regions) != 2 {
		t.Fatalf("len(Regions) = %d, want 2", len(atl.Regions))
	}
	for _, path := range []string{"block/stone", "block/dirt"} {
		r, ok := atl.Region(path)
		if !ok {
			t.Fatalf("missing region for %s", path)
		}
		if r.Width() <= 0 || r.Height() <= 0 {
			t.Errorf("%s: region has non-positive extent %v", path, r)
		}
	}
}

func TestRegionTransformUV(t *testing.T) {
	r := Region{UMin: 0.25, VMin: 0.5, UMax: 0.75, VMax: 1.0}
	got := r.TransformUV(0, 0)
	if got != ([2]float32{0.25, 0.5}) {
		t.Errorf("TransformUV(0,0) = %v, want (0.25, 0.5)", got)
	}
	got = r.TransformUV(1, 1)
	if got != ([2]float32{0.75, 1.0}) {
		t.Errorf("TransformUV(1,1) = %v, want (0.75, 1.0)", got)
	}
}
