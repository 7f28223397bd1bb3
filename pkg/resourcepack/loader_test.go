package resourcepack

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadBlockstateAndModel(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "assets/minecraft/blockstates/stone.json"), `{
		"variants": { "": { "model": "minecraft:block/stone" } }
	}`)
	writeTestFile(t, filepath.Join(dir, "assets/minecraft/models/block/stone.json"), `{
		"textures": { "all": "block/stone" },
		"elements": [ { "from": [0,0,0], "to": [16,16,16], "faces": { "down": { "texture": "#all" } } } ]
	}`)

	store, err := Load(os.DirFS(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def, err := store.GetBlockstate("minecraft:stone")
	if err != nil {
		t.Fatalf("GetBlockstate() error = %v", err)
	}
	if len(def.Variants[""]) != 1 || def.Variants[""][0].Model != "minecraft:block/stone" {
		t.Errorf("unexpected variant: %+v", def.Variants[""])
	}

	model, err := store.GetModel("minecraft:block/stone")
	if err != nil {
		t.Fatalf("GetModel() error = %v", err)
	}
	if len(model.Elements) != 1 {
		t.Errorf("expected 1 element, got %d", len(model.Elements))
	}
}

func TestMultipartWhenDefaults(t *testing.T) {
	w := &MultipartWhen{Simple: map[string]string{"waterlogged": "false"}}
	if !w.Matches(map[string]string{}) {
		t.Errorf("expected missing waterlogged property to satisfy default value 'false'")
	}
	if w.Matches(map[string]string{"waterlogged": "true"}) {
		t.Errorf("expected waterlogged=true to fail the 'false' constraint")
	}
}

func TestMultipartOr(t *testing.T) {
	w := &MultipartWhen{Or: []map[string]string{
		{"north": "true"},
		{"east": "true"},
	}}
	if !w.Matches(map[string]string{"north": "true", "east": "false", "south": "false", "west": "false"}) {
		t.Errorf("OR condition should match when any branch matches")
	}
	if w.Matches(map[string]string{"north": "false", "east": "false"}) {
		t.Errorf("OR condition should not match when no branch matches")
	}
}

func TestTextureAnimationDetection(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 16))); err != nil {
		t.Fatal(err)
	}
	tex, err := LoadTextureFromBytes(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if tex.IsAnimated {
		t.Errorf("square texture should not be detected as animated")
	}
}

func TestPlaceholderTexture(t *testing.T) {
	p := Placeholder()
	if p.Width != 16 || p.Height != 16 {
		t.Errorf("placeholder should be 16x16, got %dx%d", p.Width, p.Height)
	}
}
