package resolver

import (
	"testing"

	"schematicmesher/pkg/resourcepack"
)

func TestModelInheritanceMerge(t *testing.T) {
	store := resourcepack.NewStore()
	ao := false
	store.AddModel("minecraft:block/parent", &resourcepack.BlockModel{
		AmbientOcclusion: &ao,
		Textures:         map[string]string{"all": "block/stone"},
		Elements: []resourcepack.ModelElement{
			{From: [3]float32{0, 0, 0}, To: [3]float32{16, 16, 16}, Faces: map[string]resourcepack.ModelFace{
				"down": {Texture: "#all"},
			}},
		},
	})
	store.AddModel("minecraft:block/child", &resourcepack.BlockModel{
		Parent:   "block/parent",
		Textures: map[string]string{"particle": "block/dirt"},
	})

	r := NewModelResolver(store)
	merged, err := r.Resolve("minecraft:block/child")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(merged.Elements) != 1 {
		t.Errorf("expected inherited element, got %d", len(merged.Elements))
	}
	if merged.Textures["all"] != "block/stone" {
		t.Errorf("expected inherited texture 'all', got %q", merged.Textures["all"])
	}
	if merged.Textures["particle"] != "block/dirt" {
		t.Errorf("expected own texture 'particle', got %q", merged.Textures["particle"])
	}
	if merged.AOEnabled() {
		t.Errorf("expected inherited ambientocclusion=false to apply")
	}
}

func TestSharedParentNotMutated(t *testing.T) {
	store := resourcepack.NewStore()
	store.AddModel("minecraft:block/parent", &resourcepack.BlockModel{
		Elements: []resourcepack.ModelElement{
			{From: [3]float32{0, 0, 0}, To: [3]float32{16, 16, 16}, Faces: map[string]resourcepack.ModelFace{
				"up": {Texture: "#all"},
			}},
		},
	})
	store.AddModel("minecraft:block/child1", &resourcepack.BlockModel{
		Parent:   "block/parent",
		Textures: map[string]string{"all": "block/skin1"},
	})
	store.AddModel("minecraft:block/child2", &resourcepack.BlockModel{
		Parent:   "block/parent",
		Textures: map[string]string{"all": "block/skin2"},
	})

	r := NewModelResolver(store)
	c1, err := r.Resolve("minecraft:block/child1")
	if err != nil {
		t.Fatal(err)
	}
	tex1 := ResolveTextureRef(c1, c1.Elements[0].Faces["up"].Texture)
	if tex1 != "block/skin1" {
		t.Errorf("child1 should resolve to skin1, got %s", tex1)
	}

	c2, err := r.Resolve("minecraft:block/child2")
	if err != nil {
		t.Fatal(err)
	}
	tex2 := ResolveTextureRef(c2, c2.Elements[0].Faces["up"].Texture)
	if tex2 != "block/skin2" {
		t.Errorf("child2 should resolve to skin2, got %s (likely parent pollution)", tex2)
	}
}

func TestInheritanceTooDeep(t *testing.T) {
	store := resourcepack.NewStore()
	for i := 0; i < 15; i++ {
		name := "minecraft:block/chain" + string(rune('a'+i))
		parent := "block/chain" + string(rune('a'+i+1))
		if i == 14 {
			parent = ""
		}
		store.AddModel(name, &resourcepack.BlockModel{Parent: parent})
	}

	r := NewModelResolver(store)
	_, err := r.Resolve("minecraft:block/chaina")
	if err == nil {
		t.Fatal("expected inheritance-too-deep error")
	}
}
