package resolver

import (
	"testing"

	"schematicmesher/internal/types"
	"schematicmesher/pkg/resourcepack"
)

func TestResolveVariantExactMatch(t *testing.T) {
	store := resourcepack.NewStore()
	store.AddBlockstate("minecraft:oak_log", &resourcepack.BlockstateDefinition{
		Variants: map[string]resourcepack.VariantList{
			"axis=y": {{Model: "block/oak_log"}},
			"axis=x": {{Model: "block/oak_log_horizontal", X: 90}},
		},
	})
	store.AddModel("minecraft:block/oak_log", &resourcepack.BlockModel{})
	store.AddModel("minecraft:block/oak_log_horizontal", &resourcepack.BlockModel{})

	r := NewStateResolver(store)
	block := types.NewInputBlock("oak_log").WithProperty("axis", "x")
	resolved, err := r.Resolve(block)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("len(resolved) = %d, want 1", len(resolved))
	}
	if resolved[0].Transform.X != 90 {
		t.Errorf("Transform.X = %d, want 90 for axis=x variant", resolved[0].Transform.X)
	}
}

func TestResolveVariantFallsBackToMostDefaultKey(t *testing.T) {
	store := resourcepack.NewStore()
	// No key matches "facing=south" exactly or covers it; the resolver
	// should fall back to the most default-like key overall.
	store.AddBlockstate("minecraft:lever", &resourcepack.BlockstateDefinition{
		Variants: map[string]resourcepack.VariantList{
			"facing=north,powered=false": {{Model: "block/lever"}},
			"facing=north,powered=true":  {{Model: "block/lever_on"}},
		},
	})
	store.AddModel("minecraft:block/lever", &resourcepack.BlockModel{})
	store.AddModel("minecraft:block/lever_on", &resourcepack.BlockModel{})

	r := NewStateResolver(store)
	block := types.NewInputBlock("lever").WithProperty("facing", "south")
	resolved, err := r.Resolve(block)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("len(resolved) = %d, want 1", len(resolved))
	}
}

func TestResolveMultipartAppliesEveryMatchingCase(t *testing.T) {
	store := resourcepack.NewStore()
	store.AddBlockstate("minecraft:redstone_wire", &resourcepack.BlockstateDefinition{
		Multipart: []resourcepack.MultipartCase{
			{Apply: resourcepack.VariantList{{Model: "block/redstone_dust_dot"}}},
			{
				When:  &resourcepack.MultipartWhen{Simple: map[string]string{"north": "side|up"}},
				Apply: resourcepack.VariantList{{Model: "block/redstone_dust_side"}},
			},
			{
				When:  &resourcepack.MultipartWhen{Simple: map[string]string{"south": "side|up"}},
				Apply: resourcepack.VariantList{{Model: "block/redstone_dust_side"}},
			},
		},
	})
	store.AddModel("minecraft:block/redstone_dust_dot", &resourcepack.BlockModel{})
	store.AddModel("minecraft:block/redstone_dust_side", &resourcepack.BlockModel{})

	r := NewStateResolver(store)
	block := types.NewInputBlock("redstone_wire").WithProperty("north", "side").WithProperty("south", "none")
	resolved, err := r.Resolve(block)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	// Unconditional dot case plus the matching "north=side" case, but not
	// the "south=side|up" case since south=none.
	if len(resolved) != 2 {
		t.Fatalf("len(resolved) = %d, want 2", len(resolved))
	}
}

func TestResolveUnknownBlockstateIsAnError(t *testing.T) {
	store := resourcepack.NewStore()
	r := NewStateResolver(store)
	_, err := r.Resolve(types.NewInputBlock("nonexistent_block"))
	if err == nil {
		t.Fatal("expected an error resolving a block with no blockstate definition")
	}
}
