package export

import (
	"encoding/json"
	"io"

	"schematicmesher/internal/mesher"
)

// Metadata is the JSON-serializable summary of one MesherOutput: the
// parts a flat OBJ can't represent on its own — atlas regions, greedy
// per-material AO bakes, and animated-texture playback data.
type Metadata struct {
	Bounds          BoundsMeta          `json:"bounds"`
	AtlasWidth      int                 `json:"atlas_width"`
	AtlasHeight     int                 `json:"atlas_height"`
	AtlasRegions    map[string]RegionMeta `json:"atlas_regions"`
	GreedyMaterials []GreedyMaterialMeta  `json:"greedy_materials"`
	AnimatedTextures []AnimatedTextureMeta `json:"animated_textures"`
	SkippedBlocks   int                 `json:"skipped_blocks"`
}

type BoundsMeta struct {
	Min [3]int `json:"min"`
	Max [3]int `json:"max"`
}

type RegionMeta struct {
	UMin float32 `json:"u_min"`
	VMin float32 `json:"v_min"`
	UMax float32 `json:"u_max"`
	VMax float32 `json:"v_max"`
}

type GreedyMaterialMeta struct {
	Texture string   `json:"texture"`
	AO      [4]uint8 `json:"ao"`
}

type AnimatedTextureMeta struct {
	Texture     string `json:"texture"`
	FrameWidth  int    `json:"frame_width"`
	FrameHeight int    `json:"frame_height"`
	FrameTime   int    `json:"frame_time"`
	Interpolate bool   `json:"interpolate"`
	FrameOrder  []int  `json:"frame_order,omitempty"`
}

// BuildMetadata flattens a MesherOutput's non-geometry data into a
// Metadata value ready to marshal.
func BuildMetadata(out *mesher.MesherOutput) Metadata {
	regions := make(map[string]RegionMeta, len(out.Atlas.Regions))
	for path, r := range out.Atlas.Regions {
		regions[path] = RegionMeta{UMin: r.UMin, VMin: r.VMin, UMax: r.UMax, VMax: r.VMax}
	}

	materials := make([]GreedyMaterialMeta, len(out.GreedyMaterials))
	for i, m := range out.GreedyMaterials {
		materials[i] = GreedyMaterialMeta{Texture: m.Texture, AO: m.AO}
	}

	animated := make([]AnimatedTextureMeta, len(out.AnimatedTextures))
	for i, a := range out.AnimatedTextures {
		animated[i] = AnimatedTextureMeta{
			Texture:     a.Texture,
			FrameWidth:  a.FrameWidth,
			FrameHeight: a.FrameHeight,
			FrameTime:   a.FrameTime,
			Interpolate: a.Interpolate,
			FrameOrder:  a.FrameOrder,
		}
	}

	return Metadata{
		Bounds: BoundsMeta{
			Min: [3]int{out.Bounds.Min.X, out.Bounds.Min.Y, out.Bounds.Min.Z},
			Max: [3]int{out.Bounds.Max.X, out.Bounds.Max.Y, out.Bounds.Max.Z},
		},
		AtlasWidth:       out.Atlas.Width,
		AtlasHeight:      out.Atlas.Height,
		AtlasRegions:     regions,
		GreedyMaterials:  materials,
		AnimatedTextures: animated,
		SkippedBlocks:    len(out.Skipped),
	}
}

// WriteJSON marshals meta to w as indented JSON.
func WriteJSON(w io.Writer, meta Metadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
