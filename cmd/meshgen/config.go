package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"schematicmesher/internal/mesher"
	"schematicmesher/internal/meshing/tint"
)

// fileConfig mirrors MesherConfig's fields in TOML's lowercase_snake
// convention, the same "tmp config struct decoded then copied over"
// shape the richest-stack example in the pack uses for its own TOML
// settings files.
type fileConfig struct {
	CullHiddenFaces    bool    `toml:"cull_hidden_faces"`
	CullOccludedBlocks bool    `toml:"cull_occluded_blocks"`
	GreedyMeshing      bool    `toml:"greedy_meshing"`
	AmbientOcclusion   bool    `toml:"ambient_occlusion"`
	AOIntensity        float32 `toml:"ao_intensity"`
	AtlasMaxSize       int     `toml:"atlas_max_size"`
	AtlasPadding       int     `toml:"atlas_padding"`
	IncludeAir         bool    `toml:"include_air"`
	EnableBlockLight   bool    `toml:"enable_block_light"`
	EnableSkyLight     bool    `toml:"enable_sky_light"`
	SkyLightLevel      int     `toml:"sky_light_level"`
	EnableParticles    bool    `toml:"enable_particles"`
}

// loadConfig reads a TOML config file at path, falling back to
// mesher.DefaultConfig for any field the file doesn't set by starting
// from the defaults and decoding over a copy of them.
func loadConfig(path string) (mesher.MesherConfig, error) {
	cfg := mesher.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	fc := fileConfig{
		CullHiddenFaces:    cfg.CullHiddenFaces,
		CullOccludedBlocks: cfg.CullOccludedBlocks,
		GreedyMeshing:      cfg.GreedyMeshing,
		AmbientOcclusion:   cfg.AmbientOcclusion,
		AOIntensity:        cfg.AOIntensity,
		AtlasMaxSize:       cfg.AtlasMaxSize,
		AtlasPadding:       cfg.AtlasPadding,
		IncludeAir:         cfg.IncludeAir,
		EnableBlockLight:   cfg.EnableBlockLight,
		EnableSkyLight:     cfg.EnableSkyLight,
		SkyLightLevel:      cfg.SkyLightLevel,
		EnableParticles:    cfg.EnableParticles,
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, err
	}

	cfg.CullHiddenFaces = fc.CullHiddenFaces
	cfg.CullOccludedBlocks = fc.CullOccludedBlocks
	cfg.GreedyMeshing = fc.GreedyMeshing
	cfg.AmbientOcclusion = fc.AmbientOcclusion
	cfg.AOIntensity = fc.AOIntensity
	cfg.AtlasMaxSize = fc.AtlasMaxSize
	cfg.AtlasPadding = fc.AtlasPadding
	cfg.IncludeAir = fc.IncludeAir
	cfg.EnableBlockLight = fc.EnableBlockLight
	cfg.EnableSkyLight = fc.EnableSkyLight
	cfg.SkyLightLevel = fc.SkyLightLevel
	cfg.EnableParticles = fc.EnableParticles
	cfg.TintColors = tintColorsPtr()
	return cfg, nil
}

// tintColorsPtr returns nil so Mesher falls back to tint.DefaultColors
// internally; a future flag could point this at a biome-specific
// override file.
func tintColorsPtr() *tint.Colors {
	return nil
}
