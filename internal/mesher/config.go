// Package mesher orchestrates the resolver, meshing, and atlas
// packages into the single entry point external callers use: build a
// Store, construct a Mesher with a MesherConfig, then call Mesh once
// per scene.
package mesher

import (
	"schematicmesher/internal/meshing/tint"
)

// MesherConfig mirrors every field of the original Config type: toggles
// for culling, greedy meshing, ambient occlusion, atlas sizing, and
// lighting.
type MesherConfig struct {
	CullHiddenFaces bool
	// CullOccludedBlocks is accepted for config-file compatibility but
	// currently has no effect: a block entirely surrounded by opaque
	// neighbors still gets its (already face-culled, empty) geometry
	// pass run rather than being skipped outright, since skipping it
	// would also skip its contribution to the light-map BFS seed set.
	CullOccludedBlocks bool
	GreedyMeshing       bool
	AmbientOcclusion    bool
	AOIntensity         float32
	AtlasMaxSize        int
	AtlasPadding        int
	IncludeAir          bool
	TintColors          *tint.Colors
	EnableBlockLight    bool
	EnableSkyLight      bool
	SkyLightLevel       int
	EnableParticles     bool
}

// DefaultConfig returns the settings a batch export uses when the
// caller doesn't override anything: culling and greedy meshing and AO
// all on, a 4096px atlas cap with 1px padding, full daylight.
func DefaultConfig() MesherConfig {
	return MesherConfig{
		CullHiddenFaces:  true,
		GreedyMeshing:    true,
		AmbientOcclusion: true,
		AOIntensity:      1.0,
		AtlasMaxSize:     4096,
		AtlasPadding:     1,
		IncludeAir:       false,
		EnableBlockLight: true,
		EnableSkyLight:   true,
		SkyLightLevel:    15,
		EnableParticles:  true,
	}
}
