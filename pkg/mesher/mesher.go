// Package mesher is the public entry point: load a resource pack with
// pkg/resourcepack, build a Mesher over it, and call Mesh once per
// scene to get back a triangle mesh and its packed texture atlas.
package mesher

import (
	"context"

	"schematicmesher/internal/atlas"
	"schematicmesher/internal/mesher"
	"schematicmesher/internal/meshing"
	"schematicmesher/internal/meshing/tint"
	"schematicmesher/internal/types"
	"schematicmesher/pkg/resourcepack"
)

// Re-exported so callers never need to import internal/... themselves.
type (
	Config      = mesher.MesherConfig
	Output      = mesher.MesherOutput
	Mesh        = meshing.Mesh
	Vertex      = meshing.Vertex
	Atlas       = atlas.Atlas
	SkippedBlock = meshing.SkippedBlock
	TintColors  = tint.Colors
	BlockSource = types.BlockSource
	BlockPosition = types.BlockPosition
	BoundingBox = types.BoundingBox
	InputBlock  = types.InputBlock
	SceneJob    = mesher.SceneJob
	SceneResult = mesher.SceneResult
)

// DefaultConfig returns the settings a batch export uses when the
// caller doesn't override anything.
func DefaultConfig() Config {
	return mesher.DefaultConfig()
}

// Mesher converts BlockSource regions into meshed output against one
// shared resource-pack Store.
type Mesher struct {
	inner *mesher.Mesher
}

// New constructs a Mesher over pack's Store using config.
func New(pack *resourcepack.Store, config Config) *Mesher {
	return &Mesher{inner: mesher.New(pack, config)}
}

// Mesh resolves, culls, shades, and greedy-merges every block in bounds,
// then packs the referenced textures into one atlas.
func (m *Mesher) Mesh(source BlockSource, bounds BoundingBox) (*Output, error) {
	return m.inner.Mesh(source, bounds)
}

// NewPool builds a ScenePool that meshes many scenes concurrently
// against one Store, each worker using its own Mesher built from
// config.
func NewPool(pack *resourcepack.Store, config Config, workers int) *ScenePoolHandle {
	return &ScenePoolHandle{
		pool: mesher.NewScenePool(func() *mesher.Mesher {
			return mesher.New(pack, config)
		}, workers, nil),
	}
}

// ScenePoolHandle runs a batch of SceneJobs concurrently and returns
// their SceneResults in submission order.
type ScenePoolHandle struct {
	pool *mesher.ScenePool
}

func (h *ScenePoolHandle) Run(ctx context.Context, jobs []SceneJob) []SceneResult {
	return h.pool.Run(ctx, jobs)
}
