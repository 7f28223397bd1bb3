// Package mesher orchestrates the resolver, meshing, and atlas
// packages into the single entry point external callers use: build a
// Store, construct a Mesher with a MesherConfig, then call Mesh once
// per scene.
package mesher

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"schematicmesher/internal/atlas"
	"schematicmesher/internal/meshing"
	"schematicmesher/internal/meshing/tint"
	"schematicmesher/internal/resolver"
	"schematicmesher/internal/types"
	"schematicmesher/pkg/resourcepack"
)

// AnimatedTexture is one registered animated-texture export: a full
// vertical sprite sheet plus the playback metadata needed to drive it.
// AtlasRegion is set when the sheet's first frame is packed into the
// atlas, as an ordinary face texture or a particle sheet's first frame
// (so a renderer using the atlas can find where the static frame
// lives); it's nil when the texture has no atlas region.
type AnimatedTexture struct {
	Texture        string
	SpriteSheetPNG []byte
	FrameWidth     int
	FrameHeight    int
	FrameTime      int
	Interpolate    bool
	FrameOrder     []int
	AtlasRegion    *atlas.Region
}

// MesherOutput is the result of one Mesh call: geometry split by
// render pass, the packed atlas, the greedy-merged faces re-exported
// as flat-shaded per-texture materials, any animated-texture sprite
// sheets referenced by the scene, and per-block failures that were
// logged and skipped rather than aborting the run.
type MesherOutput struct {
	OpaqueMesh       *meshing.Mesh
	CutoutMesh       *meshing.Mesh
	BlendMesh        *meshing.Mesh
	Atlas            *atlas.Atlas
	GreedyMaterials  []meshing.GreedyMaterial
	AnimatedTextures []AnimatedTexture
	Bounds           types.BoundingBox
	Skipped          []meshing.SkippedBlock
}

// Mesher converts one BlockSource region into a MesherOutput using a
// shared resource-pack Store. A Mesher is safe to reuse (and to call
// concurrently, via ScenePool) across many scenes sharing the same
// Store, since the resolver caches it owns are created fresh per call.
type Mesher struct {
	store  *resourcepack.Store
	config MesherConfig
	logger *log.Logger
}

// New constructs a Mesher over store with config, logging through a
// leveled charmbracelet/log logger at Info by default.
func New(store *resourcepack.Store, config MesherConfig) *Mesher {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "schematicmesher",
	})
	return &Mesher{store: store, config: config, logger: logger}
}

// WithLogger overrides the default logger, e.g. to add a per-scene
// correlation-id prefix from ScenePool.
func (m *Mesher) WithLogger(logger *log.Logger) *Mesher {
	m.logger = logger
	return m
}

// Mesh runs the full build in the fixed six-step order: flush
// greedy-merged geometry into the mesh (done inside Builder.Build),
// build the atlas, remap non-greedy UVs into it, split by
// opaque/cutout/blend, partition greedy quads into AO-baked
// materials, and collect animated-texture exports.
func (m *Mesher) Mesh(source types.BlockSource, bounds types.BoundingBox) (*MesherOutput, error) {
	states := resolver.NewStateResolver(m.store)
	opacity := meshing.NewOpacityClassifier(states, m.store)

	colors := tint.DefaultColors()
	if m.config.TintColors != nil {
		colors = *m.config.TintColors
	}
	tints := tint.NewProvider(colors)

	var lights *meshing.LightMap
	if m.config.EnableBlockLight || m.config.EnableSkyLight {
		lights = meshing.ComputeLightMap(source, opacity.Classify, m.config.SkyLightLevel, m.config.EnableBlockLight, m.config.EnableSkyLight)
	}

	builder := meshing.NewBuilder(states, opacity, tints, lights, meshing.BuildOptions{
		CullHiddenFaces:  m.config.CullHiddenFaces,
		GreedyMeshing:    m.config.GreedyMeshing,
		AmbientOcclusion: m.config.AmbientOcclusion,
		AOIntensity:      m.config.AOIntensity,
		IncludeAir:       m.config.IncludeAir,
	})

	// Step 1: block-model geometry, including the greedy-merge flush,
	// happens inside Build.
	mesh := builder.Build(source, bounds)
	for _, skip := range builder.Skipped {
		m.logger.Warn("skipping block that failed to resolve", "block", skip.Block.Name, "pos", skip.Position, "err", skip.Err)
	}

	entCtx := &entityContext{
		source:    source,
		opacity:   opacity,
		tints:     tints,
		lights:    lights,
		store:     m.store,
		logger:    m.logger,
		particles: m.config.EnableParticles,
		animated:  make(map[string]*AnimatedTexture),
		dynamic:   make(map[string]*resourcepack.TextureData),
	}
	m.buildEntityGeometry(entCtx, bounds, mesh)

	// Step 2: pack every non-greedy face's texture into one atlas,
	// preferring any synthetic/dynamic texture the entity pass produced
	// (banner/sign/particle composites) over a pack lookup for the same
	// reserved-prefix path.
	atlasBuilder := atlas.NewBuilder(m.config.AtlasMaxSize, m.config.AtlasPadding)
	m.collectFaceTextures(mesh, atlasBuilder, entCtx.dynamic)

	atl, err := atlasBuilder.Build()
	if err != nil {
		m.logger.Error("atlas build failed", "err", err)
		return nil, err
	}

	// Step 3: remap.
	remapUVs(mesh, atl)

	// Step 4: split by render pass.
	opaqueMesh, cutoutMesh, blendMesh := mesh.Split()

	// Step 5: greedy materials with AO baked into their own texture.
	materials := meshing.BuildGreedyMaterials(builder.MergedQuads, m.store)

	// Step 6: animated-texture exports, pack textures plus particles.
	animated := m.collectAnimatedTextures(mesh, atl, entCtx.animated)

	return &MesherOutput{
		OpaqueMesh:       opaqueMesh,
		CutoutMesh:       cutoutMesh,
		BlendMesh:        blendMesh,
		Atlas:            atl,
		GreedyMaterials:  materials,
		AnimatedTextures: animated,
		Bounds:           bounds,
		Skipped:          builder.Skipped,
	}, nil
}

// collectFaceTextures adds every distinct non-greedy face texture mesh
// references to builder: a dynamic-texture hit wins over a pack lookup
// (reserved-prefix synthetic composites shadow any same-named pack
// path), and any reference neither resolves falls back to the
// placeholder texture with a warning.
func (m *Mesher) collectFaceTextures(mesh *meshing.Mesh, builder *atlas.Builder, dynamic map[string]*resourcepack.TextureData) {
	seen := make(map[string]bool)
	for _, f := range mesh.Faces {
		if f.Greedy || seen[f.Texture] {
			continue
		}
		seen[f.Texture] = true
		if tex, ok := dynamic[f.Texture]; ok {
			builder.Add(f.Texture, tex)
			continue
		}
		tex, err := m.store.GetTexture(f.Texture)
		if err != nil {
			m.logger.Warn("unresolved texture reference", "ref", f.Texture)
			tex = resourcepack.Placeholder()
		}
		builder.Add(f.Texture, tex)
	}
}

// collectAnimatedTextures finds every distinct non-greedy face texture
// that is an animated pack texture and exports its full sprite sheet,
// then folds in the particle flicker sheets entityAnimated already
// built, returning the combined list sorted by texture name for
// deterministic output.
func (m *Mesher) collectAnimatedTextures(mesh *meshing.Mesh, atl *atlas.Atlas, entityAnimated map[string]*AnimatedTexture) []AnimatedTexture {
	byTexture := make(map[string]*AnimatedTexture)

	seen := make(map[string]bool)
	for _, f := range mesh.Faces {
		if f.Greedy || seen[f.Texture] {
			continue
		}
		seen[f.Texture] = true
		tex, err := m.store.GetTexture(f.Texture)
		if err != nil || !tex.IsAnimated {
			continue
		}
		png, err := encodeTexturePNG(tex)
		if err != nil {
			m.logger.Warn("failed to encode animated texture", "ref", f.Texture, "err", err)
			continue
		}
		entry := &AnimatedTexture{
			Texture:        f.Texture,
			SpriteSheetPNG: png,
			FrameWidth:     tex.Width,
			FrameHeight:    tex.Height / tex.FrameCount,
			FrameTime:      tex.FrameTime,
			Interpolate:    tex.Interpolate,
			FrameOrder:     tex.FrameOrder,
		}
		if region, ok := atl.Region(f.Texture); ok {
			entry.AtlasRegion = &region
		}
		byTexture[f.Texture] = entry
	}

	for key, entry := range entityAnimated {
		if region, ok := atl.Region(key); ok {
			entry.AtlasRegion = &region
		}
		byTexture[key] = entry
	}

	keys := make([]string, 0, len(byTexture))
	for k := range byTexture {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]AnimatedTexture, len(keys))
	for i, k := range keys {
		out[i] = *byTexture[k]
	}
	return out
}

func encodeTexturePNG(tex *resourcepack.TextureData) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, tex.Width, tex.Height))
	copy(img.Pix, tex.Pixels)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, types.WrapError(types.ErrAtlasBuild, "encoding animated texture PNG", err)
	}
	return buf.Bytes(), nil
}
