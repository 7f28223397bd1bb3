package mesher

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"schematicmesher/internal/meshing"
	"schematicmesher/internal/meshing/entity"
	"schematicmesher/internal/meshing/tint"
	"schematicmesher/internal/types"
	"schematicmesher/pkg/resourcepack"
)

// entityContext bundles the read-only state a block-entity/liquid/
// particle dispatch pass needs over one mesh call.
type entityContext struct {
	source    types.BlockSource
	opacity   *meshing.OpacityClassifier
	tints     *tint.Provider
	lights    *meshing.LightMap
	store     *resourcepack.Store
	logger    *log.Logger
	particles bool
	animated  map[string]*AnimatedTexture
	// dynamic holds synthetic, non-pack textures keyed by the same
	// reserved-prefix names faces reference (e.g. "_particle/flame/..."),
	// so the atlas builder can pack their first frame instead of falling
	// back to the unresolved-reference placeholder every pack-texture
	// miss uses.
	dynamic map[string]*resourcepack.TextureData
}

// buildEntityGeometry walks every block in bounds, dispatching the
// chest/bed/sign/banner block-entity shapes, fluid surfaces, and (when
// enabled) particle animated-texture registration, appending the
// results straight onto mesh. None of this geometry participates in
// face culling or greedy merging: block-entity shapes aren't full
// cubes, and fluids recompute their own visibility per block, so every
// emitted face always stands alone.
func (m *Mesher) buildEntityGeometry(ctx *entityContext, bounds types.BoundingBox, mesh *meshing.Mesh) {
	types.BlocksInRegion(ctx.source, bounds, func(pos types.BlockPosition, block types.InputBlock) {
		if block.IsAir() {
			return
		}
		if geom, tintColor, ok := dispatchBlockEntity(block); ok {
			ctx.appendEntity(mesh, pos, geom, tintColor)
		}
		ctx.appendFluidIfAny(mesh, pos, block)
		if ctx.particles {
			ctx.appendParticles(mesh, pos, block)
		}
	})
}

// dispatchBlockEntity returns the generated geometry for block's
// block-entity shape (chest/bed/sign/banner) if it has one, and the
// dye tint to multiply over it (white for anything that isn't
// dye-colored from a shared base texture).
func dispatchBlockEntity(block types.InputBlock) (entity.Geometry, [4]float32, bool) {
	id := block.BlockID()
	white := [4]float32{1, 1, 1, 1}

	switch {
	case id == "chest" || id == "trapped_chest":
		texture := "entity/chest/normal"
		if id == "trapped_chest" {
			texture = "entity/chest/trapped"
		}
		facing := entity.GetFacing(block)
		model := entity.ChestModel(texture)
		return entity.GenerateGeometry(model, entity.FacingMatrix(facing)), white, true

	case strings.HasSuffix(id, "_bed"):
		color := strings.TrimSuffix(id, "_bed")
		isHead := block.Properties["part"] == "head"
		model := entity.BedModel(color, isHead)
		facing := entity.GetFacing(block)
		return entity.GenerateGeometry(model, entity.FacingMatrix(facing)), white, true

	case strings.HasSuffix(id, "_wall_sign"):
		woodType := strings.TrimSuffix(id, "_wall_sign")
		model := entity.SignModel("entity/signs/"+woodType, true)
		facing := entity.GetFacing(block)
		return entity.GenerateGeometry(model, entity.FacingMatrix(facing)), white, true

	case strings.HasSuffix(id, "_sign"):
		woodType := strings.TrimSuffix(id, "_sign")
		model := entity.SignModel("entity/signs/"+woodType, false)
		rot := parseRotationProperty(block)
		return entity.GenerateGeometry(model, entity.StandingRotationMatrix(rot)), white, true

	case strings.HasSuffix(id, "_wall_banner"):
		color := strings.TrimSuffix(id, "_wall_banner")
		model := entity.BannerModel(false, "entity/banner_base")
		facing := entity.GetFacing(block)
		return entity.GenerateGeometry(model, entity.FacingMatrix(facing)), entity.DyeRGB(color), true

	case strings.HasSuffix(id, "_banner"):
		color := strings.TrimSuffix(id, "_banner")
		model := entity.BannerModel(true, "entity/banner_base")
		rot := parseRotationProperty(block)
		return entity.GenerateGeometry(model, entity.StandingRotationMatrix(rot)), entity.DyeRGB(color), true

	case id == "mob_spawner":
		// A spawner's contained mob isn't represented in static voxel
		// data, so the shared generic mob box stands in for whatever
		// it would spawn, facing south like an idle mob preview.
		model := entity.MobBoxModel("entity/mob_spawner_preview")
		return entity.GenerateGeometry(model, entity.EntityRootTransform("south")), white, true

	default:
		return entity.Geometry{}, white, false
	}
}

func parseRotationProperty(block types.InputBlock) int {
	v, ok := block.Properties["rotation"]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// appendEntity offsets geom's vertices by pos, shades them by the
// light level at pos and tintColor, and folds the result into mesh.
func (ctx *entityContext) appendEntity(mesh *meshing.Mesh, pos types.BlockPosition, geom entity.Geometry, tintColor [4]float32) {
	brightness := float32(1)
	if ctx.lights != nil {
		brightness = meshing.Brightness(ctx.lights.LevelAt(pos), 0)
	}
	shade := [4]float32{tintColor[0] * brightness, tintColor[1] * brightness, tintColor[2] * brightness, tintColor[3]}

	vertices := make([]meshing.Vertex, len(geom.Vertices))
	for i, v := range geom.Vertices {
		v.Position[0] += float32(pos.X)
		v.Position[1] += float32(pos.Y)
		v.Position[2] += float32(pos.Z)
		v.Color = shade
		vertices[i] = v
	}

	textures := make([]meshing.FaceTextureInfo, len(geom.FaceTextures))
	for i, ft := range geom.FaceTextures {
		textures[i] = meshing.FaceTextureInfo{Texture: ft.Texture, IsTransparent: ft.IsTransparent}
	}

	mesh.AppendEntityFaces(vertices, geom.Indices, textures)
}

// appendFluidIfAny generates a fluid block's surface geometry, or the
// waterlogged overlay for any non-water block carrying that property,
// and folds it into mesh.
func (ctx *entityContext) appendFluidIfAny(mesh *meshing.Mesh, pos types.BlockPosition, block types.InputBlock) {
	state, ok := entity.FluidStateFromBlock(block)
	if !ok {
		if !meshing.IsWaterlogged(block) || block.BlockID() == "water" {
			return
		}
		state = entity.FluidState{Type: entity.Water, Amount: 8, IsSource: true}
	}

	isOpaque := func(p types.BlockPosition) bool {
		b, ok := ctx.source.GetBlock(p)
		if !ok {
			return false
		}
		return ctx.opacity.Classify(b).Opaque
	}

	baseColor := [4]float32{1, 1, 1, 1}
	if state.Type == entity.Water {
		baseColor = ctx.tints.GetTint("water", block.Properties, 0)
	}

	vertices, indices, faceTextures := entity.GenerateFluidGeometry(ctx.source, pos, state, isOpaque, baseColor)
	if len(vertices) == 0 {
		return
	}
	textures := make([]meshing.FaceTextureInfo, len(faceTextures))
	for i, ft := range faceTextures {
		textures[i] = meshing.FaceTextureInfo{Texture: ft.Texture, IsTransparent: ft.IsTransparent}
	}
	mesh.AppendEntityFaces(vertices, indices, textures)
}

// flameBaseTexture names the real pack texture a flame-particle's
// flicker sheet is synthesized from: vanilla draws torch and candle
// flame particles from the same flame sprite used elsewhere in the UI,
// not from the block's own face texture.
const flameBaseTexture = "particle/flame"

// particleHalfWidth and particleHeight size a flame's cross-quad small
// relative to a full block, matching vanilla's thin flame billboard.
const (
	particleHalfWidth = 0.06
	particleHeight    = 0.18
)

// appendParticles emits the cross-quad geometry for torch/candle flame
// particles at block at pos (spec.md §4.9's fixed block-local
// positions, §8 scenario 6's three wick positions for a lit candle
// cluster) and registers the synthetic flicker sprite sheet each
// particle's faces sample, keyed by the reserved "_particle/" dynamic-
// texture prefix so it packs into the atlas alongside ordinary pack
// textures like any other dynamic composite (banner/sign/inventory).
func (ctx *entityContext) appendParticles(mesh *meshing.Mesh, pos types.BlockPosition, block types.InputBlock) {
	id := block.BlockID()
	isFlame := id == "torch" || id == "wall_torch" || id == "soul_torch" || id == "soul_wall_torch"
	isLitCandle := strings.HasSuffix(id, "candle") && block.Properties["lit"] == "true"
	if !isFlame && !isLitCandle {
		return
	}

	var centers [][3]float32
	switch {
	case id == "wall_torch" || id == "soul_wall_torch":
		centers = [][3]float32{entity.WallTorchCenter(entity.GetFacing(block), 0.6)}
	case id == "torch" || id == "soul_torch":
		centers = [][3]float32{{0.5, 0.6, 0.5}}
	default: // lit candle(s)
		count := 1
		if v, ok := block.Properties["candles"]; ok {
			if n, err := strconv.Atoi(v); err == nil {
				count = n
			}
		}
		centers = entity.CandlePositions(count)
	}

	key := "_particle/flame/" + id
	geom := entity.GenerateCrossGeometry(centers, particleHalfWidth, particleHeight, key)
	vertices := make([]meshing.Vertex, len(geom.Vertices))
	for i, v := range geom.Vertices {
		v.Position[0] += float32(pos.X)
		v.Position[1] += float32(pos.Y)
		v.Position[2] += float32(pos.Z)
		vertices[i] = v
	}
	textures := make([]meshing.FaceTextureInfo, len(geom.FaceTextures))
	for i, ft := range geom.FaceTextures {
		textures[i] = meshing.FaceTextureInfo{Texture: ft.Texture, IsTransparent: ft.IsTransparent}
	}
	mesh.AppendEntityFaces(vertices, geom.Indices, textures)

	ctx.registerParticleAnimation(key)
}

// registerParticleAnimation records an animated flicker sprite sheet
// under key (idempotent per scene), the static-mesh-export equivalent
// of the particle flames vanilla spawns at render time: frame data
// travels as exported metadata for a downstream renderer to animate
// the cross-quad faces appendParticles already emitted.
func (ctx *entityContext) registerParticleAnimation(key string) {
	if _, exists := ctx.animated[key]; exists {
		return
	}

	base, err := ctx.store.GetTexture(flameBaseTexture)
	if err != nil {
		base = resourcepack.Placeholder()
	}
	sheet := entity.BuildFlickerSpriteSheet(base, 2)
	ctx.dynamic[key] = sheet.FirstFrame()
	png, err := encodeTexturePNG(sheet)
	if err != nil {
		ctx.logger.Warn("failed to encode particle flicker sheet", "key", key, "err", err)
		return
	}
	ctx.animated[key] = &AnimatedTexture{
		Texture:        key,
		SpriteSheetPNG: png,
		FrameWidth:     sheet.Width,
		FrameHeight:    sheet.Height / sheet.FrameCount,
		FrameTime:      sheet.FrameTime,
		Interpolate:    sheet.Interpolate,
		FrameOrder:     sheet.FrameOrder,
	}
}
