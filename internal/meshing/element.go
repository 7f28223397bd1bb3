package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"schematicmesher/internal/resolver"
	"schematicmesher/internal/meshing/tint"
	"schematicmesher/internal/types"
	"schematicmesher/pkg/resourcepack"
)

// BuildOptions controls how a Builder emits geometry for one mesh call;
// it is the subset of MesherConfig the geometry emitter itself needs,
// kept here rather than importing the orchestration package to avoid a
// dependency cycle (internal/mesher imports internal/meshing, not the
// reverse).
type BuildOptions struct {
	CullHiddenFaces  bool
	GreedyMeshing    bool
	AmbientOcclusion bool
	AOIntensity      float32
	IncludeAir       bool
}

// TextureLookup resolves a resource location to its decoded pixels,
// used only to classify transparency (HasTransparency), both for the
// opaque-cube test and for routing faces into the opaque or
// cutout/blend mesh; actual atlas placement happens later.
type TextureLookup interface {
	GetTexture(location string) (*resourcepack.TextureData, error)
}

// OpacityClassifier memoizes ClassifyOpacity per distinct block
// (name+properties) over one mesh call, shared between face culling,
// AO sampling, and light-map propagation so each is classified once.
type OpacityClassifier struct {
	states   *resolver.StateResolver
	textures TextureLookup
	cache    map[string]Opacity
}

func NewOpacityClassifier(states *resolver.StateResolver, textures TextureLookup) *OpacityClassifier {
	return &OpacityClassifier{states: states, textures: textures, cache: make(map[string]Opacity)}
}

// Classify returns block's Opacity, resolving and caching it on first
// use.
func (c *OpacityClassifier) Classify(block types.InputBlock) Opacity {
	key := block.CacheKey()
	if op, ok := c.cache[key]; ok {
		return op
	}
	op := c.classify(block)
	c.cache[key] = op
	return op
}

func (c *OpacityClassifier) classify(block types.InputBlock) Opacity {
	if block.IsAir() {
		return Opacity{IsAir: true}
	}
	resolved, err := c.states.Resolve(block)
	if err != nil {
		return Opacity{}
	}
	var elements []ElementGeometry
	for _, rm := range resolved {
		for _, elem := range rm.Model.Elements {
			faces := make(map[types.Direction]struct{}, len(elem.Faces))
			for name := range elem.Faces {
				if dir, ok := types.DirectionFromString(name); ok {
					faces[rm.Transform.RotateDirection(dir)] = struct{}{}
				}
			}
			elements = append(elements, ElementGeometry{
				From:  elem.From,
				To:    elem.To,
				Faces: faces,
			})
		}
	}
	op := ClassifyOpacity(block, elements)
	if op.Opaque && c.hasTransparentTexture(resolved) {
		op.Opaque = false
	}
	return op
}

// hasTransparentTexture reports whether any face texture referenced by
// the block's resolved models carries an alpha channel, so a
// geometrically full cube (e.g. a custom glass-like block not present
// in the hardcoded transparentGroups table) never incorrectly culls
// its neighbors' faces.
func (c *OpacityClassifier) hasTransparentTexture(resolved []resolver.ResolvedModel) bool {
	if c.textures == nil {
		return false
	}
	for _, rm := range resolved {
		for _, elem := range rm.Model.Elements {
			for _, face := range elem.Faces {
				ref := resolver.ResolveTextureRef(rm.Model, face.Texture)
				tex, err := c.textures.GetTexture(ref)
				if err != nil {
					continue
				}
				if tex.HasTransparency() {
					return true
				}
			}
		}
	}
	return false
}

// Builder walks a BlockSource and emits a Mesh, dispatching each block
// to per-face geometry (directly appended) or to the greedy merger
// when the face qualifies, then flushing merged quads into the mesh at
// the end of Build.
type Builder struct {
	states   *resolver.StateResolver
	opacity  *OpacityClassifier
	tints    *tint.Provider
	lights   *LightMap
	opts     BuildOptions

	greedy *GreedyMesher
	mesh   *Mesh

	Skipped     []SkippedBlock
	MergedQuads []MergedQuad
}

// SkippedBlock records a per-block resolution failure; per spec.md §7
// a block that fails to resolve is logged and skipped rather than
// aborting the whole mesh call.
type SkippedBlock struct {
	Position types.BlockPosition
	Block    types.InputBlock
	Err      error
}

func NewBuilder(states *resolver.StateResolver, opacity *OpacityClassifier, tints *tint.Provider, lights *LightMap, opts BuildOptions) *Builder {
	return &Builder{
		states: states, opacity: opacity, tints: tints, lights: lights, opts: opts,
		greedy: NewGreedyMesher(),
		mesh:   NewMesh(),
	}
}

// Build walks every block in source within bounds and returns the
// assembled mesh (after flushing any greedy-merged quads).
func (b *Builder) Build(source types.BlockSource, bounds types.BoundingBox) *Mesh {
	types.BlocksInRegion(source, bounds, func(p types.BlockPosition, block types.InputBlock) {
		if !b.opts.IncludeAir && block.IsAir() {
			return
		}
		b.addBlock(source, p, block)
	})
	b.flushGreedy()
	return b.mesh
}

func (b *Builder) addBlock(source types.BlockSource, pos types.BlockPosition, block types.InputBlock) {
	resolved, err := b.states.Resolve(block)
	if err != nil {
		b.Skipped = append(b.Skipped, SkippedBlock{Position: pos, Block: block, Err: err})
		return
	}

	this := b.opacity.Classify(block)

	for _, rm := range resolved {
		for _, elem := range rm.Model.Elements {
			b.addElement(source, pos, block, this, rm, elem)
		}
	}
}

func (b *Builder) addElement(source types.BlockSource, pos types.BlockPosition, block types.InputBlock, this Opacity, rm resolver.ResolvedModel, elem resourcepack.ModelElement) {
	from := [3]float32{elem.From[0] / 16, elem.From[1] / 16, elem.From[2] / 16}
	to := [3]float32{elem.To[0] / 16, elem.To[1] / 16, elem.To[2] / 16}

	greedyEligible := isGreedyEligible(elem, rm.Transform)

	for faceName, face := range elem.Faces {
		dir, ok := types.DirectionFromString(faceName)
		if !ok {
			continue
		}

		worldDir := rm.Transform.RotateDirection(dir)
		if b.opts.CullHiddenFaces && b.shouldCull(source, pos, this, rm.Transform, face) {
			continue
		}

		corners := generateFaceVertices(dir, from, to)
		normal := mgl32.Vec3{dir.Normal()[0], dir.Normal()[1], dir.Normal()[2]}

		if elem.Rotation != nil {
			rot := types.ElementRotation{
				Origin:  elem.Rotation.Origin,
				Angle:   elem.Rotation.Angle,
				Rescale: elem.Rotation.Rescale,
			}
			rot.Axis, _ = types.AxisFromString(elem.Rotation.Axis)
			corners, normal = applyElementRotation(corners, normal, rot)
		}
		corners, normal = applyBlockTransform(corners, normal, rm.Transform)

		offset := mgl32.Vec3{float32(pos.X), float32(pos.Y), float32(pos.Z)}
		for i := range corners {
			corners[i] = corners[i].Add(offset)
		}

		texRef := resolver.ResolveTextureRef(rm.Model, face.Texture)
		uvs := rotateUVs(face.Rotation)
		faceUV := face.NormalizedUV()
		isTransparent := b.faceTextureIsTransparent(texRef)

		tintColor := b.tints.GetTint(block.BlockID(), block.Properties, face.TintIndexOrDefault())
		emissive := b.lights != nil && b.lights.IsEmissive(pos)
		light := 0
		if b.lights != nil {
			light = b.lights.LevelAt(pos.Neighbor(worldDir))
		}
		brightness := Brightness(light, 0)
		if emissive {
			brightness = 1
		}

		if greedyEligible && b.opts.GreedyMeshing && face.Rotation == 0 && faceUV == [4]float32{0, 0, 1, 1} {
			var aoQuant [4]uint8
			if b.opts.AmbientOcclusion && !emissive {
				raw := b.cornerAO(source, pos, dir)
				aoQuant = QuantizeAO(raw, b.opts.AOIntensity)
			} else {
				aoQuant = [4]uint8{255, 255, 255, 255}
			}
			key := FaceMergeKey{
				Texture: texRef,
				Tint:    QuantizeColor(tintColor),
				AO:      aoQuant,
				Light:   uint8(light),
			}
			b.greedy.AddFace(pos, worldDir, key, isTransparent)
			continue
		}

		color := [4]float32{tintColor[0] * brightness, tintColor[1] * brightness, tintColor[2] * brightness, tintColor[3]}

		var ao [4]float32
		if b.opts.AmbientOcclusion && !emissive {
			raw := b.cornerAO(source, pos, dir)
			intensity := b.opts.AOIntensity
			for i := range ao {
				ao[i] = 1 - intensity*(1-raw[i])
			}
		} else {
			ao = [4]float32{1, 1, 1, 1}
		}

		verts := [4]Vertex{}
		for i := 0; i < 4; i++ {
			uv := faceUV
			local := uvs[i]
			u := uv[0] + local[0]*(uv[2]-uv[0])
			v := uv[1] + local[1]*(uv[3]-uv[1])
			shade := color
			shade[0] *= ao[i]
			shade[1] *= ao[i]
			shade[2] *= ao[i]
			verts[i] = NewVertex(fromVec3(corners[i]), fromVec3(normal), [2]float32{u, v}).WithColor(shade)
		}
		b.mesh.AddQuadAO(verts[0], verts[1], verts[2], verts[3], ao[0], ao[1], ao[2], ao[3], texRef, isTransparent)
	}
}

// shouldCull applies the asymmetric opacity rule against the neighbor
// named by the face's model cullface, with that direction rotated by
// the block's variant transform the same way the face itself was. A
// face with no cullface is never culled.
func (b *Builder) shouldCull(source types.BlockSource, pos types.BlockPosition, this Opacity, transform types.BlockTransform, face resourcepack.ModelFace) bool {
	if face.CullFace == "" {
		return false
	}
	cullDir, ok := types.DirectionFromString(face.CullFace)
	if !ok {
		return false
	}
	neighborPos := pos.Neighbor(transform.RotateDirection(cullDir))
	if !source.Bounds().Contains(neighborPos) {
		return false
	}
	neighbor, ok := source.GetBlock(neighborPos)
	if !ok {
		return false
	}
	return ShouldCullFace(this, b.opacity.Classify(neighbor))
}

// faceTextureIsTransparent reports whether the given texture reference
// carries an alpha channel, the signal that routes a face into the
// cutout/blend mesh instead of the opaque one. This is independent of
// the block's transparent-group membership: a cross-model block like a
// flower is never in that table but still has a transparent texture
// that needs alpha testing.
func (b *Builder) faceTextureIsTransparent(texRef string) bool {
	if b.opacity.textures == nil {
		return false
	}
	tex, err := b.opacity.textures.GetTexture(texRef)
	if err != nil {
		return false
	}
	return tex.HasTransparency()
}

// cornerAO samples the three-neighbor occlusion formula for each of a
// face's four corners: each corner's two side neighbors and its
// diagonal neighbor, all in the layer of blocks directly in front of
// the face (pos offset by dir). Each value is VertexAO/3, in 0..1 with
// 1 meaning unoccluded.
func (b *Builder) cornerAO(source types.BlockSource, pos types.BlockPosition, dir types.Direction) [4]float32 {
	u, v := perpendicularAxes(dir)
	facePos := pos.Neighbor(dir)

	occupied := func(p types.BlockPosition) bool {
		if !source.Bounds().Contains(p) {
			return false
		}
		block, ok := source.GetBlock(p)
		if !ok {
			return false
		}
		return b.opacity.Classify(block).Opaque
	}

	corner := func(du, dv int) float32 {
		sideU := occupied(facePos.Add(u[0]*du, u[1]*du, u[2]*du))
		sideV := occupied(facePos.Add(v[0]*dv, v[1]*dv, v[2]*dv))
		cornerP := occupied(facePos.Add(u[0]*du+v[0]*dv, u[1]*du+v[1]*dv, u[2]*du+v[2]*dv))
		return VertexAO(sideU, sideV, cornerP) / 3
	}

	return [4]float32{corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)}
}

func perpendicularAxes(dir types.Direction) (u, v [3]int) {
	switch dir.Axis() {
	case types.AxisX:
		return [3]int{0, 0, 1}, [3]int{0, 1, 0}
	case types.AxisY:
		return [3]int{1, 0, 0}, [3]int{0, 0, 1}
	default:
		return [3]int{1, 0, 0}, [3]int{0, 1, 0}
	}
}

// isGreedyEligible reports whether an element's faces qualify for
// greedy merging: a full-size, axis-aligned cube with no element or
// block-level rotation applied (rotated/thin/off-axis geometry merges
// poorly and is emitted as standalone quads instead). addElement also
// requires each face to use the default full-tile UV with no UV
// rotation before handing it to the greedy mesher.
func isGreedyEligible(elem resourcepack.ModelElement, transform types.BlockTransform) bool {
	if elem.Rotation != nil {
		return false
	}
	if !transform.IsIdentity() {
		return false
	}
	const eps = 0.001
	near := func(a, want float32) bool {
		d := a - want
		if d < 0 {
			d = -d
		}
		return d < eps
	}
	return near(elem.From[0], 0) && near(elem.From[1], 0) && near(elem.From[2], 0) &&
		near(elem.To[0], 16) && near(elem.To[1], 16) && near(elem.To[2], 16)
}

// flushGreedy merges every recorded greedy-eligible face and appends
// the resulting rectangles to the mesh, tiling UVs across the merged
// footprint (width/height repeats of the source texture) rather than
// stretching one tile over the whole rectangle, and recording each
// merged quad's own FaceMapping (flagged Greedy) so it still
// participates in the opaque/cutout/blend split; the atlas UV remap
// skips greedy faces and leaves their tiled UVs as written. The quad's own corners
// already carry the merge key's baked AO (uniform since merging
// required every cell to share it), so flushGreedy only needs to
// apply tint and AO shading, not recompute it.
func (b *Builder) flushGreedy() {
	b.MergedQuads = b.greedy.Merge()
	for _, q := range b.MergedQuads {
		positions := q.WorldPositions()
		normal := q.Direction.Normal()
		tintColor := [4]float32{
			float32(q.Tint[0]) / 255, float32(q.Tint[1]) / 255, float32(q.Tint[2]) / 255, float32(q.Tint[3]) / 255,
		}
		w, h := float32(q.Width), float32(q.Height)
		tiledUVs := [4][2]float32{{0, 0}, {w, 0}, {w, h}, {0, h}}
		ao := q.AO
		var verts [4]Vertex
		for i := 0; i < 4; i++ {
			shade := tintColor
			a := float32(ao[i]) / 255
			shade[0] *= a
			shade[1] *= a
			shade[2] *= a
			verts[i] = NewVertex(positions[i], normal, tiledUVs[i]).WithColor(shade)
		}
		b.mesh.AddFaceQuad(verts[0], verts[1], verts[2], verts[3], q.Texture, q.IsTransparent, true)
	}
}

// IsWaterlogged reports whether block carries water regardless of its
// own model (the waterlogged property is an overlay the original
// checks directly rather than threading through model resolution).
func IsWaterlogged(block types.InputBlock) bool {
	if block.BlockID() == "water" || block.BlockID() == "bubble_column" {
		return true
	}
	return block.Properties["waterlogged"] == "true"
}
