package meshing

import (
	"bytes"
	"image"
	"image/png"
	"sort"

	"schematicmesher/pkg/resourcepack"
)

func encodePNG(tex *resourcepack.TextureData) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, tex.Width, tex.Height))
	copy(img.Pix, tex.Pixels)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GreedyMaterial is one (texture, AO-pattern) group of greedy-merged
// quads exported as its own flat-shaded material: an AO-baked texture
// tile plus a mesh whose vertices carry tint only (white where
// untinted), for exporters that would rather sample a pre-shaded
// texture than rely on per-vertex AO. The main assembled mesh already
// carries the same AO baked into its merged faces' vertex colors
// instead (see Builder.flushGreedy), so the two representations are
// equivalent; callers pick whichever their renderer prefers.
type GreedyMaterial struct {
	Texture string
	AO      [4]uint8
	Mesh    *Mesh
	PNG     []byte
}

// BuildGreedyMaterials partitions quads by (texture, AO pattern) and
// bakes one AO-gradient texture tile per group via bilinear
// interpolation of the pattern's four corner values over the group's
// source texture, per the spec's greedy-material export step. Groups
// whose texture can't be resolved through textures are dropped
// silently: no material is emitted for them and nothing records it.
func BuildGreedyMaterials(quads []MergedQuad, textures TextureLookup) []GreedyMaterial {
	type groupKey struct {
		texture string
		ao      [4]uint8
	}
	groups := make(map[groupKey][]MergedQuad)
	for _, q := range quads {
		k := groupKey{texture: q.Texture, ao: q.AO}
		groups[k] = append(groups[k], q)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].texture != keys[j].texture {
			return keys[i].texture < keys[j].texture
		}
		return keys[i].ao[0] < keys[j].ao[0]
	})

	var materials []GreedyMaterial
	for _, k := range keys {
		tex, err := textures.GetTexture(k.texture)
		if err != nil {
			continue
		}
		baked := bakeAOTexture(tex.FirstFrame(), k.ao)
		png, err := encodePNG(baked)
		if err != nil {
			continue
		}

		mesh := NewMesh()
		for _, q := range groups[k] {
			positions := q.WorldPositions()
			normal := q.Direction.Normal()
			tintColor := [4]float32{
				float32(q.Tint[0]) / 255, float32(q.Tint[1]) / 255, float32(q.Tint[2]) / 255, float32(q.Tint[3]) / 255,
			}
			w, h := float32(q.Width), float32(q.Height)
			tiledUVs := [4][2]float32{{0, 0}, {w, 0}, {w, h}, {0, h}}
			var verts [4]Vertex
			for i := 0; i < 4; i++ {
				verts[i] = NewVertex(positions[i], normal, tiledUVs[i]).WithColor(tintColor)
			}
			mesh.AddFaceQuad(verts[0], verts[1], verts[2], verts[3], k.texture, q.IsTransparent, true)
		}

		materials = append(materials, GreedyMaterial{Texture: k.texture, AO: k.ao, Mesh: mesh, PNG: png})
	}
	return materials
}

// bakeAOTexture produces a copy of tex with brightness modulated by a
// bilinear interpolation of ao's four corners (top-left, top-right,
// bottom-right, bottom-left, matching baseUVs' winding), leaving alpha
// untouched.
func bakeAOTexture(tex *resourcepack.TextureData, ao [4]uint8) *resourcepack.TextureData {
	w, h := tex.Width, tex.Height
	a0, a1, a2, a3 := float32(ao[0])/255, float32(ao[1])/255, float32(ao[2])/255, float32(ao[3])/255
	pixels := make([]byte, w*h*4)

	denomU, denomV := float32(1), float32(1)
	if w > 1 {
		denomU = float32(w - 1)
	}
	if h > 1 {
		denomV = float32(h - 1)
	}

	for y := 0; y < h; y++ {
		v := float32(y) / denomV
		for x := 0; x < w; x++ {
			u := float32(x) / denomU
			top := a0 + (a1-a0)*u
			bottom := a3 + (a2-a3)*u
			shade := top + (bottom-top)*v

			src := tex.GetPixel(x, y)
			i := (y*w + x) * 4
			pixels[i] = scaleByte(src[0], shade)
			pixels[i+1] = scaleByte(src[1], shade)
			pixels[i+2] = scaleByte(src[2], shade)
			pixels[i+3] = src[3]
		}
	}
	return &resourcepack.TextureData{Width: w, Height: h, Pixels: pixels}
}

func scaleByte(v byte, factor float32) byte {
	scaled := float32(v) * factor
	if scaled > 255 {
		scaled = 255
	}
	if scaled < 0 {
		scaled = 0
	}
	return byte(scaled + 0.5)
}
