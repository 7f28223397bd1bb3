// Package atlas packs the individual textures a mesh call references
// into one power-of-two image, tracking where each ended up so vertex
// UVs can be remapped from local [0,1] space into the atlas.
package atlas

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"sort"

	"golang.org/x/exp/maps"

	"schematicmesher/internal/types"
	"schematicmesher/pkg/resourcepack"
)

// Region is a texture's placement within the atlas, in [0,1] UV space.
type Region struct {
	UMin, VMin, UMax, VMax float32
}

func (r Region) Width() float32  { return r.UMax - r.UMin }
func (r Region) Height() float32 { return r.VMax - r.VMin }

// TransformUV maps a local [0,1] UV coordinate into this region.
func (r Region) TransformUV(u, v float32) [2]float32 {
	return [2]float32{r.UMin + u*r.Width(), r.VMin + v*r.Height()}
}

// Atlas is the packed atlas image plus its path-to-region table.
type Atlas struct {
	Width, Height int
	Pixels        []byte // RGBA8, row-major
	Regions       map[string]Region
}

func (a *Atlas) Region(path string) (Region, bool) {
	r, ok := a.Regions[path]
	return r, ok
}

// Empty returns the 16x16 white placeholder atlas used when a mesh
// call references no textures at all (the empty-scene boundary case).
func Empty() *Atlas {
	pixels := make([]byte, 16*16*4)
	for i := range pixels {
		pixels[i] = 0xFF
	}
	return &Atlas{Width: 16, Height: 16, Pixels: pixels, Regions: map[string]Region{}}
}

// ToPNG encodes the atlas as a PNG, the form an external exporter (GLB
// or OBJ+MTL) embeds or writes alongside the mesh.
func (a *Atlas) ToPNG() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, a.Width, a.Height))
	copy(img.Pix, a.Pixels)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, types.WrapError(types.ErrAtlasBuild, "encoding atlas PNG", err)
	}
	return buf.Bytes(), nil
}

// Builder accumulates the set of textures a mesh call touches (pack
// textures plus synthetic/dynamic ones) before packing them in one
// pass via Build.
type Builder struct {
	maxSize int
	padding int
	sources map[string]*resourcepack.TextureData
}

func NewBuilder(maxSize, padding int) *Builder {
	return &Builder{maxSize: maxSize, padding: padding, sources: make(map[string]*resourcepack.TextureData)}
}

func (b *Builder) Add(path string, tex *resourcepack.TextureData) {
	b.sources[path] = tex
}

type packEntry struct {
	path string
	tex  *resourcepack.TextureData
}

// Build row-packs every added texture's first animation frame into a
// power-of-two atlas, sorted tallest-first, growing the side and
// retrying on overflow up to maxSize.
func (b *Builder) Build() (*Atlas, error) {
	if len(b.sources) == 0 {
		return Empty(), nil
	}

	entries := make([]packEntry, 0, len(b.sources))
	for _, path := range sortedKeys(b.sources) {
		entries = append(entries, packEntry{path: path, tex: b.sources[path].FirstFrame()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].tex.Height > entries[j].tex.Height
	})

	pad := b.padding
	var totalArea int
	for _, e := range entries {
		w, h := e.tex.Width+2*pad, e.tex.Height+2*pad
		totalArea += w * h
	}

	size := nextPowerOfTwo(isqrtCeil(totalArea))
	if size < 64 {
		size = 64
	}

	for {
		if size > b.maxSize {
			return nil, types.NewError(types.ErrAtlasBuild, "cannot pack textures within configured atlas_max_size")
		}
		pixels, regions, ok := tryPack(entries, size, pad)
		if ok {
			return &Atlas{Width: size, Height: size, Pixels: pixels, Regions: regions}, nil
		}
		size *= 2
	}
}

func tryPack(entries []packEntry, size, pad int) ([]byte, map[string]Region, bool) {
	pixels := make([]byte, size*size*4)
	regions := make(map[string]Region, len(entries))

	var cursorX, cursorY, rowHeight int
	for _, e := range entries {
		tex := e.tex
		boxW, boxH := tex.Width+2*pad, tex.Height+2*pad

		if cursorX+boxW > size {
			cursorX = 0
			cursorY += rowHeight
			rowHeight = 0
		}
		if cursorY+boxH > size {
			return nil, nil, false
		}

		x, y := cursorX+pad, cursorY+pad
		blitEdgeClamped(pixels, size, tex, x, y, pad)

		regions[e.path] = Region{
			UMin: float32(x) / float32(size),
			VMin: float32(y) / float32(size),
			UMax: float32(x+tex.Width) / float32(size),
			VMax: float32(y+tex.Height) / float32(size),
		}

		cursorX += boxW
		if boxH > rowHeight {
			rowHeight = boxH
		}
	}
	return pixels, regions, true
}

// blitEdgeClamped copies tex into the atlas at (x,y), extending pad
// rows/columns of edge-clamped padding around it so bilinear
// filtering in the downstream viewer never bleeds black across a
// seam between unrelated atlas entries.
func blitEdgeClamped(dst []byte, dstSide int, tex *resourcepack.TextureData, x, y, pad int) {
	for py := -pad; py < tex.Height+pad; py++ {
		sy := clampInt(py, 0, tex.Height-1)
		dy := y + py
		if dy < 0 || dy >= dstSide {
			continue
		}
		for px := -pad; px < tex.Width+pad; px++ {
			sx := clampInt(px, 0, tex.Width-1)
			dx := x + px
			if dx < 0 || dx >= dstSide {
				continue
			}
			src := tex.GetPixel(sx, sy)
			di := (dy*dstSide + dx) * 4
			dst[di], dst[di+1], dst[di+2], dst[di+3] = src[0], src[1], src[2], src[3]
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

func isqrtCeil(area int) int {
	if area <= 0 {
		return 1
	}
	root := 1
	for root*root < area {
		root++
	}
	return root
}

func sortedKeys(m map[string]*resourcepack.TextureData) []string {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}

// CompositeOver alpha-composites src onto dst at the given offset using
// the standard library's image/draw (draw.Draw with draw.Over).
func CompositeOver(dst draw.Image, src image.Image, x, y int) {
	b := src.Bounds()
	draw.Draw(dst, image.Rect(x, y, x+b.Dx(), y+b.Dy()), src, b.Min, draw.Over)
}
