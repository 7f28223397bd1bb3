package entity

import (
	"math"

	"schematicmesher/internal/meshing"
	"schematicmesher/pkg/resourcepack"
)

// flickerBrightness is the 8-frame synthetic flicker curve used to turn
// a single static flame/candle-flame texture into an animated sprite
// sheet without a second source image.
var flickerBrightness = [8]float32{1.0, 0.88, 1.0, 0.92, 0.85, 1.0, 0.90, 0.95}

// BuildFlickerSpriteSheet stacks 8 brightness-modulated copies of base
// vertically into one animated TextureData, the way a torch or candle
// flame gets its flicker without a multi-frame source PNG.
func BuildFlickerSpriteSheet(base *resourcepack.TextureData, frameTime int) *resourcepack.TextureData {
	frame := base.FirstFrame()
	width, height := frame.Width, frame.Height
	frameCount := len(flickerBrightness)

	pixels := make([]byte, 0, width*height*4*frameCount)
	for _, brightness := range flickerBrightness {
		for i := 0; i+3 < len(frame.Pixels); i += 4 {
			r := scaleChannel(frame.Pixels[i], brightness)
			g := scaleChannel(frame.Pixels[i+1], brightness)
			b := scaleChannel(frame.Pixels[i+2], brightness)
			a := frame.Pixels[i+3]
			pixels = append(pixels, r, g, b, a)
		}
	}

	return &resourcepack.TextureData{
		Width:      width,
		Height:     height * frameCount,
		Pixels:     pixels,
		IsAnimated: true,
		FrameCount: frameCount,
		FrameTime:  frameTime,
	}
}

func scaleChannel(v byte, brightness float32) byte {
	scaled := float32(v) * brightness
	if scaled > 255 {
		scaled = 255
	}
	if scaled < 0 {
		scaled = 0
	}
	return byte(scaled + 0.5)
}

// BuildCompositeSpriteSheet stacks a sequence of numbered source frames
// (e.g. smoke's up-to-12-frame set) vertically into one animated
// TextureData, using the first frame's dimensions for every frame.
func BuildCompositeSpriteSheet(frames []*resourcepack.TextureData, frameTime int) *resourcepack.TextureData {
	if len(frames) == 0 {
		return nil
	}
	width, height := frames[0].Width, frames[0].Height
	pixels := make([]byte, 0, width*height*4*len(frames))
	for _, f := range frames {
		frame := f.FirstFrame()
		if frame.Width != width || frame.Height != height {
			pixels = append(pixels, frames[0].Pixels...)
			continue
		}
		pixels = append(pixels, frame.Pixels...)
	}

	return &resourcepack.TextureData{
		Width:      width,
		Height:     height * len(frames),
		Pixels:     pixels,
		IsAnimated: true,
		FrameCount: len(frames),
		FrameTime:  frameTime,
	}
}

// WallTorchCenter returns the flame position for a wall torch, offset
// toward the wall it's attached to per its facing property.
func WallTorchCenter(facing string, y float32) [3]float32 {
	switch facing {
	case "north":
		return [3]float32{0.5, y, 0.73}
	case "south":
		return [3]float32{0.5, y, 0.27}
	case "east":
		return [3]float32{0.27, y, 0.5}
	case "west":
		return [3]float32{0.73, y, 0.5}
	default:
		return [3]float32{0.5, y, 0.5}
	}
}

// CandlePositions returns the flame positions for a candle block holding
// count candles (1-4), matching vanilla's clustered arrangement.
func CandlePositions(count int) [][3]float32 {
	base := [][3]float32{
		{0.5, 0.5, 0.5},
		{0.375, 0.5, 0.44},
		{0.56, 0.5, 0.5},
		{0.44, 0.5, 0.56},
	}
	if count < 1 {
		count = 1
	}
	if count > len(base) {
		count = len(base)
	}
	return base[:count]
}

// GenerateCrossGeometry builds one double-sided "X" cross of two
// vertical planes per center, block-local, the fixed cheap-billboard
// shape vanilla uses for torch/candle flame and other particle-like
// block decorations that aren't expressible as a cuboid element. Each
// plane is emitted as a front quad and a back quad (reversed winding)
// so the geometry reads correctly from either side without relying on
// a renderer disabling backface culling.
func GenerateCrossGeometry(centers [][3]float32, halfWidth, height float32, texture string) Geometry {
	g := Geometry{}
	for _, c := range centers {
		addCrossPlane(&g, c, halfWidth, height, [3]float32{1, 0, 1}, texture)
		addCrossPlane(&g, c, halfWidth, height, [3]float32{1, 0, -1}, texture)
	}
	return g
}

// addCrossPlane emits one of a cross's two planes, oriented along
// dir's horizontal diagonal, centered at c with the given half-width
// and height, as a front-facing and a back-facing quad.
func addCrossPlane(g *Geometry, c [3]float32, halfWidth, height float32, dir [3]float32, texture string) {
	nx, nz := dir[0], dir[2]
	norm := float32(math.Sqrt(float64(nx*nx + nz*nz)))
	if norm == 0 {
		norm = 1
	}
	dx, dz := nx/norm*halfWidth, nz/norm*halfWidth

	bottomLeft := [3]float32{c[0] - dx, c[1], c[2] - dz}
	bottomRight := [3]float32{c[0] + dx, c[1], c[2] + dz}
	topRight := [3]float32{c[0] + dx, c[1] + height, c[2] + dz}
	topLeft := [3]float32{c[0] - dx, c[1] + height, c[2] - dz}

	normal := [3]float32{-dz / halfWidth, 0, dx / halfWidth}

	addQuad(g, bottomLeft, bottomRight, topRight, topLeft, normal, texture)
	addQuad(g, bottomRight, bottomLeft, topLeft, topRight, [3]float32{-normal[0], 0, -normal[2]}, texture)
}

func addQuad(g *Geometry, p0, p1, p2, p3 [3]float32, normal [3]float32, texture string) {
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	positions := [4][3]float32{p0, p1, p2, p3}
	start := uint32(len(g.Vertices))
	for i, p := range positions {
		g.Vertices = append(g.Vertices, meshing.NewVertex(p, normal, uvs[i]))
	}
	g.Indices = append(g.Indices, start, start+1, start+2, start, start+2, start+3)
	g.FaceTextures = append(g.FaceTextures, FaceTexture{Texture: texture, IsTransparent: true})
}
