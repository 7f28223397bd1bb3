package resourcepack

import (
	"bytes"
	"image"
	"image/png"
)

// TextureData holds a decoded PNG's raw RGBA pixels plus the animation
// metadata implied by its aspect ratio (a tall strip is auto-detected
// as an animation, matching vanilla resource-pack convention even
// without reading the accompanying .mcmeta).
type TextureData struct {
	Width, Height int
	Pixels        []byte // RGBA8, row-major, len == Width*Height*4
	IsAnimated    bool
	FrameCount    int
	FrameOrder    []int // .mcmeta frame permutation, empty means sequential
	FrameTime     int   // ticks per frame, from .mcmeta; 1 when absent
	Interpolate   bool  // .mcmeta interpolate flag
}

// Placeholder returns the 16x16 magenta/black checkerboard used when a
// referenced texture cannot be found in the pack.
func Placeholder() *TextureData {
	const size = 16
	pixels := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := (y*size + x) * 4
			checker := (x/8+y/8)%2 == 0
			if checker {
				pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = 0xFF, 0x00, 0xFF, 0xFF
			} else {
				pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = 0x00, 0x00, 0x00, 0xFF
			}
		}
	}
	return &TextureData{Width: size, Height: size, Pixels: pixels}
}

// LoadTextureFromBytes decodes a PNG and classifies it as animated when
// its height is an exact multiple of its width greater than one.
func LoadTextureFromBytes(data []byte) (*TextureData, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rgba.Set(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}

	tex := &TextureData{Width: w, Height: h, Pixels: rgba.Pix, FrameTime: 1}
	if h > w && w > 0 && h%w == 0 {
		tex.IsAnimated = true
		tex.FrameCount = h / w
	}
	return tex, nil
}

func (t *TextureData) GetPixel(x, y int) [4]byte {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return [4]byte{0, 0, 0, 0}
	}
	i := (y*t.Width + x) * 4
	return [4]byte{t.Pixels[i], t.Pixels[i+1], t.Pixels[i+2], t.Pixels[i+3]}
}

func (t *TextureData) HasTransparency() bool {
	for i := 3; i < len(t.Pixels); i += 4 {
		if t.Pixels[i] != 0xFF {
			return true
		}
	}
	return false
}

// FirstFrame returns the top frame of an animated strip, or the
// texture itself when not animated.
func (t *TextureData) FirstFrame() *TextureData {
	if !t.IsAnimated {
		return t
	}
	frameH := t.Height / t.FrameCount
	pixels := make([]byte, t.Width*frameH*4)
	copy(pixels, t.Pixels[:len(pixels)])
	return &TextureData{Width: t.Width, Height: frameH, Pixels: pixels}
}

// Frame returns the nth frame of an animated strip, honoring the
// .mcmeta frame-order permutation when one was supplied; animation
// playback timing (per-frame durations) is not modeled, only the
// ordering of distinct frame images.
func (t *TextureData) Frame(n int) *TextureData {
	if !t.IsAnimated {
		return t
	}
	index := n
	if len(t.FrameOrder) > 0 {
		index = t.FrameOrder[n%len(t.FrameOrder)]
	}
	frameH := t.Height / t.FrameCount
	start := index * frameH * t.Width * 4
	end := start + frameH*t.Width*4
	if start < 0 || end > len(t.Pixels) {
		return t.FirstFrame()
	}
	pixels := make([]byte, frameH*t.Width*4)
	copy(pixels, t.Pixels[start:end])
	return &TextureData{Width: t.Width, Height: frameH, Pixels: pixels}
}
