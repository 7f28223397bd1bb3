package resourcepack

import "encoding/json"

// AnimationMeta mirrors a texture's .png.mcmeta sidecar: frametime
// (ticks per frame), interpolate, an optional frame-size override, and
// the frame-index permutation. Per-frame frametime overrides within
// individual entries are ignored (only each entry's index is read) —
// only the permutation is honored, matching the Open Question decision in
// DESIGN.md (playback timing has no meaning for a static batch export
// beyond the single frametime value carried into AnimatedTextureExport).
type AnimationMeta struct {
	FrameTime   int
	Interpolate bool
	FrameWidth  int // 0 means "use the texture's own width"
	FrameHeight int // 0 means square frames: height equals the frame width
	FrameOrder  []int
}

type animationMetaJSON struct {
	Animation struct {
		FrameTime   int               `json:"frametime"`
		Interpolate bool              `json:"interpolate"`
		Width       int               `json:"width"`
		Height      int               `json:"height"`
		Frames      []json.RawMessage `json:"frames"`
	} `json:"animation"`
}

// ParseAnimationMeta parses a .mcmeta sidecar's full animation block.
func ParseAnimationMeta(data []byte) (AnimationMeta, error) {
	var raw animationMetaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return AnimationMeta{}, err
	}
	meta := AnimationMeta{
		FrameTime:   raw.Animation.FrameTime,
		Interpolate: raw.Animation.Interpolate,
		FrameWidth:  raw.Animation.Width,
		FrameHeight: raw.Animation.Height,
	}
	if meta.FrameTime <= 0 {
		meta.FrameTime = 1
	}
	order := make([]int, 0, len(raw.Animation.Frames))
	for _, r := range raw.Animation.Frames {
		var idx int
		if err := json.Unmarshal(r, &idx); err == nil {
			order = append(order, idx)
			continue
		}
		var obj struct {
			Index int `json:"index"`
		}
		if err := json.Unmarshal(r, &obj); err != nil {
			return AnimationMeta{}, err
		}
		order = append(order, obj.Index)
	}
	meta.FrameOrder = order
	return meta, nil
}

// ParseFrameOrder extracts just the frame-index permutation, kept for
// callers that only care about frame ordering.
func ParseFrameOrder(data []byte) ([]int, error) {
	meta, err := ParseAnimationMeta(data)
	if err != nil {
		return nil, err
	}
	return meta.FrameOrder, nil
}
