package resourcepack

import "strings"

// BlockModel is a parsed model JSON, before parent-chain resolution.
// AmbientOcclusion mirrors Java's "ambientocclusion" key (default true)
// and, once resolved, is an unconditional override of the parent's
// value rather than a merge.
type BlockModel struct {
	Parent           string             `json:"parent,omitempty"`
	AmbientOcclusion *bool              `json:"ambientocclusion,omitempty"`
	Textures         map[string]string  `json:"textures,omitempty"`
	Elements         []ModelElement     `json:"elements,omitempty"`
	Display          map[string]Display `json:"display,omitempty"`
}

// ParentLocation returns the parent reference with a default "minecraft"
// namespace applied, or "" if this model has no parent.
func (m *BlockModel) ParentLocation() string {
	if m.Parent == "" {
		return ""
	}
	if strings.Contains(m.Parent, ":") {
		return m.Parent
	}
	return "minecraft:" + m.Parent
}

// ResolveTexture performs a single #ref -> value lookup against this
// model's own texture table. Chained resolution across several models
// is handled by the model resolver, not here.
func (m *BlockModel) ResolveTexture(ref string) (string, bool) {
	key := strings.TrimPrefix(ref, "#")
	v, ok := m.Textures[key]
	return v, ok
}

func (m *BlockModel) AOEnabled() bool {
	if m.AmbientOcclusion == nil {
		return true
	}
	return *m.AmbientOcclusion
}

type ModelElement struct {
	From     [3]float32              `json:"from"`
	To       [3]float32              `json:"to"`
	Rotation *ElementRotationJSON     `json:"rotation,omitempty"`
	Shade    *bool                    `json:"shade,omitempty"`
	Faces    map[string]ModelFace     `json:"faces,omitempty"`
}

func (e ModelElement) ShadeEnabled() bool {
	if e.Shade == nil {
		return true
	}
	return *e.Shade
}

func (e ModelElement) Size() [3]float32 {
	return [3]float32{e.To[0] - e.From[0], e.To[1] - e.From[1], e.To[2] - e.From[2]}
}

// IsThin reports whether the element has zero thickness along any
// axis (the case model_resolver.rs special-cases when deciding greedy
// eligibility and cuboid degenerate-face skipping).
func (e ModelElement) IsThin() bool {
	size := e.Size()
	return size[0] < 0.001 || size[1] < 0.001 || size[2] < 0.001
}

type ElementRotationJSON struct {
	Origin  [3]float32 `json:"origin"`
	Axis    string     `json:"axis"`
	Angle   float32    `json:"angle"`
	Rescale bool        `json:"rescale,omitempty"`
}

type ModelFace struct {
	UV        *[4]float32 `json:"uv,omitempty"`
	Texture   string      `json:"texture"`
	CullFace  string      `json:"cullface,omitempty"`
	Rotation  int         `json:"rotation,omitempty"`
	TintIndex *int        `json:"tintindex,omitempty"`
}

func (f ModelFace) UVOrDefault() [4]float32 {
	if f.UV != nil {
		return *f.UV
	}
	return [4]float32{0, 0, 16, 16}
}

func (f ModelFace) NormalizedUV() [4]float32 {
	uv := f.UVOrDefault()
	return [4]float32{uv[0] / 16, uv[1] / 16, uv[2] / 16, uv[3] / 16}
}

func (f ModelFace) HasTint() bool {
	return f.TintIndex != nil && *f.TintIndex >= 0
}

func (f ModelFace) TintIndexOrDefault() int {
	if f.TintIndex == nil {
		return -1
	}
	return *f.TintIndex
}

type Display struct {
	Rotation    [3]float32 `json:"rotation,omitempty"`
	Translation [3]float32 `json:"translation,omitempty"`
	Scale       [3]float32 `json:"scale,omitempty"`
}
