package types

import (
	"sort"
	"strings"
)

// InputBlock is a single placed block as presented to the mesher: a
// resource-location name plus the blockstate property values that select
// among its variants (e.g. facing=north, half=top, waterlogged=true).
type InputBlock struct {
	Name       string
	Properties map[string]string
}

func NewInputBlock(name string) InputBlock {
	return InputBlock{Name: name, Properties: make(map[string]string)}
}

func (b InputBlock) WithProperty(key, value string) InputBlock {
	props := make(map[string]string, len(b.Properties)+1)
	for k, v := range b.Properties {
		props[k] = v
	}
	props[key] = value
	return InputBlock{Name: b.Name, Properties: props}
}

// Namespace returns the resource-location namespace, defaulting to
// "minecraft" when the block name carries none.
func (b InputBlock) Namespace() string {
	if i := strings.IndexByte(b.Name, ':'); i >= 0 {
		return b.Name[:i]
	}
	return "minecraft"
}

// BlockID returns the path portion of the resource location, i.e. the
// name with any "namespace:" prefix stripped.
func (b InputBlock) BlockID() string {
	if i := strings.IndexByte(b.Name, ':'); i >= 0 {
		return b.Name[i+1:]
	}
	return b.Name
}

func (b InputBlock) IsAir() bool {
	switch b.BlockID() {
	case "air", "cave_air", "void_air":
		return true
	default:
		return false
	}
}

// CanonicalProperties renders the block's properties as the sorted
// "k1=v1,k2=v2" string used both for blockstate matching and for the
// per-block model-resolution cache key.
func (b InputBlock) CanonicalProperties() string {
	if len(b.Properties) == 0 {
		return ""
	}
	keys := make([]string, 0, len(b.Properties))
	for k := range b.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + b.Properties[k]
	}
	return strings.Join(parts, ",")
}

// CacheKey is the key used to memoize per-block mesh-resolution results:
// just the name when there are no properties, else "name|k1=v1,k2=v2".
func (b InputBlock) CacheKey() string {
	props := b.CanonicalProperties()
	if props == "" {
		return b.Name
	}
	return b.Name + "|" + props
}

// BlockSource is any in-memory or streamed provider of placed blocks
// over a bounded region. Implementations are expected to be cheap to
// query repeatedly — the mesher calls GetBlock up to seven times per
// block position (once for the block itself, six times for culling
// neighbors).
type BlockSource interface {
	GetBlock(p BlockPosition) (InputBlock, bool)
	Bounds() BoundingBox
	IterBlocks(func(BlockPosition, InputBlock) bool)
}

// BlocksInRegion iterates every non-air block in source whose position
// lies inside region, calling visit for each. It is the default helper
// Bounds()-based implementations can use to satisfy IterBlocks-derived
// behavior over an arbitrary sub-region.
func BlocksInRegion(source BlockSource, region BoundingBox, visit func(BlockPosition, InputBlock)) {
	min, max := region.Min, region.Max
	for x := min.X; x < max.X; x++ {
		for y := min.Y; y < max.Y; y++ {
			for z := min.Z; z < max.Z; z++ {
				p := BlockPosition{X: x, Y: y, Z: z}
				block, ok := source.GetBlock(p)
				if !ok || block.IsAir() {
					continue
				}
				visit(p, block)
			}
		}
	}
}
