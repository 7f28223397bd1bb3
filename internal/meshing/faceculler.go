package meshing

import (
	"schematicmesher/internal/types"
)

// Opacity classifies a resolved block for face-culling purposes. It is
// derived from the block's actual resolved geometry rather than a
// hardcoded per-block table: a block is Opaque only when its model
// resolves to exactly one full [0,0,0]-[16,16,16] cuboid with all six
// faces present.
type Opacity struct {
	Opaque           bool
	TransparentGroup string // "" when the block isn't in the transparent-group table
	IsAir            bool
}

// transparentGroups maps specific block ids to the group name other
// blocks must share to be culled against. Distinct stained-glass
// colors are NOT mutually culled — each color is its own group, and
// likewise plain glass_pane and each stained-glass-pane color — matching vanilla's visual
// behavior of never hiding a seam between two different glass colors.
var transparentGroups = map[string]string{
	"glass":               "glass",
	"tinted_glass":        "tinted_glass",
	"glass_pane":          "glass_pane",
	"ice":                 "ice",
	"packed_ice":          "ice",
	"blue_ice":            "ice",
	"frosted_ice":         "ice",
	"slime_block":         "slime_block",
	"honey_block":         "honey_block",
}

func init() {
	for _, color := range dyeColors {
		transparentGroups[color+"_stained_glass"] = color + "_stained_glass"
		transparentGroups[color+"_stained_glass_pane"] = color + "_stained_glass_pane"
	}
}

var dyeColors = []string{
	"white", "orange", "magenta", "light_blue", "yellow", "lime", "pink", "gray",
	"light_gray", "cyan", "purple", "blue", "brown", "green", "red", "black",
}

func classifyTransparentGroup(blockID string) string {
	if group, ok := transparentGroups[blockID]; ok {
		return group
	}
	if hasAnySuffix(blockID, "_leaves") {
		return blockID
	}
	return ""
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if len(s) >= len(suf) && s[len(s)-len(suf):] == suf {
			return true
		}
	}
	return false
}

// ClassifyOpacity inspects a block's resolved model elements to decide
// whether it is a full opaque cube, belongs to a transparent group, or
// neither (partial/cutout geometry that never culls a neighbor face).
func ClassifyOpacity(block types.InputBlock, elements []ElementGeometry) Opacity {
	if block.IsAir() {
		return Opacity{IsAir: true}
	}
	op := Opacity{TransparentGroup: classifyTransparentGroup(block.BlockID())}
	if op.TransparentGroup != "" {
		return op
	}
	if isFullOpaqueCube(elements) {
		op.Opaque = true
	}
	return op
}

// ElementGeometry is the minimal shape-only view of a resolved element
// the culler needs: its bounds and which faces it declares.
type ElementGeometry struct {
	From, To [3]float32
	Faces    map[types.Direction]struct{}
}

func isFullOpaqueCube(elements []ElementGeometry) bool {
	if len(elements) != 1 {
		return false
	}
	e := elements[0]
	const eps = 0.001
	full := absDiff(e.From[0], 0) < eps && absDiff(e.From[1], 0) < eps && absDiff(e.From[2], 0) < eps &&
		absDiff(e.To[0], 16) < eps && absDiff(e.To[1], 16) < eps && absDiff(e.To[2], 16) < eps
	if !full {
		return false
	}
	for _, d := range types.AllDirections {
		if _, ok := e.Faces[d]; !ok {
			return false
		}
	}
	return true
}

func absDiff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}

// ShouldCullFace reports whether a face of a block with opacity `this`,
// facing a neighbor with opacity `neighbor`, should be skipped. The
// decision is keyed on the neighbor, not on `this`: an opaque neighbor
// always hides the face behind it regardless of what `this` is, while
// a non-opaque neighbor only hides it when both share the same
// transparent group — this preserves visible seams between e.g.
// different stained-glass colors while still merging a solid run of
// the same glass color, and keeps an opaque block's face visible
// through a transparent neighbor instead of wrongly culling it.
func ShouldCullFace(this, neighbor Opacity) bool {
	if neighbor.IsAir {
		return false
	}
	if neighbor.Opaque {
		return true
	}
	if this.TransparentGroup != "" && neighbor.TransparentGroup == this.TransparentGroup {
		return true
	}
	return false
}
