// Package resolver turns an InputBlock plus a resource-pack Store into
// the concrete list of models (with placement transforms) that should
// be rendered for it, following the blockstate variant/multipart rules
// and the model parent-inheritance rules.
package resolver

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"schematicmesher/internal/types"
	"schematicmesher/pkg/resourcepack"
)

// ResolvedModel is one model instance to emit, with its blockstate
// placement transform already separated from the model's own element
// rotations.
type ResolvedModel struct {
	Model     *resourcepack.BlockModel
	Transform types.BlockTransform
}

// StateResolver selects the variant (or set of multipart parts) that
// applies to a given block's property set. Models it returns have
// already been flattened through a ModelResolver, so callers never see
// an unresolved parent chain.
type StateResolver struct {
	store    *resourcepack.Store
	modelRes *ModelResolver
}

func NewStateResolver(store *resourcepack.Store) *StateResolver {
	return &StateResolver{store: store, modelRes: NewModelResolver(store)}
}

// Resolve returns every model that should be drawn for block, given its
// blockstate definition. Variant blockstates yield exactly one model
// (picking the first listed weighted alternative, since alternatives
// exist for client-side visual variety, not for deterministic batch
// export); multipart blockstates can yield several.
func (r *StateResolver) Resolve(block types.InputBlock) ([]ResolvedModel, error) {
	def, err := r.store.GetBlockstate(block.Name)
	if err != nil {
		return nil, types.WrapError(types.ErrBlockstateResolution, "no blockstate for "+block.Name, err)
	}

	if def.Multipart != nil {
		return r.resolveMultipart(def, block)
	}
	return r.resolveVariant(def, block)
}

func (r *StateResolver) resolveVariant(def *resourcepack.BlockstateDefinition, block types.InputBlock) ([]ResolvedModel, error) {
	key, ok := bestVariantKey(def.Variants, block.Properties)
	if !ok {
		return nil, types.NewError(types.ErrBlockstateResolution, "no matching variant for "+block.Name+" ["+block.CanonicalProperties()+"]")
	}
	list := def.Variants[key]
	if len(list) == 0 {
		return nil, types.NewError(types.ErrBlockstateResolution, "empty variant list for "+block.Name)
	}
	ref := pickWeighted(list)
	model, err := r.modelRes.Resolve(ref.Model)
	if err != nil {
		return nil, err
	}
	return []ResolvedModel{{Model: model, Transform: types.BlockTransform{X: ref.X, Y: ref.Y, UVLock: ref.UVLock}}}, nil
}

func (r *StateResolver) resolveMultipart(def *resourcepack.BlockstateDefinition, block types.InputBlock) ([]ResolvedModel, error) {
	var out []ResolvedModel
	for _, part := range def.Multipart {
		if !part.When.Matches(block.Properties) {
			continue
		}
		ref := pickWeighted(part.Apply)
		model, err := r.modelRes.Resolve(ref.Model)
		if err != nil {
			return nil, err
		}
		out = append(out, ResolvedModel{Model: model, Transform: types.BlockTransform{X: ref.X, Y: ref.Y, UVLock: ref.UVLock}})
	}
	return out, nil
}

func pickWeighted(list resourcepack.VariantList) resourcepack.ModelRef {
	// Deterministic batch export always takes the first alternative;
	// weighting only matters for interactive per-placement randomness.
	return list[0]
}

// bestVariantKey finds the variant key matching block's properties:
// exact match wins, then the empty-key default, then among keys
// consistent with the user's properties the one maximizing the
// default-likeness score over its unspecified properties, falling
// back to the single most default-like key in the whole map when every
// key contradicts at least one of the user's property values.
func bestVariantKey(variants map[string]resourcepack.VariantList, props map[string]string) (string, bool) {
	exact := canonicalKey(props)
	if _, ok := variants[exact]; ok {
		return exact, true
	}
	if _, ok := variants[""]; ok {
		return "", true
	}

	bestKey := ""
	bestScore := math.MinInt32
	found := false
	for key := range variants {
		if !userPropertiesMatchVariant(key, props) {
			continue
		}
		score := defaultScoreForUnspecified(key, props)
		if !found || score > bestScore || (score == bestScore && key < bestKey) {
			bestScore = score
			bestKey = key
			found = true
		}
	}
	if found {
		return bestKey, true
	}

	// Last resort: no variant key is even consistent with the user's
	// properties (each key sets some property the user gave a different
	// value) — pick the single most default-like key in the map.
	bestScore = math.MinInt32
	for key := range variants {
		score := defaultScore(key)
		if !found || score > bestScore || (score == bestScore && key < bestKey) {
			bestScore = score
			bestKey = key
			found = true
		}
	}
	return bestKey, found
}

// userPropertiesMatchVariant reports whether every property the
// variant key declares agrees with the value the user actually set
// (properties the user didn't specify are ignored, not rejected —
// default scoring decides among the survivors).
func userPropertiesMatchVariant(key string, props map[string]string) bool {
	if key == "" {
		return true
	}
	for _, pair := range strings.Split(key, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if actual, present := props[kv[0]]; present && actual != kv[1] {
			return false
		}
	}
	return true
}

// defaultScore scores every property=value pair in key for
// default-likeness; the empty key is maximally default.
func defaultScore(key string) int {
	if key == "" {
		return math.MaxInt32
	}
	score := 0
	for _, pair := range strings.Split(key, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 {
			score += valueDefaultScore(kv[0], kv[1])
		}
	}
	return score
}

// defaultScoreForUnspecified is like defaultScore but only scores the
// key's properties the user didn't specify a value for themselves.
func defaultScoreForUnspecified(key string, props map[string]string) int {
	if key == "" {
		return math.MaxInt32
	}
	score := 0
	for _, pair := range strings.Split(key, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if _, present := props[kv[0]]; !present {
			score += valueDefaultScore(kv[0], kv[1])
		}
	}
	return score
}

// valueDefaultScore is the fixed default-likeness table from §4.1:
// numeric properties prefer 0, boolean-like properties prefer
// "false"/"off"/"none", and a handful of named properties (axis,
// half, type, facing, shape, and the fence/wall/redstone connection
// properties north/south/east/west) have their own explicit
// preference order.
func valueDefaultScore(property, value string) int {
	if n, err := strconv.Atoi(value); err == nil {
		return -n * 10
	}

	switch property {
	case "axis":
		if value == "y" {
			return 50
		}
		return 0
	case "waterlogged", "powered", "open", "lit", "enabled",
		"triggered", "inverted", "extended", "locked", "attached",
		"disarmed", "occupied", "has_record", "has_book", "signal_fire",
		"hanging", "persistent", "unstable", "bottom", "drag",
		"eye", "in_wall", "snowy", "up", "conditional":
		switch value {
		case "false":
			return 100
		case "true":
			return -100
		default:
			return 0
		}
	case "half":
		switch value {
		case "bottom", "lower":
			return 50
		case "top", "upper":
			return -50
		default:
			return 0
		}
	case "type":
		switch value {
		case "single", "normal", "bottom":
			return 50
		case "double", "top":
			return -50
		default:
			return 0
		}
	case "facing":
		switch value {
		case "north":
			return 50
		case "south":
			return 40
		case "east":
			return 30
		case "west":
			return 20
		case "up":
			return 10
		case "down":
			return 0
		default:
			return 0
		}
	case "shape":
		switch value {
		case "straight":
			return 50
		case "ascending_north", "ascending_south", "ascending_east", "ascending_west":
			return 0
		default:
			return -20
		}
	case "north", "south", "east", "west":
		switch value {
		case "none", "false":
			return 50
		case "low", "side":
			return 0
		case "tall", "up":
			return -20
		case "true":
			return -50
		default:
			return 0
		}
	}

	switch value {
	case "false", "off", "none", "0":
		return 100
	case "true", "on":
		return -100
	default:
		return 0
	}
}

func canonicalKey(props map[string]string) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + props[k]
	}
	return strings.Join(parts, ",")
}
