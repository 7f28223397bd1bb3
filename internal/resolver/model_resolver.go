package resolver

import (
	"strconv"
	"strings"

	"schematicmesher/internal/types"
	"schematicmesher/pkg/resourcepack"
)

const maxInheritanceDepth = 10

// ModelResolver flattens a model's parent chain into one fully-merged
// BlockModel and resolves #texture-variable chains to concrete texture
// locations. Results are cached by resource location, since the same
// model is referenced by many blocks.
type ModelResolver struct {
	store *resourcepack.Store
	cache map[string]*resourcepack.BlockModel
}

func NewModelResolver(store *resourcepack.Store) *ModelResolver {
	return &ModelResolver{store: store, cache: make(map[string]*resourcepack.BlockModel)}
}

// Resolve returns the fully-merged model for location, following parent
// references up to maxInheritanceDepth links.
func (r *ModelResolver) Resolve(location string) (*resourcepack.BlockModel, error) {
	if m, ok := r.cache[location]; ok {
		return m, nil
	}
	merged, err := r.resolveChain(location, 0)
	if err != nil {
		return nil, err
	}
	r.cache[location] = merged
	return merged, nil
}

func (r *ModelResolver) resolveChain(location string, depth int) (*resourcepack.BlockModel, error) {
	if depth > maxInheritanceDepth {
		return nil, types.NewError(types.ErrModelInheritanceTooDeep, "model "+location+" exceeds parent chain depth "+strconv.Itoa(maxInheritanceDepth))
	}

	model, err := r.store.GetModel(location)
	if err != nil {
		return nil, types.WrapError(types.ErrModelResolution, "loading "+location, err)
	}

	merged := cloneModel(model)

	parentLoc := merged.ParentLocation()
	if parentLoc == "" {
		return merged, nil
	}
	if strings.HasPrefix(strings.TrimPrefix(parentLoc, "minecraft:"), "builtin/") {
		// Builtin parents (builtin/generated, builtin/entity) have no
		// JSON geometry of their own; the chain stops here.
		merged.Parent = ""
		return merged, nil
	}

	parent, err := r.resolveChain(parentLoc, depth+1)
	if err != nil {
		return nil, err
	}

	if merged.AmbientOcclusion == nil {
		merged.AmbientOcclusion = parent.AmbientOcclusion
	}
	if len(merged.Elements) == 0 {
		merged.Elements = cloneElements(parent.Elements)
	}
	if merged.Textures == nil {
		merged.Textures = make(map[string]string)
	}
	for k, v := range parent.Textures {
		if _, ok := merged.Textures[k]; !ok {
			merged.Textures[k] = v
		}
	}
	// Per-context merge: every display context the parent defines
	// survives into the child unless the child overrides that exact
	// context key, so e.g. a derivative of a parent providing both
	// "gui" and "head" keeps both even if the child only overrides
	// "thirdperson_righthand".
	if len(parent.Display) > 0 {
		if merged.Display == nil {
			merged.Display = make(map[string]resourcepack.Display, len(parent.Display))
		}
		for k, v := range parent.Display {
			if _, overridden := merged.Display[k]; !overridden {
				merged.Display[k] = v
			}
		}
	}
	merged.Parent = ""
	return merged, nil
}

// ResolveTextureRef follows a #ref chain through model's texture table
// up to maxInheritanceDepth hops, returning the final value (which may
// itself still be an unresolved "#ref" if the chain is broken, matching
// the tolerant behavior of the reference pipeline).
func ResolveTextureRef(model *resourcepack.BlockModel, ref string) string {
	current := ref
	for i := 0; i < maxInheritanceDepth && strings.HasPrefix(current, "#"); i++ {
		next, ok := model.ResolveTexture(current)
		if !ok {
			break
		}
		current = next
	}
	return current
}

func cloneModel(m *resourcepack.BlockModel) *resourcepack.BlockModel {
	clone := *m
	if m.Textures != nil {
		clone.Textures = make(map[string]string, len(m.Textures))
		for k, v := range m.Textures {
			clone.Textures[k] = v
		}
	}
	clone.Elements = cloneElements(m.Elements)
	if m.Display != nil {
		clone.Display = make(map[string]resourcepack.Display, len(m.Display))
		for k, v := range m.Display {
			clone.Display[k] = v
		}
	}
	return &clone
}

// cloneElements deep-copies elements (and their per-face maps) so that
// resolving one model never mutates data cached for another — the bug
// the shared-parent tests guard against.
func cloneElements(elems []resourcepack.ModelElement) []resourcepack.ModelElement {
	if elems == nil {
		return nil
	}
	out := make([]resourcepack.ModelElement, len(elems))
	for i, e := range elems {
		out[i] = e
		if e.Faces != nil {
			out[i].Faces = make(map[string]resourcepack.ModelFace, len(e.Faces))
			for k, v := range e.Faces {
				out[i].Faces[k] = v
			}
		}
	}
	return out
}
