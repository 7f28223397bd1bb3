package resourcepack

import (
	"strings"

	"schematicmesher/internal/types"
)

// Store is the parsed, in-memory contents of one or more merged
// resource packs: blockstates, models and textures, each keyed by
// namespace and then by resource path. A Store is built once by Load
// or LoadZip and is read-only afterwards, making it safe to share across
// concurrent mesh calls.
type Store struct {
	blockstates map[string]map[string]*BlockstateDefinition
	models      map[string]map[string]*BlockModel
	textures    map[string]map[string]*TextureData

	pendingFrameOrders []pendingFrameOrder
}

func NewStore() *Store {
	return &Store{
		blockstates: make(map[string]map[string]*BlockstateDefinition),
		models:      make(map[string]map[string]*BlockModel),
		textures:    make(map[string]map[string]*TextureData),
	}
}

// ParseResourceLocation splits "namespace:path" into its parts,
// defaulting the namespace to "minecraft" when absent.
func ParseResourceLocation(location string) (namespace, path string) {
	if i := strings.IndexByte(location, ':'); i >= 0 {
		return location[:i], location[i+1:]
	}
	return "minecraft", location
}

func (s *Store) AddBlockstate(location string, def *BlockstateDefinition) {
	ns, path := ParseResourceLocation(location)
	if s.blockstates[ns] == nil {
		s.blockstates[ns] = make(map[string]*BlockstateDefinition)
	}
	s.blockstates[ns][path] = def
}

func (s *Store) AddModel(location string, model *BlockModel) {
	ns, path := ParseResourceLocation(location)
	if s.models[ns] == nil {
		s.models[ns] = make(map[string]*BlockModel)
	}
	s.models[ns][path] = model
}

func (s *Store) AddTexture(location string, tex *TextureData) {
	ns, path := ParseResourceLocation(location)
	if s.textures[ns] == nil {
		s.textures[ns] = make(map[string]*TextureData)
	}
	s.textures[ns][path] = tex
}

func (s *Store) GetBlockstate(location string) (*BlockstateDefinition, error) {
	ns, path := ParseResourceLocation(location)
	if byPath, ok := s.blockstates[ns]; ok {
		if def, ok := byPath[path]; ok {
			return def, nil
		}
	}
	return nil, types.NewError(types.ErrResourceNotFound, "blockstate "+location)
}

func (s *Store) GetModel(location string) (*BlockModel, error) {
	ns, path := ParseResourceLocation(location)
	if byPath, ok := s.models[ns]; ok {
		if m, ok := byPath[path]; ok {
			return m, nil
		}
	}
	return nil, types.NewError(types.ErrResourceNotFound, "model "+location)
}

func (s *Store) GetTexture(location string) (*TextureData, error) {
	ns, path := ParseResourceLocation(location)
	if byPath, ok := s.textures[ns]; ok {
		if t, ok := byPath[path]; ok {
			return t, nil
		}
	}
	return nil, types.NewError(types.ErrResourceNotFound, "texture "+location)
}

func (s *Store) BlockstateCount() int { return countEntries(s.blockstates) }
func (s *Store) ModelCount() int      { return countEntries(s.models) }
func (s *Store) TextureCount() int    { return countEntries(s.textures) }

func countEntries[T any](m map[string]map[string]T) int {
	n := 0
	for _, byPath := range m {
		n += len(byPath)
	}
	return n
}

func (s *Store) Namespaces() []string {
	seen := make(map[string]struct{})
	for ns := range s.blockstates {
		seen[ns] = struct{}{}
	}
	for ns := range s.models {
		seen[ns] = struct{}{}
	}
	for ns := range s.textures {
		seen[ns] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for ns := range seen {
		out = append(out, ns)
	}
	return out
}
