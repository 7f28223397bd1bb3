package resourcepack

import (
	"archive/zip"
	"encoding/json"
	"io"
	"io/fs"
	"strings"

	"schematicmesher/internal/types"
)

// Load builds a Store from a resource pack laid out as a plain
// directory tree (assets/<namespace>/{blockstates,models,textures}/...).
// A zip-archived pack is loaded the same way via LoadZip.
func Load(root fs.FS) (*Store, error) {
	store := NewStore()
	err := fs.WalkDir(root, "assets", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "assets" {
				return nil // no assets dir at all is tolerated, yields an empty store
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		return loadEntry(store, root, p)
	})
	if err != nil {
		return nil, types.WrapError(types.ErrInvalidResourcePack, "walking resource pack", err)
	}
	finalizeAnimations(store)
	return store, nil
}

func loadEntry(store *Store, root fs.FS, p string) error {
	// assets/<namespace>/<kind>/<rest...>
	parts := strings.SplitN(p, "/", 4)
	if len(parts) < 4 {
		return nil
	}
	namespace, kind, rest := parts[1], parts[2], parts[3]

	data, err := fs.ReadFile(root, p)
	if err != nil {
		return types.WrapError(types.ErrInvalidResourcePack, "reading "+p, err)
	}

	switch {
	case kind == "blockstates" && strings.HasSuffix(rest, ".json"):
		var def BlockstateDefinition
		if err := json.Unmarshal(data, &def); err != nil {
			return types.WrapError(types.ErrInvalidResourcePack, "parsing blockstate "+p, err)
		}
		store.AddBlockstate(namespace+":"+strings.TrimSuffix(rest, ".json"), &def)

	case kind == "models" && strings.HasSuffix(rest, ".json"):
		var model BlockModel
		if err := json.Unmarshal(data, &model); err != nil {
			return types.WrapError(types.ErrInvalidResourcePack, "parsing model "+p, err)
		}
		store.AddModel(namespace+":"+strings.TrimSuffix(rest, ".json"), &model)

	case kind == "textures" && strings.HasSuffix(rest, ".png"):
		tex, err := LoadTextureFromBytes(data)
		if err != nil {
			return types.WrapError(types.ErrInvalidResourcePack, "decoding texture "+p, err)
		}
		store.AddTexture(namespace+":"+strings.TrimSuffix(rest, ".png"), tex)

	case kind == "textures" && strings.HasSuffix(rest, ".png.mcmeta"):
		loc := namespace + ":" + strings.TrimSuffix(rest, ".png.mcmeta")
		meta, err := ParseAnimationMeta(data)
		if err != nil {
			return types.WrapError(types.ErrInvalidResourcePack, "parsing mcmeta "+p, err)
		}
		// the texture may be read before or after its sidecar depending on
		// walk order, so stash the metadata and apply it once both are known.
		store.pendingFrameOrders = append(store.pendingFrameOrders, pendingFrameOrder{loc, meta})
	}
	return nil
}

type pendingFrameOrder struct {
	location string
	meta     AnimationMeta
}

// LoadZip builds a Store from an in-memory zip archive of a resource
// pack (the common distribution format). Only an archive with assets/
// at its root is read; a pack wrapped in an enclosing directory inside
// the archive yields an empty Store.
func LoadZip(data []byte, size int64) (*Store, error) {
	r, err := zip.NewReader(newReaderAt(data), size)
	if err != nil {
		return nil, types.WrapError(types.ErrInvalidResourcePack, "opening zip", err)
	}
	return Load(&zipFS{r})
}

type zipFS struct{ r *zip.Reader }

func (z *zipFS) Open(name string) (fs.File, error) { return z.r.Open(name) }

type byteReaderAt struct{ data []byte }

func newReaderAt(data []byte) *byteReaderAt { return &byteReaderAt{data} }

func (b *byteReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// finalizeAnimations applies any .mcmeta frame orders collected during
// the walk to their corresponding textures, now that both files have
// been read regardless of directory-walk order.
func finalizeAnimations(store *Store) {
	for _, pending := range store.pendingFrameOrders {
		ns, p := ParseResourceLocation(pending.location)
		byPath, ok := store.textures[ns]
		if !ok {
			continue
		}
		tex, ok := byPath[p]
		if !ok {
			continue
		}
		tex.FrameOrder = pending.meta.FrameOrder
		tex.FrameTime = pending.meta.FrameTime
		tex.Interpolate = pending.meta.Interpolate
		tex.IsAnimated = true
		frameW, frameH := pending.meta.FrameWidth, pending.meta.FrameHeight
		if frameW <= 0 {
			frameW = tex.Width
		}
		if frameH <= 0 {
			frameH = frameW
		}
		if frameH > 0 {
			tex.FrameCount = tex.Height / frameH
		}
	}
	store.pendingFrameOrders = nil
}
