// Package schematic loads the placed-block input a mesh call consumes.
// spec.md treats "a BlockSource" as a given; this package supplies the
// one concrete, file-backed form the CLI needs to exercise the
// pipeline end to end, the same role the teacher's world generation
// plays for its own in-memory World.
package schematic

import (
	"encoding/json"
	"io"
	"os"

	"schematicmesher/internal/types"
)

// Document is the on-disk JSON schematic format: a flat list of placed
// blocks. There is no third-party schematic format in the retrieval
// pack (NBT/.schem parsing is a world away from this pipeline's
// concerns), so this is a deliberately plain stdlib encoding/json
// shape rather than a stand-in for a real format.
type Document struct {
	Blocks []BlockEntry `json:"blocks"`
}

type BlockEntry struct {
	X          int               `json:"x"`
	Y          int               `json:"y"`
	Z          int               `json:"z"`
	Name       string            `json:"name"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Load reads a JSON schematic document from path into a new Grid, with
// a one-block air margin padded onto its bounds (the light-map BFS
// needs somewhere to seed sky light from outside the structure).
func Load(path string) (*types.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.WrapError(types.ErrResourceNotFound, "opening schematic "+path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a JSON schematic document from r into a new Grid.
func Decode(r io.Reader) (*types.Grid, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, types.WrapError(types.ErrInvalidResourcePack, "parsing schematic", err)
	}

	grid := types.NewGrid()
	for _, e := range doc.Blocks {
		block := types.NewInputBlock(e.Name)
		for k, v := range e.Properties {
			block = block.WithProperty(k, v)
		}
		grid.Set(types.BlockPosition{X: e.X, Y: e.Y, Z: e.Z}, block)
	}

	bounds := grid.Bounds()
	padded := types.BoundingBox{
		Min: bounds.Min.Add(-1, -1, -1),
		Max: bounds.Max.Add(1, 1, 1),
	}
	grid.SetBounds(padded)
	return grid, nil
}
