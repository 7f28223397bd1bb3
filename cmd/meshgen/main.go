// Command meshgen drives the meshing pipeline end to end from the
// command line: load a resource pack (directory or zip), load a JSON
// schematic, mesh it, and write OBJ+MTL geometry, the atlas PNG, and a
// metadata JSON dump to an output directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"schematicmesher/internal/export"
	"schematicmesher/internal/schematic"
	"schematicmesher/pkg/mesher"
	"schematicmesher/pkg/resourcepack"
)

func main() {
	var (
		packPath   = flag.String("pack", "", "path to a resource pack directory or .zip archive")
		schemPath  = flag.String("schematic", "", "path to a JSON schematic document")
		outDir     = flag.String("out", "out", "output directory for mesh/atlas/metadata files")
		configPath = flag.String("config", "", "optional TOML file overriding MesherConfig defaults")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "meshgen"})

	if *packPath == "" || *schemPath == "" {
		fmt.Fprintln(os.Stderr, "usage: meshgen -pack <dir|zip> -schematic <file.json> [-out dir] [-config file.toml]")
		os.Exit(2)
	}

	if err := run(*packPath, *schemPath, *outDir, *configPath, logger); err != nil {
		logger.Error("meshgen failed", "err", err)
		os.Exit(1)
	}
}

func run(packPath, schemPath, outDir, configPath string, logger *log.Logger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	pack, err := loadPack(packPath)
	if err != nil {
		return fmt.Errorf("loading resource pack: %w", err)
	}
	logger.Info("loaded resource pack", "blockstates", pack.BlockstateCount(), "models", pack.ModelCount(), "textures", pack.TextureCount())

	grid, err := schematic.Load(schemPath)
	if err != nil {
		return fmt.Errorf("loading schematic: %w", err)
	}

	m := mesher.New(pack, cfg)
	out, err := m.Mesh(grid, grid.Bounds())
	if err != nil {
		return fmt.Errorf("meshing: %w", err)
	}
	logger.Info("meshed scene",
		"opaque_tris", len(out.OpaqueMesh.Indices)/3,
		"cutout_tris", len(out.CutoutMesh.Indices)/3,
		"blend_tris", len(out.BlendMesh.Indices)/3,
		"greedy_materials", len(out.GreedyMaterials),
		"animated_textures", len(out.AnimatedTextures),
		"skipped_blocks", len(out.Skipped),
	)

	return writeOutput(out, outDir, logger)
}

// loadPack dispatches on the path's extension: a ".zip" file is read
// whole and passed to resourcepack.LoadZip, anything else is treated
// as a directory and walked via os.DirFS.
func loadPack(path string) (*resourcepack.Store, error) {
	if filepath.Ext(path) == ".zip" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return resourcepack.LoadZip(data, int64(len(data)))
	}
	return resourcepack.Load(os.DirFS(path))
}

// writeOutput serializes a MesherOutput the way the core's "Out of
// scope" collaborators would: OBJ+MTL per render pass, the atlas PNG,
// one sprite sheet PNG per animated texture, and a metadata.json tying
// it all together. None of this is part of the core (spec.md §1 places
// GLB/OBJ serialization outside it); it exists only so the CLI has
// something to write to disk.
func writeOutput(out *mesher.Output, outDir string, logger *log.Logger) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	passes := []struct {
		name string
		mesh *mesher.Mesh
	}{
		{"opaque", out.OpaqueMesh},
		{"cutout", out.CutoutMesh},
		{"blend", out.BlendMesh},
	}
	var materialNames []string
	for _, p := range passes {
		if len(p.mesh.Vertices) == 0 {
			continue
		}
		materialNames = append(materialNames, p.name)
		if err := writeOBJFile(filepath.Join(outDir, p.name+".obj"), p.mesh, p.name); err != nil {
			return fmt.Errorf("writing %s.obj: %w", p.name, err)
		}
	}
	if err := writeMTLFile(filepath.Join(outDir, "materials.mtl"), materialNames); err != nil {
		return fmt.Errorf("writing materials.mtl: %w", err)
	}

	atlasPNG, err := out.Atlas.ToPNG()
	if err != nil {
		return fmt.Errorf("encoding atlas: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "atlas.png"), atlasPNG, 0o644); err != nil {
		return err
	}

	for i, mat := range out.GreedyMaterials {
		name := fmt.Sprintf("greedy_%03d.png", i)
		if err := os.WriteFile(filepath.Join(outDir, name), mat.PNG, 0o644); err != nil {
			return err
		}
	}

	for i, anim := range out.AnimatedTextures {
		name := fmt.Sprintf("animated_%03d.png", i)
		if err := os.WriteFile(filepath.Join(outDir, name), anim.SpriteSheetPNG, 0o644); err != nil {
			return err
		}
	}

	meta := export.BuildMetadata(out)
	f, err := os.Create(filepath.Join(outDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WriteJSON(f, meta); err != nil {
		return err
	}

	logger.Info("wrote output", "dir", outDir)
	return nil
}

func writeOBJFile(path string, mesh *mesher.Mesh, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteOBJ(f, mesh, name, name)
}

func writeMTLFile(path string, materialNames []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteMTL(f, materialNames)
}
