package mesher

import (
	"schematicmesher/internal/atlas"
	"schematicmesher/internal/meshing"
)

// remapUVs rewrites every non-greedy face's UVs from local [0,1]
// texture space into its texture's packed atlas region. Greedy-merged
// faces are skipped: their UVs stay tiled across [0,width]x[0,height]
// against the texture's own pixels, since an atlas region can't
// represent a UV coordinate that legitimately exceeds 1.
func remapUVs(mesh *meshing.Mesh, atl *atlas.Atlas) {
	for _, f := range mesh.Faces {
		if f.Greedy {
			continue
		}
		region, ok := atl.Region(f.Texture)
		if !ok {
			continue
		}
		for i := uint32(0); i < 4; i++ {
			v := &mesh.Vertices[f.VertexStart+i]
			v.UV = region.TransformUV(v.UV[0], v.UV[1])
		}
	}
}
