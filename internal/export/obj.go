// Package export writes a MesherOutput out in forms simple enough to
// inspect or load into a third-party viewer without a full glTF/GLB
// encoder: Wavefront OBJ+MTL for geometry, and a JSON metadata dump for
// everything the flat OBJ format can't carry (atlas regions, greedy
// materials, animated-texture playback data).
package export

import (
	"bufio"
	"fmt"
	"io"

	"schematicmesher/internal/meshing"
)

// WriteOBJ writes mesh as a Wavefront OBJ to w, referencing
// materialName in a single "usemtl" directive — callers writing
// multiple passes (opaque/cutout/blend) call this once per mesh with a
// distinct name and object ("o") tag.
func WriteOBJ(w io.Writer, mesh *meshing.Mesh, objectName, materialName string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "o %s\n", objectName)
	fmt.Fprintf(bw, "usemtl %s\n", materialName)

	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %f %f %f\n", v.Position[0], v.Position[1], v.Position[2])
	}
	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "vt %f %f\n", v.UV[0], v.UV[1])
	}
	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "vn %f %f %f\n", v.Normal[0], v.Normal[1], v.Normal[2])
	}

	// OBJ face indices are 1-based.
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i]+1, mesh.Indices[i+1]+1, mesh.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	return bw.Flush()
}

// WriteMTL writes a minimal material library with one untextured
// material per name. WriteOBJ writes no vertex colors, so tint, AO and
// light shading are not carried by the OBJ/MTL pair.
func WriteMTL(w io.Writer, materialNames []string) error {
	bw := bufio.NewWriter(w)
	for _, name := range materialNames {
		fmt.Fprintf(bw, "newmtl %s\nKd 1.000 1.000 1.000\nd 1.0\n\n", name)
	}
	return bw.Flush()
}
