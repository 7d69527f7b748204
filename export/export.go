// Package export serializes relief meshes to STL. The mesher already hands
// over a closed, outward-oriented mesh; this package only converts, optionally
// welds coincident vertices, and writes.
package export

import (
	"os"
	"path/filepath"

	"github.com/hschendel/stl"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"

	"github.com/lithogo/relief"
)

// CheckTarget verifies the STL destination is usable before any meshing work
// starts. A missing or unwritable directory fails with ErrUpstreamUnavailable.
func CheckTarget(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrapf(relief.ErrUpstreamUnavailable, "output directory %s: %v", dir, err)
	}
	if !info.IsDir() {
		return errors.Wrapf(relief.ErrUpstreamUnavailable, "%s is not a directory", dir)
	}
	return nil
}

// ToSolid converts an indexed mesh into an stl.Solid with positional
// triangles and freshly computed normals.
func ToSolid(m *relief.Mesh) *stl.Solid {
	solid := &stl.Solid{IsAscii: false}
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		solid.AppendTriangle(stl.Triangle{Vertices: [3]stl.Vec3{
			{a.X, a.Y, a.Z},
			{b.X, b.Y, b.Z},
			{c.X, c.Y, c.Z},
		}})
	}
	solid.RecalculateNormals()
	return solid
}

// WriteSTL writes the mesh to path as binary STL.
func WriteSTL(m *relief.Mesh, path string) error {
	if err := ToSolid(m).WriteFile(path); err != nil {
		return errors.Wrapf(relief.ErrUpstreamUnavailable, "write stl %s: %v", path, err)
	}
	return nil
}

// Weld deduplicates coincident vertices by rebuilding the mesh on shared
// coordinates. The grid mesher intentionally leaves cap and wall layers on
// the same coordinates through shared indices already, so welding is a no-op
// geometrically; it exists for downstream consumers that key on vertex
// identity.
func Weld(m *relief.Mesh) *model3d.Mesh {
	tris := make([]*model3d.Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		tris[i] = &model3d.Triangle{
			{X: float64(a.X), Y: float64(a.Y), Z: float64(a.Z)},
			{X: float64(b.X), Y: float64(b.Y), Z: float64(b.Z)},
			{X: float64(c.X), Y: float64(c.Y), Z: float64(c.Z)},
		}
	}
	return model3d.NewMeshTriangles(tris)
}

// Validate checks that the mesh encloses a volume: every edge shared by
// exactly two triangles and no singular vertices.
func Validate(m *relief.Mesh) error {
	welded := Weld(m)
	if welded.NeedsRepair() {
		return errors.New("mesh has edges not shared by exactly two triangles")
	}
	if n := len(welded.SingularVertices()); n > 0 {
		return errors.Errorf("mesh has %d singular vertices", n)
	}
	return nil
}
