package voxel

import (
	"fmt"

	"github.com/JonasWard/para-slim-shady/halfedge"
)

// Enclosure extracts the boundary surface of the present voxels. Every face
// for which IsFaceClosed holds is emitted once from its present side, wound
// outwards, with corners merged within tol.
func Enclosure(c *Complex, tol float64) (*halfedge.Mesh, error) {
	b := halfedge.NewBuilder(tol)
	for i, v := range c.Voxels {
		if v.State == None {
			continue
		}
		for slot, link := range v.Neighbours {
			if !IsFaceClosed(v.State, c.NeighbourState(i, slot)) {
				continue
			}
			meta := halfedge.FaceMeta{Voxel: i, Slot: slot, Face: -1, Neighbour: -1}
			if link.Valid {
				meta.Face, meta.Neighbour = link.Face, link.Voxel
			}
			if _, err := b.AddFace(c.FaceCorners(i, slot), meta); err != nil {
				return nil, fmt.Errorf("voxel %d slot %d: %w", i, slot, err)
			}
		}
	}
	m := b.Mesh()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("enclosure: %w", err)
	}
	return m, nil
}
