package voxel

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// NeighbourGraph returns the adjacency graph of every voxel, ignoring state.
// Node ids are voxel ids.
func (c *Complex) NeighbourGraph() *simple.UndirectedGraph {
	return c.graph(func(Voxel) bool { return true })
}

// ActiveComponents returns the groups of present voxels connected through
// shared faces, each as a list of voxel ids.
func (c *Complex) ActiveComponents() [][]int {
	g := c.graph(func(v Voxel) bool { return v.State != None })
	var groups [][]int
	for _, comp := range topo.ConnectedComponents(g) {
		ids := make([]int, len(comp))
		for i, n := range comp {
			ids[i] = int(n.ID())
		}
		groups = append(groups, ids)
	}
	return groups
}

func (c *Complex) graph(keep func(Voxel) bool) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for _, v := range c.Voxels {
		if keep(v) {
			g.AddNode(simple.Node(v.ID))
		}
	}
	for _, v := range c.Voxels {
		if !keep(v) {
			continue
		}
		for _, link := range v.Neighbours {
			if !link.Valid || link.Voxel < v.ID || !keep(c.Voxels[link.Voxel]) {
				continue
			}
			g.SetEdge(simple.Edge{F: simple.Node(v.ID), T: simple.Node(link.Voxel)})
		}
	}
	return g
}
