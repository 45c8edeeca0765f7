package rules

import (
	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/tile"
)

// Cluster is the result of the connected same-category walk.
type Cluster struct {
	Size        int  // Number of cells visited, including the start
	TouchesEdge bool // True if any visited cell is on the region edge
}

// FindCluster walks 4-directionally from start, visiting every reachable
// cell whose tile shares the start cell's base category regardless of exact
// kind. Adjacency is the board's own, so the walk stays inside the start
// cell's region. Nothing is cached; every call walks fresh.
//
// Returns the zero Cluster when the start cell is empty.
func FindCluster(v BoardView, start grid.Position) Cluster {
	k, occ := v.Get(start)
	if !occ {
		return Cluster{}
	}
	cat := tile.CategoryOf(k)
	visited := make(map[grid.Position]struct{})
	var cl Cluster
	walkCluster(v, start, cat, visited, &cl)
	return cl
}

// walkCluster is the depth-first step: mark, count, recurse into unvisited
// same-category neighbors.
func walkCluster(v BoardView, p grid.Position, cat tile.Category, visited map[grid.Position]struct{}, cl *Cluster) {
	visited[p] = struct{}{}
	cl.Size++
	if p.OnRegionEdge() {
		cl.TouchesEdge = true
	}
	for _, n := range v.AdjacentCells(p) {
		if !n.Occupied || tile.CategoryOf(n.Kind) != cat {
			continue
		}
		if _, seen := visited[n.Pos]; seen {
			continue
		}
		walkCluster(v, n.Pos, cat, visited, cl)
	}
}
