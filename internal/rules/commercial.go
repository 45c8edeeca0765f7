package rules

import (
	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/tile"
)

// commercialCandidates evaluates every commercial upgrade for the tile of
// kind k at p. All three are reachable only from a plain shop.
func commercialCandidates(v BoardView, p grid.Position, k tile.Kind) []Candidate {
	return []Candidate{
		mallCandidate(v, p, k),
		restaurantCandidate(v, p, k),
		bankCandidate(v, p, k),
	}
}

// mallCandidate: a shop becomes a mall next to an existing mall, or when it
// sits in a connected commercial cluster of 3 or more with road access.
// The cluster walk is category-bounded, so malls, restaurants and banks all
// extend a shop's cluster.
func mallCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.Shop {
		return notApplicable(tile.Mall)
	}
	nextToMall := false
	for _, n := range v.AdjacentCells(p) {
		if n.Occupied && n.Kind == tile.Mall {
			nextToMall = true
			break
		}
	}
	cl := FindCluster(v, p)
	roadCluster := cl.Size >= 3 && cl.TouchesEdge
	return Candidate{
		Target:     tile.Mall,
		Applicable: true,
		Conditions: []Condition{
			{"next to a mall, or in a commercial cluster of 3 or more touching the road", nextToMall || roadCluster},
		},
	}
}

// restaurantCandidate: commerce next door and a large surrounding population.
func restaurantCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.Shop {
		return notApplicable(tile.Restaurant)
	}
	rr, rc := p.RegionRow, p.RegionCol
	residents := v.CategoryCount(rr, rc, tile.Residential) + v.AdjacentCategoryCount(rr, rc, tile.Residential)
	return Candidate{
		Target:     tile.Restaurant,
		Applicable: true,
		Conditions: []Condition{
			{"next to a commercial tile", adjacentCategory(v, p, tile.Commercial) >= 1},
			{"at least 10 residential tiles in this and neighboring blocks", residents >= 10},
		},
	}
}

// bankCandidate: tier-2 housing in the neighboring blocks brings deposits.
func bankCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.Shop {
		return notApplicable(tile.Bank)
	}
	rr, rc := p.RegionRow, p.RegionCol
	return Candidate{
		Target:     tile.Bank,
		Applicable: true,
		Conditions: []Condition{
			{"at least 4 apartment tiles in neighboring blocks", v.AdjacentKindCount(rr, rc, tile.Apartments) >= 4},
		},
	}
}
