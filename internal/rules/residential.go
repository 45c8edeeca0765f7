package rules

import (
	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/tile"
)

// residentialCandidates evaluates every residential upgrade plus the slum
// cure for the tile of kind k at p.
func residentialCandidates(v BoardView, p grid.Position, k tile.Kind) []Candidate {
	return []Candidate{
		slumCandidate(v, p, k),
		hotelCandidate(v, p, k),
		villaCandidate(v, p, k),
		apartmentsCandidate(v, p, k),
		highriseCandidate(v, p, k),
		cureCandidate(v, p, k),
	}
}

// slumCandidate: a plain house in a crowded block with nothing to do and
// nowhere to learn degrades into a slum.
func slumCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.House {
		return notApplicable(tile.Slum)
	}
	rr, rc := p.RegionRow, p.RegionCol
	return Candidate{
		Target:     tile.Slum,
		Applicable: true,
		Conditions: []Condition{
			{"at least 4 residential tiles in the block", v.CategoryCount(rr, rc, tile.Residential) >= 4},
			{"no leisure in the block", v.CategoryCount(rr, rc, tile.Leisure) == 0},
			{"no education in the block", v.CategoryCount(rr, rc, tile.Education) == 0},
		},
	}
}

// hotelCandidate: scarce housing amid heavy commerce becomes a hotel.
// The residential bound is strict: 3 or more residents rule it out.
func hotelCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.House {
		return notApplicable(tile.Hotel)
	}
	rr, rc := p.RegionRow, p.RegionCol
	return Candidate{
		Target:     tile.Hotel,
		Applicable: true,
		Conditions: []Condition{
			{"at least 3 commercial tiles in the block", v.CategoryCount(rr, rc, tile.Commercial) >= 3},
			{"fewer than 3 residential tiles in the block", v.CategoryCount(rr, rc, tile.Residential) < 3},
		},
	}
}

// villaCandidate: a quiet house off the road, next to greenery.
func villaCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.House {
		return notApplicable(tile.Villa)
	}
	nextToLeisure := false
	for _, n := range v.AdjacentCells(p) {
		if n.Occupied && tile.CategoryOf(n.Kind) == tile.Leisure {
			nextToLeisure = true
			break
		}
	}
	return Candidate{
		Target:     tile.Villa,
		Applicable: true,
		Conditions: []Condition{
			{"next to a leisure tile", nextToLeisure},
			{"not on the road", !p.OnRegionEdge()},
		},
	}
}

// apartmentsCandidate: tier-2 housing in a fully mixed block. Slums qualify
// too — a balanced block gentrifies.
func apartmentsCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.House && k != tile.Slum {
		return notApplicable(tile.Apartments)
	}
	rr, rc := p.RegionRow, p.RegionCol
	return Candidate{
		Target:     tile.Apartments,
		Applicable: true,
		Conditions: []Condition{
			{"at least 3 residential tiles in the block", v.CategoryCount(rr, rc, tile.Residential) >= 3},
			{"at least 1 leisure tile in the block", v.CategoryCount(rr, rc, tile.Leisure) >= 1},
			{"at least 1 commercial tile in the block", v.CategoryCount(rr, rc, tile.Commercial) >= 1},
			{"at least 1 education tile in the block", v.CategoryCount(rr, rc, tile.Education) >= 1},
		},
	}
}

// highriseCandidate: the top of the residential ladder, reachable only from
// apartments. All of its conditions look beyond the cell: a mall next door,
// dense housing around, and a block with schooling and plenty of leisure.
func highriseCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.Apartments {
		return notApplicable(tile.Highrise)
	}
	rr, rc := p.RegionRow, p.RegionCol
	return Candidate{
		Target:     tile.Highrise,
		Applicable: true,
		Conditions: []Condition{
			{"a mall in a neighboring block", v.AdjacentKindCount(rr, rc, tile.Mall) >= 1},
			{"weighted residential value of neighboring blocks at least 20", v.AdjacentWeightedResidential(rr, rc) >= 20},
			{"at least 1 education tile in the block", v.CategoryCount(rr, rc, tile.Education) >= 1},
			{"at least 3 leisure tiles in the block", v.CategoryCount(rr, rc, tile.Leisure) >= 3},
		},
	}
}

// cureCandidate: leisure or education anywhere in the block cures a slum
// back into a plain house. This is the only downgrade in the catalog.
func cureCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.Slum {
		return notApplicable(tile.House)
	}
	rr, rc := p.RegionRow, p.RegionCol
	lei := v.CategoryCount(rr, rc, tile.Leisure)
	edu := v.CategoryCount(rr, rc, tile.Education)
	return Candidate{
		Target:     tile.House,
		Applicable: true,
		Conditions: []Condition{
			{"leisure or education in the block", lei > 0 || edu > 0},
		},
	}
}
