package grid

import "github.com/talgya/superblock/internal/tile"

// Count helpers back the composition conditions of the upgrade rules.
// Category membership is always derived from the cell's current kind,
// never cached.

// CategoryCount returns how many cells of the region hold a tile of the
// given category.
func (b *Board) CategoryCount(regionRow, regionCol int, c tile.Category) int {
	n := 0
	for _, cell := range b.RegionCells(regionRow, regionCol) {
		if cell.Occupied && tile.CategoryOf(cell.Kind) == c {
			n++
		}
	}
	return n
}

// KindCount returns how many cells of the region hold exactly the given kind.
func (b *Board) KindCount(regionRow, regionCol int, k tile.Kind) int {
	n := 0
	for _, cell := range b.RegionCells(regionRow, regionCol) {
		if cell.Occupied && cell.Kind == k {
			n++
		}
	}
	return n
}

// AdjacentCategoryCount sums CategoryCount over the regions orthogonally
// adjacent to (regionRow, regionCol). The region itself is not included.
func (b *Board) AdjacentCategoryCount(regionRow, regionCol int, c tile.Category) int {
	n := 0
	for _, r := range AdjacentRegions(regionRow, regionCol) {
		n += b.CategoryCount(r.Row, r.Col, c)
	}
	return n
}

// AdjacentKindCount sums KindCount over the regions orthogonally adjacent
// to (regionRow, regionCol).
func (b *Board) AdjacentKindCount(regionRow, regionCol int, k tile.Kind) int {
	n := 0
	for _, r := range AdjacentRegions(regionRow, regionCol) {
		n += b.KindCount(r.Row, r.Col, k)
	}
	return n
}

// AdjacentWeightedResidential sums a weighted residential count over the
// adjacent regions: Apartments and Highrise count 4, every other residential
// kind counts 1. Non-residential tiles count 0. Used by the Highrise rule.
func (b *Board) AdjacentWeightedResidential(regionRow, regionCol int) int {
	n := 0
	for _, r := range AdjacentRegions(regionRow, regionCol) {
		for _, cell := range b.RegionCells(r.Row, r.Col) {
			if !cell.Occupied || tile.CategoryOf(cell.Kind) != tile.Residential {
				continue
			}
			switch cell.Kind {
			case tile.Apartments, tile.Highrise:
				n += 4
			default:
				n++
			}
		}
	}
	return n
}
