// Package grid provides the 9×9 city board: a 3×3 macro grid of regions
// ("superblocks"), each a 3×3 arrangement of cells, plus the spatial queries
// and counts the upgrade rules read.
package grid

import "fmt"

// Size is the side length of both the macro grid and each region.
const Size = 3

// Cells is the total number of cells on the board.
const Cells = Size * Size * Size * Size

// Position identifies one of the 81 cells by region and cell coordinates,
// each component in [0, 2]. Positions are pure values: two equal positions
// are interchangeable everywhere.
type Position struct {
	RegionRow int `json:"region_row"`
	RegionCol int `json:"region_col"`
	CellRow   int `json:"cell_row"`
	CellCol   int `json:"cell_col"`
}

// Valid reports whether all four components are in range.
func (p Position) Valid() bool {
	return p.RegionRow >= 0 && p.RegionRow < Size &&
		p.RegionCol >= 0 && p.RegionCol < Size &&
		p.CellRow >= 0 && p.CellRow < Size &&
		p.CellCol >= 0 && p.CellCol < Size
}

// OnRegionEdge reports whether the cell touches its region's boundary —
// the in-game notion of being next to a road.
func (p Position) OnRegionEdge() bool {
	return p.CellRow == 0 || p.CellRow == Size-1 ||
		p.CellCol == 0 || p.CellCol == Size-1
}

// String returns a compact "r1c2:r0c1" form for logs.
func (p Position) String() string {
	return fmt.Sprintf("r%dc%d:r%dc%d", p.RegionRow, p.RegionCol, p.CellRow, p.CellCol)
}

// At builds a position from flat board coordinates (row, col in [0, 8]).
// Useful for the API layer and tests; panics on out-of-range input.
func At(row, col int) Position {
	p := Position{
		RegionRow: row / Size,
		RegionCol: col / Size,
		CellRow:   row % Size,
		CellCol:   col % Size,
	}
	if row < 0 || row >= Size*Size || col < 0 || col >= Size*Size {
		panic(fmt.Sprintf("grid: flat coordinate out of range (%d, %d)", row, col))
	}
	return p
}

// Flat returns the board-wide (row, col) of the position, each in [0, 8].
func (p Position) Flat() (row, col int) {
	return p.RegionRow*Size + p.CellRow, p.RegionCol*Size + p.CellCol
}

// orthogonal offsets shared by cell and region adjacency.
var orthogonal = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
