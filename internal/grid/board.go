package grid

import "github.com/talgya/superblock/internal/tile"

// Board is the single mutable source of truth for the 81 cells. It knows
// nothing about upgrade rules or score; callers are responsible for only
// writing legal transitions.
type Board struct {
	cells [Size][Size][Size][Size]slot
}

// slot holds one cell: either empty or a tile kind.
type slot struct {
	occupied bool
	kind     tile.Kind
}

// Cell is a (position, contents) pair returned by the spatial queries.
type Cell struct {
	Pos      Position
	Kind     tile.Kind
	Occupied bool
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Get returns the kind at the position and whether the cell is occupied.
// The position must be in range; this is a caller precondition.
func (b *Board) Get(p Position) (tile.Kind, bool) {
	s := b.cells[p.RegionRow][p.RegionCol][p.CellRow][p.CellCol]
	return s.kind, s.occupied
}

// Set unconditionally writes a tile kind into the cell.
func (b *Board) Set(p Position, k tile.Kind) {
	b.cells[p.RegionRow][p.RegionCol][p.CellRow][p.CellCol] = slot{occupied: true, kind: k}
}

// Clear empties the cell.
func (b *Board) Clear(p Position) {
	b.cells[p.RegionRow][p.RegionCol][p.CellRow][p.CellCol] = slot{}
}

// Occupied returns the number of occupied cells on the whole board.
func (b *Board) Occupied() int {
	n := 0
	for _, c := range b.AllCells() {
		if c.Occupied {
			n++
		}
	}
	return n
}

// AdjacentCells returns the up-to-4 orthogonal neighbors of the position,
// strictly within the same region. No wraparound, no diagonals, no crossing
// region boundaries; edge and corner cells get fewer than 4 results.
func (b *Board) AdjacentCells(p Position) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range orthogonal {
		n := Position{
			RegionRow: p.RegionRow,
			RegionCol: p.RegionCol,
			CellRow:   p.CellRow + d[0],
			CellCol:   p.CellCol + d[1],
		}
		if !n.Valid() {
			continue
		}
		k, occ := b.Get(n)
		out = append(out, Cell{Pos: n, Kind: k, Occupied: occ})
	}
	return out
}

// RegionCells returns all 9 cells of the region in row-major order.
func (b *Board) RegionCells(regionRow, regionCol int) []Cell {
	out := make([]Cell, 0, Size*Size)
	for cr := 0; cr < Size; cr++ {
		for cc := 0; cc < Size; cc++ {
			p := Position{RegionRow: regionRow, RegionCol: regionCol, CellRow: cr, CellCol: cc}
			k, occ := b.Get(p)
			out = append(out, Cell{Pos: p, Kind: k, Occupied: occ})
		}
	}
	return out
}

// RegionCoord addresses one region on the macro grid.
type RegionCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// AdjacentRegions returns the up-to-4 orthogonal neighbor regions,
// clipped at the macro-grid boundary.
func AdjacentRegions(regionRow, regionCol int) []RegionCoord {
	out := make([]RegionCoord, 0, 4)
	for _, d := range orthogonal {
		r, c := regionRow+d[0], regionCol+d[1]
		if r < 0 || r >= Size || c < 0 || c >= Size {
			continue
		}
		out = append(out, RegionCoord{Row: r, Col: c})
	}
	return out
}

// AllCells returns every cell on the board, regions in row-major order and
// cells row-major within each region.
func (b *Board) AllCells() []Cell {
	out := make([]Cell, 0, Cells)
	for rr := 0; rr < Size; rr++ {
		for rc := 0; rc < Size; rc++ {
			out = append(out, b.RegionCells(rr, rc)...)
		}
	}
	return out
}
