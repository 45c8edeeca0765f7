package rules

import (
	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/tile"
)

// educationCandidates evaluates both education upgrades for the tile of
// kind k at p.
func educationCandidates(v BoardView, p grid.Position, k tile.Kind) []Candidate {
	return []Candidate{
		highSchoolCandidate(v, p, k),
		universityCandidate(v, p, k),
	}
}

// highSchoolCandidate: enough residents nearby to fill classrooms, and
// another school in the neighborhood to feed from.
func highSchoolCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.School {
		return notApplicable(tile.HighSchool)
	}
	rr, rc := p.RegionRow, p.RegionCol
	nearbySchools := v.AdjacentKindCount(rr, rc, tile.School) +
		v.AdjacentKindCount(rr, rc, tile.HighSchool) +
		v.AdjacentKindCount(rr, rc, tile.University)
	return Candidate{
		Target:     tile.HighSchool,
		Applicable: true,
		Conditions: []Condition{
			{"at least 20 residential tiles in neighboring blocks", v.AdjacentCategoryCount(rr, rc, tile.Residential) >= 20},
			{"another school in a neighboring block", nearbySchools >= 1},
		},
	}
}

// universityCandidate: an education-dense block promotes its schools.
func universityCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.School && k != tile.HighSchool {
		return notApplicable(tile.University)
	}
	rr, rc := p.RegionRow, p.RegionCol
	return Candidate{
		Target:     tile.University,
		Applicable: true,
		Conditions: []Condition{
			{"at least 4 education tiles in the block", v.CategoryCount(rr, rc, tile.Education) >= 4},
		},
	}
}
