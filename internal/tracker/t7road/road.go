package t7road

import (
	"github.com/catrack/catracker/internal/tracker/t6cell"
	"github.com/catrack/catracker/internal/tracker/tuning"
)

// Road is a chain indexed by layer L in [0, CellsPerRoad) of either an
// owning cell index on that layer, or tuning.Unused. MCLabel and
// IsFake are filled in later by the labelling stage (t8label).
type Road struct {
	CellIndices [tuning.CellsPerRoad]int
	MCLabel     int
	IsFake      bool
}

// NewRoad returns a Road with every layer slot set to tuning.Unused.
func NewRoad() Road {
	var r Road
	for i := range r.CellIndices {
		r.CellIndices[i] = tuning.Unused
	}
	return r
}

// LinkNeighbours runs the neighbour-linking half of spec §4.7: for each
// layer pair (L, L+1), cells on L+1 that continue a cell on L through a
// shared tracklet are gated on plane-normal and curvature similarity,
// and the CA level of the compatible predecessor propagates forward.
//
// cells is mutated in place (Level fields are updated).
func LinkNeighbours(cells [tuning.CellsPerRoad][]t6cell.Cell, cellsLUT [tuning.CellsPerRoad - 1][]int, cfg *tuning.TuningConfig) [tuning.CellsPerRoad - 1][][]int {
	maxDeltaN2 := cfg.GetNeighbourMaxDeltaN2()
	maxDeltaK := cfg.GetNeighbourMaxDeltaK()

	var neighbours [tuning.CellsPerRoad - 1][][]int

	for l := 0; l < tuning.CellsPerRoad-1; l++ {
		neighbours[l] = make([][]int, len(cells[l+1]))

		for ci := range cells[l] {
			c := &cells[l][ci]
			t2 := c.SecondTrackletIndex

			start := cellsLUT[l][t2]
			if start == tuning.Unused {
				continue
			}
			if start >= len(cells[l+1]) || cells[l+1][start].FirstTrackletIndex != t2 {
				continue
			}

			for cj := start; cj < len(cells[l+1]) && cells[l+1][cj].FirstTrackletIndex == t2; cj++ {
				cp := &cells[l+1][cj]

				dnx := c.N.X - cp.N.X
				dny := c.N.Y - cp.N.Y
				dnz := c.N.Z - cp.N.Z
				deltaN2 := dnx*dnx + dny*dny + dnz*dnz
				deltaK := c.Curvature - cp.Curvature
				if deltaK < 0 {
					deltaK = -deltaK
				}

				if deltaN2 >= maxDeltaN2[l] || deltaK >= maxDeltaK[l] {
					continue
				}

				neighbours[l][cj] = append(neighbours[l][cj], ci)

				if c.Level >= cp.Level {
					cp.Level = c.Level + 1
				}
			}
		}
	}

	return neighbours
}

// ExtractRoads runs the road-extraction half of spec §4.7: for
// descending CA level down to cellsMinLevel, seed a road at every cell
// still carrying that level and recursively walk its compatible
// predecessor chain, branching a new road copy at every predecessor
// beyond the first. Each seed's level is reset to 0 after it is fully
// processed so it is never revisited at a lower iLevel — but the inner
// cells consumed via recursion are deliberately left untouched (an
// open question carried over unchanged from the source: the same
// inner cell may appear in roads seeded from different outer cells at
// the same iLevel).
func ExtractRoads(cells [tuning.CellsPerRoad][]t6cell.Cell, neighbours [tuning.CellsPerRoad - 1][][]int, cellsMinLevel int) []Road {
	var roads []Road

	for iLevel := tuning.CellsPerRoad; iLevel >= cellsMinLevel; iLevel-- {
		for l := tuning.CellsPerRoad - 1; l >= iLevel-1; l-- {
			for idx := range cells[l] {
				if cells[l][idx].Level != iLevel {
					continue
				}

				seed := NewRoad()
				seed.CellIndices[l] = idx
				extendRoad(&roads, seed, l, idx, iLevel, cells, neighbours)

				cells[l][idx].Level = 0
			}
		}
	}

	return roads
}

// extendRoad walks predecessors of (layer, cellIdx) at level-1,
// branching a fresh Road value for each valid predecessor. Road is a
// small fixed-size-array value type, so every branch already takes an
// independent copy at the point of divergence — the "first predecessor
// extends in place" distinction from the source is a memory-reuse
// optimization that does not change the resulting road set under value
// semantics, so it is elided here.
func extendRoad(roads *[]Road, current Road, layer, cellIdx, level int, cells [tuning.CellsPerRoad][]t6cell.Cell, neighbours [tuning.CellsPerRoad - 1][][]int) {
	if layer == 0 {
		*roads = append(*roads, current)
		return
	}

	preds := neighbours[layer-1][cellIdx]
	found := false
	for _, p := range preds {
		if cells[layer-1][p].Level != level-1 {
			continue
		}
		found = true
		branch := current
		branch.CellIndices[layer-1] = p
		extendRoad(roads, branch, layer-1, p, level-1, cells, neighbours)
	}

	if !found {
		*roads = append(*roads, current)
	}
}
