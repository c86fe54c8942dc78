package t8label

import (
	"github.com/catrack/catracker/internal/tracker/t2layer"
	"github.com/catrack/catracker/internal/tracker/t6cell"
	"github.com/catrack/catracker/internal/tracker/t7road"
	"github.com/catrack/catracker/internal/tracker/tuning"
)

// Stage assigns every road's MCLabel and IsFake fields in place, via
// Boyer-Moore majority vote (spec §4.8) over the MC ids of the clusters
// it references: each cell contributes its third cluster, and the
// road's first (lowest-layer) cell additionally contributes its first
// and second clusters.
func Stage(roads []t7road.Road, cells [tuning.CellsPerRoad][]t6cell.Cell, layers [tuning.LayersNum]*t2layer.Layer) {
	for i := range roads {
		roads[i].MCLabel, roads[i].IsFake = label(&roads[i], cells, layers)
	}
}

func label(road *t7road.Road, cells [tuning.CellsPerRoad][]t6cell.Cell, layers [tuning.LayersNum]*t2layer.Layer) (mcID int, fake bool) {
	firstLayer := -1
	for l := 0; l < tuning.CellsPerRoad; l++ {
		if road.CellIndices[l] != tuning.Unused {
			firstLayer = l
			break
		}
	}
	if firstLayer == -1 {
		return tuning.Unused, true
	}

	first := &cells[firstLayer][road.CellIndices[firstLayer]]

	candidate := layers[firstLayer].Clusters[first.FirstClusterIndex].MCID
	count := 1

	secondID := layers[firstLayer+1].Clusters[first.SecondClusterIndex].MCID
	if secondID == candidate {
		count++
	} else {
		candidate = secondID
		count = 1
		fake = true
	}

	for l := firstLayer; l < tuning.CellsPerRoad; l++ {
		idx := road.CellIndices[l]
		if idx == tuning.Unused {
			continue
		}
		c := &cells[l][idx]
		thirdID := layers[l+2].Clusters[c.ThirdClusterIndex].MCID

		if thirdID == candidate {
			count++
			continue
		}

		fake = true
		count--
		if count == 0 {
			candidate = thirdID
			count = 1
		}
	}

	return candidate, fake
}
