package t8label

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/catrack/catracker/internal/tracker/event"
	"github.com/catrack/catracker/internal/tracker/t2layer"
	"github.com/catrack/catracker/internal/tracker/t6cell"
	"github.com/catrack/catracker/internal/tracker/t7road"
	"github.com/catrack/catracker/internal/tracker/tuning"
)

// layerWithMCIDs builds a minimal layer whose n-th cluster carries the
// n-th of mcIDs.
func layerWithMCIDs(mcIDs ...int) *t2layer.Layer {
	raw := make([]event.RawCluster, len(mcIDs))
	for i, id := range mcIDs {
		raw[i] = event.RawCluster{ClusterID: i, X: float64(i + 1), Y: 0, Z: 0, MCID: id}
	}
	return t2layer.BuildLayer(raw, 1.0, 0.147)
}

func TestStageUnanimousRoadIsNotFake(t *testing.T) {
	var layers [tuning.LayersNum]*t2layer.Layer
	for l := range layers {
		layers[l] = layerWithMCIDs(7)
	}

	var cells [tuning.CellsPerRoad][]t6cell.Cell
	for l := range cells {
		cells[l] = []t6cell.Cell{{FirstClusterIndex: 0, SecondClusterIndex: 0, ThirdClusterIndex: 0}}
	}

	roads := []t7road.Road{{CellIndices: [tuning.CellsPerRoad]int{0, 0, 0, 0, 0}}}

	Stage(roads, cells, layers)

	if roads[0].IsFake {
		t.Error("unanimous MC id road should not be fake")
	}
	if roads[0].MCLabel != 7 {
		t.Errorf("MCLabel = %d, want 7", roads[0].MCLabel)
	}
}

func TestStageDisagreeingThirdClusterMarksFake(t *testing.T) {
	// Layers carry distinct MC ids per layer index, so every cell's third
	// cluster disagrees with the running candidate.
	var layers [tuning.LayersNum]*t2layer.Layer
	for l := range layers {
		layers[l] = layerWithMCIDs(l + 1)
	}

	var cells [tuning.CellsPerRoad][]t6cell.Cell
	for l := range cells {
		cells[l] = []t6cell.Cell{{FirstClusterIndex: 0, SecondClusterIndex: 0, ThirdClusterIndex: 0}}
	}

	roads := []t7road.Road{{CellIndices: [tuning.CellsPerRoad]int{0, 0, 0, 0, 0}}}

	Stage(roads, cells, layers)

	if !roads[0].IsFake {
		t.Error("disagreeing MC ids across cells should mark the road fake")
	}
}

func TestStagePartialRoadUsesFirstPresentCell(t *testing.T) {
	var layers [tuning.LayersNum]*t2layer.Layer
	for l := range layers {
		layers[l] = layerWithMCIDs(3)
	}

	var cells [tuning.CellsPerRoad][]t6cell.Cell
	for l := range cells {
		cells[l] = []t6cell.Cell{{FirstClusterIndex: 0, SecondClusterIndex: 0, ThirdClusterIndex: 0}}
	}

	// Only layers 2,3,4 present — layer 2 is the road's "first" cell.
	road := t7road.Road{CellIndices: [tuning.CellsPerRoad]int{tuning.Unused, tuning.Unused, 0, 0, 0}}
	roads := []t7road.Road{road}

	Stage(roads, cells, layers)

	if roads[0].IsFake {
		t.Error("expected unanimous partial road to not be fake")
	}
	if roads[0].MCLabel != 3 {
		t.Errorf("MCLabel = %d, want 3", roads[0].MCLabel)
	}
}

func TestStageEmptyRoadIsFake(t *testing.T) {
	var layers [tuning.LayersNum]*t2layer.Layer
	var cells [tuning.CellsPerRoad][]t6cell.Cell
	roads := []t7road.Road{t7road.NewRoad()}

	Stage(roads, cells, layers)

	if !roads[0].IsFake {
		t.Error("an entirely empty road must be fake")
	}
	if roads[0].MCLabel != tuning.Unused {
		t.Errorf("MCLabel = %d, want tuning.Unused", roads[0].MCLabel)
	}
}

func TestStageDeterministic(t *testing.T) {
	var layers [tuning.LayersNum]*t2layer.Layer
	for l := range layers {
		layers[l] = layerWithMCIDs(l % 2)
	}
	var cells [tuning.CellsPerRoad][]t6cell.Cell
	for l := range cells {
		cells[l] = []t6cell.Cell{{FirstClusterIndex: 0, SecondClusterIndex: 0, ThirdClusterIndex: 0}}
	}

	roadA := []t7road.Road{{CellIndices: [tuning.CellsPerRoad]int{0, 0, 0, 0, 0}}}
	roadB := []t7road.Road{{CellIndices: [tuning.CellsPerRoad]int{0, 0, 0, 0, 0}}}

	Stage(roadA, cells, layers)
	Stage(roadB, cells, layers)

	if diff := cmp.Diff(roadA, roadB); diff != "" {
		t.Fatalf("labelling must be deterministic (-a +b):\n%s", diff)
	}
}
