package tracker

import (
	"math"
	"testing"

	"github.com/catrack/catracker/internal/tracker/event"
	"github.com/catrack/catracker/internal/tracker/tuning"
)

func buildStraightTrackEvent(cfg *tuning.TuningConfig, vertex event.Vertex, tanLambda, phi float64, mcID int) event.Event {
	radii := cfg.GetLayerRadii()
	ev := event.Event{ID: 0, Vertices: []event.Vertex{vertex}}
	for l := 0; l < tuning.LayersNum; l++ {
		r := radii[l]
		z := vertex.Z + tanLambda*r
		x := r * math.Cos(phi)
		y := r * math.Sin(phi)
		ev.Clusters[l] = []event.RawCluster{{ClusterID: l, X: x, Y: y, Z: z, MCID: mcID}}
	}
	return ev
}

func TestRunEventSingleVertex(t *testing.T) {
	cfg := tuning.MustLoadDefaultConfig()
	ev := buildStraightTrackEvent(cfg, event.Vertex{}, 0.2, 1.0, 9)

	drv := NewDriver(cfg)
	roads := drv.RunEvent(&ev)

	if len(roads) != 1 {
		t.Fatalf("got %d vertex result sets, want 1", len(roads))
	}
}

func TestRunEventMultipleVerticesPreservesOrder(t *testing.T) {
	cfg := tuning.MustLoadDefaultConfig()
	ev := buildStraightTrackEvent(cfg, event.Vertex{}, 0.2, 1.0, 9)
	ev.Vertices = []event.Vertex{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0.01}, {X: 0, Y: 0, Z: -0.01}}

	drv := NewDriver(cfg)
	drv.Concurrency = 4

	roads := drv.RunEvent(&ev)
	if len(roads) != 3 {
		t.Fatalf("got %d vertex result sets, want 3", len(roads))
	}
}

func TestRunEventConcurrentMatchesSequential(t *testing.T) {
	cfg := tuning.MustLoadDefaultConfig()
	ev := buildStraightTrackEvent(cfg, event.Vertex{}, 0.2, 1.0, 9)
	ev.Vertices = []event.Vertex{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0.01}, {X: 0, Y: 0, Z: -0.02}}

	sequential := NewDriver(cfg)
	sequential.Concurrency = 1
	seqRoads := sequential.RunEvent(&ev)

	parallel := NewDriver(cfg)
	parallel.Concurrency = 4
	parRoads := parallel.RunEvent(&ev)

	if len(seqRoads) != len(parRoads) {
		t.Fatalf("sequential/parallel vertex counts differ: %d vs %d", len(seqRoads), len(parRoads))
	}
	for vi := range seqRoads {
		if len(seqRoads[vi]) != len(parRoads[vi]) {
			t.Errorf("vertex %d: sequential %d roads, parallel %d roads", vi, len(seqRoads[vi]), len(parRoads[vi]))
		}
	}
}
