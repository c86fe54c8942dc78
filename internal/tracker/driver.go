// Package tracker owns Layer 9 (Tracker Driver) of the tracker: for
// each primary vertex of an event it builds a Context, runs the C5-C8
// stages in order, and collects the resulting roads into the event's
// output vector, per spec §4.9.
package tracker

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/catrack/catracker/internal/tracker/event"
	"github.com/catrack/catracker/internal/tracker/t2layer"
	"github.com/catrack/catracker/internal/tracker/t3index"
	"github.com/catrack/catracker/internal/tracker/t4context"
	"github.com/catrack/catracker/internal/tracker/t7road"
	"github.com/catrack/catracker/internal/tracker/tuning"
)

// Driver runs the full pipeline over an Event's primary vertices.
type Driver struct {
	Config *tuning.TuningConfig

	// Concurrency bounds the number of vertex workers run in parallel.
	// Values <= 1 run every vertex on the calling goroutine.
	Concurrency int
}

// NewDriver returns a Driver using cfg, single-threaded by default.
func NewDriver(cfg *tuning.TuningConfig) *Driver {
	return &Driver{Config: cfg, Concurrency: 1}
}

// RunEvent builds a per-vertex Context for each of ev's primary
// vertices, runs the pipeline on it, and returns the resulting roads
// indexed by vertex position (matching the input order regardless of
// completion order). Layers and index tables are built once and shared
// read-only across all vertex workers.
func (d *Driver) RunEvent(ev *event.Event) [][]t7road.Road {
	runID := uuid.New()
	log.Printf("tracker: run %s event %d: %d vertices", runID, ev.ID, len(ev.Vertices))

	var layers [tuning.LayersNum]*t2layer.Layer
	var tables [tuning.LayersNum]*t3index.Table

	for l := 0; l < tuning.LayersNum; l++ {
		layer := t2layer.BuildLayer(ev.Clusters[l], d.Config.GetLayerRadii()[l], d.Config.GetLayerZHalfExtent()[l])
		layers[l] = layer
		tables[l] = t3index.Build(layer)
	}

	results := make([][]t7road.Road, len(ev.Vertices))

	if d.Concurrency <= 1 {
		for vi, vertex := range ev.Vertices {
			results[vi] = d.runVertex(vertex, layers, tables)
		}
		return results
	}

	jobs := make(chan int, len(ev.Vertices))
	for vi := range ev.Vertices {
		jobs <- vi
	}
	close(jobs)

	var wg sync.WaitGroup
	workers := d.Concurrency
	if workers > len(ev.Vertices) {
		workers = len(ev.Vertices)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for vi := range jobs {
				results[vi] = d.runVertex(ev.Vertices[vi], layers, tables)
			}
		}()
	}
	wg.Wait()

	return results
}

func (d *Driver) runVertex(vertex event.Vertex, layers [tuning.LayersNum]*t2layer.Layer, tables [tuning.LayersNum]*t3index.Table) []t7road.Road {
	ctx := t4context.New(vertex, layers, tables)
	ctx.Run(d.Config)
	return ctx.Roads
}
