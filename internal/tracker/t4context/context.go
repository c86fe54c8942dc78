package t4context

import (
	"github.com/catrack/catracker/internal/tracker/event"
	"github.com/catrack/catracker/internal/tracker/t2layer"
	"github.com/catrack/catracker/internal/tracker/t3index"
	"github.com/catrack/catracker/internal/tracker/t5tracklet"
	"github.com/catrack/catracker/internal/tracker/t6cell"
	"github.com/catrack/catracker/internal/tracker/t7road"
	"github.com/catrack/catracker/internal/tracker/t8label"
	"github.com/catrack/catracker/internal/tracker/tuning"
)

// Context is a single primary vertex's working set: read-only views of
// the event's layers and index tables, and the per-stage scratch that
// C5 through C8 populate in order. A Context is owned exclusively by
// one Run call; nothing about it is shared across vertices.
type Context struct {
	Vertex event.Vertex

	Layers [tuning.LayersNum]*t2layer.Layer
	Tables [tuning.LayersNum]*t3index.Table

	Tracklets    [tuning.TrackletsPerRoad][]t5tracklet.Tracklet
	TrackletsLUT [tuning.TrackletsPerRoad - 1][]int

	Cells    [tuning.CellsPerRoad][]t6cell.Cell
	CellsLUT [tuning.CellsPerRoad - 1][]int

	CellsNeighbours [tuning.CellsPerRoad - 1][][]int

	Roads []t7road.Road
}

// New builds a Context for vertex over layers/tables shared read-only
// across every vertex of the event.
func New(vertex event.Vertex, layers [tuning.LayersNum]*t2layer.Layer, tables [tuning.LayersNum]*t3index.Table) *Context {
	return &Context{
		Vertex: vertex,
		Layers: layers,
		Tables: tables,
	}
}

// Run executes C5, C6, C7 (neighbours then roads), and C8 in fixed
// order over this Context, per spec §4.9. It always runs to
// completion; there is no cancellation semantic.
func (c *Context) Run(cfg *tuning.TuningConfig) {
	c.Tracklets, c.TrackletsLUT = t5tracklet.Stage(c.Layers, c.Tables, c.Vertex, cfg)
	c.Cells, c.CellsLUT = t6cell.Stage(c.Layers, c.Tracklets, c.TrackletsLUT, c.Vertex, cfg)
	c.CellsNeighbours = t7road.LinkNeighbours(c.Cells, c.CellsLUT, cfg)
	c.Roads = t7road.ExtractRoads(c.Cells, c.CellsNeighbours, cfg.GetCellsMinLevel())
	t8label.Stage(c.Roads, c.Cells, c.Layers)
}
