// Package t4context owns Layer 4 (Primary-Vertex Context) of the
// tracker: the per-vertex working set of layer/table views and the
// stage-output scratch (tracklets, cells, neighbours, roads) that the
// driver threads through C5-C8 for a single vertex.
//
// Dependency rule: t4context may depend on every stage package
// (t2layer, t3index, t5tracklet, t6cell, t7road, t8label, event,
// tuning) since it is the per-vertex aggregator the driver uses; no
// stage package may depend back on t4context.
package t4context
