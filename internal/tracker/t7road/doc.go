// Package t7road owns Layer 7 (Neighbours & Roads) of the tracker: it
// links adjacent-layer cells into a CA graph, assigns each cell a
// level (the length of its longest compatible predecessor chain), and
// extracts roads by descending-level tree traversal.
//
// Dependency rule: t7road may depend on t1geom, t6cell, and tuning,
// never on t8label.
package t7road
