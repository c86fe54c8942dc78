// Package t6cell owns Layer 6 (Cells) of the tracker: triplets formed
// from pairs of tracklets sharing a middle cluster, each carrying a
// planar/circular fit (normalized plane normal and curvature) computed
// from the three lifted cluster points.
//
// Dependency rule: t6cell may depend on t1geom, t2layer, t3index,
// t5tracklet, event, and tuning, never on t7road or later stages.
package t6cell
