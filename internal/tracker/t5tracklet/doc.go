// Package t5tracklet owns Layer 5 (Tracklets) of the tracker: directed
// segments between clusters on adjacent layers, formed by extrapolating
// each inner cluster toward the outer layer through the primary vertex
// and gating on the result.
//
// Dependency rule: t5tracklet may depend on t1geom, t2layer, t3index,
// event, and tuning, never on t6cell or later stages.
package t5tracklet
