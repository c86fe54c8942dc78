// Package t3index owns Layer 3 of the tracker: the flat (z,phi) bin
// index over a single layer's sorted clusters, and the rectangle
// queries later stages use to find candidate clusters without scanning
// a whole layer.
//
// Dependency rule: t3index may depend on t1geom, tuning, and t2layer,
// never on t4context or later stages.
package t3index
