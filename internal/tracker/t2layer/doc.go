// Package t2layer owns Layer 2 of the tracker: per-layer cluster
// storage. It derives r, phi, and index-table bin index from raw event
// clusters and stably sorts each layer's clusters by bin index, which
// is the precondition the index table (t3index) relies on.
//
// Dependency rule: t2layer may depend on t1geom and tuning, never on
// t3index or later stages.
package t2layer
