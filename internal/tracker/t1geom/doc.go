// Package t1geom owns the geometry & math primitives used by every later
// stage of the cellular-automaton tracker: phi normalization, the
// lifted-point cross product behind the planar fit, and the numerical
// floor below which a divisor is treated as zero.
//
// Dependency rule: t1geom depends only on tuning within this module.
// Every other tN... package may depend on it.
package t1geom
