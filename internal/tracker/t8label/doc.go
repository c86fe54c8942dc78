// Package t8label owns Layer 8 (Labelling) of the tracker: it assigns
// each extracted road a Monte-Carlo label by majority vote over the
// MC IDs of the clusters the road's cells span, and flags the road as
// fake when any of those MC IDs differs from the running candidate.
//
// Dependency rule: t8label may depend on t1geom, t2layer, t6cell,
// t7road, event, and tuning, never on the driver package.
package t8label
