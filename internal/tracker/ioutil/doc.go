// Package ioutil owns the ASCII event-file and MC-label-file readers
// that sit outside the tracker core (spec §1, §6): they turn flat text
// records into the event.Event / event.MCLookup values the core
// consumes and never reach back into the tracking stages themselves.
//
// Event file format, one event per block:
//
//	EVENT <id> <numVertices>
//	<vx> <vy> <vz>            (repeated numVertices times)
//	<clusterId> <x> <y> <z> <alpha> <mcId> <layerIndex>   (one per cluster, any order)
//	ENDEVENT
//
// Label file format, one event per block:
//
//	EVENT <id> <numLabels>
//	<mcId> <pt> <phi> <eta> <pdgCode> <nClusters>   (repeated numLabels times)
//	ENDEVENT
//
// layerIndex is zero-based in [0, tuning.LayersNum).
package ioutil
