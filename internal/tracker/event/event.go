package event

import "github.com/catrack/catracker/internal/tracker/tuning"

// RawCluster is one hit record as it arrives from the event file, before
// derived fields (r, phi, bin index) are computed.
type RawCluster struct {
	ClusterID int     // Stable, event-wide.
	X, Y, Z   float64 // Detector frame (metres).
	Alpha     float64 // Sensor rotation angle.
	MCID      int     // Monte-Carlo truth id.
}

// Vertex is a primary-vertex candidate: the presumed trajectory origin
// used for gating.
type Vertex struct {
	X, Y, Z float64
}

// Event is one parsed event: an id, its primary-vertex candidates, and
// its clusters bucketed by layer (zero-based, [0, tuning.LayersNum)).
type Event struct {
	ID         int
	Vertices   []Vertex
	Clusters   [tuning.LayersNum][]RawCluster
}

// Label carries Monte-Carlo truth for one simulated particle.
type Label struct {
	MCID       int
	Pt         float64
	Phi        float64
	Eta        float64
	PDGCode    int
	NClusters  int
}

// MCLookup maps a Monte-Carlo id to its truth Label for one event.
type MCLookup map[int]Label
