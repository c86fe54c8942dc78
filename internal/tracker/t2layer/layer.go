package t2layer

import (
	"math"
	"sort"

	"github.com/catrack/catracker/internal/tracker/event"
	"github.com/catrack/catracker/internal/tracker/t1geom"
)

// Cluster is an immutable record of one hit, enriched with the fields
// derived at layer-build time: r, phi, and the index-table bin it
// belongs to.
type Cluster struct {
	ClusterID          int
	X, Y, Z            float64
	Alpha              float64
	MCID               int
	R                  float64 // sqrt(x^2+y^2)
	Phi                float64 // atan2(y,x) + pi, in [0, 2*pi)
	IndexTableBinIndex int
}

// Layer is the ordered array of Clusters for one of the detector's
// concentric cylinders, sorted by (phiBin, zBin) lexicographically
// (i.e. by IndexTableBinIndex) as the index-table invariant requires.
type Layer struct {
	Radius      float64
	ZHalfExtent float64
	Clusters    []Cluster
	MinZ, MaxZ  float64
}

// BuildLayer ingests raw cluster records for one layer, derives r, phi
// and bin index for each, and stably sorts the result by bin index.
// Sorting here is a prerequisite for the index-table invariant (spec
// §4.2): a later stage cannot assume sortedness without this pass.
func BuildLayer(raw []event.RawCluster, radius, zHalfExtent float64) *Layer {
	layer := &Layer{
		Radius:      radius,
		ZHalfExtent: zHalfExtent,
		Clusters:    make([]Cluster, len(raw)),
		MinZ:        math.MaxFloat64,
		MaxZ:        -math.MaxFloat64,
	}
	if len(raw) == 0 {
		layer.MinZ, layer.MaxZ = 0, 0
		return layer
	}

	invZ := t1geom.InverseZBinSize(zHalfExtent)
	for i, rc := range raw {
		r := math.Sqrt(rc.X*rc.X + rc.Y*rc.Y)
		if r == 0 {
			t1geom.PanicInvariant("t2layer: cluster %d has r = 0", rc.ClusterID)
		}
		phi := t1geom.PhiNormalized(math.Atan2(rc.Y, rc.X) + math.Pi)
		zb := t1geom.ZBinIndex(zHalfExtent, invZ, rc.Z)
		pb := t1geom.PhiBinIndex(phi)
		bin := t1geom.BinIndex(zb, pb)

		layer.Clusters[i] = Cluster{
			ClusterID:          rc.ClusterID,
			X:                  rc.X,
			Y:                  rc.Y,
			Z:                  rc.Z,
			Alpha:              rc.Alpha,
			MCID:               rc.MCID,
			R:                  r,
			Phi:                phi,
			IndexTableBinIndex: bin,
		}
		if rc.Z < layer.MinZ {
			layer.MinZ = rc.Z
		}
		if rc.Z > layer.MaxZ {
			layer.MaxZ = rc.Z
		}
	}

	sort.SliceStable(layer.Clusters, func(i, j int) bool {
		return layer.Clusters[i].IndexTableBinIndex < layer.Clusters[j].IndexTableBinIndex
	})

	return layer
}

// Len returns the number of clusters on the layer.
func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Clusters)
}
