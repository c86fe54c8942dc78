package t3index

import (
	"github.com/catrack/catracker/internal/tracker/t1geom"
	"github.com/catrack/catracker/internal/tracker/t2layer"
	"github.com/catrack/catracker/internal/tracker/tuning"
)

// Table is the per-layer flat index: Entries has length ZBins*PhiBins+1
// and Entries[b] is the offset of the first cluster whose bin index is
// >= b. It is monotone non-decreasing and Entries[len-1] equals the
// layer's cluster count.
type Table struct {
	Entries     []int
	InvZBinSize float64
	ZHalfExtent float64
}

// Build constructs the index table for a layer whose clusters are
// already sorted by bin index (t2layer.BuildLayer's postcondition).
func Build(layer *t2layer.Layer) *Table {
	total := tuning.ZBins * tuning.PhiBins
	t := &Table{
		Entries:     make([]int, total+1),
		InvZBinSize: t1geom.InverseZBinSize(layer.ZHalfExtent),
		ZHalfExtent: layer.ZHalfExtent,
	}

	prevBin := 0
	for idx, c := range layer.Clusters {
		for b := prevBin + 1; b <= c.IndexTableBinIndex; b++ {
			t.Entries[b] = idx
		}
		if c.IndexTableBinIndex > prevBin {
			prevBin = c.IndexTableBinIndex
		}
	}
	for b := prevBin + 1; b <= total; b++ {
		t.Entries[b] = len(layer.Clusters)
	}

	return t
}

// SelectBins returns the bin indices whose [zMin,zMax] x [phiMin,phiMax]
// intersection contains at least one cluster, per spec §4.3: empty when
// the z range misses the layer entirely or is inverted; phi wraps.
func (t *Table) SelectBins(zMin, zMax, phiMin, phiMax float64) []int {
	if zMax < -t.ZHalfExtent || zMin > t.ZHalfExtent || zMin > zMax {
		return nil
	}

	zbMin := t1geom.ZBinIndex(t.ZHalfExtent, t.InvZBinSize, zMin)
	if zbMin < 0 {
		zbMin = 0
	}
	zbMax := t1geom.ZBinIndex(t.ZHalfExtent, t.InvZBinSize, zMax)
	if zbMax > tuning.ZBins-1 {
		zbMax = tuning.ZBins - 1
	}

	pbMin := t1geom.PhiBinIndex(t1geom.PhiNormalized(phiMin))
	pbMax := t1geom.PhiBinIndex(t1geom.PhiNormalized(phiMax))
	pbCount := pbMax - pbMin + 1
	if pbCount < 0 {
		pbCount += tuning.PhiBins
	}

	var bins []int
	pb := pbMin
	for i := 0; i < pbCount; i++ {
		for zb := zbMin; zb <= zbMax; zb++ {
			b := t1geom.BinIndex(zb, pb)
			if t.Entries[b] != t.Entries[b+1] {
				bins = append(bins, b)
			}
		}
		pb++
		if pb >= tuning.PhiBins {
			pb = 0
		}
	}
	return bins
}

// SelectClusters is the alternative query form that returns cluster
// indices directly rather than bin indices.
func (t *Table) SelectClusters(zMin, zMax, phiMin, phiMax float64) []int {
	bins := t.SelectBins(zMin, zMax, phiMin, phiMax)
	if len(bins) == 0 {
		return nil
	}
	var clusters []int
	for _, b := range bins {
		for idx := t.Entries[b]; idx < t.Entries[b+1]; idx++ {
			clusters = append(clusters, idx)
		}
	}
	return clusters
}

// RectWindow is the (zbMin,pbMin,zbMax,pbMax) bin-space window spec §4.5
// step 2 names "getBinsRect": the search rectangle on an outer layer,
// sized by detector resolution constants, that a tracklet/cell gate
// scans. A zero-value RectWindow (all fields 0) signals "skip"
// only when returned alongside ok=false from GetBinsRect.
type RectWindow struct {
	ZBinMin, PhiBinMin int
	ZBinMax, PhiBinMax int
}

// GetBinsRect computes the bin-space search window on this (outer
// layer's) table for an extrapolated (z, phi) point plus symmetric
// tolerances, returning ok=false when the z range misses the layer.
func (t *Table) GetBinsRect(z, phi, deltaZ, deltaPhi float64) (RectWindow, bool) {
	zMin, zMax := z-deltaZ, z+deltaZ
	if zMax < -t.ZHalfExtent || zMin > t.ZHalfExtent || zMin > zMax {
		return RectWindow{}, false
	}
	zbMin := t1geom.ZBinIndex(t.ZHalfExtent, t.InvZBinSize, zMin)
	zbMax := t1geom.ZBinIndex(t.ZHalfExtent, t.InvZBinSize, zMax)
	pbMin := t1geom.PhiBinIndex(t1geom.PhiNormalized(phi - deltaPhi))
	pbMax := t1geom.PhiBinIndex(t1geom.PhiNormalized(phi + deltaPhi))
	return RectWindow{ZBinMin: zbMin, PhiBinMin: pbMin, ZBinMax: zbMax, PhiBinMax: pbMax}, true
}
