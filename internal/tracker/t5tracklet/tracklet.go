package t5tracklet

import (
	"math"

	"github.com/catrack/catracker/internal/tracker/event"
	"github.com/catrack/catracker/internal/tracker/t1geom"
	"github.com/catrack/catracker/internal/tracker/t2layer"
	"github.com/catrack/catracker/internal/tracker/t3index"
	"github.com/catrack/catracker/internal/tracker/tuning"
)

// Tracklet is a directed segment from an inner cluster (L, FirstClusterIndex)
// to an outer cluster (L+1, SecondClusterIndex).
type Tracklet struct {
	FirstClusterIndex  int // index into layer L's cluster array
	SecondClusterIndex int // index into layer L+1's cluster array
	TanLambda          float64
	Phi                float64 // azimuthal direction of the segment itself
}

// Stage runs tracklet formation (spec §4.5) across all TrackletsPerRoad
// adjacent layer pairs. layers and tables are indexed by the full
// LayersNum range; vertex is the primary vertex this context gates on.
//
// Returns, per inner layer L, the ordered tracklets formed and (for
// L>=1) the lookup table mapping an L-layer cluster index to the first
// tracklet leaving it, or tuning.Unused if none.
func Stage(layers [tuning.LayersNum]*t2layer.Layer, tables [tuning.LayersNum]*t3index.Table, vertex event.Vertex, cfg *tuning.TuningConfig) (
	tracklets [tuning.TrackletsPerRoad][]Tracklet,
	lut [tuning.TrackletsPerRoad - 1][]int,
) {
	maxDeltaZ := cfg.GetTrackletMaxDeltaZ()
	phiCut := cfg.GetPhiCoordinateCut()

	for l := 0; l < tuning.TrackletsPerRoad-1; l++ {
		lut[l] = make([]int, layers[l+1].Len())
		for i := range lut[l] {
			lut[l][i] = tuning.Unused
		}
	}

	for l := 0; l < tuning.TrackletsPerRoad; l++ {
		inner := layers[l]
		outer := layers[l+1]
		outerTable := tables[l+1]
		if inner.Len() == 0 || outer.Len() == 0 {
			continue
		}

		for ci := range inner.Clusters {
			cI := &inner.Clusters[ci]

			tanLambda := (cI.Z - vertex.Z) / cI.R
			zExt := tanLambda*(outer.Radius-cI.R) + cI.Z

			rect, ok := outerTable.GetBinsRect(zExt, cI.Phi, maxDeltaZ[l], phiCut)
			if !ok {
				continue
			}

			phiBinsNum := rect.PhiBinMax - rect.PhiBinMin + 1
			if phiBinsNum < 0 {
				phiBinsNum += tuning.PhiBins
			}

			pb := rect.PhiBinMin
			for n := 0; n < phiBinsNum; n++ {
				firstBinIndex := t1geom.BinIndex(rect.ZBinMin, pb)
				maxBinIndex := firstBinIndex + (rect.ZBinMax - rect.ZBinMin) + 1

				lo := outerTable.Entries[firstBinIndex]
				hi := outerTable.Entries[maxBinIndex]

				for cj := lo; cj < hi; cj++ {
					cJ := &outer.Clusters[cj]

					deltaZ := math.Abs(tanLambda*(cJ.R-cI.R)+cI.Z - cJ.Z)
					deltaPhi := t1geom.DeltaPhi(cI.Phi, cJ.Phi)

					if deltaZ < maxDeltaZ[l] && deltaPhi < phiCut {
						if l >= 1 {
							if lut[l-1][ci] == tuning.Unused {
								lut[l-1][ci] = len(tracklets[l])
							}
						}
						tracklets[l] = append(tracklets[l], Tracklet{
							FirstClusterIndex:  ci,
							SecondClusterIndex: cj,
							TanLambda:          tanLambda,
							Phi:                t1geom.PhiNormalized(math.Atan2(cJ.Y-cI.Y, cJ.X-cI.X)),
						})
					}
				}

				pb++
				if pb >= tuning.PhiBins {
					pb = 0
				}
			}
		}
	}

	return tracklets, lut
}
