package t1geom

import (
	"math"

	"github.com/catrack/catracker/internal/tracker/tuning"
)

// InverseZBinSize returns ZBins / (2*Zmax) for a layer with z half-extent
// Zmax, the scale factor zBin uses to map a z coordinate to a bin row.
func InverseZBinSize(zHalfExtent float64) float64 {
	return float64(tuning.ZBins) / (2 * zHalfExtent)
}

// ZBinIndex returns the clamped z-bin index for z on a layer with the
// given half-extent and precomputed inverse bin size.
func ZBinIndex(zHalfExtent, invZBinSize, z float64) int {
	b := int(math.Floor((z + zHalfExtent) * invZBinSize))
	if b < 0 {
		return 0
	}
	if b >= tuning.ZBins {
		return tuning.ZBins - 1
	}
	return b
}

// PhiBinIndex returns the phi-bin index for a phi already normalized to
// [0, 2*pi).
func PhiBinIndex(phi float64) int {
	b := int(math.Floor(phi * float64(tuning.PhiBins) / TwoPi))
	b %= tuning.PhiBins
	if b < 0 {
		b += tuning.PhiBins
	}
	return b
}

// BinIndex combines a z-bin and phi-bin into the flat index-table bin,
// clamped to the table's overflow-guard slot at ZBins*PhiBins.
func BinIndex(zBin, phiBin int) int {
	b := phiBin*tuning.ZBins + zBin
	max := tuning.ZBins * tuning.PhiBins
	if b > max {
		return max
	}
	return b
}
