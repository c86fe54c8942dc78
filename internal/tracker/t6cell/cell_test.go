package t6cell

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catrack/catracker/internal/tracker/event"
	"github.com/catrack/catracker/internal/tracker/t2layer"
	"github.com/catrack/catracker/internal/tracker/t5tracklet"
	"github.com/catrack/catracker/internal/tracker/tuning"
)

// circleCluster builds a t2layer.Cluster whose (x, y, z) lie exactly on
// the unit circle centred at (1, 0) — which passes through the origin
// — so the fit under test has a known radius (1) and a known DCA (0).
func circleCluster(id int, x, y, z float64) t2layer.Cluster {
	r := math.Hypot(x, y)
	return t2layer.Cluster{
		ClusterID: id,
		X:         x,
		Y:         y,
		Z:         z,
		R:         r,
		Phi:       math.Atan2(y, x),
	}
}

func TestFitPlaneAndCircleRecoversKnownRadius(t *testing.T) {
	a := circleCluster(0, 0.0112289221, 0.1494381325, 0.0224789122)
	b := circleCluster(1, 0.0446635109, 0.2955202067, 0.0448314397)
	c := circleCluster(2, 0.0995528976, 0.4349655341, 0.0669319086)

	n, curvature, dca, ok := fitPlaneAndCircle(&a, &b, &c, event.Vertex{})
	require.True(t, ok, "expected a valid (non-degenerate) fit")

	normMag := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	assert.InDelta(t, 1.0, normMag, 1e-6, "plane normal should be unit length")

	radius := 1 / curvature
	assert.InDelta(t, 1.0, radius, 0.05, "recovered radius should be close to the generating circle's radius")
	assert.InDelta(t, 0, dca, 0.05, "DCA should be near zero for a circle through the origin")
}

func TestFitPlaneAndCircleDegenerateDuplicatePoints(t *testing.T) {
	a := circleCluster(0, 0.5, 0.5, 0.1)
	b := circleCluster(1, 0.5, 0.5, 0.1)
	c := circleCluster(2, 1.0, 0.2, 0.3)

	_, _, _, ok := fitPlaneAndCircle(&a, &b, &c, event.Vertex{})
	assert.False(t, ok, "duplicate lifted points must be rejected as degenerate")
}

func TestStageNoTrackletsYieldsNoCells(t *testing.T) {
	var layers [tuning.LayersNum]*t2layer.Layer
	for l := range layers {
		layers[l] = t2layer.BuildLayer(nil, 1.0, 0.147)
	}
	var tracklets [tuning.TrackletsPerRoad][]t5tracklet.Tracklet
	var lut [tuning.TrackletsPerRoad - 1][]int
	for l := range lut {
		lut[l] = []int{}
	}

	cells, cellsLUT := Stage(layers, tracklets, lut, event.Vertex{}, tuning.MustLoadDefaultConfig())

	for l := 0; l < tuning.CellsPerRoad; l++ {
		assert.Empty(t, cells[l], "layer %d should have no cells with no tracklets", l)
	}
	for l := 0; l < tuning.CellsPerRoad-1; l++ {
		assert.Len(t, cellsLUT[l], 0)
	}
}
