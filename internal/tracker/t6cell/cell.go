package t6cell

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/catrack/catracker/internal/tracker/event"
	"github.com/catrack/catracker/internal/tracker/t1geom"
	"github.com/catrack/catracker/internal/tracker/t2layer"
	"github.com/catrack/catracker/internal/tracker/t5tracklet"
	"github.com/catrack/catracker/internal/tracker/tuning"
)

// Cell is a triplet (c0 on L, c1 on L+1, c2 on L+2) with its two
// constituent tracklet indices, the normalized plane normal, and
// curvature. Level is mutated in place by the neighbour stage.
type Cell struct {
	FirstClusterIndex  int // index into layer L's cluster array
	SecondClusterIndex int // index into layer L+1's cluster array
	ThirdClusterIndex  int // index into layer L+2's cluster array

	FirstTrackletIndex  int // index into tracklets[L]
	SecondTrackletIndex int // index into tracklets[L+1]

	N         r3.Vec // normalized plane normal
	Curvature float64

	Level int
}

// degeneracyEpsilon is the minimum acceptable normal magnitude (|n| and
// |n_z|) below which a triplet is treated as collinear/degenerate and
// the candidate cell is skipped, per spec §4.6 step 3.
const degeneracyEpsilon = 1e-20

// Stage runs cell formation (spec §4.6) over every inner layer's
// tracklets, continuing through tracklets[L+1] via trackletsLUT[L] and
// fitting a plane/circle through the three clusters of each accepted
// triplet.
func Stage(
	layers [tuning.LayersNum]*t2layer.Layer,
	tracklets [tuning.TrackletsPerRoad][]t5tracklet.Tracklet,
	trackletsLUT [tuning.TrackletsPerRoad - 1][]int,
	vertex event.Vertex,
	cfg *tuning.TuningConfig,
) (
	cells [tuning.CellsPerRoad][]Cell,
	lut [tuning.CellsPerRoad - 1][]int,
) {
	maxDeltaTanLambda := cfg.GetCellMaxDeltaTanLambda()
	maxDeltaPhi := cfg.GetCellMaxDeltaPhi()
	maxDeltaZ := cfg.GetCellMaxDeltaZ()
	maxDCA := cfg.GetCellMaxDCA()

	for l := 0; l < tuning.CellsPerRoad-1; l++ {
		lut[l] = make([]int, len(tracklets[l+1]))
		for i := range lut[l] {
			lut[l][i] = tuning.Unused
		}
	}

	for l := 0; l < tuning.CellsPerRoad; l++ {
		innerLayer := layers[l]
		middleLayer := layers[l+1]
		outerLayer := layers[l+2]

		for it, t := range tracklets[l] {
			m := t.SecondClusterIndex

			start := trackletsLUT[l][m]
			if start == tuning.Unused {
				continue
			}

			for jt := start; jt < len(tracklets[l+1]) && tracklets[l+1][jt].FirstClusterIndex == m; jt++ {
				tp := tracklets[l+1][jt]
				k := tp.SecondClusterIndex

				deltaTanLambda := math.Abs(t.TanLambda - tp.TanLambda)
				if deltaTanLambda >= maxDeltaTanLambda {
					continue
				}
				deltaPhi := t1geom.DeltaPhi(t.Phi, tp.Phi)
				if deltaPhi >= maxDeltaPhi {
					continue
				}

				i := t.FirstClusterIndex
				cI := &innerLayer.Clusters[i]

				avgTanLambda := 0.5 * (t.TanLambda + tp.TanLambda)
				zExt := -avgTanLambda*cI.R + cI.Z
				if math.Abs(zExt-vertex.Z) >= maxDeltaZ[l] {
					continue
				}

				cM := &middleLayer.Clusters[m]
				cK := &outerLayer.Clusters[k]

				n, curvature, dca, ok := fitPlaneAndCircle(cI, cM, cK, vertex)
				if !ok {
					continue
				}
				if dca >= maxDCA[l] {
					continue
				}

				if l >= 1 {
					if lut[l-1][it] == tuning.Unused {
						lut[l-1][it] = len(cells[l])
					}
				}

				cells[l] = append(cells[l], Cell{
					FirstClusterIndex:   i,
					SecondClusterIndex:  m,
					ThirdClusterIndex:   k,
					FirstTrackletIndex:  it,
					SecondTrackletIndex: jt,
					N:                   n,
					Curvature:           curvature,
					Level:               1,
				})
			}
		}
	}

	return cells, lut
}

// fitPlaneAndCircle implements spec §4.6 step 3: lift A, B, C to
// (x, y, r^2), fit the plane through them, recover the circle radius
// and centre from the plane normal, and return the DCA-to-origin gate
// value. ok is false on a degenerate (collinear, or n_z ~ 0) triplet.
func fitPlaneAndCircle(a, b, c *t2layer.Cluster, vertex event.Vertex) (n r3.Vec, curvature, dca float64, ok bool) {
	lift := func(cl *t2layer.Cluster) r3.Vec {
		return r3.Vec{X: cl.X, Y: cl.Y, Z: cl.R * cl.R}
	}
	A, B, C := lift(a), lift(b), lift(c)

	d1 := r3.Sub(B, A)
	d2 := r3.Sub(C, A)
	raw := t1geom.Cross(d1, d2)

	mag := t1geom.Norm3(raw)
	if mag < degeneracyEpsilon || math.Abs(raw.Z) < degeneracyEpsilon {
		return r3.Vec{}, 0, 0, false
	}

	// Degeneracy cross-check: det([d1; d2; raw]) equals |raw|^2, so it
	// vanishes exactly when the cross product does. It is computed
	// independently as a diagnostic, never substituted for the formula
	// above; only a NaN determinant rejects the triplet here.
	m := mat.NewDense(3, 3, []float64{
		d1.X, d1.Y, d1.Z,
		d2.X, d2.Y, d2.Z,
		raw.X, raw.Y, raw.Z,
	})
	if math.IsNaN(mat.Det(m)) {
		return r3.Vec{}, 0, 0, false
	}

	nHat := r3.Scale(1/mag, raw)

	// Plane-offset formula transcribed verbatim from the source,
	// including the asymmetric grouping of the vertex subtraction on
	// the y term (spec §9: possible bug, not to be "fixed" here).
	d := -nHat.X*(b.X-vertex.X) - (nHat.Y*b.Y - vertex.Y) - nHat.Z*(b.R*b.R)

	if math.Abs(nHat.Z) < degeneracyEpsilon {
		return r3.Vec{}, 0, 0, false
	}

	r2 := (1 - nHat.Z*nHat.Z - 4*d*nHat.Z) / (4 * nHat.Z * nHat.Z)
	if r2 < 0 {
		return r3.Vec{}, 0, 0, false
	}
	radius := math.Sqrt(r2)

	cx := -nHat.X / (2 * nHat.Z)
	cy := -nHat.Y / (2 * nHat.Z)

	dcaVal := math.Abs(radius - math.Sqrt(cx*cx+cy*cy))

	if radius < degeneracyEpsilon {
		return r3.Vec{}, 0, 0, false
	}

	return nHat, 1 / radius, dcaVal, true
}
