package t1geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/catrack/catracker/internal/tracker/tuning"
)

// TwoPi is 2*pi, used throughout the bin-wrap arithmetic.
const TwoPi = 2 * math.Pi

// PhiNormalized wraps an angle into [0, 2*pi).
func PhiNormalized(x float64) float64 {
	for x < 0 {
		x += TwoPi
	}
	for x >= TwoPi {
		x -= TwoPi
	}
	return x
}

// Cross returns the 3-D cross product of a and b.
func Cross(a, b r3.Vec) r3.Vec {
	return r3.Cross(a, b)
}

// Norm3 returns the Euclidean norm of v.
func Norm3(v r3.Vec) float64 {
	return r3.Norm(v)
}

// IsNegligible reports whether the magnitude of x is strictly below the
// numerical floor below which a divisor must be treated as zero rather
// than fed to a division (spec §7: "any divisor magnitude < FloatMinThreshold
// is treated as zero and triggers the skip path, never a divide-by-zero").
func IsNegligible(x float64) bool {
	return math.Abs(x) < tuning.FloatMinThreshold
}

// PanicInvariant reports a structural, assertion-level failure — the
// kind spec §7 calls a "genuine failure" and says should surface as an
// abrupt abort with context, never a recoverable path. Use only for
// caller-bug conditions (malformed cluster, inconsistent layer count,
// mismatched table length), never for the algorithmic no-ops the spec
// treats as skips.
func PanicInvariant(msg string, args ...any) {
	panic(fmt.Sprintf(msg, args...))
}

// DeltaPhi returns the smaller of |a-b| and |a-b| wrapped by 2*pi — the
// "or wrap variant" gate spec §4.5/§4.6 require at every phi comparison.
func DeltaPhi(a, b float64) float64 {
	d := math.Abs(a - b)
	if wrapped := math.Abs(d - TwoPi); wrapped < d {
		return wrapped
	}
	return d
}
