package neo

import (
	"cmp"
	"math"
	"slices"
)

const (
	hazardPoints    = 40.0
	maxSizePoints   = 30.0
	maxProximity    = 30.0
	proximityCutoff = 50.0 // lunar distances at which the proximity term reaches zero

	highThreshold   = 65
	mediumThreshold = 35
)

// Score computes the ranking heuristic for o:
//
//	40 if hazardous
//	+ min(30, avgDiameterKm*30)
//	+ max(0, 30 - lunarMissDistance/50*30)   (first approach only)
//
// rounded to the nearest integer. An object without a parsable first
// approach gets no proximity points. The result is always within [0, 100].
// It ranks objects for display; it is not a physical impact model.
func Score(o *Object) (int, Level) {
	score := 0.0
	if o.Hazardous {
		score += hazardPoints
	}

	// The float64 conversions forbid fused multiply-add so results match
	// across architectures (7.5 must stay 7.5, not 7.4999...).
	score += clamp(float64(o.EstimatedDiameter.Kilometers.Average()*maxSizePoints), 0, maxSizePoints)

	if ca, ok := o.FirstApproach(); ok {
		// Negative or non-finite distances are treated as unparsable.
		if lunar, ok := ca.MissDistance.LunarDistances(); ok && lunar >= 0 && !math.IsInf(lunar, 1) {
			score += math.Max(0, maxProximity-float64(lunar/proximityCutoff*maxProximity))
		}
	}

	rounded := int(clamp(math.Round(score), 0, 100))
	return rounded, LevelFor(rounded)
}

// clamp bounds v to [lo, hi]. NaN becomes lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	return math.Min(v, hi)
}

// LevelFor maps a score to its level.
func LevelFor(score int) Level {
	switch {
	case score >= highThreshold:
		return LevelHigh
	case score >= mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// withRisk returns a copy of o with the derived fields filled in.
func withRisk(o Object) Object {
	o.RiskScore, o.RiskLevel = Score(&o)
	return o
}

// rank scores every object and orders them by descending score. Ties keep
// their input order.
func rank(objs []Object) []Object {
	out := make([]Object, len(objs))
	for i := range objs {
		out[i] = withRisk(objs[i])
	}
	slices.SortStableFunc(out, func(a, b Object) int {
		return cmp.Compare(b.RiskScore, a.RiskScore)
	})
	return out
}
