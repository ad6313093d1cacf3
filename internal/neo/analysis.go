package neo

import (
	"math"
	"time"
)

const (
	earthRadiusKm   = 6371.0
	atmosphereKm    = 100.0
	moonOrbitKm     = 400000.0
	maxProfileKPH   = 100000.0
	maxProfileDiam  = 2.0
	timelineMaxRows = 20
)

// ImpactProbability buckets the first approach's miss distance into a rough
// likelihood. Objects without a parsable approach are treated as a direct hit
// distance of zero, matching the detail view's behaviour.
func ImpactProbability(o *Object) float64 {
	km := 0.0
	if ca, ok := o.FirstApproach(); ok {
		km, _ = ca.MissDistance.KM()
	}

	switch {
	case km < earthRadiusKm+atmosphereKm:
		return 0.8
	case km < earthRadiusKm*2:
		return 0.15
	case km < moonOrbitKm:
		return 0.01
	default:
		return 0.0001
	}
}

// Profile is the four-axis radar shown on the detail view, each axis in [0, 100].
type Profile struct {
	Velocity  float64 `json:"velocity"`
	Size      float64 `json:"size"`
	Proximity float64 `json:"proximity"`
	Hazard    float64 `json:"hazard"`
}

// RiskProfile computes the radar axes for o.
func RiskProfile(o *Object) Profile {
	p := Profile{
		Size:   math.Min(100, o.EstimatedDiameter.Kilometers.Max/maxProfileDiam*100),
		Hazard: 20,
	}
	if o.Hazardous {
		p.Hazard = 100
	}
	if ca, ok := o.FirstApproach(); ok {
		kph, _ := ca.RelativeVelocity.KPH()
		p.Velocity = math.Min(100, kph/maxProfileKPH*100)
		if lunar, ok := ca.MissDistance.LunarDistances(); ok {
			p.Proximity = 100 - math.Min(100, lunar/proximityCutoff*100)
		}
	}
	return p
}

// NextApproach returns the first approach dated on or after now, or the
// first approach if all are in the past.
func NextApproach(o *Object, now time.Time) (CloseApproach, bool) {
	today := now.UTC().Truncate(24 * time.Hour)
	for _, ca := range o.CloseApproaches {
		d, err := time.Parse(dateLayout, ca.Date)
		if err == nil && !d.Before(today) {
			return ca, true
		}
	}
	return o.FirstApproach()
}

// Timeline returns at most the first 20 approaches, for charting.
func Timeline(o *Object) []CloseApproach {
	if len(o.CloseApproaches) > timelineMaxRows {
		return o.CloseApproaches[:timelineMaxRows]
	}
	return o.CloseApproaches
}

// Summary aggregates a feed for the dashboard header.
type Summary struct {
	Total       int     `json:"total"`
	Hazardous   int     `json:"hazardous"`
	HighRisk    int     `json:"highRisk"`
	AvgVelocity float64 `json:"avgVelocityKph"`
}

// Summarize counts objects and averages the first-approach velocity. Objects
// without an approach count as zero velocity.
func Summarize(objs []Object) Summary {
	var s Summary
	var total float64
	for i := range objs {
		s.Total++
		if objs[i].Hazardous {
			s.Hazardous++
		}
		if objs[i].RiskLevel == LevelHigh {
			s.HighRisk++
		}
		if ca, ok := objs[i].FirstApproach(); ok {
			kph, _ := ca.RelativeVelocity.KPH()
			total += kph
		}
	}
	if s.Total > 0 {
		s.AvgVelocity = total / float64(s.Total)
	}
	return s
}
