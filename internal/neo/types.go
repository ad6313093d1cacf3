// Package neo fetches near-Earth object data, scores it for risk and caches the results.
package neo

import (
	"encoding/json"
	"math"
	"strconv"
)

// Level buckets a risk score for display.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Object is one near-Earth object in the NeoWs wire shape, plus the derived
// RiskScore and RiskLevel. The derived fields are set by Client on every
// fetch and are not meaningful on objects straight from a Source.
type Object struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Hazardous         bool              `json:"is_potentially_hazardous_asteroid"`
	AbsoluteMagnitude float64           `json:"absolute_magnitude_h"`
	EstimatedDiameter EstimatedDiameter `json:"estimated_diameter"`
	CloseApproaches   []CloseApproach   `json:"close_approach_data"`
	OrbitalData       json.RawMessage   `json:"orbital_data,omitempty"`

	RiskScore int   `json:"risk_score"`
	RiskLevel Level `json:"risk_level"`
}

// FirstApproach returns the first close-approach record, if any.
func (o *Object) FirstApproach() (CloseApproach, bool) {
	if len(o.CloseApproaches) == 0 {
		return CloseApproach{}, false
	}
	return o.CloseApproaches[0], true
}

type EstimatedDiameter struct {
	Kilometers DiameterRange `json:"kilometers"`
}

type DiameterRange struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

// Average is the mean of the min and max estimates.
func (d DiameterRange) Average() float64 {
	return (d.Min + d.Max) / 2
}

// CloseApproach is one pass of the object by a body. The feed encodes the
// measurements as decimal strings.
type CloseApproach struct {
	Date             string       `json:"close_approach_date"`
	DateFull         string       `json:"close_approach_date_full"`
	EpochMillis      int64        `json:"epoch_date_close_approach"`
	RelativeVelocity Velocity     `json:"relative_velocity"`
	MissDistance     MissDistance `json:"miss_distance"`
	OrbitingBody     string       `json:"orbiting_body"`
}

type Velocity struct {
	KilometersPerSecond string `json:"kilometers_per_second"`
	KilometersPerHour   string `json:"kilometers_per_hour"`
	MilesPerHour        string `json:"miles_per_hour"`
}

func (v Velocity) KPH() (float64, bool) { return parseNumber(v.KilometersPerHour) }
func (v Velocity) MPH() (float64, bool) { return parseNumber(v.MilesPerHour) }

type MissDistance struct {
	Astronomical string `json:"astronomical"`
	Lunar        string `json:"lunar"`
	Kilometers   string `json:"kilometers"`
	Miles        string `json:"miles"`
}

func (m MissDistance) LunarDistances() (float64, bool) { return parseNumber(m.Lunar) }
func (m MissDistance) KM() (float64, bool)             { return parseNumber(m.Kilometers) }
func (m MissDistance) Mi() (float64, bool)             { return parseNumber(m.Miles) }

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
