package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cosmicwatch/cosmicwatch-go/internal/neo"
	"github.com/cosmicwatch/cosmicwatch-go/internal/prefs"
)

// KMToMiles converts diameters. Distances and velocities use the feed's own
// mile fields instead.
const KMToMiles = 0.621371

var printer = message.NewPrinter(language.English)

// Diameter converts a kilometre diameter to unit.
func Diameter(km float64, unit prefs.Unit) float64 {
	if unit == prefs.UnitMI {
		return km * KMToMiles
	}
	return km
}

// MissDistance returns the approach's miss distance in unit.
func MissDistance(ca neo.CloseApproach, unit prefs.Unit) (float64, bool) {
	if unit == prefs.UnitMI {
		return ca.MissDistance.Mi()
	}
	return ca.MissDistance.KM()
}

// Velocity returns the approach's relative velocity in unit per hour.
func Velocity(ca neo.CloseApproach, unit prefs.Unit) (float64, bool) {
	if unit == prefs.UnitMI {
		return ca.RelativeVelocity.MPH()
	}
	return ca.RelativeVelocity.KPH()
}

// Grouped formats v with no decimals and thousands separators.
func Grouped(v float64) string {
	return printer.Sprintf("%.0f", v)
}
