package neo

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"
)

// FixtureSource serves a fixed dataset. It is the fallback whenever the live
// feed fails and can be selected as the primary source for offline use and tests.
type FixtureSource struct {
	objects []Object
}

// NewFixtureSource returns a FixtureSource over the built-in dataset.
func NewFixtureSource() *FixtureSource {
	return &FixtureSource{objects: fixtureObjects()}
}

// NewFixtureSourceFrom returns a FixtureSource over objs.
func NewFixtureSourceFrom(objs []Object) *FixtureSource {
	return &FixtureSource{objects: slices.Clone(objs)}
}

// Feed returns the whole dataset regardless of the window.
func (s *FixtureSource) Feed(_ context.Context, _, _ time.Time) ([]Object, error) {
	return slices.Clone(s.objects), nil
}

// Lookup returns the object with id, or ErrNotFound.
func (s *FixtureSource) Lookup(_ context.Context, id string) (Object, error) {
	for _, o := range s.objects {
		if o.ID == id {
			return o, nil
		}
	}
	return Object{}, ErrNotFound
}

func approach(date, full string, epoch int64, kps, kph, mph, au, lunar, km, mi string) CloseApproach {
	return CloseApproach{
		Date:        date,
		DateFull:    full,
		EpochMillis: epoch,
		RelativeVelocity: Velocity{
			KilometersPerSecond: kps,
			KilometersPerHour:   kph,
			MilesPerHour:        mph,
		},
		MissDistance: MissDistance{
			Astronomical: au,
			Lunar:        lunar,
			Kilometers:   km,
			Miles:        mi,
		},
		OrbitingBody: "Earth",
	}
}

func fixtureObjects() []Object {
	objs := []Object{
		{
			ID: "2142257", Name: "(2007 FD10)", Hazardous: true, AbsoluteMagnitude: 22.5,
			EstimatedDiameter: EstimatedDiameter{Kilometers: DiameterRange{Min: 0.134, Max: 0.3}},
			CloseApproaches: []CloseApproach{
				approach("2026-02-15", "2026-Feb-15 09:45", 1739613900000, "18.5", "66600", "41400", "0.0456", "17.74", "6820000", "4240000"),
			},
		},
		{
			ID: "2159695", Name: "(2007 PA8)", Hazardous: true, AbsoluteMagnitude: 20.1,
			EstimatedDiameter: EstimatedDiameter{Kilometers: DiameterRange{Min: 0.354, Max: 0.791}},
			CloseApproaches: []CloseApproach{
				approach("2026-02-20", "2026-Feb-20 14:30", 1740076200000, "22.3", "80280", "49900", "0.0821", "31.94", "12280000", "7630000"),
			},
		},
		{
			ID: "3671668", Name: "(2013 RY24)", Hazardous: false, AbsoluteMagnitude: 23.8,
			EstimatedDiameter: EstimatedDiameter{Kilometers: DiameterRange{Min: 0.075, Max: 0.168}},
			CloseApproaches: []CloseApproach{
				approach("2026-02-18", "2026-Feb-18 06:15", 1739887500000, "19.7", "70920", "44100", "0.1245", "48.43", "18620000", "11570000"),
			},
		},
		{
			ID: "3860210", Name: "(2015 BX509)", Hazardous: true, AbsoluteMagnitude: 21.2,
			EstimatedDiameter: EstimatedDiameter{Kilometers: DiameterRange{Min: 0.226, Max: 0.506}},
			CloseApproaches: []CloseApproach{
				approach("2026-02-22", "2026-Feb-22 18:45", 1740263100000, "21.1", "75960", "47200", "0.0634", "24.66", "9485000", "5895000"),
			},
		},
	}

	// The filler objects are pseudo-random but seeded, so every process
	// serves the same dataset.
	r := rand.New(rand.NewPCG(2026, 46))
	for i := range 46 {
		day := 10 + i%20
		objs = append(objs, Object{
			ID:                strconv.Itoa(2000000 + i),
			Name:              fmt.Sprintf("(%d-%c%d)", 2026-i/5, rune('A'+i%5), (i+1)%10),
			Hazardous:         r.Float64() > 0.6,
			AbsoluteMagnitude: 18 + r.Float64()*8,
			EstimatedDiameter: EstimatedDiameter{Kilometers: DiameterRange{
				Min: 0.05 + r.Float64()*0.5,
				Max: 0.3 + r.Float64()*2,
			}},
			CloseApproaches: []CloseApproach{approach(
				fmt.Sprintf("2026-02-%02d", day),
				fmt.Sprintf("2026-Feb-%02d %02d:%02d", day, (i*7)%24, (i*13)%60),
				1739000000000+int64(i)*86400000,
				fixed(15+r.Float64()*30, 1),
				fixed(54000+r.Float64()*100000, 0),
				fixed(33500+r.Float64()*65000, 0),
				fixed(0.02+r.Float64()*0.2, 4),
				fixed(8+r.Float64()*60, 2),
				fixed(3000000+r.Float64()*30000000, 0),
				fixed(1850000+r.Float64()*18600000, 0),
			)},
		})
	}
	return objs
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
