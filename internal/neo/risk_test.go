package neo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testObject(id string, hazardous bool, avgDiamKm float64, lunar string) Object {
	return Object{
		ID:                id,
		Name:              "(" + id + ")",
		Hazardous:         hazardous,
		EstimatedDiameter: EstimatedDiameter{Kilometers: DiameterRange{Min: avgDiamKm, Max: avgDiamKm}},
		CloseApproaches: []CloseApproach{{
			Date:         "2026-02-15",
			MissDistance: MissDistance{Lunar: lunar, Kilometers: "1000000", Miles: "621371"},
			RelativeVelocity: Velocity{
				KilometersPerHour: "50000",
				MilesPerHour:      "31068",
			},
			OrbitingBody: "Earth",
		}},
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		obj       Object
		wantScore int
		wantLevel Level
	}{
		{"hazardous mid-size close pass", testObject("a", true, 0.3, "10"), 73, LevelHigh},
		{"small distant half rounds up", testObject("b", false, 0.05, "40"), 8, LevelLow},
		{"maximum", testObject("c", true, 5, "0"), 100, LevelHigh},
		{"minimum", testObject("d", false, 0, "500"), 0, LevelLow},
		{"size term caps at 30", testObject("e", false, 2, "50"), 30, LevelLow},
		{"medium boundary", testObject("f", false, 1, "41.6666666667"), 35, LevelMedium},
		{"unparsable lunar contributes nothing", testObject("g", true, 0.1, "n/a"), 43, LevelMedium},
		{"negative lunar contributes nothing", testObject("h", true, 1, "-10"), 70, LevelHigh},
		{"NaN lunar contributes nothing", testObject("i", true, 1, "NaN"), 70, LevelHigh},
		{"infinite lunar contributes nothing", testObject("j", true, 1, "-Inf"), 70, LevelHigh},
		{"positive infinite lunar contributes nothing", testObject("k", false, 0, "+Inf"), 0, LevelLow},
		{"negative diameter contributes nothing", testObject("l", false, -1, "500"), 0, LevelLow},
		{"no approaches", Object{Hazardous: true, EstimatedDiameter: EstimatedDiameter{Kilometers: DiameterRange{Min: 1, Max: 1}}}, 70, LevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, level := Score(&tt.obj)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantLevel, level)
		})
	}
}

func TestLevelFor(t *testing.T) {
	for score := 0; score <= 100; score++ {
		want := LevelLow
		switch {
		case score >= 65:
			want = LevelHigh
		case score >= 35:
			want = LevelMedium
		}
		assert.Equal(t, want, LevelFor(score), "score %d", score)
	}
}

func TestScoreRangeOverFixture(t *testing.T) {
	for _, o := range fixtureObjects() {
		score, level := Score(&o)
		assert.GreaterOrEqual(t, score, 0, o.ID)
		assert.LessOrEqual(t, score, 100, o.ID)
		assert.Equal(t, LevelFor(score), level, o.ID)
	}
}

func TestRankSortsDescendingAndIsStable(t *testing.T) {
	in := []Object{
		testObject("low", false, 0.01, "60"),
		testObject("tie-1", true, 0.3, "10"),
		testObject("high", true, 1, "0"),
		testObject("tie-2", true, 0.3, "10"),
	}

	out := rank(in)

	ids := make([]string, len(out))
	for i, o := range out {
		ids[i] = o.ID
	}
	assert.Equal(t, []string{"high", "tie-1", "tie-2", "low"}, ids)
	assert.Zero(t, in[0].RiskScore, "rank must not mutate its input")
}

func TestMissDistanceRejectsNonFinite(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-Inf", "", "far"} {
		_, ok := MissDistance{Lunar: v}.LunarDistances()
		assert.False(t, ok, v)
	}
	got, ok := MissDistance{Lunar: "12.5"}.LunarDistances()
	assert.True(t, ok)
	assert.Equal(t, 12.5, got)
}
