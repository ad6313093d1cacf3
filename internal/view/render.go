package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cosmicwatch/cosmicwatch-go/internal/neo"
	"github.com/cosmicwatch/cosmicwatch-go/internal/prefs"
)

const (
	notAvailable = "N/A"
	watchMark    = "★"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// Stats renders the dashboard header cards.
func Stats(s neo.Summary) string {
	cards := []string{
		statStyle.Render("Total Objects\n" + strconv.Itoa(s.Total)),
		statStyle.Render("Hazardous\n" + strconv.Itoa(s.Hazardous)),
		statStyle.Render("High Risk\n" + strconv.Itoa(s.HighRisk)),
		statStyle.Render("Avg Velocity (kph)\n" + Grouped(s.AvgVelocity)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// Feed renders the risk table. Watched objects are starred.
func Feed(objs []neo.Object, p prefs.Preferences) string {
	if len(objs) == 0 {
		return mutedStyle.Render("No orbital objects match the current filters.")
	}

	unit := string(p.Unit)
	t := newTable("", "ID", "Name", "Risk", "Hazardous", "Approach", "Size ("+unit+")", "Miss ("+unit+")", "Velocity ("+unit+"/h)")
	for _, o := range objs {
		mark := ""
		if p.Watching(o.ID) {
			mark = watchMark
		}
		hazard := "no"
		if o.Hazardous {
			hazard = "yes"
		}

		date, miss, vel := notAvailable, notAvailable, notAvailable
		if ca, ok := o.FirstApproach(); ok {
			date = ca.Date
			miss = groupedOrNA(MissDistance(ca, p.Unit))
			vel = groupedOrNA(Velocity(ca, p.Unit))
		}

		t.Row(
			mark,
			o.ID,
			o.Name,
			fmt.Sprintf("%3d %s", o.RiskScore, Badge(o.RiskLevel)),
			hazard,
			date,
			strconv.FormatFloat(Diameter(o.EstimatedDiameter.Kilometers.Max, p.Unit), 'f', 2, 64),
			miss,
			vel,
		)
	}
	return t.String()
}

// Detail renders one object: identity, risk analysis, the next approach and
// the approach timeline.
func Detail(o neo.Object, p prefs.Preferences, now time.Time) string {
	var b strings.Builder

	title := o.Name
	if p.Watching(o.ID) {
		title += " " + watchMark
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("ID: " + o.ID))
	b.WriteString("\n\n")

	diam := o.EstimatedDiameter.Kilometers
	hazard := "no"
	if o.Hazardous {
		hazard = "yes"
	}
	field(&b, "Risk", fmt.Sprintf("%s (%d)", Badge(o.RiskLevel), o.RiskScore))
	field(&b, "Potentially hazardous", hazard)
	field(&b, "Min diameter", fmt.Sprintf("%.3f %s", Diameter(diam.Min, p.Unit), p.Unit))
	field(&b, "Max diameter", fmt.Sprintf("%.3f %s", Diameter(diam.Max, p.Unit), p.Unit))
	field(&b, "Absolute magnitude", fmt.Sprintf("%.2f", o.AbsoluteMagnitude))
	field(&b, "Impact probability", fmt.Sprintf("%.4f%%", neo.ImpactProbability(&o)*100))

	prof := neo.RiskProfile(&o)
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Risk profile"))
	b.WriteString("\n")
	field(&b, "Velocity", bar(prof.Velocity))
	field(&b, "Size", bar(prof.Size))
	field(&b, "Proximity", bar(prof.Proximity))
	field(&b, "Hazard", bar(prof.Hazard))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Next approach"))
	b.WriteString("\n")
	if ca, ok := neo.NextApproach(&o, now); ok {
		km, _ := ca.MissDistance.KM()
		lunar, _ := ca.MissDistance.LunarDistances()
		field(&b, "Date", ca.Date)
		field(&b, "Miss distance", Grouped(km)+" km")
		field(&b, "Lunar distance", fmt.Sprintf("%.2f × Moon Distance", lunar))
		field(&b, "Earth radii", fmt.Sprintf("%.2f× Earth Radius", km/6371))
	} else {
		b.WriteString(mutedStyle.Render("No recorded approaches."))
		b.WriteString("\n")
	}

	if rows := neo.Timeline(&o); len(rows) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Approach timeline"))
		b.WriteString("\n")
		t := newTable("Date", "Velocity", "Miss distance", "Lunar")
		for _, ca := range rows {
			km, _ := ca.MissDistance.KM()
			lunar, _ := ca.MissDistance.LunarDistances()
			t.Row(ca.Date, groupedOrNA(ca.RelativeVelocity.KPH())+" km/h", Grouped(km)+" km", fmt.Sprintf("%.2f×", lunar))
		}
		b.WriteString(t.String())
		b.WriteString("\n")
	}

	return b.String()
}

// Alerts renders the watched objects with their next approach.
func Alerts(objs []neo.Object, p prefs.Preferences, now time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Deep Space Alerts"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Monitoring %d custom flagged objects.", len(p.Watchlist))))
	b.WriteString("\n\n")

	if len(p.Watchlist) == 0 {
		b.WriteString("No Active Alerts\n")
		b.WriteString(mutedStyle.Render("You are not tracking any near-Earth objects. Use `cosmicwatch track <id>` to flag one."))
		b.WriteString("\n")
		return b.String()
	}

	t := newTable("ID", "Name", "Next approach", "Miss distance", "Risk")
	for _, o := range objs {
		date, miss := "Unknown", notAvailable
		if ca, ok := neo.NextApproach(&o, now); ok {
			date = ca.Date
			if d, ok := MissDistance(ca, p.Unit); ok {
				miss = Grouped(d) + " " + string(p.Unit)
			}
		}
		t.Row(o.ID, o.Name, date, miss, fmt.Sprintf("%s (%d)", Badge(o.RiskLevel), o.RiskScore))
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}

func field(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

// bar draws a 0..100 value as a 20-cell gauge.
func bar(v float64) string {
	filled := int(v/5 + 0.5)
	filled = max(0, min(20, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled) + fmt.Sprintf(" %3.0f", v)
}

func groupedOrNA(v float64, ok bool) string {
	if !ok {
		return notAvailable
	}
	return Grouped(v)
}
