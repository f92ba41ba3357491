package workout

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Window is the lookback range for the muscle-balance rollup.
type Window string

const (
	WindowWeek    Window = "week"
	WindowMonth   Window = "month"
	Window3Months Window = "3months"
	WindowYear    Window = "year"
)

// Metric selects what the muscle-balance rollup sums per group.
type Metric string

const (
	MetricSets   Metric = "sets"
	MetricVolume Metric = "volume"
)

// DayVolume is one day's column in the weekly volume chart.
type DayVolume struct {
	Date   string  `json:"date"`
	Day    string  `json:"day"`
	Volume float64 `json:"volume"`
}

// WeeklyVolume sums volume per calendar day for the Sunday-start week
// containing weekOf, in the requested display unit. Days without logs report
// volume 0, not absence. Values round to whole numbers for charting.
func WeeklyVolume(logs []LoggedSet, weekOf time.Time, unit Unit) []DayVolume {
	byDate := make(map[string]float64)
	for _, l := range logs {
		byDate[l.DateString] += Convert(l.Weight, l.Unit, unit) * float64(l.Reps)
	}

	sunday := StartOfWeek(weekOf)
	out := make([]DayVolume, 0, 7)
	for i := 0; i < 7; i++ {
		d := sunday.AddDate(0, 0, i)
		ds := d.Format("2006-01-02")
		out = append(out, DayVolume{
			Date:   ds,
			Day:    d.Weekday().String()[:3],
			Volume: math.Round(byDate[ds]),
		})
	}
	return out
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// MuscleShare is one muscle group's slice of the balance radar.
type MuscleShare struct {
	Muscle string  `json:"muscle"`
	Value  float64 `json:"value"`
}

// MuscleBalance groups non-warm-up sets logged inside the lookback window by
// muscle group, summing either set count or volume in the display unit.
// Group names are capitalized for display only; storage keeps them lower-case.
// Groups appear in first-encountered order.
func MuscleBalance(logs []LoggedSet, window Window, metric Metric, unit Unit, now time.Time) []MuscleShare {
	start := windowStart(window, now).Format("2006-01-02")

	grouped := make(map[string]float64)
	var order []string

	for _, l := range logs {
		if l.IsWarmup || l.DateString < start {
			continue
		}
		muscle := capitalize(l.MuscleGroup)
		if muscle == "" {
			muscle = "Other"
		}
		if _, ok := grouped[muscle]; !ok {
			order = append(order, muscle)
		}
		if metric == MetricSets {
			grouped[muscle]++
		} else {
			grouped[muscle] += Convert(l.Weight, l.Unit, unit) * float64(l.Reps)
		}
	}

	out := make([]MuscleShare, 0, len(order))
	for _, m := range order {
		out = append(out, MuscleShare{Muscle: m, Value: math.Round(grouped[m])})
	}
	return out
}

func windowStart(w Window, now time.Time) time.Time {
	switch w {
	case WindowWeek:
		return now.AddDate(0, 0, -7)
	case Window3Months:
		return now.AddDate(0, -3, 0)
	case WindowYear:
		return now.AddDate(-1, 0, 0)
	default: // month
		return now.AddDate(0, -1, 0)
	}
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}

// DayCell is one calendar day in the consistency matrix.
type DayCell struct {
	Date   string  `json:"date"`
	Day    int     `json:"day"`
	Count  int     `json:"count"`
	Volume float64 `json:"volume"`
}

// MatrixRow pairs the two columns of the split month grid: column A covers
// days 1-15, column B days 16 through month end. A nil cell means the day
// does not exist in that month — distinct from a zero-count day.
type MatrixRow struct {
	CellA *DayCell `json:"cellA"`
	CellB *DayCell `json:"cellB"`
}

// MonthMatrix is the fixed 16-row grid for one selected month.
type MonthMatrix struct {
	Month string      `json:"month"` // YYYY-MM
	Rows  []MatrixRow `json:"rows"`
}

// ConsistencyMatrix builds the monthly consistency grid for each selected
// YYYY-MM month, chronologically ordered, each cell carrying the day's
// non-warm-up set count and volume in the display unit. The second return is
// the maximum count across all selected months, used only for color scaling;
// it is at least 1 to keep intensity math divide-safe. Malformed month
// strings are skipped.
func ConsistencyMatrix(logs []LoggedSet, months []string, unit Unit) ([]MonthMatrix, int) {
	type dayAgg struct {
		count  int
		volume float64
	}
	byDay := make(map[string]dayAgg)
	for _, l := range logs {
		if l.IsWarmup {
			continue
		}
		a := byDay[l.DateString]
		a.count++
		a.volume += Convert(l.Weight, l.Unit, unit) * float64(l.Reps)
		byDay[l.DateString] = a
	}

	sorted := append([]string(nil), months...)
	sort.Strings(sorted)

	maxCount := 0
	cell := func(month string, day, daysInMonth int) *DayCell {
		if day > daysInMonth {
			return nil
		}
		date := fmt.Sprintf("%s-%02d", month, day)
		a := byDay[date]
		if a.count > maxCount {
			maxCount = a.count
		}
		return &DayCell{Date: date, Day: day, Count: a.count, Volume: round2(a.volume)}
	}

	result := make([]MonthMatrix, 0, len(sorted))
	for _, m := range sorted {
		first, err := time.Parse("2006-01", m)
		if err != nil {
			continue
		}
		daysInMonth := first.AddDate(0, 1, -1).Day()

		rows := make([]MatrixRow, 16)
		for i := 0; i < 16; i++ {
			if dayA := i + 1; dayA <= 15 {
				rows[i].CellA = cell(m, dayA, daysInMonth)
			}
			rows[i].CellB = cell(m, i+16, daysInMonth)
		}
		result = append(result, MonthMatrix{Month: m, Rows: rows})
	}

	if maxCount == 0 {
		maxCount = 1
	}
	return result, maxCount
}
