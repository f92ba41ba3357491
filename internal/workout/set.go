// Package workout holds the pure data model and transformations: unit
// conversion, 1RM estimation, set labeling, session aggregation, exercise
// statistics, and chart rollups. Nothing here touches the network or the
// database; malformed input is a programmer error, not a runtime condition.
package workout

import "time"

// Unit is the weight unit a set was recorded in. Weights are never silently
// converted in storage — the unit is fixed at write time.
type Unit string

const (
	UnitKg Unit = "kg"
	UnitLb Unit = "lb"
)

// Conversion factors. Both directions use a fixed constant so stored values
// round-trip the same way the original data did.
const (
	LbPerKg = 2.20462
	KgPerLb = 0.453592
)

// Convert translates a weight between units. Same-unit conversion returns the
// input unchanged, with no floating-point noise introduced.
func Convert(weight float64, from, to Unit) float64 {
	if from == to {
		return weight
	}
	if from == UnitKg && to == UnitLb {
		return weight * LbPerKg
	}
	return weight * KgPerLb
}

// Estimate1RM returns the Epley-style estimated one-rep max. At reps == 0 it
// returns the weight itself — an informative floor, not a real 1RM. Callers
// validate inputs; the estimator never fails.
func Estimate1RM(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}

// LoggedSet is the atomic persisted record: one weight x reps performance of
// an exercise. MuscleGroup and Exercise are lower-cased at write time.
type LoggedSet struct {
	ID           string    `json:"id"`
	UserID       int       `json:"-"`
	MuscleGroup  string    `json:"muscleGroup"`
	Exercise     string    `json:"exercise"`
	Weight       float64   `json:"weight"`
	Unit         Unit      `json:"unit"`
	Reps         int       `json:"reps"`
	RPE          *float64  `json:"rpe,omitempty"`
	IsWarmup     bool      `json:"isWarmup"`
	IsDropSet    bool      `json:"isDropSet"`
	SetOrder     int       `json:"setOrder"`
	Estimated1RM float64   `json:"estimated1RM"`
	DateString   string    `json:"dateString"` // YYYY-MM-DD, the logical workout day
	CreatedAt    time.Time `json:"createdAt"`
}

// WeightKg returns the set's weight normalized to kilograms. Historical data
// mixes units per user, so every cross-set comparison must go through this.
func (s LoggedSet) WeightKg() float64 {
	return Convert(s.Weight, s.Unit, UnitKg)
}
