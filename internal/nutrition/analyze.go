// Package nutrition rolls a 7-day window of food log entries up into totals,
// averages, recommended targets, per-macro status and text recommendations.
package nutrition

import (
	"fmt"
	"strings"

	"lg/fitness-coach-api/internal/biometrics"
	"lg/fitness-coach-api/internal/profile"
)

// Status is the Low/Optimal/High bucket of actual vs recommended intake.
type Status string

const (
	Low     Status = "Low"
	Optimal Status = "Optimal"
	High    Status = "High"
)

// Macro split constants used to derive recommended targets from TDEE.
const (
	proteinGPerKG   = 1.6
	carbsShare      = 0.45
	fatShare        = 0.25
	kcalPerGramCarb = 4
	kcalPerGramFat  = 9
)

// MacroStatus holds one Status per tracked quantity.
type MacroStatus struct {
	Calories Status `json:"calories"`
	Protein  Status `json:"protein"`
	Carbs    Status `json:"carbs"`
	Fat      Status `json:"fat"`
}

// Result is the derived analysis of a 7-day window. It is recomputed on every
// call and never stored as a source of truth.
type Result struct {
	Totals          Macros      `json:"totals"`
	Averages        Macros      `json:"averages"`
	Recommended     Macros      `json:"recommended"`
	Status          MacroStatus `json:"status"`
	Recommendations []string    `json:"recommendations"`
	Days            []DayTotals `json:"days"`
}

// Recommendation lines, in the fixed order they can appear.
const (
	recCaloriesLow  = "Your calorie intake is below your target. Add nutrient-dense meals or snacks to fuel your day."
	recCaloriesHigh = "Your calorie intake is above your target. Try smaller portions or lighter options."
	recProteinLow   = "Increase your protein intake with lean meat, fish, eggs, legumes or dairy."
	recCarbsLow     = "Add complex carbohydrates such as whole grains, fruit and vegetables for steady energy."
	recCarbsHigh    = "Cut back on refined carbohydrates and sugary foods in favor of whole grains and vegetables."
	recFatHigh      = "Limit fried and saturated fats; choose nuts, olive oil and avocado instead."
	tipVariety      = "Eat a wide variety of foods to cover your vitamin and mineral needs."
	tipRecovery     = "Stay hydrated and aim for 7-9 hours of sleep to support recovery."
)

// Recommended derives daily targets from the profile, substituting defaults
// for missing fields.
func Recommended(p profile.UserProfile) Macros {
	p = p.WithDefaults()
	bmr := biometrics.BMR(p.WeightKG, p.HeightCM, p.Age, p.Gender.IsMale())
	tdee := biometrics.TDEE(bmr, p.ActivityLevel)
	return Macros{
		Calories: tdee,
		ProteinG: p.WeightKG * proteinGPerKG,
		CarbsG:   tdee * carbsShare / kcalPerGramCarb,
		FatG:     tdee * fatShare / kcalPerGramFat,
	}
}

// statusEpsilon absorbs float rounding at the 90% and 110% boundaries.
const statusEpsilon = 1e-9

// StatusOf buckets actual intake against a target: under 90% is Low, over
// 110% is High. Both boundaries are Optimal.
func StatusOf(actual, recommended float64) Status {
	pct := actual * 100 / recommended
	switch {
	case pct < 90-statusEpsilon:
		return Low
	case pct > 110+statusEpsilon:
		return High
	default:
		return Optimal
	}
}

// Analyze totals the entries of a 7-day window and compares the daily
// averages to the profile's targets. Averages always divide by 7: days
// without entries count as zero intake.
func Analyze(entries []FoodLogEntry, p profile.UserProfile) Result {
	days := GroupByDate(entries)

	var totals Macros
	for _, d := range days {
		totals.Calories += d.Macros.Calories
		totals.ProteinG += d.Macros.ProteinG
		totals.CarbsG += d.Macros.CarbsG
		totals.FatG += d.Macros.FatG
	}

	avg := Macros{
		Calories: totals.Calories / WindowDays,
		ProteinG: totals.ProteinG / WindowDays,
		CarbsG:   totals.CarbsG / WindowDays,
		FatG:     totals.FatG / WindowDays,
	}
	rec := Recommended(p)
	status := MacroStatus{
		Calories: StatusOf(avg.Calories, rec.Calories),
		Protein:  StatusOf(avg.ProteinG, rec.ProteinG),
		Carbs:    StatusOf(avg.CarbsG, rec.CarbsG),
		Fat:      StatusOf(avg.FatG, rec.FatG),
	}

	return Result{
		Totals:          totals,
		Averages:        avg,
		Recommended:     rec,
		Status:          status,
		Recommendations: recommendations(status),
		Days:            days,
	}
}

func recommendations(s MacroStatus) []string {
	var recs []string
	switch s.Calories {
	case Low:
		recs = append(recs, recCaloriesLow)
	case High:
		recs = append(recs, recCaloriesHigh)
	}
	if s.Protein == Low {
		recs = append(recs, recProteinLow)
	}
	switch s.Carbs {
	case Low:
		recs = append(recs, recCarbsLow)
	case High:
		recs = append(recs, recCarbsHigh)
	}
	if s.Fat == High {
		recs = append(recs, recFatHigh)
	}
	return append(recs, tipVariety, tipRecovery)
}

// Summary renders the result as plain text, suitable as coaching context.
func (r Result) Summary() string {
	var sb strings.Builder
	sb.WriteString("7-day nutrition (daily average vs target):\n")
	fmt.Fprintf(&sb, "- Calories: %.0f / %.0f kcal (%s)\n", r.Averages.Calories, r.Recommended.Calories, r.Status.Calories)
	fmt.Fprintf(&sb, "- Protein: %.0f / %.0f g (%s)\n", r.Averages.ProteinG, r.Recommended.ProteinG, r.Status.Protein)
	fmt.Fprintf(&sb, "- Carbs: %.0f / %.0f g (%s)\n", r.Averages.CarbsG, r.Recommended.CarbsG, r.Status.Carbs)
	fmt.Fprintf(&sb, "- Fat: %.0f / %.0f g (%s)\n", r.Averages.FatG, r.Recommended.FatG, r.Status.Fat)
	fmt.Fprintf(&sb, "Days with logged food: %d of %d\n", len(r.Days), WindowDays)
	return sb.String()
}
