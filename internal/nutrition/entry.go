package nutrition

import (
	"sort"
	"strings"
	"time"
)

// MealType is the meal slot a food log entry belongs to.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists the valid meal types in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// ParseMealType matches case-insensitively; ok=false for anything else.
func ParseMealType(s string) (MealType, bool) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range MealTypes {
		if m == known {
			return m, true
		}
	}
	return m, false
}

// ServingSize is a logged quantity and its unit of measure ("g", "cup", "each").
type ServingSize struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// FoodLogEntry is one logged food. Nutrient values are totals for the logged
// serving, as entered; they are never re-derived from the serving size.
type FoodLogEntry struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Calories float64     `json:"calories"`
	ProteinG float64     `json:"protein_g"`
	CarbsG   float64     `json:"carbs_g"`
	FatG     float64     `json:"fat_g"`
	Serving  ServingSize `json:"serving"`
	LoggedAt time.Time   `json:"logged_at"`
	MealType MealType    `json:"meal_type"`
}

// Macros is a calorie + macronutrient tuple.
type Macros struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

func (m Macros) add(e FoodLogEntry) Macros {
	m.Calories += e.Calories
	m.ProteinG += e.ProteinG
	m.CarbsG += e.CarbsG
	m.FatG += e.FatG
	return m
}

// DayTotals is the rolled-up intake of one calendar date.
type DayTotals struct {
	Date    string `json:"date"`
	Macros  Macros `json:"macros"`
	Entries int    `json:"entries"`
	HasData bool   `json:"has_data"`
}

// WindowDays is the length of the analysis window.
const WindowDays = 7

// Window returns the [start, end) bounds of the 7 calendar days ending on
// (and including) the date of end, in end's location.
func Window(end time.Time) (time.Time, time.Time) {
	day := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	return day.AddDate(0, 0, -(WindowDays - 1)), day.AddDate(0, 0, 1)
}

// GroupByDate totals entries per calendar date (in each entry's own
// location), sorted ascending. Only dates with entries are returned.
func GroupByDate(entries []FoodLogEntry) []DayTotals {
	byDate := make(map[string]*DayTotals)
	for _, e := range entries {
		key := e.LoggedAt.Format("2006-01-02")
		d, ok := byDate[key]
		if !ok {
			d = &DayTotals{Date: key, HasData: true}
			byDate[key] = d
		}
		d.Macros = d.Macros.add(e)
		d.Entries++
	}

	days := make([]DayTotals, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// WeekDays returns exactly 7 days ending on end's date, zero-filling days
// that have no entries. Entries outside the window are ignored.
func WeekDays(entries []FoodLogEntry, end time.Time) []DayTotals {
	start, _ := Window(end)
	byDate := make(map[string]DayTotals)
	for _, d := range GroupByDate(entries) {
		byDate[d.Date] = d
	}

	week := make([]DayTotals, WindowDays)
	for i := range week {
		key := start.AddDate(0, 0, i).Format("2006-01-02")
		if d, ok := byDate[key]; ok {
			week[i] = d
		} else {
			week[i] = DayTotals{Date: key}
		}
	}
	return week
}
