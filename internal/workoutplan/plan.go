// Package workoutplan generates weekly workout plans from a user profile and
// training preferences, and converts them to and from their persisted shape.
package workoutplan

import (
	"errors"

	"lg/fitness-coach-api/internal/profile"
)

// ErrInvalidPreferences is returned when preferences fall outside the
// supported range (1-7 days, non-negative duration).
var ErrInvalidPreferences = errors.New("invalid workout preferences")

// Intensity of a generated workout.
type Intensity string

const (
	Light    Intensity = "Light"
	Moderate Intensity = "Moderate"
	High     Intensity = "High"
)

// Preferences are the user's choices for a plan.
type Preferences struct {
	DaysPerWeek           int
	TimePerWorkoutMinutes int
	HasEquipment          bool
	PrimaryGoal           string
}

// Validate checks the preference ranges Generate relies on.
func (p Preferences) Validate() error {
	if p.DaysPerWeek < 1 || p.DaysPerWeek > len(weekDays) {
		return ErrInvalidPreferences
	}
	if p.TimePerWorkoutMinutes < 0 {
		return ErrInvalidPreferences
	}
	return nil
}

// Exercise is one slot in a generated workout.
type Exercise struct {
	Name       string
	FocusArea  string
	Sets       int
	Reps       int
	Equipment  bool
	Difficulty string
}

// Workout is a single day of a plan.
type Workout struct {
	Name            string
	Description     string
	Day             string
	DurationMinutes int
	FocusArea       string
	Intensity       Intensity
	Exercises       []Exercise
}

// Plan is a generated week of workouts keyed by day name.
type Plan struct {
	Name                  string
	Summary               string
	FitnessLevel          profile.FitnessLevel
	PrimaryGoal           string
	DaysPerWeek           int
	TimePerWorkoutMinutes int
	RequiresEquipment     bool
	Workouts              map[string]Workout
}

// Days returns the plan's day names in calendar order.
func (p Plan) Days() []string {
	days := make([]string, 0, len(p.Workouts))
	for _, d := range weekDays {
		if _, ok := p.Workouts[d]; ok {
			days = append(days, d)
		}
	}
	return days
}
