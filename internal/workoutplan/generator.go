package workoutplan

import (
	"fmt"
	"math/rand/v2"
	"time"

	"lg/fitness-coach-api/internal/profile"
)

// weekDays is the calendar the plan's days are taken from, in order.
var weekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// splitCycle is the focus rotation for plans with 5 or more days.
var splitCycle = []string{"Chest", "Back", "Legs", "Shoulders", "Arms"}

var bodyweightExercises = []string{
	"Push-ups", "Bodyweight Squats", "Lunges", "Plank", "Burpees", "Mountain Climbers",
	"Glute Bridges", "Jumping Jacks", "Tricep Dips", "Bicycle Crunches", "High Knees", "Superman Hold",
}

var equipmentExercises = []string{
	"Bench Press", "Deadlift", "Barbell Squat", "Dumbbell Rows", "Overhead Press", "Lat Pulldown",
	"Bicep Curls", "Leg Press", "Cable Flyes", "Tricep Pushdowns", "Romanian Deadlift", "Kettlebell Swings",
}

// minutesPerExercise sets how many exercise slots fit in a session.
const minutesPerExercise = 5

type volume struct {
	minSets, maxSets int
	minReps, maxReps int
	intensity        Intensity
}

var volumeByLevel = map[profile.FitnessLevel]volume{
	profile.Beginner:     {2, 3, 8, 12, Light},
	profile.Intermediate: {3, 4, 10, 14, Moderate},
	profile.Advanced:     {4, 5, 12, 16, High},
}

// volumeFor falls back to Intermediate for unrecognized levels.
func volumeFor(level profile.FitnessLevel) volume {
	if v, ok := volumeByLevel[level]; ok {
		return v
	}
	return volumeByLevel[profile.Intermediate]
}

// Generator builds plans. Each generator owns its PRNG; it is not safe for
// concurrent use, so give each goroutine its own.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded from the clock.
func NewGenerator() *Generator {
	seed := uint64(time.Now().UnixNano())
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

// NewGeneratorWithSource uses the given source, e.g. a fixed PCG in tools that
// want repeatable output.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// focusArea picks the day's focus from the split strategy.
func focusArea(dayIndex, daysPerWeek int) string {
	switch {
	case daysPerWeek <= 3:
		return "Full Body"
	case daysPerWeek == 4:
		if dayIndex%2 == 0 {
			return "Upper Body"
		}
		return "Lower Body"
	}
	switch i := dayIndex % len(splitCycle); i {
	case 0, 1, 2, 3, 4:
		return splitCycle[i]
	default:
		// Unreachable: the modulo keeps i in 0-4.
		return "Core"
	}
}

// Generate builds a plan with one workout per requested day.
func (g *Generator) Generate(p profile.UserProfile, prefs Preferences) (Plan, error) {
	if err := prefs.Validate(); err != nil {
		return Plan{}, fmt.Errorf("%w: days_per_week=%d time_per_workout=%d", err, prefs.DaysPerWeek, prefs.TimePerWorkoutMinutes)
	}

	level := p.FitnessLevel
	if level == "" {
		level = profile.Intermediate
	}
	plan := Plan{
		Name:                  planName(level, prefs.PrimaryGoal),
		Summary:               planSummary(level, prefs),
		FitnessLevel:          level,
		PrimaryGoal:           prefs.PrimaryGoal,
		DaysPerWeek:           prefs.DaysPerWeek,
		TimePerWorkoutMinutes: prefs.TimePerWorkoutMinutes,
		RequiresEquipment:     prefs.HasEquipment,
		Workouts:              make(map[string]Workout, prefs.DaysPerWeek),
	}

	vol := volumeFor(level)
	for i := 0; i < prefs.DaysPerWeek; i++ {
		day := weekDays[i]
		focus := focusArea(i, prefs.DaysPerWeek)
		plan.Workouts[day] = Workout{
			Name:            fmt.Sprintf("%s %s Workout", day, focus),
			Description:     fmt.Sprintf("%s session of %d minutes at %s intensity.", focus, prefs.TimePerWorkoutMinutes, vol.intensity),
			Day:             day,
			DurationMinutes: prefs.TimePerWorkoutMinutes,
			FocusArea:       focus,
			Intensity:       vol.intensity,
			Exercises:       g.exercises(focus, level, vol, prefs),
		}
	}
	return plan, nil
}

// exercises draws each slot independently from the pool; repeats are allowed.
func (g *Generator) exercises(focus string, level profile.FitnessLevel, vol volume, prefs Preferences) []Exercise {
	pool := bodyweightExercises
	if prefs.HasEquipment {
		pool = equipmentExercises
	}

	n := prefs.TimePerWorkoutMinutes / minutesPerExercise
	out := make([]Exercise, n)
	for i := range out {
		out[i] = Exercise{
			Name:       pool[g.rng.IntN(len(pool))],
			FocusArea:  focus,
			Sets:       vol.minSets + g.rng.IntN(vol.maxSets-vol.minSets+1),
			Reps:       vol.minReps + g.rng.IntN(vol.maxReps-vol.minReps+1),
			Equipment:  prefs.HasEquipment,
			Difficulty: string(level),
		}
	}
	return out
}

func planName(level profile.FitnessLevel, goal string) string {
	if goal == "" {
		goal = "General Fitness"
	}
	return fmt.Sprintf("%s %s Plan", level, goal)
}

func planSummary(level profile.FitnessLevel, prefs Preferences) string {
	goal := prefs.PrimaryGoal
	if goal == "" {
		goal = "general fitness"
	}
	gear := "bodyweight only"
	if prefs.HasEquipment {
		gear = "with gym equipment"
	}
	return fmt.Sprintf("A %d-day per week %s plan focused on %s: %d-minute workouts, %s.",
		prefs.DaysPerWeek, level, goal, prefs.TimePerWorkoutMinutes, gear)
}
