package workoutplan

import "lg/fitness-coach-api/internal/profile"

// PlanRecord is the persisted (and JSON API) shape of a Plan.
type PlanRecord struct {
	Name                  string                   `json:"name"`
	Summary               string                   `json:"summary"`
	FitnessLevel          string                   `json:"fitness_level"`
	PrimaryGoal           string                   `json:"primary_goal"`
	DaysPerWeek           int                      `json:"days_per_week"`
	TimePerWorkoutMinutes int                      `json:"time_per_workout_minutes"`
	RequiresEquipment     bool                     `json:"requires_equipment"`
	Workouts              map[string]WorkoutRecord `json:"workouts"`
}

// WorkoutRecord is the persisted shape of a Workout.
type WorkoutRecord struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Day             string           `json:"day"`
	DurationMinutes int              `json:"duration_minutes"`
	FocusArea       string           `json:"focus_area"`
	Intensity       string           `json:"intensity"`
	Exercises       []ExerciseRecord `json:"exercises"`
}

// ExerciseRecord is the persisted shape of an Exercise.
type ExerciseRecord struct {
	Name       string `json:"name"`
	FocusArea  string `json:"focus_area"`
	Sets       int    `json:"sets"`
	Reps       int    `json:"reps"`
	Equipment  bool   `json:"equipment"`
	Difficulty string `json:"difficulty"`
}

// Record converts the plan to its persisted shape.
func (p Plan) Record() PlanRecord {
	rec := PlanRecord{
		Name:                  p.Name,
		Summary:               p.Summary,
		FitnessLevel:          string(p.FitnessLevel),
		PrimaryGoal:           p.PrimaryGoal,
		DaysPerWeek:           p.DaysPerWeek,
		TimePerWorkoutMinutes: p.TimePerWorkoutMinutes,
		RequiresEquipment:     p.RequiresEquipment,
		Workouts:              make(map[string]WorkoutRecord, len(p.Workouts)),
	}
	for day, w := range p.Workouts {
		exercises := make([]ExerciseRecord, len(w.Exercises))
		for i, e := range w.Exercises {
			exercises[i] = ExerciseRecord(e)
		}
		rec.Workouts[day] = WorkoutRecord{
			Name:            w.Name,
			Description:     w.Description,
			Day:             w.Day,
			DurationMinutes: w.DurationMinutes,
			FocusArea:       w.FocusArea,
			Intensity:       string(w.Intensity),
			Exercises:       exercises,
		}
	}
	return rec
}

// FromRecord rebuilds a Plan from its persisted shape.
func FromRecord(rec PlanRecord) Plan {
	p := Plan{
		Name:                  rec.Name,
		Summary:               rec.Summary,
		FitnessLevel:          profile.FitnessLevel(rec.FitnessLevel),
		PrimaryGoal:           rec.PrimaryGoal,
		DaysPerWeek:           rec.DaysPerWeek,
		TimePerWorkoutMinutes: rec.TimePerWorkoutMinutes,
		RequiresEquipment:     rec.RequiresEquipment,
		Workouts:              make(map[string]Workout, len(rec.Workouts)),
	}
	for day, w := range rec.Workouts {
		exercises := make([]Exercise, len(w.Exercises))
		for i, e := range w.Exercises {
			exercises[i] = Exercise(e)
		}
		p.Workouts[day] = Workout{
			Name:            w.Name,
			Description:     w.Description,
			Day:             w.Day,
			DurationMinutes: w.DurationMinutes,
			FocusArea:       w.FocusArea,
			Intensity:       Intensity(w.Intensity),
			Exercises:       exercises,
		}
	}
	return p
}
