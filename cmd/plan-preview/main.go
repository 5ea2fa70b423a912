// CLI tool to preview a generated workout plan without a database.
// Prints the plan, or writes it as a spreadsheet with -xlsx.
// Usage: go run ./cmd/plan-preview -level Beginner -days 3 -minutes 30 [-equipment] [-goal "Weight Loss"] [-seed 42] [-xlsx plan.xlsx]
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"lg/fitness-coach-api/internal/profile"
	"lg/fitness-coach-api/internal/workoutplan"
)

func main() {
	level := flag.String("level", string(profile.Intermediate), "fitness level: Beginner, Intermediate or Advanced")
	days := flag.Int("days", 3, "workout days per week (1-7)")
	minutes := flag.Int("minutes", 30, "minutes per workout")
	equipment := flag.Bool("equipment", false, "use gym equipment exercises")
	goal := flag.String("goal", "", "primary goal, e.g. \"Weight Loss\"")
	seed := flag.Uint64("seed", 0, "random seed for a reproducible plan (0: random)")
	xlsxPath := flag.String("xlsx", "", "write the plan to this .xlsx file instead of printing it")
	flag.Parse()

	fl, ok := profile.ParseFitnessLevel(*level)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown fitness level %q\n", *level)
		os.Exit(2)
	}

	gen := workoutplan.NewGenerator()
	if *seed != 0 {
		gen = workoutplan.NewGeneratorWithSource(rand.NewPCG(*seed, *seed))
	}
	plan, err := gen.Generate(profile.UserProfile{FitnessLevel: fl}, workoutplan.Preferences{
		DaysPerWeek:           *days,
		TimePerWorkoutMinutes: *minutes,
		HasEquipment:          *equipment,
		PrimaryGoal:           *goal,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating plan: %v\n", err)
		os.Exit(2)
	}

	if *xlsxPath == "" {
		printPlan(os.Stdout, plan)
		return
	}

	f, err := os.Create(*xlsxPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *xlsxPath, err)
		os.Exit(1)
	}
	if err := workoutplan.WriteXLSX(f, plan); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *xlsxPath, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing %s: %v\n", *xlsxPath, err)
		os.Exit(1)
	}
	fmt.Printf("Plan written to %s\n", *xlsxPath)
}

// printPlan renders the plan as plain text, one block per day.
func printPlan(w io.Writer, p workoutplan.Plan) {
	fmt.Fprintf(w, "%s\n%s\n", p.Name, p.Summary)
	for _, day := range p.Days() {
		wk := p.Workouts[day]
		fmt.Fprintf(w, "\n%s: %s (%d min, %s)\n", day, wk.FocusArea, wk.DurationMinutes, wk.Intensity)
		for _, ex := range wk.Exercises {
			fmt.Fprintf(w, "  - %-24s %d x %d\n", ex.Name, ex.Sets, ex.Reps)
		}
	}
}
