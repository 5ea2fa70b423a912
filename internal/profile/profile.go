// Package profile holds the user body profile consumed by every analysis
// component, plus its validation and default substitution rules.
package profile

import (
	"fmt"
	"strings"
)

// Gender selects the sex-specific constant in the BMR and body-fat formulas.
type Gender string

const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
)

// ParseGender accepts any casing; unrecognized values return ok=false.
func ParseGender(s string) (Gender, bool) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case GenderMale, GenderFemale, GenderOther:
		return g, true
	}
	return GenderUnknown, false
}

// IsMale reports whether the male formula constants apply. Everything that is
// not explicitly male uses the female constants.
func (g Gender) IsMale() bool { return g == GenderMale }

// FitnessLevel drives workout volume and intensity.
type FitnessLevel string

const (
	Beginner     FitnessLevel = "Beginner"
	Intermediate FitnessLevel = "Intermediate"
	Advanced     FitnessLevel = "Advanced"
)

// ParseFitnessLevel matches case-insensitively against the three known levels.
func ParseFitnessLevel(s string) (FitnessLevel, bool) {
	for _, l := range []FitnessLevel{Beginner, Intermediate, Advanced} {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, true
		}
	}
	return "", false
}

// Default values substituted for missing profile fields.
const (
	DefaultWeightKG      = 70.0
	DefaultHeightCM      = 170.0
	DefaultAge           = 30
	DefaultGender        = GenderMale
	DefaultActivityLevel = "Moderately Active"
)

// Plausible age range accepted by Validate.
const (
	MinAge = 10
	MaxAge = 120
)

// UserProfile is the body profile of one user. Zero values mean "not provided";
// WithDefaults fills them before any formula runs.
type UserProfile struct {
	UserID        int          `json:"user_id"`
	Name          string       `json:"name"`
	Age           int          `json:"age"`
	Gender        Gender       `json:"gender"`
	WeightKG      float64      `json:"weight_kg"`
	HeightCM      float64      `json:"height_cm"`
	FitnessLevel  FitnessLevel `json:"fitness_level"`
	FitnessGoal   string       `json:"fitness_goal"`
	ActivityLevel string       `json:"activity_level"`
}

// WithDefaults returns a copy with every missing biometric field replaced by
// its default. Negative values are not missing and are left for Validate.
func (p UserProfile) WithDefaults() UserProfile {
	if p.WeightKG == 0 {
		p.WeightKG = DefaultWeightKG
	}
	if p.HeightCM == 0 {
		p.HeightCM = DefaultHeightCM
	}
	if p.Age == 0 {
		p.Age = DefaultAge
	}
	if p.Gender == GenderUnknown {
		p.Gender = DefaultGender
	}
	if p.ActivityLevel == "" {
		p.ActivityLevel = DefaultActivityLevel
	}
	return p
}

// Complete reports whether every field the biometric formulas need was
// provided, without substituting defaults.
func (p UserProfile) Complete() bool {
	return p.WeightKG > 0 && p.HeightCM > 0 && p.Age > 0 && p.Gender != GenderUnknown
}

// InvalidProfileError reports a biometric field that is present but unusable
// and has no default to fall back on.
type InvalidProfileError struct {
	Field  string
	Reason string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile: %s %s", e.Field, e.Reason)
}

// Validate checks the fields the formula library assumes are sanitized.
// Missing (zero) fields pass because defaults cover them.
func (p UserProfile) Validate() error {
	if p.WeightKG < 0 {
		return &InvalidProfileError{Field: "weight_kg", Reason: "must be positive"}
	}
	if p.HeightCM < 0 {
		return &InvalidProfileError{Field: "height_cm", Reason: "must be positive"}
	}
	if p.Age != 0 && (p.Age < MinAge || p.Age > MaxAge) {
		return &InvalidProfileError{Field: "age", Reason: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge)}
	}
	switch p.Gender {
	case GenderUnknown, GenderMale, GenderFemale, GenderOther:
	default:
		return &InvalidProfileError{Field: "gender", Reason: "must be one of: male, female, other"}
	}
	if p.FitnessLevel != "" {
		if _, ok := ParseFitnessLevel(string(p.FitnessLevel)); !ok {
			return &InvalidProfileError{Field: "fitness_level", Reason: "must be one of: Beginner, Intermediate, Advanced"}
		}
	}
	return nil
}
