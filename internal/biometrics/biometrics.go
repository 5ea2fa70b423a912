// Package biometrics is a pure formula library: BMI, BMR (Mifflin-St Jeor),
// TDEE and body fat (Deurenberg). Inputs are assumed sanitized by the caller;
// nonsensical input (zero height, negative weight) yields NaN/Inf or
// meaningless numbers rather than an error.
package biometrics

// ActivityMultipliers maps activity level labels to their TDEE multiplier.
// This is the single source of truth for valid activity levels; the profile
// PATCH handler validates against it too.
var ActivityMultipliers = map[string]float64{
	"Sedentary":         1.2,
	"Lightly Active":    1.375,
	"Moderately Active": 1.55,
	"Very Active":       1.725,
	"Extra Active":      1.9,
}

// ActivityLevels lists the labels in ascending multiplier order.
var ActivityLevels = []string{"Sedentary", "Lightly Active", "Moderately Active", "Very Active", "Extra Active"}

// defaultMultiplier applies to any unrecognized activity level.
const defaultMultiplier = 1.2

// BMICategory buckets a BMI value.
type BMICategory string

const (
	Underweight BMICategory = "Underweight"
	Normal      BMICategory = "Normal"
	Overweight  BMICategory = "Overweight"
	Obese       BMICategory = "Obese"
)

// BodyFatCategory buckets a body-fat percentage.
type BodyFatCategory string

const (
	BodyFatVeryLow  BodyFatCategory = "Very Low"
	BodyFatAthletic BodyFatCategory = "Athletic"
	BodyFatFitness  BodyFatCategory = "Fitness"
	BodyFatAverage  BodyFatCategory = "Average"
	BodyFatHigh     BodyFatCategory = "High"
)

// BMI returns weight / (height in metres)^2.
func BMI(weightKG, heightCM float64) float64 {
	h := heightCM / 100
	return weightKG / (h * h)
}

// CategorizeBMI uses the fixed bands <18.5, <24.9, <29.9, else obese.
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 24.9:
		return Normal
	case bmi < 29.9:
		return Overweight
	default:
		return Obese
	}
}

// BMR computes basal metabolic rate via Mifflin-St Jeor: different constant
// for male (+5) vs everyone else (-161).
func BMR(weightKG, heightCM float64, age int, isMale bool) float64 {
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if isMale {
		return bmr + 5
	}
	return bmr - 161
}

// Multiplier returns the TDEE multiplier for an activity level, 1.2 when the
// level is unrecognized.
func Multiplier(activityLevel string) float64 {
	if m, ok := ActivityMultipliers[activityLevel]; ok {
		return m
	}
	return defaultMultiplier
}

// TDEE multiplies BMR by the activity level multiplier.
func TDEE(bmr float64, activityLevel string) float64 {
	return bmr * Multiplier(activityLevel)
}

// BodyFatPercent estimates body fat via the Deurenberg equation.
func BodyFatPercent(bmi float64, age int, isMale bool) float64 {
	bf := 1.2*bmi + 0.23*float64(age)
	if isMale {
		return bf - 16.2
	}
	return bf - 5.4
}

// CategorizeBodyFat applies sex-specific thresholds.
func CategorizeBodyFat(pct float64, isMale bool) BodyFatCategory {
	limits := [4]float64{15, 22, 27, 32}
	if isMale {
		limits = [4]float64{8, 15, 20, 25}
	}
	switch {
	case pct < limits[0]:
		return BodyFatVeryLow
	case pct < limits[1]:
		return BodyFatAthletic
	case pct < limits[2]:
		return BodyFatFitness
	case pct < limits[3]:
		return BodyFatAverage
	default:
		return BodyFatHigh
	}
}

// CalorieNeeds returns the TDEE for every known activity level.
func CalorieNeeds(bmr float64) map[string]float64 {
	needs := make(map[string]float64, len(ActivityMultipliers))
	for level, mult := range ActivityMultipliers {
		needs[level] = bmr * mult
	}
	return needs
}
